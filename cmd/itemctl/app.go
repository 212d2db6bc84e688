package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	itemapp "github.com/Senticor-ai/project-sub006/internal/application/item"
	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/celeval"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/config"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/logger"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/ruleset"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/telemetry"
)

// app holds the wired dependencies of one command invocation
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	providers *telemetry.Providers
	service   *itemapp.Service
}

func newApp(ctx context.Context, opts *globalOptions) (*app, error) {
	cfg, err := config.LoadFrom(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if opts.rulesPath != "" {
		cfg.Rules.Path = opts.rulesPath
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	providers, err := telemetry.Setup(ctx, telemetry.Config{
		Enabled:               cfg.Telemetry.Enabled,
		CollectorEndpoint:     cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:         cfg.Telemetry.SamplingRatio,
		ServiceName:           cfg.Telemetry.ServiceName,
		Insecure:              cfg.Telemetry.Insecure,
		MetricsExportInterval: cfg.Telemetry.MetricsExportInterval,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}

	metrics, err := telemetry.NewValidationMetrics(providers.Meter.Meter(telemetry.TracerName))
	if err != nil {
		return nil, fmt.Errorf("init metrics: %w", err)
	}

	rules, err := ruleset.Load(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	eval, err := celeval.New(
		celeval.WithLogger(log),
		celeval.WithCostLimit(cfg.Rules.CostLimit),
	)
	if err != nil {
		return nil, fmt.Errorf("init evaluator: %w", err)
	}
	if cfg.Rules.WarmUp {
		warmRules(eval, rules, log)
	}

	validator := validation.NewValidator(nil, validation.NewRuleEngine(rules, eval))
	service := itemapp.NewService(validator, log, itemapp.WithMetrics(metrics))

	log.Debug("itemctl ready",
		zap.String("env", cfg.App.Env),
		zap.String("rules_path", cfg.Rules.Path),
		zap.Int("rule_count", service.RuleCount()),
		zap.Bool("tracing", providers.Tracer.IsEnabled()),
		zap.Bool("metrics", providers.Meter.IsEnabled()),
	)

	return &app{cfg: cfg, log: log, providers: providers, service: service}, nil
}

// warmRules compiles every rule up front. Broken rules still load and
// surface as evaluation errors per call.
func warmRules(eval *celeval.Evaluator, rules *validation.RuleSet, log *zap.Logger) {
	if err := eval.Warm(rules); err != nil {
		log.Warn("Some rules do not compile", zap.Error(err))
	}
}

func (a *app) close(ctx context.Context) {
	if err := a.providers.Shutdown(ctx); err != nil {
		a.log.Warn("Telemetry shutdown failed", zap.Error(err))
	}
	_ = a.log.Sync()
}

// withApp wires the dependencies, runs fn with a logger-carrying context and
// tears everything down afterwards.
func withApp(ctx context.Context, opts *globalOptions, fn func(context.Context, *app) error) error {
	a, err := newApp(ctx, opts)
	if err != nil {
		return err
	}
	defer a.close(ctx)

	return fn(logger.WithContext(ctx, a.log), a)
}
