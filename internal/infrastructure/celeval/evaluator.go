// Package celeval evaluates rule expressions with the Common Expression Language.
package celeval

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"go.uber.org/zap"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
)

// DefaultCostLimit bounds the runtime cost of a single evaluation
const DefaultCostLimit uint64 = 10_000

// Evaluator compiles CEL expressions once and caches the programs. It is
// safe for concurrent use and implements validation.ExpressionEvaluator.
type Evaluator struct {
	env       *cel.Env
	programs  sync.Map // expression -> cel.Program
	variables []string
	costLimit uint64
	logger    *zap.Logger
}

// Option is a functional option for configuring the evaluator
type Option func(*Evaluator)

// WithVariables replaces the declared context variables. Every variable is
// dynamically typed.
func WithVariables(names ...string) Option {
	return func(e *Evaluator) {
		e.variables = names
	}
}

// WithCostLimit sets the per-evaluation cost limit
func WithCostLimit(limit uint64) Option {
	return func(e *Evaluator) {
		e.costLimit = limit
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Evaluator) {
		e.logger = logger
	}
}

// New creates an evaluator declaring the rule context variables
func New(opts ...Option) (*Evaluator, error) {
	e := &Evaluator{
		variables: validation.ContextVariables(),
		costLimit: DefaultCostLimit,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}

	envOpts := make([]cel.EnvOption, 0, len(e.variables))
	for _, name := range e.variables {
		envOpts = append(envOpts, cel.Variable(name, cel.DynType))
	}
	env, err := cel.NewEnv(envOpts...)
	if err != nil {
		return nil, fmt.Errorf("create cel environment: %w", err)
	}
	e.env = env
	return e, nil
}

// Evaluate compiles expr (cached) and evaluates it against ctx. The result is
// converted to a native Go value; CEL null becomes nil.
func (e *Evaluator) Evaluate(expr string, ctx map[string]any) (any, error) {
	prg, err := e.program(expr)
	if err != nil {
		return nil, err
	}

	out, _, err := prg.Eval(ctx)
	if err != nil {
		return nil, fmt.Errorf("evaluate %q: %w", expr, err)
	}
	if _, isNull := out.(types.Null); isNull {
		return nil, nil
	}
	return out.Value(), nil
}

// Check compiles expr without evaluating it
func (e *Evaluator) Check(expr string) error {
	_, err := e.program(expr)
	return err
}

// Warm compiles every guard and expression of rules so malformed rules
// surface at startup. Rules that fail still evaluate fail-closed later.
func (e *Evaluator) Warm(rules *validation.RuleSet) error {
	var errs []error
	for _, rule := range rules.Rules() {
		for _, expr := range []string{rule.When, rule.Expression} {
			if expr == "" {
				continue
			}
			if err := e.Check(expr); err != nil {
				e.logger.Debug("Rule expression does not compile",
					zap.String("rule_id", rule.ID),
					zap.Error(err),
				)
				errs = append(errs, fmt.Errorf("rule %s: %w", rule.ID, err))
			}
		}
	}
	return errors.Join(errs...)
}

func (e *Evaluator) program(expr string) (cel.Program, error) {
	if cached, ok := e.programs.Load(expr); ok {
		return cached.(cel.Program), nil
	}

	ast, iss := e.env.Compile(expr)
	if iss != nil && iss.Err() != nil {
		return nil, fmt.Errorf("compile %q: %w", expr, iss.Err())
	}
	prg, err := e.env.Program(ast, cel.CostLimit(e.costLimit))
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", expr, err)
	}

	actual, _ := e.programs.LoadOrStore(expr, prg)
	e.logger.Debug("Compiled rule expression", zap.String("expression", expr))
	return actual.(cel.Program), nil
}
