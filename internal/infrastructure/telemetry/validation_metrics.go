package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
)

// MetricsError is returned when metrics cannot be constructed
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

// ErrMeterNil is returned when a nil meter is supplied
var ErrMeterNil = &MetricsError{Op: "NewValidationMetrics", Err: "meter cannot be nil"}

// Metric names
const (
	MetricIssuesTotal           = "gtd_validation_issues_total"
	MetricEvaluationErrorsTotal = "gtd_validation_evaluation_errors_total"
	MetricDuration              = "gtd_validation_duration_seconds"
)

// ValidationMetrics counts validation outcomes
type ValidationMetrics struct {
	issues     *Counter
	evalErrors *Counter
	duration   *Histogram
}

// NewValidationMetrics registers the validation instruments on meter
func NewValidationMetrics(meter metric.Meter) (*ValidationMetrics, error) {
	if meter == nil {
		return nil, ErrMeterNil
	}

	issues, err := NewCounter(meter, MetricIssuesTotal, "Validation issues reported, by source and code", "{issue}")
	if err != nil {
		return nil, err
	}
	evalErrors, err := NewCounter(meter, MetricEvaluationErrorsTotal, "Rules that could not be evaluated", "{error}")
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        MetricDuration,
		Description: "Time spent validating one operation",
		Unit:        "s",
		Boundaries:  ValidationDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	return &ValidationMetrics{issues: issues, evalErrors: evalErrors, duration: duration}, nil
}

// RecordIssues counts each issue once; evaluation errors are also counted per rule.
// A nil receiver records nothing.
func (m *ValidationMetrics) RecordIssues(ctx context.Context, operation string, issues []validation.Issue) {
	if m == nil {
		return
	}
	for _, issue := range issues {
		m.issues.Inc(ctx,
			AttrOperation.String(operation),
			AttrSource.String(string(issue.Source)),
			AttrCode.String(issue.Code),
		)
		if issue.Code == validation.CodeEvaluationError {
			m.evalErrors.Inc(ctx, AttrRule.String(issue.Rule))
		}
	}
}

// RecordDuration records how long an operation took
func (m *ValidationMetrics) RecordDuration(ctx context.Context, operation string, d time.Duration) {
	if m == nil {
		return
	}
	m.duration.RecordDuration(ctx, d, AttrOperation.String(operation))
}
