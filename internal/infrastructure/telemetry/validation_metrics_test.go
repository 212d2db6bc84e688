package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/Senticor-ai/project-sub006/internal/domain/validation"
	"github.com/Senticor-ai/project-sub006/internal/infrastructure/telemetry"
)

func TestNewValidationMetrics_NilMeter(t *testing.T) {
	m, err := telemetry.NewValidationMetrics(nil)
	assert.Nil(t, m)
	assert.ErrorIs(t, err, telemetry.ErrMeterNil)
	assert.Equal(t, "NewValidationMetrics: meter cannot be nil", err.Error())
}

func TestNewValidationMetrics_Noop(t *testing.T) {
	m, err := telemetry.NewValidationMetrics(noop.NewMeterProvider().Meter("test"))
	require.NoError(t, err)

	m.RecordIssues(context.Background(), "create", []validation.Issue{{Source: validation.SourceShape, Code: "X"}})
	m.RecordDuration(context.Background(), "create", time.Millisecond)
}

func TestValidationMetrics_NilReceiver(t *testing.T) {
	var m *telemetry.ValidationMetrics
	assert.NotPanics(t, func() {
		m.RecordIssues(context.Background(), "create", []validation.Issue{{Code: "X"}})
		m.RecordDuration(context.Background(), "create", time.Millisecond)
	})
}

func TestValidationMetrics_RecordIssues(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	m, err := telemetry.NewValidationMetrics(meter)
	require.NoError(t, err)

	ctx := context.Background()
	m.RecordIssues(ctx, "create", []validation.Issue{
		{Source: validation.SourceShape, Code: "ACTION_BUCKET_INVALID"},
		{Source: validation.SourceRule, Code: "BUCKET_INVALID", Rule: "bucket-enum"},
		{Source: validation.SourceRule, Code: validation.CodeEvaluationError, Rule: "broken"},
	})
	m.RecordIssues(ctx, "create", []validation.Issue{
		{Source: validation.SourceShape, Code: "ACTION_BUCKET_INVALID"},
	})
	m.RecordIssues(ctx, "create", nil)

	rm := collect(t, reader)

	issues := findMetric(rm, telemetry.MetricIssuesTotal)
	require.NotNil(t, issues)
	sum, ok := issues.Data.(metricdata.Sum[int64])
	require.True(t, ok)

	byCode := map[string]int64{}
	for _, dp := range sum.DataPoints {
		code, _ := dp.Attributes.Value(telemetry.AttrCode)
		op, _ := dp.Attributes.Value(telemetry.AttrOperation)
		assert.Equal(t, "create", op.AsString())
		byCode[code.AsString()] = dp.Value
	}
	assert.Equal(t, map[string]int64{
		"ACTION_BUCKET_INVALID":        2,
		"BUCKET_INVALID":               1,
		validation.CodeEvaluationError: 1,
	}, byCode)

	evalErrors := findMetric(rm, telemetry.MetricEvaluationErrorsTotal)
	require.NotNil(t, evalErrors)
	evalSum := evalErrors.Data.(metricdata.Sum[int64])
	require.Len(t, evalSum.DataPoints, 1)
	rule, _ := evalSum.DataPoints[0].Attributes.Value(telemetry.AttrRule)
	assert.Equal(t, "broken", rule.AsString())
	assert.Equal(t, int64(1), evalSum.DataPoints[0].Value)
}

func TestValidationMetrics_RecordDuration(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter("test")
	m, err := telemetry.NewValidationMetrics(meter)
	require.NoError(t, err)

	m.RecordDuration(context.Background(), "triage", 2*time.Millisecond)

	metric := findMetric(collect(t, reader), telemetry.MetricDuration)
	require.NotNil(t, metric)
	hist := metric.Data.(metricdata.Histogram[float64])
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.Equal(t, telemetry.ValidationDurationBuckets, hist.DataPoints[0].Bounds)
}
