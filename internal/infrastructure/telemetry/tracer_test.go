package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Senticor-ai/project-sub006/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	ctx := context.Background()
	tp, err := telemetry.NewTracerProvider(ctx, telemetry.Config{ServiceName: "test-service"}, zaptest.NewLogger(t))
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("test"))
	assert.NoError(t, tp.Shutdown(ctx))
}

func TestNewTracerProvider_SamplingRatios(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping exporter test in short mode")
	}

	for _, ratio := range []float64{0, 0.5, 1} {
		cfg := telemetry.Config{
			Enabled:           true,
			CollectorEndpoint: "localhost:14317",
			SamplingRatio:     ratio,
			ServiceName:       "test-service",
			Insecure:          true,
		}
		tp, err := telemetry.NewTracerProvider(context.Background(), cfg, zaptest.NewLogger(t))
		require.NoError(t, err)
		assert.True(t, tp.IsEnabled())

		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		_ = tp.Shutdown(ctx)
		cancel()
	}
}

func TestSetup_Disabled(t *testing.T) {
	ctx := context.Background()
	providers, err := telemetry.Setup(ctx, telemetry.Config{ServiceName: "test-service"}, nil)
	require.NoError(t, err)
	require.NotNil(t, providers.Tracer)
	require.NotNil(t, providers.Meter)

	assert.False(t, providers.Tracer.IsEnabled())
	assert.False(t, providers.Meter.IsEnabled())
	assert.NoError(t, providers.Shutdown(ctx))
}
