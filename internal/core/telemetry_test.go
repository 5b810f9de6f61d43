// AngelaMos | 2026
// telemetry_test.go

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgrams-coder/aicmmlr/internal/config"
)

func TestTelemetryDisabledStillTraces(t *testing.T) {
	ctx := context.Background()
	tel, err := NewTelemetry(ctx, config.OtelConfig{ServiceName: "mmle"}, config.AppConfig{}, "api")
	require.NoError(t, err)

	spanCtx, span := tel.Tracer.Start(ctx, "op")
	assert.Len(t, TraceIDFromContext(spanCtx), 32)
	span.End()

	assert.Empty(t, TraceIDFromContext(ctx))
	assert.NoError(t, tel.Shutdown(ctx))
}

func TestSampleRateDefaults(t *testing.T) {
	assert.InDelta(t, defaultSampleRate, sampleRate(config.OtelConfig{}), 1e-9)
	assert.InDelta(t, defaultSampleRate, sampleRate(config.OtelConfig{SampleRate: 3}), 1e-9)
	assert.InDelta(t, 0.5, sampleRate(config.OtelConfig{SampleRate: 0.5}), 1e-9)
}

func TestNilTelemetryShutdown(t *testing.T) {
	var tel *Telemetry
	assert.NoError(t, tel.Shutdown(context.Background()))
}
