package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-workers/internal/common/config"
)

func TestNewTracerProvider_StdoutExport(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider("career-workers", config.TracingConfig{
		Enabled:     true,
		Exporter:    ExporterStdout,
		SampleRatio: 1,
	}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "calculate-xp-progress")
	assert.True(t, span.SpanContext().IsSampled())
	span.End()

	require.NoError(t, ShutdownTracer(context.Background(), tp))
	assert.Contains(t, buf.String(), `"Name":"calculate-xp-progress"`)
	assert.Contains(t, buf.String(), "career-workers")
}

func TestNewTracerProvider_DisabledExportsNothing(t *testing.T) {
	var buf bytes.Buffer
	tp, err := NewTracerProvider("career-workers", config.TracingConfig{Exporter: ExporterStdout}, &buf)
	require.NoError(t, err)

	_, span := tp.Tracer("test").Start(context.Background(), "update-job-state")
	assert.True(t, span.SpanContext().IsValid(), "spans still carry real IDs")
	span.End()

	require.NoError(t, ShutdownTracer(context.Background(), tp))
	assert.Empty(t, buf.String())
}

func TestNewTracerProvider_UnknownExporter(t *testing.T) {
	_, err := NewTracerProvider("career-workers", config.TracingConfig{Enabled: true, Exporter: "zipkin"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zipkin")
}

func TestShutdownTracer_Nil(t *testing.T) {
	assert.NoError(t, ShutdownTracer(context.Background(), nil))
}
