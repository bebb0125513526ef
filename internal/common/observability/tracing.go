// internal/common/observability/tracing.go
package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"career-workers/internal/common/config"
)

const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// NewTracerProvider builds the SDK tracer provider for the worker spans.
// Spans are sampled at cfg.SampleRatio, defaulting to all of them, and are
// exported only when tracing is enabled with an exporter. The stdout
// exporter writes to w.
func NewTracerProvider(serviceName string, cfg config.TracingConfig, w io.Writer) (*sdktrace.TracerProvider, error) {
	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}

	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	}

	if cfg.Enabled {
		switch cfg.Exporter {
		case "", ExporterNone:
		case ExporterStdout:
			exporter, err := stdouttrace.New(stdouttrace.WithWriter(w))
			if err != nil {
				return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
			}
			opts = append(opts, sdktrace.WithBatcher(exporter))
		default:
			return nil, fmt.Errorf("unknown trace exporter %q", cfg.Exporter)
		}
	}

	return sdktrace.NewTracerProvider(opts...), nil
}

// ShutdownTracer flushes pending spans, giving up after five seconds.
func ShutdownTracer(ctx context.Context, tp *sdktrace.TracerProvider) error {
	if tp == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return tp.Shutdown(ctx)
}
