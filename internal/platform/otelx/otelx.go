package otelx

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	"github.com/lokalhub/lokalhub-backend/internal/platform/envutil"
	"github.com/lokalhub/lokalhub-backend/internal/platform/logger"
)

const tracerName = "github.com/lokalhub/lokalhub-backend"

// Tracer returns the process-wide tracer used for unit-of-work spans.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}

// Init installs a tracer provider when OTEL_ENABLED is set. It returns a
// shutdown func that flushes pending spans; when tracing is disabled the
// returned func is a no-op and the global no-op provider stays in place.
func Init(ctx context.Context, log *logger.Logger, serviceName string) func(context.Context) error {
	if !envutil.Bool("OTEL_ENABLED", false) {
		return func(context.Context) error { return nil }
	}

	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		if log != nil {
			log.Warn("otel exporter init failed (continuing without tracing)", "error", err)
		}
		return func(context.Context) error { return nil }
	}

	ratio := envutil.Float("OTEL_SAMPLE_RATIO", 1.0)
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(5*time.Second)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(tp)

	if log != nil {
		log.Info("otel tracing enabled", "service", serviceName, "sample_ratio", ratio)
	}

	return tp.Shutdown
}
