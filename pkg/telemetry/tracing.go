package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.17.0"
)

const defaultEndpoint = "localhost:4318"

// Options - параметры трейсинга.
type Options struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string  // host:port OTLP/HTTP коллектора
	SampleRatio    float64 // доля корневых трасс, обрезается до [0, 1]
}

// ShutdownFunc - сбрасывает буфер спанов и останавливает провайдер.
type ShutdownFunc func(context.Context) error

// SetupTracing - глобальный TracerProvider с OTLP/HTTP экспортом и W3C-пропагацией.
func SetupTracing(ctx context.Context, opts Options) (ShutdownFunc, error) {
	if opts.Endpoint == "" {
		opts.Endpoint = defaultEndpoint
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpoint(opts.Endpoint),
		otlptracehttp.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("otlp exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(newSampler(opts.SampleRatio)),
		sdktrace.WithResource(newResource(opts)),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	return tp.Shutdown, nil
}

// newSampler - входящий traceparent решает за нас, корневые спаны семплируются по доле.
func newSampler(ratio float64) sdktrace.Sampler {
	return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(clampRatio(ratio)))
}

func newResource(opts Options) *resource.Resource {
	return resource.NewWithAttributes(semconv.SchemaURL,
		semconv.ServiceName(opts.ServiceName),
		semconv.ServiceVersion(opts.ServiceVersion),
	)
}

func clampRatio(r float64) float64 {
	return max(0, min(r, 1))
}
