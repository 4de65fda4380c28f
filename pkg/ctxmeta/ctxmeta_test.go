package ctxmeta_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/Gunvolt24/order_queue/pkg/ctxmeta"
)

func TestRequestID(t *testing.T) {
	parent := context.Background()

	ctx := ctxmeta.WithRequestID(parent, "req-123")
	id, ok := ctxmeta.RequestIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, "req-123", id)

	// родитель не изменяется
	_, ok = ctxmeta.RequestIDFromContext(parent)
	require.False(t, ok)

	// пустой id - тот же контекст
	require.Equal(t, parent, ctxmeta.WithRequestID(parent, ""))

	// строковый ключ с тем же именем не пересекается с внутренним
	foreign := context.WithValue(parent, "request_id", "req-x") //nolint:staticcheck
	_, ok = ctxmeta.RequestIDFromContext(foreign)
	require.False(t, ok)
}

func TestValidRequestID(t *testing.T) {
	cases := map[string]bool{
		"rid-42":                 true,
		strings.Repeat("a", 128): true,
		"":                       false,
		strings.Repeat("a", 129): false,
		"rid 42":                 false,
		"rid\t42":                false,
		"rid\x0042":              false,
		"ridÿ":                   false,
	}
	for id, want := range cases {
		require.Equal(t, want, ctxmeta.ValidRequestID(id), "id=%q", id)
	}
}

func TestNilContext(t *testing.T) {
	var nilCtx context.Context

	require.Nil(t, ctxmeta.WithRequestID(nilCtx, "req-1"))
	_, ok := ctxmeta.RequestIDFromContext(nilCtx)
	require.False(t, ok)
	_, ok = ctxmeta.TraceIDFromContext(nilCtx)
	require.False(t, ok)
	require.Empty(t, ctxmeta.LogFields(nilCtx))
}

func TestTraceAndSpanIDs(t *testing.T) {
	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(context.Background(), "op")
	defer span.End()

	traceID, ok := ctxmeta.TraceIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, span.SpanContext().TraceID().String(), traceID)

	spanID, ok := ctxmeta.SpanIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, span.SpanContext().SpanID().String(), spanID)

	_, ok = ctxmeta.SpanIDFromContext(context.Background())
	require.False(t, ok)
}

func TestLogFields(t *testing.T) {
	require.Empty(t, ctxmeta.LogFields(context.Background()))

	ctx := ctxmeta.WithRequestID(context.Background(), "rid")
	require.Equal(t, []any{"request_id", "rid"}, ctxmeta.LogFields(ctx))

	tp := sdktrace.NewTracerProvider()
	ctx, span := tp.Tracer("test").Start(ctx, "op")
	defer span.End()

	fields := ctxmeta.LogFields(ctx)
	require.Len(t, fields, 6)
	require.Equal(t, "trace_id", fields[2])
	require.Equal(t, span.SpanContext().SpanID().String(), fields[5])
}
