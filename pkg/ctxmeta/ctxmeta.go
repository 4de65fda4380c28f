// Пакет ctxmeta - сквозные метаданные запроса в context.Context.
// request_id кладут HTTP middleware и Kafka-консьюмер, trace_id/span_id берутся из OTEL.
package ctxmeta

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type requestIDKey struct{}

const maxRequestIDLen = 128

// ValidRequestID - непустой id до 128 байт из печатных ASCII без пробелов.
// Общая проверка для X-Request-ID из HTTP и из заголовков Kafka.
func ValidRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// WithRequestID - пустой id контекст не меняет.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	if ctx == nil || requestID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, requestID)
}

func RequestIDFromContext(ctx context.Context) (string, bool) {
	if ctx == nil {
		return "", false
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id, id != ""
}

// TraceIDFromContext - trace_id активного спана; без спана (или с no-op провайдером) - "", false.
func TraceIDFromContext(ctx context.Context) (string, bool) {
	sc, ok := spanContext(ctx)
	if !ok {
		return "", false
	}
	return sc.TraceID().String(), true
}

func SpanIDFromContext(ctx context.Context) (string, bool) {
	sc, ok := spanContext(ctx)
	if !ok {
		return "", false
	}
	return sc.SpanID().String(), true
}

// LogFields - пары ключ/значение для структурного логгера; отсутствующие поля пропускаются.
func LogFields(ctx context.Context) []any {
	var fields []any
	if id, ok := RequestIDFromContext(ctx); ok {
		fields = append(fields, "request_id", id)
	}
	if sc, ok := spanContext(ctx); ok {
		fields = append(fields, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
	}
	return fields
}

func spanContext(ctx context.Context) (trace.SpanContext, bool) {
	if ctx == nil {
		return trace.SpanContext{}, false
	}
	sc := trace.SpanContextFromContext(ctx)
	return sc, sc.IsValid()
}
