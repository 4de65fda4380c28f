package kafka

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/pkg/ctxmeta"
	"github.com/Gunvolt24/order_queue/pkg/metrics"
	"github.com/Gunvolt24/order_queue/pkg/telemetry"
	"github.com/Gunvolt24/order_queue/pkg/validate"
)

// handleMessage обрабатывает одно сообщение и определяет нужно ли коммитить оффсет.
func (c *Consumer) handleMessage(ctx context.Context, topic string, msg *kafka.Message) bool {
	ctx = ctxmeta.WithRequestID(ctx, messageRequestID(msg))
	ctx, span := telemetry.StartSpan(ctx, "kafka.consume",
		attribute.String("messaging.destination", topic),
		attribute.Int("messaging.kafka.partition", msg.Partition),
		attribute.Int64("messaging.kafka.offset", msg.Offset),
	)

	ctxTimeout, cancel := context.WithTimeout(ctx, c.processTimeout)
	err := c.service.CreateFromMessage(ctxTimeout, msg.Value)
	cancel()
	telemetry.EndSpan(span, err)

	switch {
	case err == nil:
		// Успешная обработка: фиксируем метрику и коммитим оффсет
		metrics.KafkaMessagesProcessed.WithLabelValues(topic).Inc()
		return true
	case isPermanent(err):
		// Мусор, невалидный заказ или полная очередь: повтор ничего не изменит
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "message skipped offset=%d: %v", msg.Offset, err)
		return true
	default:
		// Временная ошибка(БД/сеть/таймаут): НЕ коммитим - будем обрабатывать повторно
		metrics.KafkaMessagesFailed.WithLabelValues(topic).Inc()
		c.log.Warnf(ctx, "process failed offset=%d: %v (will retry without commit)", msg.Offset, err)
		return false
	}
}

func isPermanent(err error) bool {
	return errors.Is(err, validate.ErrInvalidJSON) ||
		errors.Is(err, validate.ErrInvalidOrder) ||
		errors.Is(err, domain.ErrQueueFull)
}

// messageRequestID - request_id из заголовка X-Request-ID, иначе новый UUID.
// Недопустимые значения отбрасываются по тем же правилам, что и в HTTP.
func messageRequestID(msg *kafka.Message) string {
	for _, h := range msg.Headers {
		if h.Key == "X-Request-ID" && ctxmeta.ValidRequestID(string(h.Value)) {
			return string(h.Value)
		}
	}
	return fmt.Sprintf("kafka-%s", uuid.NewString())
}

// commitSafely пытается закоммитить оффсет и залогировать ошибку.
func (c *Consumer) commitSafely(ctx context.Context, msg *kafka.Message) {
	if commitErr := c.reader.CommitMessages(ctx, *msg); commitErr != nil {
		c.log.Warnf(ctx, "commit failed offset=%d: %v", msg.Offset, commitErr)
	}
}

// sleepWithBackoff ждет backoff или останавливается по контексту.
func (c *Consumer) sleepWithBackoff(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// nextBackoff возвращает следующее время ожидания повтора с учетом retryMax.
func (c *Consumer) nextBackoff(current time.Duration) time.Duration {
	current *= 2
	if current > c.retryMax {
		return c.retryMax
	}
	return current
}

// withJitterEqual - половина задержки фиксирована, вторая половина случайная.
func (c *Consumer) withJitterEqual(d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	half := d / 2
	jitter := time.Duration(c.jitterRand.Int63n(int64(d-half) + 1))
	return half + jitter
}
