package kafka

import (
	"context"
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Gunvolt24/order_queue/internal/ports"
	"github.com/Gunvolt24/order_queue/pkg/metrics"
)

// Проверка, что Consumer удовлетворяет интерфейсу верхнего уровня (порт приложения).
var _ ports.MessageConsumer = (*Consumer)(nil)

const (
	defaultProcessTimeout = 5 * time.Second
	defaultRetryInitial   = time.Second
	defaultRetryMax       = 30 * time.Second
)

// reader - минимальный контракт над kafka.Reader, подменяется моками в тестах.
type reader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Config() kafka.ReaderConfig
	Close() error
}

// messageSaver - зависимость на бизнес-логику: разбор черновика, валидация,
// запись в БД и push в очередь.
type messageSaver interface {
	CreateFromMessage(ctx context.Context, raw []byte) error
}

// Consumer - альтернативный вход для создания заказов: читает черновики из топика.
// Оффсет коммитится только после окончательного решения по сообщению,
// поэтому доставка at-least-once.
type Consumer struct {
	reader         reader
	service        messageSaver
	log            ports.Logger
	processTimeout time.Duration
	retryInitial   time.Duration
	retryMax       time.Duration
	jitterRand     *rand.Rand
	dialer         *kafka.Dialer
	closeOnce      sync.Once
}

func NewConsumer(cfg *ConsumerConfig, service messageSaver, log ports.Logger) *Consumer {
	return &Consumer{
		reader:         kafka.NewReader(cfg.ReaderConfig()),
		service:        service,
		log:            log,
		processTimeout: orDefault(cfg.ProcessTimeout, defaultProcessTimeout),
		retryInitial:   orDefault(cfg.RetryInitial, defaultRetryInitial),
		retryMax:       orDefault(cfg.RetryMax, defaultRetryMax),
		jitterRand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		dialer:         &kafka.Dialer{Timeout: 2 * time.Second},
	}
}

// Run читает сообщения до отмены ctx.
// Успех и постоянные ошибки (мусор, невалидный заказ, полная очередь) коммитятся.
// Временная ошибка повторяется для того же сообщения с backoff; следующее
// сообщение не читается, пока текущее не обработано. При отмене ctx
// сообщение остаётся незакоммиченным и будет передоставлено.
func (c *Consumer) Run(ctx context.Context) error {
	rc := c.reader.Config()
	c.log.Infof(ctx, "kafka consumer started topic=%s group_id=%s brokers=%v", rc.Topic, rc.GroupID, rc.Brokers)

	fetchRetry := c.retryInitial
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			// брокер/сеть недоступны: ждём и читаем снова
			sleep := c.withJitterEqual(fetchRetry)
			c.log.Warnf(ctx, "fetch failed: %v (will retry in %s)", err, sleep)
			if !c.sleepWithBackoff(ctx, sleep) {
				return ctx.Err()
			}
			fetchRetry = c.nextBackoff(fetchRetry)
			continue
		}
		fetchRetry = c.retryInitial
		metrics.KafkaMessagesConsumed.WithLabelValues(rc.Topic).Inc()

		if !c.processUntilDecided(ctx, rc.Topic, &msg) {
			return ctx.Err()
		}
		c.commitSafely(ctx, &msg)
	}
}

// processUntilDecided - false, если ctx отменён до окончательного решения.
func (c *Consumer) processUntilDecided(ctx context.Context, topic string, msg *kafka.Message) bool {
	retry := c.retryInitial
	for attempt := 1; ; attempt++ {
		if c.handleMessage(ctx, topic, msg) {
			return true
		}
		sleep := c.withJitterEqual(retry)
		c.log.Warnf(ctx, "offset=%d attempt=%d failed, retry in %s", msg.Offset, attempt, sleep)
		if !c.sleepWithBackoff(ctx, sleep) {
			return false
		}
		retry = c.nextBackoff(retry)
	}
}

// Ping - проверка доступности брокера для /health: открывает и закрывает соединение.
func (c *Consumer) Ping(ctx context.Context) error {
	brokers := c.reader.Config().Brokers
	if len(brokers) == 0 {
		return errors.New("kafka: no brokers configured")
	}
	conn, err := c.dialer.DialContext(ctx, "tcp", brokers[0])
	if err != nil {
		return err
	}
	return conn.Close()
}

// Close - закрывает reader; повторные вызовы безопасны.
func (c *Consumer) Close() (retErr error) {
	c.closeOnce.Do(func() {
		retErr = c.reader.Close()
	})
	return retErr
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
