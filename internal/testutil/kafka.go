//go:build integration

package testutil

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// UniqueTopicAndGroup - топик и группа консьюмера, уникальные для запуска теста.
// base="orders-itc" → "orders-itc-<hex>", группа с суффиксом "-g".
func UniqueTopicAndGroup(base string) (topic, group string) {
	topic = base + "-" + strconv.FormatInt(time.Now().UnixNano(), 36) + "-" + UniqSuffix()
	return topic, topic + "-g"
}

// EnsureTopic - создаёт топик с одной партицией через контроллер кластера
// и ждёт, пока партиция появится в метаданных. Существующий топик не ошибка.
// broker принимает "host:port", "PLAINTEXT://host:port" или список через запятую.
func EnsureTopic(ctx context.Context, broker, topic string) error {
	addr := bootstrapAddr(broker)
	dialer := &kafka.Dialer{Timeout: 5 * time.Second}

	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", addr, err)
	}
	controller, err := conn.Controller()
	_ = conn.Close()
	if err != nil {
		return fmt.Errorf("kafka controller: %w", err)
	}

	admin, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial controller: %w", err)
	}
	defer admin.Close()

	err = admin.CreateTopics(kafka.TopicConfig{Topic: topic, NumPartitions: 1, ReplicationFactor: 1})
	if err != nil && !errors.Is(err, kafka.TopicAlreadyExists) {
		return fmt.Errorf("create topic %s: %w", topic, err)
	}

	return waitPartitions(ctx, dialer, addr, topic)
}

func bootstrapAddr(raw string) string {
	first := strings.TrimSpace(strings.Split(raw, ",")[0])
	if u, err := url.Parse(first); err == nil && u.Scheme != "" && u.Host != "" {
		return u.Host
	}
	return first
}

func waitPartitions(ctx context.Context, dialer *kafka.Dialer, addr, topic string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		partitions, err := dialer.LookupPartitions(ctx, "tcp", addr, topic)
		if err == nil && len(partitions) > 0 {
			return nil
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("topic %s not ready: %w", topic, errors.Join(ctx.Err(), err))
		case <-ticker.C:
		}
	}
}
