package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	KafkaMessagesConsumed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_consumed_total",
			Help: "Number of messages fetched from Kafka",
		},
		[]string{"topic"},
	)
	KafkaMessagesProcessed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_processed_total",
			Help: "Number of messages processed successfully",
		},
		[]string{"topic"},
	)
	KafkaMessagesFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kafka_messages_failed_total",
			Help: "Number of messages failed to process",
		},
		[]string{"topic"},
	)
)

var (
	QueueOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_queue_operations_total",
			Help: "Order queue operations",
		},
		[]string{"op"}, // push|pop|peek|empty|rejected
	)
	QueueSize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_queue_size",
			Help: "Number of orders currently held in the queue",
		},
	)
	QueueCapacity = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_queue_capacity",
			Help: "Fixed capacity of the order queue",
		},
	)
)

var OrdersCreated = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted by the service",
	},
	[]string{"source"}, // http|kafka
)

// MustRegister - регистрирует коллекторы в глобальном реестре.
// Повторный вызов безопасен: уже зарегистрированные коллекторы пропускаются.
func MustRegister() {
	for _, c := range []prometheus.Collector{
		KafkaMessagesConsumed, KafkaMessagesProcessed, KafkaMessagesFailed,
		QueueOps, QueueSize, QueueCapacity,
		OrdersCreated,
	} {
		if err := prometheus.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			panic(err)
		}
	}
}
