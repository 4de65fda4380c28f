package ports

import "context"

// MessageConsumer - фоновый источник черновиков заказов.
// Run блокирует до отмены ctx или фатальной ошибки.
type MessageConsumer interface {
	Run(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
}
