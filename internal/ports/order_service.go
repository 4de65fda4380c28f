package ports

import (
	"context"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

// OrderService - прикладной сервис заказов, который потребляет HTTP-слой.
type OrderService interface {
	CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	GetOrder(ctx context.Context, id int64) (*domain.Order, error)
	ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	SearchOrders(ctx context.Context, customer string, limit, offset int) ([]*domain.Order, error)

	// ProcessNext/PeekNext - (nil, false), если очередь пуста.
	ProcessNext(ctx context.Context) (*domain.Order, bool)
	PeekNext(ctx context.Context) (*domain.Order, bool)
	QueueSize() int
	IsQueueEmpty() bool
	QueueStatus() domain.QueueStatus
	ListQueueContents(ctx context.Context) []*domain.Order

	Ping(ctx context.Context) error
}
