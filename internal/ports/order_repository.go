package ports

import (
	"context"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

// OrderRepository - хранилище заказов. Save назначает id и created_at.
// FindByID возвращает (nil, nil), если заказа нет.
type OrderRepository interface {
	Save(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	FindAll(ctx context.Context, limit, offset int) ([]*domain.Order, error)
	FindByCustomerName(ctx context.Context, substr string, limit, offset int) ([]*domain.Order, error)
	Ping(ctx context.Context) error
}
