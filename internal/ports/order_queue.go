package ports

import (
	"context"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

// OrderQueue - ограниченная LIFO-очередь заказов.
// Требования к реализации: потокобезопасность; Push/Pop/Peek за O(1);
// Snapshot не изменяет содержимое и возвращает копии от вершины к основанию.
type OrderQueue interface {
	// Push - domain.ErrQueueFull, если очередь заполнена.
	Push(ctx context.Context, order *domain.Order) error
	// Pop/Peek - domain.ErrQueueEmpty, если очередь пуста.
	Pop(ctx context.Context) (*domain.Order, error)
	Peek(ctx context.Context) (*domain.Order, error)
	Snapshot(ctx context.Context) []*domain.Order

	Size() int
	IsEmpty() bool
	IsFull() bool
	Capacity() int
}
