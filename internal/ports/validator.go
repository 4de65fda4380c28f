package ports

import (
	"context"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

type OrderValidator interface {
	Validate(ctx context.Context, draft *domain.OrderDraft) error
}
