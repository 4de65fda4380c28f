package rest

import (
	"time"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

// orderResponse - заказ в ответе API; сумма строкой ровно с двумя знаками.
type orderResponse struct {
	ID           int64     `json:"id"`
	CustomerName string    `json:"customer_name"`
	Description  string    `json:"description"`
	Amount       string    `json:"amount"`
	CreatedAt    time.Time `json:"created_at"`
}

func toOrderResponse(o *domain.Order) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CustomerName: o.CustomerName,
		Description:  o.Description,
		Amount:       o.Amount.StringFixed(2),
		CreatedAt:    o.CreatedAt,
	}
}

func toOrderResponses(list []*domain.Order) []orderResponse {
	out := make([]orderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOrderResponse(o))
	}
	return out
}
