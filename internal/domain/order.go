package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order - сохранённый заказ. После попадания в очередь не изменяется.
type Order struct {
	ID           int64           `json:"id"`
	CustomerName string          `json:"customer_name"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}

// OrderDraft - входные данные для создания заказа (id и время назначает хранилище).
type OrderDraft struct {
	CustomerName string          `json:"customer_name" validate:"required,pgtext,max=255"`
	Description  string          `json:"description"   validate:"required,pgtext,max=500"`
	Amount       decimal.Decimal `json:"amount"`
}

// QueueStatus - состояние очереди заказов.
type QueueStatus struct {
	Size     int  `json:"size"`
	Empty    bool `json:"empty"`
	Capacity int  `json:"capacity"`
	Full     bool `json:"full"`
}
