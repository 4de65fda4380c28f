//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/order_queue/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func UniqSuffix() string { return randHex(6) }

// MakeDraft - мини-генератор валидного черновика заказа с уникальным именем клиента.
func MakeDraft(opts ...func(*domain.OrderDraft)) domain.OrderDraft {
	d := domain.OrderDraft{
		CustomerName: "Customer " + UniqSuffix(),
		Description:  "2x notebook",
		Amount:       decimal.RequireFromString("123.45"),
	}
	for _, fn := range opts {
		fn(&d)
	}
	return d
}

func WithCustomer(name string) func(*domain.OrderDraft) {
	return func(d *domain.OrderDraft) { d.CustomerName = name }
}

func WithAmount(amount string) func(*domain.OrderDraft) {
	return func(d *domain.OrderDraft) { d.Amount = decimal.RequireFromString(amount) }
}

// DraftJSON - черновик в виде тела запроса/сообщения Kafka.
func DraftJSON(d domain.OrderDraft) []byte {
	b, _ := json.Marshal(d)
	return b
}
