package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
)

// ErrInvalidJSON - тело запроса/сообщения не является корректным JSON черновика заказа.
var ErrInvalidJSON = errors.New("invalid json")

// DecodeDraft - строгий разбор JSON черновика: неизвестные поля и данные после объекта запрещены.
func DecodeDraft(raw []byte) (*domain.OrderDraft, error) {
	var draft domain.OrderDraft
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&draft); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	// гарантируем отсутствие полей вне структуры
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data", ErrInvalidJSON)
	}
	return &draft, nil
}

// ValidateDraftFromJSON - разбор, нормализация и валидация черновика из JSON.
func ValidateDraftFromJSON(ctx context.Context, validator ports.OrderValidator, raw []byte) (*domain.OrderDraft, error) {
	draft, err := DecodeDraft(raw)
	if err != nil {
		return nil, err
	}
	Normalize(draft)
	if err := validator.Validate(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}
