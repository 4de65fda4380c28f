package domain

import "errors"

var (
	// ErrQueueFull - попытка положить заказ в заполненную очередь.
	ErrQueueFull = errors.New("order queue is full")
	// ErrQueueEmpty - pop/peek на пустой очереди. Ожидаемая ситуация, не ошибка сервиса.
	ErrQueueEmpty = errors.New("order queue is empty")
	// ErrOrderNotFound - заказ с таким id отсутствует в хранилище.
	ErrOrderNotFound = errors.New("order not found")
	// ErrNilOrder - в очередь передан nil вместо заказа.
	ErrNilOrder = errors.New("nil order")
)
