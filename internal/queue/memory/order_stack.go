package memory

import (
	"context"
	"sync"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
	"github.com/Gunvolt24/order_queue/pkg/metrics"
)

// Проверка, что OrderStack удовлетворяет интерфейсу OrderQueue.
var _ ports.OrderQueue = (*OrderStack)(nil)

// emptyTop - значение top для пустого стека.
const emptyTop = -1

// OrderStack - LIFO-стек заказов фиксированной ёмкости поверх заранее выделенного массива.
// Инвариант: 0 <= top+1 <= capacity; слоты выше top логически отсутствуют.
// Все операции, включая чтение размера, выполняются под одним мьютексом.
type OrderStack struct {
	capacity int
	slots    []domain.Order
	top      int

	mu sync.Mutex
}

// NewOrderStack - конструктор; capacity <= 0 приводится к 1.
func NewOrderStack(capacity int) *OrderStack {
	if capacity <= 0 {
		capacity = 1
	}
	metrics.QueueCapacity.Set(float64(capacity))
	metrics.QueueSize.Set(0)

	return &OrderStack{
		capacity: capacity,
		slots:    make([]domain.Order, capacity),
		top:      emptyTop,
	}
}

// Push - кладёт заказ на вершину. На заполненном стеке возвращает domain.ErrQueueFull,
// состояние при этом не меняется. nil-заказ отклоняется с domain.ErrNilOrder.
func (s *OrderStack) Push(_ context.Context, order *domain.Order) error {
	if order == nil {
		return domain.ErrNilOrder
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isFullLocked() {
		metrics.QueueOps.WithLabelValues("rejected").Inc()
		return domain.ErrQueueFull
	}

	s.top++
	s.slots[s.top] = *order

	metrics.QueueOps.WithLabelValues("push").Inc()
	s.observeSizeLocked()
	return nil
}

// Pop - снимает и возвращает вершину; на пустом стеке - domain.ErrQueueEmpty.
func (s *OrderStack) Pop(_ context.Context) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isEmptyLocked() {
		metrics.QueueOps.WithLabelValues("empty").Inc()
		return nil, domain.ErrQueueEmpty
	}

	order := s.slots[s.top]
	s.slots[s.top] = domain.Order{}
	s.top--

	metrics.QueueOps.WithLabelValues("pop").Inc()
	s.observeSizeLocked()
	return &order, nil
}

// Peek - возвращает копию вершины без изменения стека.
func (s *OrderStack) Peek(_ context.Context) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isEmptyLocked() {
		metrics.QueueOps.WithLabelValues("empty").Inc()
		return nil, domain.ErrQueueEmpty
	}

	metrics.QueueOps.WithLabelValues("peek").Inc()
	order := s.slots[s.top]
	return &order, nil
}

// Snapshot - все заказы от вершины к основанию. Стек не изменяется:
// копия собирается обходом массива под тем же мьютексом, что и Push/Pop.
func (s *OrderStack) Snapshot(_ context.Context) []*domain.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*domain.Order, 0, s.top+1)
	for i := s.top; i >= 0; i-- {
		order := s.slots[i]
		out = append(out, &order)
	}
	return out
}

func (s *OrderStack) Size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.top + 1
}

func (s *OrderStack) IsEmpty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isEmptyLocked()
}

func (s *OrderStack) IsFull() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isFullLocked()
}

// Capacity не меняется после создания, мьютекс не нужен.
func (s *OrderStack) Capacity() int { return s.capacity }
