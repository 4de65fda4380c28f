package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
	"github.com/Gunvolt24/order_queue/pkg/metrics"
	"github.com/Gunvolt24/order_queue/pkg/telemetry"
	"github.com/Gunvolt24/order_queue/pkg/validate"
)

// Проверка, что OrderService удовлетворяет интерфейсу OrderService.
var _ ports.OrderService = (*OrderService)(nil)

// QueueFullPolicy - поведение CreateOrder при заполненной очереди.
type QueueFullPolicy string

const (
	// PolicyReject - отказ до записи в БД (ErrQueueFull).
	PolicyReject QueueFullPolicy = "reject"
	// PolicyDrop - заказ сохраняется, в очередь не попадает; запрос успешен.
	PolicyDrop QueueFullPolicy = "drop"
)

// ParseQueueFullPolicy - разбор значения из конфигурации.
func ParseQueueFullPolicy(s string) (QueueFullPolicy, error) {
	switch p := QueueFullPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case PolicyReject, PolicyDrop:
		return p, nil
	case "":
		return PolicyReject, nil
	default:
		return "", fmt.Errorf("unknown queue full policy %q", s)
	}
}

const (
	sourceHTTP  = "http"
	sourceKafka = "kafka"
)

// OrderService - прикладная логика работы с заказами (без знаний о транспорте).
// Запись в БД всегда предшествует push в очередь и не образует с ним одну транзакцию.
type OrderService struct {
	repo      ports.OrderRepository
	queue     ports.OrderQueue
	log       ports.Logger
	validator ports.OrderValidator
	policy    QueueFullPolicy
}

// NewOrderService - DI-конструктор.
func NewOrderService(
	repo ports.OrderRepository,
	queue ports.OrderQueue,
	log ports.Logger,
	validator ports.OrderValidator,
	policy QueueFullPolicy,
) *OrderService {
	if policy == "" {
		policy = PolicyReject
	}
	return &OrderService{
		repo:      repo,
		queue:     queue,
		log:       log,
		validator: validator,
		policy:    policy,
	}
}

// CreateOrder - нормализует и валидирует черновик, сохраняет его и кладёт запись в очередь.
//
// При PolicyReject и полной очереди возвращает domain.ErrQueueFull без записи в БД.
// Если очередь заполнилась между проверкой и push, возвращается сохранённый заказ
// вместе с обёрнутой domain.ErrQueueFull: запись уже в БД, но в очередь не попала.
func (s *OrderService) CreateOrder(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	return s.create(ctx, draft, sourceHTTP)
}

// CreateFromMessage - создание заказа из сообщения Kafka (raw JSON черновика).
// Ошибки разбора и валидации оборачивают validate.ErrInvalidJSON / validate.ErrInvalidOrder,
// переполнение - domain.ErrQueueFull; консьюмер по ним решает, коммитить ли сообщение.
func (s *OrderService) CreateFromMessage(ctx context.Context, raw []byte) error {
	draft, err := validate.DecodeDraft(raw)
	if err != nil {
		s.log.Warnf(ctx, "kafka message rejected: %v", err)
		return err
	}
	_, err = s.create(ctx, draft, sourceKafka)
	return err
}

func (s *OrderService) create(ctx context.Context, draft *domain.OrderDraft, source string) (order *domain.Order, err error) {
	ctx, span := telemetry.StartSpan(ctx, "OrderService.CreateOrder", attribute.String("order.source", source))
	defer func() { telemetry.EndSpan(span, err) }()

	validate.Normalize(draft)
	if err = s.validator.Validate(ctx, draft); err != nil {
		s.log.Warnf(ctx, "validation failed source=%s err=%v", source, err)
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if s.policy == PolicyReject && s.queue.IsFull() {
		metrics.QueueOps.WithLabelValues("rejected").Inc()
		s.log.Warnf(ctx, "order rejected: queue full capacity=%d", s.queue.Capacity())
		return nil, domain.ErrQueueFull
	}

	start := time.Now()
	order, err = s.repo.Save(ctx, draft)
	if err != nil {
		s.log.Errorf(ctx, "repo.Save failed source=%s err=%v", source, err)
		return nil, fmt.Errorf("save order: %w", err)
	}
	span.SetAttributes(attribute.Int64("order.id", order.ID))

	if pushErr := s.queue.Push(ctx, order); pushErr != nil {
		if s.policy == PolicyDrop {
			s.log.Warnf(ctx, "order id=%d persisted but dropped from queue: %v", order.ID, pushErr)
		} else {
			s.log.Errorf(ctx, "order id=%d persisted but not queued: %v", order.ID, pushErr)
			metrics.OrdersCreated.WithLabelValues(source).Inc()
			return order, fmt.Errorf("order id=%d persisted, not queued: %w", order.ID, pushErr)
		}
	}

	metrics.OrdersCreated.WithLabelValues(source).Inc()
	s.log.Infof(ctx, "order created id=%d source=%s amount=%s took=%s",
		order.ID, source, order.Amount.StringFixed(2), time.Since(start))
	return order, nil
}

// GetOrder - заказ по id; domain.ErrOrderNotFound, если записи нет.
func (s *OrderService) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindByID failed id=%d err=%v", id, err)
		return nil, fmt.Errorf("find order: %w", err)
	}
	if order == nil {
		return nil, domain.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders - страница заказов, новые сверху.
func (s *OrderService) ListOrders(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	orders, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindAll failed err=%v", err)
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// SearchOrders - поиск по подстроке имени клиента; пустая строка - обычный список.
func (s *OrderService) SearchOrders(ctx context.Context, customer string, limit, offset int) ([]*domain.Order, error) {
	if strings.TrimSpace(customer) == "" {
		return s.ListOrders(ctx, limit, offset)
	}
	orders, err := s.repo.FindByCustomerName(ctx, customer, limit, offset)
	if err != nil {
		s.log.Errorf(ctx, "repo.FindByCustomerName failed err=%v", err)
		return nil, fmt.Errorf("search orders: %w", err)
	}
	return orders, nil
}

// ProcessNext - снимает вершину очереди. (nil, false) - очередь пуста, это не ошибка.
func (s *OrderService) ProcessNext(ctx context.Context) (*domain.Order, bool) {
	order, err := s.queue.Pop(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrQueueEmpty) {
			s.log.Errorf(ctx, "queue.Pop failed err=%v", err)
		}
		return nil, false
	}
	s.log.Infof(ctx, "order processed id=%d remaining=%d", order.ID, s.queue.Size())
	return order, true
}

// PeekNext - вершина очереди без изъятия.
func (s *OrderService) PeekNext(ctx context.Context) (*domain.Order, bool) {
	order, err := s.queue.Peek(ctx)
	if err != nil {
		if !errors.Is(err, domain.ErrQueueEmpty) {
			s.log.Errorf(ctx, "queue.Peek failed err=%v", err)
		}
		return nil, false
	}
	return order, true
}

func (s *OrderService) QueueSize() int { return s.queue.Size() }

func (s *OrderService) IsQueueEmpty() bool { return s.queue.IsEmpty() }

// QueueStatus - size/empty/full считаются из одного чтения размера.
func (s *OrderService) QueueStatus() domain.QueueStatus {
	size, capacity := s.queue.Size(), s.queue.Capacity()
	return domain.QueueStatus{
		Size:     size,
		Empty:    size == 0,
		Capacity: capacity,
		Full:     size >= capacity,
	}
}

// ListQueueContents - содержимое очереди от вершины к основанию; очередь не меняется.
func (s *OrderService) ListQueueContents(ctx context.Context) []*domain.Order {
	return s.queue.Snapshot(ctx)
}

// Ping - готовность хранилища (для /health).
func (s *OrderService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
