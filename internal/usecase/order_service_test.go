package usecase_test

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports/mocks"
	"github.com/Gunvolt24/order_queue/internal/queue/memory"
	"github.com/Gunvolt24/order_queue/internal/usecase"
	"github.com/Gunvolt24/order_queue/pkg/validate"
)

type noopLogger struct{}

func (noopLogger) Infof(context.Context, string, ...any)  {}
func (noopLogger) Warnf(context.Context, string, ...any)  {}
func (noopLogger) Errorf(context.Context, string, ...any) {}

func newDraft(name string) *domain.OrderDraft {
	return &domain.OrderDraft{
		CustomerName: name,
		Description:  "desc",
		Amount:       decimal.RequireFromString("10.50"),
	}
}

// persisted - имитирует Save: назначает id и время, как это делает БД.
func persisted(id int64) func(context.Context, *domain.OrderDraft) (*domain.Order, error) {
	return func(_ context.Context, d *domain.OrderDraft) (*domain.Order, error) {
		return &domain.Order{
			ID:           id,
			CustomerName: d.CustomerName,
			Description:  d.Description,
			Amount:       d.Amount,
			CreatedAt:    time.Now().UTC(),
		}, nil
	}
}

func TestCreateOrder_PersistsThenPushes(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(4)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.AssignableToTypeOf(&domain.OrderDraft{})).
			DoAndReturn(func(_ context.Context, d *domain.OrderDraft) error {
				if d.CustomerName != "Maria" {
					t.Errorf("draft must be trimmed before validation, got %q", d.CustomerName)
				}
				return nil
			}),
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(persisted(1)),
	)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	got, err := svc.CreateOrder(context.Background(), newDraft("  Maria "))
	if err != nil || got == nil || got.ID != 1 {
		t.Fatalf("unexpected result: order=%+v err=%v", got, err)
	}
	if svc.QueueSize() != 1 {
		t.Fatalf("order must be queued, size=%d", svc.QueueSize())
	}
	top, ok := svc.PeekNext(context.Background())
	if !ok || top.ID != 1 {
		t.Fatalf("peek after create: %+v ok=%v", top, ok)
	}
}

func TestCreateOrder_ValidationFailed(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(4)

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(&validate.FieldErrors{Details: []string{"amount: x"}})
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	_, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
	if !errors.Is(err, validate.ErrInvalidOrder) {
		t.Fatalf("want ErrInvalidOrder, got %v", err)
	}
	var fe *validate.FieldErrors
	if !errors.As(err, &fe) || len(fe.Details) != 1 {
		t.Fatalf("field details must survive wrapping, got %v", err)
	}
	if !svc.IsQueueEmpty() {
		t.Fatalf("queue must stay empty")
	}
}

func TestCreateOrder_RejectPolicy_FullQueue_NoWrite(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(1)
	_ = stack.Push(context.Background(), &domain.Order{ID: 99})

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Times(0)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	got, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
	if !errors.Is(err, domain.ErrQueueFull) || got != nil {
		t.Fatalf("want ErrQueueFull without order, got order=%+v err=%v", got, err)
	}
	if top, _ := svc.PeekNext(context.Background()); top.ID != 99 {
		t.Fatalf("queue top must be untouched, got %d", top.ID)
	}
}

func TestCreateOrder_RejectPolicy_FilledAfterCheck(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	queue := mocks.NewMockOrderQueue(ctrl)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		queue.EXPECT().IsFull().Return(false),
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(persisted(7)),
		queue.EXPECT().Push(gomock.Any(), gomock.Any()).Return(domain.ErrQueueFull),
	)

	svc := usecase.NewOrderService(repo, queue, noopLogger{}, validator, usecase.PolicyReject)

	got, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
	if !errors.Is(err, domain.ErrQueueFull) {
		t.Fatalf("want wrapped ErrQueueFull, got %v", err)
	}
	if got == nil || got.ID != 7 {
		t.Fatalf("persisted order must be returned, got %+v", got)
	}
	if !strings.Contains(err.Error(), "id=7") {
		t.Fatalf("error must mention persisted id, got %q", err.Error())
	}
}

func TestCreateOrder_DropPolicy_FullQueue_Succeeds(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(1)
	_ = stack.Push(context.Background(), &domain.Order{ID: 1})

	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(persisted(2))

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyDrop)

	got, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
	if err != nil || got == nil || got.ID != 2 {
		t.Fatalf("drop policy must succeed, got order=%+v err=%v", got, err)
	}
	if top, _ := svc.PeekNext(context.Background()); top.ID != 1 || svc.QueueSize() != 1 {
		t.Fatalf("queue must be unchanged, top=%d size=%d", top.ID, svc.QueueSize())
	}
}

func TestCreateOrder_RepoError_NotQueued(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(2)

	repoErr := errors.New("insert failed")
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil, repoErr)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	_, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
	if !errors.Is(err, repoErr) || !strings.Contains(err.Error(), "save order") {
		t.Fatalf("want wrapped repo error, got %v", err)
	}
	if !svc.IsQueueEmpty() {
		t.Fatalf("failed save must not push")
	}
}

func TestCreateFromMessage_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)

	svc := usecase.NewOrderService(repo, memory.NewOrderStack(1), noopLogger{}, validator, usecase.PolicyReject)

	for _, raw := range []string{
		"{",
		`{"customer_name":"Ana","description":"x","amount":"1"} {}`,
		`{"customer_name":"Ana","description":"x","amount":"1","order_uid":"u"}`,
	} {
		if err := svc.CreateFromMessage(context.Background(), []byte(raw)); !errors.Is(err, validate.ErrInvalidJSON) {
			t.Fatalf("raw=%s: want ErrInvalidJSON, got %v", raw, err)
		}
	}
}

func TestCreateFromMessage_Success(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(2)

	gomock.InOrder(
		validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil),
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(persisted(5)),
	)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	raw := []byte(`{"customer_name":"Ana","description":"book","amount":"3.20"}`)
	if err := svc.CreateFromMessage(context.Background(), raw); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if o, ok := svc.ProcessNext(context.Background()); !ok || o.ID != 5 || o.Amount.StringFixed(2) != "3.20" {
		t.Fatalf("message order must be queued, got %+v", o)
	}
}

// NUL в тексте отклоняется валидацией до записи в БД
func TestCreateFromMessage_NULText_NotSaved(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockOrderRepository(ctrl) // Save не ожидается
	stack := memory.NewOrderStack(2)

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validate.NewOrderValidator(), usecase.PolicyReject)

	raw := []byte(`{"customer_name":"Ana\u0000","description":"book","amount":"3.20"}`)
	err := svc.CreateFromMessage(context.Background(), raw)
	if !errors.Is(err, validate.ErrInvalidOrder) {
		t.Fatalf("want ErrInvalidOrder, got %v", err)
	}
	if stack.Size() != 0 {
		t.Fatalf("queue must stay empty, size=%d", stack.Size())
	}
}

func TestQueueOperations_LIFO(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	stack := memory.NewOrderStack(3)
	ctx := context.Background()

	for _, id := range []int64{1, 2, 3} {
		_ = stack.Push(ctx, &domain.Order{ID: id})
	}

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	status := svc.QueueStatus()
	if status != (domain.QueueStatus{Size: 3, Empty: false, Capacity: 3, Full: true}) {
		t.Fatalf("unexpected status: %+v", status)
	}

	contents := svc.ListQueueContents(ctx)
	if len(contents) != 3 || contents[0].ID != 3 || contents[2].ID != 1 {
		t.Fatalf("contents must be top to bottom: %+v", contents)
	}
	if svc.QueueSize() != 3 {
		t.Fatalf("listing must not change size")
	}

	for _, want := range []int64{3, 2, 1} {
		o, ok := svc.ProcessNext(ctx)
		if !ok || o.ID != want {
			t.Fatalf("process: want %d, got %+v ok=%v", want, o, ok)
		}
	}

	if o, ok := svc.ProcessNext(ctx); ok || o != nil {
		t.Fatalf("empty queue must signal (nil,false), got %+v", o)
	}
	if o, ok := svc.PeekNext(ctx); ok || o != nil {
		t.Fatalf("empty peek must signal (nil,false), got %+v", o)
	}
	if st := svc.QueueStatus(); !st.Empty || st.Full || st.Size != 0 {
		t.Fatalf("unexpected empty status: %+v", st)
	}
}

func TestGetOrder(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	svc := usecase.NewOrderService(repo, memory.NewOrderStack(1), noopLogger{}, validator, usecase.PolicyReject)
	ctx := context.Background()

	repoErr := errors.New("DB down")
	gomock.InOrder(
		repo.EXPECT().FindByID(gomock.Any(), int64(1)).Return(&domain.Order{ID: 1}, nil),
		repo.EXPECT().FindByID(gomock.Any(), int64(2)).Return(nil, nil),
		repo.EXPECT().FindByID(gomock.Any(), int64(3)).Return(nil, repoErr),
	)

	if o, err := svc.GetOrder(ctx, 1); err != nil || o.ID != 1 {
		t.Fatalf("found: got %+v err=%v", o, err)
	}
	if _, err := svc.GetOrder(ctx, 2); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("missing: want ErrOrderNotFound, got %v", err)
	}
	if _, err := svc.GetOrder(ctx, 3); !errors.Is(err, repoErr) {
		t.Fatalf("repo error must be wrapped, got %v", err)
	}
}

func TestSearchOrders_BlankFallsBackToList(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	svc := usecase.NewOrderService(repo, memory.NewOrderStack(1), noopLogger{}, validator, usecase.PolicyReject)

	all := []*domain.Order{{ID: 2}, {ID: 1}}
	found := []*domain.Order{{ID: 1}}
	repo.EXPECT().FindAll(gomock.Any(), 10, 0).Return(all, nil)
	repo.EXPECT().FindByCustomerName(gomock.Any(), "mar", 5, 5).Return(found, nil)

	if got, err := svc.SearchOrders(context.Background(), "  ", 10, 0); err != nil || len(got) != 2 {
		t.Fatalf("blank search: %+v err=%v", got, err)
	}
	if got, err := svc.SearchOrders(context.Background(), "mar", 5, 5); err != nil || len(got) != 1 {
		t.Fatalf("search: %+v err=%v", got, err)
	}
}

func TestListOrders_RepoError(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	svc := usecase.NewOrderService(repo, memory.NewOrderStack(1), noopLogger{}, validator, usecase.PolicyReject)

	repo.EXPECT().FindAll(gomock.Any(), 20, 0).Return(nil, errors.New("DB down"))
	repo.EXPECT().Ping(gomock.Any()).Return(nil)

	if _, err := svc.ListOrders(context.Background(), 20, 0); err == nil {
		t.Fatalf("expected error")
	}
	if err := svc.Ping(context.Background()); err != nil {
		t.Fatalf("ping: %v", err)
	}
}

// Параллельные CreateOrder: в очередь попадает ровно capacity заказов,
// лишние получают ErrQueueFull (до или после записи), ничего не теряется.
func TestCreateOrder_ConcurrentNeverExceedsCapacity(t *testing.T) {
	ctrl := gomock.NewController(t)

	repo := mocks.NewMockOrderRepository(ctrl)
	validator := mocks.NewMockOrderValidator(ctrl)
	const capacity, callers = 8, 64
	stack := memory.NewOrderStack(capacity)

	var nextID int64
	validator.EXPECT().Validate(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	repo.EXPECT().Save(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, d *domain.OrderDraft) (*domain.Order, error) {
			return persisted(atomic.AddInt64(&nextID, 1))(ctx, d)
		}).AnyTimes()

	svc := usecase.NewOrderService(repo, stack, noopLogger{}, validator, usecase.PolicyReject)

	var (
		wg      sync.WaitGroup
		queued  int64
		refused int64
	)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.CreateOrder(context.Background(), newDraft("Ana"))
			switch {
			case err == nil:
				atomic.AddInt64(&queued, 1)
			case errors.Is(err, domain.ErrQueueFull):
				atomic.AddInt64(&refused, 1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if queued != capacity || queued+refused != callers {
		t.Fatalf("queued=%d refused=%d", queued, refused)
	}
	if svc.QueueSize() != capacity {
		t.Fatalf("size=%d, want %d", svc.QueueSize(), capacity)
	}
}

func TestParseQueueFullPolicy(t *testing.T) {
	cases := map[string]usecase.QueueFullPolicy{
		"":       usecase.PolicyReject,
		"reject": usecase.PolicyReject,
		" DROP ": usecase.PolicyDrop,
	}
	for in, want := range cases {
		got, err := usecase.ParseQueueFullPolicy(in)
		if err != nil || got != want {
			t.Fatalf("ParseQueueFullPolicy(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := usecase.ParseQueueFullPolicy("block"); err == nil {
		t.Fatalf("expected error for unknown policy")
	}
}
