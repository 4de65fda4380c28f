package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/Gunvolt24/order_queue/internal/domain"
	"github.com/Gunvolt24/order_queue/internal/ports"
)

// Проверка, что OrderRepository удовлетворяет интерфейсу OrderRepository.
var _ ports.OrderRepository = (*OrderRepository)(nil)

const (
	ordersTable  = "orders"
	defaultLimit = 20
	maxLimit     = 100
)

// amount читаем текстом, чтобы не терять масштаб NUMERIC(10,2).
var orderColumns = []string{"id", "customer_name", "description", "amount::text", "created_at"}

// OrderRepository - реализация репозитория заказов на Postgres (pgxpool + squirrel).
type OrderRepository struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewOrderRepository - конструктор OrderRepository.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// Save - вставляет заказ; id и created_at назначает БД.
func (r *OrderRepository) Save(ctx context.Context, draft *domain.OrderDraft) (*domain.Order, error) {
	if draft == nil {
		return nil, errors.New("order draft is nil")
	}

	amount := draft.Amount.Round(2)
	query, args, err := r.sb.
		Insert(ordersTable).
		Columns("customer_name", "description", "amount").
		Values(draft.CustomerName, draft.Description, amount.StringFixed(2)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build insert: %w", err)
	}

	order := &domain.Order{
		CustomerName: draft.CustomerName,
		Description:  draft.Description,
		Amount:       amount,
	}
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&order.ID, &order.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return order, nil
}

// FindByID - заказ по id. Если не нашли, возвращает (nil, nil).
func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	query, args, err := r.sb.
		Select(orderColumns...).
		From(ordersTable).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select: %w", err)
	}

	order, err := scanOrder(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select order: %w", err)
	}
	return order, nil
}

// FindAll - страница заказов, новые сверху.
func (r *OrderRepository) FindAll(ctx context.Context, limit, offset int) ([]*domain.Order, error) {
	return r.list(ctx, nil, limit, offset)
}

// FindByCustomerName - поиск по подстроке имени клиента без учёта регистра.
func (r *OrderRepository) FindByCustomerName(ctx context.Context, substr string, limit, offset int) ([]*domain.Order, error) {
	pattern := "%" + escapeLike(strings.TrimSpace(substr)) + "%"
	return r.list(ctx, sq.ILike{"customer_name": pattern}, limit, offset)
}

// Ping - проверка доступности БД для /health.
func (r *OrderRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *OrderRepository) list(ctx context.Context, where sq.Sqlizer, limit, offset int) ([]*domain.Order, error) {
	limit, offset = normalizePage(limit, offset)

	builder := r.sb.
		Select(orderColumns...).
		From(ordersTable).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))
	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select orders: %w", err)
	}
	defer rows.Close()

	orders := make([]*domain.Order, 0, limit)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("orders rows: %w", err)
	}
	return orders, nil
}

func scanOrder(row pgx.Row) (*domain.Order, error) {
	var (
		order     domain.Order
		amountRaw string
	)
	if err := row.Scan(&order.ID, &order.CustomerName, &order.Description, &amountRaw, &order.CreatedAt); err != nil {
		return nil, err
	}
	amount, err := decimal.NewFromString(amountRaw)
	if err != nil {
		return nil, fmt.Errorf("parse amount %q: %w", amountRaw, err)
	}
	order.Amount = amount
	return &order, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// escapeLike - экранирует спецсимволы LIKE, чтобы подстрока искалась буквально.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
