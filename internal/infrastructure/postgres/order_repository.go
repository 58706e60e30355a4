package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderRowSelect = `
	SELECT o.order_id, o.user_id, o.order_date, o.scheduled_delivery_date, o.total_amount,
	       o.status, o.location_id, o.order_type, u.email, ol.location_name
	FROM orders o
	JOIN users u ON u.user_id = o.user_id
	LEFT JOIN org_locations ol ON ol.location_id = o.location_id`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de pedidos.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera del pedido.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	query := `
		INSERT INTO orders (order_id, user_id, order_date, scheduled_delivery_date, total_amount, status, location_id, order_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		o.ID, o.UserID, o.OrderDate, o.ScheduledDeliveryDate, o.TotalAmount, o.Status,
		o.LocationID, o.OrderType,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

// CreateDetails hace el insert masivo de líneas en una sola sentencia multi-VALUES.
func (r *OrderRepo) CreateDetails(ctx context.Context, details []*entity.OrderDetail) error {
	if len(details) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO order_details (detail_id, order_id, product_id, quantity, unit_price) VALUES `)
	args := make([]any, 0, 5*len(details))
	for i, d := range details {
		if i > 0 {
			sb.WriteString(", ")
		}
		n := len(args)
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", n+1, n+2, n+3, n+4, n+5)
		args = append(args, d.ID, d.OrderID, d.ProductID, d.Quantity, d.UnitPrice)
	}
	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert order details: %w", err)
	}
	return nil
}

// GetByID devuelve el pedido con email de usuario y nombre de ubicación.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*repository.OrderRow, error) {
	var row repository.OrderRow
	err := r.q.QueryRow(ctx, orderRowSelect+` WHERE o.order_id = $1`, id).Scan(
		&row.ID, &row.UserID, &row.OrderDate, &row.ScheduledDeliveryDate, &row.TotalAmount,
		&row.Status, &row.LocationID, &row.OrderType, &row.UserEmail, &row.LocationName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return &row, nil
}

// GetDetails devuelve las líneas del pedido con datos de producto.
func (r *OrderRepo) GetDetails(ctx context.Context, orderID string) ([]repository.OrderDetailRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT od.detail_id, od.order_id, od.product_id, od.quantity, od.unit_price,
		       p.container_type, p.description
		FROM order_details od
		JOIN products p ON p.product_id = od.product_id
		WHERE od.order_id = $1
		ORDER BY p.container_type`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order details: %w", err)
	}
	defer rows.Close()

	var out []repository.OrderDetailRow
	for rows.Next() {
		var d repository.OrderDetailRow
		if err := rows.Scan(&d.ID, &d.OrderID, &d.ProductID, &d.Quantity, &d.UnitPrice,
			&d.ContainerType, &d.Description); err != nil {
			return nil, fmt.Errorf("scan order detail: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByUser devuelve los pedidos de un usuario, más recientes primero.
func (r *OrderRepo) ListByUser(ctx context.Context, userID string) ([]repository.OrderRow, error) {
	return r.list(ctx, orderRowSelect+` WHERE o.user_id = $1 ORDER BY o.order_date DESC`, userID)
}

// ListByLocation devuelve los pedidos de una ubicación de organización.
func (r *OrderRepo) ListByLocation(ctx context.Context, locationID string) ([]repository.OrderRow, error) {
	return r.list(ctx, orderRowSelect+` WHERE o.location_id = $1 ORDER BY o.order_date DESC`, locationID)
}

// ListAll devuelve todos los pedidos, más recientes primero.
func (r *OrderRepo) ListAll(ctx context.Context) ([]repository.OrderRow, error) {
	return r.list(ctx, orderRowSelect+` ORDER BY o.order_date DESC`)
}

// UpdateStatus cambia el estado del pedido.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error) {
	var o entity.Order
	err := r.q.QueryRow(ctx, `
		UPDATE orders SET status = $2
		WHERE order_id = $1
		RETURNING order_id, user_id, order_date, scheduled_delivery_date, total_amount, status, location_id, order_type`,
		id, status).Scan(
		&o.ID, &o.UserID, &o.OrderDate, &o.ScheduledDeliveryDate, &o.TotalAmount, &o.Status,
		&o.LocationID, &o.OrderType,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return &o, nil
}

// Total devuelve SUM(quantity * unit_price) de las líneas de la orden.
func (r *OrderRepo) Total(ctx context.Context, orderID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(quantity * unit_price), 0)
		FROM order_details WHERE order_id = $1`, orderID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum order total: %w", err)
	}
	return total, nil
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...any) ([]repository.OrderRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []repository.OrderRow
	for rows.Next() {
		var row repository.OrderRow
		if err := rows.Scan(&row.ID, &row.UserID, &row.OrderDate, &row.ScheduledDeliveryDate,
			&row.TotalAmount, &row.Status, &row.LocationID, &row.OrderType,
			&row.UserEmail, &row.LocationName); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
