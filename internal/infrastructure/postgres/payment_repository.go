package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

const paymentRowSelect = `
	SELECT p.payment_id, p.order_id, p.amount, p.payment_method, p.status, p.transaction_id, p.payment_date,
	       o.user_id, u.email, o.status
	FROM payments p
	JOIN orders o ON o.order_id = p.order_id
	JOIN users u ON u.user_id = o.user_id`

// PaymentRepo implementación del puerto PaymentRepository sobre PostgreSQL.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador de pagos.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create persiste un pago. Una orden solo admite uno (unique sobre order_id).
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	query := `
		INSERT INTO payments (payment_id, order_id, amount, payment_method, status, transaction_id, payment_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.OrderID, p.Amount, p.Method, p.Status, p.TransactionID, p.PaymentDate,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// GetByID devuelve el pago con datos de la orden.
func (r *PaymentRepo) GetByID(ctx context.Context, id string) (*repository.PaymentRow, error) {
	var row repository.PaymentRow
	err := r.q.QueryRow(ctx, paymentRowSelect+` WHERE p.payment_id = $1`, id).Scan(
		&row.ID, &row.OrderID, &row.Amount, &row.Method, &row.Status, &row.TransactionID,
		&row.PaymentDate, &row.UserID, &row.UserEmail, &row.OrderStatus,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return &row, nil
}

// GetByOrderID devuelve el pago de una orden.
func (r *PaymentRepo) GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(ctx, `
		SELECT payment_id, order_id, amount, payment_method, status, transaction_id, payment_date
		FROM payments WHERE order_id = $1`, orderID).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.TransactionID, &p.PaymentDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment by order: %w", err)
	}
	return &p, nil
}

// UpdateStatus cambia el estado; transactionID nil conserva el existente.
func (r *PaymentRepo) UpdateStatus(ctx context.Context, id, status string, transactionID *string) (*entity.Payment, error) {
	var p entity.Payment
	err := r.q.QueryRow(ctx, `
		UPDATE payments
		SET status = $2, transaction_id = COALESCE($3, transaction_id)
		WHERE payment_id = $1
		RETURNING payment_id, order_id, amount, payment_method, status, transaction_id, payment_date`,
		id, status, transactionID).Scan(
		&p.ID, &p.OrderID, &p.Amount, &p.Method, &p.Status, &p.TransactionID, &p.PaymentDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update payment status: %w", err)
	}
	return &p, nil
}

// ListByUser devuelve los pagos de los pedidos de un usuario.
func (r *PaymentRepo) ListByUser(ctx context.Context, userID string) ([]repository.PaymentRow, error) {
	return r.list(ctx, paymentRowSelect+` WHERE o.user_id = $1 ORDER BY p.payment_date DESC`, userID)
}

// ListAll devuelve todos los pagos, más recientes primero.
func (r *PaymentRepo) ListAll(ctx context.Context) ([]repository.PaymentRow, error) {
	return r.list(ctx, paymentRowSelect+` ORDER BY p.payment_date DESC`)
}

func (r *PaymentRepo) list(ctx context.Context, query string, args ...any) ([]repository.PaymentRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()

	var out []repository.PaymentRow
	for rows.Next() {
		var row repository.PaymentRow
		if err := rows.Scan(&row.ID, &row.OrderID, &row.Amount, &row.Method, &row.Status,
			&row.TransactionID, &row.PaymentDate, &row.UserID, &row.UserEmail, &row.OrderStatus); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}
