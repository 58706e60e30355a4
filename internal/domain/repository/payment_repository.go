package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// PaymentRow es un pago con datos de la orden asociada.
type PaymentRow struct {
	entity.Payment
	UserID      string
	UserEmail   string
	OrderStatus string
}

// PaymentRepository define el puerto de persistencia para pagos.
type PaymentRepository interface {
	Create(ctx context.Context, p *entity.Payment) error
	GetByID(ctx context.Context, id string) (*PaymentRow, error)
	GetByOrderID(ctx context.Context, orderID string) (*entity.Payment, error)
	// UpdateStatus cambia el estado; transactionID nil conserva el existente.
	UpdateStatus(ctx context.Context, id, status string, transactionID *string) (*entity.Payment, error)
	ListByUser(ctx context.Context, userID string) ([]PaymentRow, error)
	ListAll(ctx context.Context) ([]PaymentRow, error)
}
