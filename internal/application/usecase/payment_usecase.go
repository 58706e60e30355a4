package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// PaymentUseCase pagos de pedidos. Un pago por orden; el monto debe coincidir
// con el total de la orden.
type PaymentUseCase struct {
	payments repository.PaymentRepository
	orders   repository.OrderRepository
}

// NewPaymentUseCase construye el caso de uso.
func NewPaymentUseCase(payments repository.PaymentRepository, orders repository.OrderRepository) *PaymentUseCase {
	return &PaymentUseCase{payments: payments, orders: orders}
}

// Create registra el pago de una orden en estado pending.
func (uc *PaymentUseCase) Create(ctx context.Context, in dto.CreatePaymentRequest) (*dto.PaymentResponse, error) {
	if in.OrderID == "" || in.Method == "" || !in.Amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	if !in.Amount.Equal(order.TotalAmount) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.payments.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	p := &entity.Payment{
		ID:          uuid.New().String(),
		OrderID:     in.OrderID,
		Amount:      in.Amount,
		Method:      in.Method,
		Status:      entity.PaymentStatusPending,
		PaymentDate: time.Now(),
	}
	if err := uc.payments.Create(ctx, p); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, p.ID)
}

// GetByID devuelve el pago con datos de la orden, o ErrNotFound.
func (uc *PaymentUseCase) GetByID(ctx context.Context, id string) (*dto.PaymentResponse, error) {
	row, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return toPaymentResponse(row), nil
}

// GetByOrderID devuelve el pago de una orden, o ErrNotFound.
func (uc *PaymentUseCase) GetByOrderID(ctx context.Context, orderID string) (*dto.PaymentResponse, error) {
	p, err := uc.payments.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return uc.GetByID(ctx, p.ID)
}

// UpdateStatus cambia el estado del pago. Aprobar confirma la orden asociada.
func (uc *PaymentUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdatePaymentStatusRequest) (*dto.PaymentResponse, error) {
	if !entity.ValidPaymentStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	row, err := uc.payments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	if _, err := uc.payments.UpdateStatus(ctx, id, in.Status, in.TransactionID); err != nil {
		return nil, err
	}
	if in.Status == entity.PaymentStatusApproved {
		if _, err := uc.orders.UpdateStatus(ctx, row.OrderID, entity.OrderStatusConfirmed); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, id)
}

// ListByUser devuelve los pagos de los pedidos de un usuario.
func (uc *PaymentUseCase) ListByUser(ctx context.Context, userID string) ([]dto.PaymentResponse, error) {
	rows, err := uc.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(rows), nil
}

// ListAll devuelve todos los pagos (solo admin).
func (uc *PaymentUseCase) ListAll(ctx context.Context) ([]dto.PaymentResponse, error) {
	rows, err := uc.payments.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toPaymentResponses(rows), nil
}

func toPaymentResponse(r *repository.PaymentRow) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:            r.ID,
		OrderID:       r.OrderID,
		Amount:        r.Amount,
		Method:        r.Method,
		Status:        r.Status,
		TransactionID: r.TransactionID,
		PaymentDate:   r.PaymentDate,
		UserEmail:     r.UserEmail,
		OrderStatus:   r.OrderStatus,
	}
}

func toPaymentResponses(rows []repository.PaymentRow) []dto.PaymentResponse {
	out := make([]dto.PaymentResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toPaymentResponse(&rows[i]))
	}
	return out
}
