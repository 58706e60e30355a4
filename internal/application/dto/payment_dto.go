package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePaymentRequest body para POST /api/payments.
type CreatePaymentRequest struct {
	OrderID string          `json:"order_id" validate:"required"`
	Amount  decimal.Decimal `json:"amount" validate:"required"`
	Method  string          `json:"payment_method" validate:"required"`
}

// UpdatePaymentStatusRequest body para PUT /api/payments/:id/status.
type UpdatePaymentStatusRequest struct {
	Status        string  `json:"status" validate:"required,oneof=pending approved rejected"`
	TransactionID *string `json:"transaction_id,omitempty"`
}

// PaymentResponse salida de un pago.
type PaymentResponse struct {
	ID            string          `json:"payment_id"`
	OrderID       string          `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"payment_method"`
	Status        string          `json:"status"`
	TransactionID *string         `json:"transaction_id,omitempty"`
	PaymentDate   time.Time       `json:"payment_date"`
	UserEmail     string          `json:"user_email,omitempty"`
	OrderStatus   string          `json:"order_status,omitempty"`
}
