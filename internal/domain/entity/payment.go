package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pago.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusApproved = "approved"
	PaymentStatusRejected = "rejected"
)

// ValidPaymentStatus reporta si s es un estado reconocido.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusApproved, PaymentStatusRejected:
		return true
	}
	return false
}

// Payment es el pago asociado a una orden.
type Payment struct {
	ID            string
	OrderID       string
	Amount        decimal.Decimal
	Method        string
	Status        string
	TransactionID *string
	PaymentDate   time.Time
}
