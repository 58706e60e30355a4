package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de cliente.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusDelivery  = "delivery"
	OrderStatusDone      = "done"
)

// Tipos de orden: compra puntual de un cliente o pedido de una ubicación de organización.
const (
	OrderTypeCustomer     = "customer"
	OrderTypeOrganization = "organization"
)

// ValidOrderStatus reporta si s es un estado reconocido.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusDelivery, OrderStatusDone:
		return true
	}
	return false
}

// Order es la cabecera de un pedido de agua.
// LocationID es nil salvo para órdenes de tipo organization.
type Order struct {
	ID                    string
	UserID                string
	OrderDate             time.Time
	ScheduledDeliveryDate time.Time
	TotalAmount           decimal.Decimal
	Status                string
	LocationID            *string
	OrderType             string
}

// OrderDetail es una línea del pedido con el precio unitario congelado.
type OrderDetail struct {
	ID        string
	OrderID   string
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}
