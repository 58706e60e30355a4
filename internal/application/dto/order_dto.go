package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemInput línea de un pedido nuevo.
type OrderItemInput struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// CreateOrderRequest body para POST /api/orders.
// LocationID solo aplica a pedidos de tipo organization.
type CreateOrderRequest struct {
	ScheduledDeliveryDate time.Time        `json:"scheduled_delivery_date" validate:"required"`
	OrderType             string           `json:"order_type" validate:"required,oneof=customer organization"`
	LocationID            *string          `json:"location_id,omitempty"`
	Items                 []OrderItemInput `json:"items" validate:"required,min=1"`
}

// CheckoutRequest body para POST /api/orders/checkout.
type CheckoutRequest struct {
	ScheduledDeliveryDate time.Time `json:"scheduled_delivery_date" validate:"required"`
}

// UpdateOrderStatusRequest body para PUT /api/orders/:id/status.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending confirmed delivery done"`
}

// OrderResponse cabecera de un pedido.
type OrderResponse struct {
	ID                    string          `json:"order_id"`
	UserID                string          `json:"user_id"`
	UserEmail             string          `json:"user_email,omitempty"`
	OrderDate             time.Time       `json:"order_date"`
	ScheduledDeliveryDate time.Time       `json:"scheduled_delivery_date"`
	TotalAmount           decimal.Decimal `json:"total_amount"`
	Status                string          `json:"status"`
	OrderType             string          `json:"order_type"`
	LocationID            *string         `json:"location_id,omitempty"`
	LocationName          *string         `json:"location_name,omitempty"`
}

// OrderDetailResponse línea de un pedido.
type OrderDetailResponse struct {
	ID            string          `json:"detail_id"`
	OrderID       string          `json:"order_id"`
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	ContainerType string          `json:"container_type"`
	Description   string          `json:"description"`
}

// OrderWithDetailsResponse pedido completo.
type OrderWithDetailsResponse struct {
	Order   OrderResponse         `json:"order"`
	Details []OrderDetailResponse `json:"details"`
}
