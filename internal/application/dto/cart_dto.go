package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddToCartRequest body para POST /api/cart.
type AddToCartRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// UpdateCartQuantityRequest body para PUT /api/cart/:productId.
// Cantidad <= 0 elimina la línea.
type UpdateCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartLineResponse línea del carrito con datos del producto.
type CartLineResponse struct {
	ProductID     string          `json:"product_id"`
	ContainerType string          `json:"container_type"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Quantity      int             `json:"quantity"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// CartResponse carrito completo con total calculado.
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total decimal.Decimal    `json:"total"`
}

// InvalidCartLineResponse línea cuya cantidad supera el stock.
type InvalidCartLineResponse struct {
	ProductID     string `json:"product_id"`
	ContainerType string `json:"container_type"`
	Quantity      int    `json:"quantity"`
	AvailableQty  int    `json:"available_qty"`
}
