package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	ContainerType string          `json:"container_type" validate:"required"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price" validate:"required"`
	CurrentStock  int             `json:"current_stock" validate:"min=0"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil se conservan.
type UpdateProductRequest struct {
	ContainerType *string          `json:"container_type,omitempty"`
	Description   *string          `json:"description,omitempty"`
	UnitPrice     *decimal.Decimal `json:"unit_price,omitempty"`
	CurrentStock  *int             `json:"current_stock,omitempty"`
	IsActive      *bool            `json:"is_active,omitempty"`
}

// AdjustStockRequest body para PATCH /api/products/:id/stock.
type AdjustStockRequest struct {
	Delta int `json:"delta" validate:"required"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"product_id"`
	ContainerType string          `json:"container_type"`
	Description   string          `json:"description"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	CurrentStock  int             `json:"current_stock"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
