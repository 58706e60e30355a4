package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// CartLine es una línea del carrito con datos y precio del producto.
type CartLine struct {
	entity.CartItem
	ContainerType string
	Description   string
	UnitPrice     decimal.Decimal
}

// InvalidCartLine es una línea cuya cantidad supera el stock disponible.
type InvalidCartLine struct {
	ProductID     string
	ContainerType string
	Quantity      int
	AvailableQty  int
}

// CartRepository define el puerto de persistencia para el carrito.
type CartRepository interface {
	GetLines(ctx context.Context, userID string) ([]CartLine, error)
	GetItem(ctx context.Context, userID, productID string) (*entity.CartItem, error)
	// Upsert inserta la línea o suma la cantidad sobre la existente
	// (ON CONFLICT sobre (user_id, product_id)).
	Upsert(ctx context.Context, item *entity.CartItem) (*entity.CartItem, error)
	// SetQuantity fija la cantidad; domain.ErrNotFound si la línea no existe.
	SetQuantity(ctx context.Context, userID, productID string, quantity int) (*entity.CartItem, error)
	Remove(ctx context.Context, userID, productID string) error
	Clear(ctx context.Context, userID string) error
	// Validate devuelve las líneas con cantidad por encima del stock del producto.
	Validate(ctx context.Context, userID string) ([]InvalidCartLine, error)
}
