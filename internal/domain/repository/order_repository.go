package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OrderRow es una cabecera de orden con email de usuario y nombre de ubicación.
type OrderRow struct {
	entity.Order
	UserEmail    string
	LocationName *string
}

// OrderDetailRow es una línea de orden con datos descriptivos del producto.
type OrderDetailRow struct {
	entity.OrderDetail
	ContainerType string
	Description   string
}

// OrderRepository define el puerto de persistencia para órdenes de cliente.
type OrderRepository interface {
	Create(ctx context.Context, o *entity.Order) error
	CreateDetails(ctx context.Context, details []*entity.OrderDetail) error
	GetByID(ctx context.Context, id string) (*OrderRow, error)
	GetDetails(ctx context.Context, orderID string) ([]OrderDetailRow, error)
	ListByUser(ctx context.Context, userID string) ([]OrderRow, error)
	ListByLocation(ctx context.Context, locationID string) ([]OrderRow, error)
	ListAll(ctx context.Context) ([]OrderRow, error)
	// UpdateStatus cambia el estado; domain.ErrNotFound si no existe.
	UpdateStatus(ctx context.Context, id, status string) (*entity.Order, error)
	// Total devuelve SUM(quantity * unit_price) de las líneas de la orden.
	Total(ctx context.Context, orderID string) (decimal.Decimal, error)
}
