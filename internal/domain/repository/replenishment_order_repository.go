package repository

import (
	"context"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DetailInput es una línea a insertar en una orden de reposición.
type DetailInput struct {
	ProductID string
	Quantity  int
}

// ReplenishmentDetailRow es una línea de orden con datos descriptivos del producto.
type ReplenishmentDetailRow struct {
	entity.ReplenishmentDetail
	ContainerType string
	Description   string
	UnitPrice     decimal.Decimal
}

// ReplenishmentOrderRow es una cabecera enriquecida con ubicación y organización.
type ReplenishmentOrderRow struct {
	entity.ReplenishmentOrder
	LocationName string
	Address      string
	OrgID        string
	OrgName      string
}

// ReplenishmentOrderRepository define el puerto de órdenes de reposición.
type ReplenishmentOrderRepository interface {
	// Create inserta la cabecera; el estado queda en pending.
	Create(ctx context.Context, locationID string, scheduledDate time.Time) (*entity.ReplenishmentOrder, error)
	// AddDetails hace el insert masivo de líneas. El caller filtra cantidades
	// no positivas; una cantidad <= 0 devuelve domain.ErrInvalidInput.
	AddDetails(ctx context.Context, replenishmentID string, items []DetailInput) error
	// GetByID devuelve la orden con datos de ubicación, o nil.
	GetByID(ctx context.Context, replenishmentID string) (*ReplenishmentOrderRow, error)
	// GetDetails devuelve las líneas con datos de producto.
	GetDetails(ctx context.Context, replenishmentID string) ([]ReplenishmentDetailRow, error)
	// ListByLocation devuelve las órdenes de una ubicación, más recientes primero.
	ListByLocation(ctx context.Context, locationID string) ([]*entity.ReplenishmentOrder, error)
	// ListPending devuelve todas las órdenes pendientes con ubicación y organización.
	ListPending(ctx context.Context) ([]ReplenishmentOrderRow, error)
	// UpdateStatus cambia el estado; domain.ErrNotFound si la orden no existe.
	UpdateStatus(ctx context.Context, replenishmentID, status string) (*entity.ReplenishmentOrder, error)
}
