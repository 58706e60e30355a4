package repository

import (
	"context"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DeliveryRow es una entrega con datos de la orden y del usuario.
type DeliveryRow struct {
	entity.Delivery
	UserID      string
	UserEmail   string
	TotalAmount decimal.Decimal
	OrderStatus string
}

// DeliveryRepository define el puerto de persistencia para despachos.
type DeliveryRepository interface {
	Create(ctx context.Context, d *entity.Delivery) error
	GetByID(ctx context.Context, id string) (*DeliveryRow, error)
	GetByOrderID(ctx context.Context, orderID string) (*DeliveryRow, error)
	// UpdateStatus cambia el estado y opcionalmente la hora real de entrega.
	UpdateStatus(ctx context.Context, id, status string, actualTime *time.Time) (*entity.Delivery, error)
	// ListByDriver devuelve las entregas de un conductor; status vacío = todas.
	ListByDriver(ctx context.Context, driverName, status string) ([]DeliveryRow, error)
	// ListAll devuelve todas las entregas; status vacío = todas.
	ListAll(ctx context.Context, status string) ([]DeliveryRow, error)
}
