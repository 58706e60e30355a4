package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// DeliveryUseCase despachos físicos de pedidos: conductor, vehículo y horas.
type DeliveryUseCase struct {
	deliveries repository.DeliveryRepository
	orders     repository.OrderRepository
}

// NewDeliveryUseCase construye el caso de uso.
func NewDeliveryUseCase(deliveries repository.DeliveryRepository, orders repository.OrderRepository) *DeliveryUseCase {
	return &DeliveryUseCase{deliveries: deliveries, orders: orders}
}

// Create programa el despacho de una orden. Una orden solo tiene un despacho;
// repetirlo es un conflicto.
func (uc *DeliveryUseCase) Create(ctx context.Context, in dto.CreateDeliveryRequest) (*dto.DeliveryResponse, error) {
	if in.OrderID == "" || in.DriverName == "" || in.DepartureTime.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	order, err := uc.orders.GetByID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.deliveries.GetByOrderID(ctx, in.OrderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	d := &entity.Delivery{
		ID:            uuid.New().String(),
		OrderID:       in.OrderID,
		DriverName:    in.DriverName,
		VehicleID:     in.VehicleID,
		DepartureTime: in.DepartureTime,
		Status:        entity.DeliveryStatusScheduled,
		Notes:         in.Notes,
	}
	if err := uc.deliveries.Create(ctx, d); err != nil {
		return nil, err
	}
	// La orden pasa a delivery al programar el despacho.
	if _, err := uc.orders.UpdateStatus(ctx, in.OrderID, entity.OrderStatusDelivery); err != nil {
		return nil, err
	}
	return uc.GetByID(ctx, d.ID)
}

// GetByID devuelve el despacho con datos de la orden, o ErrNotFound.
func (uc *DeliveryUseCase) GetByID(ctx context.Context, id string) (*dto.DeliveryResponse, error) {
	row, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(row), nil
}

// GetByOrderID devuelve el despacho de una orden, o ErrNotFound.
func (uc *DeliveryUseCase) GetByOrderID(ctx context.Context, orderID string) (*dto.DeliveryResponse, error) {
	row, err := uc.deliveries.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}
	return toDeliveryResponse(row), nil
}

// UpdateStatus cambia el estado del despacho. Marcar delivered sin hora real
// usa la hora actual y cierra la orden (done).
func (uc *DeliveryUseCase) UpdateStatus(ctx context.Context, id string, in dto.UpdateDeliveryStatusRequest) (*dto.DeliveryResponse, error) {
	if !entity.ValidDeliveryStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	row, err := uc.deliveries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound
	}

	actualTime := in.ActualDeliveryTime
	if in.Status == entity.DeliveryStatusDelivered && actualTime == nil {
		now := time.Now()
		actualTime = &now
	}
	if _, err := uc.deliveries.UpdateStatus(ctx, id, in.Status, actualTime); err != nil {
		return nil, err
	}
	if in.Status == entity.DeliveryStatusDelivered {
		if _, err := uc.orders.UpdateStatus(ctx, row.OrderID, entity.OrderStatusDone); err != nil {
			return nil, err
		}
	}
	return uc.GetByID(ctx, id)
}

// ListByDriver devuelve los despachos de un conductor; status vacío = todos.
func (uc *DeliveryUseCase) ListByDriver(ctx context.Context, driverName, status string) ([]dto.DeliveryResponse, error) {
	if status != "" && !entity.ValidDeliveryStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.deliveries.ListByDriver(ctx, driverName, status)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(rows), nil
}

// ListAll devuelve todos los despachos; status vacío = todos.
func (uc *DeliveryUseCase) ListAll(ctx context.Context, status string) ([]dto.DeliveryResponse, error) {
	if status != "" && !entity.ValidDeliveryStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	rows, err := uc.deliveries.ListAll(ctx, status)
	if err != nil {
		return nil, err
	}
	return toDeliveryResponses(rows), nil
}

func toDeliveryResponse(r *repository.DeliveryRow) *dto.DeliveryResponse {
	return &dto.DeliveryResponse{
		ID:                 r.ID,
		OrderID:            r.OrderID,
		DriverName:         r.DriverName,
		VehicleID:          r.VehicleID,
		DepartureTime:      r.DepartureTime,
		ActualDeliveryTime: r.ActualDeliveryTime,
		Status:             r.Status,
		Notes:              r.Notes,
		UserEmail:          r.UserEmail,
		TotalAmount:        r.TotalAmount,
		OrderStatus:        r.OrderStatus,
	}
}

func toDeliveryResponses(rows []repository.DeliveryRow) []dto.DeliveryResponse {
	out := make([]dto.DeliveryResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toDeliveryResponse(&rows[i]))
	}
	return out
}
