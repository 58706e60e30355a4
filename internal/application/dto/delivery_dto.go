package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryRequest body para POST /api/deliveries.
type CreateDeliveryRequest struct {
	OrderID       string    `json:"order_id" validate:"required"`
	DriverName    string    `json:"driver_name" validate:"required"`
	VehicleID     string    `json:"vehicle_id"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	Notes         string    `json:"notes"`
}

// UpdateDeliveryStatusRequest body para PUT /api/deliveries/:id/status.
type UpdateDeliveryStatusRequest struct {
	Status             string     `json:"status" validate:"required"`
	ActualDeliveryTime *time.Time `json:"actual_delivery_time,omitempty"`
}

// DeliveryResponse salida de una entrega.
type DeliveryResponse struct {
	ID                 string          `json:"delivery_id"`
	OrderID            string          `json:"order_id"`
	DriverName         string          `json:"driver_name"`
	VehicleID          string          `json:"vehicle_id"`
	DepartureTime      time.Time       `json:"departure_time"`
	ActualDeliveryTime *time.Time      `json:"actual_delivery_time,omitempty"`
	Status             string          `json:"delivery_status"`
	Notes              string          `json:"notes"`
	UserEmail          string          `json:"user_email,omitempty"`
	TotalAmount        decimal.Decimal `json:"total_amount,omitempty"`
	OrderStatus        string          `json:"order_status,omitempty"`
}
