package entity

import "time"

// Estados de una entrega.
const (
	DeliveryStatusScheduled = "scheduled"
	DeliveryStatusInTransit = "in_transit"
	DeliveryStatusDelivered = "delivered"
	DeliveryStatusFailed    = "failed"
)

// ValidDeliveryStatus reporta si s es un estado reconocido.
func ValidDeliveryStatus(s string) bool {
	switch s {
	case DeliveryStatusScheduled, DeliveryStatusInTransit, DeliveryStatusDelivered, DeliveryStatusFailed:
		return true
	}
	return false
}

// Delivery es el despacho físico de una orden: conductor, vehículo y horas.
type Delivery struct {
	ID                 string
	OrderID            string
	DriverName         string
	VehicleID          string
	DepartureTime      time.Time
	ActualDeliveryTime *time.Time
	Status             string
	Notes              string
}
