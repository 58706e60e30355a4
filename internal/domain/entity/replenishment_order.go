package entity

import "time"

// Estados de una orden de reposición. La única transición válida es
// pending → completed; no existe cancelación.
const (
	ReplenishmentStatusPending   = "pending"
	ReplenishmentStatusCompleted = "completed"
)

// ValidReplenishmentStatus reporta si s es un estado reconocido.
func ValidReplenishmentStatus(s string) bool {
	return s == ReplenishmentStatusPending || s == ReplenishmentStatusCompleted
}

// ReplenishmentOrder es la cabecera de una orden de reposición para una ubicación.
type ReplenishmentOrder struct {
	ID            string
	LocationID    string
	ScheduledDate time.Time
	Status        string
	CreatedAt     time.Time
}

// ReplenishmentDetail es una línea de la orden: cantidad a reponer de un producto.
// Se crea junto con la orden y es inmutable; Quantity siempre > 0.
type ReplenishmentDetail struct {
	ReplenishmentID string
	ProductID       string
	Quantity        int
}
