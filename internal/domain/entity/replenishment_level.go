package entity

import "time"

// ReplenishmentLevel es el registro de stock por (ubicación, producto):
// nivel actual contra nivel objetivo. Única por (LocationID, ProductID).
type ReplenishmentLevel struct {
	LocationID   string
	ProductID    string
	CurrentLevel int
	TargetLevel  int
	LastUpdated  time.Time
}

// Deficit devuelve target − current con piso en 0.
func (l ReplenishmentLevel) Deficit() int {
	d := l.TargetLevel - l.CurrentLevel
	if d < 0 {
		return 0
	}
	return d
}
