// Package schedule calcula fechas de entrega a partir del día de reparto
// configurado en cada ubicación.
package schedule

import (
	"strings"
	"time"

	"github.com/acuaflow/acuaflow-api/internal/domain"
)

// weekdays índice 0=sunday..6=saturday, igual que time.Weekday.
var weekdays = map[string]int{
	"sunday":    0,
	"monday":    1,
	"tuesday":   2,
	"wednesday": 3,
	"thursday":  4,
	"friday":    5,
	"saturday":  6,
}

// ValidDeliveryDay reporta si s es un nombre de día reconocido (insensible a
// mayúsculas).
func ValidDeliveryDay(s string) bool {
	_, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// NextDeliveryDate devuelve la próxima ocurrencia del día de reparto después
// de today. El mismo día nunca cuenta: si hoy es el día configurado, la
// entrega cae en 7 días. El resultado está siempre entre 1 y 7 días adelante.
// deliveryDay es insensible a mayúsculas; un nombre no reconocido devuelve
// domain.ErrInvalidInput.
func NextDeliveryDate(deliveryDay string, today time.Time) (time.Time, error) {
	target, ok := weekdays[strings.ToLower(strings.TrimSpace(deliveryDay))]
	if !ok {
		return time.Time{}, domain.ErrInvalidInput
	}
	delta := target - int(today.Weekday())
	if delta <= 0 {
		delta += 7
	}
	return today.AddDate(0, 0, delta), nil
}
