package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product es un envase de agua del catálogo (galón, botellón, botella...).
// Baja lógica vía IsActive; nunca se borra la fila.
type Product struct {
	ID            string
	ContainerType string
	Description   string
	UnitPrice     decimal.Decimal
	CurrentStock  int // stock global en planta, distinto del nivel por ubicación
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
