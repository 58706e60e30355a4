package entity

import "time"

// OrgLocation es una ubicación de entrega de una organización.
// DeliveryDay guarda el nombre del día de la semana (sunday..saturday) usado
// por el generador semanal de órdenes de reposición.
type OrgLocation struct {
	ID                   string
	OrgID                string
	Name                 string
	Address              string
	ContactPerson        string
	ContactPhone         string
	DeliveryInstructions string
	DeliveryDay          string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
