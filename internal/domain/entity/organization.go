package entity

import "time"

// Organization es el perfil de una cuenta con rol organization.
// Una organización agrupa una o más ubicaciones de entrega (OrgLocation).
type Organization struct {
	ID            string
	UserID        string
	Name          string
	ContactPerson string
	ContactPhone  string
	OrgType       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
