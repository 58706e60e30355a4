package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin        = "admin"
	RoleOrganization = "organization"
	RoleCustomer     = "customer"
)

// User representa una cuenta del sistema. Los perfiles (organización o cliente)
// se guardan en tablas aparte y referencian user_id.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, organization, customer
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
