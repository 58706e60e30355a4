package entity

import "time"

// CustomerProfile es el perfil de una cuenta con rol customer.
type CustomerProfile struct {
	ID                   string
	UserID               string
	FullName             string
	Phone                string
	Address              string
	DeliveryInstructions string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}
