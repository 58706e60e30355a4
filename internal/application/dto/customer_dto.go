package dto

import "time"

// UpsertCustomerProfileRequest body para PUT /api/customers/profile.
type UpsertCustomerProfileRequest struct {
	FullName             string `json:"full_name" validate:"required"`
	Phone                string `json:"phone"`
	Address              string `json:"address"`
	DeliveryInstructions string `json:"delivery_instructions"`
}

// CustomerProfileResponse salida de un perfil de cliente.
type CustomerProfileResponse struct {
	ID                   string    `json:"customer_id"`
	UserID               string    `json:"user_id"`
	FullName             string    `json:"full_name"`
	Phone                string    `json:"phone"`
	Address              string    `json:"address"`
	DeliveryInstructions string    `json:"delivery_instructions"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
