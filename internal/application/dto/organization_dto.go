package dto

import "time"

// UpsertOrganizationRequest body para PUT /api/organizations/profile.
// Crea el perfil si el usuario no tiene uno, si no lo actualiza.
type UpsertOrganizationRequest struct {
	Name          string `json:"org_name" validate:"required"`
	ContactPerson string `json:"contact_person"`
	ContactPhone  string `json:"contact_phone_org"`
	OrgType       string `json:"org_type"`
}

// OrganizationResponse salida de un perfil de organización.
type OrganizationResponse struct {
	ID            string    `json:"org_id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"org_name"`
	ContactPerson string    `json:"contact_person"`
	ContactPhone  string    `json:"contact_phone_org"`
	OrgType       string    `json:"org_type"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// CreateLocationRequest body para POST /api/organizations/locations.
type CreateLocationRequest struct {
	Name                 string `json:"location_name" validate:"required"`
	Address              string `json:"address" validate:"required"`
	ContactPerson        string `json:"contact_person"`
	ContactPhone         string `json:"contact_phone"`
	DeliveryInstructions string `json:"delivery_instructions"`
	DeliveryDay          string `json:"delivery_day" validate:"required"`
}

// UpdateLocationRequest body para PUT /api/organizations/locations/:id.
type UpdateLocationRequest struct {
	Name                 *string `json:"location_name,omitempty"`
	Address              *string `json:"address,omitempty"`
	ContactPerson        *string `json:"contact_person,omitempty"`
	ContactPhone         *string `json:"contact_phone,omitempty"`
	DeliveryInstructions *string `json:"delivery_instructions,omitempty"`
	DeliveryDay          *string `json:"delivery_day,omitempty"`
}

// LocationResponse salida de una ubicación de entrega.
type LocationResponse struct {
	ID                   string    `json:"location_id"`
	OrgID                string    `json:"org_id"`
	Name                 string    `json:"location_name"`
	Address              string    `json:"address"`
	ContactPerson        string    `json:"contact_person"`
	ContactPhone         string    `json:"contact_phone"`
	DeliveryInstructions string    `json:"delivery_instructions"`
	DeliveryDay          string    `json:"delivery_day"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}
