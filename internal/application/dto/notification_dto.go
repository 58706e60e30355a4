package dto

import "time"

// SendNotificationRequest body para POST /api/notifications (solo admin).
type SendNotificationRequest struct {
	OrgID      string  `json:"org_id" validate:"required"`
	LocationID string  `json:"location_id"`
	ProductID  *string `json:"product_id,omitempty"`
	Subject    string  `json:"subject" validate:"required"`
	Message    string  `json:"message" validate:"required"`
	SentTo     string  `json:"sent_to" validate:"required,email"`
}

// NotificationResponse salida de una notificación registrada.
type NotificationResponse struct {
	ID            string    `json:"notification_id"`
	OrgID         string    `json:"org_id"`
	LocationID    string    `json:"location_id"`
	ProductID     *string   `json:"product_id,omitempty"`
	Subject       string    `json:"subject"`
	Message       string    `json:"message"`
	SentTo        string    `json:"sent_to"`
	SentDate      time.Time `json:"sent_date"`
	ReadFlag      bool      `json:"read_flag"`
	ContainerType string    `json:"container_type,omitempty"`
	LocationName  string    `json:"location_name,omitempty"`
}

// UnreadCountResponse salida de GET /api/notifications/unread-count.
type UnreadCountResponse struct {
	Count int `json:"count"`
}
