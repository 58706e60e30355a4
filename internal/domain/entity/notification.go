package entity

import "time"

// Notification es el registro persistido de un correo enviado.
// ProductID es nil para avisos generales (ej. orden de reposición completada).
// Solo ReadFlag se muta después de creada.
type Notification struct {
	ID         string
	OrgID      string
	LocationID string
	ProductID  *string
	Subject    string
	Message    string
	SentTo     string
	SentDate   time.Time
	ReadFlag   bool
}
