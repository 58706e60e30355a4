// Package notification envía correos por el transporte configurado y deja
// registro de cada envío en email_notifications.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// Sender es el puerto hacia el transporte de correo (SMTP u otro).
// El envío es síncrono: un error aquí hace fallar la operación que lo disparó;
// no hay reintentos.
type Sender interface {
	Send(to, subject, textBody, htmlBody string) error
}

// Message es el contenido y destino de una notificación a despachar.
type Message struct {
	OrgID      string
	LocationID string
	ProductID  *string // nil para avisos generales
	Subject    string
	Body       string
	SentTo     string
}

// Dispatcher envía por el Sender y persiste el registro.
type Dispatcher struct {
	sender Sender
	repo   repository.NotificationRepository
}

// NewDispatcher construye el despachador.
func NewDispatcher(sender Sender, repo repository.NotificationRepository) *Dispatcher {
	return &Dispatcher{sender: sender, repo: repo}
}

// Dispatch envía el correo y, si el transporte acepta, registra la fila.
// Un fallo de transporte no deja registro: el registro es constancia de envío,
// no cola de salida. Cambiar ese orden es tocar solo este método.
func (d *Dispatcher) Dispatch(ctx context.Context, msg Message) (*entity.Notification, error) {
	htmlBody := fmt.Sprintf(`<div style="font-family: Arial, sans-serif;">%s</div>`, msg.Body)
	if err := d.sender.Send(msg.SentTo, msg.Subject, msg.Body, htmlBody); err != nil {
		return nil, fmt.Errorf("enviar notificación %q a %s: %w", msg.Subject, msg.SentTo, err)
	}
	return d.Record(ctx, msg)
}

// Record persiste la notificación sin pasar por el transporte.
func (d *Dispatcher) Record(ctx context.Context, msg Message) (*entity.Notification, error) {
	n := &entity.Notification{
		ID:         uuid.New().String(),
		OrgID:      msg.OrgID,
		LocationID: msg.LocationID,
		ProductID:  msg.ProductID,
		Subject:    msg.Subject,
		Message:    msg.Body,
		SentTo:     msg.SentTo,
		SentDate:   time.Now(),
		ReadFlag:   false,
	}
	if err := d.repo.Create(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}
