package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// NotificationRow es una notificación con nombres de producto y ubicación.
type NotificationRow struct {
	entity.Notification
	ContainerType string
	LocationName  string
}

// NotificationRepository define el puerto de persistencia de notificaciones de correo.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	GetByID(ctx context.Context, id string) (*entity.Notification, error)
	ListByOrg(ctx context.Context, orgID string) ([]NotificationRow, error)
	ListByLocation(ctx context.Context, locationID string) ([]NotificationRow, error)
	// ListByRecipient devuelve las notificaciones enviadas a un email.
	ListByRecipient(ctx context.Context, email string) ([]*entity.Notification, error)
	// ListRecent devuelve las notificaciones de los últimos days días.
	ListRecent(ctx context.Context, days int) ([]*entity.Notification, error)
	ListAll(ctx context.Context) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, email string) (int, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, email string) error
	Delete(ctx context.Context, id string) error
}
