package notification

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// UseCase expone las consultas y la gestión de lectura de notificaciones.
type UseCase struct {
	repo repository.NotificationRepository
}

// NewUseCase construye el caso de uso de notificaciones.
func NewUseCase(repo repository.NotificationRepository) *UseCase {
	return &UseCase{repo: repo}
}

// GetByID devuelve una notificación o ErrNotFound.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n == nil {
		return nil, domain.ErrNotFound
	}
	return n, nil
}

// ListByOrg devuelve las notificaciones de una organización, más recientes primero.
func (uc *UseCase) ListByOrg(ctx context.Context, orgID string) ([]repository.NotificationRow, error) {
	return uc.repo.ListByOrg(ctx, orgID)
}

// ListByLocation devuelve las notificaciones de una ubicación.
func (uc *UseCase) ListByLocation(ctx context.Context, locationID string) ([]repository.NotificationRow, error) {
	return uc.repo.ListByLocation(ctx, locationID)
}

// ListByRecipient devuelve las notificaciones enviadas a un email.
func (uc *UseCase) ListByRecipient(ctx context.Context, email string) ([]*entity.Notification, error) {
	return uc.repo.ListByRecipient(ctx, email)
}

// ListRecent devuelve las notificaciones de los últimos days días.
func (uc *UseCase) ListRecent(ctx context.Context, days int) ([]*entity.Notification, error) {
	if days <= 0 {
		days = 7
	}
	return uc.repo.ListRecent(ctx, days)
}

// ListAll devuelve todas las notificaciones registradas.
func (uc *UseCase) ListAll(ctx context.Context) ([]*entity.Notification, error) {
	return uc.repo.ListAll(ctx)
}

// CountUnread cuenta las notificaciones sin leer de un destinatario.
func (uc *UseCase) CountUnread(ctx context.Context, email string) (int, error) {
	return uc.repo.CountUnread(ctx, email)
}

// MarkRead marca una notificación como leída.
func (uc *UseCase) MarkRead(ctx context.Context, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	return uc.repo.MarkRead(ctx, id)
}

// MarkAllRead marca como leídas todas las notificaciones de un destinatario.
func (uc *UseCase) MarkAllRead(ctx context.Context, email string) error {
	return uc.repo.MarkAllRead(ctx, email)
}

// Delete elimina una notificación.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	n, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if n == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}
