package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

const notificationColumns = `notification_id, org_id, location_id, product_id, subject, message, sent_to, sent_date, read_flag`

// NotificationRepo implementación del registro de notificaciones de correo
// sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador de notificaciones.
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

// Create persiste el registro de una notificación enviada.
func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	query := `
		INSERT INTO email_notifications (` + notificationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		n.ID, n.OrgID, n.LocationID, n.ProductID, n.Subject, n.Message, n.SentTo,
		n.SentDate, n.ReadFlag,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// GetByID obtiene una notificación por ID.
func (r *NotificationRepo) GetByID(ctx context.Context, id string) (*entity.Notification, error) {
	var n entity.Notification
	err := r.q.QueryRow(ctx,
		`SELECT `+notificationColumns+` FROM email_notifications WHERE notification_id = $1`, id).Scan(
		&n.ID, &n.OrgID, &n.LocationID, &n.ProductID, &n.Subject, &n.Message, &n.SentTo,
		&n.SentDate, &n.ReadFlag,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get notification: %w", err)
	}
	return &n, nil
}

// ListByOrg devuelve las notificaciones de una organización con nombres de
// producto y ubicación, más recientes primero.
func (r *NotificationRepo) ListByOrg(ctx context.Context, orgID string) ([]repository.NotificationRow, error) {
	return r.listRows(ctx, `
		SELECT n.notification_id, n.org_id, n.location_id, n.product_id, n.subject, n.message,
		       n.sent_to, n.sent_date, n.read_flag,
		       COALESCE(p.container_type, ''), COALESCE(ol.location_name, '')
		FROM email_notifications n
		LEFT JOIN products p ON p.product_id = n.product_id
		LEFT JOIN org_locations ol ON ol.location_id = n.location_id
		WHERE n.org_id = $1
		ORDER BY n.sent_date DESC`, orgID)
}

// ListByLocation devuelve las notificaciones de una ubicación.
func (r *NotificationRepo) ListByLocation(ctx context.Context, locationID string) ([]repository.NotificationRow, error) {
	return r.listRows(ctx, `
		SELECT n.notification_id, n.org_id, n.location_id, n.product_id, n.subject, n.message,
		       n.sent_to, n.sent_date, n.read_flag,
		       COALESCE(p.container_type, ''), COALESCE(ol.location_name, '')
		FROM email_notifications n
		LEFT JOIN products p ON p.product_id = n.product_id
		LEFT JOIN org_locations ol ON ol.location_id = n.location_id
		WHERE n.location_id = $1
		ORDER BY n.sent_date DESC`, locationID)
}

// ListByRecipient devuelve las notificaciones enviadas a un email.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, email string) ([]*entity.Notification, error) {
	return r.list(ctx,
		`SELECT `+notificationColumns+` FROM email_notifications WHERE sent_to = $1 ORDER BY sent_date DESC`, email)
}

// ListRecent devuelve las notificaciones de los últimos days días.
func (r *NotificationRepo) ListRecent(ctx context.Context, days int) ([]*entity.Notification, error) {
	return r.list(ctx, `
		SELECT `+notificationColumns+` FROM email_notifications
		WHERE sent_date >= now() - make_interval(days => $1)
		ORDER BY sent_date DESC`, days)
}

// ListAll devuelve todas las notificaciones registradas.
func (r *NotificationRepo) ListAll(ctx context.Context) ([]*entity.Notification, error) {
	return r.list(ctx,
		`SELECT `+notificationColumns+` FROM email_notifications ORDER BY sent_date DESC`)
}

// CountUnread cuenta las notificaciones sin leer de un destinatario.
func (r *NotificationRepo) CountUnread(ctx context.Context, email string) (int, error) {
	var count int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM email_notifications WHERE sent_to = $1 AND NOT read_flag`, email).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return count, nil
}

// MarkRead marca una notificación como leída.
func (r *NotificationRepo) MarkRead(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE email_notifications SET read_flag = true WHERE notification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark notification read: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca como leídas todas las notificaciones de un destinatario.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, email string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE email_notifications SET read_flag = true WHERE sent_to = $1 AND NOT read_flag`, email)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

// Delete elimina una notificación.
func (r *NotificationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx,
		`DELETE FROM email_notifications WHERE notification_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notification: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *NotificationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []*entity.Notification
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.OrgID, &n.LocationID, &n.ProductID, &n.Subject, &n.Message,
			&n.SentTo, &n.SentDate, &n.ReadFlag); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, &n)
	}
	return out, rows.Err()
}

func (r *NotificationRepo) listRows(ctx context.Context, query string, args ...any) ([]repository.NotificationRow, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()

	var out []repository.NotificationRow
	for rows.Next() {
		var n repository.NotificationRow
		if err := rows.Scan(&n.ID, &n.OrgID, &n.LocationID, &n.ProductID, &n.Subject, &n.Message,
			&n.SentTo, &n.SentDate, &n.ReadFlag, &n.ContainerType, &n.LocationName); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		out = append(out, n)
	}
	return out, rows.Err()
}
