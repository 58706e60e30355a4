package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

var _ repository.ReplenishmentOrderRepository = (*ReplenishmentOrderRepo)(nil)

// ReplenishmentOrderRepo implementación de órdenes de reposición sobre
// PostgreSQL (usable con pool o tx).
type ReplenishmentOrderRepo struct {
	q Querier
}

// NewReplenishmentOrderRepository construye el adaptador de órdenes. Pasar pool o tx (Querier).
func NewReplenishmentOrderRepository(q Querier) *ReplenishmentOrderRepo {
	return &ReplenishmentOrderRepo{q: q}
}

// Create inserta la cabecera; el estado queda en pending.
func (r *ReplenishmentOrderRepo) Create(ctx context.Context, locationID string, scheduledDate time.Time) (*entity.ReplenishmentOrder, error) {
	o := entity.ReplenishmentOrder{
		ID:            uuid.New().String(),
		LocationID:    locationID,
		ScheduledDate: scheduledDate,
		Status:        entity.ReplenishmentStatusPending,
	}
	err := r.q.QueryRow(ctx, `
		INSERT INTO replenishment_order (replenishment_id, location_id, scheduled_date, status, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING created_at`,
		o.ID, o.LocationID, o.ScheduledDate, o.Status).Scan(&o.CreatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("insert replenishment order: %w", err)
	}
	return &o, nil
}

// AddDetails hace el insert masivo de líneas en una sola sentencia multi-VALUES.
// Una cantidad <= 0 se rechaza entera.
func (r *ReplenishmentOrderRepo) AddDetails(ctx context.Context, replenishmentID string, items []repository.DetailInput) error {
	if len(items) == 0 {
		return nil
	}
	var sb strings.Builder
	sb.WriteString(`INSERT INTO replenishment_details (replenishment_id, product_id, quantity) VALUES `)
	args := make([]any, 0, 1+2*len(items))
	args = append(args, replenishmentID)
	for i, it := range items {
		if it.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "($1, $%d, $%d)", len(args)+1, len(args)+2)
		args = append(args, it.ProductID, it.Quantity)
	}
	if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert replenishment details: %w", err)
	}
	return nil
}

// GetByID devuelve la orden con datos de ubicación y organización, o nil.
func (r *ReplenishmentOrderRepo) GetByID(ctx context.Context, replenishmentID string) (*repository.ReplenishmentOrderRow, error) {
	var row repository.ReplenishmentOrderRow
	err := r.q.QueryRow(ctx, `
		SELECT ro.replenishment_id, ro.location_id, ro.scheduled_date, ro.status, ro.created_at,
		       ol.location_name, ol.address, ol.org_id, o.org_name
		FROM replenishment_order ro
		JOIN org_locations ol ON ol.location_id = ro.location_id
		JOIN organizations o ON o.org_id = ol.org_id
		WHERE ro.replenishment_id = $1`, replenishmentID).Scan(
		&row.ID, &row.LocationID, &row.ScheduledDate, &row.Status, &row.CreatedAt,
		&row.LocationName, &row.Address, &row.OrgID, &row.OrgName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment order: %w", err)
	}
	return &row, nil
}

// GetDetails devuelve las líneas con datos de producto.
func (r *ReplenishmentOrderRepo) GetDetails(ctx context.Context, replenishmentID string) ([]repository.ReplenishmentDetailRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT rd.replenishment_id, rd.product_id, rd.quantity,
		       p.container_type, p.description, p.unit_price
		FROM replenishment_details rd
		JOIN products p ON p.product_id = rd.product_id
		WHERE rd.replenishment_id = $1
		ORDER BY p.container_type`, replenishmentID)
	if err != nil {
		return nil, fmt.Errorf("list replenishment details: %w", err)
	}
	defer rows.Close()

	var out []repository.ReplenishmentDetailRow
	for rows.Next() {
		var d repository.ReplenishmentDetailRow
		if err := rows.Scan(&d.ReplenishmentID, &d.ProductID, &d.Quantity,
			&d.ContainerType, &d.Description, &d.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan replenishment detail: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// ListByLocation devuelve las órdenes de una ubicación, más recientes primero.
func (r *ReplenishmentOrderRepo) ListByLocation(ctx context.Context, locationID string) ([]*entity.ReplenishmentOrder, error) {
	rows, err := r.q.Query(ctx, `
		SELECT replenishment_id, location_id, scheduled_date, status, created_at
		FROM replenishment_order
		WHERE location_id = $1
		ORDER BY created_at DESC`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list replenishment orders: %w", err)
	}
	defer rows.Close()

	var out []*entity.ReplenishmentOrder
	for rows.Next() {
		var o entity.ReplenishmentOrder
		if err := rows.Scan(&o.ID, &o.LocationID, &o.ScheduledDate, &o.Status, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan replenishment order: %w", err)
		}
		out = append(out, &o)
	}
	return out, rows.Err()
}

// ListPending devuelve todas las órdenes pendientes con ubicación y organización.
func (r *ReplenishmentOrderRepo) ListPending(ctx context.Context) ([]repository.ReplenishmentOrderRow, error) {
	rows, err := r.q.Query(ctx, `
		SELECT ro.replenishment_id, ro.location_id, ro.scheduled_date, ro.status, ro.created_at,
		       ol.location_name, ol.address, ol.org_id, o.org_name
		FROM replenishment_order ro
		JOIN org_locations ol ON ol.location_id = ro.location_id
		JOIN organizations o ON o.org_id = ol.org_id
		WHERE ro.status = $1
		ORDER BY ro.scheduled_date`, entity.ReplenishmentStatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending replenishment orders: %w", err)
	}
	defer rows.Close()

	var out []repository.ReplenishmentOrderRow
	for rows.Next() {
		var row repository.ReplenishmentOrderRow
		if err := rows.Scan(&row.ID, &row.LocationID, &row.ScheduledDate, &row.Status, &row.CreatedAt,
			&row.LocationName, &row.Address, &row.OrgID, &row.OrgName); err != nil {
			return nil, fmt.Errorf("scan pending replenishment order: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado de la orden.
func (r *ReplenishmentOrderRepo) UpdateStatus(ctx context.Context, replenishmentID, status string) (*entity.ReplenishmentOrder, error) {
	var o entity.ReplenishmentOrder
	err := r.q.QueryRow(ctx, `
		UPDATE replenishment_order SET status = $2
		WHERE replenishment_id = $1
		RETURNING replenishment_id, location_id, scheduled_date, status, created_at`,
		replenishmentID, status).Scan(
		&o.ID, &o.LocationID, &o.ScheduledDate, &o.Status, &o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update replenishment order status: %w", err)
	}
	return &o, nil
}
