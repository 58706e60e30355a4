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

var _ repository.OrgLocationRepository = (*OrgLocationRepo)(nil)

const orgLocationColumns = `location_id, org_id, location_name, address, contact_person, contact_phone, delivery_instructions, delivery_day, created_at, updated_at`

// OrgLocationRepo implementación del puerto OrgLocationRepository sobre PostgreSQL.
type OrgLocationRepo struct {
	q Querier
}

// NewOrgLocationRepository construye el adaptador de ubicaciones de entrega.
func NewOrgLocationRepository(q Querier) *OrgLocationRepo {
	return &OrgLocationRepo{q: q}
}

// Create persiste una ubicación de entrega.
func (r *OrgLocationRepo) Create(ctx context.Context, loc *entity.OrgLocation) error {
	query := `
		INSERT INTO org_locations (` + orgLocationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		loc.ID, loc.OrgID, loc.Name, loc.Address, loc.ContactPerson, loc.ContactPhone,
		loc.DeliveryInstructions, loc.DeliveryDay, loc.CreatedAt, loc.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *OrgLocationRepo) GetByID(ctx context.Context, id string) (*entity.OrgLocation, error) {
	var l entity.OrgLocation
	err := r.q.QueryRow(ctx,
		`SELECT `+orgLocationColumns+` FROM org_locations WHERE location_id = $1`, id).Scan(
		&l.ID, &l.OrgID, &l.Name, &l.Address, &l.ContactPerson, &l.ContactPhone,
		&l.DeliveryInstructions, &l.DeliveryDay, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// ListByOrg devuelve las ubicaciones de una organización ordenadas por nombre.
func (r *OrgLocationRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.OrgLocation, error) {
	return r.list(ctx,
		`SELECT `+orgLocationColumns+` FROM org_locations WHERE org_id = $1 ORDER BY location_name`, orgID)
}

// ListAll devuelve todas las ubicaciones; lo usa el generador semanal.
func (r *OrgLocationRepo) ListAll(ctx context.Context) ([]*entity.OrgLocation, error) {
	return r.list(ctx, `SELECT `+orgLocationColumns+` FROM org_locations ORDER BY location_name`)
}

// Update actualiza una ubicación existente.
func (r *OrgLocationRepo) Update(ctx context.Context, loc *entity.OrgLocation) error {
	query := `
		UPDATE org_locations
		SET location_name = $2, address = $3, contact_person = $4, contact_phone = $5,
		    delivery_instructions = $6, delivery_day = $7, updated_at = $8
		WHERE location_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		loc.ID, loc.Name, loc.Address, loc.ContactPerson, loc.ContactPhone,
		loc.DeliveryInstructions, loc.DeliveryDay, loc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una ubicación.
func (r *OrgLocationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM org_locations WHERE location_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrgLocationRepo) list(ctx context.Context, query string, args ...any) ([]*entity.OrgLocation, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var locs []*entity.OrgLocation
	for rows.Next() {
		var l entity.OrgLocation
		if err := rows.Scan(&l.ID, &l.OrgID, &l.Name, &l.Address, &l.ContactPerson, &l.ContactPhone,
			&l.DeliveryInstructions, &l.DeliveryDay, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		locs = append(locs, &l)
	}
	return locs, rows.Err()
}
