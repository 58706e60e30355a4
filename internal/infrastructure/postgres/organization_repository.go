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

var _ repository.OrganizationRepository = (*OrganizationRepo)(nil)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL.
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste un perfil de organización. Un usuario solo puede tener uno.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	query := `
		INSERT INTO organizations (org_id, user_id, org_name, contact_person, contact_phone_org, org_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		org.ID, org.UserID, org.Name, org.ContactPerson, org.ContactPhone, org.OrgType,
		org.CreatedAt, org.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert organization: %w", err)
	}
	return nil
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	return r.scanOne(r.q.QueryRow(ctx, `
		SELECT org_id, user_id, org_name, contact_person, contact_phone_org, org_type, created_at, updated_at
		FROM organizations WHERE org_id = $1`, id))
}

// GetByUserID obtiene la organización del usuario dueño.
func (r *OrganizationRepo) GetByUserID(ctx context.Context, userID string) (*entity.Organization, error) {
	return r.scanOne(r.q.QueryRow(ctx, `
		SELECT org_id, user_id, org_name, contact_person, contact_phone_org, org_type, created_at, updated_at
		FROM organizations WHERE user_id = $1`, userID))
}

// List devuelve todas las organizaciones ordenadas por nombre.
func (r *OrganizationRepo) List(ctx context.Context) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx, `
		SELECT org_id, user_id, org_name, contact_person, contact_phone_org, org_type, created_at, updated_at
		FROM organizations ORDER BY org_name`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	defer rows.Close()

	var orgs []*entity.Organization
	for rows.Next() {
		var o entity.Organization
		if err := rows.Scan(&o.ID, &o.UserID, &o.Name, &o.ContactPerson, &o.ContactPhone, &o.OrgType,
			&o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan organization: %w", err)
		}
		orgs = append(orgs, &o)
	}
	return orgs, rows.Err()
}

// Update actualiza el perfil de la organización.
func (r *OrganizationRepo) Update(ctx context.Context, org *entity.Organization) error {
	query := `
		UPDATE organizations
		SET org_name = $2, contact_person = $3, contact_phone_org = $4, org_type = $5, updated_at = $6
		WHERE org_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		org.ID, org.Name, org.ContactPerson, org.ContactPhone, org.OrgType, org.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update organization: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OrganizationRepo) scanOne(row pgx.Row) (*entity.Organization, error) {
	var o entity.Organization
	err := row.Scan(&o.ID, &o.UserID, &o.Name, &o.ContactPerson, &o.ContactPhone, &o.OrgType,
		&o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return &o, nil
}
