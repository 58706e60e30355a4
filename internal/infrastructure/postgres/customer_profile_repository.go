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

var _ repository.CustomerProfileRepository = (*CustomerProfileRepo)(nil)

// CustomerProfileRepo implementación del puerto CustomerProfileRepository sobre PostgreSQL.
type CustomerProfileRepo struct {
	q Querier
}

// NewCustomerProfileRepository construye el adaptador de perfiles de cliente.
func NewCustomerProfileRepository(q Querier) *CustomerProfileRepo {
	return &CustomerProfileRepo{q: q}
}

// Create persiste un perfil de cliente. Un usuario solo puede tener uno.
func (r *CustomerProfileRepo) Create(ctx context.Context, p *entity.CustomerProfile) error {
	query := `
		INSERT INTO customer_profiles (customer_id, user_id, full_name, phone, address, delivery_instructions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.UserID, p.FullName, p.Phone, p.Address, p.DeliveryInstructions,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer profile: %w", err)
	}
	return nil
}

// GetByUserID obtiene el perfil del usuario dueño.
func (r *CustomerProfileRepo) GetByUserID(ctx context.Context, userID string) (*entity.CustomerProfile, error) {
	return r.scanOne(r.q.QueryRow(ctx, `
		SELECT customer_id, user_id, full_name, phone, address, delivery_instructions, created_at, updated_at
		FROM customer_profiles WHERE user_id = $1`, userID))
}

// GetByID obtiene un perfil por ID.
func (r *CustomerProfileRepo) GetByID(ctx context.Context, id string) (*entity.CustomerProfile, error) {
	return r.scanOne(r.q.QueryRow(ctx, `
		SELECT customer_id, user_id, full_name, phone, address, delivery_instructions, created_at, updated_at
		FROM customer_profiles WHERE customer_id = $1`, id))
}

// List devuelve todos los perfiles ordenados por nombre.
func (r *CustomerProfileRepo) List(ctx context.Context) ([]*entity.CustomerProfile, error) {
	rows, err := r.q.Query(ctx, `
		SELECT customer_id, user_id, full_name, phone, address, delivery_instructions, created_at, updated_at
		FROM customer_profiles ORDER BY full_name`)
	if err != nil {
		return nil, fmt.Errorf("list customer profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*entity.CustomerProfile
	for rows.Next() {
		var p entity.CustomerProfile
		if err := rows.Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.DeliveryInstructions,
			&p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer profile: %w", err)
		}
		profiles = append(profiles, &p)
	}
	return profiles, rows.Err()
}

// Update actualiza un perfil existente.
func (r *CustomerProfileRepo) Update(ctx context.Context, p *entity.CustomerProfile) error {
	query := `
		UPDATE customer_profiles
		SET full_name = $2, phone = $3, address = $4, delivery_instructions = $5, updated_at = $6
		WHERE customer_id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.FullName, p.Phone, p.Address, p.DeliveryInstructions, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update customer profile: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CustomerProfileRepo) scanOne(row pgx.Row) (*entity.CustomerProfile, error) {
	var p entity.CustomerProfile
	err := row.Scan(&p.ID, &p.UserID, &p.FullName, &p.Phone, &p.Address, &p.DeliveryInstructions,
		&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer profile: %w", err)
	}
	return &p, nil
}
