package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// CustomerProfileRepository define el puerto de persistencia para perfiles de cliente.
type CustomerProfileRepository interface {
	Create(ctx context.Context, p *entity.CustomerProfile) error
	GetByUserID(ctx context.Context, userID string) (*entity.CustomerProfile, error)
	GetByID(ctx context.Context, id string) (*entity.CustomerProfile, error)
	List(ctx context.Context) ([]*entity.CustomerProfile, error)
	Update(ctx context.Context, p *entity.CustomerProfile) error
}
