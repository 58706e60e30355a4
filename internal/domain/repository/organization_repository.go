package repository

import (
	"context"

	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para perfiles de organización.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Organization, error)
	List(ctx context.Context) ([]*entity.Organization, error)
	Update(ctx context.Context, org *entity.Organization) error
}

// OrgLocationRepository define el puerto de persistencia para ubicaciones de entrega.
type OrgLocationRepository interface {
	Create(ctx context.Context, loc *entity.OrgLocation) error
	GetByID(ctx context.Context, id string) (*entity.OrgLocation, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.OrgLocation, error)
	// ListAll devuelve todas las ubicaciones; lo usa el generador semanal.
	ListAll(ctx context.Context) ([]*entity.OrgLocation, error)
	Update(ctx context.Context, loc *entity.OrgLocation) error
	Delete(ctx context.Context, id string) error
}
