package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
	"github.com/acuaflow/acuaflow-api/internal/domain/schedule"
)

// OrganizationUseCase perfil de organización y sus ubicaciones de entrega.
type OrganizationUseCase struct {
	orgs      repository.OrganizationRepository
	locations repository.OrgLocationRepository
}

// NewOrganizationUseCase construye el caso de uso.
func NewOrganizationUseCase(orgs repository.OrganizationRepository, locations repository.OrgLocationRepository) *OrganizationUseCase {
	return &OrganizationUseCase{orgs: orgs, locations: locations}
}

// UpsertProfile crea el perfil del usuario si no existe, si no lo actualiza.
func (uc *OrganizationUseCase) UpsertProfile(ctx context.Context, userID string, in dto.UpsertOrganizationRequest) (*dto.OrganizationResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.orgs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if existing == nil {
		org := &entity.Organization{
			ID:            uuid.New().String(),
			UserID:        userID,
			Name:          in.Name,
			ContactPerson: in.ContactPerson,
			ContactPhone:  in.ContactPhone,
			OrgType:       in.OrgType,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := uc.orgs.Create(ctx, org); err != nil {
			return nil, err
		}
		return toOrganizationResponse(org), nil
	}
	existing.Name = in.Name
	existing.ContactPerson = in.ContactPerson
	existing.ContactPhone = in.ContactPhone
	existing.OrgType = in.OrgType
	existing.UpdatedAt = now
	if err := uc.orgs.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toOrganizationResponse(existing), nil
}

// GetProfile devuelve el perfil de organización del usuario o ErrNotFound.
func (uc *OrganizationUseCase) GetProfile(ctx context.Context, userID string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return toOrganizationResponse(org), nil
}

// GetByID devuelve una organización por ID o ErrNotFound.
func (uc *OrganizationUseCase) GetByID(ctx context.Context, id string) (*dto.OrganizationResponse, error) {
	org, err := uc.orgs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	return toOrganizationResponse(org), nil
}

// List devuelve todas las organizaciones registradas.
func (uc *OrganizationUseCase) List(ctx context.Context) ([]dto.OrganizationResponse, error) {
	orgs, err := uc.orgs.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrganizationResponse, 0, len(orgs))
	for _, o := range orgs {
		out = append(out, *toOrganizationResponse(o))
	}
	return out, nil
}

// CreateLocation crea una ubicación de entrega para la organización del usuario.
// El día de entrega debe ser un nombre de día válido: lo usa el generador semanal.
func (uc *OrganizationUseCase) CreateLocation(ctx context.Context, userID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.Address == "" || !schedule.ValidDeliveryDay(in.DeliveryDay) {
		return nil, domain.ErrInvalidInput
	}
	org, err := uc.orgs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	now := time.Now()
	loc := &entity.OrgLocation{
		ID:                   uuid.New().String(),
		OrgID:                org.ID,
		Name:                 in.Name,
		Address:              in.Address,
		ContactPerson:        in.ContactPerson,
		ContactPhone:         in.ContactPhone,
		DeliveryInstructions: in.DeliveryInstructions,
		DeliveryDay:          in.DeliveryDay,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// GetLocation devuelve una ubicación por ID o ErrNotFound.
func (uc *OrganizationUseCase) GetLocation(ctx context.Context, id string) (*dto.LocationResponse, error) {
	loc, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(loc), nil
}

// ListLocations devuelve las ubicaciones de la organización del usuario.
func (uc *OrganizationUseCase) ListLocations(ctx context.Context, userID string) ([]dto.LocationResponse, error) {
	org, err := uc.orgs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if org == nil {
		return nil, domain.ErrNotFound
	}
	locs, err := uc.locations.ListByOrg(ctx, org.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(locs))
	for _, l := range locs {
		out = append(out, *toLocationResponse(l))
	}
	return out, nil
}

// UpdateLocation aplica cambios parciales; solo el dueño de la organización puede.
func (uc *OrganizationUseCase) UpdateLocation(ctx context.Context, userID, locationID string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := uc.ownedLocation(ctx, userID, locationID)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		loc.Name = *in.Name
	}
	if in.Address != nil {
		loc.Address = *in.Address
	}
	if in.ContactPerson != nil {
		loc.ContactPerson = *in.ContactPerson
	}
	if in.ContactPhone != nil {
		loc.ContactPhone = *in.ContactPhone
	}
	if in.DeliveryInstructions != nil {
		loc.DeliveryInstructions = *in.DeliveryInstructions
	}
	if in.DeliveryDay != nil {
		if !schedule.ValidDeliveryDay(*in.DeliveryDay) {
			return nil, domain.ErrInvalidInput
		}
		loc.DeliveryDay = *in.DeliveryDay
	}
	loc.UpdatedAt = time.Now()
	if err := uc.locations.Update(ctx, loc); err != nil {
		return nil, err
	}
	return toLocationResponse(loc), nil
}

// DeleteLocation elimina una ubicación de la organización del usuario.
func (uc *OrganizationUseCase) DeleteLocation(ctx context.Context, userID, locationID string) error {
	if _, err := uc.ownedLocation(ctx, userID, locationID); err != nil {
		return err
	}
	return uc.locations.Delete(ctx, locationID)
}

// ownedLocation devuelve la ubicación solo si pertenece a la organización del
// usuario; ErrForbidden en caso contrario.
func (uc *OrganizationUseCase) ownedLocation(ctx context.Context, userID, locationID string) (*entity.OrgLocation, error) {
	loc, err := uc.locations.GetByID(ctx, locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	org, err := uc.orgs.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if org == nil || org.ID != loc.OrgID {
		return nil, domain.ErrForbidden
	}
	return loc, nil
}

func toOrganizationResponse(o *entity.Organization) *dto.OrganizationResponse {
	return &dto.OrganizationResponse{
		ID:            o.ID,
		UserID:        o.UserID,
		Name:          o.Name,
		ContactPerson: o.ContactPerson,
		ContactPhone:  o.ContactPhone,
		OrgType:       o.OrgType,
		CreatedAt:     o.CreatedAt,
		UpdatedAt:     o.UpdatedAt,
	}
}

func toLocationResponse(l *entity.OrgLocation) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:                   l.ID,
		OrgID:                l.OrgID,
		Name:                 l.Name,
		Address:              l.Address,
		ContactPerson:        l.ContactPerson,
		ContactPhone:         l.ContactPhone,
		DeliveryInstructions: l.DeliveryInstructions,
		DeliveryDay:          l.DeliveryDay,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}
