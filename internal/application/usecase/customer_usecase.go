package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/acuaflow/acuaflow-api/internal/application/dto"
	"github.com/acuaflow/acuaflow-api/internal/domain"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
	"github.com/acuaflow/acuaflow-api/internal/domain/repository"
)

// CustomerUseCase perfiles de cliente residencial.
type CustomerUseCase struct {
	repo repository.CustomerProfileRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerProfileRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// UpsertProfile crea el perfil del usuario si no existe, si no lo actualiza.
func (uc *CustomerUseCase) UpsertProfile(ctx context.Context, userID string, in dto.UpsertCustomerProfileRequest) (*dto.CustomerProfileResponse, error) {
	if in.FullName == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	if existing == nil {
		profile := &entity.CustomerProfile{
			ID:                   uuid.New().String(),
			UserID:               userID,
			FullName:             in.FullName,
			Phone:                in.Phone,
			Address:              in.Address,
			DeliveryInstructions: in.DeliveryInstructions,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if err := uc.repo.Create(ctx, profile); err != nil {
			return nil, err
		}
		return toCustomerProfileResponse(profile), nil
	}
	existing.FullName = in.FullName
	existing.Phone = in.Phone
	existing.Address = in.Address
	existing.DeliveryInstructions = in.DeliveryInstructions
	existing.UpdatedAt = now
	if err := uc.repo.Update(ctx, existing); err != nil {
		return nil, err
	}
	return toCustomerProfileResponse(existing), nil
}

// GetProfile devuelve el perfil del usuario o ErrNotFound.
func (uc *CustomerUseCase) GetProfile(ctx context.Context, userID string) (*dto.CustomerProfileResponse, error) {
	profile, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerProfileResponse(profile), nil
}

// List devuelve todos los perfiles de cliente (solo admin).
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerProfileResponse, error) {
	profiles, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, *toCustomerProfileResponse(p))
	}
	return out, nil
}

func toCustomerProfileResponse(p *entity.CustomerProfile) *dto.CustomerProfileResponse {
	return &dto.CustomerProfileResponse{
		ID:                   p.ID,
		UserID:               p.UserID,
		FullName:             p.FullName,
		Phone:                p.Phone,
		Address:              p.Address,
		DeliveryInstructions: p.DeliveryInstructions,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}
