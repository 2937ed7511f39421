package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// LocationUseCase administra ubicaciones (bodegas, sucursales, auxiliares).
// Flujo administrativo: creadas rara vez, nunca borradas, solo desactivadas.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// CreateLocationInput entrada para crear una ubicación.
type CreateLocationInput struct {
	Code      string
	Name      string
	Type      string
	IsPrimary bool
}

// Create valida y persiste una nueva ubicación activa.
func (uc *LocationUseCase) Create(ctx context.Context, input CreateLocationInput) (*entity.Location, error) {
	if input.Code == "" || input.Name == "" || !entity.ValidLocationType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.locationRepo.GetByCode(input.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	loc := &entity.Location{
		ID:        uuid.New().String(),
		Code:      input.Code,
		Name:      input.Name,
		Type:      input.Type,
		Active:    true,
		IsPrimary: input.IsPrimary,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// GetByID devuelve una ubicación por ID.
func (uc *LocationUseCase) GetByID(ctx context.Context, id string) (*entity.Location, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	return loc, nil
}

// List devuelve ubicaciones paginadas (activas e inactivas).
func (uc *LocationUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Location, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.locationRepo.List(limit, offset)
}

// UpdateLocationInput campos mutables de una ubicación.
type UpdateLocationInput struct {
	Name      string
	Type      string
	IsPrimary bool
}

// Update modifica nombre, tipo y marca primaria. El código nunca cambia.
func (uc *LocationUseCase) Update(ctx context.Context, id string, input UpdateLocationInput) (*entity.Location, error) {
	if input.Name == "" || !entity.ValidLocationType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	loc, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	loc.Name = input.Name
	loc.Type = input.Type
	loc.IsPrimary = input.IsPrimary
	loc.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}

// Deactivate desactiva la ubicación (soft delete). El historial de kardex de
// la ubicación permanece intacto; solo se rechazan movimientos nuevos.
func (uc *LocationUseCase) Deactivate(ctx context.Context, id string) (*entity.Location, error) {
	loc, err := uc.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !loc.Active {
		return loc, nil
	}
	loc.Active = false
	loc.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(loc); err != nil {
		return nil, err
	}
	return loc, nil
}
