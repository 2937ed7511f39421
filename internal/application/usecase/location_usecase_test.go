package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/usecase"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// memLocationRepo fake en memoria del puerto LocationRepository.
type memLocationRepo struct {
	byID map[string]*entity.Location
}

func newMemLocationRepo() *memLocationRepo {
	return &memLocationRepo{byID: make(map[string]*entity.Location)}
}

func (r *memLocationRepo) Create(l *entity.Location) error {
	cp := *l
	r.byID[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *l
	return &cp, nil
}

func (r *memLocationRepo) GetByCode(code string) (*entity.Location, error) {
	for _, l := range r.byID {
		if l.Code == code {
			cp := *l
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memLocationRepo) Update(l *entity.Location) error {
	cp := *l
	r.byID[l.ID] = &cp
	return nil
}

func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	var out []*entity.Location
	for _, l := range r.byID {
		out = append(out, l)
	}
	return out, nil
}

func TestLocationCreate_AsignaIDYQuedaActiva(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	loc, err := uc.Create(context.Background(), usecase.CreateLocationInput{
		Code: "BOD-01",
		Name: "Bodega Principal",
		Type: entity.LocationTypeWarehouse,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, loc.ID)
	assert.True(t, loc.Active)
	assert.False(t, loc.CreatedAt.IsZero())
}

func TestLocationCreate_CodigoDuplicadoRechazado(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	ctx := context.Background()

	_, err := uc.Create(ctx, usecase.CreateLocationInput{
		Code: "BOD-01", Name: "Bodega Principal", Type: entity.LocationTypeWarehouse,
	})
	require.NoError(t, err)

	_, err = uc.Create(ctx, usecase.CreateLocationInput{
		Code: "BOD-01", Name: "Otra Bodega", Type: entity.LocationTypeWarehouse,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLocationCreate_Validaciones(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	ctx := context.Background()

	casos := []usecase.CreateLocationInput{
		{Name: "Sin código", Type: entity.LocationTypeWarehouse},
		{Code: "X-01", Type: entity.LocationTypeWarehouse},
		{Code: "X-01", Name: "Tipo inválido", Type: "spaceship"},
	}
	for _, input := range casos {
		_, err := uc.Create(ctx, input)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestLocationGetByID_NoExisteRetornaNotFound(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())

	_, err := uc.GetByID(context.Background(), "loc-fantasma")
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestLocationUpdate_ElCodigoNoCambia(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, usecase.CreateLocationInput{
		Code: "SUC-01", Name: "Sucursal Centro", Type: entity.LocationTypeBranch,
	})
	require.NoError(t, err)

	updated, err := uc.Update(ctx, created.ID, usecase.UpdateLocationInput{
		Name: "Sucursal Centro Renovada", Type: entity.LocationTypeBranch, IsPrimary: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Centro Renovada", updated.Name)
	assert.True(t, updated.IsPrimary)
	assert.Equal(t, "SUC-01", updated.Code, "el código es inmutable")
}

func TestLocationDeactivate_EsIdempotente(t *testing.T) {
	uc := usecase.NewLocationUseCase(newMemLocationRepo())
	ctx := context.Background()

	created, err := uc.Create(ctx, usecase.CreateLocationInput{
		Code: "AUX-01", Name: "Bodega Auxiliar", Type: entity.LocationTypeStoreroom,
	})
	require.NoError(t, err)

	first, err := uc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, first.Active)

	// Segunda desactivación: sin error, sin cambio.
	second, err := uc.Deactivate(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, second.Active)
}
