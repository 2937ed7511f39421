package dto

import (
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// CreateLocationRequest body para POST /api/locations.
type CreateLocationRequest struct {
	Code      string `json:"code"`
	Name      string `json:"name"`
	Type      string `json:"type"` // branch, warehouse, storeroom
	IsPrimary bool   `json:"is_primary"`
}

// UpdateLocationRequest body para PUT /api/locations/:id.
type UpdateLocationRequest struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	IsPrimary bool   `json:"is_primary"`
}

// LocationDTO ubicación en respuestas.
type LocationDTO struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	Active    bool      `json:"active"`
	IsPrimary bool      `json:"is_primary"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FromLocation convierte la entidad al DTO de respuesta.
func FromLocation(l *entity.Location) LocationDTO {
	return LocationDTO{
		ID:        l.ID,
		Code:      l.Code,
		Name:      l.Name,
		Type:      l.Type,
		Active:    l.Active,
		IsPrimary: l.IsPrimary,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
