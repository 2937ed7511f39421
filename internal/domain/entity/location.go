package entity

import "time"

// Tipos de ubicación.
const (
	LocationTypeBranch    = "branch"    // sucursal
	LocationTypeWarehouse = "warehouse" // bodega
	LocationTypeStoreroom = "storeroom" // bodega auxiliar
)

// Location representa una bodega, sucursal o bodega auxiliar con stock propio.
// Nunca se elimina: se desactiva (Active = false).
type Location struct {
	ID        string
	Code      string // único
	Name      string
	Type      string // branch, warehouse, storeroom
	Active    bool
	IsPrimary bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidLocationType indica si el tipo de ubicación es uno de los reconocidos.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeBranch, LocationTypeWarehouse, LocationTypeStoreroom:
		return true
	}
	return false
}
