package repository

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// LedgerEntryFilter filtros para listar movimientos del kardex.
// LocationID vacío = todas las ubicaciones del producto.
type LedgerEntryFilter struct {
	ProductID  string
	LocationID string
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// LedgerEntryRepository define el puerto de persistencia del kardex.
// Los movimientos son append-only: no existe Update ni Delete; una corrección
// se registra como movimiento compensatorio.
type LedgerEntryRepository interface {
	// Append persiste el movimiento y asigna su ID (secuencia monotónica).
	Append(entry *entity.LedgerEntry) error
	// List devuelve movimientos ordenados ascendentemente por (timestamp, id),
	// paginados; el orden hace la lectura reiniciable para historiales largos.
	List(ctx context.Context, filter LedgerEntryFilter) ([]*entity.LedgerEntry, error)
}
