package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// ReplenishmentItem resultado crudo del repositorio para un producto en o
// bajo su punto de reorden (regla + stock actual en una sola consulta).
type ReplenishmentItem struct {
	ProductID    string
	LocationID   string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
	ReorderQty   decimal.Decimal
	MaxStock     decimal.Decimal
}

// ReplenishmentRuleRepository define el puerto para las reglas de reposición.
// Entidad de configuración: solo la lee la política de reposición.
type ReplenishmentRuleRepository interface {
	// Get devuelve la regla para producto+ubicación; nil si no hay regla.
	Get(productID, locationID string) (*entity.ReplenishmentRule, error)
	Upsert(rule *entity.ReplenishmentRule) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.ReplenishmentRule, error)

	// ListBelowReorderPoint devuelve los productos de la ubicación cuyo stock
	// actual está en o bajo su punto de reorden (con reorderPoint > 0),
	// ordenados por mayor déficit primero.
	ListBelowReorderPoint(ctx context.Context, locationID string) ([]ReplenishmentItem, error)
}
