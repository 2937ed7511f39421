package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReplenishmentRule configura los umbrales de reposición de un producto en
// una ubicación. Solo la lee la política de reposición; nunca muta stock.
type ReplenishmentRule struct {
	ProductID         string
	LocationID        string
	MinStock          decimal.Decimal
	MaxStock          decimal.Decimal
	ReorderPoint      decimal.Decimal
	ReorderQty        decimal.Decimal
	AutoGenerate      bool   // un componente externo de compras decide si genera orden automática
	PreferredSupplier string // referencia al proveedor sugerido
	UpdatedAt         time.Time
}
