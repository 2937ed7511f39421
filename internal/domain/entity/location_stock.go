package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LocationStock representa el stock actual de un producto en una ubicación.
// Clave (ProductID, LocationID). Se materializa con cantidad 0 en el primer
// movimiento y solo lo muta el motor de kardex; invariante: Quantity >= 0.
type LocationStock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
