package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de kardex (enum cerrado).
const (
	MovementTypePurchase      = "PURCHASE"       // compra recibida
	MovementTypeSale          = "SALE"           // venta
	MovementTypeAdjustmentIn  = "ADJUSTMENT_IN"  // ajuste positivo
	MovementTypeAdjustmentOut = "ADJUSTMENT_OUT" // ajuste negativo
	MovementTypeTransferIn    = "TRANSFER_IN"    // entrada por traslado
	MovementTypeTransferOut   = "TRANSFER_OUT"   // salida por traslado
	MovementTypeInitial       = "INITIAL"        // carga inicial
)

// LedgerEntry es un movimiento del kardex: registro inmutable y append-only.
// El ID es monotónicamente creciente (secuencia de BD). Una corrección nunca
// actualiza un movimiento existente; se registra un movimiento compensatorio.
type LedgerEntry struct {
	ID                int64
	ProductID         string
	LocationID        string
	Timestamp         time.Time
	MovementType      string
	ReferenceDocument string
	Debit             decimal.Decimal // entrada (delta > 0)
	Credit            decimal.Decimal // salida (delta < 0, en valor absoluto)
	ResultingBalance  decimal.Decimal // saldo después del movimiento
	CreatedBy         string
}

// Delta devuelve el efecto neto del movimiento sobre el stock (Debit - Credit).
func (e *LedgerEntry) Delta() decimal.Decimal {
	return e.Debit.Sub(e.Credit)
}

// ValidMovementType indica si el tipo pertenece al enum cerrado.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale,
		MovementTypeAdjustmentIn, MovementTypeAdjustmentOut,
		MovementTypeTransferIn, MovementTypeTransferOut,
		MovementTypeInitial:
		return true
	}
	return false
}

// MovementSign devuelve el signo esperado del delta para cada tipo:
// +1 entradas, -1 salidas. Tipos desconocidos devuelven 0.
func MovementSign(t string) int {
	switch t {
	case MovementTypePurchase, MovementTypeAdjustmentIn, MovementTypeTransferIn, MovementTypeInitial:
		return 1
	case MovementTypeSale, MovementTypeAdjustmentOut, MovementTypeTransferOut:
		return -1
	}
	return 0
}
