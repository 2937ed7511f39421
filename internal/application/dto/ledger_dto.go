package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// RecordMovementRequest body para POST /api/inventory/movements.
// Delta positivo aumenta stock, negativo lo disminuye; el signo debe
// corresponder al tipo de movimiento.
type RecordMovementRequest struct {
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	Delta             decimal.Decimal `json:"delta"`
	MovementType      string          `json:"movement_type"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
}

// LedgerEntryDTO movimiento de kardex en respuestas.
type LedgerEntryDTO struct {
	ID                int64           `json:"id"`
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	Timestamp         time.Time       `json:"timestamp"`
	MovementType      string          `json:"movement_type"`
	ReferenceDocument string          `json:"reference_document,omitempty"`
	Debit             decimal.Decimal `json:"debit"`
	Credit            decimal.Decimal `json:"credit"`
	ResultingBalance  decimal.Decimal `json:"resulting_balance"`
	CreatedBy         string          `json:"created_by,omitempty"`
}

// FromLedgerEntry convierte la entidad al DTO de respuesta.
func FromLedgerEntry(e *entity.LedgerEntry) LedgerEntryDTO {
	return LedgerEntryDTO{
		ID:                e.ID,
		ProductID:         e.ProductID,
		LocationID:        e.LocationID,
		Timestamp:         e.Timestamp,
		MovementType:      e.MovementType,
		ReferenceDocument: e.ReferenceDocument,
		Debit:             e.Debit,
		Credit:            e.Credit,
		ResultingBalance:  e.ResultingBalance,
		CreatedBy:         e.CreatedBy,
	}
}

// BalanceResponse respuesta de GET /api/inventory/balance.
type BalanceResponse struct {
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// ReconcileRequest body para POST /api/inventory/reconcile.
type ReconcileRequest struct {
	ProductID  string `json:"product_id"`
	LocationID string `json:"location_id"`
}

// ReconcileResponse resultado de reconciliar una clave producto+ubicación.
type ReconcileResponse struct {
	ProductID        string          `json:"product_id"`
	LocationID       string          `json:"location_id"`
	StoredQuantity   decimal.Decimal `json:"stored_quantity"`
	ComputedQuantity decimal.Decimal `json:"computed_quantity"`
	Difference       decimal.Decimal `json:"difference"`
	Entries          int             `json:"entries"`
	Consistent       bool            `json:"consistent"`
}
