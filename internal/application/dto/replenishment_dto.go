package dto

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/replenishment"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// UpsertRuleRequest body para PUT /api/replenishment/rules.
type UpsertRuleRequest struct {
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	MinStock          decimal.Decimal `json:"min_stock"`
	MaxStock          decimal.Decimal `json:"max_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	ReorderQty        decimal.Decimal `json:"reorder_qty"`
	AutoGenerate      bool            `json:"auto_generate"`
	PreferredSupplier string          `json:"preferred_supplier,omitempty"`
}

// RuleDTO regla de reposición en respuestas.
type RuleDTO struct {
	ProductID         string          `json:"product_id"`
	LocationID        string          `json:"location_id"`
	MinStock          decimal.Decimal `json:"min_stock"`
	MaxStock          decimal.Decimal `json:"max_stock"`
	ReorderPoint      decimal.Decimal `json:"reorder_point"`
	ReorderQty        decimal.Decimal `json:"reorder_qty"`
	AutoGenerate      bool            `json:"auto_generate"`
	PreferredSupplier string          `json:"preferred_supplier,omitempty"`
}

// FromRule convierte la entidad al DTO de respuesta.
func FromRule(r *entity.ReplenishmentRule) RuleDTO {
	return RuleDTO{
		ProductID:         r.ProductID,
		LocationID:        r.LocationID,
		MinStock:          r.MinStock,
		MaxStock:          r.MaxStock,
		ReorderPoint:      r.ReorderPoint,
		ReorderQty:        r.ReorderQty,
		AutoGenerate:      r.AutoGenerate,
		PreferredSupplier: r.PreferredSupplier,
	}
}

// EvaluationDTO señal de reposición en respuestas.
type EvaluationDTO struct {
	ProductID    string          `json:"product_id"`
	LocationID   string          `json:"location_id"`
	CurrentStock decimal.Decimal `json:"current_stock"`
	ReorderPoint decimal.Decimal `json:"reorder_point"`
	NeedsReorder bool            `json:"needs_reorder"`
	SuggestedQty decimal.Decimal `json:"suggested_qty"`
}

// FromEvaluation convierte el resultado de la política al DTO de respuesta.
func FromEvaluation(r *replenishment.EvaluationResult) EvaluationDTO {
	return EvaluationDTO{
		ProductID:    r.ProductID,
		LocationID:   r.LocationID,
		CurrentStock: r.CurrentStock,
		ReorderPoint: r.ReorderPoint,
		NeedsReorder: r.NeedsReorder,
		SuggestedQty: r.SuggestedQty,
	}
}
