package replenishment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// UseCase evalúa reglas de reposición contra el stock actual. Es puramente
// consultivo: nunca muta stock; un componente externo de compras convierte
// una señal positiva en orden de compra.
type UseCase struct {
	ruleRepo  repository.ReplenishmentRuleRepository
	stockRepo repository.LocationStockRepository
}

// NewUseCase construye la política de reposición.
func NewUseCase(
	ruleRepo repository.ReplenishmentRuleRepository,
	stockRepo repository.LocationStockRepository,
) *UseCase {
	return &UseCase{ruleRepo: ruleRepo, stockRepo: stockRepo}
}

// EvaluationResult señal de reposición para un producto en una ubicación.
type EvaluationResult struct {
	ProductID    string
	LocationID   string
	CurrentStock decimal.Decimal
	ReorderPoint decimal.Decimal
	NeedsReorder bool
	SuggestedQty decimal.Decimal
}

// Evaluate calcula la señal para producto+ubicación:
// needsReorder = stock <= punto de reorden y punto de reorden > 0;
// suggestedQty = reorderQty si está configurada (> 0), si no
// max(0, maxStock - stock). Sin regla configurada no hay señal.
func (uc *UseCase) Evaluate(ctx context.Context, productID, locationID string) (*EvaluationResult, error) {
	if productID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	rule, err := uc.ruleRepo.Get(productID, locationID)
	if err != nil {
		return nil, err
	}
	stock, err := uc.stockRepo.Get(productID, locationID)
	if err != nil {
		return nil, err
	}

	result := &EvaluationResult{
		ProductID:    productID,
		LocationID:   locationID,
		CurrentStock: stock.Quantity,
		SuggestedQty: decimal.Zero,
	}
	if rule == nil {
		return result, nil
	}
	result.ReorderPoint = rule.ReorderPoint
	result.NeedsReorder = rule.ReorderPoint.IsPositive() &&
		stock.Quantity.LessThanOrEqual(rule.ReorderPoint)
	if result.NeedsReorder {
		result.SuggestedQty = suggestedQty(rule, stock.Quantity)
	}
	return result, nil
}

// ListSuggestions devuelve las señales de todos los productos de la ubicación
// que están en o bajo su punto de reorden, con la cantidad sugerida de pedido.
func (uc *UseCase) ListSuggestions(ctx context.Context, locationID string) ([]*EvaluationResult, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.ruleRepo.ListBelowReorderPoint(ctx, locationID)
	if err != nil {
		return nil, err
	}
	results := make([]*EvaluationResult, 0, len(items))
	for _, item := range items {
		rule := &entity.ReplenishmentRule{
			ReorderPoint: item.ReorderPoint,
			ReorderQty:   item.ReorderQty,
			MaxStock:     item.MaxStock,
		}
		results = append(results, &EvaluationResult{
			ProductID:    item.ProductID,
			LocationID:   item.LocationID,
			CurrentStock: item.CurrentStock,
			ReorderPoint: item.ReorderPoint,
			NeedsReorder: true,
			SuggestedQty: suggestedQty(rule, item.CurrentStock),
		})
	}
	return results, nil
}

// suggestedQty prioriza la cantidad fija de reorden; si no hay, completa
// hasta el stock máximo (nunca negativo).
func suggestedQty(rule *entity.ReplenishmentRule, current decimal.Decimal) decimal.Decimal {
	if rule.ReorderQty.IsPositive() {
		return rule.ReorderQty
	}
	qty := rule.MaxStock.Sub(current)
	if qty.IsNegative() {
		return decimal.Zero
	}
	return qty
}

// UpsertRule crea o actualiza la regla de reposición de producto+ubicación.
func (uc *UseCase) UpsertRule(ctx context.Context, rule *entity.ReplenishmentRule) error {
	if rule.ProductID == "" || rule.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if rule.MinStock.IsNegative() || rule.MaxStock.IsNegative() ||
		rule.ReorderPoint.IsNegative() || rule.ReorderQty.IsNegative() {
		return domain.ErrInvalidInput
	}
	rule.UpdatedAt = time.Now()
	return uc.ruleRepo.Upsert(rule)
}

// GetRule devuelve la regla configurada; nil si no existe.
func (uc *UseCase) GetRule(ctx context.Context, productID, locationID string) (*entity.ReplenishmentRule, error) {
	if productID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	return uc.ruleRepo.Get(productID, locationID)
}

// ListRules lista las reglas de una ubicación.
func (uc *UseCase) ListRules(ctx context.Context, locationID string, limit, offset int) ([]*entity.ReplenishmentRule, error) {
	if locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return uc.ruleRepo.ListByLocation(locationID, limit, offset)
}
