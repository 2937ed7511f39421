package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.ReplenishmentRuleRepository = (*ReplenishmentRuleRepo)(nil)

// ReplenishmentRuleRepo implementación sobre PostgreSQL (usable con pool o tx).
type ReplenishmentRuleRepo struct {
	q Querier
}

// NewReplenishmentRuleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewReplenishmentRuleRepository(q Querier) *ReplenishmentRuleRepo {
	return &ReplenishmentRuleRepo{q: q}
}

const ruleColumns = `
	product_id, location_id, min_stock, max_stock, reorder_point, reorder_qty,
	auto_generate, preferred_supplier, updated_at`

// Get devuelve la regla para producto+ubicación; nil si no hay regla.
func (r *ReplenishmentRuleRepo) Get(productID, locationID string) (*entity.ReplenishmentRule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM replenishment_rules WHERE product_id = $1 AND location_id = $2`
	var rule entity.ReplenishmentRule
	var supplier *string
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&rule.ProductID, &rule.LocationID, &rule.MinStock, &rule.MaxStock,
		&rule.ReorderPoint, &rule.ReorderQty, &rule.AutoGenerate, &supplier,
		&rule.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get replenishment rule: %w", err)
	}
	if supplier != nil {
		rule.PreferredSupplier = *supplier
	}
	return &rule, nil
}

// Upsert inserta o actualiza la regla (por producto y ubicación).
func (r *ReplenishmentRuleRepo) Upsert(rule *entity.ReplenishmentRule) error {
	query := `
		INSERT INTO replenishment_rules
			(product_id, location_id, min_stock, max_stock, reorder_point,
			 reorder_qty, auto_generate, preferred_supplier, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET min_stock = EXCLUDED.min_stock, max_stock = EXCLUDED.max_stock,
			reorder_point = EXCLUDED.reorder_point, reorder_qty = EXCLUDED.reorder_qty,
			auto_generate = EXCLUDED.auto_generate,
			preferred_supplier = EXCLUDED.preferred_supplier,
			updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		rule.ProductID, rule.LocationID, rule.MinStock, rule.MaxStock,
		rule.ReorderPoint, rule.ReorderQty, rule.AutoGenerate,
		nullable(rule.PreferredSupplier), rule.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert replenishment rule: %w", err)
	}
	return nil
}

// ListByLocation lista las reglas de una ubicación, paginadas.
func (r *ReplenishmentRuleRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.ReplenishmentRule, error) {
	query := `SELECT ` + ruleColumns + `
		FROM replenishment_rules WHERE location_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list replenishment rules: %w", err)
	}
	defer rows.Close()
	var list []*entity.ReplenishmentRule
	for rows.Next() {
		var rule entity.ReplenishmentRule
		var supplier *string
		if err := rows.Scan(&rule.ProductID, &rule.LocationID, &rule.MinStock,
			&rule.MaxStock, &rule.ReorderPoint, &rule.ReorderQty,
			&rule.AutoGenerate, &supplier, &rule.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan replenishment rule: %w", err)
		}
		if supplier != nil {
			rule.PreferredSupplier = *supplier
		}
		list = append(list, &rule)
	}
	return list, rows.Err()
}

// ListBelowReorderPoint devuelve los productos de la ubicación cuyo stock
// actual está en o bajo su punto de reorden (reorder_point > 0), con mayor
// déficit primero. Productos sin fila de stock cuentan como cantidad 0.
func (r *ReplenishmentRuleRepo) ListBelowReorderPoint(ctx context.Context, locationID string) ([]repository.ReplenishmentItem, error) {
	query := `
		SELECT r.product_id, r.location_id, COALESCE(s.quantity, 0) AS current_stock,
		       r.reorder_point, r.reorder_qty, r.max_stock
		FROM replenishment_rules r
		LEFT JOIN location_stock s
			ON s.product_id = r.product_id AND s.location_id = r.location_id
		WHERE r.location_id = $1
		  AND r.reorder_point > 0
		  AND COALESCE(s.quantity, 0) <= r.reorder_point
		ORDER BY r.reorder_point - COALESCE(s.quantity, 0) DESC, r.product_id`
	rows, err := r.q.Query(ctx, query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list below reorder point: %w", err)
	}
	defer rows.Close()
	var items []repository.ReplenishmentItem
	for rows.Next() {
		var item repository.ReplenishmentItem
		if err := rows.Scan(&item.ProductID, &item.LocationID, &item.CurrentStock,
			&item.ReorderPoint, &item.ReorderQty, &item.MaxStock); err != nil {
			return nil, fmt.Errorf("scan replenishment item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
