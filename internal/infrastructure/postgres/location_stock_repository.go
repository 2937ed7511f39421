package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LocationStockRepository = (*LocationStockRepo)(nil)

// LocationStockRepo implementación de LocationStockRepository sobre PostgreSQL
// (usable con pool o tx).
type LocationStockRepo struct {
	q Querier
}

// NewLocationStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationStockRepository(q Querier) *LocationStockRepo {
	return &LocationStockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación.
// Sin fila devuelve cantidad 0 (la clave aún no tuvo movimientos).
func (r *LocationStockRepo) Get(productID, locationID string) (*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2`
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.LocationStock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get location stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate materializa la fila con cantidad 0 si no existe y la bloquea
// (SELECT FOR UPDATE). Debe ejecutarse dentro de una transacción: dos primeros
// movimientos concurrentes sobre la misma clave serializan aquí en vez de
// pisarse la creación de la fila.
func (r *LocationStockRepo) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	insert := `
		INSERT INTO location_stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, location_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), insert, productID, locationID); err != nil {
		return nil, fmt.Errorf("init location stock: %w", mapLockError(err))
	}
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.LocationStock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("get location stock for update: %w", mapLockError(err))
	}
	return &s, nil
}

// Upsert inserta o actualiza la cantidad (por producto y ubicación).
func (r *LocationStockRepo) Upsert(stock *entity.LocationStock) error {
	query := `
		INSERT INTO location_stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		stock.ProductID, stock.LocationID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert location stock: %w", err)
	}
	return nil
}

// ListByLocation lista el stock de una ubicación, paginado.
func (r *LocationStockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.LocationStock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM location_stock WHERE location_id = $1
		ORDER BY product_id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, locationID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list location stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.LocationStock
	for rows.Next() {
		var s entity.LocationStock
		if err := rows.Scan(&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
