package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

// LedgerEntryRepo implementación del kardex sobre PostgreSQL (usable con pool
// o tx). La tabla es append-only: este adaptador no expone UPDATE ni DELETE.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Append persiste el movimiento; el ID lo asigna la secuencia BIGSERIAL de la
// tabla, monotónicamente creciente.
func (r *LedgerEntryRepo) Append(entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries
			(product_id, location_id, ts, movement_type, reference_document,
			 debit, credit, resulting_balance, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	createdBy := (*string)(nil)
	if entry.CreatedBy != "" {
		createdBy = &entry.CreatedBy
	}
	err := r.q.QueryRow(context.Background(), query,
		entry.ProductID, entry.LocationID, entry.Timestamp, entry.MovementType,
		entry.ReferenceDocument, entry.Debit, entry.Credit, entry.ResultingBalance,
		createdBy,
	).Scan(&entry.ID)
	if err != nil {
		return fmt.Errorf("append ledger entry: %w", err)
	}
	return nil
}

// List devuelve movimientos ordenados ascendentemente por (ts, id), paginados.
// LocationID, From y To opcionales.
func (r *LedgerEntryRepo) List(ctx context.Context, filter repository.LedgerEntryFilter) ([]*entity.LedgerEntry, error) {
	query := `
		SELECT id, product_id, location_id, ts, movement_type, reference_document,
		       debit, credit, resulting_balance, created_by
		FROM ledger_entries WHERE product_id = $1`
	args := []any{filter.ProductID}
	pos := 2
	if filter.LocationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, filter.LocationID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND ts >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND ts <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY ts ASC, id ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		var e entity.LedgerEntry
		var createdBy *string
		if err := rows.Scan(&e.ID, &e.ProductID, &e.LocationID, &e.Timestamp,
			&e.MovementType, &e.ReferenceDocument, &e.Debit, &e.Credit,
			&e.ResultingBalance, &createdBy); err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		if createdBy != nil {
			e.CreatedBy = *createdBy
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
