package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL
// (usable con pool o tx).
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

// Create persiste cabecera y líneas; el número único sale de la secuencia
// transfer_number_seq. Debe invocarse dentro de una transacción.
func (r *TransferRepo) Create(t *entity.TransferOrder) error {
	header := `
		INSERT INTO transfer_orders
			(id, number, origin_location_id, destination_location_id,
			 status, type, created_at, created_by)
		VALUES ($1, 'TR-' || lpad(nextval('transfer_number_seq')::text, 6, '0'),
		        $2, $3, $4, $5, $6, $7)
		RETURNING number`
	err := r.q.QueryRow(context.Background(), header,
		t.ID, t.OriginLocationID, t.DestinationLocationID,
		t.Status, t.Type, t.CreatedAt, nullable(t.CreatedBy),
	).Scan(&t.Number)
	if err != nil {
		return fmt.Errorf("create transfer: %w", err)
	}
	line := `
		INSERT INTO transfer_lines
			(transfer_id, product_id, requested_qty, received_qty,
			 stock_origin_before, stock_destination_before)
		VALUES ($1, $2, $3, 0, 0, 0)`
	for _, l := range t.Lines {
		if _, err := r.q.Exec(context.Background(), line, t.ID, l.ProductID, l.RequestedQty); err != nil {
			return fmt.Errorf("create transfer line: %w", err)
		}
	}
	return nil
}

const transferColumns = `
	id, number, origin_location_id, destination_location_id, status, type,
	created_at, sent_at, received_at, created_by, sent_by, received_by`

func (r *TransferRepo) get(id string, forUpdate bool) (*entity.TransferOrder, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_orders WHERE id = $1`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var t entity.TransferOrder
	var createdBy, sentBy, receivedBy *string
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Number, &t.OriginLocationID, &t.DestinationLocationID,
		&t.Status, &t.Type, &t.CreatedAt, &t.SentAt, &t.ReceivedAt,
		&createdBy, &sentBy, &receivedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", mapLockError(err))
	}
	t.CreatedBy = deref(createdBy)
	t.SentBy = deref(sentBy)
	t.ReceivedBy = deref(receivedBy)

	lines := `
		SELECT transfer_id, product_id, requested_qty, received_qty,
		       stock_origin_before, stock_destination_before
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY product_id`
	rows, err := r.q.Query(context.Background(), lines, id)
	if err != nil {
		return nil, fmt.Errorf("get transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.TransferLine
		if err := rows.Scan(&l.TransferID, &l.ProductID, &l.RequestedQty,
			&l.ReceivedQty, &l.StockOriginBefore, &l.StockDestinationBefore); err != nil {
			return nil, fmt.Errorf("scan transfer line: %w", err)
		}
		t.Lines = append(t.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &t, nil
}

// GetByID devuelve el traslado con sus líneas; nil si no existe.
func (r *TransferRepo) GetByID(id string) (*entity.TransferOrder, error) {
	return r.get(id, false)
}

// GetForUpdate bloquea la cabecera (SELECT FOR UPDATE) para serializar
// send/receive/cancel concurrentes sobre el mismo traslado.
func (r *TransferRepo) GetForUpdate(id string) (*entity.TransferOrder, error) {
	return r.get(id, true)
}

// Update persiste cabecera y líneas (estado, marcas de tiempo, cantidades
// recibidas, fotos de stock). Las líneas nunca cambian de producto ni de
// cantidad solicitada.
func (r *TransferRepo) Update(t *entity.TransferOrder) error {
	header := `
		UPDATE transfer_orders
		SET status = $2, sent_at = $3, received_at = $4, sent_by = $5, received_by = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), header,
		t.ID, t.Status, t.SentAt, t.ReceivedAt, nullable(t.SentBy), nullable(t.ReceivedBy))
	if err != nil {
		return fmt.Errorf("update transfer: %w", err)
	}
	line := `
		UPDATE transfer_lines
		SET received_qty = $3, stock_origin_before = $4, stock_destination_before = $5
		WHERE transfer_id = $1 AND product_id = $2`
	for _, l := range t.Lines {
		if _, err := r.q.Exec(context.Background(), line, t.ID, l.ProductID,
			l.ReceivedQty, l.StockOriginBefore, l.StockDestinationBefore); err != nil {
			return fmt.Errorf("update transfer line: %w", err)
		}
	}
	return nil
}

// List devuelve cabeceras filtradas por ubicación (origen o destino) y/o
// estado, más recientes primero.
func (r *TransferRepo) List(locationID, status string, limit, offset int) ([]*entity.TransferOrder, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_orders WHERE 1=1`
	args := []any{}
	pos := 1
	if locationID != "" {
		query += fmt.Sprintf(" AND (origin_location_id = $%d OR destination_location_id = $%d)", pos, pos)
		args = append(args, locationID)
		pos++
	}
	if status != "" {
		query += fmt.Sprintf(" AND status = $%d", pos)
		args = append(args, status)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()
	var list []*entity.TransferOrder
	for rows.Next() {
		var t entity.TransferOrder
		var createdBy, sentBy, receivedBy *string
		if err := rows.Scan(&t.ID, &t.Number, &t.OriginLocationID, &t.DestinationLocationID,
			&t.Status, &t.Type, &t.CreatedAt, &t.SentAt, &t.ReceivedAt,
			&createdBy, &sentBy, &receivedBy); err != nil {
			return nil, fmt.Errorf("scan transfer: %w", err)
		}
		t.CreatedBy = deref(createdBy)
		t.SentBy = deref(sentBy)
		t.ReceivedBy = deref(receivedBy)
		list = append(list, &t)
	}
	return list, rows.Err()
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
