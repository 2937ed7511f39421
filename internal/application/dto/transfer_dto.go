package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain/entity"
)

// TransferLineRequest línea solicitada al crear un traslado.
type TransferLineRequest struct {
	ProductID    string          `json:"product_id"`
	RequestedQty decimal.Decimal `json:"requested_qty"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	OriginLocationID      string                `json:"origin_location_id"`
	DestinationLocationID string                `json:"destination_location_id"`
	Type                  string                `json:"type,omitempty"`
	Lines                 []TransferLineRequest `json:"lines"`
}

// ReceiveLineOverride cantidad recibida para una línea (si difiere de la solicitada).
type ReceiveLineOverride struct {
	ProductID   string          `json:"product_id"`
	ReceivedQty decimal.Decimal `json:"received_qty"`
}

// ReceiveTransferRequest body para POST /api/transfers/:id/receive.
// Sin overrides se recibe la cantidad solicitada completa por línea.
type ReceiveTransferRequest struct {
	Overrides []ReceiveLineOverride `json:"overrides,omitempty"`
}

// TransferLineDTO línea de traslado en respuestas.
type TransferLineDTO struct {
	ProductID              string          `json:"product_id"`
	RequestedQty           decimal.Decimal `json:"requested_qty"`
	ReceivedQty            decimal.Decimal `json:"received_qty"`
	StockOriginBefore      decimal.Decimal `json:"stock_origin_before"`
	StockDestinationBefore decimal.Decimal `json:"stock_destination_before"`
}

// TransferDTO traslado en respuestas.
type TransferDTO struct {
	ID                    string            `json:"id"`
	Number                string            `json:"number"`
	OriginLocationID      string            `json:"origin_location_id"`
	DestinationLocationID string            `json:"destination_location_id"`
	Status                string            `json:"status"`
	Type                  string            `json:"type"`
	Lines                 []TransferLineDTO `json:"lines,omitempty"`
	CreatedAt             time.Time         `json:"created_at"`
	SentAt                *time.Time        `json:"sent_at,omitempty"`
	ReceivedAt            *time.Time        `json:"received_at,omitempty"`
	CreatedBy             string            `json:"created_by,omitempty"`
	SentBy                string            `json:"sent_by,omitempty"`
	ReceivedBy            string            `json:"received_by,omitempty"`
}

// FromTransfer convierte la entidad al DTO de respuesta.
func FromTransfer(t *entity.TransferOrder) TransferDTO {
	out := TransferDTO{
		ID:                    t.ID,
		Number:                t.Number,
		OriginLocationID:      t.OriginLocationID,
		DestinationLocationID: t.DestinationLocationID,
		Status:                t.Status,
		Type:                  t.Type,
		CreatedAt:             t.CreatedAt,
		SentAt:                t.SentAt,
		ReceivedAt:            t.ReceivedAt,
		CreatedBy:             t.CreatedBy,
		SentBy:                t.SentBy,
		ReceivedBy:            t.ReceivedBy,
	}
	for _, line := range t.Lines {
		out.Lines = append(out.Lines, TransferLineDTO{
			ProductID:              line.ProductID,
			RequestedQty:           line.RequestedQty,
			ReceivedQty:            line.ReceivedQty,
			StockOriginBefore:      line.StockOriginBefore,
			StockDestinationBefore: line.StockDestinationBefore,
		})
	}
	return out
}
