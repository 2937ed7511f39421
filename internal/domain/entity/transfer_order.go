package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del traslado. Las transiciones solo avanzan:
// pending -> in_transit -> received, o pending -> cancelled.
const (
	TransferStatusPending   = "pending"
	TransferStatusInTransit = "in_transit"
	TransferStatusReceived  = "received"
	TransferStatusCancelled = "cancelled"
)

// Tipos de traslado.
const (
	TransferTypeManual         = "manual"
	TransferTypeAutoReplenish  = "auto_replenish"
	TransferTypeRedistribution = "redistribution"
	TransferTypeEmergency      = "emergency"
)

// TransferOrder orquesta el traslado de stock entre dos ubicaciones en dos
// fases (envío y recepción). El envío descuenta en origen (TRANSFER_OUT) y la
// recepción acredita en destino (TRANSFER_IN); entre ambas el stock está
// "en tránsito": descontado en origen y aún no acreditado en destino.
type TransferOrder struct {
	ID                    string
	Number                string // único, ej. TR-000042
	OriginLocationID      string
	DestinationLocationID string
	Status                string
	Type                  string
	Lines                 []TransferLine
	CreatedAt             time.Time
	SentAt                *time.Time
	ReceivedAt            *time.Time
	CreatedBy             string
	SentBy                string
	ReceivedBy            string
}

// TransferLine es una línea del traslado.
// Invariante: 0 <= ReceivedQty <= RequestedQty.
// StockOriginBefore y StockDestinationBefore son fotos de auditoría tomadas
// al momento de enviar y de recibir, respectivamente.
type TransferLine struct {
	TransferID             string
	ProductID              string
	RequestedQty           decimal.Decimal
	ReceivedQty            decimal.Decimal
	StockOriginBefore      decimal.Decimal
	StockDestinationBefore decimal.Decimal
}

// ValidTransferType indica si el tipo de traslado es reconocido.
func ValidTransferType(t string) bool {
	switch t {
	case TransferTypeManual, TransferTypeAutoReplenish, TransferTypeRedistribution, TransferTypeEmergency:
		return true
	}
	return false
}

// CanSend indica si el traslado admite el envío (solo desde pending).
func (t *TransferOrder) CanSend() bool { return t.Status == TransferStatusPending }

// CanReceive indica si el traslado admite la recepción (solo desde in_transit).
func (t *TransferOrder) CanReceive() bool { return t.Status == TransferStatusInTransit }

// CanCancel indica si el traslado admite cancelación. Solo desde pending:
// un traslado in_transit ya descontó stock en origen sin crédito en destino,
// cancelarlo dejaría ese stock huérfano.
func (t *TransferOrder) CanCancel() bool { return t.Status == TransferStatusPending }
