package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// UseCase orquesta el ciclo de vida de traslados entre ubicaciones:
// pending -> in_transit (send) -> received (receive), o pending -> cancelled.
// Las mutaciones de stock pasan siempre por el motor de kardex.
type UseCase struct {
	txRunner     TxRunner
	recorder     MovementRecorder
	transferRepo repository.TransferRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el motor de traslados. transferRepo atado al pool se
// usa para lecturas; las transiciones pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	recorder MovementRecorder,
	transferRepo repository.TransferRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		recorder:     recorder,
		transferRepo: transferRepo,
		locationRepo: locationRepo,
	}
}

// LineInput línea solicitada al crear un traslado.
type LineInput struct {
	ProductID    string
	RequestedQty decimal.Decimal
}

// CreateInput entrada para crear un traslado.
type CreateInput struct {
	OriginLocationID      string
	DestinationLocationID string
	Type                  string // vacío = manual
	Lines                 []LineInput
	ActorID               string
}

// Create valida y persiste el traslado en estado pending. No toca stock.
func (uc *UseCase) Create(ctx context.Context, input CreateInput) (*entity.TransferOrder, error) {
	if input.OriginLocationID == "" || input.DestinationLocationID == "" || len(input.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if input.OriginLocationID == input.DestinationLocationID {
		return nil, domain.ErrInvalidInput
	}
	if input.Type == "" {
		input.Type = entity.TransferTypeManual
	}
	if !entity.ValidTransferType(input.Type) {
		return nil, domain.ErrInvalidInput
	}
	seen := make(map[string]bool, len(input.Lines))
	for _, line := range input.Lines {
		if line.ProductID == "" || !line.RequestedQty.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		if seen[line.ProductID] {
			return nil, domain.ErrInvalidInput
		}
		seen[line.ProductID] = true
	}
	for _, id := range []string{input.OriginLocationID, input.DestinationLocationID} {
		loc, err := uc.locationRepo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if loc == nil {
			return nil, domain.ErrLocationNotFound
		}
		if !loc.Active {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	t := &entity.TransferOrder{
		ID:                    uuid.New().String(),
		OriginLocationID:      input.OriginLocationID,
		DestinationLocationID: input.DestinationLocationID,
		Status:                entity.TransferStatusPending,
		Type:                  input.Type,
		CreatedAt:             now,
		CreatedBy:             input.ActorID,
	}
	t.Lines = make([]entity.TransferLine, 0, len(input.Lines))
	for _, line := range input.Lines {
		t.Lines = append(t.Lines, entity.TransferLine{
			TransferID:   t.ID,
			ProductID:    line.ProductID,
			RequestedQty: line.RequestedQty,
		})
	}
	// Cabecera y líneas se persisten en la misma transacción.
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.LedgerEntryRepository,
		_ repository.LocationStockRepository,
		transferRepo repository.TransferRepository,
	) error {
		return transferRepo.Create(t)
	})
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Send descuenta en origen la cantidad solicitada de cada línea (TRANSFER_OUT)
// y pasa el traslado a in_transit. Atómico a nivel de traslado: si alguna
// línea no tiene stock suficiente, ninguna se aplica y el traslado sigue
// pending. Envíos parciales no existen.
func (uc *UseCase) Send(ctx context.Context, id, actorID string) (*entity.TransferOrder, error) {
	var result *entity.TransferOrder
	err := uc.txRunner.RunTransfer(ctx, func(
		entryRepo repository.LedgerEntryRepository,
		stockRepo repository.LocationStockRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !t.CanSend() {
			return domain.ErrInvalidStateTransition
		}

		now := time.Now()
		for i := range t.Lines {
			line := &t.Lines[i]
			entry, err := uc.recorder.RecordMovementInTx(entryRepo, stockRepo, ledger.MovementInput{
				ProductID:         line.ProductID,
				LocationID:        t.OriginLocationID,
				Delta:             line.RequestedQty.Neg(),
				MovementType:      entity.MovementTypeTransferOut,
				ReferenceDocument: t.Number,
				ActorID:           actorID,
			}, now)
			if err != nil {
				return err
			}
			// Saldo de origen antes del descuento, derivado del saldo resultante.
			line.StockOriginBefore = entry.ResultingBalance.Add(line.RequestedQty)
		}

		t.Status = entity.TransferStatusInTransit
		t.SentAt = &now
		t.SentBy = actorID
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Receive acredita en destino (TRANSFER_IN) la cantidad solicitada de cada
// línea, u override por producto si se indica (0 <= override <= solicitada;
// fuera de rango es entrada inválida, nunca se recorta en silencio). El
// traslado queda received aun con recepción parcial: la diferencia queda
// registrada en las líneas, no existe estado intermedio.
func (uc *UseCase) Receive(ctx context.Context, id, actorID string, overrides map[string]decimal.Decimal) (*entity.TransferOrder, error) {
	var result *entity.TransferOrder
	err := uc.txRunner.RunTransfer(ctx, func(
		entryRepo repository.LedgerEntryRepository,
		stockRepo repository.LocationStockRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !t.CanReceive() {
			return domain.ErrInvalidStateTransition
		}

		lineByProduct := make(map[string]bool, len(t.Lines))
		for _, line := range t.Lines {
			lineByProduct[line.ProductID] = true
		}
		for productID := range overrides {
			if !lineByProduct[productID] {
				return domain.ErrInvalidInput
			}
		}

		now := time.Now()
		for i := range t.Lines {
			line := &t.Lines[i]
			qty := line.RequestedQty
			if override, ok := overrides[line.ProductID]; ok {
				if override.IsNegative() || override.GreaterThan(line.RequestedQty) {
					return domain.ErrInvalidInput
				}
				qty = override
			}
			if qty.IsPositive() {
				entry, err := uc.recorder.RecordMovementInTx(entryRepo, stockRepo, ledger.MovementInput{
					ProductID:         line.ProductID,
					LocationID:        t.DestinationLocationID,
					Delta:             qty,
					MovementType:      entity.MovementTypeTransferIn,
					ReferenceDocument: t.Number,
					ActorID:           actorID,
				}, now)
				if err != nil {
					return err
				}
				line.StockDestinationBefore = entry.ResultingBalance.Sub(qty)
			} else {
				// Override 0: no hay movimiento, la foto se toma por lectura.
				stock, err := stockRepo.Get(line.ProductID, t.DestinationLocationID)
				if err != nil {
					return err
				}
				line.StockDestinationBefore = stock.Quantity
			}
			line.ReceivedQty = qty
		}

		t.Status = entity.TransferStatusReceived
		t.ReceivedAt = &now
		t.ReceivedBy = actorID
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Cancel cancela un traslado pending. Un traslado pending no ha escrito nada
// en el kardex, así que cancelar no requiere movimiento compensatorio.
func (uc *UseCase) Cancel(ctx context.Context, id, actorID string) (*entity.TransferOrder, error) {
	var result *entity.TransferOrder
	err := uc.txRunner.RunTransfer(ctx, func(
		_ repository.LedgerEntryRepository,
		_ repository.LocationStockRepository,
		transferRepo repository.TransferRepository,
	) error {
		t, err := transferRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if !t.CanCancel() {
			return domain.ErrInvalidStateTransition
		}
		t.Status = entity.TransferStatusCancelled
		if err := transferRepo.Update(t); err != nil {
			return err
		}
		result = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetByID devuelve un traslado con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.TransferOrder, error) {
	if id == "" {
		return nil, domain.ErrInvalidInput
	}
	t, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

// List devuelve cabeceras de traslados; locationID y status opcionales.
func (uc *UseCase) List(ctx context.Context, locationID, status string, limit, offset int) ([]*entity.TransferOrder, error) {
	if status != "" {
		switch status {
		case entity.TransferStatusPending, entity.TransferStatusInTransit,
			entity.TransferStatusReceived, entity.TransferStatusCancelled:
		default:
			return nil, domain.ErrInvalidInput
		}
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.transferRepo.List(locationID, status, limit, offset)
}
