package ledger

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// pageSize tamaño de página usado al recorrer el kardex en la reconciliación.
const pageSize = 500

// UseCase es el motor de kardex: única autoridad que muta LocationStock.
// Cada movimiento se aplica como lectura-modificación-escritura atómica
// (SELECT FOR UPDATE + upsert + append) dentro de una transacción.
type UseCase struct {
	txRunner     TxRunner
	entryRepo    repository.LedgerEntryRepository
	stockRepo    repository.LocationStockRepository
	locationRepo repository.LocationRepository
}

// NewUseCase construye el motor de kardex. entryRepo y stockRepo atados al
// pool se usan para lecturas; las escrituras pasan por txRunner.
func NewUseCase(
	txRunner TxRunner,
	entryRepo repository.LedgerEntryRepository,
	stockRepo repository.LocationStockRepository,
	locationRepo repository.LocationRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		entryRepo:    entryRepo,
		stockRepo:    stockRepo,
		locationRepo: locationRepo,
	}
}

// MovementInput entrada para registrar un movimiento de kardex.
// Delta > 0 aumenta stock (compra, entrada por traslado, ajuste positivo,
// carga inicial); Delta < 0 lo disminuye (venta, salida por traslado, ajuste
// negativo). El signo debe corresponder al tipo.
type MovementInput struct {
	ProductID         string
	LocationID        string
	Delta             decimal.Decimal
	MovementType      string
	ReferenceDocument string
	ActorID           string
}

// Validate verifica tipo, signo y campos obligatorios antes de escribir.
func (in MovementInput) Validate() error {
	if in.ProductID == "" || in.LocationID == "" {
		return domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.MovementType) {
		return domain.ErrInvalidMovementType
	}
	if in.Delta.IsZero() {
		return domain.ErrInvalidInput
	}
	if entity.MovementSign(in.MovementType) > 0 != in.Delta.IsPositive() {
		return domain.ErrInvalidInput
	}
	return nil
}

// RecordMovement valida la entrada y aplica el movimiento en una transacción:
// bloquea (o materializa con cantidad 0) la fila de stock, verifica que el
// saldo no quede negativo, actualiza la cantidad y agrega el movimiento con
// el saldo resultante. Ambas escrituras se confirman juntas o ninguna.
// Con stock insuficiente devuelve domain.ErrInsufficientStock sin escribir.
func (uc *UseCase) RecordMovement(ctx context.Context, input MovementInput) (*entity.LedgerEntry, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(input.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	if !loc.Active {
		return nil, domain.ErrInvalidInput
	}

	var entry *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		entryRepo repository.LedgerEntryRepository,
		stockRepo repository.LocationStockRepository,
	) error {
		entry, err = uc.RecordMovementInTx(entryRepo, stockRepo, input, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RecordMovementInTx aplica un movimiento usando repositorios ya atados a la
// transacción del caller. Lo usa el motor de traslados para componer envíos
// multi-línea donde todas las líneas se confirman juntas o ninguna.
func (uc *UseCase) RecordMovementInTx(
	entryRepo repository.LedgerEntryRepository,
	stockRepo repository.LocationStockRepository,
	input MovementInput,
	now time.Time,
) (*entity.LedgerEntry, error) {
	// Bloquea la fila de stock; si es el primer movimiento de la clave, la
	// materializa con cantidad 0 dentro de esta misma transacción.
	stock, err := stockRepo.GetForUpdate(input.ProductID, input.LocationID)
	if err != nil {
		return nil, err
	}
	newQty := stock.Quantity.Add(input.Delta)
	if newQty.IsNegative() {
		return nil, domain.ErrInsufficientStock
	}

	stock.Quantity = newQty
	stock.UpdatedAt = now
	if err := stockRepo.Upsert(stock); err != nil {
		return nil, err
	}

	debit, credit := decimal.Zero, decimal.Zero
	if input.Delta.IsPositive() {
		debit = input.Delta
	} else {
		credit = input.Delta.Neg()
	}
	entry := &entity.LedgerEntry{
		ProductID:         input.ProductID,
		LocationID:        input.LocationID,
		Timestamp:         now,
		MovementType:      input.MovementType,
		ReferenceDocument: input.ReferenceDocument,
		Debit:             debit,
		Credit:            credit,
		ResultingBalance:  newQty,
		CreatedBy:         input.ActorID,
	}
	if err := entryRepo.Append(entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// GetBalance devuelve la cantidad actual de un producto en una ubicación,
// siempre consistente con el último movimiento confirmado de la clave.
func (uc *UseCase) GetBalance(ctx context.Context, productID, locationID string) (decimal.Decimal, error) {
	if productID == "" || locationID == "" {
		return decimal.Zero, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(productID, locationID)
	if err != nil {
		return decimal.Zero, err
	}
	return stock.Quantity, nil
}

// GetHistory devuelve el kardex paginado, ascendente por (timestamp, id).
// LocationID, From y To son opcionales.
func (uc *UseCase) GetHistory(ctx context.Context, filter repository.LedgerEntryFilter) ([]*entity.LedgerEntry, error) {
	if filter.ProductID == "" {
		return nil, domain.ErrInvalidInput
	}
	if filter.Limit <= 0 {
		filter.Limit = 100
	}
	if filter.Limit > pageSize {
		filter.Limit = pageSize
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}
	return uc.entryRepo.List(ctx, filter)
}

// ReconcileResult resultado de reconciliar una clave producto+ubicación.
// Difference = saldo almacenado - saldo recalculado; cero significa consistente.
type ReconcileResult struct {
	ProductID        string
	LocationID       string
	StoredQuantity   decimal.Decimal
	ComputedQuantity decimal.Decimal
	Difference       decimal.Decimal
	Entries          int
}

// Consistent indica si el kardex coincide con el stock almacenado.
func (r *ReconcileResult) Consistent() bool { return r.Difference.IsZero() }

// Reconcile recalcula el saldo plegando todos los movimientos de la clave y
// lo compara con el LocationStock almacenado. Solo lectura e idempotente:
// una discrepancia se reporta con domain.ErrIntegrityViolation (junto al
// resultado) y jamás se corrige automáticamente.
func (uc *UseCase) Reconcile(ctx context.Context, productID, locationID string) (*ReconcileResult, error) {
	if productID == "" || locationID == "" {
		return nil, domain.ErrInvalidInput
	}
	stock, err := uc.stockRepo.Get(productID, locationID)
	if err != nil {
		return nil, err
	}

	computed := decimal.Zero
	count := 0
	filter := repository.LedgerEntryFilter{
		ProductID:  productID,
		LocationID: locationID,
		Limit:      pageSize,
	}
	for {
		page, err := uc.entryRepo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		for _, e := range page {
			computed = computed.Add(e.Delta())
			count++
		}
		if len(page) < filter.Limit {
			break
		}
		filter.Offset += filter.Limit
	}

	result := &ReconcileResult{
		ProductID:        productID,
		LocationID:       locationID,
		StoredQuantity:   stock.Quantity,
		ComputedQuantity: computed,
		Difference:       stock.Quantity.Sub(computed),
		Entries:          count,
	}
	if !result.Consistent() {
		return result, domain.ErrIntegrityViolation
	}
	return result, nil
}
