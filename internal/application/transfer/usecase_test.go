package transfer_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/application/transfer"
	"github.com/jhoicas/kardex-api/internal/domain"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria con semántica todo-o-nada (como postgres.TxRunner)
// ──────────────────────────────────────────────────────────────────────────────

type stockKey struct{ productID, locationID string }

type memStore struct {
	entries    []*entity.LedgerEntry
	stock      map[stockKey]decimal.Decimal
	transfers  map[string]*entity.TransferOrder
	nextID     int64
	nextNumber int
}

func newMemStore() *memStore {
	return &memStore{
		stock:      make(map[stockKey]decimal.Decimal),
		transfers:  make(map[string]*entity.TransferOrder),
		nextID:     1,
		nextNumber: 1,
	}
}

func (s *memStore) snapshot() *memStore {
	cp := newMemStore()
	cp.nextID = s.nextID
	cp.nextNumber = s.nextNumber
	cp.entries = append(cp.entries, s.entries...)
	for k, v := range s.stock {
		cp.stock[k] = v
	}
	for k, v := range s.transfers {
		t := *v
		t.Lines = append([]entity.TransferLine(nil), v.Lines...)
		cp.transfers[k] = &t
	}
	return cp
}

type memEntryRepo struct{ store *memStore }

func (r *memEntryRepo) Append(entry *entity.LedgerEntry) error {
	e := *entry
	e.ID = r.store.nextID
	r.store.nextID++
	r.store.entries = append(r.store.entries, &e)
	entry.ID = e.ID
	return nil
}

func (r *memEntryRepo) List(_ context.Context, filter repository.LedgerEntryFilter) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	for _, e := range r.store.entries {
		if e.ProductID == filter.ProductID {
			out = append(out, e)
		}
	}
	return out, nil
}

type memStockRepo struct{ store *memStore }

func (r *memStockRepo) Get(productID, locationID string) (*entity.LocationStock, error) {
	qty := r.store.stock[stockKey{productID, locationID}]
	return &entity.LocationStock{ProductID: productID, LocationID: locationID, Quantity: qty}, nil
}

func (r *memStockRepo) GetForUpdate(productID, locationID string) (*entity.LocationStock, error) {
	return r.Get(productID, locationID)
}

func (r *memStockRepo) Upsert(stock *entity.LocationStock) error {
	r.store.stock[stockKey{stock.ProductID, stock.LocationID}] = stock.Quantity
	return nil
}

func (r *memStockRepo) ListByLocation(locationID string, limit, offset int) ([]*entity.LocationStock, error) {
	return nil, nil
}

type memTransferRepo struct{ store *memStore }

func (r *memTransferRepo) Create(t *entity.TransferOrder) error {
	t.Number = fmt.Sprintf("TR-%06d", r.store.nextNumber)
	r.store.nextNumber++
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	r.store.transfers[t.ID] = &cp
	return nil
}

func (r *memTransferRepo) GetByID(id string) (*entity.TransferOrder, error) {
	t, ok := r.store.transfers[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	return &cp, nil
}

func (r *memTransferRepo) GetForUpdate(id string) (*entity.TransferOrder, error) {
	return r.GetByID(id)
}

func (r *memTransferRepo) Update(t *entity.TransferOrder) error {
	cp := *t
	cp.Lines = append([]entity.TransferLine(nil), t.Lines...)
	r.store.transfers[t.ID] = &cp
	return nil
}

func (r *memTransferRepo) List(locationID, status string, limit, offset int) ([]*entity.TransferOrder, error) {
	var out []*entity.TransferOrder
	for _, t := range r.store.transfers {
		if locationID != "" && t.OriginLocationID != locationID && t.DestinationLocationID != locationID {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

type memLocationRepo struct{ locations map[string]*entity.Location }

func (r *memLocationRepo) Create(l *entity.Location) error { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}
func (r *memLocationRepo) GetByCode(code string) (*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) Update(l *entity.Location) error                 { r.locations[l.ID] = l; return nil }
func (r *memLocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	return nil, nil
}

// memTxRunner implementa los dos contratos transaccionales sobre una copia
// del store: si fn falla, la copia se descarta y nada queda escrito.
type memTxRunner struct{ store *memStore }

func (tx *memTxRunner) Run(
	_ context.Context,
	fn func(repository.LedgerEntryRepository, repository.LocationStockRepository) error,
) error {
	work := tx.store.snapshot()
	if err := fn(&memEntryRepo{store: work}, &memStockRepo{store: work}); err != nil {
		return err
	}
	*tx.store = *work
	return nil
}

func (tx *memTxRunner) RunTransfer(
	_ context.Context,
	fn func(repository.LedgerEntryRepository, repository.LocationStockRepository, repository.TransferRepository) error,
) error {
	work := tx.store.snapshot()
	if err := fn(&memEntryRepo{store: work}, &memStockRepo{store: work}, &memTransferRepo{store: work}); err != nil {
		return err
	}
	*tx.store = *work
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	prodMonitor = "prod-monitor"
	prodMouse   = "prod-mouse"
	bodega      = "loc-bodega-central"
	sucursal    = "loc-sucursal-sur"
	actorRosa   = "user-rosa"
)

type fixture struct {
	uc    *transfer.UseCase
	kard  *ledger.UseCase
	store *memStore
}

func buildFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	locations := &memLocationRepo{locations: map[string]*entity.Location{
		bodega:   {ID: bodega, Code: "BOD-C", Name: "Bodega Central", Type: entity.LocationTypeWarehouse, Active: true},
		sucursal: {ID: sucursal, Code: "SUC-S", Name: "Sucursal Sur", Type: entity.LocationTypeBranch, Active: true},
	}}
	runner := &memTxRunner{store: store}
	kard := ledger.NewUseCase(runner, &memEntryRepo{store: store}, &memStockRepo{store: store}, locations)
	uc := transfer.NewUseCase(runner, kard, &memTransferRepo{store: store}, locations)
	return &fixture{uc: uc, kard: kard, store: store}
}

func (f *fixture) seedStock(t *testing.T, productID, locationID, qty string) {
	t.Helper()
	_, err := f.kard.RecordMovement(context.Background(), ledger.MovementInput{
		ProductID:    productID,
		LocationID:   locationID,
		Delta:        decimal.RequireFromString(qty),
		MovementType: entity.MovementTypeInitial,
		ActorID:      actorRosa,
	})
	require.NoError(t, err)
}

func (f *fixture) balance(productID, locationID string) decimal.Decimal {
	return f.store.stock[stockKey{productID, locationID}]
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Ciclo completo: create -> send -> receive
// ──────────────────────────────────────────────────────────────────────────────

// Traslado de 50 monitores con stock 70 en origen; en destino se reciben solo
// 45 (5 dañados en tránsito). La diferencia queda en la línea, no en el stock.
func TestTransfer_CicloCompletoConRecepcionParcial(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "70")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines:                 []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("50")}},
		ActorID:               actorRosa,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, created.Status)
	assert.Equal(t, "TR-000001", created.Number)
	assert.Equal(t, entity.TransferTypeManual, created.Type, "tipo por defecto")
	// Crear no toca stock.
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("70")))

	sent, err := f.uc.Send(ctx, created.ID, actorRosa)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusInTransit, sent.Status)
	require.NotNil(t, sent.SentAt)
	assert.Equal(t, actorRosa, sent.SentBy)
	assert.True(t, sent.Lines[0].StockOriginBefore.Equal(dec("70")))
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("20")), "origen descontado")
	assert.True(t, f.balance(prodMonitor, sucursal).IsZero(), "destino aún sin acreditar")

	received, err := f.uc.Receive(ctx, created.ID, actorRosa,
		map[string]decimal.Decimal{prodMonitor: dec("45")})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)
	assert.True(t, received.Lines[0].ReceivedQty.Equal(dec("45")))
	assert.True(t, received.Lines[0].StockDestinationBefore.IsZero())
	assert.True(t, f.balance(prodMonitor, sucursal).Equal(dec("45")))
	// Los 5 faltantes no vuelven a origen: quedan como diferencia en la línea.
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("20")))

	// El kardex registró TRANSFER_OUT en origen y TRANSFER_IN en destino con
	// el número del traslado como documento de referencia.
	var outs, ins int
	for _, e := range f.store.entries {
		switch e.MovementType {
		case entity.MovementTypeTransferOut:
			outs++
			assert.Equal(t, created.Number, e.ReferenceDocument)
		case entity.MovementTypeTransferIn:
			ins++
			assert.Equal(t, created.Number, e.ReferenceDocument)
		}
	}
	assert.Equal(t, 1, outs)
	assert.Equal(t, 1, ins)
}

func TestTransfer_RecepcionSinOverrideAcreditaLoSolicitado(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "30")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines:                 []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("30")}},
		ActorID:               actorRosa,
	})
	require.NoError(t, err)
	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	require.NoError(t, err)

	received, err := f.uc.Receive(ctx, created.ID, actorRosa, nil)
	require.NoError(t, err)
	assert.True(t, received.Lines[0].ReceivedQty.Equal(dec("30")))
	assert.True(t, f.balance(prodMonitor, sucursal).Equal(dec("30")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Send: atomicidad multi-línea
// ──────────────────────────────────────────────────────────────────────────────

// Envío de dos líneas donde la segunda excede el stock: NINGUNA línea se
// aplica y el traslado sigue pending. Envíos parciales no existen.
func TestSend_TodoONadaConVariasLineas(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "100")
	f.seedStock(t, prodMouse, bodega, "5")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines: []transfer.LineInput{
			{ProductID: prodMonitor, RequestedQty: dec("10")},
			{ProductID: prodMouse, RequestedQty: dec("8")}, // solo hay 5
		},
		ActorID: actorRosa,
	})
	require.NoError(t, err)

	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	// La primera línea tampoco se descontó.
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("100")))
	assert.True(t, f.balance(prodMouse, bodega).Equal(dec("5")))

	after, err := f.uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusPending, after.Status, "el traslado sigue pending y puede reintentarse")
}

// ──────────────────────────────────────────────────────────────────────────────
// Transiciones inválidas
// ──────────────────────────────────────────────────────────────────────────────

func TestTransfer_TransicionesInvalidasSinEfectosSecundarios(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "50")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines:                 []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("10")}},
		ActorID:               actorRosa,
	})
	require.NoError(t, err)

	// Recibir un pending: inválido.
	_, err = f.uc.Receive(ctx, created.ID, actorRosa, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	require.NoError(t, err)

	// Cancelar un in_transit: inválido (el stock ya salió de origen).
	_, err = f.uc.Cancel(ctx, created.ID, actorRosa)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)

	// Enviar dos veces: inválido y sin doble descuento.
	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("40")), "sin doble descuento")

	_, err = f.uc.Receive(ctx, created.ID, actorRosa, nil)
	require.NoError(t, err)

	// Recibir dos veces: inválido y sin doble acreditación.
	_, err = f.uc.Receive(ctx, created.ID, actorRosa, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	assert.True(t, f.balance(prodMonitor, sucursal).Equal(dec("10")))
}

func TestCancel_SoloDesdePending(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "50")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines:                 []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("10")}},
		ActorID:               actorRosa,
	})
	require.NoError(t, err)

	cancelled, err := f.uc.Cancel(ctx, created.ID, actorRosa)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusCancelled, cancelled.Status)
	// Cancelar un pending no necesita movimiento compensatorio.
	assert.True(t, f.balance(prodMonitor, bodega).Equal(dec("50")))
	assert.Empty(t, f.store.entries[1:], "solo existe la carga inicial en el kardex")

	// Cancelado es terminal.
	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
	_, err = f.uc.Cancel(ctx, created.ID, actorRosa)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

// ──────────────────────────────────────────────────────────────────────────────
// Receive: validación de overrides
// ──────────────────────────────────────────────────────────────────────────────

func TestReceive_OverridesFueraDeRangoRechazados(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()
	f.seedStock(t, prodMonitor, bodega, "50")

	created, err := f.uc.Create(ctx, transfer.CreateInput{
		OriginLocationID:      bodega,
		DestinationLocationID: sucursal,
		Lines:                 []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("20")}},
		ActorID:               actorRosa,
	})
	require.NoError(t, err)
	_, err = f.uc.Send(ctx, created.ID, actorRosa)
	require.NoError(t, err)

	casos := []struct {
		nombre    string
		overrides map[string]decimal.Decimal
	}{
		{"mayor a lo solicitado", map[string]decimal.Decimal{prodMonitor: dec("21")}},
		{"negativo", map[string]decimal.Decimal{prodMonitor: dec("-1")}},
		{"producto que no es línea del traslado", map[string]decimal.Decimal{prodMouse: dec("1")}},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.uc.Receive(ctx, created.ID, actorRosa, tc.overrides)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.True(t, f.balance(prodMonitor, sucursal).IsZero(), "destino sin acreditar")
		})
	}

	// Override 0 sí es válido: nada llegó, el traslado cierra igualmente.
	received, err := f.uc.Receive(ctx, created.ID, actorRosa,
		map[string]decimal.Decimal{prodMonitor: decimal.Zero})
	require.NoError(t, err)
	assert.Equal(t, entity.TransferStatusReceived, received.Status)
	assert.True(t, received.Lines[0].ReceivedQty.IsZero())
	assert.True(t, f.balance(prodMonitor, sucursal).IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Create: validaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_Validaciones(t *testing.T) {
	f := buildFixture(t)
	ctx := context.Background()

	casos := []struct {
		nombre  string
		input   transfer.CreateInput
		wantErr error
	}{
		{
			nombre: "origen y destino iguales",
			input: transfer.CreateInput{
				OriginLocationID: bodega, DestinationLocationID: bodega,
				Lines: []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("1")}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nombre: "sin líneas",
			input: transfer.CreateInput{
				OriginLocationID: bodega, DestinationLocationID: sucursal,
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nombre: "cantidad no positiva",
			input: transfer.CreateInput{
				OriginLocationID: bodega, DestinationLocationID: sucursal,
				Lines: []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: decimal.Zero}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nombre: "producto repetido en dos líneas",
			input: transfer.CreateInput{
				OriginLocationID: bodega, DestinationLocationID: sucursal,
				Lines: []transfer.LineInput{
					{ProductID: prodMonitor, RequestedQty: dec("1")},
					{ProductID: prodMonitor, RequestedQty: dec("2")},
				},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nombre: "tipo desconocido",
			input: transfer.CreateInput{
				OriginLocationID: bodega, DestinationLocationID: sucursal, Type: "teleport",
				Lines: []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("1")}},
			},
			wantErr: domain.ErrInvalidInput,
		},
		{
			nombre: "ubicación origen inexistente",
			input: transfer.CreateInput{
				OriginLocationID: "loc-fantasma", DestinationLocationID: sucursal,
				Lines: []transfer.LineInput{{ProductID: prodMonitor, RequestedQty: dec("1")}},
			},
			wantErr: domain.ErrLocationNotFound,
		},
	}
	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			_, err := f.uc.Create(ctx, tc.input)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}

	assert.Empty(t, f.store.transfers, "ningún traslado inválido quedó persistido")
}

func TestList_EstadoInvalidoRechazado(t *testing.T) {
	f := buildFixture(t)
	_, err := f.uc.List(context.Background(), "", "teleported", 10, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
