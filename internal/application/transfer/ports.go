package transfer

import (
	"context"
	"time"

	"github.com/jhoicas/kardex-api/internal/application/ledger"
	"github.com/jhoicas/kardex-api/internal/domain/entity"
	"github.com/jhoicas/kardex-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios que necesita el motor de traslados. El envío es multi-clave:
// todas las líneas y el cambio de estado se confirman juntos o ninguno.
type TxRunner interface {
	RunTransfer(ctx context.Context, fn func(
		entryRepo repository.LedgerEntryRepository,
		stockRepo repository.LocationStockRepository,
		transferRepo repository.TransferRepository,
	) error) error
}

// MovementRecorder aplica un movimiento de kardex dentro de la transacción
// del caller. Lo implementa el motor de kardex (ledger.UseCase).
type MovementRecorder interface {
	RecordMovementInTx(
		entryRepo repository.LedgerEntryRepository,
		stockRepo repository.LocationStockRepository,
		input ledger.MovementInput,
		now time.Time,
	) (*entity.LedgerEntry, error)
}
