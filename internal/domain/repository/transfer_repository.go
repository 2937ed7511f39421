package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// TransferRepository define el puerto de persistencia para traslados.
type TransferRepository interface {
	// Create persiste el traslado con sus líneas y asigna el número único.
	Create(transfer *entity.TransferOrder) error
	// GetByID devuelve el traslado con sus líneas; nil si no existe.
	GetByID(id string) (*entity.TransferOrder, error)
	// GetForUpdate bloquea la cabecera del traslado (SELECT FOR UPDATE) para
	// serializar send/receive/cancel concurrentes sobre el mismo traslado.
	GetForUpdate(id string) (*entity.TransferOrder, error)
	// Update persiste cabecera (estado, marcas de tiempo, actores) y líneas
	// (cantidad recibida, fotos de stock).
	Update(transfer *entity.TransferOrder) error
	// List devuelve cabeceras filtradas por ubicación (origen o destino) y/o
	// estado; ambos filtros opcionales (vacío = todos).
	List(locationID, status string, limit, offset int) ([]*entity.TransferOrder, error)
}
