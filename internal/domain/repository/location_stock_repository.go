package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// LocationStockRepository define el puerto para consultar/actualizar el stock
// por producto+ubicación. Las mutaciones se usan dentro de transacciones para
// garantizar consistencia con el kardex.
type LocationStockRepository interface {
	// Get devuelve el stock actual; si no existe fila devuelve cantidad 0.
	Get(productID, locationID string) (*entity.LocationStock, error)
	// GetForUpdate materializa la fila con cantidad 0 si no existe y la
	// bloquea (SELECT FOR UPDATE). Debe invocarse dentro de una transacción:
	// así el get-or-create del primer movimiento queda en la misma unidad
	// atómica que el movimiento.
	GetForUpdate(productID, locationID string) (*entity.LocationStock, error)
	Upsert(stock *entity.LocationStock) error
	ListByLocation(locationID string, limit, offset int) ([]*entity.LocationStock, error)
}
