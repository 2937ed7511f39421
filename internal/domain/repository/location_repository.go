package repository

import "github.com/jhoicas/kardex-api/internal/domain/entity"

// LocationRepository define el puerto de persistencia para Location (DIP).
// Las ubicaciones nunca se borran: Update con Active=false las desactiva.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	GetByCode(code string) (*entity.Location, error)
	Update(location *entity.Location) error
	List(limit, offset int) ([]*entity.Location, error)
}
