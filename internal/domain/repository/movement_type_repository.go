package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// MovementTypeRepository define el puerto de persistencia para MovementType.
type MovementTypeRepository interface {
	Create(movementType *entity.MovementType) error
	GetByID(id string) (*entity.MovementType, error)
	GetByCode(code string) (*entity.MovementType, error)
	GetByName(name string) (*entity.MovementType, error)
	Update(movementType *entity.MovementType) error
	List(limit, offset int) ([]*entity.MovementType, error)
	Delete(id string) error
}
