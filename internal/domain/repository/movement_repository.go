package repository

import (
	"time"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// MovementFilter compone los filtros opcionales de búsqueda de movimientos
// en una sola consulta parametrizada (sin ramas de código separadas).
type MovementFilter struct {
	ProductID      string
	MovementTypeID string
	From           *time.Time
	To             *time.Time
	Limit          int
	Offset         int
}

// MovementRepository define el puerto de persistencia para movimientos de inventario.
// Los movimientos son write-once: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	List(filter MovementFilter) ([]*entity.Movement, error)
	ExistsByProduct(productID string) (bool, error)
	ExistsByLocation(locationID string) (bool, error)
	ExistsByType(movementTypeID string) (bool, error)
}
