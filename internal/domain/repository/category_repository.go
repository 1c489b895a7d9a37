package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// CategoryRepository define el puerto de persistencia para Category.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	GetByName(name string) (*entity.Category, error)
	Update(category *entity.Category) error
	List(limit, offset int) ([]*entity.Category, error)
	Delete(id string) error
}
