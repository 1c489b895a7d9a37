package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCode(code string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
	Delete(id string) error
	// ExistsByCategory / ExistsBySupplier soportan los chequeos referenciales al eliminar.
	ExistsByCategory(categoryID string) (bool, error)
	ExistsBySupplier(supplierID string) (bool, error)
}
