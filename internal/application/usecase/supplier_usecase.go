package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo        repository.SupplierRepository
	productRepo repository.ProductRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, productRepo repository.ProductRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, productRepo: productRepo}
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Contact:   in.Contact,
		Phone:     in.Phone,
		Email:     in.Email,
		Address:   in.Address,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID. Devuelve nil si no existe.
func (uc *SupplierUseCase) GetByID(id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, nil
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.Contact != nil {
		supplier.Contact = *in.Contact
	}
	if in.Phone != nil {
		supplier.Phone = *in.Phone
	}
	if in.Email != nil {
		supplier.Email = *in.Email
	}
	if in.Address != nil {
		supplier.Address = *in.Address
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

// Delete elimina un proveedor. Falla con ErrConflict si tiene productos asociados.
func (uc *SupplierUseCase) Delete(id string) error {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if supplier == nil {
		return domain.ErrNotFound
	}
	hasProducts, err := uc.productRepo.ExistsBySupplier(id)
	if err != nil {
		return err
	}
	if hasProducts {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	if s == nil {
		return nil
	}
	return &dto.SupplierResponse{
		ID:        s.ID,
		Name:      s.Name,
		Contact:   s.Contact,
		Phone:     s.Phone,
		Email:     s.Email,
		Address:   s.Address,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
