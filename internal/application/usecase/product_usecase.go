package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. El stock se maneja vía movimientos.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	stockRepo repository.StockRepository,
	movementRepo repository.MovementRepository,
) *ProductUseCase {
	return &ProductUseCase{
		repo:         repo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		stockRepo:    stockRepo,
		movementRepo: movementRepo,
	}
}

// Create crea un producto. El código es clave natural única; la categoría es
// obligatoria y el proveedor opcional, ambos deben existir.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetByCode(in.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	category, err := uc.categoryRepo.GetByID(in.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Code:          in.Code,
		Name:          in.Name,
		Description:   in.Description,
		PurchasePrice: in.PurchasePrice,
		SalePrice:     in.SalePrice,
		UnitMeasure:   in.UnitMeasure,
		MinStock:      in.MinStock,
		Active:        active,
		CategoryID:    in.CategoryID,
		SupplierID:    in.SupplierID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetDetail obtiene un producto con su stock total sumado entre todas las ubicaciones.
func (uc *ProductUseCase) GetDetail(id string) (*dto.ProductDetailResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	total, err := uc.stockRepo.SumByProduct(id)
	if err != nil {
		return nil, err
	}
	return &dto.ProductDetailResponse{
		ProductResponse: *toProductResponse(product),
		TotalStock:      total,
	}, nil
}

// Update actualiza un producto. Solo verifica colisión de código cuando cambia.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != product.Code {
		existing, err := uc.repo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		product.Code = *in.Code
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.PurchasePrice != nil {
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SalePrice != nil {
		product.SalePrice = *in.SalePrice
	}
	if in.UnitMeasure != nil {
		product.UnitMeasure = *in.UnitMeasure
	}
	if in.MinStock != nil {
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	if in.CategoryID != nil {
		category, err := uc.categoryRepo.GetByID(*in.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, domain.ErrNotFound
		}
		product.CategoryID = *in.CategoryID
	}
	if in.SupplierID != nil {
		supplier, err := uc.supplierRepo.GetByID(*in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		product.SupplierID = in.SupplierID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina un producto. Falla con ErrConflict mientras esté referenciado
// por stock o por movimientos.
func (uc *ProductUseCase) Delete(id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.stockRepo.ExistsByProduct(id)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrConflict
	}
	hasMovements, err := uc.movementRepo.ExistsByProduct(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Name:          p.Name,
		Description:   p.Description,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		UnitMeasure:   p.UnitMeasure,
		MinStock:      p.MinStock,
		Active:        p.Active,
		CategoryID:    p.CategoryID,
		SupplierID:    p.SupplierID,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
