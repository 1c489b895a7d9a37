package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockUseCase consultas del ledger de stock y creación directa de registros.
// Las mutaciones de cantidad ocurren solo a través del motor de movimientos.
type StockUseCase struct {
	repo         repository.StockRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(repo repository.StockRepository, productRepo repository.ProductRepository, locationRepo repository.LocationRepository) *StockUseCase {
	return &StockUseCase{repo: repo, productRepo: productRepo, locationRepo: locationRepo}
}

// Create crea un registro de stock por la vía directa. Rechaza con ErrDuplicate si
// ya existe un registro para el par (producto, ubicación), preservando la unicidad
// cuando el ledger se manipula fuera del flujo de movimientos.
func (uc *StockUseCase) Create(in dto.CreateStockRequest) (*dto.StockResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	location, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	existing, err := uc.repo.Get(in.ProductID, in.LocationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	stock := &entity.Stock{
		ID:         uuid.New().String(),
		ProductID:  in.ProductID,
		LocationID: in.LocationID,
		Quantity:   in.Quantity,
		UpdatedAt:  time.Now(),
	}
	if err := uc.repo.Create(stock); err != nil {
		return nil, err
	}
	return toStockResponse(stock), nil
}

// List consulta el ledger con filtros opcionales por producto y ubicación.
func (uc *StockUseCase) List(productID, locationID string, limit, offset int) ([]dto.StockResponse, error) {
	list, err := uc.repo.List(productID, locationID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStockResponse(s))
	}
	return items, nil
}

// Get devuelve la cantidad almacenada para un par producto/ubicación.
// Sin registro no es error: se responde cantidad cero.
func (uc *StockUseCase) Get(productID, locationID string) (*dto.StockResponse, error) {
	stock, err := uc.repo.Get(productID, locationID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return &dto.StockResponse{
			ProductID:  productID,
			LocationID: locationID,
			Quantity:   decimal.Zero,
		}, nil
	}
	return toStockResponse(stock), nil
}

func toStockResponse(s *entity.Stock) *dto.StockResponse {
	if s == nil {
		return nil
	}
	return &dto.StockResponse{
		ID:         s.ID,
		ProductID:  s.ProductID,
		LocationID: s.LocationID,
		Quantity:   s.Quantity,
		UpdatedAt:  s.UpdatedAt,
	}
}
