package inventory

import (
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementQueryUseCase consultas de solo lectura sobre el historial de movimientos.
type MovementQueryUseCase struct {
	movementRepo     repository.MovementRepository
	movementTypeRepo repository.MovementTypeRepository
	productRepo      repository.ProductRepository
	locationRepo     repository.LocationRepository
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(
	movementRepo repository.MovementRepository,
	movementTypeRepo repository.MovementTypeRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
) *MovementQueryUseCase {
	return &MovementQueryUseCase{
		movementRepo:     movementRepo,
		movementTypeRepo: movementTypeRepo,
		productRepo:      productRepo,
		locationRepo:     locationRepo,
	}
}

// GetByID obtiene un movimiento con sus referencias resueltas (tipo, producto, ubicaciones).
// Devuelve nil si no existe.
func (uc *MovementQueryUseCase) GetByID(id string) (*dto.MovementDetailResponse, error) {
	mov, err := uc.movementRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil {
		return nil, nil
	}
	out := &dto.MovementDetailResponse{MovementResponse: *toMovementResponse(mov)}

	if movementType, err := uc.movementTypeRepo.GetByID(mov.MovementTypeID); err != nil {
		return nil, err
	} else if movementType != nil {
		out.MovementType = toMovementTypeResponse(movementType)
	}
	if product, err := uc.productRepo.GetByID(mov.ProductID); err != nil {
		return nil, err
	} else if product != nil {
		out.Product = toProductResponse(product)
	}
	if mov.OriginLocationID != nil {
		origin, err := uc.locationRepo.GetByID(*mov.OriginLocationID)
		if err != nil {
			return nil, err
		}
		out.Origin = toLocationResponse(origin)
	}
	if mov.DestinationLocationID != nil {
		destination, err := uc.locationRepo.GetByID(*mov.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		out.Destination = toLocationResponse(destination)
	}
	return out, nil
}

// List busca movimientos componiendo los filtros opcionales (producto, tipo, rango de
// fechas) en una sola consulta parametrizada, ordenados por fecha descendente.
func (uc *MovementQueryUseCase) List(in dto.MovementListRequest) ([]dto.MovementResponse, error) {
	in.DefaultPage()
	list, err := uc.movementRepo.List(repository.MovementFilter{
		ProductID:      in.ProductID,
		MovementTypeID: in.MovementTypeID,
		From:           in.From,
		To:             in.To,
		Limit:          in.Limit,
		Offset:         in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return items, nil
}

func toMovementTypeResponse(t *entity.MovementType) *dto.MovementTypeResponse {
	if t == nil {
		return nil
	}
	return &dto.MovementTypeResponse{
		ID:          t.ID,
		Code:        t.Code,
		Name:        t.Name,
		Description: t.Description,
		StockEffect: t.StockEffect,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
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

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	if l == nil {
		return nil
	}
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		Address:   l.Address,
		Kind:      l.Kind,
		Active:    l.Active,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
