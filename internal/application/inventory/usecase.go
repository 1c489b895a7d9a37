package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional.
// Valida contra catálogo y stock, y aplica el efecto sobre el ledger con bloqueo de
// fila (SELECT FOR UPDATE) y Commit/Rollback: la suficiencia de stock se reverifica
// bajo el lock, así dos salidas concurrentes sobre el mismo par no pueden pasar
// ambas con una lectura obsoleta.
type RegisterMovementUseCase struct {
	txRunner         TxRunner
	productRepo      repository.ProductRepository
	movementTypeRepo repository.MovementTypeRepository
	locationRepo     repository.LocationRepository
	stockRepo        repository.StockRepository
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	movementTypeRepo repository.MovementTypeRepository,
	locationRepo repository.LocationRepository,
	stockRepo repository.StockRepository,
) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{
		txRunner:         txRunner,
		productRepo:      productRepo,
		movementTypeRepo: movementTypeRepo,
		locationRepo:     locationRepo,
		stockRepo:        stockRepo,
	}
}

// RegisterMovement valida la solicitud (lecturas sin mutar estado), y dentro de una
// transacción aplica el efecto sobre el stock e inserta el movimiento. El movimiento
// queda con fecha del servidor y el usuario que lo registró.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	movementType, err := uc.validate(in)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	mov := &entity.Movement{
		ID:                    uuid.New().String(),
		Quantity:              in.Quantity,
		MovementTypeID:        in.MovementTypeID,
		ProductID:             in.ProductID,
		OriginLocationID:      in.OriginLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Reference:             in.Reference,
		Notes:                 in.Notes,
		Date:                  now,
		CreatedBy:             userID,
	}

	// Inicia transacción; Commit si todo ok, Rollback si algo falla (TxRunner.Run lo hace).
	err = uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error {
		switch movementType.StockEffect {
		case entity.StockEffectEntrada:
			// Crédito aditivo en un solo upsert: la creación perezosa de la fila
			// no puede apoyarse en FOR UPDATE (no hay fila que bloquear).
			if err := stockRepo.Credit(in.ProductID, *in.DestinationLocationID, mov.Quantity); err != nil {
				return err
			}
		case entity.StockEffectSalida:
			if err := debitStock(stockRepo, in.ProductID, *in.OriginLocationID, mov, now); err != nil {
				return err
			}
		case entity.StockEffectNinguno:
			// sin efecto sobre el ledger
		}
		return movRepo.Create(mov)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(mov), nil
}

// validate decide si el movimiento es admisible sin mutar estado. Chequeos ordenados;
// el primero que falla gana. Devuelve el tipo de movimiento resuelto.
func (uc *RegisterMovementUseCase) validate(in dto.RegisterMovementRequest) (*entity.MovementType, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.ErrInvalidQuantity
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	movementType, err := uc.movementTypeRepo.GetByID(in.MovementTypeID)
	if err != nil {
		return nil, err
	}
	if movementType == nil {
		return nil, domain.ErrMovementTypeNotFound
	}
	// Un efecto almacenado fuera de {entrada, salida, ninguno} es un fallo de
	// integridad de datos, no un no-op silencioso.
	if !movementType.ValidStockEffect() {
		return nil, domain.ErrInvalidMovementType
	}
	if movementType.StockEffect == entity.StockEffectEntrada && in.DestinationLocationID == nil {
		return nil, domain.ErrMissingDestination
	}
	if movementType.StockEffect == entity.StockEffectSalida && in.OriginLocationID == nil {
		return nil, domain.ErrMissingOrigin
	}
	if in.OriginLocationID != nil {
		origin, err := uc.locationRepo.GetByID(*in.OriginLocationID)
		if err != nil {
			return nil, err
		}
		if origin == nil {
			return nil, domain.ErrOriginNotFound
		}
	}
	if in.DestinationLocationID != nil {
		destination, err := uc.locationRepo.GetByID(*in.DestinationLocationID)
		if err != nil {
			return nil, err
		}
		if destination == nil {
			return nil, domain.ErrDestinationNotFound
		}
	}
	if movementType.StockEffect == entity.StockEffectSalida {
		stock, err := uc.stockRepo.Get(in.ProductID, *in.OriginLocationID)
		if err != nil {
			return nil, err
		}
		if stock == nil || stock.Quantity.LessThan(in.Quantity) {
			available := decimal.Zero
			if stock != nil {
				available = stock.Quantity
			}
			return nil, &domain.InsufficientStockError{Available: available}
		}
	}
	return movementType, nil
}

// debitStock bloquea la fila de origen y reverifica suficiencia bajo el lock:
// si el stock cambió entre validación y aplicación, falla igual que en validación
// y la transacción hace rollback completo. La cantidad nunca queda negativa.
func debitStock(stockRepo repository.StockRepository, productID, locationID string, mov *entity.Movement, now time.Time) error {
	stock, err := stockRepo.GetForUpdate(productID, locationID)
	if err != nil {
		return err
	}
	if stock.Quantity.LessThan(mov.Quantity) {
		return &domain.InsufficientStockError{Available: stock.Quantity}
	}
	stock.Quantity = stock.Quantity.Sub(mov.Quantity)
	stock.UpdatedAt = now
	return stockRepo.Upsert(stock)
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	return &dto.MovementResponse{
		ID:                    m.ID,
		Quantity:              m.Quantity,
		MovementTypeID:        m.MovementTypeID,
		ProductID:             m.ProductID,
		OriginLocationID:      m.OriginLocationID,
		DestinationLocationID: m.DestinationLocationID,
		Reference:             m.Reference,
		Notes:                 m.Notes,
		Date:                  m.Date,
		CreatedBy:             m.CreatedBy,
	}
}
