package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// MovementTypeUseCase casos de uso CRUD para tipos de movimiento.
type MovementTypeUseCase struct {
	repo         repository.MovementTypeRepository
	movementRepo repository.MovementRepository
}

// NewMovementTypeUseCase construye el caso de uso.
func NewMovementTypeUseCase(repo repository.MovementTypeRepository, movementRepo repository.MovementRepository) *MovementTypeUseCase {
	return &MovementTypeUseCase{repo: repo, movementRepo: movementRepo}
}

// Create crea un tipo de movimiento. Código y nombre son claves naturales únicas;
// el efecto sobre el stock solo admite entrada, salida o ninguno.
func (uc *MovementTypeUseCase) Create(in dto.CreateMovementTypeRequest) (*dto.MovementTypeResponse, error) {
	if !validStockEffect(in.StockEffect) {
		return nil, domain.ErrInvalidMovementType
	}
	if existing, err := uc.repo.GetByCode(in.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.repo.GetByName(in.Name); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	movementType := &entity.MovementType{
		ID:          uuid.New().String(),
		Code:        in.Code,
		Name:        in.Name,
		Description: in.Description,
		StockEffect: in.StockEffect,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(movementType); err != nil {
		return nil, err
	}
	return toMovementTypeResponse(movementType), nil
}

// GetByID obtiene un tipo de movimiento por ID. Devuelve nil si no existe.
func (uc *MovementTypeUseCase) GetByID(id string) (*dto.MovementTypeResponse, error) {
	movementType, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toMovementTypeResponse(movementType), nil
}

// Update actualiza un tipo de movimiento. Verifica colisiones de código/nombre
// solo cuando el nuevo valor difiere del actual.
func (uc *MovementTypeUseCase) Update(id string, in dto.UpdateMovementTypeRequest) (*dto.MovementTypeResponse, error) {
	movementType, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if movementType == nil {
		return nil, nil
	}
	if in.Code != nil && *in.Code != movementType.Code {
		existing, err := uc.repo.GetByCode(*in.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		movementType.Code = *in.Code
	}
	if in.Name != nil && *in.Name != movementType.Name {
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		movementType.Name = *in.Name
	}
	if in.Description != nil {
		movementType.Description = *in.Description
	}
	if in.StockEffect != nil {
		if !validStockEffect(*in.StockEffect) {
			return nil, domain.ErrInvalidMovementType
		}
		movementType.StockEffect = *in.StockEffect
	}
	movementType.UpdatedAt = time.Now()
	if err := uc.repo.Update(movementType); err != nil {
		return nil, err
	}
	return toMovementTypeResponse(movementType), nil
}

// List lista tipos de movimiento con paginación.
func (uc *MovementTypeUseCase) List(limit, offset int) ([]dto.MovementTypeResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementTypeResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toMovementTypeResponse(t))
	}
	return items, nil
}

// Delete elimina un tipo de movimiento. Falla con ErrConflict si tiene movimientos asociados.
func (uc *MovementTypeUseCase) Delete(id string) error {
	movementType, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if movementType == nil {
		return domain.ErrNotFound
	}
	hasMovements, err := uc.movementRepo.ExistsByType(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
}

func validStockEffect(effect string) bool {
	switch effect {
	case entity.StockEffectEntrada, entity.StockEffectSalida, entity.StockEffectNinguno:
		return true
	}
	return false
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
