package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// LocationUseCase casos de uso CRUD para ubicaciones.
type LocationUseCase struct {
	repo         repository.LocationRepository
	stockRepo    repository.StockRepository
	movementRepo repository.MovementRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(repo repository.LocationRepository, stockRepo repository.StockRepository, movementRepo repository.MovementRepository) *LocationUseCase {
	return &LocationUseCase{repo: repo, stockRepo: stockRepo, movementRepo: movementRepo}
}

// Create crea una ubicación. El nombre es clave natural única.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	existing, err := uc.repo.GetByName(in.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		Kind:      in.Kind,
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID obtiene una ubicación por ID. Devuelve nil si no existe.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// Update actualiza una ubicación. Solo verifica colisión de nombre cuando cambia.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, nil
	}
	if in.Name != nil && *in.Name != location.Name {
		existing, err := uc.repo.GetByName(*in.Name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.ErrDuplicate
		}
		location.Name = *in.Name
	}
	if in.Address != nil {
		location.Address = *in.Address
	}
	if in.Kind != nil {
		location.Kind = *in.Kind
	}
	if in.Active != nil {
		location.Active = *in.Active
	}
	location.UpdatedAt = time.Now()
	if err := uc.repo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones con paginación.
func (uc *LocationUseCase) List(limit, offset int) ([]dto.LocationResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLocationResponse(l))
	}
	return items, nil
}

// Delete elimina una ubicación. Falla con ErrConflict mientras esté referenciada
// por stock o por movimientos (como origen o destino).
func (uc *LocationUseCase) Delete(id string) error {
	location, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if location == nil {
		return domain.ErrNotFound
	}
	hasStock, err := uc.stockRepo.ExistsByLocation(id)
	if err != nil {
		return err
	}
	if hasStock {
		return domain.ErrConflict
	}
	hasMovements, err := uc.movementRepo.ExistsByLocation(id)
	if err != nil {
		return err
	}
	if hasMovements {
		return domain.ErrConflict
	}
	return uc.repo.Delete(id)
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
