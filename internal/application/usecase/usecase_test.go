package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para los casos de uso de catálogo
// ──────────────────────────────────────────────────────────────────────────────

type memCategoryRepo struct {
	byID map[string]*entity.Category
}

func newMemCategoryRepo() *memCategoryRepo {
	return &memCategoryRepo{byID: map[string]*entity.Category{}}
}

func (r *memCategoryRepo) Create(c *entity.Category) error {
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) GetByID(id string) (*entity.Category, error) {
	c, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCategoryRepo) GetByName(name string) (*entity.Category, error) {
	for _, c := range r.byID {
		if c.Name == name {
			cp := *c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memCategoryRepo) Update(c *entity.Category) error {
	if _, ok := r.byID[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	r.byID[c.ID] = &cp
	return nil
}

func (r *memCategoryRepo) List(limit, offset int) ([]*entity.Category, error) {
	var list []*entity.Category
	for _, c := range r.byID {
		cp := *c
		list = append(list, &cp)
	}
	return list, nil
}

func (r *memCategoryRepo) Delete(id string) error {
	if _, ok := r.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

// stubProductRepo solo responde los chequeos referenciales; el resto no se usa
// en estos tests.
type stubProductRepo struct {
	byID           map[string]*entity.Product
	usedCategories map[string]bool
	usedSuppliers  map[string]bool
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{
		byID:           map[string]*entity.Product{},
		usedCategories: map[string]bool{},
		usedSuppliers:  map[string]bool{},
	}
}

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) Update(*entity.Product) error { return nil }
func (r *stubProductRepo) Delete(string) error          { return nil }
func (r *stubProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.byID[id], nil
}
func (r *stubProductRepo) ExistsByCategory(categoryID string) (bool, error) {
	return r.usedCategories[categoryID], nil
}
func (r *stubProductRepo) ExistsBySupplier(supplierID string) (bool, error) {
	return r.usedSuppliers[supplierID], nil
}

type memMovementTypeRepo struct {
	byID map[string]*entity.MovementType
}

func newMemMovementTypeRepo() *memMovementTypeRepo {
	return &memMovementTypeRepo{byID: map[string]*entity.MovementType{}}
}

func (r *memMovementTypeRepo) Create(t *entity.MovementType) error {
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func (r *memMovementTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	t, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memMovementTypeRepo) GetByCode(code string) (*entity.MovementType, error) {
	for _, t := range r.byID {
		if t.Code == code {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementTypeRepo) GetByName(name string) (*entity.MovementType, error) {
	for _, t := range r.byID {
		if t.Name == name {
			cp := *t
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memMovementTypeRepo) Update(t *entity.MovementType) error {
	if _, ok := r.byID[t.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *t
	r.byID[t.ID] = &cp
	return nil
}

func (r *memMovementTypeRepo) List(int, int) ([]*entity.MovementType, error) { return nil, nil }

func (r *memMovementTypeRepo) Delete(id string) error {
	delete(r.byID, id)
	return nil
}

// stubMovementRepo responde ExistsBy* con valores fijos.
type stubMovementRepo struct {
	usedTypes map[string]bool
}

func (r *stubMovementRepo) Create(*entity.Movement) error            { return nil }
func (r *stubMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (r *stubMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (r *stubMovementRepo) ExistsByProduct(string) (bool, error)  { return false, nil }
func (r *stubMovementRepo) ExistsByLocation(string) (bool, error) { return false, nil }
func (r *stubMovementRepo) ExistsByType(id string) (bool, error)  { return r.usedTypes[id], nil }

type memStockRepo struct {
	byKey map[string]*entity.Stock
}

func newMemStockRepo() *memStockRepo { return &memStockRepo{byKey: map[string]*entity.Stock{}} }

func key(productID, locationID string) string { return productID + "|" + locationID }

func (r *memStockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	s, ok := r.byKey[key(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}
func (r *memStockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	return r.Get(productID, locationID)
}
func (r *memStockRepo) Credit(productID, locationID string, quantity decimal.Decimal) error {
	k := key(productID, locationID)
	if s, ok := r.byKey[k]; ok {
		s.Quantity = s.Quantity.Add(quantity)
		return nil
	}
	r.byKey[k] = &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: quantity}
	return nil
}
func (r *memStockRepo) Upsert(s *entity.Stock) error {
	cp := *s
	r.byKey[key(s.ProductID, s.LocationID)] = &cp
	return nil
}
func (r *memStockRepo) Create(s *entity.Stock) error {
	k := key(s.ProductID, s.LocationID)
	if _, ok := r.byKey[k]; ok {
		return domain.ErrDuplicate
	}
	cp := *s
	r.byKey[k] = &cp
	return nil
}
func (r *memStockRepo) List(string, string, int, int) ([]*entity.Stock, error) { return nil, nil }
func (r *memStockRepo) SumByProduct(string) (decimal.Decimal, error)           { return decimal.Zero, nil }
func (r *memStockRepo) ExistsByProduct(string) (bool, error)                   { return false, nil }
func (r *memStockRepo) ExistsByLocation(string) (bool, error)                  { return false, nil }

type memLocationRepo struct {
	byID map[string]*entity.Location
}

func (r *memLocationRepo) Create(*entity.Location) error { return nil }
func (r *memLocationRepo) Update(*entity.Location) error { return nil }
func (r *memLocationRepo) Delete(string) error           { return nil }
func (r *memLocationRepo) List(int, int) ([]*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) GetByName(string) (*entity.Location, error) { return nil, nil }
func (r *memLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.byID[id], nil
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryCreate_NombreDuplicadoRechazado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), newStubProductRepo())

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Renombrar al mismo nombre no debe contarse como colisión.
func TestCategoryUpdate_RenombrarAlMismoNombreNoColisiona(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), newStubProductRepo())

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería", Description: "vieja"})
	require.NoError(t, err)

	out, err := uc.Update(created.ID, dto.UpdateCategoryRequest{
		Name:        strPtr("Ferretería"),
		Description: strPtr("nueva"),
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, "Ferretería", out.Name)
	assert.Equal(t, "nueva", out.Description)
}

func TestCategoryUpdate_RenombrarANombreAjenoRechazado(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), newStubProductRepo())

	_, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	second, err := uc.Create(dto.CreateCategoryRequest{Name: "Eléctricos"})
	require.NoError(t, err)

	_, err = uc.Update(second.ID, dto.UpdateCategoryRequest{Name: strPtr("Ferretería")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestCategoryUpdate_NoExistenteDevuelveNil(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), newStubProductRepo())
	out, err := uc.Update("no-existe", dto.UpdateCategoryRequest{Name: strPtr("X")})
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestCategoryDelete_ConProductosAsociadosRechazado(t *testing.T) {
	productRepo := newStubProductRepo()
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), productRepo)

	created, err := uc.Create(dto.CreateCategoryRequest{Name: "Ferretería"})
	require.NoError(t, err)
	productRepo.usedCategories[created.ID] = true

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrConflict)
}

func TestCategoryDelete_NoExistente(t *testing.T) {
	uc := usecase.NewCategoryUseCase(newMemCategoryRepo(), newStubProductRepo())
	assert.ErrorIs(t, uc.Delete("no-existe"), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// MovementTypeUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementTypeCreate_EfectoInvalidoRechazado(t *testing.T) {
	uc := usecase.NewMovementTypeUseCase(newMemMovementTypeRepo(), &stubMovementRepo{})

	_, err := uc.Create(dto.CreateMovementTypeRequest{
		Code: "TRF", Name: "Transferencia", StockEffect: "transferencia",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidMovementType)
}

func TestMovementTypeCreate_CodigoYNombreUnicos(t *testing.T) {
	uc := usecase.NewMovementTypeUseCase(newMemMovementTypeRepo(), &stubMovementRepo{})

	_, err := uc.Create(dto.CreateMovementTypeRequest{
		Code: "COMPRA", Name: "Compra", StockEffect: entity.StockEffectEntrada,
	})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateMovementTypeRequest{
		Code: "COMPRA", Name: "Otra compra", StockEffect: entity.StockEffectEntrada,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "código repetido")

	_, err = uc.Create(dto.CreateMovementTypeRequest{
		Code: "COMPRA2", Name: "Compra", StockEffect: entity.StockEffectEntrada,
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate, "nombre repetido")
}

func TestMovementTypeDelete_ConMovimientosRechazado(t *testing.T) {
	movRepo := &stubMovementRepo{usedTypes: map[string]bool{}}
	uc := usecase.NewMovementTypeUseCase(newMemMovementTypeRepo(), movRepo)

	created, err := uc.Create(dto.CreateMovementTypeRequest{
		Code: "VENTA", Name: "Venta", StockEffect: entity.StockEffectSalida,
	})
	require.NoError(t, err)
	movRepo.usedTypes[created.ID] = true

	assert.ErrorIs(t, uc.Delete(created.ID), domain.ErrConflict)
}

// ──────────────────────────────────────────────────────────────────────────────
// StockUseCase
// ──────────────────────────────────────────────────────────────────────────────

func stockFixtures() (*usecase.StockUseCase, *memStockRepo) {
	productRepo := newStubProductRepo()
	productRepo.byID["prod-1"] = &entity.Product{ID: "prod-1", Code: "P-001", Name: "Tornillo"}
	locationRepo := &memLocationRepo{byID: map[string]*entity.Location{
		"loc-1": {ID: "loc-1", Name: "Almacén Central"},
	}}
	stockRepo := newMemStockRepo()
	return usecase.NewStockUseCase(stockRepo, productRepo, locationRepo), stockRepo
}

func TestStockCreate_CantidadNegativaRechazada(t *testing.T) {
	uc, _ := stockFixtures()
	_, err := uc.Create(dto.CreateStockRequest{
		ProductID: "prod-1", LocationID: "loc-1", Quantity: decimal.NewFromInt(-1),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestStockCreate_ProductoInexistente(t *testing.T) {
	uc, _ := stockFixtures()
	_, err := uc.Create(dto.CreateStockRequest{
		ProductID: "no-existe", LocationID: "loc-1", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestStockCreate_UbicacionInexistente(t *testing.T) {
	uc, _ := stockFixtures()
	_, err := uc.Create(dto.CreateStockRequest{
		ProductID: "prod-1", LocationID: "no-existe", Quantity: decimal.NewFromInt(1),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// El par (producto, ubicación) es único también por la vía de alta directa.
func TestStockCreate_ParDuplicadoRechazado(t *testing.T) {
	uc, _ := stockFixtures()

	_, err := uc.Create(dto.CreateStockRequest{
		ProductID: "prod-1", LocationID: "loc-1", Quantity: decimal.NewFromInt(5),
	})
	require.NoError(t, err)

	_, err = uc.Create(dto.CreateStockRequest{
		ProductID: "prod-1", LocationID: "loc-1", Quantity: decimal.NewFromInt(9),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// Consultar un par sin registro responde cantidad cero, no error.
func TestStockGet_SinRegistroRespondeCero(t *testing.T) {
	uc, _ := stockFixtures()
	out, err := uc.Get("prod-1", "loc-1")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, out.Quantity.IsZero())
	assert.Equal(t, "prod-1", out.ProductID)
	assert.Equal(t, "loc-1", out.LocationID)
}
