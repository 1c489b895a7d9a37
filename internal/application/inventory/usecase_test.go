package inventory_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	productID  = "00000000-0000-0000-0000-00000000000a"
	entradaID  = "00000000-0000-0000-0000-00000000000b"
	salidaID   = "00000000-0000-0000-0000-00000000000c"
	ningunoID  = "00000000-0000-0000-0000-00000000000d"
	corruptoID = "00000000-0000-0000-0000-00000000000e"
	almacenID  = "00000000-0000-0000-0000-0000000000a1"
	tiendaID   = "00000000-0000-0000-0000-0000000000a2"
	userID     = "00000000-0000-0000-0000-0000000000f1"
)

// memStore estado compartido de los fakes. El TxRunner de test serializa las
// transacciones con un mutex y restaura un snapshot en caso de error, igual que
// haría un Rollback real.
type memStore struct {
	mu        sync.Mutex
	stock     map[string]*entity.Stock // key: productID + "|" + locationID
	movements []*entity.Movement

	products      map[string]*entity.Product
	movementTypes map[string]*entity.MovementType
	locations     map[string]*entity.Location
}

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

func newMemStore() *memStore {
	return &memStore{
		stock: map[string]*entity.Stock{},
		products: map[string]*entity.Product{
			productID: {ID: productID, Code: "P-001", Name: "Tornillo", CategoryID: "cat-1", Active: true},
		},
		movementTypes: map[string]*entity.MovementType{
			entradaID:  {ID: entradaID, Code: "COMPRA", Name: "Compra", StockEffect: entity.StockEffectEntrada},
			salidaID:   {ID: salidaID, Code: "VENTA", Name: "Venta", StockEffect: entity.StockEffectSalida},
			ningunoID:  {ID: ningunoID, Code: "NOTA", Name: "Nota", StockEffect: entity.StockEffectNinguno},
			corruptoID: {ID: corruptoID, Code: "RARO", Name: "Raro", StockEffect: "transferencia"},
		},
		locations: map[string]*entity.Location{
			almacenID: {ID: almacenID, Name: "Almacén Central", Active: true},
			tiendaID:  {ID: tiendaID, Name: "Tienda Norte", Active: true},
		},
	}
}

func (s *memStore) setStock(productID, locationID string, qty int64) {
	s.stock[stockKey(productID, locationID)] = &entity.Stock{
		ID: "st-" + locationID, ProductID: productID, LocationID: locationID,
		Quantity: decimal.NewFromInt(qty),
	}
}

func (s *memStore) quantity(productID, locationID string) decimal.Decimal {
	if st, ok := s.stock[stockKey(productID, locationID)]; ok {
		return st.Quantity
	}
	return decimal.Zero
}

type fakeProductRepo struct{ s *memStore }

func (f *fakeProductRepo) Create(*entity.Product) error  { return nil }
func (f *fakeProductRepo) Update(*entity.Product) error  { return nil }
func (f *fakeProductRepo) Delete(string) error           { return nil }
func (f *fakeProductRepo) List(int, int) ([]*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (f *fakeProductRepo) ExistsByCategory(string) (bool, error) { return false, nil }
func (f *fakeProductRepo) ExistsBySupplier(string) (bool, error) { return false, nil }
func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	return f.s.products[id], nil
}

type fakeMovementTypeRepo struct{ s *memStore }

func (f *fakeMovementTypeRepo) Create(*entity.MovementType) error { return nil }
func (f *fakeMovementTypeRepo) Update(*entity.MovementType) error { return nil }
func (f *fakeMovementTypeRepo) Delete(string) error               { return nil }
func (f *fakeMovementTypeRepo) List(int, int) ([]*entity.MovementType, error) { return nil, nil }
func (f *fakeMovementTypeRepo) GetByCode(string) (*entity.MovementType, error) { return nil, nil }
func (f *fakeMovementTypeRepo) GetByName(string) (*entity.MovementType, error) { return nil, nil }
func (f *fakeMovementTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	return f.s.movementTypes[id], nil
}

type fakeLocationRepo struct{ s *memStore }

func (f *fakeLocationRepo) Create(*entity.Location) error { return nil }
func (f *fakeLocationRepo) Update(*entity.Location) error { return nil }
func (f *fakeLocationRepo) Delete(string) error           { return nil }
func (f *fakeLocationRepo) List(int, int) ([]*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) GetByName(string) (*entity.Location, error) { return nil, nil }
func (f *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return f.s.locations[id], nil
}

// fakeStockRepo con lock=true toma el mutex del store (camino de validación,
// fuera de transacción); con lock=false asume que el TxRunner ya lo tiene.
type fakeStockRepo struct {
	s    *memStore
	lock bool
}

func (f *fakeStockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	if f.lock {
		f.s.mu.Lock()
		defer f.s.mu.Unlock()
	}
	st, ok := f.s.stock[stockKey(productID, locationID)]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	if f.lock {
		f.s.mu.Lock()
		defer f.s.mu.Unlock()
	}
	st, ok := f.s.stock[stockKey(productID, locationID)]
	if !ok {
		return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeStockRepo) Credit(productID, locationID string, quantity decimal.Decimal) error {
	if f.lock {
		f.s.mu.Lock()
		defer f.s.mu.Unlock()
	}
	key := stockKey(productID, locationID)
	st, ok := f.s.stock[key]
	if !ok {
		f.s.stock[key] = &entity.Stock{
			ID: "st-" + locationID, ProductID: productID, LocationID: locationID,
			Quantity: quantity,
		}
		return nil
	}
	st.Quantity = st.Quantity.Add(quantity)
	return nil
}

func (f *fakeStockRepo) Upsert(stock *entity.Stock) error {
	if f.lock {
		f.s.mu.Lock()
		defer f.s.mu.Unlock()
	}
	cp := *stock
	f.s.stock[stockKey(stock.ProductID, stock.LocationID)] = &cp
	return nil
}

func (f *fakeStockRepo) Create(stock *entity.Stock) error {
	if f.lock {
		f.s.mu.Lock()
		defer f.s.mu.Unlock()
	}
	key := stockKey(stock.ProductID, stock.LocationID)
	if _, ok := f.s.stock[key]; ok {
		return domain.ErrDuplicate
	}
	cp := *stock
	f.s.stock[key] = &cp
	return nil
}

func (f *fakeStockRepo) List(string, string, int, int) ([]*entity.Stock, error) { return nil, nil }
func (f *fakeStockRepo) SumByProduct(string) (decimal.Decimal, error)           { return decimal.Zero, nil }
func (f *fakeStockRepo) ExistsByProduct(string) (bool, error)                   { return false, nil }
func (f *fakeStockRepo) ExistsByLocation(string) (bool, error)                  { return false, nil }

type fakeMovementRepo struct{ s *memStore }

func (f *fakeMovementRepo) Create(m *entity.Movement) error {
	cp := *m
	f.s.movements = append(f.s.movements, &cp)
	return nil
}
func (f *fakeMovementRepo) GetByID(string) (*entity.Movement, error) { return nil, nil }
func (f *fakeMovementRepo) List(repository.MovementFilter) ([]*entity.Movement, error) {
	return nil, nil
}
func (f *fakeMovementRepo) ExistsByProduct(string) (bool, error)  { return false, nil }
func (f *fakeMovementRepo) ExistsByLocation(string) (bool, error) { return false, nil }
func (f *fakeMovementRepo) ExistsByType(string) (bool, error)     { return false, nil }

// fakeTxRunner serializa transacciones con el mutex del store y deshace los
// cambios si fn falla, emulando Commit/Rollback.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	movRepo repository.MovementRepository,
	stockRepo repository.StockRepository,
) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := make(map[string]*entity.Stock, len(r.s.stock))
	for k, v := range r.s.stock {
		cp := *v
		snapshot[k] = &cp
	}
	movCount := len(r.s.movements)

	if err := fn(&fakeMovementRepo{s: r.s}, &fakeStockRepo{s: r.s}); err != nil { // mutex ya tomado
		r.s.stock = snapshot
		r.s.movements = r.s.movements[:movCount]
		return err
	}
	return nil
}

func newUseCase(s *memStore) *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(
		&fakeTxRunner{s: s},
		&fakeProductRepo{s: s},
		&fakeMovementTypeRepo{s: s},
		&fakeLocationRepo{s: s},
		&fakeStockRepo{s: s, lock: true},
	)
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func ptr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Efectos sobre el ledger
// ──────────────────────────────────────────────────────────────────────────────

// Primera entrada sobre un par sin registro: crea la fila con la cantidad del movimiento.
func TestRegisterMovement_EntradaCreaRegistroDeStock(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	out, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:              qty(10),
		MovementTypeID:        entradaID,
		ProductID:             productID,
		DestinationLocationID: ptr(almacenID),
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	assert.True(t, s.quantity(productID, almacenID).Equal(qty(10)),
		"la primera entrada debe dejar el stock exactamente en la cantidad del movimiento")
	assert.Len(t, s.movements, 1, "el movimiento debe quedar registrado")
	assert.Equal(t, userID, s.movements[0].CreatedBy)
}

// Entrada sobre stock existente: X + Q.
func TestRegisterMovement_EntradaSumaSobreStockExistente(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 5)
	uc := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:              qty(7),
		MovementTypeID:        entradaID,
		ProductID:             productID,
		DestinationLocationID: ptr(almacenID),
	})
	require.NoError(t, err)
	assert.True(t, s.quantity(productID, almacenID).Equal(qty(12)))
}

// Salida con stock suficiente: X - Q.
func TestRegisterMovement_SalidaRestaDelOrigen(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 10)
	uc := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:         qty(4),
		MovementTypeID:   salidaID,
		ProductID:        productID,
		OriginLocationID: ptr(almacenID),
	})
	require.NoError(t, err)
	assert.True(t, s.quantity(productID, almacenID).Equal(qty(6)))
}

// Salida por la cantidad exacta disponible: queda en cero, no falla.
func TestRegisterMovement_SalidaExactaDejaCero(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 10)
	uc := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:         qty(10),
		MovementTypeID:   salidaID,
		ProductID:        productID,
		OriginLocationID: ptr(almacenID),
	})
	require.NoError(t, err)
	assert.True(t, s.quantity(productID, almacenID).IsZero())
}

// Salida mayor al disponible: rechazada, stock y movimientos intactos.
func TestRegisterMovement_SalidaInsuficienteRechazada(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 3)
	uc := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:         qty(5),
		MovementTypeID:   salidaID,
		ProductID:        productID,
		OriginLocationID: ptr(almacenID),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.True(t, insErr.Available.Equal(qty(3)), "el error debe reportar el disponible real")

	assert.True(t, s.quantity(productID, almacenID).Equal(qty(3)), "el stock no debe cambiar")
	assert.Empty(t, s.movements, "no debe registrarse el movimiento")
}

// Salida contra un par sin registro: mismo trato que disponible cero.
func TestRegisterMovement_SalidaSinRegistroReportaCero(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:         qty(1),
		MovementTypeID:   salidaID,
		ProductID:        productID,
		OriginLocationID: ptr(almacenID),
	})
	var insErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &insErr)
	assert.True(t, insErr.Available.IsZero())
}

// Tipo "ninguno": registra el movimiento sin tocar el ledger.
func TestRegisterMovement_NingunoNoTocaStock(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 8)
	uc := newUseCase(s)

	out, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		Quantity:       qty(99),
		MovementTypeID: ningunoID,
		ProductID:      productID,
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, s.quantity(productID, almacenID).Equal(qty(8)))
	assert.Len(t, s.movements, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación ordenada: el primer chequeo que falla gana
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_Validacion(t *testing.T) {
	cases := []struct {
		name    string
		in      dto.RegisterMovementRequest
		wantErr error
	}{
		{
			name: "cantidad cero",
			in: dto.RegisterMovementRequest{
				Quantity: qty(0), MovementTypeID: entradaID, ProductID: productID,
				DestinationLocationID: ptr(almacenID),
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "cantidad negativa gana aunque el producto tampoco exista",
			in: dto.RegisterMovementRequest{
				Quantity: qty(-1), MovementTypeID: entradaID, ProductID: "no-existe",
			},
			wantErr: domain.ErrInvalidQuantity,
		},
		{
			name: "producto inexistente",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: entradaID, ProductID: "no-existe",
			},
			wantErr: domain.ErrProductNotFound,
		},
		{
			name: "tipo inexistente",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: "no-existe", ProductID: productID,
			},
			wantErr: domain.ErrMovementTypeNotFound,
		},
		{
			name: "efecto de stock corrupto",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: corruptoID, ProductID: productID,
			},
			wantErr: domain.ErrInvalidMovementType,
		},
		{
			name: "entrada sin destino",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: entradaID, ProductID: productID,
			},
			wantErr: domain.ErrMissingDestination,
		},
		{
			name: "salida sin origen",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: salidaID, ProductID: productID,
			},
			wantErr: domain.ErrMissingOrigin,
		},
		{
			name: "origen inexistente",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: salidaID, ProductID: productID,
				OriginLocationID: ptr("no-existe"),
			},
			wantErr: domain.ErrOriginNotFound,
		},
		{
			name: "destino inexistente",
			in: dto.RegisterMovementRequest{
				Quantity: qty(1), MovementTypeID: entradaID, ProductID: productID,
				DestinationLocationID: ptr("no-existe"),
			},
			wantErr: domain.ErrDestinationNotFound,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newMemStore()
			uc := newUseCase(s)
			_, err := uc.RegisterMovement(context.Background(), userID, tc.in)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.Empty(t, s.movements, "un movimiento rechazado no debe persistirse")
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Concurrencia: la reverificación bajo lock evita stock negativo
// ──────────────────────────────────────────────────────────────────────────────

// Dos salidas de 7 contra 10 disponibles lanzadas en paralelo: exactamente una
// debe pasar y el stock final debe ser 3, nunca negativo.
func TestRegisterMovement_SalidasConcurrentesNoDejanNegativo(t *testing.T) {
	s := newMemStore()
	s.setStock(productID, almacenID, 10)
	uc := newUseCase(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
				Quantity:         qty(7),
				MovementTypeID:   salidaID,
				ProductID:        productID,
				OriginLocationID: ptr(almacenID),
			})
		}(i)
	}
	wg.Wait()

	var okCount, insufficientCount int
	for _, err := range errs {
		switch {
		case err == nil:
			okCount++
		case errors.Is(err, domain.ErrInsufficientStock):
			insufficientCount++
		default:
			t.Fatalf("error inesperado: %v", err)
		}
	}
	assert.Equal(t, 1, okCount, "exactamente una salida debe pasar")
	assert.Equal(t, 1, insufficientCount, "la otra debe fallar por stock insuficiente")
	assert.True(t, s.quantity(productID, almacenID).Equal(qty(3)),
		"el stock final debe reflejar una sola salida")
	assert.Len(t, s.movements, 1)
}

// Dos primeras entradas en paralelo sobre un par sin registro: ambos créditos
// deben acumularse (5+5=10). Un upsert de cantidad absoluta dejaría solo el
// último crédito, porque la fila aún no existe y no hay nada que bloquear.
func TestRegisterMovement_EntradasConcurrentesSobreParNuevo(t *testing.T) {
	s := newMemStore()
	uc := newUseCase(s)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
				Quantity:              qty(5),
				MovementTypeID:        entradaID,
				ProductID:             productID,
				DestinationLocationID: ptr(almacenID),
			})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	assert.True(t, s.quantity(productID, almacenID).Equal(qty(10)),
		"cada movimiento confirmado debe corresponder a su delta exacto sobre el stock")
	assert.Len(t, s.movements, 2)
}
