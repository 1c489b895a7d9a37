package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación. Devuelve nil si no
// existe registro para el par (no es error).
func (r *StockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE). Si no existe
// registro devuelve un Stock con cantidad cero, listo para Upsert.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT id, product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// Credit suma la cantidad al par de forma atómica, creando la fila si no existe.
// El incremento se hace en SQL (stock.quantity + EXCLUDED.quantity): dos primeras
// entradas concurrentes sobre un par sin fila no se bloquean entre sí con FOR UPDATE,
// y un upsert de cantidad absoluta perdería uno de los dos créditos.
func (r *StockRepo) Credit(productID, locationID string, quantity decimal.Decimal) error {
	query := `
		INSERT INTO stock (id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), productID, locationID, quantity)
	if err != nil {
		return fmt.Errorf("credit stock: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza la cantidad en stock (por producto y ubicación).
func (r *StockRepo) Upsert(stock *entity.Stock) error {
	if stock.ID == "" {
		stock.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock (id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, stock.ID, stock.ProductID, stock.LocationID, stock.Quantity)
	if err != nil {
		return fmt.Errorf("upsert stock: %w", err)
	}
	return nil
}

// Create inserta un registro nuevo por la vía directa; el constraint único sobre
// (product_id, location_id) convierte duplicados en ErrDuplicate.
func (r *StockRepo) Create(stock *entity.Stock) error {
	query := `
		INSERT INTO stock (id, product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		stock.ID, stock.ProductID, stock.LocationID, stock.Quantity, stock.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock: %w", err)
	}
	return nil
}

// List consulta el ledger con filtros opcionales por producto y ubicación
// en una sola consulta parametrizada.
func (r *StockRepo) List(productID, locationID string, limit, offset int) ([]*entity.Stock, error) {
	query := `
		SELECT id, product_id, location_id, quantity, updated_at
		FROM stock WHERE 1=1`
	args := []any{}
	pos := 1
	if productID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, productID)
		pos++
	}
	if locationID != "" {
		query += fmt.Sprintf(" AND location_id = $%d", pos)
		args = append(args, locationID)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY updated_at DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stock
	for rows.Next() {
		var s entity.Stock
		if err := rows.Scan(&s.ID, &s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumByProduct suma el stock de un producto entre todas las ubicaciones.
func (r *StockRepo) SumByProduct(productID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(quantity), 0) FROM stock WHERE product_id = $1`,
		productID,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum stock by product: %w", err)
	}
	return total, nil
}

// ExistsByProduct indica si hay registros de stock para el producto.
func (r *StockRepo) ExistsByProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("stock exists by product: %w", err)
	}
	return exists, nil
}

// ExistsByLocation indica si hay registros de stock en la ubicación.
func (r *StockRepo) ExistsByLocation(locationID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM stock WHERE location_id = $1)`, locationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("stock exists by location: %w", err)
	}
	return exists, nil
}
