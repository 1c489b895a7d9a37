package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
type ProductRepo struct {
	q Querier
}

func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, code, name, description, purchase_price, sale_price, unit_measure, min_stock, active, category_id, supplier_id, created_at, updated_at`

func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.UnitMeasure, product.MinStock,
		product.Active, product.CategoryID, product.SupplierID,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.getBy("id", id)
}

func (r *ProductRepo) GetByCode(code string) (*entity.Product, error) {
	return r.getBy("code", code)
}

func (r *ProductRepo) getBy(column, value string) (*entity.Product, error) {
	query := fmt.Sprintf(`SELECT %s FROM products WHERE %s = $1`, productColumns, column)
	var p entity.Product
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&p.ID, &p.Code, &p.Name, &p.Description,
		&p.PurchasePrice, &p.SalePrice, &p.UnitMeasure, &p.MinStock,
		&p.Active, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET code = $2, name = $3, description = $4, purchase_price = $5,
			sale_price = $6, unit_measure = $7, min_stock = $8, active = $9,
			category_id = $10, supplier_id = $11, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		product.ID, product.Code, product.Name, product.Description,
		product.PurchasePrice, product.SalePrice, product.UnitMeasure, product.MinStock,
		product.Active, product.CategoryID, product.SupplierID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(
			&p.ID, &p.Code, &p.Name, &p.Description,
			&p.PurchasePrice, &p.SalePrice, &p.UnitMeasure, &p.MinStock,
			&p.Active, &p.CategoryID, &p.SupplierID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ExistsByCategory indica si algún producto usa la categoría.
func (r *ProductRepo) ExistsByCategory(categoryID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE category_id = $1)`, categoryID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists by category: %w", err)
	}
	return exists, nil
}

// ExistsBySupplier indica si algún producto usa el proveedor.
func (r *ProductRepo) ExistsBySupplier(supplierID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM products WHERE supplier_id = $1)`, supplierID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("product exists by supplier: %w", err)
	}
	return exists, nil
}
