package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Name          string          `json:"name" validate:"required,min=1,max=100"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UnitMeasure   string          `json:"unit_measure"` // unidad, kg, litro, etc.
	MinStock      decimal.Decimal `json:"min_stock"`
	Active        *bool           `json:"active"`
	CategoryID    string          `json:"category_id" validate:"required,uuid"`
	SupplierID    *string         `json:"supplier_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest campos opcionales a actualizar.
type UpdateProductRequest struct {
	Code          *string          `json:"code"`
	Name          *string          `json:"name"`
	Description   *string          `json:"description"`
	PurchasePrice *decimal.Decimal `json:"purchase_price"`
	SalePrice     *decimal.Decimal `json:"sale_price"`
	UnitMeasure   *string          `json:"unit_measure"`
	MinStock      *decimal.Decimal `json:"min_stock"`
	Active        *bool            `json:"active"`
	CategoryID    *string          `json:"category_id"`
	SupplierID    *string          `json:"supplier_id"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	UnitMeasure   string          `json:"unit_measure"`
	MinStock      decimal.Decimal `json:"min_stock"`
	Active        bool            `json:"active"`
	CategoryID    string          `json:"category_id"`
	SupplierID    *string         `json:"supplier_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductDetailResponse producto con el stock total sumado entre todas las ubicaciones.
type ProductDetailResponse struct {
	ProductResponse
	TotalStock decimal.Decimal `json:"total_stock"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
