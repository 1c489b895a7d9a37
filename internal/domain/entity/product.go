package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo. El stock se maneja por ubicación
// en la tabla stock; aquí solo viven atributos comerciales y el umbral de reorden.
type Product struct {
	ID            string
	Code          string // código único (clave natural)
	Name          string
	Description   string
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	UnitMeasure   string // unidad, kg, litro, etc.
	MinStock      decimal.Decimal
	Active        bool
	CategoryID    string  // obligatoria
	SupplierID    *string // opcional
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
