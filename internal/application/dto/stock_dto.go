package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateStockRequest entrada para crear un registro de stock directo (fuera del motor de movimientos).
type CreateStockRequest struct {
	ProductID  string          `json:"product_id" validate:"required,uuid"`
	LocationID string          `json:"location_id" validate:"required,uuid"`
	Quantity   decimal.Decimal `json:"quantity" validate:"min=0"`
}

// StockResponse salida de un registro de stock.
type StockResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	LocationID string          `json:"location_id"`
	Quantity   decimal.Decimal `json:"quantity"`
	UpdatedAt  time.Time       `json:"updated_at"`
}
