package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa el stock actual de un producto en una ubicación.
// El par (ProductID, LocationID) es único; la cantidad nunca es negativa.
// Solo el motor de movimientos muta la cantidad.
type Stock struct {
	ID         string
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}
