package entity

import "time"

// Valores válidos para MovementType.StockEffect. Cualquier otro valor almacenado
// es un fallo de integridad de datos y se rechaza al registrar movimientos.
const (
	StockEffectEntrada = "entrada" // suma stock en la ubicación de destino
	StockEffectSalida  = "salida"  // resta stock en la ubicación de origen
	StockEffectNinguno = "ninguno" // no afecta el stock
)

// MovementType clasifica los movimientos de inventario según su efecto sobre el stock.
type MovementType struct {
	ID          string
	Code        string // único (clave natural)
	Name        string // único (clave natural)
	Description string
	StockEffect string // entrada, salida, ninguno
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidStockEffect verifica que el efecto almacenado sea uno de los tres valores admitidos.
func (t *MovementType) ValidStockEffect() bool {
	switch t.StockEffect {
	case StockEffectEntrada, StockEffectSalida, StockEffectNinguno:
		return true
	}
	return false
}
