package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Movement representa un movimiento de inventario: registro histórico inmutable,
// origen de toda mutación del stock. Origen/destino dependen del efecto del tipo.
type Movement struct {
	ID                    string
	Quantity              decimal.Decimal // siempre positiva
	MovementTypeID        string
	ProductID             string
	OriginLocationID      *string // requerida en salidas
	DestinationLocationID *string // requerida en entradas
	Reference             string  // número de documento relacionado
	Notes                 string
	Date                  time.Time // asignada por el servidor al crear
	CreatedBy             string    // UserID de quien registró el movimiento
}
