package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockRepository define el puerto para consultar/actualizar stock por producto+ubicación.
// Upsert y GetForUpdate se usan dentro de transacciones del motor de movimientos.
type StockRepository interface {
	// Get devuelve nil si no existe registro para el par (no es error).
	Get(productID, locationID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila para update (SELECT FOR UPDATE). Si no existe
	// registro devuelve un Stock con cantidad cero.
	GetForUpdate(productID, locationID string) (*entity.Stock, error)
	// Credit suma quantity al par de forma atómica, creando la fila si no existe.
	// Las entradas del motor pasan por aquí: FOR UPDATE no bloquea filas
	// inexistentes, así que el incremento debe resolverse en el propio upsert.
	Credit(productID, locationID string, quantity decimal.Decimal) error
	Upsert(stock *entity.Stock) error
	// Create es la vía directa (fuera del motor); rechaza pares duplicados con ErrDuplicate.
	Create(stock *entity.Stock) error
	List(productID, locationID string, limit, offset int) ([]*entity.Stock, error)
	SumByProduct(productID string) (decimal.Decimal, error)
	ExistsByProduct(productID string) (bool, error)
	ExistsByLocation(locationID string) (bool, error)
}
