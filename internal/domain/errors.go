package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrUsernameAlreadyExists = errors.New("el nombre de usuario ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrConflict              = errors.New("conflicto con registros dependientes")
	ErrProductNotFound       = errors.New("producto no encontrado")
	ErrMovementTypeNotFound  = errors.New("tipo de movimiento no encontrado")
	ErrOriginNotFound        = errors.New("ubicación de origen no encontrada")
	ErrDestinationNotFound   = errors.New("ubicación de destino no encontrada")
	ErrInvalidQuantity       = errors.New("la cantidad debe ser mayor que cero")
	ErrMissingOrigin         = errors.New("para movimientos de salida se requiere una ubicación de origen")
	ErrMissingDestination    = errors.New("para movimientos de entrada se requiere una ubicación de destino")
	ErrInvalidMovementType   = errors.New("el tipo de movimiento debe afectar al stock como 'entrada', 'salida' o 'ninguno'")
	ErrInsufficientStock     = errors.New("stock insuficiente")
)

// InsufficientStockError informa la cantidad disponible al momento del fallo
// (0 si no existe registro de stock para el par producto/ubicación).
type InsufficientStockError struct {
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente en la ubicación de origen. Disponible: %s", e.Available.String())
}

// Is permite que errors.Is(err, ErrInsufficientStock) funcione con este tipo.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
