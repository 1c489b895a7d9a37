package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest entrada para registrar un movimiento de inventario.
// Origen/destino dependen del efecto del tipo: entrada requiere destino, salida requiere origen.
type RegisterMovementRequest struct {
	Quantity              decimal.Decimal `json:"quantity" validate:"required"`
	MovementTypeID        string          `json:"movement_type_id" validate:"required,uuid"`
	ProductID             string          `json:"product_id" validate:"required,uuid"`
	OriginLocationID      *string         `json:"origin_location_id" validate:"omitempty,uuid"`
	DestinationLocationID *string         `json:"destination_location_id" validate:"omitempty,uuid"`
	Reference             string          `json:"reference" validate:"omitempty,max=50"`
	Notes                 string          `json:"notes"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID                    string          `json:"id"`
	Quantity              decimal.Decimal `json:"quantity"`
	MovementTypeID        string          `json:"movement_type_id"`
	ProductID             string          `json:"product_id"`
	OriginLocationID      *string         `json:"origin_location_id,omitempty"`
	DestinationLocationID *string         `json:"destination_location_id,omitempty"`
	Reference             string          `json:"reference"`
	Notes                 string          `json:"notes"`
	Date                  time.Time       `json:"date"`
	CreatedBy             string          `json:"created_by"`
}

// MovementDetailResponse movimiento con sus referencias resueltas.
type MovementDetailResponse struct {
	MovementResponse
	MovementType *MovementTypeResponse `json:"movement_type,omitempty"`
	Product      *ProductResponse      `json:"product,omitempty"`
	Origin       *LocationResponse     `json:"origin,omitempty"`
	Destination  *LocationResponse     `json:"destination,omitempty"`
}

// MovementListRequest filtros opcionales de búsqueda de movimientos.
type MovementListRequest struct {
	ProductID      string     `query:"product_id"`
	MovementTypeID string     `query:"movement_type_id"`
	From           *time.Time `query:"from"`
	To             *time.Time `query:"to"`
	PageRequest
}
