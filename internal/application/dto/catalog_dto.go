package dto

import "time"

// CreateCategoryRequest entrada para crear una categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

// UpdateCategoryRequest campos opcionales a actualizar.
type UpdateCategoryRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Contact string `json:"contact"`
	Phone   string `json:"phone"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

// UpdateSupplierRequest campos opcionales a actualizar.
type UpdateSupplierRequest struct {
	Name    *string `json:"name"`
	Contact *string `json:"contact"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLocationRequest entrada para crear una ubicación.
type CreateLocationRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Address string `json:"address"`
	Kind    string `json:"kind"` // almacén, tienda, etc.
	Active  *bool  `json:"active"`
}

// UpdateLocationRequest campos opcionales a actualizar.
type UpdateLocationRequest struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Kind    *string `json:"kind"`
	Active  *bool   `json:"active"`
}

// LocationResponse salida de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Kind      string    `json:"kind"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateMovementTypeRequest entrada para crear un tipo de movimiento.
type CreateMovementTypeRequest struct {
	Code        string `json:"code" validate:"required,min=1,max=20"`
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
	StockEffect string `json:"stock_effect" validate:"required,oneof=entrada salida ninguno"`
}

// UpdateMovementTypeRequest campos opcionales a actualizar.
type UpdateMovementTypeRequest struct {
	Code        *string `json:"code"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
	StockEffect *string `json:"stock_effect"`
}

// MovementTypeResponse salida de un tipo de movimiento.
type MovementTypeResponse struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	StockEffect string    `json:"stock_effect"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
