package entity

import "time"

// Location representa una ubicación física donde se almacena inventario (almacén, tienda, etc.).
type Location struct {
	ID        string
	Name      string // única (clave natural)
	Address   string
	Kind      string // almacén, tienda, etc.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
