package dto

import "time"

// SignupRequest entrada para registro (password en texto, se hashea en el use case).
type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT tipo bearer.
type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"` // siempre "bearer"
	User        UserResponse `json:"user"`
}

// ProfileResponse salida del perfil del usuario autenticado.
type ProfileResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}
