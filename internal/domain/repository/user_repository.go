package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]*entity.User, error)
}

// RevokedTokenRepository define el puerto para la lista de revocación de tokens (logout).
type RevokedTokenRepository interface {
	Add(token string) error
	IsRevoked(token string) (bool, error)
}
