package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	return r.getBy("id", id)
}

func (r *UserRepo) GetByUsername(username string) (*entity.User, error) {
	return r.getBy("username", username)
}

func (r *UserRepo) getBy(column, value string) (*entity.User, error) {
	query := fmt.Sprintf(`
		SELECT id, username, password_hash, role, created_at
		FROM users WHERE %s = $1`, column)
	var u entity.User
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) List() ([]*entity.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users ORDER BY username`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		var u entity.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

var _ repository.RevokedTokenRepository = (*RevokedTokenRepo)(nil)

// RevokedTokenRepo guarda los tokens revocados por logout. El middleware consulta
// esta lista en cada petición autenticada.
type RevokedTokenRepo struct {
	q Querier
}

func NewRevokedTokenRepository(q Querier) *RevokedTokenRepo {
	return &RevokedTokenRepo{q: q}
}

// Add registra un token revocado. Revocar dos veces el mismo token no es error.
func (r *RevokedTokenRepo) Add(token string) error {
	query := `
		INSERT INTO revoked_tokens (id, token, revoked_at)
		VALUES ($1, $2, now())
		ON CONFLICT (token) DO NOTHING`
	_, err := r.q.Exec(context.Background(), query, uuid.New().String(), token)
	if err != nil {
		return fmt.Errorf("insert revoked token: %w", err)
	}
	return nil
}

// IsRevoked indica si el token fue revocado.
func (r *RevokedTokenRepo) IsRevoked(token string) (bool, error) {
	var revoked bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = $1)`, token,
	).Scan(&revoked)
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return revoked, nil
}
