package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL.
type LocationRepo struct {
	q Querier
}

func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

func (r *LocationRepo) Create(location *entity.Location) error {
	query := `
		INSERT INTO locations (id, name, address, kind, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.Address, location.Kind,
		location.Active, location.CreatedAt, location.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert location: %w", err)
	}
	return nil
}

func (r *LocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.getBy("id", id)
}

func (r *LocationRepo) GetByName(name string) (*entity.Location, error) {
	return r.getBy("name", name)
}

func (r *LocationRepo) getBy(column, value string) (*entity.Location, error) {
	query := fmt.Sprintf(`
		SELECT id, name, address, kind, active, created_at, updated_at
		FROM locations WHERE %s = $1`, column)
	var l entity.Location
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&l.ID, &l.Name, &l.Address, &l.Kind, &l.Active, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

func (r *LocationRepo) Update(location *entity.Location) error {
	query := `
		UPDATE locations SET name = $2, address = $3, kind = $4, active = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		location.ID, location.Name, location.Address, location.Kind, location.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *LocationRepo) List(limit, offset int) ([]*entity.Location, error) {
	query := `
		SELECT id, name, address, kind, active, created_at, updated_at
		FROM locations ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.Location
	for rows.Next() {
		var l entity.Location
		if err := rows.Scan(&l.ID, &l.Name, &l.Address, &l.Kind, &l.Active, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

func (r *LocationRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
