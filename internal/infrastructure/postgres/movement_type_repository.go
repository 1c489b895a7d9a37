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

var _ repository.MovementTypeRepository = (*MovementTypeRepo)(nil)

// MovementTypeRepo implementación de MovementTypeRepository sobre PostgreSQL.
type MovementTypeRepo struct {
	q Querier
}

func NewMovementTypeRepository(q Querier) *MovementTypeRepo {
	return &MovementTypeRepo{q: q}
}

func (r *MovementTypeRepo) Create(movementType *entity.MovementType) error {
	query := `
		INSERT INTO movement_types (id, code, name, description, stock_effect, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		movementType.ID, movementType.Code, movementType.Name,
		movementType.Description, movementType.StockEffect,
		movementType.CreatedAt, movementType.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert movement type: %w", err)
	}
	return nil
}

func (r *MovementTypeRepo) GetByID(id string) (*entity.MovementType, error) {
	return r.getBy("id", id)
}

func (r *MovementTypeRepo) GetByCode(code string) (*entity.MovementType, error) {
	return r.getBy("code", code)
}

func (r *MovementTypeRepo) GetByName(name string) (*entity.MovementType, error) {
	return r.getBy("name", name)
}

func (r *MovementTypeRepo) getBy(column, value string) (*entity.MovementType, error) {
	query := fmt.Sprintf(`
		SELECT id, code, name, description, stock_effect, created_at, updated_at
		FROM movement_types WHERE %s = $1`, column)
	var t entity.MovementType
	err := r.q.QueryRow(context.Background(), query, value).Scan(
		&t.ID, &t.Code, &t.Name, &t.Description, &t.StockEffect, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement type: %w", err)
	}
	return &t, nil
}

func (r *MovementTypeRepo) Update(movementType *entity.MovementType) error {
	query := `
		UPDATE movement_types SET code = $2, name = $3, description = $4, stock_effect = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		movementType.ID, movementType.Code, movementType.Name,
		movementType.Description, movementType.StockEffect,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update movement type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *MovementTypeRepo) List(limit, offset int) ([]*entity.MovementType, error) {
	query := `
		SELECT id, code, name, description, stock_effect, created_at, updated_at
		FROM movement_types ORDER BY code LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movement types: %w", err)
	}
	defer rows.Close()
	var list []*entity.MovementType
	for rows.Next() {
		var t entity.MovementType
		if err := rows.Scan(&t.ID, &t.Code, &t.Name, &t.Description, &t.StockEffect, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement type: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

func (r *MovementTypeRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM movement_types WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete movement type: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
