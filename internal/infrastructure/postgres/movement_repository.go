package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
// Los movimientos son write-once: no hay UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, quantity, movement_type_id, product_id, origin_location_id, destination_location_id, reference, notes, date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Quantity, movement.MovementTypeID, movement.ProductID,
		movement.OriginLocationID, movement.DestinationLocationID,
		movement.Reference, movement.Notes, movement.Date, movement.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `
		SELECT id, quantity, movement_type_id, product_id, origin_location_id, destination_location_id, reference, notes, date, created_by
		FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Quantity, &m.MovementTypeID, &m.ProductID,
		&m.OriginLocationID, &m.DestinationLocationID,
		&m.Reference, &m.Notes, &m.Date, &m.CreatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List busca movimientos componiendo los filtros opcionales (producto, tipo, rango
// de fechas) en una sola consulta parametrizada, ordenados por fecha descendente.
func (r *MovementRepo) List(filter repository.MovementFilter) ([]*entity.Movement, error) {
	query := `
		SELECT id, quantity, movement_type_id, product_id, origin_location_id, destination_location_id, reference, notes, date, created_by
		FROM movements WHERE 1=1`
	args := []any{}
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.MovementTypeID != "" {
		query += fmt.Sprintf(" AND movement_type_id = $%d", pos)
		args = append(args, filter.MovementTypeID)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND date >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND date <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY date DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Quantity, &m.MovementTypeID, &m.ProductID,
			&m.OriginLocationID, &m.DestinationLocationID,
			&m.Reference, &m.Notes, &m.Date, &m.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ExistsByProduct indica si hay movimientos del producto.
func (r *MovementRepo) ExistsByProduct(productID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM movements WHERE product_id = $1)`, productID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movement exists by product: %w", err)
	}
	return exists, nil
}

// ExistsByLocation indica si hay movimientos que referencien la ubicación
// como origen o como destino.
func (r *MovementRepo) ExistsByLocation(locationID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM movements WHERE origin_location_id = $1 OR destination_location_id = $1)`,
		locationID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movement exists by location: %w", err)
	}
	return exists, nil
}

// ExistsByType indica si hay movimientos del tipo dado.
func (r *MovementRepo) ExistsByType(movementTypeID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM movements WHERE movement_type_id = $1)`, movementTypeID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("movement exists by type: %w", err)
	}
	return exists, nil
}
