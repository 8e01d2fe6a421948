package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

var _ repository.WarehouseRepository = (*WarehouseRepo)(nil)

// WarehouseRepo implementación de WarehouseRepository (usable con conexión o tx).
type WarehouseRepo struct {
	q Querier
}

// NewWarehouseRepository construye el adaptador de bodegas.
func NewWarehouseRepository(q Querier) *WarehouseRepo {
	return &WarehouseRepo{q: q}
}

// Create persiste una bodega nueva. ErrDuplicate si el nombre ya existe.
func (r *WarehouseRepo) Create(ctx context.Context, w *entity.Warehouse) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO bodegas (nombre, ubicacion) VALUES ($1, $2) RETURNING id`,
		w.Name, w.Location,
	).Scan(&w.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert bodega: %w", err)
	}
	return nil
}

// GetByID obtiene una bodega por ID. nil si no existe.
func (r *WarehouseRepo) GetByID(ctx context.Context, id int64) (*entity.Warehouse, error) {
	var w entity.Warehouse
	var location *string
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, ubicacion FROM bodegas WHERE id = $1`, id,
	).Scan(&w.ID, &w.Name, &location)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get bodega: %w", err)
	}
	if location != nil {
		w.Location = *location
	}
	return &w, nil
}

// Update actualiza nombre y ubicación.
func (r *WarehouseRepo) Update(ctx context.Context, w *entity.Warehouse) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE bodegas SET nombre = $2, ubicacion = $3 WHERE id = $1`,
		w.ID, w.Name, w.Location,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update bodega: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una bodega. ErrConflict si movimientos la referencian.
func (r *WarehouseRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM bodegas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete bodega: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las bodegas del tenant ordenadas por id.
func (r *WarehouseRepo) List(ctx context.Context) ([]*entity.Warehouse, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, ubicacion FROM bodegas ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bodegas: %w", err)
	}
	defer rows.Close()
	var list []*entity.Warehouse
	for rows.Next() {
		var w entity.Warehouse
		var location *string
		if err := rows.Scan(&w.ID, &w.Name, &location); err != nil {
			return nil, fmt.Errorf("scan bodega: %w", err)
		}
		if location != nil {
			w.Location = *location
		}
		list = append(list, &w)
	}
	return list, rows.Err()
}

// Count devuelve el total de bodegas del tenant.
func (r *WarehouseRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM bodegas`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count bodegas: %w", err)
	}
	return n, nil
}
