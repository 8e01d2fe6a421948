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

var _ repository.UnitRepository = (*UnitRepo)(nil)

// UnitRepo implementación de UnitRepository (usable con conexión o tx).
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador de unidades de medida.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

// Create persiste una unidad nueva.
func (r *UnitRepo) Create(ctx context.Context, u *entity.Unit) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO unidades_medida (nombre, descripcion) VALUES ($1, $2) RETURNING id`,
		u.Name, u.Description,
	).Scan(&u.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unidad: %w", err)
	}
	return nil
}

// GetByID obtiene una unidad por ID. nil si no existe.
func (r *UnitRepo) GetByID(ctx context.Context, id int64) (*entity.Unit, error) {
	var u entity.Unit
	var desc *string
	err := r.q.QueryRow(ctx,
		`SELECT id, nombre, descripcion FROM unidades_medida WHERE id = $1`, id,
	).Scan(&u.ID, &u.Name, &desc)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unidad: %w", err)
	}
	if desc != nil {
		u.Description = *desc
	}
	return &u, nil
}

// Update actualiza nombre y descripción.
func (r *UnitRepo) Update(ctx context.Context, u *entity.Unit) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE unidades_medida SET nombre = $2, descripcion = $3 WHERE id = $1`,
		u.ID, u.Name, u.Description,
	)
	if err != nil {
		return fmt.Errorf("update unidad: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una unidad. ErrConflict si productos la referencian.
func (r *UnitRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM unidades_medida WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete unidad: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve todas las unidades.
func (r *UnitRepo) List(ctx context.Context) ([]*entity.Unit, error) {
	rows, err := r.q.Query(ctx, `SELECT id, nombre, descripcion FROM unidades_medida ORDER BY nombre ASC`)
	if err != nil {
		return nil, fmt.Errorf("list unidades: %w", err)
	}
	defer rows.Close()
	var list []*entity.Unit
	for rows.Next() {
		var u entity.Unit
		var desc *string
		if err := rows.Scan(&u.ID, &u.Name, &desc); err != nil {
			return nil, fmt.Errorf("scan unidad: %w", err)
		}
		if desc != nil {
			u.Description = *desc
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// CountProducts cuenta los productos que usan la unidad (guarda de borrado).
func (r *UnitRepo) CountProducts(ctx context.Context, unitID int64) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM productos WHERE unidad_medida_id = $1`, unitID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count productos por unidad: %w", err)
	}
	return n, nil
}
