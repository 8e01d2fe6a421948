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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con conexión o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productSelect = `
	SELECT p.id, p.codigo, p.descripcion, p.unidad_medida_id, COALESCE(um.nombre, ''), p.creado_en
	FROM productos p
	LEFT JOIN unidades_medida um ON um.id = p.unidad_medida_id`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(&p.ID, &p.Code, &p.Description, &p.UnitID, &p.UnitName, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo. ErrDuplicate si el código ya existe.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO productos (codigo, descripcion, unidad_medida_id)
		VALUES ($1, $2, $3) RETURNING id, creado_en`,
		p.Code, p.Description, p.UnitID,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert producto: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get producto: %w", err)
	}
	return p, nil
}

// GetByCode obtiene un producto por código exacto. nil si no existe.
func (r *ProductRepo) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.codigo = $1`, code))
	if err != nil {
		return nil, fmt.Errorf("get producto por codigo: %w", err)
	}
	return p, nil
}

// GetForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Dentro de una transacción serializa los chequeos de stock concurrentes
// sobre el mismo producto.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id int64) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, `
		SELECT id, codigo, descripcion, unidad_medida_id, creado_en
		FROM productos WHERE id = $1
		FOR UPDATE`, id,
	).Scan(&p.ID, &p.Code, &p.Description, &p.UnitID, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get producto for update: %w", err)
	}
	return &p, nil
}

// Update actualiza código, descripción y unidad de un producto.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE productos SET codigo = $2, descripcion = $3, unidad_medida_id = $4
		WHERE id = $1`,
		p.ID, p.Code, p.Description, p.UnitID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un producto. ErrConflict si movimientos lo referencian
// (guarda referencial, no cascada).
func (r *ProductRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete producto: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve una página de productos, filtrando por código o descripción
// si search no es vacío, más el total.
func (r *ProductRepo) List(ctx context.Context, search string, page, limit int) ([]*entity.Product, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE p.codigo ILIKE $1 OR p.descripcion ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM productos p` + where
	if err := r.q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count productos: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY p.codigo ASC LIMIT $%d OFFSET $%d",
		productSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list productos: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Code, &p.Description, &p.UnitID, &p.UnitName, &p.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan producto: %w", err)
		}
		list = append(list, &p)
	}
	return list, total, rows.Err()
}

// Count devuelve el total de productos del tenant.
func (r *ProductRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM productos`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count productos: %w", err)
	}
	return n, nil
}
