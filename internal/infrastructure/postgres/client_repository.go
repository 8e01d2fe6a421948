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

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo implementación de ClientRepository (usable con conexión o tx).
type ClientRepo struct {
	q Querier
}

// NewClientRepository construye el adaptador de clientes.
func NewClientRepository(q Querier) *ClientRepo {
	return &ClientRepo{q: q}
}

const clientSelect = `
	SELECT id, nombre, COALESCE(telefono, ''), COALESCE(email, ''), COALESCE(direccion, ''), tipo, creado_en
	FROM clientes`

func scanClient(row pgx.Row) (*entity.Client, error) {
	var c entity.Client
	err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Type, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create persiste un cliente nuevo.
func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO clientes (nombre, telefono, email, direccion, tipo)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, creado_en`,
		c.Name, c.Phone, c.Email, c.Address, c.Type,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert cliente: %w", err)
	}
	return nil
}

// GetByID obtiene un cliente por ID. nil si no existe.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*entity.Client, error) {
	c, err := scanClient(r.q.QueryRow(ctx, clientSelect+` WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get cliente: %w", err)
	}
	return c, nil
}

// Update actualiza los datos del cliente.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE clientes SET nombre = $2, telefono = $3, email = $4, direccion = $5, tipo = $6
		WHERE id = $1`,
		c.ID, c.Name, c.Phone, c.Email, c.Address, c.Type,
	)
	if err != nil {
		return fmt.Errorf("update cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un cliente. ErrConflict si movimientos lo referencian.
func (r *ClientRepo) Delete(ctx context.Context, id int64) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM clientes WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete cliente: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List devuelve una página de clientes, filtrando por nombre si search no es
// vacío, más el total.
func (r *ClientRepo) List(ctx context.Context, search string, page, limit int) ([]*entity.Client, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	where := ""
	args := []any{}
	if search != "" {
		where = ` WHERE nombre ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count clientes: %w", err)
	}

	query := fmt.Sprintf("%s%s ORDER BY nombre ASC LIMIT $%d OFFSET $%d",
		clientSelect, where, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list clientes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Client
	for rows.Next() {
		var c entity.Client
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Email, &c.Address, &c.Type, &c.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan cliente: %w", err)
		}
		list = append(list, &c)
	}
	return list, total, rows.Err()
}

// Count devuelve el total de clientes del tenant.
func (r *ClientRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM clientes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count clientes: %w", err)
	}
	return n, nil
}
