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

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, nombre, email, password_hash, rol, activo, creado_en`

func (r *UserRepo) scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// Create persiste un usuario nuevo. ErrEmailAlreadyExists si el email ya está tomado.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	err := r.q.QueryRow(ctx, `
		INSERT INTO usuarios (nombre, email, password_hash, rol, activo)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, creado_en`,
		u.Name, u.Email, u.PasswordHash, u.Role, u.Active,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	u, err := r.scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// FindByEmail busca un usuario activo por email. nil si no existe.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	u, err := r.scanUser(r.q.QueryRow(ctx,
		`SELECT `+userColumns+` FROM usuarios WHERE email = $1`, email))
	if err != nil {
		return nil, fmt.Errorf("find usuario por email: %w", err)
	}
	return u, nil
}

// Update actualiza los datos mutables del usuario.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE usuarios SET nombre = $2, email = $3, password_hash = $4, rol = $5, activo = $6
		WHERE id = $1`,
		u.ID, u.Name, u.Email, u.PasswordHash, u.Role, u.Active,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
