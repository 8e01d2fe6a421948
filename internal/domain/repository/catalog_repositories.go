package repository

import (
	"context"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// ProductRepository puerto de persistencia de productos.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto (SELECT FOR UPDATE) para
	// serializar comprobaciones de stock concurrentes sobre ese producto.
	GetForUpdate(ctx context.Context, id int64) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string, page, limit int) ([]*entity.Product, int64, error)
	Count(ctx context.Context) (int64, error)
}

// WarehouseRepository puerto de persistencia de bodegas.
type WarehouseRepository interface {
	Create(ctx context.Context, w *entity.Warehouse) error
	GetByID(ctx context.Context, id int64) (*entity.Warehouse, error)
	Update(ctx context.Context, w *entity.Warehouse) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Warehouse, error)
	Count(ctx context.Context) (int64, error)
}

// ClientRepository puerto de persistencia de clientes/proveedores.
type ClientRepository interface {
	Create(ctx context.Context, c *entity.Client) error
	GetByID(ctx context.Context, id int64) (*entity.Client, error)
	Update(ctx context.Context, c *entity.Client) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, search string, page, limit int) ([]*entity.Client, int64, error)
	Count(ctx context.Context) (int64, error)
}

// UnitRepository puerto de persistencia de unidades de medida.
type UnitRepository interface {
	Create(ctx context.Context, u *entity.Unit) error
	GetByID(ctx context.Context, id int64) (*entity.Unit, error)
	Update(ctx context.Context, u *entity.Unit) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*entity.Unit, error)
	CountProducts(ctx context.Context, unitID int64) (int64, error)
}

// UserRepository puerto de persistencia de usuarios (colaborador de identidad).
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, u *entity.User) error
}
