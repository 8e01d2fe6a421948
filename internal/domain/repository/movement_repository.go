package repository

import (
	"context"
	"time"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// MovementFilter son los criterios opcionales de listado de movimientos.
// Un campo en cero/nil no aplica filtro (criteria object explícito, nada de
// mapas dinámicos).
type MovementFilter struct {
	Type        string
	ProductID   int64
	ProductCode string // ILIKE parcial
	WarehouseID int64
	ClientID    int64
	UserID      int64
	DateFrom    *time.Time
	DateTo      *time.Time
}

// MovementRepository es el puerto de escritura/lectura de la tabla movimientos.
type MovementRepository interface {
	Create(ctx context.Context, m *entity.Movement) error
	GetByID(ctx context.Context, id int64) (*entity.MovementDetail, error)
	Update(ctx context.Context, m *entity.Movement) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, f MovementFilter, page, limit int) ([]*entity.MovementDetail, int64, error)
	ListByProductCode(ctx context.Context, code string) ([]*entity.MovementDetail, error)
}
