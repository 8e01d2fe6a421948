package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// InventoryFilter son los criterios del inventario general. MinStock aplica un
// corte inferior; LowStockOnly limita al umbral fijo de stock bajo; IncludeZero
// incluye líneas con stock cero o negativo (excluidas por defecto).
type InventoryFilter struct {
	WarehouseID  int64
	ProductID    int64
	MinStock     *decimal.Decimal
	LowStockOnly bool
	IncludeZero  bool
}

// LedgerRepository es la superficie de lectura sobre movimientos: todas las
// agregaciones se calculan en vivo desde las filas, nunca desde un contador.
type LedgerRepository interface {
	// StockOf devuelve la suma con signo de los movimientos del par
	// (producto, bodega); 0 si no hay movimientos.
	StockOf(ctx context.Context, productID, warehouseID int64) (decimal.Decimal, error)

	// StockOfExcluding calcula el stock ignorando la contribución de un
	// movimiento concreto (correcciones administrativas).
	StockOfExcluding(ctx context.Context, productID, warehouseID, movementID int64) (decimal.Decimal, error)

	// KardexRows devuelve los movimientos del producto en todas las bodegas,
	// orden fecha ascendente. El saldo acumulado lo calcula el caso de uso.
	KardexRows(ctx context.Context, productID int64) ([]*entity.MovementDetail, error)

	// GeneralInventory agrupa por (producto, bodega) aplicando el filtro.
	GeneralInventory(ctx context.Context, f InventoryFilter) ([]*entity.InventoryRow, error)

	// CountByProduct/CountByWarehouse/CountByClient cuentan movimientos que
	// referencian la entidad (guardas referenciales de borrado).
	CountByProduct(ctx context.Context, productID int64) (int64, error)
	CountByWarehouse(ctx context.Context, warehouseID int64) (int64, error)
	CountByClient(ctx context.Context, clientID int64) (int64, error)

	// CountBetween cuenta movimientos con fecha en [from, to).
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)

	// Recent devuelve los últimos movimientos (dashboard).
	Recent(ctx context.Context, limit int) ([]*entity.MovementDetail, error)
}
