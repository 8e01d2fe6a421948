package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// stockExpr es la definición canónica de stock: suma con signo de los
// movimientos. Toda consulta de stock usa esta expresión; no hay contador
// materializado en ningún sitio.
const stockExpr = "SUM(CASE WHEN m.tipo = 'entrada' THEN m.cantidad ELSE -m.cantidad END)"

// LedgerRepo superficie de lectura sobre movimientos (usable con conexión o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar conexión o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// StockOf devuelve el stock vivo del par (producto, bodega); 0 sin movimientos.
func (r *LedgerRepo) StockOf(ctx context.Context, productID, warehouseID int64) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, 0)
		FROM movimientos m
		WHERE m.producto_id = $1 AND m.bodega_id = $2`, stockExpr)
	var stock decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID).Scan(&stock); err != nil {
		return decimal.Zero, fmt.Errorf("stock de producto %d en bodega %d: %w", productID, warehouseID, err)
	}
	return stock, nil
}

// StockOfExcluding calcula el stock sin la contribución de un movimiento
// concreto. Lo usa la corrección administrativa al cambiar la cantidad de una
// salida existente.
func (r *LedgerRepo) StockOfExcluding(ctx context.Context, productID, warehouseID, movementID int64) (decimal.Decimal, error) {
	query := fmt.Sprintf(`
		SELECT COALESCE(%s, 0)
		FROM movimientos m
		WHERE m.producto_id = $1 AND m.bodega_id = $2 AND m.id <> $3`, stockExpr)
	var stock decimal.Decimal
	if err := r.q.QueryRow(ctx, query, productID, warehouseID, movementID).Scan(&stock); err != nil {
		return decimal.Zero, fmt.Errorf("stock excluyendo movimiento %d: %w", movementID, err)
	}
	return stock, nil
}

// KardexRows devuelve los movimientos del producto en todas las bodegas en
// orden fecha ascendente (empates por id ascendente, para un saldo
// reproducible). El saldo acumulado se calcula en la capa de aplicación.
func (r *LedgerRepo) KardexRows(ctx context.Context, productID int64) ([]*entity.MovementDetail, error) {
	sql, args, err := detailSelect().
		Where(sq.Eq{"m.producto_id": productID}).
		OrderBy("m.fecha ASC", "m.id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build kardex: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("kardex de producto %d: %w", productID, err)
	}
	list := make([]*entity.MovementDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// inventoryRow fila del GROUP BY (producto, bodega).
type inventoryRow struct {
	ProductID          int64           `db:"producto_id"`
	ProductCode        string          `db:"producto_codigo"`
	ProductDescription string          `db:"producto_descripcion"`
	UnitName           *string         `db:"unidad_nombre"`
	WarehouseID        int64           `db:"bodega_id"`
	WarehouseName      string          `db:"bodega_nombre"`
	WarehouseLocation  *string         `db:"bodega_ubicacion"`
	Stock              decimal.Decimal `db:"stock"`
	TotalMovements     int64           `db:"total_movimientos"`
	LastMovement       time.Time       `db:"ultimo_movimiento"`
	TotalEntradas      decimal.Decimal `db:"total_entradas"`
	TotalSalidas       decimal.Decimal `db:"total_salidas"`
}

// GeneralInventory agrupa movimientos por (producto, bodega) con stock,
// totales y conteos, aplicando el filtro como cláusulas WHERE/HAVING.
// Por defecto excluye líneas con stock <= 0.
func (r *LedgerRepo) GeneralInventory(ctx context.Context, f repository.InventoryFilter) ([]*entity.InventoryRow, error) {
	b := psql.Select(
		"p.id AS producto_id",
		"p.codigo AS producto_codigo",
		"p.descripcion AS producto_descripcion",
		"um.nombre AS unidad_nombre",
		"b.id AS bodega_id",
		"b.nombre AS bodega_nombre",
		"b.ubicacion AS bodega_ubicacion",
		stockExpr+" AS stock",
		"COUNT(m.id) AS total_movimientos",
		"MAX(m.fecha) AS ultimo_movimiento",
		"SUM(CASE WHEN m.tipo = 'entrada' THEN m.cantidad ELSE 0 END) AS total_entradas",
		"SUM(CASE WHEN m.tipo = 'salida' THEN m.cantidad ELSE 0 END) AS total_salidas",
	).
		From("movimientos m").
		Join("productos p ON p.id = m.producto_id").
		LeftJoin("unidades_medida um ON um.id = p.unidad_medida_id").
		Join("bodegas b ON b.id = m.bodega_id").
		GroupBy("p.id", "p.codigo", "p.descripcion", "um.nombre", "b.id", "b.nombre", "b.ubicacion")

	if f.WarehouseID != 0 {
		b = b.Where(sq.Eq{"b.id": f.WarehouseID})
	}
	if f.ProductID != 0 {
		b = b.Where(sq.Eq{"p.id": f.ProductID})
	}
	if !f.IncludeZero {
		b = b.Having(stockExpr + " > 0")
	}
	if f.MinStock != nil && !f.LowStockOnly {
		b = b.Having(stockExpr+" >= ?", *f.MinStock)
	}
	if f.LowStockOnly {
		b = b.Having(fmt.Sprintf("%s <= %d", stockExpr, entity.LowStockThreshold))
	}

	sql, args, err := b.OrderBy("p.codigo ASC", "b.nombre ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build inventario general: %w", err)
	}
	var rows []inventoryRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("inventario general: %w", err)
	}
	list := make([]*entity.InventoryRow, 0, len(rows))
	for _, row := range rows {
		item := &entity.InventoryRow{
			ProductID:          row.ProductID,
			ProductCode:        row.ProductCode,
			ProductDescription: row.ProductDescription,
			WarehouseID:        row.WarehouseID,
			WarehouseName:      row.WarehouseName,
			Stock:              row.Stock,
			TotalMovements:     row.TotalMovements,
			LastMovement:       row.LastMovement,
			TotalEntradas:      row.TotalEntradas,
			TotalSalidas:       row.TotalSalidas,
		}
		if row.UnitName != nil {
			item.UnitName = *row.UnitName
		}
		if row.WarehouseLocation != nil {
			item.WarehouseLocation = *row.WarehouseLocation
		}
		list = append(list, item)
	}
	return list, nil
}

// CountByProduct cuenta los movimientos que referencian el producto.
func (r *LedgerRepo) CountByProduct(ctx context.Context, productID int64) (int64, error) {
	return r.countWhere(ctx, "producto_id", productID)
}

// CountByWarehouse cuenta los movimientos que referencian la bodega.
func (r *LedgerRepo) CountByWarehouse(ctx context.Context, warehouseID int64) (int64, error) {
	return r.countWhere(ctx, "bodega_id", warehouseID)
}

// CountByClient cuenta los movimientos que referencian el cliente.
func (r *LedgerRepo) CountByClient(ctx context.Context, clientID int64) (int64, error) {
	return r.countWhere(ctx, "cliente_id", clientID)
}

func (r *LedgerRepo) countWhere(ctx context.Context, column string, id int64) (int64, error) {
	var n int64
	query := fmt.Sprintf("SELECT COUNT(*) FROM movimientos WHERE %s = $1", column)
	if err := r.q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movimientos por %s: %w", column, err)
	}
	return n, nil
}

// CountBetween cuenta movimientos con fecha en [from, to).
func (r *LedgerRepo) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM movimientos WHERE fecha >= $1 AND fecha < $2`, from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movimientos por fecha: %w", err)
	}
	return n, nil
}

// Recent devuelve los últimos movimientos con referencias resueltas.
func (r *LedgerRepo) Recent(ctx context.Context, limit int) ([]*entity.MovementDetail, error) {
	if limit < 1 {
		limit = 10
	}
	sql, args, err := detailSelect().
		OrderBy("m.fecha DESC", "m.id DESC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build recientes: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("movimientos recientes: %w", err)
	}
	list := make([]*entity.MovementDetail, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
