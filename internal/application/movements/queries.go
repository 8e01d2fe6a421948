package movements

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/application/ports"
	"github.com/jhoicas/inventario-multibodega/internal/domain"
	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// KardexReport es la historia completa de un producto con saldo acumulado.
type KardexReport struct {
	Product        *entity.Product
	Entries        []*entity.KardexEntry
	StockActual    decimal.Decimal
	TotalMovements int
}

// WarehouseSummary totales de una bodega dentro del inventario general.
type WarehouseSummary struct {
	WarehouseID   int64
	WarehouseName string
	Products      int
	TotalStock    decimal.Decimal
}

// ProductSummary totales de un producto sumando todas sus bodegas.
type ProductSummary struct {
	ProductID   int64
	ProductCode string
	Description string
	Warehouses  int
	TotalStock  decimal.Decimal
}

// InventoryStats estadísticas globales del inventario filtrado.
type InventoryStats struct {
	Lines         int
	Products      int
	Warehouses    int
	TotalStock    decimal.Decimal
	LowStockLines int
}

// InventoryReport inventario general: líneas (producto, bodega) más los
// resúmenes calculados en memoria a partir de ellas.
type InventoryReport struct {
	Rows        []*entity.InventoryRow
	Stats       InventoryStats
	ByWarehouse []*WarehouseSummary
	ByProduct   []*ProductSummary
}

// FindAll lista movimientos filtrados y paginados.
func (e *Engine) FindAll(ctx context.Context, tenant string, f repository.MovementFilter, page, limit int) ([]*entity.MovementDetail, int64, error) {
	var (
		list  []*entity.MovementDetail
		total int64
	)
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, total, err = r.Movements.List(ctx, f, page, limit)
		return err
	})
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

// GetByID obtiene un movimiento con sus referencias resueltas.
func (e *Engine) GetByID(ctx context.Context, tenant string, id int64) (*entity.MovementDetail, error) {
	var mov *entity.MovementDetail
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		m, err := r.Movements.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if m == nil {
			return &domain.NotFoundError{Resource: "movimiento", ID: id, Tenant: tenant}
		}
		mov = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return mov, nil
}

// FindByProductoCodigo lista los movimientos de un producto por su código.
func (e *Engine) FindByProductoCodigo(ctx context.Context, tenant, code string) ([]*entity.MovementDetail, error) {
	var list []*entity.MovementDetail
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		list, err = r.Movements.ListByProductCode(ctx, code)
		return err
	})
	if err != nil {
		return nil, err
	}
	return list, nil
}

// Stock devuelve el stock vivo de un (producto, bodega).
func (e *Engine) Stock(ctx context.Context, tenant string, productID, warehouseID int64) (decimal.Decimal, error) {
	var stock decimal.Decimal
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		stock, err = r.Ledger.StockOf(ctx, productID, warehouseID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return stock, nil
}

// Kardex devuelve la historia del producto en todas las bodegas con saldo
// acumulado. El stock actual es el saldo final.
func (e *Engine) Kardex(ctx context.Context, tenant string, productID int64) (*KardexReport, error) {
	var report *KardexReport
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		product, err := r.Products.GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return &domain.NotFoundError{Resource: "producto", ID: productID, Tenant: tenant}
		}
		rows, err := r.Ledger.KardexRows(ctx, productID)
		if err != nil {
			return err
		}
		entries := ComputeKardex(rows)
		stock := decimal.Zero
		if len(entries) > 0 {
			stock = entries[len(entries)-1].Balance
		}
		report = &KardexReport{
			Product:        product,
			Entries:        entries,
			StockActual:    stock,
			TotalMovements: len(entries),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return report, nil
}

// ComputeKardex anota cada movimiento con el saldo acumulado hasta ese punto.
// Las filas deben venir en orden cronológico ascendente.
func ComputeKardex(rows []*entity.MovementDetail) []*entity.KardexEntry {
	entries := make([]*entity.KardexEntry, 0, len(rows))
	balance := decimal.Zero
	for _, row := range rows {
		balance = balance.Add(row.SignedQuantity())
		entries = append(entries, &entity.KardexEntry{MovementDetail: *row, Balance: balance})
	}
	return entries
}

// InventarioGeneral calcula el inventario agrupado por (producto, bodega) y
// los resúmenes por bodega, por producto y globales.
func (e *Engine) InventarioGeneral(ctx context.Context, tenant string, f repository.InventoryFilter) (*InventoryReport, error) {
	var rows []*entity.InventoryRow
	err := e.sessions.WithSession(ctx, tenant, func(r ports.Repos) error {
		var err error
		rows, err = r.Ledger.GeneralInventory(ctx, f)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &InventoryReport{
		Rows:        rows,
		Stats:       SummarizeInventory(rows),
		ByWarehouse: SummarizeByWarehouse(rows),
		ByProduct:   SummarizeByProduct(rows),
	}, nil
}

// SummarizeInventory estadísticas globales sobre las líneas de inventario.
func SummarizeInventory(rows []*entity.InventoryRow) InventoryStats {
	products := map[int64]struct{}{}
	warehouses := map[int64]struct{}{}
	stats := InventoryStats{Lines: len(rows), TotalStock: decimal.Zero}
	low := decimal.NewFromInt(entity.LowStockThreshold)
	for _, row := range rows {
		products[row.ProductID] = struct{}{}
		warehouses[row.WarehouseID] = struct{}{}
		stats.TotalStock = stats.TotalStock.Add(row.Stock)
		if row.Stock.LessThanOrEqual(low) {
			stats.LowStockLines++
		}
	}
	stats.Products = len(products)
	stats.Warehouses = len(warehouses)
	return stats
}

// SummarizeByWarehouse agrupa las líneas por bodega, orden por nombre.
func SummarizeByWarehouse(rows []*entity.InventoryRow) []*WarehouseSummary {
	byID := map[int64]*WarehouseSummary{}
	for _, row := range rows {
		s, ok := byID[row.WarehouseID]
		if !ok {
			s = &WarehouseSummary{
				WarehouseID:   row.WarehouseID,
				WarehouseName: row.WarehouseName,
				TotalStock:    decimal.Zero,
			}
			byID[row.WarehouseID] = s
		}
		s.Products++
		s.TotalStock = s.TotalStock.Add(row.Stock)
	}
	out := make([]*WarehouseSummary, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].WarehouseName < out[j].WarehouseName })
	return out
}

// SummarizeByProduct agrupa las líneas por producto, orden por código.
func SummarizeByProduct(rows []*entity.InventoryRow) []*ProductSummary {
	byID := map[int64]*ProductSummary{}
	for _, row := range rows {
		s, ok := byID[row.ProductID]
		if !ok {
			s = &ProductSummary{
				ProductID:   row.ProductID,
				ProductCode: row.ProductCode,
				Description: row.ProductDescription,
				TotalStock:  decimal.Zero,
			}
			byID[row.ProductID] = s
		}
		s.Warehouses++
		s.TotalStock = s.TotalStock.Add(row.Stock)
	}
	out := make([]*ProductSummary, 0, len(byID))
	for _, s := range byID {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out
}
