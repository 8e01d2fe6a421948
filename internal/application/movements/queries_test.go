package movements

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

func TestComputeKardex(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	mk := func(id int64, tipo string, n int64, offset time.Duration) *entity.MovementDetail {
		return &entity.MovementDetail{Movement: entity.Movement{
			ID: id, Type: tipo, Quantity: qty(n), Date: base.Add(offset),
		}}
	}
	rows := []*entity.MovementDetail{
		mk(1, entity.MovementTypeEntrada, 100, 0),
		mk(2, entity.MovementTypeSalida, 30, time.Hour),
		mk(3, entity.MovementTypeSalida, 70, 2*time.Hour),
		mk(4, entity.MovementTypeEntrada, 5, 3*time.Hour),
	}

	entries := ComputeKardex(rows)
	require.Len(t, entries, 4)
	want := []int64{100, 70, 0, 5}
	for i, w := range want {
		assert.True(t, entries[i].Balance.Equal(qty(w)), "saldo en la posición %d", i)
	}
}

func TestComputeKardex_Vacio(t *testing.T) {
	assert.Empty(t, ComputeKardex(nil))
}

func TestSummarizeInventory(t *testing.T) {
	rows := []*entity.InventoryRow{
		{ProductID: 1, WarehouseID: 1, Stock: qty(100)},
		{ProductID: 1, WarehouseID: 2, Stock: qty(5)},
		{ProductID: 2, WarehouseID: 1, Stock: qty(40)},
	}

	stats := SummarizeInventory(rows)
	assert.Equal(t, 3, stats.Lines)
	assert.Equal(t, 2, stats.Products)
	assert.Equal(t, 2, stats.Warehouses)
	assert.True(t, stats.TotalStock.Equal(qty(145)))
	assert.Equal(t, 1, stats.LowStockLines)
}

func TestSummarizeByWarehouse(t *testing.T) {
	rows := []*entity.InventoryRow{
		{ProductID: 1, WarehouseID: 1, WarehouseName: "Central", Stock: qty(100)},
		{ProductID: 2, WarehouseID: 1, WarehouseName: "Central", Stock: qty(40)},
		{ProductID: 1, WarehouseID: 2, WarehouseName: "Norte", Stock: qty(5)},
	}

	byWh := SummarizeByWarehouse(rows)
	require.Len(t, byWh, 2)
	assert.Equal(t, "Central", byWh[0].WarehouseName)
	assert.Equal(t, 2, byWh[0].Products)
	assert.True(t, byWh[0].TotalStock.Equal(qty(140)))
	assert.Equal(t, "Norte", byWh[1].WarehouseName)
	assert.True(t, byWh[1].TotalStock.Equal(qty(5)))
}

func TestSummarizeByProduct(t *testing.T) {
	rows := []*entity.InventoryRow{
		{ProductID: 2, ProductCode: "B-01", WarehouseID: 1, Stock: qty(40)},
		{ProductID: 1, ProductCode: "A-01", WarehouseID: 1, Stock: qty(100)},
		{ProductID: 1, ProductCode: "A-01", WarehouseID: 2, Stock: qty(5)},
	}

	byProd := SummarizeByProduct(rows)
	require.Len(t, byProd, 2)
	assert.Equal(t, "A-01", byProd[0].ProductCode)
	assert.Equal(t, 2, byProd[0].Warehouses)
	assert.True(t, byProd[0].TotalStock.Equal(qty(105)))
	assert.Equal(t, "B-01", byProd[1].ProductCode)
}

func TestInventarioGeneral(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateEntrada(ctx, tenantPrincipal, entrada(1, 100))
	require.NoError(t, err)
	_, err = e.CreateEntrada(ctx, tenantPrincipal, entrada(2, 8))
	require.NoError(t, err)
	_, err = e.CreateSalida(ctx, tenantPrincipal, salida(2, 8))
	require.NoError(t, err)

	// Por defecto las líneas en cero quedan fuera.
	report, err := e.InventarioGeneral(ctx, tenantPrincipal, repository.InventoryFilter{})
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, "MAD-3M", report.Rows[0].ProductCode)
	assert.True(t, report.Stats.TotalStock.Equal(qty(100)))

	// IncludeZero las trae de vuelta.
	report, err = e.InventarioGeneral(ctx, tenantPrincipal, repository.InventoryFilter{IncludeZero: true})
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
}

func TestFindAll_Filtrado(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateEntrada(ctx, tenantPrincipal, entrada(1, 100))
	require.NoError(t, err)
	_, err = e.CreateSalida(ctx, tenantPrincipal, salida(1, 30))
	require.NoError(t, err)

	list, total, err := e.FindAll(ctx, tenantPrincipal, repository.MovementFilter{Type: entity.MovementTypeSalida}, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)
	assert.True(t, list[0].Quantity.Equal(decimal.NewFromInt(30)))
}

func TestFindByProductoCodigo(t *testing.T) {
	e, _ := newTestEngine(t)
	ctx := context.Background()

	_, err := e.CreateEntrada(ctx, tenantPrincipal, entrada(1, 10))
	require.NoError(t, err)
	_, err = e.CreateEntrada(ctx, tenantPrincipal, entrada(2, 10))
	require.NoError(t, err)

	list, err := e.FindByProductoCodigo(ctx, tenantPrincipal, "MAD-3M")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ProductID)
}
