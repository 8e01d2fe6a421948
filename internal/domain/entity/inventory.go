package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// LowStockThreshold es el umbral fijo de "stock bajo" en unidades.
const LowStockThreshold = 10

// InventoryRow es una línea del inventario general: el stock vivo de un
// (producto, bodega) calculado agregando sus movimientos.
type InventoryRow struct {
	ProductID          int64
	ProductCode        string
	ProductDescription string
	UnitName           string
	WarehouseID        int64
	WarehouseName      string
	WarehouseLocation  string
	Stock              decimal.Decimal
	TotalMovements     int64
	LastMovement       time.Time
	TotalEntradas      decimal.Decimal
	TotalSalidas       decimal.Decimal
}

// KardexEntry es un movimiento de un producto anotado con el saldo acumulado
// hasta ese punto de la historia.
type KardexEntry struct {
	MovementDetail
	Balance decimal.Decimal
}
