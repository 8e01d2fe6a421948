package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento. Los valores coinciden con el enum de la tabla movimientos.
const (
	MovementTypeEntrada = "entrada"
	MovementTypeSalida  = "salida"
)

// Movement es el registro del libro de movimientos: un evento inmutable de
// entrada o salida de stock. El stock de un (producto, bodega) es siempre la
// suma con signo de sus movimientos; no existe columna de stock materializada.
type Movement struct {
	ID          int64
	BatchID     string // agrupa los movimientos de una operación compuesta
	Type        string
	Quantity    decimal.Decimal // siempre positiva; el signo lo da Type
	Price       decimal.Decimal
	Date        time.Time
	ProductID   int64
	WarehouseID int64
	UserID      int64
	ClientID    *int64 // opcional
	Note        string
}

// SignedQuantity devuelve la contribución del movimiento al stock:
// +cantidad para entrada, -cantidad para salida.
func (m *Movement) SignedQuantity() decimal.Decimal {
	if m.Type == MovementTypeSalida {
		return m.Quantity.Neg()
	}
	return m.Quantity
}

// MovementDetail es un movimiento con sus referencias resueltas, tal como lo
// devuelven las consultas de listado y kardex.
type MovementDetail struct {
	Movement
	ProductCode        string
	ProductDescription string
	UnitName           string
	WarehouseName      string
	UserName           string
	ClientName         string
	ClientType         string
}
