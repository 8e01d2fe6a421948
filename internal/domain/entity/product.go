package entity

import "time"

// Product representa un producto del catálogo. Los movimientos lo referencian,
// nunca lo mutan.
type Product struct {
	ID          int64
	Code        string // único por tenant
	Description string
	UnitID      int64
	UnitName    string // resuelto en consultas con join
	CreatedAt   time.Time
}
