package entity

// Warehouse representa una bodega física. No puede eliminarse mientras existan
// movimientos que la referencien.
type Warehouse struct {
	ID       int64
	Name     string // único por tenant
	Location string
}
