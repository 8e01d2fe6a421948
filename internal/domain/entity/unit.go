package entity

// Unit representa una unidad de medida (ej: "und", "kg").
type Unit struct {
	ID          int64
	Name        string
	Description string
}
