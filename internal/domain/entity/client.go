package entity

import "time"

// Tipos de cliente/proveedor. Valores del enum de la tabla clientes.
// Una entrada exige tipo proveedor o ambos; una salida exige cliente o ambos.
const (
	ClientTypeProveedor = "proveedor"
	ClientTypeCliente   = "cliente"
	ClientTypeAmbos     = "ambos"
)

// Client representa una contraparte de movimientos (cliente, proveedor o ambos).
type Client struct {
	ID        int64
	Name      string
	Phone     string
	Email     string
	Address   string
	Type      string
	CreatedAt time.Time
}

// AllowsEntrada indica si el cliente puede actuar como proveedor.
func (c *Client) AllowsEntrada() bool {
	return c.Type == ClientTypeProveedor || c.Type == ClientTypeAmbos
}

// AllowsSalida indica si el cliente puede actuar como comprador.
func (c *Client) AllowsSalida() bool {
	return c.Type == ClientTypeCliente || c.Type == ClientTypeAmbos
}
