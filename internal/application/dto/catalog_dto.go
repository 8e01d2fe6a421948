package dto

import (
	"time"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// ProductRequest cuerpo para crear o actualizar un producto.
type ProductRequest struct {
	Codigo         string `json:"codigo"`
	Descripcion    string `json:"descripcion"`
	UnidadMedidaID int64  `json:"unidadMedidaId"`
}

// ProductResponse un producto del catálogo.
type ProductResponse struct {
	ID             int64     `json:"id"`
	Codigo         string    `json:"codigo"`
	Descripcion    string    `json:"descripcion"`
	UnidadMedidaID int64     `json:"unidadMedidaId"`
	Unidad         string    `json:"unidad,omitempty"`
	CreadoEn       time.Time `json:"creadoEn"`
}

// ToProductResponse convierte la entidad a respuesta.
func ToProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Codigo:         p.Code,
		Descripcion:    p.Description,
		UnidadMedidaID: p.UnitID,
		Unidad:         p.UnitName,
		CreadoEn:       p.CreatedAt,
	}
}

// ToProductResponses convierte una lista de productos.
func ToProductResponses(list []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	return out
}

// WarehouseRequest cuerpo para crear o actualizar una bodega.
type WarehouseRequest struct {
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion"`
}

// WarehouseResponse una bodega.
type WarehouseResponse struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Ubicacion string `json:"ubicacion,omitempty"`
}

// ToWarehouseResponse convierte la entidad a respuesta.
func ToWarehouseResponse(w *entity.Warehouse) WarehouseResponse {
	return WarehouseResponse{ID: w.ID, Nombre: w.Name, Ubicacion: w.Location}
}

// ToWarehouseResponses convierte una lista de bodegas.
func ToWarehouseResponses(list []*entity.Warehouse) []WarehouseResponse {
	out := make([]WarehouseResponse, 0, len(list))
	for _, w := range list {
		out = append(out, ToWarehouseResponse(w))
	}
	return out
}

// ClientRequest cuerpo para crear o actualizar un cliente/proveedor.
type ClientRequest struct {
	Nombre    string `json:"nombre"`
	Telefono  string `json:"telefono"`
	Email     string `json:"email"`
	Direccion string `json:"direccion"`
	Tipo      string `json:"tipo"` // proveedor | cliente | ambos
}

// ClientResponse un cliente/proveedor.
type ClientResponse struct {
	ID        int64     `json:"id"`
	Nombre    string    `json:"nombre"`
	Telefono  string    `json:"telefono,omitempty"`
	Email     string    `json:"email,omitempty"`
	Direccion string    `json:"direccion,omitempty"`
	Tipo      string    `json:"tipo"`
	CreadoEn  time.Time `json:"creadoEn"`
}

// ToClientResponse convierte la entidad a respuesta.
func ToClientResponse(c *entity.Client) ClientResponse {
	return ClientResponse{
		ID:        c.ID,
		Nombre:    c.Name,
		Telefono:  c.Phone,
		Email:     c.Email,
		Direccion: c.Address,
		Tipo:      c.Type,
		CreadoEn:  c.CreatedAt,
	}
}

// ToClientResponses convierte una lista de clientes.
func ToClientResponses(list []*entity.Client) []ClientResponse {
	out := make([]ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToClientResponse(c))
	}
	return out
}

// UnitRequest cuerpo para crear o actualizar una unidad de medida.
type UnitRequest struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

// UnitResponse una unidad de medida.
type UnitResponse struct {
	ID          int64  `json:"id"`
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion,omitempty"`
}

// ToUnitResponse convierte la entidad a respuesta.
func ToUnitResponse(u *entity.Unit) UnitResponse {
	return UnitResponse{ID: u.ID, Nombre: u.Name, Descripcion: u.Description}
}

// ToUnitResponses convierte una lista de unidades.
func ToUnitResponses(list []*entity.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(list))
	for _, u := range list {
		out = append(out, ToUnitResponse(u))
	}
	return out
}
