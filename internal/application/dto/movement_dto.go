package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-multibodega/internal/domain/entity"
)

// CreateMovementRequest cuerpo para registrar una entrada o salida.
type CreateMovementRequest struct {
	ProductoID  int64           `json:"productoId"`
	BodegaID    int64           `json:"bodegaId"`
	ClienteID   *int64          `json:"clienteId"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Fecha       *time.Time      `json:"fecha"`
	Observacion string          `json:"observacion"`
}

// UpdateMovementRequest cuerpo para corregir un movimiento.
type UpdateMovementRequest struct {
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Fecha       *time.Time      `json:"fecha"`
	ClienteID   *int64          `json:"clienteId"`
	Observacion string          `json:"observacion"`
}

// SplitDestinationRequest un destino de la división de un producto.
type SplitDestinationRequest struct {
	ProductoID int64           `json:"productoId"`
	Cantidad   decimal.Decimal `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
}

// DividirProductoRequest cuerpo para descomponer un producto en otros.
type DividirProductoRequest struct {
	ProductoOrigenID int64                     `json:"productoOrigenId"`
	BodegaID         int64                     `json:"bodegaId"`
	CantidadTotal    decimal.Decimal           `json:"cantidadTotal"`
	Destinos         []SplitDestinationRequest `json:"destinos"`
	Observacion      string                    `json:"observacion"`
}

// ComboIngredientRequest un insumo del combo.
type ComboIngredientRequest struct {
	ProductoID int64           `json:"productoId"`
	Cantidad   decimal.Decimal `json:"cantidad"`
}

// CrearComboRequest cuerpo para ensamblar un combo.
type CrearComboRequest struct {
	ProductoComboID int64                    `json:"productoComboId"`
	BodegaID        int64                    `json:"bodegaId"`
	Ingredientes    []ComboIngredientRequest `json:"ingredientes"`
	Precio          decimal.Decimal          `json:"precio"`
	Observacion     string                   `json:"observacion"`
}

// MovementResponse un movimiento con sus referencias resueltas.
type MovementResponse struct {
	ID          int64           `json:"id"`
	LoteID      string          `json:"loteId,omitempty"`
	Tipo        string          `json:"tipo"`
	Cantidad    decimal.Decimal `json:"cantidad"`
	Precio      decimal.Decimal `json:"precio"`
	Fecha       time.Time       `json:"fecha"`
	ProductoID  int64           `json:"productoId"`
	Codigo      string          `json:"codigo,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Unidad      string          `json:"unidad,omitempty"`
	BodegaID    int64           `json:"bodegaId"`
	Bodega      string          `json:"bodega,omitempty"`
	ClienteID   *int64          `json:"clienteId,omitempty"`
	Cliente     string          `json:"cliente,omitempty"`
	Usuario     string          `json:"usuario,omitempty"`
	Observacion string          `json:"observacion,omitempty"`
}

// ToMovementResponse convierte la entidad a respuesta.
func ToMovementResponse(m *entity.Movement) MovementResponse {
	return MovementResponse{
		ID:          m.ID,
		LoteID:      m.BatchID,
		Tipo:        m.Type,
		Cantidad:    m.Quantity,
		Precio:      m.Price,
		Fecha:       m.Date,
		ProductoID:  m.ProductID,
		BodegaID:    m.WarehouseID,
		ClienteID:   m.ClientID,
		Observacion: m.Note,
	}
}

// ToMovementDetailResponse convierte el detalle con joins a respuesta.
func ToMovementDetailResponse(m *entity.MovementDetail) MovementResponse {
	out := ToMovementResponse(&m.Movement)
	out.Codigo = m.ProductCode
	out.Descripcion = m.ProductDescription
	out.Unidad = m.UnitName
	out.Bodega = m.WarehouseName
	out.Cliente = m.ClientName
	out.Usuario = m.UserName
	return out
}

// ToMovementDetailResponses convierte una lista de detalles.
func ToMovementDetailResponses(list []*entity.MovementDetail) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementDetailResponse(m))
	}
	return out
}

// KardexEntryResponse un renglón del kardex con saldo acumulado.
type KardexEntryResponse struct {
	MovementResponse
	Saldo decimal.Decimal `json:"saldo"`
}

// KardexResponse historia completa de un producto.
type KardexResponse struct {
	Producto         ProductResponse       `json:"producto"`
	Movimientos      []KardexEntryResponse `json:"movimientos"`
	StockActual      decimal.Decimal       `json:"stockActual"`
	TotalMovimientos int                   `json:"totalMovimientos"`
}

// InventoryRowResponse una línea del inventario general.
type InventoryRowResponse struct {
	ProductoID       int64           `json:"productoId"`
	Codigo           string          `json:"codigo"`
	Descripcion      string          `json:"descripcion"`
	Unidad           string          `json:"unidad,omitempty"`
	BodegaID         int64           `json:"bodegaId"`
	Bodega           string          `json:"bodega"`
	Stock            decimal.Decimal `json:"stock"`
	TotalEntradas    decimal.Decimal `json:"totalEntradas"`
	TotalSalidas     decimal.Decimal `json:"totalSalidas"`
	TotalMovimientos int64           `json:"totalMovimientos"`
	UltimoMovimiento time.Time       `json:"ultimoMovimiento"`
}

// ToInventoryRowResponses convierte las líneas de inventario.
func ToInventoryRowResponses(rows []*entity.InventoryRow) []InventoryRowResponse {
	out := make([]InventoryRowResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, InventoryRowResponse{
			ProductoID:       r.ProductID,
			Codigo:           r.ProductCode,
			Descripcion:      r.ProductDescription,
			Unidad:           r.UnitName,
			BodegaID:         r.WarehouseID,
			Bodega:           r.WarehouseName,
			Stock:            r.Stock,
			TotalEntradas:    r.TotalEntradas,
			TotalSalidas:     r.TotalSalidas,
			TotalMovimientos: r.TotalMovements,
			UltimoMovimiento: r.LastMovement,
		})
	}
	return out
}

// InventoryStatsResponse estadísticas globales del inventario filtrado.
type InventoryStatsResponse struct {
	Lineas          int             `json:"lineas"`
	Productos       int             `json:"productos"`
	Bodegas         int             `json:"bodegas"`
	StockTotal      decimal.Decimal `json:"stockTotal"`
	LineasStockBajo int             `json:"lineasStockBajo"`
}

// WarehouseSummaryResponse totales de una bodega en el inventario general.
type WarehouseSummaryResponse struct {
	BodegaID   int64           `json:"bodegaId"`
	Bodega     string          `json:"bodega"`
	Productos  int             `json:"productos"`
	StockTotal decimal.Decimal `json:"stockTotal"`
}

// ProductSummaryResponse totales de un producto sumando todas sus bodegas.
type ProductSummaryResponse struct {
	ProductoID  int64           `json:"productoId"`
	Codigo      string          `json:"codigo"`
	Descripcion string          `json:"descripcion"`
	Bodegas     int             `json:"bodegas"`
	StockTotal  decimal.Decimal `json:"stockTotal"`
}

// ImportErrorResponse una fila rechazada de la importación.
type ImportErrorResponse struct {
	Fila    int    `json:"fila"`
	Mensaje string `json:"mensaje"`
}

// ImportResultResponse saldo de una importación masiva.
type ImportResultResponse struct {
	Importados int                   `json:"importados"`
	Errores    []ImportErrorResponse `json:"errores"`
}
