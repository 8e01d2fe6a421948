package http

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/movements"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// InventoryHandler consultas de inventario: kardex, inventario general, stock
// y los reportes Excel.
type InventoryHandler struct {
	engine *movements.Engine
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(engine *movements.Engine) *InventoryHandler {
	return &InventoryHandler{engine: engine}
}

// Kardex devuelve la historia de un producto con saldo acumulado.
func (h *InventoryHandler) Kardex(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	report, err := h.engine.Kardex(c.Context(), GetTenant(c), id)
	if err != nil {
		return respondError(c, err)
	}
	entries := make([]dto.KardexEntryResponse, 0, len(report.Entries))
	for _, e := range report.Entries {
		entries = append(entries, dto.KardexEntryResponse{
			MovementResponse: dto.ToMovementDetailResponse(&e.MovementDetail),
			Saldo:            e.Balance,
		})
	}
	return c.JSON(dto.KardexResponse{
		Producto:         dto.ToProductResponse(report.Product),
		Movimientos:      entries,
		StockActual:      report.StockActual,
		TotalMovimientos: report.TotalMovements,
	})
}

// inventoryFilterFromQuery arma el filtro tipado desde los query params.
func inventoryFilterFromQuery(c *fiber.Ctx) repository.InventoryFilter {
	f := repository.InventoryFilter{
		WarehouseID:  int64(c.QueryInt("bodegaId")),
		ProductID:    int64(c.QueryInt("productoId")),
		LowStockOnly: c.QueryBool("stockBajo"),
		IncludeZero:  c.QueryBool("incluirCeros"),
	}
	if s := c.Query("stockMinimo"); s != "" {
		if min, err := decimal.NewFromString(s); err == nil {
			f.MinStock = &min
		}
	}
	return f
}

// InventarioGeneral devuelve el inventario agrupado por (producto, bodega)
// con resúmenes por bodega, por producto y estadísticas.
func (h *InventoryHandler) InventarioGeneral(c *fiber.Ctx) error {
	report, err := h.engine.InventarioGeneral(c.Context(), GetTenant(c), inventoryFilterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	byWarehouse := make([]dto.WarehouseSummaryResponse, 0, len(report.ByWarehouse))
	for _, s := range report.ByWarehouse {
		byWarehouse = append(byWarehouse, dto.WarehouseSummaryResponse{
			BodegaID:   s.WarehouseID,
			Bodega:     s.WarehouseName,
			Productos:  s.Products,
			StockTotal: s.TotalStock,
		})
	}
	byProduct := make([]dto.ProductSummaryResponse, 0, len(report.ByProduct))
	for _, s := range report.ByProduct {
		byProduct = append(byProduct, dto.ProductSummaryResponse{
			ProductoID:  s.ProductID,
			Codigo:      s.ProductCode,
			Descripcion: s.Description,
			Bodegas:     s.Warehouses,
			StockTotal:  s.TotalStock,
		})
	}
	return c.JSON(fiber.Map{
		"inventario": dto.ToInventoryRowResponses(report.Rows),
		"estadisticas": dto.InventoryStatsResponse{
			Lineas:          report.Stats.Lines,
			Productos:       report.Stats.Products,
			Bodegas:         report.Stats.Warehouses,
			StockTotal:      report.Stats.TotalStock,
			LineasStockBajo: report.Stats.LowStockLines,
		},
		"resumenPorBodega":   byWarehouse,
		"resumenPorProducto": byProduct,
	})
}

// Stock devuelve el stock vivo de un (producto, bodega).
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	productID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	warehouseID := int64(c.QueryInt("bodegaId"))
	if warehouseID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "bodegaId es requerido"})
	}
	stock, err := h.engine.Stock(c.Context(), GetTenant(c), productID, warehouseID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"productoId": productID, "bodegaId": warehouseID, "stock": stock})
}

// sendXLSX escribe el archivo al response con los headers de descarga.
func sendXLSX(c *fiber.Ctx, file *excelize.File, name string) error {
	c.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	_, err := file.WriteTo(c.Response().BodyWriter())
	return err
}

// ExportMovimientos descarga el reporte Excel de movimientos filtrados.
func (h *InventoryHandler) ExportMovimientos(c *fiber.Ctx) error {
	file, err := h.engine.ExportMovimientos(c.Context(), GetTenant(c), movementFilterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()
	name := fmt.Sprintf("movimientos_%s.xlsx", time.Now().Format("20060102"))
	return sendXLSX(c, file, name)
}

// ExportInventario descarga el reporte Excel del inventario general.
func (h *InventoryHandler) ExportInventario(c *fiber.Ctx) error {
	file, err := h.engine.ExportInventario(c.Context(), GetTenant(c), inventoryFilterFromQuery(c))
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()
	name := fmt.Sprintf("inventario_%s.xlsx", time.Now().Format("20060102"))
	return sendXLSX(c, file, name)
}

// ExportPlantilla descarga la plantilla de importación con hojas de referencia.
func (h *InventoryHandler) ExportPlantilla(c *fiber.Ctx) error {
	file, err := h.engine.ExportPlantilla(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	defer file.Close()
	return sendXLSX(c, file, "plantilla_importacion.xlsx")
}

// ImportXLSX importa el archivo de la plantilla subido como multipart
// (campo "archivo").
func (h *InventoryHandler) ImportXLSX(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("archivo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "archivo es requerido (multipart)"})
	}
	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se pudo leer el archivo"})
	}
	defer f.Close()

	result, err := h.engine.ImportXLSX(c.Context(), GetTenant(c), GetUserID(c), f)
	if err != nil {
		return respondError(c, err)
	}
	out := dto.ImportResultResponse{Importados: result.Imported}
	for _, e := range result.Errors {
		out.Errores = append(out.Errores, dto.ImportErrorResponse{Fila: e.RowNumber, Mensaje: e.Message})
	}
	return c.JSON(out)
}
