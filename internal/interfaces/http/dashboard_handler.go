package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/analytics"
	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/tenant"
)

// DashboardHandler resumen operativo y lista de tenants disponibles.
type DashboardHandler struct {
	uc *analytics.UseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Dashboard devuelve el resumen del tenant.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	d, err := h.uc.Dashboard(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"totalProductos":     d.TotalProducts,
		"totalBodegas":       d.TotalWarehouses,
		"totalClientes":      d.TotalClients,
		"movimientosHoy":     d.MovementsToday,
		"movimientosMes":     d.MovementsMonth,
		"recientes":          dto.ToMovementDetailResponses(d.Recent),
		"productosStockBajo": dto.ToInventoryRowResponses(d.LowStock),
	})
}

// Bodegas lista los tenants disponibles (público, para la pantalla de login).
func (h *DashboardHandler) Bodegas(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"bodegas": tenant.Available()})
}
