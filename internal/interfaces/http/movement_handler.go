package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/movements"
	"github.com/jhoicas/inventario-multibodega/internal/domain/repository"
)

// MovementHandler maneja las peticiones HTTP de movimientos (protegido).
type MovementHandler struct {
	engine *movements.Engine
}

// NewMovementHandler construye el handler.
func NewMovementHandler(engine *movements.Engine) *MovementHandler {
	return &MovementHandler{engine: engine}
}

// CreateEntrada registra una entrada de stock.
func (h *MovementHandler) CreateEntrada(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.CreateEntrada(c.Context(), GetTenant(c), movements.EntradaInput{
		ProductID:   in.ProductoID,
		WarehouseID: in.BodegaID,
		UserID:      GetUserID(c),
		ClientID:    in.ClienteID,
		Quantity:    in.Cantidad,
		Price:       in.Precio,
		Date:        in.Fecha,
		Note:        in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// CreateSalida registra una salida de stock.
func (h *MovementHandler) CreateSalida(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.CreateSalida(c.Context(), GetTenant(c), movements.SalidaInput{
		ProductID:   in.ProductoID,
		WarehouseID: in.BodegaID,
		UserID:      GetUserID(c),
		ClientID:    in.ClienteID,
		Quantity:    in.Cantidad,
		Price:       in.Precio,
		Date:        in.Fecha,
		Note:        in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToMovementResponse(mov))
}

// DividirProducto descompone un producto origen en productos destino.
func (h *MovementHandler) DividirProducto(c *fiber.Ctx) error {
	var in dto.DividirProductoRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	dests := make([]movements.SplitDestination, 0, len(in.Destinos))
	for _, d := range in.Destinos {
		dests = append(dests, movements.SplitDestination{
			ProductID: d.ProductoID,
			Quantity:  d.Cantidad,
			Price:     d.Precio,
		})
	}
	written, err := h.engine.DividirProducto(c.Context(), GetTenant(c), movements.DividirInput{
		OriginProductID: in.ProductoOrigenID,
		WarehouseID:     in.BodegaID,
		UserID:          GetUserID(c),
		TotalQuantity:   in.CantidadTotal,
		Destinations:    dests,
		Note:            in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(written))
	for _, m := range written {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movimientos": out})
}

// CrearCombo ensambla un combo a partir de sus insumos.
func (h *MovementHandler) CrearCombo(c *fiber.Ctx) error {
	var in dto.CrearComboRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	ings := make([]movements.ComboIngredient, 0, len(in.Ingredientes))
	for _, ing := range in.Ingredientes {
		ings = append(ings, movements.ComboIngredient{ProductID: ing.ProductoID, Quantity: ing.Cantidad})
	}
	written, err := h.engine.CrearCombo(c.Context(), GetTenant(c), movements.ComboInput{
		ComboProductID: in.ProductoComboID,
		WarehouseID:    in.BodegaID,
		UserID:         GetUserID(c),
		Ingredients:    ings,
		Price:          in.Precio,
		Note:           in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(written))
	for _, m := range written {
		out = append(out, dto.ToMovementResponse(m))
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"movimientos": out})
}

// movementFilterFromQuery arma el filtro tipado desde los query params.
func movementFilterFromQuery(c *fiber.Ctx) repository.MovementFilter {
	f := repository.MovementFilter{
		Type:        c.Query("tipo"),
		ProductCode: c.Query("codigo"),
		ProductID:   int64(c.QueryInt("productoId")),
		WarehouseID: int64(c.QueryInt("bodegaId")),
		ClientID:    int64(c.QueryInt("clienteId")),
		UserID:      int64(c.QueryInt("usuarioId")),
	}
	if s := c.Query("desde"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			f.DateFrom = &t
		}
	}
	if s := c.Query("hasta"); s != "" {
		if t, err := time.Parse("2006-01-02", s); err == nil {
			// El rango es inclusivo en días: hasta el final del día pedido.
			end := t.AddDate(0, 0, 1)
			f.DateTo = &end
		}
	}
	return f
}

// List lista movimientos filtrados y paginados.
func (h *MovementHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.engine.FindAll(c.Context(), GetTenant(c), movementFilterFromQuery(c), page.Page, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"movimientos": dto.ToMovementDetailResponses(list),
		"pagina":      dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	})
}

// GetByID obtiene un movimiento.
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	mov, err := h.engine.GetByID(c.Context(), GetTenant(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementDetailResponse(mov))
}

// ByCodigo lista los movimientos de un producto por código.
func (h *MovementHandler) ByCodigo(c *fiber.Ctx) error {
	code := c.Params("codigo")
	list, err := h.engine.FindByProductoCodigo(c.Context(), GetTenant(c), code)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"movimientos": dto.ToMovementDetailResponses(list)})
}

// Update corrige un movimiento (solo admin).
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.engine.Update(c.Context(), GetTenant(c), id, movements.UpdateInput{
		Quantity: in.Cantidad,
		Price:    in.Precio,
		Date:     in.Fecha,
		ClientID: in.ClienteID,
		Note:     in.Observacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// Delete elimina un movimiento (solo admin).
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.engine.Delete(c.Context(), GetTenant(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "movimiento eliminado"})
}
