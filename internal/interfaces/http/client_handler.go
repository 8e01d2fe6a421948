package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
)

// ClientHandler maneja las peticiones HTTP para clientes/proveedores (protegido).
type ClientHandler struct {
	uc *usecase.ClientUseCase
}

// NewClientHandler construye el handler.
func NewClientHandler(uc *usecase.ClientUseCase) *ClientHandler {
	return &ClientHandler{uc: uc}
}

// Create crea un cliente/proveedor.
func (h *ClientHandler) Create(c *fiber.Ctx) error {
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Create(c.Context(), GetTenant(c), usecase.ClientInput{
		Name:    in.Nombre,
		Phone:   in.Telefono,
		Email:   in.Email,
		Address: in.Direccion,
		Type:    in.Tipo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToClientResponse(client))
}

// GetByID obtiene un cliente/proveedor.
func (h *ClientHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	client, err := h.uc.GetByID(c.Context(), GetTenant(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClientResponse(client))
}

// List busca clientes por nombre, paginado.
func (h *ClientHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()

	list, total, err := h.uc.List(c.Context(), GetTenant(c), c.Query("buscar"), page.Page, page.Limit)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"clientes": dto.ToClientResponses(list),
		"pagina":   dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	})
}

// Update actualiza un cliente/proveedor.
func (h *ClientHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ClientRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	client, err := h.uc.Update(c.Context(), GetTenant(c), id, usecase.ClientInput{
		Name:    in.Nombre,
		Phone:   in.Telefono,
		Email:   in.Email,
		Address: in.Direccion,
		Type:    in.Tipo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToClientResponse(client))
}

// Delete elimina un cliente/proveedor sin movimientos.
func (h *ClientHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), GetTenant(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "cliente eliminado"})
}
