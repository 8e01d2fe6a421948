package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
)

// WarehouseHandler maneja las peticiones HTTP para bodegas (protegido).
type WarehouseHandler struct {
	uc *usecase.WarehouseUseCase
}

// NewWarehouseHandler construye el handler.
func NewWarehouseHandler(uc *usecase.WarehouseUseCase) *WarehouseHandler {
	return &WarehouseHandler{uc: uc}
}

// Create crea una bodega.
func (h *WarehouseHandler) Create(c *fiber.Ctx) error {
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Create(c.Context(), GetTenant(c), usecase.WarehouseInput{
		Name:     in.Nombre,
		Location: in.Ubicacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToWarehouseResponse(warehouse))
}

// GetByID obtiene una bodega.
func (h *WarehouseHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	warehouse, err := h.uc.GetByID(c.Context(), GetTenant(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// List devuelve todas las bodegas del tenant.
func (h *WarehouseHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"bodegas": dto.ToWarehouseResponses(list)})
}

// Update actualiza una bodega.
func (h *WarehouseHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.WarehouseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	warehouse, err := h.uc.Update(c.Context(), GetTenant(c), id, usecase.WarehouseInput{
		Name:     in.Nombre,
		Location: in.Ubicacion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToWarehouseResponse(warehouse))
}

// Delete elimina una bodega sin movimientos.
func (h *WarehouseHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), GetTenant(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "bodega eliminada"})
}
