package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
)

// UnitHandler maneja las peticiones HTTP para unidades de medida (protegido).
type UnitHandler struct {
	uc *usecase.UnitUseCase
}

// NewUnitHandler construye el handler.
func NewUnitHandler(uc *usecase.UnitUseCase) *UnitHandler {
	return &UnitHandler{uc: uc}
}

// Create crea una unidad.
func (h *UnitHandler) Create(c *fiber.Ctx) error {
	var in dto.UnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.Create(c.Context(), GetTenant(c), usecase.UnitInput{
		Name:        in.Nombre,
		Description: in.Descripcion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUnitResponse(unit))
}

// List devuelve todas las unidades del tenant.
func (h *UnitHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), GetTenant(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"unidades": dto.ToUnitResponses(list)})
}

// Update actualiza una unidad.
func (h *UnitHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.UnitRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	unit, err := h.uc.Update(c.Context(), GetTenant(c), id, usecase.UnitInput{
		Name:        in.Nombre,
		Description: in.Descripcion,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToUnitResponse(unit))
}

// Delete elimina una unidad que ningún producto use.
func (h *UnitHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), GetTenant(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "unidad eliminada"})
}
