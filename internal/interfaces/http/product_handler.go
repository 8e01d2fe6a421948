package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/application/usecase"
)

// ProductHandler maneja las peticiones HTTP para productos (protegido).
type ProductHandler struct {
	uc *usecase.ProductUseCase
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create crea un producto.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Create(c.Context(), GetTenant(c), usecase.CreateProductInput{
		Code:        in.Codigo,
		Description: in.Descripcion,
		UnitID:      in.UnidadMedidaID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToProductResponse(product))
}

// GetByID obtiene un producto.
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	product, err := h.uc.GetByID(c.Context(), GetTenant(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// List busca productos (la búsqueda ignora acentos).
func (h *ProductHandler) List(c *fiber.Ctx) error {
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
		"productos": dto.ToProductResponses(list),
		"pagina":    dto.PageResponse{Page: page.Page, Limit: page.Limit, Total: total},
	})
}

// Update actualiza un producto.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	var in dto.ProductRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	product, err := h.uc.Update(c.Context(), GetTenant(c), id, usecase.CreateProductInput{
		Code:        in.Codigo,
		Description: in.Descripcion,
		UnitID:      in.UnidadMedidaID,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.ToProductResponse(product))
}

// Delete elimina un producto sin movimientos.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id inválido"})
	}
	if err := h.uc.Delete(c.Context(), GetTenant(c), id); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "producto eliminado"})
}
