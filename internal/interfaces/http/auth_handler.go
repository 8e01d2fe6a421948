package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/application/auth"
	"github.com/jhoicas/inventario-multibodega/internal/application/dto"
	"github.com/jhoicas/inventario-multibodega/internal/tenant"
)

// AuthHandler maneja registro y login.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler construye el handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login autentica contra el tenant resuelto del request. El cuerpo puede traer
// una clave de bodega explícita que pisa la pista del middleware.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	key := GetTenant(c)
	if tenant.IsValid(in.Bodega) {
		key = in.Bodega
	}
	result, err := h.uc.Login(c.Context(), key, auth.LoginInput{
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.LoginResponse{
		Token:  result.Token,
		Bodega: key,
		User:   dto.ToUserResponse(result.User),
	})
}

// Register crea un usuario en el tenant del request (solo admin).
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, err := h.uc.Register(c.Context(), GetTenant(c), auth.RegisterInput{
		Name:     in.Nombre,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Rol,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToUserResponse(user))
}
