package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-multibodega/internal/tenant"
	"github.com/jhoicas/inventario-multibodega/pkg/jwt"
)

// Header y query param aceptados como pista de tenant para requests sin token.
const (
	tenantHeader = "X-Bodega"
	tenantQuery  = "bodega"
)

// TenantMiddleware resuelve la clave de tenant de cada request y la deja en
// c.Locals. Precedencia: claim bodega_id del usuario autenticado > header o
// query del request > tenant por defecto. El token se parsea de forma
// tolerante: uno inválido o ausente no corta el request, solo pierde su voto
// (las rutas protegidas lo rechazan después en AuthMiddleware).
func TenantMiddleware(jwtSecret, defaultTenant string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userHint := ""
		if tokenString := bearerToken(c); tokenString != "" {
			if claims, err := jwt.Parse(jwtSecret, tokenString); err == nil {
				userHint = claims.BodegaID
			}
		}
		requestHint := c.Get(tenantHeader)
		if requestHint == "" {
			requestHint = c.Query(tenantQuery)
		}
		c.Locals(LocalTenant, tenant.ResolveWithDefault(userHint, requestHint, defaultTenant))
		return c.Next()
	}
}
