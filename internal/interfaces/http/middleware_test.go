package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/inventario-multibodega/internal/interfaces/http"
	"github.com/jhoicas/inventario-multibodega/internal/tenant"
	pkgjwt "github.com/jhoicas/inventario-multibodega/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = int64(42)
	testIssuer    = "inventario-test"
	testExpMin    = 60
)

// buildTestApp construye una aplicación Fiber mínima con TenantMiddleware en
// todas las rutas, una ruta pública y una protegida con AuthMiddleware.
func buildTestApp() *fiber.App {
	app := fiber.New()
	app.Use(apphttp.TenantMiddleware(testJWTSecret, tenant.Principal))
	app.Get("/publica", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"tenant": apphttp.GetTenant(c)})
	})
	app.Get("/protegida", apphttp.AuthMiddleware(testJWTSecret), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"tenant":  apphttp.GetTenant(c),
			"user_id": apphttp.GetUserID(c),
			"rol":     apphttp.GetRole(c),
		})
	})
	app.Get("/solo-admin", apphttp.AuthMiddleware(testJWTSecret), apphttp.RequireAdmin(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	return app
}

// tokenFor genera un JWT con la bodega y el rol indicados.
func tokenFor(t *testing.T, bodega, rol string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, bodega, rol, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doGet lanza una petición GET y devuelve la respuesta decodificada.
func doGet(t *testing.T, app *fiber.App, path string, headers map[string]string) (*http.Response, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var body map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	_ = json.Unmarshal(raw, &body)
	return resp, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests TenantMiddleware — precedencia de las pistas de tenant
// ──────────────────────────────────────────────────────────────────────────────

// Sin token ni pistas: debe resolver al tenant por defecto.
func TestTenantMiddleware_SinPistasUsaDefault(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/publica", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tenant.Principal, body["tenant"],
		"sin pistas debe usar el tenant por defecto")
}

// Header X-Bodega válido: gana sobre el default.
func TestTenantMiddleware_HeaderGanaAlDefault(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/publica", map[string]string{"X-Bodega": tenant.Sucursal})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tenant.Sucursal, body["tenant"])
}

// Query param bodega: también vale como pista del request.
func TestTenantMiddleware_QueryParamComoPista(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/publica?bodega="+tenant.Sucursal, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tenant.Sucursal, body["tenant"])
}

// El claim bodega_id del token gana sobre el header del request.
func TestTenantMiddleware_ClaimDelTokenGanaAlHeader(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/protegida", map[string]string{
		"Authorization": tokenFor(t, tenant.Sucursal, "bodeguero"),
		"X-Bodega":      tenant.Principal,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tenant.Sucursal, body["tenant"],
		"el claim del usuario debe tener precedencia sobre el header")
}

// Pista inválida en el header: se ignora y cae al default.
func TestTenantMiddleware_HeaderInvalidoCaeAlDefault(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/publica", map[string]string{"X-Bodega": "bodega-pirata"})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, tenant.Principal, body["tenant"])
}

// Token inválido en ruta pública: no corta el request, solo pierde su voto.
func TestTenantMiddleware_TokenInvalidoEsTolerado(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/publica", map[string]string{
		"Authorization": "Bearer token.invalido.aqui",
		"X-Bodega":      tenant.Sucursal,
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"un token inválido no debe bloquear rutas públicas")
	assert.Equal(t, tenant.Sucursal, body["tenant"],
		"la pista del header debe seguir valiendo")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_ExtraeClaims(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/protegida", map[string]string{
		"Authorization": tokenFor(t, tenant.Principal, "admin"),
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(testUserID), body["user_id"])
	assert.Equal(t, "admin", body["rol"])
	assert.Equal(t, tenant.Principal, body["tenant"])
}

func TestAuthMiddleware_SinToken_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/protegida", nil)

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/protegida", map[string]string{
		"Authorization": "Bearer token.invalido.aqui",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	app := buildTestApp()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenant.Principal, "admin", testIssuer, -1)
	require.NoError(t, err)

	resp, _ := doGet(t, app, "/protegida", map[string]string{"Authorization": "Bearer " + tok})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
		"token expirado debe retornar 401")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin_AdminAccede(t *testing.T) {
	app := buildTestApp()
	resp, _ := doGet(t, app, "/solo-admin", map[string]string{
		"Authorization": tokenFor(t, tenant.Principal, "admin"),
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireAdmin_BodegueroBloqueado(t *testing.T) {
	app := buildTestApp()
	resp, body := doGet(t, app, "/solo-admin", map[string]string{
		"Authorization": tokenFor(t, tenant.Principal, "bodeguero"),
	})

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests JWT pkg
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenant.Sucursal, "bodeguero", testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)

	assert.Equal(t, testUserID, claims.UserID)
	assert.Equal(t, tenant.Sucursal, claims.BodegaID)
	assert.Equal(t, "bodeguero", claims.Role)
}

func TestJWT_SecretIncorrecto_RetornaError(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenant.Principal, "admin", testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
