package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	apphttp "github.com/jhoicas/comandas-bff/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/comandas-bff/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "USR-1"
	testIssuer    = "comandas-bff-test"
	testExpMin    = 60
)

// fakeSessions sesiones abiertas por id.
type fakeSessions map[string]*entity.Session

func (f fakeSessions) Session(_ context.Context, id string) (*entity.Session, error) {
	s, ok := f[id]
	if !ok {
		return nil, domain.WithMessage(domain.ErrUnauthorized, "La sesión expiró")
	}
	return s, nil
}

func sessionFor(role string) *entity.Session {
	return &entity.Session{ID: "sess-" + role, Token: "backend-token", Profile: &entity.Profile{UserID: testUserID, Role: role}}
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para parsear el JWT y cargar la sesión
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(sessions fakeSessions, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(testJWTSecret, sessions),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":         true,
				"role":       apphttp.GetRole(c),
				"user_id":    apphttp.GetUserID(c),
				"session_id": apphttp.GetSessionID(c),
			})
		},
	)
	return app
}

// tokenFor genera el token del BFF para una sesión.
func tokenFor(t *testing.T, sessionID, role string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, sessionID, testUserID, role, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// doRequest lanza una petición GET /protected y devuelve la respuesta.
func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	app := buildTestApp(fakeSessions{"sess-ADMIN": sessionFor("ADMIN")}, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "sess-ADMIN", "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "admin debe poder acceder a ruta restringida a admin")

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "ADMIN", body["role"])
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "sess-ADMIN", body["session_id"])
}

func TestRequireRole_RolConPrefijoSeNormaliza(t *testing.T) {
	app := buildTestApp(fakeSessions{"sess-m": sessionFor("role_mesero")}, "mesero")
	resp := doRequest(t, app, tokenFor(t, "sess-m", "ROLE_MESERO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_MeseroBloqueadoEnRutaAdmin(t *testing.T) {
	app := buildTestApp(fakeSessions{"sess-MESERO": sessionFor("MESERO")}, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "sess-MESERO", "MESERO"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "FORBIDDEN")
}

func TestRequireRole_ElRolDeLaSesionManda(t *testing.T) {
	// El token dice ADMIN pero la sesión guardada es de un cocinero.
	app := buildTestApp(fakeSessions{"sess-x": sessionFor("COCINERO")}, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "sess-x", "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinAuthHeader_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleAdmin)
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MISSING_TOKEN")
}

func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "INVALID_TOKEN")
}

func TestRequireRole_FormatoSinBearer_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleAdmin)
	resp := doRequest(t, app, "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware - la sesión debe seguir abierta
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SesionCerrada_Retorna401(t *testing.T) {
	app := buildTestApp(fakeSessions{}, entity.RoleAdmin)
	resp := doRequest(t, app, tokenFor(t, "sess-cerrada", "ADMIN"))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "un token vigente de una sesión cerrada no sirve")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "La sesión expiró")
}

func TestAuthMiddleware_TokenExpirado_Retorna401(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, "sess-ADMIN", testUserID, "ADMIN", testIssuer, -1)
	require.NoError(t, err)

	app := buildTestApp(fakeSessions{"sess-ADMIN": sessionFor("ADMIN")}, entity.RoleAdmin)
	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
