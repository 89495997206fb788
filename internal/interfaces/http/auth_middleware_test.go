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

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "almacen-test"
	testExpMin    = 60
	testPassword  = "secret-123"
)

func newAuthUseCase() (*auth.AuthUseCase, *memory.UserRepo) {
	users := memory.NewUserRepository(memory.NewStore())
	return auth.NewAuthUseCase(users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}), users
}

// buildTestApp construye una aplicación Fiber mínima con:
//   - AuthMiddleware para validar la sesión y cargar locals
//   - RequireRole para autorizar el acceso
//   - Un handler dummy que devuelve 200 si pasa los middlewares
func buildTestApp(authn apphttp.Authenticator, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	app.Get("/protected",
		apphttp.AuthMiddleware(authn),
		apphttp.RequireRole(allowedRoles...),
		func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusOK).JSON(fiber.Map{
				"ok":      true,
				"role":    apphttp.GetRole(c),
				"user_id": apphttp.GetUserID(c),
			})
		},
	)
	return app
}

// tokenForRole registra un usuario con el rol indicado y devuelve su header de sesión.
func tokenForRole(t *testing.T, uc *auth.AuthUseCase, email, role string) string {
	t.Helper()
	ctx := context.Background()
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: email, Password: testPassword, Role: role})
	require.NoError(t, err)
	out, err := uc.Login(ctx, dto.LoginRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	return "Bearer " + out.Token
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

func readCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Code
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_AdminAccedeRutaAdmin(t *testing.T) {
	uc, _ := newAuthUseCase()
	app := buildTestApp(uc, access.Admins...)
	resp := doRequest(t, app, tokenForRole(t, uc, "admin@test.ru", entity.RoleAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, true, body["ok"])
	assert.Equal(t, entity.RoleAdmin, body["role"])
	assert.NotEmpty(t, body["user_id"])
}

func TestRequireRole_StockWorkerAccedeRutaAll(t *testing.T) {
	uc, _ := newAuthUseCase()
	app := buildTestApp(uc, access.All...)
	resp := doRequest(t, app, tokenForRole(t, uc, "worker@test.ru", entity.RoleStockWorker))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRequireRole_ManagerBloqueadoEnRutaAdmin(t *testing.T) {
	uc, _ := newAuthUseCase()
	app := buildTestApp(uc, access.Admins...)
	resp := doRequest(t, app, tokenForRole(t, uc, "manager@test.ru", entity.RoleManager))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", readCode(t, resp))
}

// Sin jerarquía: super-admin no entra donde no está enumerado.
func TestRequireRole_SuperAdminSinJerarquia(t *testing.T) {
	uc, _ := newAuthUseCase()
	app := buildTestApp(uc, entity.RoleStockWorker)
	resp := doRequest(t, app, tokenForRole(t, uc, "root@test.ru", entity.RoleSuperAdmin))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRequireRole_SinRolEnContexto_Retorna401(t *testing.T) {
	app := fiber.New()
	app.Get("/protected", apphttp.RequireRole(access.All...), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_ROLE", readCode(t, resp))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_SinAuthHeader_Retorna401(t *testing.T) {
	uc, _ := newAuthUseCase()
	resp := doRequest(t, buildTestApp(uc, access.All...), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", readCode(t, resp))
}

func TestAuthMiddleware_TokenInvalido_Retorna401(t *testing.T) {
	uc, _ := newAuthUseCase()
	resp := doRequest(t, buildTestApp(uc, access.All...), "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", readCode(t, resp))
}

func TestAuthMiddleware_FormatoIncorrecto_Retorna401(t *testing.T) {
	uc, _ := newAuthUseCase()
	resp := doRequest(t, buildTestApp(uc, access.All...), "Token abc")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_LogoutRevocaToken(t *testing.T) {
	uc, users := newAuthUseCase()
	app := buildTestApp(uc, access.All...)
	header := tokenForRole(t, uc, "worker@test.ru", entity.RoleStockWorker)

	u, err := users.GetByEmail(context.Background(), "worker@test.ru")
	require.NoError(t, err)
	_, err = uc.Logout(context.Background(), u.ID)
	require.NoError(t, err)

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthMiddleware_UsuarioArchivado_Retorna403(t *testing.T) {
	uc, users := newAuthUseCase()
	app := buildTestApp(uc, access.All...)
	header := tokenForRole(t, uc, "worker@test.ru", entity.RoleStockWorker)

	ctx := context.Background()
	u, err := users.GetByEmail(ctx, "worker@test.ru")
	require.NoError(t, err)
	u.IsArchived = true
	require.NoError(t, users.Update(ctx, u))

	resp := doRequest(t, app, header)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "деактивирован")
}
