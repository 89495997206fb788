package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/bootstrap"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/Almacen-api/internal/interfaces/http"
	"github.com/jhoicas/Almacen-api/pkg/config"
)

const rootEmail = "root@test.ru"

type testServer struct {
	t         *testing.T
	app       *fiber.App
	token     string
	uploadDir string
}

// newTestServer levanta el router completo sobre el store en memoria con un
// super-admin logueado.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	uploadDir := t.TempDir()
	repos := bootstrap.MemoryRepos(memory.NewStore())
	deps := bootstrap.RouterDeps(repos, bootstrap.Options{
		JWT:       auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer},
		UploadDir: uploadDir,
	})
	created, err := bootstrap.SeedSuperAdmin(context.Background(), repos.Users, deps.AuthUC,
		config.SeedConfig{Email: rootEmail, Password: testPassword, DisplayName: "Root"})
	require.NoError(t, err)
	require.True(t, created)

	app := fiber.New()
	apphttp.Router(app, deps)
	s := &testServer{t: t, app: app, uploadDir: uploadDir}

	var login dto.UserResponse
	resp := s.do(http.MethodPost, "/api/users/sessions", dto.LoginRequest{Email: rootEmail, Password: testPassword})
	s.decode(resp, http.StatusOK, &login)
	s.token = login.Token
	return s
}

func (s *testServer) do(method, path string, body any) *http.Response {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(s.t, err)
	return resp
}

func (s *testServer) decode(resp *http.Response, status int, out any) {
	s.t.Helper()
	defer resp.Body.Close()
	require.Equal(s.t, status, resp.StatusCode)
	if out != nil {
		require.NoError(s.t, json.NewDecoder(resp.Body).Decode(out))
	}
}

// create hace POST y devuelve el _id del documento creado.
func (s *testServer) create(path string, body any) string {
	s.t.Helper()
	var doc map[string]any
	s.decode(s.do(http.MethodPost, path, body), http.StatusCreated, &doc)
	id, _ := doc["_id"].(string)
	require.NotEmpty(s.t, id)
	return id
}

func (s *testServer) stock(id string) *entity.Stock {
	s.t.Helper()
	var st entity.Stock
	s.decode(s.do(http.MethodGet, "/api/stocks/"+id, nil), http.StatusOK, &st)
	return &st
}

// seedCatalog crea cliente, almacén y producto.
func (s *testServer) seedCatalog() (client, stock, product string) {
	client = s.create("/api/clients", dto.ClientRequest{Name: "ООО Ромашка", PhoneNumber: "+7 900 000-00-00", Email: "romashka@test.ru", INN: "7700000000"})
	stock = s.create("/api/stocks", dto.StockRequest{Name: "Склад 1", Address: "Москва"})
	product = s.create("/api/products", dto.ProductRequest{Client: client, Title: "Кружка", Barcode: "4600000000001", Article: "MUG-1"})
	return client, stock, product
}

func ids(t *testing.T, resp *http.Response) []string {
	t.Helper()
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	out := make([]string, 0, len(list))
	for _, d := range list {
		id, _ := d["_id"].(string)
		out = append(out, id)
	}
	return out
}

func TestRouter_ArrivalRecibidaSumaStockYArchivo(t *testing.T) {
	s := newTestServer(t)
	client, stock, product := s.seedCatalog()

	arrival := s.create("/api/arrivals", map[string]any{
		"client":   client,
		"stock":    stock,
		"products": []entity.ProductLine{{Product: product, Amount: 5}},
	})
	assert.Equal(t, 0, s.stock(stock).Quantity(product), "en espera no mueve stock")

	var updated entity.Arrival
	s.decode(s.do(http.MethodPut, "/api/arrivals/"+arrival, map[string]any{
		"arrival_status":  entity.ArrivalReceived,
		"received_amount": []entity.ProductLine{{Product: product, Amount: 5}},
	}), http.StatusOK, &updated)
	assert.Equal(t, entity.ArrivalReceived, updated.ArrivalStatus)
	assert.Equal(t, 5, s.stock(stock).Quantity(product))

	var msg dto.MessageResponse
	s.decode(s.do(http.MethodPatch, "/api/arrivals/"+arrival+"/archive", nil), http.StatusOK, &msg)
	assert.Equal(t, "Поставка перемещена в архив.", msg.Message)

	assert.NotContains(t, ids(t, s.do(http.MethodGet, "/api/arrivals", nil)), arrival)
	assert.Contains(t, ids(t, s.do(http.MethodGet, "/api/arrivals/archived/all", nil)), arrival)

	var errBody dto.ErrorResponse
	s.decode(s.do(http.MethodGet, "/api/arrivals/"+arrival, nil), http.StatusForbidden, &errBody)
	assert.Equal(t, "Поставка в архиве.", errBody.Message)

	s.decode(s.do(http.MethodPatch, "/api/arrivals/"+arrival+"/archive", nil), http.StatusForbidden, &errBody)
	assert.Equal(t, "Поставка уже в архиве.", errBody.Message)
}

func TestRouter_PedidoSinStockDevuelve409(t *testing.T) {
	s := newTestServer(t)
	client, stock, product := s.seedCatalog()

	var errBody dto.ErrorResponse
	s.decode(s.do(http.MethodPost, "/api/orders", map[string]any{
		"client":   client,
		"stock":    stock,
		"products": []entity.ProductLine{{Product: product, Amount: 1}},
	}), http.StatusConflict, &errBody)
	assert.Equal(t, "INSUFFICIENT_STOCK", errBody.Code)

	assert.Empty(t, ids(t, s.do(http.MethodGet, "/api/orders", nil)), "el pedido fallido no queda guardado")
	assert.Equal(t, 0, s.stock(stock).Quantity(product))
}

func TestRouter_ArrivalMultipartGuardaArchivos(t *testing.T) {
	s := newTestServer(t)
	client, stock, product := s.seedCatalog()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("client", client))
	require.NoError(t, w.WriteField("stock", stock))
	require.NoError(t, w.WriteField("arrival_status", entity.ArrivalReceived))
	require.NoError(t, w.WriteField("products", `[{"product":"`+product+`","amount":3}]`))
	require.NoError(t, w.WriteField("received_amount", `[{"product":"`+product+`","amount":3}]`))
	fw, err := w.CreateFormFile("files", "nakladnaya.PDF")
	require.NoError(t, err)
	_, err = fw.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/arrivals", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var a entity.Arrival
	s.decode(resp, http.StatusCreated, &a)
	require.Len(t, a.Documents, 1)
	assert.True(t, strings.HasPrefix(a.Documents[0].Document, apphttp.UploadsPrefix+"/"))
	assert.True(t, strings.HasSuffix(a.Documents[0].Document, ".pdf"))
	assert.Equal(t, 3, s.stock(stock).Quantity(product))

	_, err = os.Stat(filepath.Join(s.uploadDir, filepath.Base(a.Documents[0].Document)))
	assert.NoError(t, err)
}

func TestRouter_PopulateExpandeReferencias(t *testing.T) {
	s := newTestServer(t)
	client, _, product := s.seedCatalog()

	var list []map[string]any
	s.decode(s.do(http.MethodGet, "/api/products?populate=1&client="+client, nil), http.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, product, list[0]["_id"])
	ref, ok := list[0]["client"].(map[string]any)
	require.True(t, ok, "client debe venir expandido")
	assert.Equal(t, "ООО Ромашка", ref["name"])
}

func TestRouter_RolesPorRuta(t *testing.T) {
	s := newTestServer(t)
	_, stock, _ := s.seedCatalog()

	var worker dto.UserResponse
	s.decode(s.do(http.MethodPost, "/api/users", dto.RegisterRequest{Email: "worker@test.ru", Password: testPassword}), http.StatusCreated, &worker)
	assert.Equal(t, entity.RoleStockWorker, worker.Role)

	var login dto.UserResponse
	s.token = ""
	s.decode(s.do(http.MethodPost, "/api/users/sessions", dto.LoginRequest{Email: "worker@test.ru", Password: testPassword}), http.StatusOK, &login)
	s.token = login.Token

	// lectura permitida a todos los roles
	s.decode(s.do(http.MethodGet, "/api/stocks/"+stock, nil), http.StatusOK, nil)
	// crear exige manager o superior
	s.decode(s.do(http.MethodPost, "/api/clients", dto.ClientRequest{Name: "X"}), http.StatusForbidden, nil)
	// el archivo solo lo ve super-admin
	s.decode(s.do(http.MethodGet, "/api/stocks/archived/all", nil), http.StatusForbidden, nil)
	// la lista de usuarios es para personal
	s.decode(s.do(http.MethodGet, "/api/users", nil), http.StatusForbidden, nil)

	var msg dto.MessageResponse
	s.decode(s.do(http.MethodDelete, "/api/users/sessions", nil), http.StatusOK, &msg)
	s.decode(s.do(http.MethodGet, "/api/stocks/"+stock, nil), http.StatusUnauthorized, nil)
}

func TestRouter_LoginCredencialesInvalidas(t *testing.T) {
	s := newTestServer(t)
	s.token = ""

	var errBody dto.ErrorResponse
	s.decode(s.do(http.MethodPost, "/api/users/sessions", dto.LoginRequest{Email: "nadie@test.ru", Password: "x"}), http.StatusUnauthorized, &errBody)
	assert.Equal(t, "Неверный email", errBody.Message)

	s.decode(s.do(http.MethodPost, "/api/users/sessions", dto.LoginRequest{Email: rootEmail, Password: "x"}), http.StatusUnauthorized, &errBody)
	assert.Equal(t, "Неверный пароль", errBody.Message)
}

func TestRouter_MultipartDocumentoComoTextoSeAgrega(t *testing.T) {
	s := newTestServer(t)
	client, stock, product := s.seedCatalog()

	arrival := s.create("/api/arrivals", map[string]any{
		"client":    client,
		"stock":     stock,
		"products":  []entity.ProductLine{{Product: product, Amount: 1}},
		"documents": []entity.Attachment{{Document: "/uploads/a.pdf"}},
	})

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	require.NoError(t, w.WriteField("documents", "/uploads/b.pdf"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/api/arrivals/"+arrival, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)

	var a entity.Arrival
	s.decode(resp, http.StatusOK, &a)
	require.Len(t, a.Documents, 2)
	assert.Equal(t, "/uploads/a.pdf", a.Documents[0].Document)
	assert.Equal(t, "/uploads/b.pdf", a.Documents[1].Document)
}
