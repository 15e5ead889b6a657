package restapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type recorded struct {
	Method string
	Path   string
	Auth   string
	Body   map[string]interface{}
}

type callLog struct {
	mu    sync.Mutex
	calls []recorded
}

func (l *callLog) add(r recorded) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.calls = append(l.calls, r)
}

func (l *callLog) all() []recorded {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]recorded(nil), l.calls...)
}

// fakeBackend levanta un servidor que responde según la ruta y registra lo que recibe.
func fakeBackend(t *testing.T, routes map[string]func(w http.ResponseWriter, r *http.Request)) (*Client, *callLog) {
	t.Helper()
	log := &callLog{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec := recorded{Method: r.Method, Path: r.URL.Path, Auth: r.Header.Get("Authorization")}
		if b, _ := io.ReadAll(r.Body); len(b) > 0 {
			_ = json.Unmarshal(b, &rec.Body)
		}
		log.add(rec)
		h, ok := routes[r.Method+" "+r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		h(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api", 2*time.Second, logger.Nop()), log
}

func jsonReply(status int, body string) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Cliente y errores
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_AdjuntaBearerSoloSiHayToken(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/categorias": jsonReply(200, `[{"idCategoria":1,"nombre":"Bebidas"}]`),
	})
	repo := NewCategoryRepo(c)

	_, err := repo.List(context.Background(), "tok-123")
	require.NoError(t, err)
	_, err = repo.List(context.Background(), "")
	require.NoError(t, err)

	require.Len(t, calls.all(), 2)
	assert.Equal(t, "Bearer tok-123", calls.all()[0].Auth)
	assert.Equal(t, "", calls.all()[1].Auth)
}

func TestAPIError_ClasificaPorStatus(t *testing.T) {
	c, _ := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/productos/1": jsonReply(400, `{"message":"El precio debe ser positivo"}`),
		"GET /api/productos/2": jsonReply(401, `{}`),
		"GET /api/productos/3": jsonReply(403, `{}`),
		"GET /api/productos/5": jsonReply(409, `{"mensaje":"duplicado"}`),
		"GET /api/productos/6": jsonReply(500, `oops`),
	})
	repo := NewProductRepo(c)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "t", 1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "El precio debe ser positivo", apiErr.BackendMessage())

	_, err = repo.GetByID(ctx, "t", 2)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = repo.GetByID(ctx, "t", 3)
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = repo.GetByID(ctx, "t", 4)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = repo.GetByID(ctx, "t", 5)
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.GetByID(ctx, "t", 6)
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 500, apiErr.Status)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

func TestAPIError_ServidorInalcanzableEsStatusCero(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	repo := NewTableRepo(NewClient(base+"/api", time.Second, logger.Nop()))
	_, err := repo.List(context.Background(), "t")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, 0, apiErr.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Decodificación tolerante
// ──────────────────────────────────────────────────────────────────────────────

func TestRoles_AceptaLasTresFormasDeListado(t *testing.T) {
	bodies := []string{
		`[{"idRol":1,"nombre":"ADMIN"}]`,
		`{"roles":[{"idRol":1,"nombre":"ADMIN"}],"mensaje":"ok"}`,
		`{"data":[{"idRol":1,"nombre":"ADMIN"}]}`,
	}
	for _, body := range bodies {
		c, _ := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
			"GET /api/roles": jsonReply(200, body),
		})
		roles, err := NewRoleRepo(c).List(context.Background(), "t")
		require.NoError(t, err, body)
		require.Len(t, roles, 1, body)
		assert.Equal(t, "ADMIN", roles[0].Name)
	}
}

func TestComandas_IdentificadorYEstadoTolerantes(t *testing.T) {
	c, _ := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/comandas/pendientes": jsonReply(200, `[
			{"comandaId":10,"mesaId":3,"meseroId":"USR-1","estadoId":4,"estadoNombre":"PENDIENTE","total":25000,
			 "detalles":[{"productoId":1,"productoNombre":"Bandeja","precioUnitario":10000,"cantidad":2,"subtotal":20000},
			             {"productoId":2,"nombreProducto":"Limonada","cantidad":1,"subtotal":5000}]},
			{"idComanda":11,"mesaId":4,"meseroId":7,"estado":{"idEstado":9,"nombre":"EN_PREPARACION"},"total":"8000"},
			{"id":12,"mesaId":5,"estado":"lista","fecha":"2026-03-10T12:30:00"}
		]`),
	})
	orders, err := NewOrderRepo(c).ListPending(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, orders, 3)

	assert.Equal(t, int64(10), orders[0].ID)
	assert.Equal(t, entity.OrderPending, orders[0].Status)
	require.Len(t, orders[0].Lines, 2)
	assert.Equal(t, int64(10), orders[0].Lines[0].OrderID)
	assert.Equal(t, "Limonada", orders[0].Lines[1].ProductName)
	assert.Equal(t, "5000", orders[0].Lines[1].UnitPrice.String(), "precio derivado de subtotal/cantidad")

	assert.Equal(t, int64(11), orders[1].ID)
	assert.Equal(t, "7", orders[1].WaiterID)
	assert.Equal(t, entity.OrderPreparing, orders[1].Status)
	assert.Equal(t, "8000", orders[1].Total.String())

	assert.Equal(t, int64(12), orders[2].ID)
	assert.Equal(t, entity.OrderReady, orders[2].Status)
	assert.Equal(t, "Mesa 5", orders[2].TableLabel)
	assert.False(t, orders[2].CreatedAt.IsZero())
}

func TestMesas_EtiquetaPorDefectoYEstado(t *testing.T) {
	c, _ := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/mesas": jsonReply(200, `[{"idMesa":1,"capacidad":4,"estadoId":2},{"idMesa":2,"numeroMesa":"Terraza 2","capacidad":2,"estadoId":3}]`),
	})
	tables, err := NewTableRepo(c).List(context.Background(), "t")
	require.NoError(t, err)
	require.Len(t, tables, 2)
	assert.Equal(t, "Mesa 1", tables[0].Label)
	assert.Equal(t, entity.TableOccupied, tables[0].Status)
	assert.Equal(t, "Terraza 2", tables[1].Label)
	assert.Equal(t, entity.TableReserved, tables[1].Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cuerpos enviados
// ──────────────────────────────────────────────────────────────────────────────

func TestMesas_SetStatusEnviaEstadoID(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"PATCH /api/mesas/7/estado": jsonReply(200, `{}`),
	})
	require.NoError(t, NewTableRepo(c).SetStatus(context.Background(), "t", 7, entity.TableOccupied))

	require.Len(t, calls.all(), 1)
	assert.Equal(t, float64(2), calls.all()[0].Body["estadoId"])
}

func TestComandas_CambioDeEstadoYCocinero(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"PUT /api/comandas/10/cocinero": jsonReply(200, ``),
		"PUT /api/comandas/10/estado":   jsonReply(200, ``),
	})
	repo := NewOrderRepo(c)
	ctx := context.Background()

	require.NoError(t, repo.AssignCook(ctx, "t", 10, "USR-3"))
	require.NoError(t, repo.SetStatus(ctx, "t", 10, entity.OrderPreparing))

	require.Len(t, calls.all(), 2)
	assert.Equal(t, "USR-3", calls.all()[0].Body["id_cocinero"])
	assert.Equal(t, float64(9), calls.all()[1].Body["estado"])
}

func TestComandas_CreateEnviaDetalles(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/comandas": jsonReply(201, `{"comandaId":99,"mesaId":3,"estadoId":4,"total":25000}`),
	})
	order := &entity.Order{
		TableID:  3,
		WaiterID: "USR-1",
		Status:   entity.OrderPending,
		Lines: []entity.OrderLine{
			{ProductID: 1, ProductName: "Bandeja", Quantity: 2},
		},
	}
	created, err := NewOrderRepo(c).Create(context.Background(), "t", order)
	require.NoError(t, err)
	assert.Equal(t, int64(99), created.ID)

	body := calls.all()[0].Body
	assert.Equal(t, float64(4), body["estadoId"])
	assert.Equal(t, "PENDIENTE", body["estadoNombre"])
	detalles, ok := body["detalles"].([]interface{})
	require.True(t, ok)
	require.Len(t, detalles, 1)
	assert.Equal(t, float64(1), detalles[0].(map[string]interface{})["productoId"])
}

func TestUsuarios_ListByRoleYTelefonos(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"GET /api/usuarios/rol/COCINERO":         jsonReply(200, `[{"idUsuario":"USR-3","nombre":"Rosa","email":"rosa@r.co","rolNombre":"COCINERO"}]`),
		"POST /api/usuarios/USR-3/telefonos/5":   jsonReply(200, ``),
		"DELETE /api/usuarios/USR-3/telefonos/5": jsonReply(204, ``),
	})
	repo := NewUserRepo(c)
	ctx := context.Background()

	users, err := repo.ListByRole(ctx, "t", "COCINERO")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, entity.RoleCocinero, users[0].PrimaryRole())

	require.NoError(t, repo.LinkPhone(ctx, "t", "USR-3", 5))
	require.NoError(t, repo.UnlinkPhone(ctx, "t", "USR-3", 5))
	assert.Len(t, calls.all(), 3)
}

func TestAuth_LoginMapeaPerfil(t *testing.T) {
	c, calls := fakeBackend(t, map[string]func(http.ResponseWriter, *http.Request){
		"POST /api/auth/login": jsonReply(200, `{"token":"abc","type":"Bearer","email":"ana@r.co","nombre":"Ana","rol":"MESERO","idUsuario":"USR-1"}`),
	})
	res, err := NewAuthGateway(c).Login(context.Background(), "ana@r.co", "secreto")
	require.NoError(t, err)

	assert.Equal(t, "abc", res.Token)
	assert.Equal(t, "USR-1", res.Profile.UserID)
	assert.Equal(t, "MESERO", res.Profile.Role)
	assert.Equal(t, "", calls.all()[0].Auth, "el login no lleva token")
	assert.Equal(t, "secreto", calls.all()[0].Body["password"])
}
