package usecase

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeResource[T any, ID comparable] struct {
	created   []*T
	updated   map[ID]*T
	deleted   []ID
	deleteErr error
	get       *T
}

func (f *fakeResource[T, ID]) List(context.Context, string) ([]*T, error) { return f.created, nil }

func (f *fakeResource[T, ID]) GetByID(context.Context, string, ID) (*T, error) {
	if f.get == nil {
		return nil, domain.ErrNotFound
	}
	return f.get, nil
}

func (f *fakeResource[T, ID]) Create(_ context.Context, _ string, v *T) (*T, error) {
	f.created = append(f.created, v)
	return v, nil
}

func (f *fakeResource[T, ID]) Update(_ context.Context, _ string, id ID, v *T) (*T, error) {
	if f.updated == nil {
		f.updated = map[ID]*T{}
	}
	f.updated[id] = v
	return v, nil
}

func (f *fakeResource[T, ID]) Delete(_ context.Context, _ string, id ID) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

type stockCall struct {
	id  int64
	qty int
	op  entity.StockOperation
}

type fakeProducts struct {
	fakeResource[entity.Product, int64]
	stock  []stockCall
	active []bool
}

func (f *fakeProducts) AdjustStock(_ context.Context, _ string, id int64, qty int, op entity.StockOperation) (*entity.Product, error) {
	f.stock = append(f.stock, stockCall{id, qty, op})
	return &entity.Product{ID: id, Stock: qty}, nil
}

func (f *fakeProducts) SetActive(_ context.Context, _ string, id int64, active bool) (*entity.Product, error) {
	f.active = append(f.active, active)
	return &entity.Product{ID: id, Active: active}, nil
}

type fakeUsers struct {
	fakeResource[entity.User, string]
	linked []int64
	role   string
}

func (f *fakeUsers) ListByRole(_ context.Context, _ string, role string) ([]*entity.User, error) {
	f.role = role
	return []*entity.User{{ID: "USR-2", Name: "Carlos", Roles: []entity.Role{{Name: role}}}}, nil
}

func (f *fakeUsers) LinkPhone(_ context.Context, _ string, _ string, phoneID int64) error {
	f.linked = append(f.linked, phoneID)
	return nil
}

func (f *fakeUsers) UnlinkPhone(context.Context, string, string, int64) error { return nil }

func admin() *entity.Session {
	return &entity.Session{ID: "s1", Token: "tok", Profile: &entity.Profile{UserID: "USR-A", Role: "ADMIN"}}
}

// ─── Recurso genérico ───────────────────────────────────────────────────────

func TestResource_CrearValida(t *testing.T) {
	repo := &fakeResource[entity.Category, int64]{}
	uc := NewResourceUseCase[entity.Category, int64]("categoria", repo, categoryFromRequest, dto.FromCategory, nil)

	_, err := uc.Create(context.Background(), admin(), dto.CategoryRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, repo.created)

	out, err := uc.Create(context.Background(), admin(), dto.CategoryRequest{Name: " Bebidas ", Description: "Frías"})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", out.Name)
	require.Len(t, repo.created, 1)
}

func TestResource_EliminarPideConfirmacion(t *testing.T) {
	repo := &fakeResource[entity.Table, int64]{}
	uc := NewResourceUseCase[entity.Table, int64]("mesa", repo, tableFromRequest, dto.FromTable, nil)

	_, err := uc.Delete(context.Background(), admin(), 4, false)
	var ce *domain.ConfirmationRequiredError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "mesa.eliminar", ce.Action)
	assert.Empty(t, repo.deleted)

	out, err := uc.Delete(context.Background(), admin(), 4, true)
	require.NoError(t, err)
	assert.True(t, out.Deleted)
	assert.False(t, out.AlreadyRemoved)
	assert.Equal(t, []int64{4}, repo.deleted)
}

func TestResource_EliminarInexistenteEsExito(t *testing.T) {
	repo := &fakeResource[entity.Table, int64]{deleteErr: domain.ErrNotFound}
	uc := NewResourceUseCase[entity.Table, int64]("mesa", repo, tableFromRequest, dto.FromTable, nil)

	out, err := uc.Delete(context.Background(), admin(), 4, true)
	require.NoError(t, err)
	assert.True(t, out.AlreadyRemoved)
}

func TestResource_EliminarOtroErrorSePropaga(t *testing.T) {
	repo := &fakeResource[entity.Table, int64]{deleteErr: domain.ErrConflict}
	uc := NewResourceUseCase[entity.Table, int64]("mesa", repo, tableFromRequest, dto.FromTable, nil)

	_, err := uc.Delete(context.Background(), admin(), 4, true)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

// ─── Conversiones ───────────────────────────────────────────────────────────

func TestTableFromRequest(t *testing.T) {
	tb, err := tableFromRequest(dto.TableRequest{Label: "Mesa 9", Capacity: 4})
	require.NoError(t, err)
	assert.Equal(t, entity.TableAvailable, tb.Status)

	tb, err = tableFromRequest(dto.TableRequest{Label: "Mesa 9", Capacity: 4, Status: "reservada"})
	require.NoError(t, err)
	assert.Equal(t, entity.TableReserved, tb.Status)

	_, err = tableFromRequest(dto.TableRequest{Status: "9"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOrderLineFromRequest_CalculaSubtotal(t *testing.T) {
	l, err := orderLineFromRequest(dto.OrderLineRequest{OrderID: 1, ProductID: 2, Quantity: 3, UnitPrice: decimal.NewFromInt(4500)})
	require.NoError(t, err)
	assert.True(t, l.Subtotal.Equal(decimal.NewFromInt(13500)))

	_, err = orderLineFromRequest(dto.OrderLineRequest{OrderID: 1, ProductID: 2, Quantity: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestPhoneFromRequest(t *testing.T) {
	p, err := phoneFromRequest(dto.PhoneRequest{Number: " +57 300-123 4567 "})
	require.NoError(t, err)
	assert.Equal(t, "+57 300-123 4567", p.Number)

	_, err = phoneFromRequest(dto.PhoneRequest{Number: "llámame"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserFromRequest(t *testing.T) {
	u, err := userFromRequest(dto.UserRequest{Name: "Ana", Email: "ana@restaurante.co", Password: "secreto", RoleIDs: []int64{2}})
	require.NoError(t, err)
	assert.Equal(t, []entity.Role{{ID: 2}}, u.Roles)

	_, err = userFromRequest(dto.UserRequest{Name: "Ana", Email: "no-es-email"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = userFromRequest(dto.UserRequest{Name: "Ana", Email: "ana@restaurante.co", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Productos ──────────────────────────────────────────────────────────────

func TestProduct_AjusteDeStock(t *testing.T) {
	repo := &fakeProducts{}
	uc := NewProductUseCase(repo, nil)

	_, err := uc.AdjustStock(context.Background(), admin(), 5, dto.StockRequest{Quantity: 3, Operation: "sumar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.AdjustStock(context.Background(), admin(), 5, dto.StockRequest{Quantity: 0, Operation: "aumentar"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AdjustStock(context.Background(), admin(), 5, dto.StockRequest{Quantity: 3, Operation: " Reducir "})
	require.NoError(t, err)
	assert.Equal(t, []stockCall{{5, 3, entity.StockDecrease}}, repo.stock)
}

func TestProduct_ToggleInvierteEstado(t *testing.T) {
	repo := &fakeProducts{}
	repo.get = &entity.Product{ID: 5, Active: true, Price: decimal.NewFromInt(1000)}
	uc := NewProductUseCase(repo, nil)

	out, err := uc.Toggle(context.Background(), admin(), 5)
	require.NoError(t, err)
	assert.False(t, out.Active)
	assert.Equal(t, []bool{false}, repo.active)
}

func TestProduct_CrearActivoPorDefecto(t *testing.T) {
	repo := &fakeProducts{}
	uc := NewProductUseCase(repo, nil)

	out, err := uc.Create(context.Background(), admin(), dto.ProductRequest{Name: "Arepa", Price: decimal.NewFromInt(3500)})
	require.NoError(t, err)
	assert.True(t, out.Active)
	assert.Equal(t, "$3.500", out.PriceDisplay)

	_, err = uc.Create(context.Background(), admin(), dto.ProductRequest{Name: "Arepa", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Usuarios ───────────────────────────────────────────────────────────────

func TestUser_ListarPorRolNormaliza(t *testing.T) {
	repo := &fakeUsers{}
	uc := NewUserUseCase(repo, nil)

	out, err := uc.ListByRole(context.Background(), admin(), "cocinero")
	require.NoError(t, err)
	assert.Equal(t, "COCINERO", repo.role)
	require.Len(t, out, 1)
	assert.Equal(t, "COCINERO", out[0].Role)

	require.NoError(t, uc.LinkPhone(context.Background(), admin(), "USR-2", 7))
	assert.Equal(t, []int64{7}, repo.linked)
}

func TestCatalog_ConstruyeLosNueveRecursos(t *testing.T) {
	c := NewCatalogUseCase(CatalogRepos{
		Tables:     nil,
		Products:   &fakeProducts{},
		Users:      &fakeUsers{},
		Categories: &fakeResource[entity.Category, int64]{},
	}, nil)
	assert.Equal(t, "mesa", c.Tables.Name())
	assert.Equal(t, "producto", c.Products.Name())
	assert.Equal(t, "usuario", c.Users.Name())
	assert.Equal(t, "detalle", c.OrderLines.Name())
}
