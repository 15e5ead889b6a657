package waiter

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/application/saga"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/event"
)

// ─── Helpers ────────────────────────────────────────────────────────────────

type fixture struct {
	uc            *WaiterUseCase
	tables        *fakeTables
	orders        *fakeOrders
	carts         *fakeCarts
	compensations *fakeCompensations
	events        *fakeEvents
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		tables: &fakeTables{tables: map[int64]*entity.Table{
			1: {ID: 1, Label: "Mesa 1", Capacity: 4, Status: entity.TableAvailable},
			2: {ID: 2, Label: "Mesa 2", Capacity: 2, Status: entity.TableOccupied},
			3: {ID: 3, Label: "Terraza", Capacity: 6, Status: entity.TableReserved},
		}},
		orders:        &fakeOrders{byTable: map[int64][]*entity.Order{}, lines: map[int64][]entity.OrderLine{}, linesErr: map[int64]error{}},
		carts:         &fakeCarts{carts: map[int64]*cart.Cart{}},
		compensations: &fakeCompensations{},
		events:        &fakeEvents{},
	}
	products := &fakeProducts{products: map[int64]*entity.Product{
		10: {ID: 10, Name: "Bandeja paisa", Description: "Fríjoles y chicharrón", Price: decimal.NewFromInt(10000), Active: true, CategoryID: 2},
		11: {ID: 11, Name: "Limonada", Description: "Natural", Price: decimal.NewFromInt(5000), Active: true, CategoryID: 1},
		12: {ID: 12, Name: "Ajiaco", Price: decimal.NewFromInt(18000), Active: false, CategoryID: 2},
	}}
	f.uc = NewWaiterUseCase(Deps{
		Tables:        f.tables,
		Orders:        f.orders,
		Products:      products,
		Categories:    fakeCategories{},
		Carts:         f.carts,
		Compensations: f.compensations,
		Events:        f.events,
		TipPercent:    10,
	})
	return f
}

func session() *entity.Session {
	return &entity.Session{ID: "s1", Token: "tok", Profile: &entity.Profile{UserID: "USR-1", Name: "Ana", Role: "MESERO"}}
}

func fillCart(t *testing.T, f *fixture, tableID int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.uc.AddToCart(ctx, session(), tableID, dto.AddCartItemRequest{ProductID: 10, Quantity: 2})
	require.NoError(t, err)
	_, err = f.uc.AddToCart(ctx, session(), tableID, dto.AddCartItemRequest{ProductID: 11, Quantity: 1, Note: "sin azúcar"})
	require.NoError(t, err)
}

func line(orderID, productID int64, qty int, price int64) entity.OrderLine {
	return entity.OrderLine{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  qty,
		UnitPrice: decimal.NewFromInt(price),
		Subtotal:  decimal.NewFromInt(price * int64(qty)),
	}
}

// ─── Dashboard ──────────────────────────────────────────────────────────────

func TestDashboard_Estadisticas(t *testing.T) {
	f := newFixture(t)
	f.orders.active = []*entity.Order{
		{ID: 1, TableID: 1, Status: entity.OrderPending, Total: decimal.NewFromInt(10000)},
		{ID: 2, TableID: 1, Status: entity.OrderPreparing, Total: decimal.NewFromInt(5000)},
		{ID: 3, TableID: 2, Status: entity.OrderReady, Total: decimal.NewFromInt(20000)},
		{ID: 4, TableID: 3, Status: entity.OrderDelivered, Total: decimal.NewFromInt(99000)},
	}

	out, err := f.uc.Dashboard(context.Background(), session())
	require.NoError(t, err)
	assert.Len(t, out.Tables, 3)
	assert.Len(t, out.ActiveOrders, 3, "las entregadas no son activas")
	assert.Equal(t, 2, out.Stats.TablesServed)
	assert.Equal(t, 2, out.Stats.Pending)
	assert.Equal(t, 1, out.Stats.Completed)
	assert.True(t, out.Stats.TotalSold.Equal(decimal.NewFromInt(35000)))
	assert.Empty(t, out.Warnings)
}

func TestDashboard_FallaDeComandasNoBloqueaMesas(t *testing.T) {
	f := newFixture(t)
	f.orders.activeErr = domain.ErrUnavailable

	out, err := f.uc.Dashboard(context.Background(), session())
	require.NoError(t, err)
	assert.Len(t, out.Tables, 3)
	assert.Empty(t, out.ActiveOrders)
	assert.NotEmpty(t, out.Warnings)
}

func TestDashboard_FallaDeMesas(t *testing.T) {
	f := newFixture(t)
	f.tables.listErr = domain.ErrUnavailable

	_, err := f.uc.Dashboard(context.Background(), session())
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// ─── Estado de mesa ─────────────────────────────────────────────────────────

func TestChangeTableStatus_SinCambioNoLlamaAlBackend(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.ChangeTableStatus(context.Background(), session(), 1, "disponible", false)
	require.NoError(t, err)
	assert.Equal(t, "DISPONIBLE", out.Status)
	assert.Empty(t, f.tables.calls)
}

func TestChangeTableStatus_MesaOcupadaRechazada(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ChangeTableStatus(context.Background(), session(), 2, "3", true)
	assert.ErrorIs(t, err, domain.ErrTableOccupied)
	assert.Empty(t, f.tables.calls)
}

func TestChangeTableStatus_RequiereConfirmacion(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ChangeTableStatus(context.Background(), session(), 1, "RESERVADA", false)
	var ce *domain.ConfirmationRequiredError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "mesa.estado", ce.Action)
	assert.Empty(t, f.tables.calls)

	out, err := f.uc.ChangeTableStatus(context.Background(), session(), 1, "RESERVADA", true)
	require.NoError(t, err)
	assert.Equal(t, 3, out.StatusCode)
	assert.Equal(t, []statusCall{{1, entity.TableReserved}}, f.tables.calls)
}

func TestChangeTableStatus_EstadoInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.ChangeTableStatus(context.Background(), session(), 1, "rota", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ─── Catálogo y carrito ─────────────────────────────────────────────────────

func TestFilterProducts_CategoriaYBusqueda(t *testing.T) {
	f := newFixture(t)
	out, err := f.uc.Products(context.Background(), session(), dto.ProductFilter{CategoryID: 2, Search: "FRÍJOLES"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bandeja paisa", out[0].Name)

	out, err = f.uc.Products(context.Background(), session(), dto.ProductFilter{CategoryID: 2, OnlyActive: true})
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestCart_TotalesConPropina(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)

	c, err := f.uc.Cart(context.Background(), session(), 1)
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)
	assert.Equal(t, "sin azúcar", c.Lines[1].Note)
	assert.True(t, c.Totals.Subtotal.Equal(decimal.NewFromInt(25000)))
	assert.True(t, c.Totals.Tip.Equal(decimal.NewFromInt(2500)))
	assert.True(t, c.Totals.GrandTotal.Equal(decimal.NewFromInt(27500)))
	assert.Equal(t, "$27.500", c.Totals.GrandTotalDisplay)
}

func TestCart_AgregarExistenteIncrementa(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)
	c, err := f.uc.AddToCart(context.Background(), session(), 1, dto.AddCartItemRequest{ProductID: 10})
	require.NoError(t, err)
	require.Len(t, c.Lines, 2)
	assert.Equal(t, 3, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].Subtotal.Equal(decimal.NewFromInt(30000)))
}

func TestCart_DisminuirNoBajaDeUno(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)
	c, err := f.uc.UpdateCartItem(context.Background(), session(), 1, 10, dto.UpdateCartItemRequest{Action: "decrease"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Empty(t, c.Warnings)

	c, err = f.uc.UpdateCartItem(context.Background(), session(), 1, 10, dto.UpdateCartItemRequest{Action: "decrease"})
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.True(t, c.Lines[0].Subtotal.Equal(decimal.NewFromInt(10000)))
	assert.Equal(t, []string{"La cantidad mínima es 1"}, c.Warnings)

	c, err = f.uc.Cart(context.Background(), session(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Lines[0].Quantity)
	assert.Empty(t, c.Warnings, "el aviso no se guarda con el carrito")
}

func TestCart_ProductoInactivo(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.AddToCart(context.Background(), session(), 1, dto.AddCartItemRequest{ProductID: 12})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCart_EliminarYLimpiar(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)

	c, err := f.uc.RemoveCartItem(context.Background(), session(), 1, 10)
	require.NoError(t, err)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, int64(11), c.Lines[0].ProductID)

	_, err = f.uc.ClearCart(context.Background(), session(), 1, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)

	c, err = f.uc.ClearCart(context.Background(), session(), 1, true)
	require.NoError(t, err)
	assert.Empty(t, c.Lines)
}

// ─── Envío de comanda ───────────────────────────────────────────────────────

func TestSubmitOrder_OcupaMesaYCreaComanda(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)

	out, err := f.uc.SubmitOrder(context.Background(), session(), 1, dto.SubmitOrderRequest{CookID: "USR-9", CookName: "Luis"})
	require.NoError(t, err)
	assert.Equal(t, []statusCall{{1, entity.TableOccupied}}, f.tables.calls)
	require.Len(t, f.orders.created, 1)
	created := f.orders.created[0]
	assert.Equal(t, entity.OrderPending, created.Status)
	assert.Equal(t, "USR-1", created.WaiterID)
	assert.Equal(t, "Ana", created.WaiterName)
	assert.Equal(t, "USR-9", created.CookID)
	assert.Equal(t, "Luis", created.CookName)
	assert.Len(t, created.Lines, 2)
	assert.Equal(t, "25000", created.Total.String(), "el total enviado es la suma de los subtotales")
	assert.Equal(t, "25000", out.Total.String())

	assert.Equal(t, "PENDIENTE", out.Status)
	assert.Len(t, out.Lines, 2, "las líneas del carrito se conservan si el backend no las devuelve")
	assert.NotContains(t, f.carts.carts, int64(1), "el carrito se vacía")

	require.Len(t, f.events.sent, 1)
	assert.Equal(t, event.SubjectOrderSubmitted, f.events.sent[0].subject)
}

func TestSubmitOrder_FallaCreacionRevierteMesa(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)
	f.orders.createErr = domain.ErrInvalidInput

	_, err := f.uc.SubmitOrder(context.Background(), session(), 1, dto.SubmitOrderRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrPartialFailure)
	assert.Equal(t, []statusCall{{1, entity.TableOccupied}, {1, entity.TableAvailable}}, f.tables.calls)
	assert.Empty(t, f.compensations.saved)
	assert.Contains(t, f.carts.carts, int64(1), "el carrito se conserva para reintentar")
	assert.Empty(t, f.events.sent)
}

func TestSubmitOrder_FallaLaReversionQuedaPendiente(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 1)
	f.orders.createErr = domain.ErrUnavailable
	f.tables.setErr = func(s entity.TableStatus) error {
		if s == entity.TableAvailable {
			return errors.New("timeout")
		}
		return nil
	}

	_, err := f.uc.SubmitOrder(context.Background(), session(), 1, dto.SubmitOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrPartialFailure)
	var execErr *saga.ExecutionError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, []string{stepOccupyTable}, execErr.NotCompensated)

	require.Len(t, f.compensations.saved, 1)
	p := f.compensations.saved[0]
	assert.Equal(t, entity.CompensationRevertTable, p.Kind)
	assert.Equal(t, int64(1), p.ResourceID)
	assert.Equal(t, 1, p.TargetStatus)
	assert.False(t, p.Resolved())
}

func TestSubmitOrder_MesaYaOcupadaNoSeCambia(t *testing.T) {
	f := newFixture(t)
	fillCart(t, f, 2)
	f.orders.createErr = domain.ErrConflict

	_, err := f.uc.SubmitOrder(context.Background(), session(), 2, dto.SubmitOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Empty(t, f.tables.calls, "una mesa ya ocupada no se toca ni se revierte")
}

func TestSubmitOrder_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.SubmitOrder(context.Background(), session(), 1, dto.SubmitOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrEmptyCart)
	assert.Empty(t, f.tables.calls)
}

// ─── Cuenta ─────────────────────────────────────────────────────────────────

func TestBill_SoloComandasActivasYLineasPropias(t *testing.T) {
	f := newFixture(t)
	f.orders.byTable[2] = []*entity.Order{
		{ID: 7, TableID: 2, Status: entity.OrderReady, Total: decimal.NewFromInt(1)},
		{ID: 8, TableID: 2, Status: entity.OrderPreparing, Total: decimal.NewFromInt(5000)},
		{ID: 9, TableID: 2, Status: entity.OrderCancelled, Total: decimal.NewFromInt(70000)},
	}
	f.orders.lines[7] = []entity.OrderLine{line(7, 10, 2, 10000), line(99, 11, 1, 5000)}
	f.orders.linesErr[8] = domain.ErrUnavailable

	out, err := f.uc.Bill(context.Background(), session(), 2)
	require.NoError(t, err)
	require.Len(t, out.Orders, 2)
	assert.Len(t, out.Orders[0].Lines, 1, "solo las líneas de la comanda 7")
	assert.True(t, out.Totals.Subtotal.Equal(decimal.NewFromInt(25000)), "20000 por líneas + 5000 informado")
	assert.True(t, out.Totals.Tip.Equal(decimal.NewFromInt(2500)))
	assert.False(t, out.CanClose)
	assert.Equal(t, []int64{8}, out.PendingOrderIDs)
}

func TestCloseBill_ComandasNoListas(t *testing.T) {
	f := newFixture(t)
	f.orders.byTable[2] = []*entity.Order{
		{ID: 7, TableID: 2, Status: entity.OrderReady},
		{ID: 8, TableID: 2, Status: entity.OrderPreparing},
	}
	_, err := f.uc.CloseBill(context.Background(), session(), 2, true)
	assert.ErrorIs(t, err, domain.ErrOrdersNotReady)
	assert.Empty(t, f.tables.calls)
}

func TestCloseBill_SinComandas(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CloseBill(context.Background(), session(), 2, true)
	assert.ErrorIs(t, err, domain.ErrNoActiveOrders)
}

func TestCloseBill_LiberaMesa(t *testing.T) {
	f := newFixture(t)
	f.orders.byTable[2] = []*entity.Order{
		{ID: 7, TableID: 2, Status: entity.OrderReady, Total: decimal.NewFromInt(25000)},
	}

	_, err := f.uc.CloseBill(context.Background(), session(), 2, false)
	assert.ErrorIs(t, err, domain.ErrConfirmationRequired)
	assert.Empty(t, f.tables.calls)

	out, err := f.uc.CloseBill(context.Background(), session(), 2, true)
	require.NoError(t, err)
	assert.Equal(t, []statusCall{{2, entity.TableAvailable}}, f.tables.calls)
	assert.Equal(t, "DISPONIBLE", out.Table.Status)
	assert.Equal(t, "$27.500", out.Totals.GrandTotalDisplay)

	require.Len(t, f.events.sent, 1)
	ev, ok := f.events.sent[0].payload.(event.TableClosedEvent)
	require.True(t, ok)
	assert.Equal(t, []int64{7}, ev.OrderIDs)
	assert.Equal(t, "27500", ev.Total)
}

func TestCloseBill_FallaDePublicacionNoFallaElCierre(t *testing.T) {
	f := newFixture(t)
	f.events.err = errors.New("nats caído")
	f.orders.byTable[2] = []*entity.Order{{ID: 7, TableID: 2, Status: entity.OrderReady}}

	_, err := f.uc.CloseBill(context.Background(), session(), 2, true)
	assert.NoError(t, err)
}
