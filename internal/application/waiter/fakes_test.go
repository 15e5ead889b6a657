package waiter

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// ─── Mesas ──────────────────────────────────────────────────────────────────

type statusCall struct {
	id     int64
	status entity.TableStatus
}

type fakeTables struct {
	tables  map[int64]*entity.Table
	listErr error
	calls   []statusCall
	// setErr decide el error de cada SetStatus según el estado pedido.
	setErr func(entity.TableStatus) error
}

func (f *fakeTables) List(context.Context, string) ([]*entity.Table, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*entity.Table{}
	for _, t := range f.tables {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTables) GetByID(_ context.Context, _ string, id int64) (*entity.Table, error) {
	t, ok := f.tables[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTables) Create(_ context.Context, _ string, t *entity.Table) (*entity.Table, error) {
	return t, nil
}

func (f *fakeTables) Update(_ context.Context, _ string, _ int64, t *entity.Table) (*entity.Table, error) {
	return t, nil
}

func (f *fakeTables) Delete(context.Context, string, int64) error { return nil }

func (f *fakeTables) ListAvailable(ctx context.Context, token string) ([]*entity.Table, error) {
	return f.List(ctx, token)
}

func (f *fakeTables) ListOccupied(ctx context.Context, token string) ([]*entity.Table, error) {
	return f.List(ctx, token)
}

func (f *fakeTables) SetStatus(_ context.Context, _ string, id int64, status entity.TableStatus) error {
	f.calls = append(f.calls, statusCall{id, status})
	if f.setErr != nil {
		if err := f.setErr(status); err != nil {
			return err
		}
	}
	if t, ok := f.tables[id]; ok {
		t.Status = status
	}
	return nil
}

// ─── Comandas ───────────────────────────────────────────────────────────────

type fakeOrders struct {
	mu        sync.Mutex
	active    []*entity.Order
	activeErr error
	byTable   map[int64][]*entity.Order
	lines     map[int64][]entity.OrderLine
	linesErr  map[int64]error
	createErr error
	created   []*entity.Order
}

func (f *fakeOrders) List(context.Context, string) ([]*entity.Order, error) { return f.active, nil }

func (f *fakeOrders) GetByID(_ context.Context, _ string, id int64) (*entity.Order, error) {
	for _, o := range f.active {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (f *fakeOrders) Create(_ context.Context, _ string, o *entity.Order) (*entity.Order, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *o
	cp.ID = int64(100 + len(f.created))
	cp.Lines = nil
	f.created = append(f.created, o)
	return &cp, nil
}

func (f *fakeOrders) Update(_ context.Context, _ string, _ int64, o *entity.Order) (*entity.Order, error) {
	return o, nil
}

func (f *fakeOrders) Delete(context.Context, string, int64) error { return nil }

func (f *fakeOrders) ListMyActive(context.Context, string) ([]*entity.Order, error) {
	return f.active, f.activeErr
}

func (f *fakeOrders) ListMineByTable(_ context.Context, _ string, tableID int64) ([]*entity.Order, error) {
	return f.byTable[tableID], nil
}

func (f *fakeOrders) MyOrderLines(_ context.Context, _ string, orderID int64) ([]entity.OrderLine, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.linesErr[orderID]; err != nil {
		return nil, err
	}
	return f.lines[orderID], nil
}

func (f *fakeOrders) ListPending(context.Context, string) ([]*entity.Order, error)   { return nil, nil }
func (f *fakeOrders) ListPreparing(context.Context, string) ([]*entity.Order, error) { return nil, nil }
func (f *fakeOrders) ListToday(context.Context, string) ([]*entity.Order, error)     { return nil, nil }

func (f *fakeOrders) SetStatus(context.Context, string, int64, entity.OrderStatus) error {
	return nil
}

func (f *fakeOrders) AssignCook(context.Context, string, int64, string) error { return nil }

// ─── Productos y categorías ─────────────────────────────────────────────────

type fakeProducts struct {
	products map[int64]*entity.Product
}

func (f *fakeProducts) List(context.Context, string) ([]*entity.Product, error) {
	out := []*entity.Product{}
	for _, p := range f.products {
		out = append(out, p)
	}
	return out, nil
}

func (f *fakeProducts) GetByID(_ context.Context, _ string, id int64) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Create(_ context.Context, _ string, p *entity.Product) (*entity.Product, error) {
	return p, nil
}

func (f *fakeProducts) Update(_ context.Context, _ string, _ int64, p *entity.Product) (*entity.Product, error) {
	return p, nil
}

func (f *fakeProducts) Delete(context.Context, string, int64) error { return nil }

func (f *fakeProducts) AdjustStock(context.Context, string, int64, int, entity.StockOperation) (*entity.Product, error) {
	return nil, errors.New("no usado")
}

func (f *fakeProducts) SetActive(context.Context, string, int64, bool) (*entity.Product, error) {
	return nil, errors.New("no usado")
}

type fakeCategories struct{}

func (fakeCategories) List(context.Context, string) ([]*entity.Category, error) {
	return []*entity.Category{{ID: 1, Name: "Bebidas"}}, nil
}

func (fakeCategories) GetByID(context.Context, string, int64) (*entity.Category, error) {
	return nil, domain.ErrNotFound
}

func (fakeCategories) Create(_ context.Context, _ string, c *entity.Category) (*entity.Category, error) {
	return c, nil
}

func (fakeCategories) Update(_ context.Context, _ string, _ int64, c *entity.Category) (*entity.Category, error) {
	return c, nil
}

func (fakeCategories) Delete(context.Context, string, int64) error { return nil }

// ─── Carritos, compensaciones, eventos ──────────────────────────────────────

type fakeCarts struct {
	carts map[int64]*cart.Cart
}

func (f *fakeCarts) Get(_ context.Context, _ string, tableID int64) (*cart.Cart, error) {
	c, ok := f.carts[tableID]
	if !ok {
		return cart.New(tableID), nil
	}
	cp := cart.New(tableID)
	for _, l := range c.Lines {
		line := *l
		cp.Lines = append(cp.Lines, &line)
	}
	return cp, nil
}

func (f *fakeCarts) Save(_ context.Context, _ string, c *cart.Cart) error {
	f.carts[c.TableID] = c
	return nil
}

func (f *fakeCarts) Delete(_ context.Context, _ string, tableID int64) error {
	delete(f.carts, tableID)
	return nil
}

func (f *fakeCarts) DeleteSession(context.Context, string) error {
	f.carts = map[int64]*cart.Cart{}
	return nil
}

type fakeCompensations struct {
	saved []*entity.PendingCompensation
}

func (f *fakeCompensations) Save(_ context.Context, p *entity.PendingCompensation) error {
	f.saved = append(f.saved, p)
	return nil
}

func (f *fakeCompensations) GetByID(context.Context, string) (*entity.PendingCompensation, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeCompensations) ListUnresolved(context.Context) ([]*entity.PendingCompensation, error) {
	return f.saved, nil
}

func (f *fakeCompensations) Update(context.Context, *entity.PendingCompensation) error { return nil }

type published struct {
	subject string
	payload interface{}
}

type fakeEvents struct {
	mu   sync.Mutex
	sent []published
	err  error
}

func (f *fakeEvents) Publish(_ context.Context, subject string, payload interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, published{subject, payload})
	return f.err
}
