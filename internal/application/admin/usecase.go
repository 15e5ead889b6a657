// Package admin tablero del administrador y resolución de compensaciones pendientes.
package admin

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
	"github.com/jhoicas/comandas-bff/pkg/money"
)

// Repos repositorios que consulta el tablero.
type Repos struct {
	Tables        repository.TableRepository
	Categories    repository.CategoryRepository
	Products      repository.ProductRepository
	States        repository.StateRepository
	Roles         repository.RoleRepository
	Phones        repository.PhoneRepository
	Users         repository.UserRepository
	Orders        repository.OrderRepository
	OrderLines    repository.OrderLineRepository
	Compensations repository.CompensationRepository
}

// AdminUseCase operaciones del rol ADMIN que no son CRUD.
type AdminUseCase struct {
	r   Repos
	log *logger.Logger
	now func() time.Time
}

// NewAdminUseCase construye el caso de uso.
func NewAdminUseCase(r Repos, log *logger.Logger) *AdminUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AdminUseCase{r: r, log: log.Named("admin"), now: time.Now}
}

// Dashboard cuenta los nueve recursos en paralelo y resume mesas y comandas. Si falla la consulta
// de mesas o de comandas el tablero falla; los demás conteos se reportan como avisos.
func (uc *AdminUseCase) Dashboard(ctx context.Context, s *entity.Session) (*dto.AdminDashboardResponse, error) {
	token := s.BearerToken()
	out := &dto.AdminDashboardResponse{
		TablesByStatus: map[string]int{},
		OrdersByStatus: map[string]int{},
	}
	var (
		mu      sync.Mutex
		tables  []*entity.Table
		orders  []*entity.Order
		today   []*entity.Order
		todayOK bool // sin /comandas/hoy se calcula a partir de todas las comandas
	)
	warn := func(what string, err error) {
		uc.log.Warn().Err(err).Str("resource", what).Msg("no se pudo contar el recurso")
		mu.Lock()
		out.Warnings = append(out.Warnings, fmt.Sprintf("No se pudo cargar %s", what))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ts, err := uc.r.Tables.List(gctx, token)
		if err != nil {
			return fmt.Errorf("admin: mesas: %w", err)
		}
		tables = ts
		return nil
	})
	g.Go(func() error {
		os, err := uc.r.Orders.List(gctx, token)
		if err != nil {
			return fmt.Errorf("admin: comandas: %w", err)
		}
		orders = os
		return nil
	})
	g.Go(func() error {
		os, err := uc.r.Orders.ListToday(gctx, token)
		if err != nil {
			warn("comandas de hoy", err)
			return nil
		}
		today, todayOK = os, true
		return nil
	})
	count := func(what string, dst *int, list func(context.Context, string) (int, error)) {
		g.Go(func() error {
			n, err := list(gctx, token)
			if err != nil {
				warn(what, err)
				return nil
			}
			*dst = n
			return nil
		})
	}
	count("categorías", &out.Counts.Categories, lenOf(uc.r.Categories.List))
	count("productos", &out.Counts.Products, lenOf(uc.r.Products.List))
	count("estados", &out.Counts.States, lenOf(uc.r.States.List))
	count("roles", &out.Counts.Roles, lenOf(uc.r.Roles.List))
	count("teléfonos", &out.Counts.Phones, lenOf(uc.r.Phones.List))
	count("usuarios", &out.Counts.Users, lenOf(uc.r.Users.List))
	count("detalles de comanda", &out.Counts.OrderLines, lenOf(uc.r.OrderLines.List))

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Counts.Tables = len(tables)
	for _, t := range tables {
		out.TablesByStatus[t.Status.Label()]++
	}
	out.Counts.Orders = len(orders)
	for _, o := range orders {
		out.OrdersByStatus[o.Status.Label()]++
		if o.Status.Active() {
			out.ActiveOrders++
		}
		if o.Status == entity.OrderPending {
			out.PendingOrders++
		}
	}

	if !todayOK {
		now := uc.now()
		for _, o := range orders {
			if o.CreatedToday(now) {
				today = append(today, o)
			}
		}
	}
	out.TodayOrders = len(today)
	out.TodaySales = decimal.Zero
	for _, o := range today {
		if o.Status != entity.OrderCancelled {
			out.TodaySales = out.TodaySales.Add(o.DisplayTotal())
		}
	}
	out.TodaySalesDisplay = money.FormatCOP(out.TodaySales)

	if uc.r.Compensations != nil {
		pending, err := uc.r.Compensations.ListUnresolved(ctx)
		if err != nil {
			warn("compensaciones pendientes", err)
		}
		out.PendingFixes = len(pending)
	}
	return out, nil
}

func lenOf[T any](list func(context.Context, string) ([]*T, error)) func(context.Context, string) (int, error) {
	return func(ctx context.Context, token string) (int, error) {
		items, err := list(ctx, token)
		return len(items), err
	}
}

// Compensations compensaciones sin resolver.
func (uc *AdminUseCase) Compensations(ctx context.Context) ([]dto.PendingCompensationResponse, error) {
	if uc.r.Compensations == nil {
		return []dto.PendingCompensationResponse{}, nil
	}
	items, err := uc.r.Compensations.ListUnresolved(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingCompensationResponse, 0, len(items))
	for _, p := range items {
		out = append(out, dto.FromCompensation(p))
	}
	return out, nil
}

// RetryCompensation vuelve a aplicar la compensación (revertir la mesa) con el token del
// administrador. Si tiene éxito queda resuelta; si no, se suma el intento.
func (uc *AdminUseCase) RetryCompensation(ctx context.Context, s *entity.Session, id string) (*dto.PendingCompensationResponse, error) {
	if uc.r.Compensations == nil {
		return nil, domain.ErrNotFound
	}
	p, err := uc.r.Compensations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Resolved() {
		return nil, domain.WithMessage(domain.ErrConflict, "La compensación ya fue resuelta")
	}
	if p.Kind != entity.CompensationRevertTable {
		return nil, domain.WithMessage(domain.ErrInvalidInput, fmt.Sprintf("Tipo de compensación no soportado: %s", p.Kind))
	}

	p.Attempts++
	applyErr := uc.r.Tables.SetStatus(ctx, s.BearerToken(), p.ResourceID, entity.TableStatusFromCode(p.TargetStatus))
	if applyErr != nil {
		p.Cause = applyErr.Error()
	} else {
		now := uc.now()
		p.ResolvedAt = &now
	}
	if err := uc.r.Compensations.Update(ctx, p); err != nil {
		return nil, err
	}
	if applyErr != nil {
		uc.log.Warn().Err(applyErr).Str("compensation_id", p.ID).Int("attempts", p.Attempts).Msg("reintento de compensación falló")
		return nil, applyErr
	}
	uc.log.Info().Str("compensation_id", p.ID).Int64("table_id", p.ResourceID).Msg("compensación resuelta")
	out := dto.FromCompensation(p)
	return &out, nil
}
