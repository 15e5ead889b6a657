// Package kitchen casos de uso del cocinero: cola de comandas, preparación y entrega a sala.
package kitchen

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/internal/application/saga"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/event"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

const (
	stepAssignCook     = "asignar-cocinero"
	stepStartPreparing = "iniciar-preparacion"
)

// KitchenUseCase operaciones del rol COCINERO.
type KitchenUseCase struct {
	orders repository.OrderRepository
	lines  repository.OrderLineRepository
	events ports.EventPublisher
	log    *logger.Logger
	now    func() time.Time
}

// NewKitchenUseCase construye el caso de uso. events puede ser nil.
func NewKitchenUseCase(orders repository.OrderRepository, lines repository.OrderLineRepository, events ports.EventPublisher, log *logger.Logger) *KitchenUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &KitchenUseCase{orders: orders, lines: lines, events: events, log: log.Named("cocina"), now: time.Now}
}

type queue struct {
	pending   []*entity.Order
	preparing []*entity.Order
	warnings  []string
}

// loadQueue trae pendientes y en preparación en paralelo. Si falla la segunda consulta se
// sigue con las pendientes y un aviso; las líneas se asignan a cada comanda por su id.
func (uc *KitchenUseCase) loadQueue(ctx context.Context, token string) (*queue, error) {
	type result struct {
		orders []*entity.Order
		err    error
	}
	type linesResult struct {
		lines []*entity.OrderLine
		err   error
	}
	pendingCh := make(chan result, 1)
	preparingCh := make(chan result, 1)
	linesCh := make(chan linesResult, 1)

	go func() {
		os, err := uc.orders.ListPending(ctx, token)
		pendingCh <- result{os, err}
	}()
	go func() {
		os, err := uc.orders.ListPreparing(ctx, token)
		preparingCh <- result{os, err}
	}()
	go func() {
		ls, err := uc.lines.List(ctx, token)
		linesCh <- linesResult{ls, err}
	}()

	pending := <-pendingCh
	preparing := <-preparingCh
	lines := <-linesCh

	if pending.err != nil {
		return nil, fmt.Errorf("cocina: comandas pendientes: %w", pending.err)
	}
	q := &queue{pending: byStatus(pending.orders, entity.OrderPending)}
	if preparing.err != nil {
		uc.log.Warn().Err(preparing.err).Msg("no se pudieron cargar las comandas en preparación")
		q.warnings = append(q.warnings, "No se pudieron cargar las comandas en preparación")
	} else {
		q.preparing = byStatus(preparing.orders, entity.OrderPreparing, entity.OrderReady)
	}
	if lines.err != nil {
		uc.log.Warn().Err(lines.err).Msg("no se pudo cargar el detalle de las comandas")
		q.warnings = append(q.warnings, "No se pudo cargar el detalle de las comandas")
	} else {
		attachLines(append(append([]*entity.Order{}, q.pending...), q.preparing...), lines.lines)
	}
	return q, nil
}

func byStatus(orders []*entity.Order, statuses ...entity.OrderStatus) []*entity.Order {
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o == nil {
			continue
		}
		for _, s := range statuses {
			if o.Status == s {
				out = append(out, o)
				break
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

// attachLines asigna a cada comanda solo sus propias líneas.
func attachLines(orders []*entity.Order, lines []*entity.OrderLine) {
	byOrder := make(map[int64][]entity.OrderLine, len(orders))
	for _, l := range lines {
		if l == nil || l.OrderID == 0 {
			continue
		}
		byOrder[l.OrderID] = append(byOrder[l.OrderID], *l)
	}
	for _, o := range orders {
		if len(o.Lines) == 0 {
			o.Lines = byOrder[o.ID]
		}
	}
}

// Dashboard pendientes, en preparación y contadores.
func (uc *KitchenUseCase) Dashboard(ctx context.Context, s *entity.Session) (*dto.KitchenDashboardResponse, error) {
	q, err := uc.loadQueue(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	st := dto.KitchenStats{Pending: len(q.pending)}
	for _, o := range q.preparing {
		switch o.Status {
		case entity.OrderPreparing:
			st.Preparing++
			st.ItemsInPreparation += o.ItemCount()
		case entity.OrderReady:
			st.Ready++
		}
	}
	return &dto.KitchenDashboardResponse{
		Pending:   dto.FromOrders(q.pending),
		Preparing: dto.FromOrders(q.preparing),
		Stats:     st,
		Warnings:  q.warnings,
	}, nil
}

// Queue cola unificada (pendientes y en preparación) con filtro de estado y texto.
func (uc *KitchenUseCase) Queue(ctx context.Context, s *entity.Session, f dto.OrderFilter) ([]dto.OrderResponse, error) {
	q, err := uc.loadQueue(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	all := append(append([]*entity.Order{}, q.pending...), q.preparing...)
	status, ok := entity.ParseStatusFilter(f.Status)
	if !ok {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Estado de comanda no válido")
	}
	return dto.FromOrders(entity.FilterOrders(all, status, f.Search)), nil
}

// Order detalle de una comanda con sus líneas.
func (uc *KitchenUseCase) Order(ctx context.Context, s *entity.Session, id int64) (*dto.OrderResponse, error) {
	o, err := uc.loadOrder(ctx, s.BearerToken(), id)
	if err != nil {
		return nil, err
	}
	out := dto.FromOrder(o)
	return &out, nil
}

func (uc *KitchenUseCase) loadOrder(ctx context.Context, token string, id int64) (*entity.Order, error) {
	o, err := uc.orders.GetByID(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if len(o.Lines) == 0 {
		lines, err := uc.lines.List(ctx, token)
		if err != nil {
			uc.log.Warn().Err(err).Int64("order_id", id).Msg("no se pudo cargar el detalle de la comanda")
		} else {
			attachLines([]*entity.Order{o}, lines)
		}
	}
	return o, nil
}

// StartPreparation asigna la comanda al cocinero y la pasa a EN_PREPARACION. Si falla el
// cambio de estado se restaura el cocinero anterior cuando lo había; si no lo había la
// comanda queda asignada y se informa como falla parcial.
func (uc *KitchenUseCase) StartPreparation(ctx context.Context, s *entity.Session, id int64, confirmed bool) (*dto.OrderResponse, error) {
	token := s.BearerToken()
	cookID := s.UserID()
	if cookID == "" {
		return nil, domain.ErrMissingIdentity
	}
	o, err := uc.loadOrder(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderPending {
		return nil, domain.WithMessage(domain.ErrInvalidTransition,
			fmt.Sprintf("La comanda #%d está %s; solo se puede iniciar una comanda PENDIENTE", o.ID, o.Status.Label()))
	}
	if !confirmed {
		return nil, domain.NeedsConfirmation("comanda.preparar", fmt.Sprintf("¿Iniciar la preparación de la comanda #%d?", o.ID))
	}

	var restore func(ctx context.Context) error
	if prev := o.CookID; prev != "" {
		restore = func(ctx context.Context) error {
			return uc.orders.AssignCook(ctx, token, id, prev)
		}
	}
	err = saga.New("iniciar-preparacion", uc.log).
		Step(stepAssignCook, func(ctx context.Context) error {
			return uc.orders.AssignCook(ctx, token, id, cookID)
		}, restore).
		Step(stepStartPreparing, func(ctx context.Context) error {
			return uc.orders.SetStatus(ctx, token, id, entity.OrderPreparing)
		}, nil).
		Execute(ctx)
	if err != nil {
		return nil, err
	}

	o.CookID = cookID
	if s.Profile != nil {
		o.CookName = s.Profile.Name
	}
	o.Status = entity.OrderPreparing
	uc.log.Info().Int64("order_id", id).Str("cook_id", cookID).Msg("preparación iniciada")
	uc.publish(ctx, event.SubjectOrderPreparing, o)

	out := dto.FromOrder(o)
	return &out, nil
}

// MarkReady pasa a LISTA una comanda EN_PREPARACION.
func (uc *KitchenUseCase) MarkReady(ctx context.Context, s *entity.Session, id int64, confirmed bool) (*dto.OrderResponse, error) {
	token := s.BearerToken()
	o, err := uc.loadOrder(ctx, token, id)
	if err != nil {
		return nil, err
	}
	if o.Status != entity.OrderPreparing {
		return nil, domain.WithMessage(domain.ErrInvalidTransition,
			fmt.Sprintf("La comanda #%d está %s; solo se puede marcar lista una comanda EN_PREPARACION", o.ID, o.Status.Label()))
	}
	if !confirmed {
		return nil, domain.NeedsConfirmation("comanda.lista", fmt.Sprintf("¿Marcar la comanda #%d como lista?", o.ID))
	}
	if err := uc.orders.SetStatus(ctx, token, id, entity.OrderReady); err != nil {
		return nil, err
	}
	o.Status = entity.OrderReady
	uc.log.Info().Int64("order_id", id).Str("cook_id", s.UserID()).Msg("comanda lista")
	uc.publish(ctx, event.SubjectOrderReady, o)

	out := dto.FromOrder(o)
	return &out, nil
}

func (uc *KitchenUseCase) publish(ctx context.Context, subject string, o *entity.Order) {
	if uc.events == nil {
		return
	}
	ev := event.OrderEvent{
		EventID:    uuid.New().String(),
		EventType:  subject,
		OccurredAt: uc.now(),
		OrderID:    o.ID,
		TableID:    o.TableID,
		TableLabel: o.TableLabel,
		Status:     o.Status.Label(),
		WaiterID:   o.WaiterID,
		CookID:     o.CookID,
		Total:      o.DisplayTotal().String(),
	}
	for _, l := range o.Lines {
		ev.Items = append(ev.Items, event.OrderItem{ProductID: l.ProductID, ProductName: l.ProductName, Quantity: l.Quantity, Notes: l.Note})
	}
	if err := uc.events.Publish(ctx, subject, ev); err != nil {
		uc.log.Warn().Err(err).Str("subject", subject).Int64("order_id", o.ID).Msg("no se pudo publicar el evento")
	}
}
