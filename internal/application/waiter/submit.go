package waiter

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/application/saga"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/event"
)

const (
	stepOccupyTable = "ocupar-mesa"
	stepCreateOrder = "crear-comanda"
)

// SubmitOrder envía el carrito de la mesa como comanda: primero ocupa la mesa y luego crea la
// comanda en PENDIENTE. Si la creación falla la mesa vuelve a DISPONIBLE; si esa reversión
// también falla queda registrada como compensación pendiente.
func (uc *WaiterUseCase) SubmitOrder(ctx context.Context, s *entity.Session, tableID int64, in dto.SubmitOrderRequest) (*dto.OrderResponse, error) {
	token := s.BearerToken()
	c, err := uc.carts.Get(ctx, s.ID, tableID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, domain.WithMessage(domain.ErrEmptyCart, domain.ErrEmptyCart.Error())
	}
	if s.UserID() == "" {
		return nil, domain.ErrMissingIdentity
	}

	table, err := uc.tables.GetByID(ctx, token, tableID)
	if err != nil {
		return nil, err
	}

	order := &entity.Order{
		TableID:    tableID,
		TableLabel: table.Label,
		WaiterID:   s.UserID(),
		WaiterName: waiterName(s),
		CookID:     in.CookID,
		Status:     entity.OrderPending,
		Total:      c.Total(),
		Lines:      c.OrderLines(),
	}
	if in.CookID != "" {
		order.CookName = in.CookName
	}
	var created *entity.Order

	sg := saga.New("enviar-comanda", uc.log)
	if !table.IsOccupied() {
		sg.Step(stepOccupyTable,
			func(ctx context.Context) error {
				return uc.tables.SetStatus(ctx, token, tableID, entity.TableOccupied)
			},
			func(ctx context.Context) error {
				return uc.tables.SetStatus(ctx, token, tableID, entity.TableAvailable)
			},
		)
	}
	sg.Step(stepCreateOrder,
		func(ctx context.Context) error {
			o, err := uc.orders.Create(ctx, token, order)
			if err != nil {
				return err
			}
			created = o
			return nil
		},
		nil,
	)

	if err := sg.Execute(ctx); err != nil {
		var execErr *saga.ExecutionError
		if errors.As(err, &execErr) {
			uc.recordFailedCompensations(ctx, tableID, execErr)
		}
		return nil, err
	}

	if created == nil {
		created = order
	}
	if len(created.Lines) == 0 {
		created.Lines = order.Lines
	}
	if created.TableID == 0 {
		created.TableID = tableID
	}
	if created.Total.IsZero() {
		created.Total = order.Total
	}
	if created.TableLabel == "" {
		created.TableLabel = table.Label
	}
	if !created.Status.Valid() {
		created.Status = entity.OrderPending
	}

	if err := uc.carts.Delete(ctx, s.ID, tableID); err != nil {
		uc.log.Warn().Err(err).Int64("table_id", tableID).Msg("no se pudo vaciar el carrito tras enviar la comanda")
	}
	uc.log.Info().Int64("order_id", created.ID).Int64("table_id", tableID).Str("waiter_id", s.UserID()).Msg("comanda enviada")
	uc.publish(ctx, event.SubjectOrderSubmitted, orderEvent(event.SubjectOrderSubmitted, created, uc.now()))

	out := dto.FromOrder(created)
	return &out, nil
}

func (uc *WaiterUseCase) recordFailedCompensations(ctx context.Context, tableID int64, execErr *saga.ExecutionError) {
	for _, f := range execErr.Failures {
		if f.Step != stepOccupyTable {
			continue
		}
		uc.log.Error().Err(f.Err).Int64("table_id", tableID).Msg("la mesa quedó OCUPADA sin comanda")
		if uc.compensations == nil {
			continue
		}
		p := &entity.PendingCompensation{
			ID:           uuid.New().String(),
			Kind:         entity.CompensationRevertTable,
			ResourceID:   tableID,
			TargetStatus: entity.TableAvailable.Code(),
			Cause:        fmt.Sprintf("%v; reversión: %v", execErr.Cause, f.Err),
			Attempts:     1,
			CreatedAt:    uc.now(),
		}
		if err := uc.compensations.Save(context.WithoutCancel(ctx), p); err != nil {
			uc.log.Error().Err(err).Int64("table_id", tableID).Msg("no se pudo registrar la compensación pendiente")
		}
	}
}

func waiterName(s *entity.Session) string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.Name
}
