package waiter

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/money"
)

// Dashboard mesas y comandas activas del mesero. Las dos consultas corren en paralelo; si falla
// la de comandas las mesas se devuelven igual con un aviso.
func (uc *WaiterUseCase) Dashboard(ctx context.Context, s *entity.Session) (*dto.WaiterDashboardResponse, error) {
	type tablesResult struct {
		tables []*entity.Table
		err    error
	}
	type ordersResult struct {
		orders []*entity.Order
		err    error
	}

	tablesCh := make(chan tablesResult, 1)
	ordersCh := make(chan ordersResult, 1)

	go func() {
		ts, err := uc.tables.List(ctx, s.BearerToken())
		tablesCh <- tablesResult{ts, err}
	}()
	go func() {
		os, err := uc.orders.ListMyActive(ctx, s.BearerToken())
		ordersCh <- ordersResult{os, err}
	}()

	tables := <-tablesCh
	orders := <-ordersCh

	if tables.err != nil {
		return nil, fmt.Errorf("mesero: mesas: %w", tables.err)
	}

	out := &dto.WaiterDashboardResponse{Tables: dto.FromTables(tables.tables)}
	active := []*entity.Order{}
	if orders.err != nil {
		uc.log.Warn().Err(orders.err).Str("user_id", s.UserID()).Msg("no se pudieron cargar las comandas activas")
		out.Warnings = append(out.Warnings, "No se pudieron cargar las comandas activas")
	} else {
		active = activeOrders(orders.orders)
	}
	out.ActiveOrders = dto.FromOrders(active)
	out.Stats = waiterStats(active)
	return out, nil
}

func activeOrders(orders []*entity.Order) []*entity.Order {
	out := make([]*entity.Order, 0, len(orders))
	for _, o := range orders {
		if o != nil && o.Status.Active() {
			out = append(out, o)
		}
	}
	return out
}

// waiterStats: pendientes = PENDIENTE o EN_PREPARACION; completadas = LISTA.
func waiterStats(orders []*entity.Order) dto.WaiterStats {
	tables := map[int64]struct{}{}
	st := dto.WaiterStats{TotalSold: decimal.Zero}
	for _, o := range orders {
		tables[o.TableID] = struct{}{}
		switch o.Status {
		case entity.OrderPending, entity.OrderPreparing:
			st.Pending++
		case entity.OrderReady:
			st.Completed++
		}
		st.TotalSold = st.TotalSold.Add(o.DisplayTotal())
	}
	st.TablesServed = len(tables)
	st.TotalDisplay = money.FormatCOP(st.TotalSold)
	return st
}

// ActiveOrders comandas activas del mesero filtradas por estado y texto (mesa o número de comanda).
func (uc *WaiterUseCase) ActiveOrders(ctx context.Context, s *entity.Session, f dto.OrderFilter) ([]dto.OrderResponse, error) {
	orders, err := uc.orders.ListMyActive(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	filtered, err := filterOrders(activeOrders(orders), f)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(filtered), nil
}

func filterOrders(orders []*entity.Order, f dto.OrderFilter) ([]*entity.Order, error) {
	status, ok := entity.ParseStatusFilter(f.Status)
	if !ok {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Estado de comanda no válido")
	}
	return entity.FilterOrders(orders, status, f.Search), nil
}

// ChangeTableStatus cambia el estado de una mesa. Sin cambio no llama al backend; una mesa
// OCUPADA no se puede cambiar desde aquí (se libera al cerrar la cuenta).
func (uc *WaiterUseCase) ChangeTableStatus(ctx context.Context, s *entity.Session, tableID int64, raw string, confirmed bool) (*dto.TableResponse, error) {
	target := entity.ParseTableStatus(raw)
	if target == entity.TableUnknown {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Estado de mesa no válido")
	}
	table, err := uc.tables.GetByID(ctx, s.BearerToken(), tableID)
	if err != nil {
		return nil, err
	}
	if table.Status == target {
		out := dto.FromTable(table)
		return &out, nil
	}
	if table.IsOccupied() {
		return nil, domain.WithMessage(domain.ErrTableOccupied, domain.ErrTableOccupied.Error())
	}
	if !confirmed {
		return nil, domain.NeedsConfirmation("mesa.estado",
			fmt.Sprintf("¿Cambiar %s de %s a %s?", table.Label, table.Status.Label(), target.Label()))
	}
	if err := uc.tables.SetStatus(ctx, s.BearerToken(), tableID, target); err != nil {
		return nil, err
	}
	uc.log.Info().Int64("table_id", tableID).Str("from", table.Status.Label()).Str("to", target.Label()).Msg("estado de mesa cambiado")
	table.Status = target
	out := dto.FromTable(table)
	return &out, nil
}
