package waiter

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/event"
)

// maxLineFetches límite de consultas de detalle en paralelo por cuenta.
const maxLineFetches = 4

// TableOrders comandas activas del mesero en la mesa, con sus líneas.
func (uc *WaiterUseCase) TableOrders(ctx context.Context, s *entity.Session, tableID int64) ([]dto.OrderResponse, error) {
	orders, err := uc.tableOrders(ctx, s, tableID)
	if err != nil {
		return nil, err
	}
	return dto.FromOrders(orders), nil
}

// tableOrders trae las comandas activas de la mesa y el detalle de cada una en paralelo. Si el
// detalle de una comanda falla se conserva sin líneas y su total es el informado por el backend.
func (uc *WaiterUseCase) tableOrders(ctx context.Context, s *entity.Session, tableID int64) ([]*entity.Order, error) {
	token := s.BearerToken()
	all, err := uc.orders.ListMineByTable(ctx, token, tableID)
	if err != nil {
		return nil, err
	}
	orders := activeOrders(all)

	var g errgroup.Group
	g.SetLimit(maxLineFetches)
	for _, o := range orders {
		if len(o.Lines) > 0 {
			continue
		}
		g.Go(func() error {
			lines, err := uc.orders.MyOrderLines(ctx, token, o.ID)
			if err != nil {
				uc.log.Warn().Err(err).Int64("order_id", o.ID).Msg("no se pudo cargar el detalle de la comanda")
				return nil
			}
			o.Lines = linesOf(o.ID, lines)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return orders, nil
}

// linesOf deja solo las líneas de la comanda indicada.
func linesOf(orderID int64, lines []entity.OrderLine) []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(lines))
	for _, l := range lines {
		if l.OrderID == 0 || l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out
}

func (uc *WaiterUseCase) bill(ctx context.Context, s *entity.Session, tableID int64) (*billing.Bill, error) {
	table, err := uc.tables.GetByID(ctx, s.BearerToken(), tableID)
	if err != nil {
		return nil, err
	}
	orders, err := uc.tableOrders(ctx, s, tableID)
	if err != nil {
		return nil, err
	}
	return billing.NewBill(table, orders, uc.tipPercent), nil
}

// Bill cuenta de la mesa: comandas activas, subtotal, propina sugerida y total.
func (uc *WaiterUseCase) Bill(ctx context.Context, s *entity.Session, tableID int64) (*dto.BillResponse, error) {
	b, err := uc.bill(ctx, s, tableID)
	if err != nil {
		return nil, err
	}
	out := dto.FromBill(b)
	return &out, nil
}

// BillPDF cuenta de la mesa en PDF.
func (uc *WaiterUseCase) BillPDF(ctx context.Context, s *entity.Session, tableID int64) ([]byte, error) {
	if uc.pdf == nil {
		return nil, errors.New("mesero: generador de PDF no configurado")
	}
	b, err := uc.bill(ctx, s, tableID)
	if err != nil {
		return nil, err
	}
	if len(b.Orders) == 0 {
		return nil, domain.WithMessage(domain.ErrNoActiveOrders, domain.ErrNoActiveOrders.Error())
	}
	issuedBy := ""
	if s.Profile != nil {
		issuedBy = s.Profile.Name
	}
	return uc.pdf.GenerateBillPDF(b, issuedBy)
}

// CloseBill cierra la cuenta: exige al menos una comanda activa y todas LISTA, y libera la mesa.
func (uc *WaiterUseCase) CloseBill(ctx context.Context, s *entity.Session, tableID int64, confirmed bool) (*dto.BillResponse, error) {
	b, err := uc.bill(ctx, s, tableID)
	if err != nil {
		return nil, err
	}
	if err := b.CanClose(); err != nil {
		return nil, domain.WithMessage(err, err.Error())
	}
	if !confirmed {
		return nil, domain.NeedsConfirmation("cuenta.cerrar",
			fmt.Sprintf("¿Cerrar la cuenta de %s por %s?", b.Table.Label, dto.FromTotals(b.Totals).GrandTotalDisplay))
	}
	if err := uc.tables.SetStatus(ctx, s.BearerToken(), tableID, entity.TableAvailable); err != nil {
		return nil, err
	}
	b.Table.Status = entity.TableAvailable
	uc.log.Info().Int64("table_id", tableID).Str("total", b.Totals.GrandTotal.String()).Msg("cuenta cerrada")
	uc.publish(ctx, event.SubjectTableClosed, tableClosedEvent(b, s.UserID(), uc.now()))

	out := dto.FromBill(b)
	out.Message = "Cuenta cerrada"
	return &out, nil
}
