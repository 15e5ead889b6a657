package waiter

import (
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/event"
)

func orderEvent(subject string, o *entity.Order, at time.Time) event.OrderEvent {
	ev := event.OrderEvent{
		EventID:    uuid.New().String(),
		EventType:  subject,
		OccurredAt: at,
		OrderID:    o.ID,
		TableID:    o.TableID,
		TableLabel: o.TableLabel,
		Status:     o.Status.Label(),
		WaiterID:   o.WaiterID,
		CookID:     o.CookID,
		Total:      o.DisplayTotal().String(),
	}
	for _, l := range o.Lines {
		ev.Items = append(ev.Items, event.OrderItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			Notes:       l.Note,
		})
	}
	return ev
}

func tableClosedEvent(b *billing.Bill, closedBy string, at time.Time) event.TableClosedEvent {
	ev := event.TableClosedEvent{
		EventID:    uuid.New().String(),
		EventType:  event.SubjectTableClosed,
		OccurredAt: at,
		TableID:    b.Table.ID,
		OrderIDs:   make([]int64, 0, len(b.Orders)),
		Subtotal:   b.Totals.Subtotal.String(),
		Tip:        b.Totals.Tip.String(),
		Total:      b.Totals.GrandTotal.String(),
		ClosedBy:   closedBy,
	}
	for _, o := range b.Orders {
		ev.OrderIDs = append(ev.OrderIDs, o.ID)
	}
	return ev
}
