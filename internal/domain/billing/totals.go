package billing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// DefaultTipPercent propina sugerida cuando no se configura otra.
const DefaultTipPercent = 10

// Totals subtotal, propina sugerida y total a pagar.
type Totals struct {
	Subtotal   decimal.Decimal
	TipPercent int
	Tip        decimal.Decimal
	GrandTotal decimal.Decimal
}

// Summarize calcula la propina (redondeada a pesos) y el total.
func Summarize(subtotal decimal.Decimal, tipPercent int) Totals {
	tip := subtotal.Mul(decimal.NewFromInt(int64(tipPercent))).Div(decimal.NewFromInt(100)).Round(0)
	return Totals{
		Subtotal:   subtotal,
		TipPercent: tipPercent,
		Tip:        tip,
		GrandTotal: subtotal.Add(tip),
	}
}

// Bill cuenta de una mesa: sus comandas activas y los totales.
type Bill struct {
	Table  *entity.Table
	Orders []*entity.Order
	Totals Totals
}

// NewBill arma la cuenta con las comandas activas de la mesa. Las entregadas y canceladas no cuentan.
func NewBill(table *entity.Table, orders []*entity.Order, tipPercent int) *Bill {
	active := make([]*entity.Order, 0, len(orders))
	subtotal := decimal.Zero
	for _, o := range orders {
		if o == nil || !o.Status.Active() {
			continue
		}
		active = append(active, o)
		subtotal = subtotal.Add(o.DisplayTotal())
	}
	return &Bill{Table: table, Orders: active, Totals: Summarize(subtotal, tipPercent)}
}

// PendingOrders comandas que todavía no están LISTA.
func (b *Bill) PendingOrders() []*entity.Order {
	var out []*entity.Order
	for _, o := range b.Orders {
		if o.Status != entity.OrderReady {
			out = append(out, o)
		}
	}
	return out
}

// CanClose devuelve nil si la cuenta se puede cerrar: al menos una comanda activa y todas LISTA.
func (b *Bill) CanClose() error {
	if len(b.Orders) == 0 {
		return domain.ErrNoActiveOrders
	}
	if len(b.PendingOrders()) > 0 {
		return domain.ErrOrdersNotReady
	}
	return nil
}
