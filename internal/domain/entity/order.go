package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa una comanda: pertenece a una mesa y a un mesero; el cocinero se asigna al iniciar la preparación.
type Order struct {
	ID         int64
	TableID    int64
	TableLabel string
	WaiterID   string
	WaiterName string
	CookID     string // vacío hasta que un cocinero la toma
	CookName   string
	Status     OrderStatus
	StatusName string // nombre tal como lo envió el backend
	CreatedAt  time.Time
	Total      decimal.Decimal // total informado por el backend
	Lines      []OrderLine
}

// OrderLine línea de una comanda (detalle). UnitPrice es el precio al momento de agregarla.
type OrderLine struct {
	ID          int64
	OrderID     int64
	ProductID   int64
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
	Note        string
}

// LinesTotal suma los subtotales de las líneas.
func (o *Order) LinesTotal() decimal.Decimal {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// DisplayTotal total a mostrar: derivado de las líneas cuando existen; si no, el del backend.
// Una diferencia con el total del backend no se corrige.
func (o *Order) DisplayTotal() decimal.Decimal {
	if len(o.Lines) > 0 {
		return o.LinesTotal()
	}
	return o.Total
}

// ItemCount unidades pedidas en la comanda.
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// HasCook indica si la comanda ya tiene cocinero asignado.
func (o *Order) HasCook() bool { return o.CookID != "" }

// CreatedToday compara la fecha de creación con now en la zona de now.
func (o *Order) CreatedToday(now time.Time) bool {
	if o.CreatedAt.IsZero() {
		return false
	}
	y1, m1, d1 := o.CreatedAt.In(now.Location()).Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
