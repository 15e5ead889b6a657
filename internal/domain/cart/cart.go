// Package cart arma el pedido del mesero antes de enviarlo como comanda.
package cart

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// Line línea del carrito. UnitPrice queda fijo al agregar el producto.
type Line struct {
	ProductID   int64
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
	Subtotal    decimal.Decimal
	Note        string
}

func (l *Line) recompute() {
	l.Subtotal = l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart carrito de una mesa. Las líneas mantienen el orden de inserción.
type Cart struct {
	TableID int64
	Lines   []*Line
}

// New crea un carrito vacío para la mesa.
func New(tableID int64) *Cart {
	return &Cart{TableID: tableID}
}

func (c *Cart) find(productID int64) (int, *Line) {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			return i, l
		}
	}
	return -1, nil
}

// Add agrega el producto; si ya está en el carrito incrementa la cantidad en vez de duplicar la línea.
func (c *Cart) Add(p *entity.Product, qty int) error {
	if p == nil || p.ID == 0 {
		return fmt.Errorf("%w: producto requerido", domain.ErrInvalidInput)
	}
	if qty < 1 {
		return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	if _, l := c.find(p.ID); l != nil {
		l.Quantity += qty
		l.recompute()
		return nil
	}
	l := &Line{ProductID: p.ID, ProductName: p.Name, UnitPrice: p.Price, Quantity: qty}
	l.recompute()
	c.Lines = append(c.Lines, l)
	return nil
}

// Increase suma una unidad a la línea del producto.
func (c *Cart) Increase(productID int64) error {
	_, l := c.find(productID)
	if l == nil {
		return domain.ErrNotFound
	}
	l.Quantity++
	l.recompute()
	return nil
}

// Decrease resta una unidad; la cantidad nunca baja de 1. Devuelve false si ya estaba en 1.
func (c *Cart) Decrease(productID int64) (bool, error) {
	_, l := c.find(productID)
	if l == nil {
		return false, domain.ErrNotFound
	}
	if l.Quantity <= 1 {
		return false, nil
	}
	l.Quantity--
	l.recompute()
	return true, nil
}

// SetQuantity fija la cantidad (mínimo 1).
func (c *Cart) SetQuantity(productID int64, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: la cantidad debe ser al menos 1", domain.ErrInvalidInput)
	}
	_, l := c.find(productID)
	if l == nil {
		return domain.ErrNotFound
	}
	l.Quantity = qty
	l.recompute()
	return nil
}

// SetNote guarda la observación de la línea.
func (c *Cart) SetNote(productID int64, note string) error {
	_, l := c.find(productID)
	if l == nil {
		return domain.ErrNotFound
	}
	l.Note = strings.TrimSpace(note)
	return nil
}

// Remove elimina exactamente la línea del producto.
func (c *Cart) Remove(productID int64) error {
	i, _ := c.find(productID)
	if i < 0 {
		return domain.ErrNotFound
	}
	c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	return nil
}

// Clear vacía el carrito.
func (c *Cart) Clear() { c.Lines = nil }

// IsEmpty indica si no hay líneas.
func (c *Cart) IsEmpty() bool { return len(c.Lines) == 0 }

// Total suma de subtotales.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.Lines {
		total = total.Add(l.Subtotal)
	}
	return total
}

// Totals total con la propina sugerida.
func (c *Cart) Totals(tipPercent int) billing.Totals {
	return billing.Summarize(c.Total(), tipPercent)
}

// OrderLines convierte el carrito en las líneas de la comanda a crear.
func (c *Cart) OrderLines() []entity.OrderLine {
	out := make([]entity.OrderLine, 0, len(c.Lines))
	for _, l := range c.Lines {
		out = append(out, entity.OrderLine{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
			Note:        l.Note,
		})
	}
	return out
}
