package dto

import (
	"time"

	"github.com/jhoicas/comandas-bff/internal/domain/billing"
	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/pkg/money"
)

// FromTable convierte una mesa.
func FromTable(t *entity.Table) TableResponse {
	if t == nil {
		return TableResponse{}
	}
	return TableResponse{
		ID:         t.ID,
		Label:      t.Label,
		Capacity:   t.Capacity,
		StatusCode: t.Status.Code(),
		Status:     t.Status.Label(),
	}
}

// FromTables convierte una lista de mesas.
func FromTables(ts []*entity.Table) []TableResponse {
	out := make([]TableResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTable(t))
	}
	return out
}

// FromOrder convierte una comanda. El total mostrado es el derivado de las líneas cuando hay líneas.
func FromOrder(o *entity.Order) OrderResponse {
	if o == nil {
		return OrderResponse{}
	}
	total := o.DisplayTotal()
	r := OrderResponse{
		ID:           o.ID,
		TableID:      o.TableID,
		TableLabel:   o.TableLabel,
		WaiterID:     o.WaiterID,
		WaiterName:   o.WaiterName,
		CookID:       o.CookID,
		CookName:     o.CookName,
		StatusCode:   o.Status.Code(),
		Status:       o.Status.Label(),
		Total:        total,
		TotalDisplay: money.FormatCOP(total),
		ItemCount:    o.ItemCount(),
		CanStart:     o.Status == entity.OrderPending,
		CanMarkReady: o.Status == entity.OrderPreparing,
	}
	if !o.CreatedAt.IsZero() {
		ts := o.CreatedAt
		r.CreatedAt = &ts
	}
	for _, l := range o.Lines {
		r.Lines = append(r.Lines, FromOrderLine(l))
	}
	return r
}

// FromOrders convierte una lista de comandas.
func FromOrders(os []*entity.Order) []OrderResponse {
	out := make([]OrderResponse, 0, len(os))
	for _, o := range os {
		out = append(out, FromOrder(o))
	}
	return out
}

// FromOrderLine convierte una línea de comanda.
func FromOrderLine(l entity.OrderLine) OrderLineResponse {
	return OrderLineResponse{
		ID:          l.ID,
		ProductID:   l.ProductID,
		ProductName: l.ProductName,
		Quantity:    l.Quantity,
		UnitPrice:   l.UnitPrice,
		Subtotal:    l.Subtotal,
		Note:        l.Note,
	}
}

// FromProduct convierte un producto.
func FromProduct(p *entity.Product) ProductResponse {
	if p == nil {
		return ProductResponse{}
	}
	return ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		PriceDisplay: money.FormatCOP(p.Price),
		Stock:        p.Stock,
		Active:       p.Active,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
	}
}

// FromProducts convierte una lista de productos.
func FromProducts(ps []*entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromProduct(p))
	}
	return out
}

// FromTotals convierte los totales con sus textos en pesos.
func FromTotals(t billing.Totals) TotalsResponse {
	return TotalsResponse{
		Subtotal:          t.Subtotal,
		TipPercent:        t.TipPercent,
		Tip:               t.Tip,
		GrandTotal:        t.GrandTotal,
		SubtotalDisplay:   money.FormatCOP(t.Subtotal),
		TipDisplay:        money.FormatCOP(t.Tip),
		GrandTotalDisplay: money.FormatCOP(t.GrandTotal),
	}
}

// FromCart convierte el carrito de una mesa.
func FromCart(c *cart.Cart, tipPercent int) CartResponse {
	r := CartResponse{TableID: c.TableID, Lines: make([]CartLineResponse, 0, len(c.Lines))}
	for _, l := range c.Lines {
		r.Lines = append(r.Lines, CartLineResponse{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal,
			Note:        l.Note,
		})
	}
	r.Totals = FromTotals(c.Totals(tipPercent))
	return r
}

// FromBill convierte la cuenta de una mesa.
func FromBill(b *billing.Bill) BillResponse {
	r := BillResponse{
		Table:  FromTable(b.Table),
		Orders: FromOrders(b.Orders),
		Totals: FromTotals(b.Totals),
	}
	if err := b.CanClose(); err != nil {
		r.Message = err.Error()
	} else {
		r.CanClose = true
	}
	for _, o := range b.PendingOrders() {
		r.PendingOrderIDs = append(r.PendingOrderIDs, o.ID)
	}
	return r
}

// FromProfile convierte el perfil de la sesión.
func FromProfile(p *entity.Profile) ProfileResponse {
	if p == nil {
		return ProfileResponse{}
	}
	r := ProfileResponse{
		UserID:     p.UserID,
		Email:      p.Email,
		Name:       p.Name,
		Role:       entity.NormalizeRole(p.Role),
		DegradedID: p.UserID != "" && p.UserID == p.Email,
	}
	r.Redirect, _ = entity.DashboardRoute(p.Role)
	return r
}

// FromCategory convierte una categoría.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description}
}

// FromState convierte un estado.
func FromState(s *entity.State) StateResponse {
	return StateResponse{ID: s.ID, Name: s.Name}
}

// FromRole convierte un rol.
func FromRole(r *entity.Role) RoleResponse {
	return RoleResponse{ID: r.ID, Name: r.Name, UsersCount: r.UsersCount}
}

// FromPhone convierte un teléfono con sus usuarios.
func FromPhone(p *entity.Phone) PhoneResponse {
	r := PhoneResponse{ID: p.ID, Number: p.Number}
	for _, u := range p.Users {
		r.Users = append(r.Users, UserRefEntry{ID: u.ID, Name: u.Name, Email: u.Email})
	}
	return r
}

// FromUser convierte un usuario; nunca incluye el password.
func FromUser(u *entity.User) UserResponse {
	r := UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.PrimaryRole()}
	for i := range u.Roles {
		r.Roles = append(r.Roles, FromRole(&u.Roles[i]))
	}
	for i := range u.Phones {
		r.Phones = append(r.Phones, FromPhone(&u.Phones[i]))
	}
	return r
}

// FromCompensation convierte una compensación pendiente.
func FromCompensation(p *entity.PendingCompensation) PendingCompensationResponse {
	r := PendingCompensationResponse{
		ID:           p.ID,
		Kind:         p.Kind,
		ResourceID:   p.ResourceID,
		TargetStatus: entity.TableStatusFromCode(p.TargetStatus).Label(),
		Cause:        p.Cause,
		Attempts:     p.Attempts,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
	}
	if p.ResolvedAt != nil {
		s := p.ResolvedAt.Format(time.RFC3339)
		r.ResolvedAt = &s
	}
	return r
}
