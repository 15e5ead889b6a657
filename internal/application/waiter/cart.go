package waiter

import (
	"context"
	"strings"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// Products catálogo para tomar la comanda, filtrado por categoría y texto en nombre o descripción.
func (uc *WaiterUseCase) Products(ctx context.Context, s *entity.Session, f dto.ProductFilter) ([]dto.ProductResponse, error) {
	ps, err := uc.products.List(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	return dto.FromProducts(FilterProducts(ps, f)), nil
}

// FilterProducts filtra sin distinguir mayúsculas.
func FilterProducts(ps []*entity.Product, f dto.ProductFilter) []*entity.Product {
	q := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]*entity.Product, 0, len(ps))
	for _, p := range ps {
		if p == nil {
			continue
		}
		if f.CategoryID != 0 && p.CategoryID != f.CategoryID {
			continue
		}
		if f.OnlyActive && !p.Active {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories categorías para el filtro del catálogo.
func (uc *WaiterUseCase) Categories(ctx context.Context, s *entity.Session) ([]dto.CategoryResponse, error) {
	cs, err := uc.categories.List(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(cs))
	for _, c := range cs {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// Cart carrito de la mesa para la sesión.
func (uc *WaiterUseCase) Cart(ctx context.Context, s *entity.Session, tableID int64) (*dto.CartResponse, error) {
	c, err := uc.carts.Get(ctx, s.ID, tableID)
	if err != nil {
		return nil, err
	}
	return uc.cartResponse(c), nil
}

// AddToCart agrega un producto al carrito. El precio se toma del backend en ese momento.
func (uc *WaiterUseCase) AddToCart(ctx context.Context, s *entity.Session, tableID int64, in dto.AddCartItemRequest) (*dto.CartResponse, error) {
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	p, err := uc.products.GetByID(ctx, s.BearerToken(), in.ProductID)
	if err != nil {
		return nil, err
	}
	if !p.Active {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "El producto no está disponible")
	}
	return uc.mutateCart(ctx, s, tableID, func(c *cart.Cart) error {
		if err := c.Add(p, qty); err != nil {
			return err
		}
		if in.Note != "" {
			return c.SetNote(p.ID, in.Note)
		}
		return nil
	})
}

// UpdateCartItem aumenta, disminuye (mínimo 1) o fija cantidad y observación de una línea.
// Disminuir una línea que ya está en 1 no la cambia y se informa en Warnings.
func (uc *WaiterUseCase) UpdateCartItem(ctx context.Context, s *entity.Session, tableID, productID int64, in dto.UpdateCartItemRequest) (*dto.CartResponse, error) {
	atMinimum := false
	out, err := uc.mutateCart(ctx, s, tableID, func(c *cart.Cart) error {
		switch strings.ToLower(strings.TrimSpace(in.Action)) {
		case "":
		case "increase", "aumentar":
			if err := c.Increase(productID); err != nil {
				return err
			}
		case "decrease", "disminuir":
			changed, err := c.Decrease(productID)
			if err != nil {
				return err
			}
			atMinimum = !changed
		default:
			return domain.WithMessage(domain.ErrInvalidInput, "Acción no válida")
		}
		if in.Quantity != nil {
			if err := c.SetQuantity(productID, *in.Quantity); err != nil {
				return err
			}
		}
		if in.Note != nil {
			if err := c.SetNote(productID, *in.Note); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if atMinimum && in.Quantity == nil {
		out.Warnings = append(out.Warnings, "La cantidad mínima es 1")
	}
	return out, nil
}

// RemoveCartItem elimina la línea del producto.
func (uc *WaiterUseCase) RemoveCartItem(ctx context.Context, s *entity.Session, tableID, productID int64) (*dto.CartResponse, error) {
	return uc.mutateCart(ctx, s, tableID, func(c *cart.Cart) error {
		return c.Remove(productID)
	})
}

// ClearCart vacía el carrito; pide confirmación si tiene productos.
func (uc *WaiterUseCase) ClearCart(ctx context.Context, s *entity.Session, tableID int64, confirmed bool) (*dto.CartResponse, error) {
	c, err := uc.carts.Get(ctx, s.ID, tableID)
	if err != nil {
		return nil, err
	}
	if !c.IsEmpty() && !confirmed {
		return nil, domain.NeedsConfirmation("carrito.limpiar", "¿Limpiar el carrito?")
	}
	if err := uc.carts.Delete(ctx, s.ID, tableID); err != nil {
		return nil, err
	}
	return uc.cartResponse(cart.New(tableID)), nil
}

func (uc *WaiterUseCase) mutateCart(ctx context.Context, s *entity.Session, tableID int64, fn func(*cart.Cart) error) (*dto.CartResponse, error) {
	c, err := uc.carts.Get(ctx, s.ID, tableID)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := uc.carts.Save(ctx, s.ID, c); err != nil {
		return nil, err
	}
	return uc.cartResponse(c), nil
}

func (uc *WaiterUseCase) cartResponse(c *cart.Cart) *dto.CartResponse {
	r := dto.FromCart(c, uc.tipPercent)
	return &r
}
