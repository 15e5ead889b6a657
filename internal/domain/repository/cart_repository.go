package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/cart"
)

// CartRepository carritos por sesión y mesa. Get devuelve un carrito vacío si no existe.
type CartRepository interface {
	Get(ctx context.Context, sessionID string, tableID int64) (*cart.Cart, error)
	Save(ctx context.Context, sessionID string, c *cart.Cart) error
	Delete(ctx context.Context, sessionID string, tableID int64) error
	DeleteSession(ctx context.Context, sessionID string) error
}
