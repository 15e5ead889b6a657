package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.CartRepository = (*CartStore)(nil)

type cartKey struct {
	session string
	table   int64
}

// CartStore carritos por sesión y mesa. Get y Save trabajan con copias.
type CartStore struct {
	mu    sync.Mutex
	carts map[cartKey]*cart.Cart
}

// NewCartStore crea el store vacío.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[cartKey]*cart.Cart)}
}

// Get devuelve el carrito de la mesa, o uno vacío.
func (s *CartStore) Get(_ context.Context, sessionID string, tableID int64) (*cart.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.carts[cartKey{sessionID, tableID}]
	if !ok {
		return cart.New(tableID), nil
	}
	return copyCart(c), nil
}

// Save guarda el carrito; uno vacío se descarta.
func (s *CartStore) Save(_ context.Context, sessionID string, c *cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := cartKey{sessionID, c.TableID}
	if c.IsEmpty() {
		delete(s.carts, key)
		return nil
	}
	s.carts[key] = copyCart(c)
	return nil
}

// Delete descarta el carrito de la mesa.
func (s *CartStore) Delete(_ context.Context, sessionID string, tableID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, cartKey{sessionID, tableID})
	return nil
}

// DeleteSession descarta todos los carritos de la sesión.
func (s *CartStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.carts {
		if k.session == sessionID {
			delete(s.carts, k)
		}
	}
	return nil
}

func copyCart(c *cart.Cart) *cart.Cart {
	out := cart.New(c.TableID)
	out.Lines = make([]*cart.Line, 0, len(c.Lines))
	for _, l := range c.Lines {
		line := *l
		out.Lines = append(out.Lines, &line)
	}
	return out
}
