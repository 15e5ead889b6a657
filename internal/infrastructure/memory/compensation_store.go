package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.CompensationRepository = (*CompensationStore)(nil)

// CompensationStore compensaciones pendientes en memoria.
type CompensationStore struct {
	mu    sync.RWMutex
	items map[string]entity.PendingCompensation
}

// NewCompensationStore crea el store vacío.
func NewCompensationStore() *CompensationStore {
	return &CompensationStore{items: make(map[string]entity.PendingCompensation)}
}

// Save registra una compensación.
func (s *CompensationStore) Save(_ context.Context, p *entity.PendingCompensation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[p.ID] = *p
	return nil
}

// GetByID devuelve ErrNotFound si no existe.
func (s *CompensationStore) GetByID(_ context.Context, id string) (*entity.PendingCompensation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

// ListUnresolved pendientes, las más antiguas primero.
func (s *CompensationStore) ListUnresolved(_ context.Context) ([]*entity.PendingCompensation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*entity.PendingCompensation, 0)
	for _, p := range s.items {
		if p.Resolved() {
			continue
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// Update reemplaza una compensación existente.
func (s *CompensationStore) Update(_ context.Context, p *entity.PendingCompensation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[p.ID]; !ok {
		return domain.ErrNotFound
	}
	s.items[p.ID] = *p
	return nil
}
