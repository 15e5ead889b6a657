// Package memory implementaciones en memoria de los stores del BFF (sesiones, carritos,
// compensaciones). Sirven para desarrollo y una sola instancia.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones en un mapa protegido por mutex. Guarda copias.
type SessionStore struct {
	mu   sync.RWMutex
	data map[string]entity.Session
}

// NewSessionStore crea el store vacío.
func NewSessionStore() *SessionStore {
	return &SessionStore{data: make(map[string]entity.Session)}
}

// Save guarda o reemplaza la sesión.
func (s *SessionStore) Save(_ context.Context, sess *entity.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[sess.ID] = copySession(sess)
	return nil
}

// Get devuelve la sesión o nil si no existe.
func (s *SessionStore) Get(_ context.Context, id string) (*entity.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess, ok := s.data[id]
	if !ok {
		return nil, nil
	}
	out := copySession(&sess)
	return &out, nil
}

// Delete borra la sesión; no falla si no existe.
func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

func copySession(s *entity.Session) entity.Session {
	out := *s
	if s.Profile != nil {
		p := *s.Profile
		out.Profile = &p
	}
	return out
}
