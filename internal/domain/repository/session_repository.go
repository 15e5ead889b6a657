package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// SessionRepository guarda las sesiones del BFF. Get devuelve (nil, nil) si no existe.
type SessionRepository interface {
	Save(ctx context.Context, s *entity.Session) error
	Get(ctx context.Context, id string) (*entity.Session, error)
	Delete(ctx context.Context, id string) error
}

// CompensationRepository compensaciones de saga fallidas pendientes de resolver.
type CompensationRepository interface {
	Save(ctx context.Context, p *entity.PendingCompensation) error
	GetByID(ctx context.Context, id string) (*entity.PendingCompensation, error)
	ListUnresolved(ctx context.Context) ([]*entity.PendingCompensation, error)
	Update(ctx context.Context, p *entity.PendingCompensation) error
}
