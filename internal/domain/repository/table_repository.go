package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// TableRepository puerto para mesas (/mesas).
type TableRepository interface {
	Resource[entity.Table, int64]
	ListAvailable(ctx context.Context, token string) ([]*entity.Table, error)
	ListOccupied(ctx context.Context, token string) ([]*entity.Table, error)
	SetStatus(ctx context.Context, token string, id int64, status entity.TableStatus) error
}
