package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// UserRepository puerto para usuarios (/usuarios).
type UserRepository interface {
	Resource[entity.User, string]
	ListByRole(ctx context.Context, token, role string) ([]*entity.User, error)
	LinkPhone(ctx context.Context, token, userID string, phoneID int64) error
	UnlinkPhone(ctx context.Context, token, userID string, phoneID int64) error
}
