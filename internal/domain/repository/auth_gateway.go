package repository

import (
	"context"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// LoginResult respuesta del login del backend.
type LoginResult struct {
	Token   string
	Type    string
	Profile entity.Profile // UserID puede venir vacío
}

// Registration datos para registrar un usuario en el backend.
type Registration struct {
	Name     string
	Email    string
	Password string
	Role     string
	Phone    string
}

// AuthGateway puerto hacia /auth del backend.
type AuthGateway interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Register(ctx context.Context, in Registration) error
}
