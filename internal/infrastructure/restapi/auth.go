package restapi

import (
	"context"
	"net/http"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.AuthGateway = (*AuthGateway)(nil)

// AuthGateway login y registro contra /auth. No envía token.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye el gateway de auth.
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

// BaseURL URL base del backend (para los mensajes de error del login).
func (g *AuthGateway) BaseURL() string { return g.c.BaseURL() }

// Login POST /auth/login.
func (g *AuthGateway) Login(ctx context.Context, email, password string) (*repository.LoginResult, error) {
	var resp loginResponse
	if err := g.c.do(ctx, http.MethodPost, "auth/login", "", loginRequest{Email: email, Password: password}, &resp); err != nil {
		return nil, err
	}
	email = firstString(resp.Email, email)
	return &repository.LoginResult{
		Token: resp.Token,
		Type:  resp.Type,
		Profile: entity.Profile{
			UserID: string(resp.IDUsuario),
			Email:  email,
			Name:   resp.Nombre,
			Role:   resp.Rol,
		},
	}, nil
}

// Register POST /auth/register.
func (g *AuthGateway) Register(ctx context.Context, in repository.Registration) error {
	body := registerRequest{
		Nombre:   in.Name,
		Email:    in.Email,
		Password: in.Password,
		Rol:      in.Role,
		Telefono: in.Phone,
	}
	return g.c.do(ctx, http.MethodPost, "auth/register", "", body, nil)
}
