package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios contra /usuarios.
type UserRepo struct {
	*resource[usuarioWire, entity.User, string]
}

// NewUserRepo construye el repositorio de usuarios.
func NewUserRepo(c *Client) *UserRepo {
	return &UserRepo{newResource[usuarioWire, entity.User, string](c, "usuarios", (*usuarioWire).toEntity, usuarioFromEntity, "usuarios")}
}

// ListByRole GET /usuarios/rol/{rol}.
func (r *UserRepo) ListByRole(ctx context.Context, token, role string) ([]*entity.User, error) {
	return r.listAt(ctx, token, "usuarios/rol/"+url.PathEscape(role))
}

// LinkPhone POST /usuarios/{id}/telefonos/{idTelefono}.
func (r *UserRepo) LinkPhone(ctx context.Context, token, userID string, phoneID int64) error {
	return r.c.do(ctx, http.MethodPost, phonePath(userID, phoneID), token, struct{}{}, nil)
}

// UnlinkPhone DELETE /usuarios/{id}/telefonos/{idTelefono}.
func (r *UserRepo) UnlinkPhone(ctx context.Context, token, userID string, phoneID int64) error {
	return r.c.do(ctx, http.MethodDelete, phonePath(userID, phoneID), token, nil, nil)
}

func phonePath(userID string, phoneID int64) string {
	return fmt.Sprintf("usuarios/%s/telefonos/%d", url.PathEscape(userID), phoneID)
}
