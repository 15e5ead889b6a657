package restapi

import (
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.StateRepository    = (*StateRepo)(nil)
	_ repository.RoleRepository     = (*RoleRepo)(nil)
	_ repository.PhoneRepository    = (*PhoneRepo)(nil)
)

// CategoryRepo categorías contra /categorias.
type CategoryRepo struct {
	*resource[categoriaWire, entity.Category, int64]
}

// NewCategoryRepo construye el repositorio de categorías.
func NewCategoryRepo(c *Client) *CategoryRepo {
	return &CategoryRepo{newResource[categoriaWire, entity.Category, int64](c, "categorias", (*categoriaWire).toEntity, categoriaFromEntity, "categorias")}
}

// StateRepo estados contra /estados.
type StateRepo struct {
	*resource[estadoWire, entity.State, int64]
}

// NewStateRepo construye el repositorio de estados.
func NewStateRepo(c *Client) *StateRepo {
	return &StateRepo{newResource[estadoWire, entity.State, int64](c, "estados", (*estadoWire).toEntity, estadoFromEntity, "estados")}
}

// RoleRepo roles contra /roles. El listado puede venir como arreglo, {roles} o {data}.
type RoleRepo struct {
	*resource[rolWire, entity.Role, int64]
}

// NewRoleRepo construye el repositorio de roles.
func NewRoleRepo(c *Client) *RoleRepo {
	return &RoleRepo{newResource[rolWire, entity.Role, int64](c, "roles", (*rolWire).toEntity, rolFromEntity, "roles")}
}

// PhoneRepo teléfonos contra /telefonos.
type PhoneRepo struct {
	*resource[telefonoWire, entity.Phone, int64]
}

// NewPhoneRepo construye el repositorio de teléfonos.
func NewPhoneRepo(c *Client) *PhoneRepo {
	return &PhoneRepo{newResource[telefonoWire, entity.Phone, int64](c, "telefonos", (*telefonoWire).toEntity, telefonoFromEntity, "telefonos")}
}
