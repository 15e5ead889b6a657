package repository

import "github.com/jhoicas/comandas-bff/internal/domain/entity"

// CategoryRepository puerto para categorías (/categorias).
type CategoryRepository interface {
	Resource[entity.Category, int64]
}

// StateRepository puerto para estados (/estados).
type StateRepository interface {
	Resource[entity.State, int64]
}

// RoleRepository puerto para roles (/roles).
type RoleRepository interface {
	Resource[entity.Role, int64]
}

// PhoneRepository puerto para teléfonos (/telefonos).
type PhoneRepository interface {
	Resource[entity.Phone, int64]
}
