package repository

import "context"

// Resource CRUD uniforme de un recurso del backend REST. token es el bearer token de la sesión
// (vacío = sin cabecera Authorization). Cada método es una sola llamada, sin reintentos ni caché.
type Resource[T any, ID comparable] interface {
	List(ctx context.Context, token string) ([]*T, error)
	GetByID(ctx context.Context, token string, id ID) (*T, error)
	Create(ctx context.Context, token string, v *T) (*T, error)
	Update(ctx context.Context, token string, id ID, v *T) (*T, error)
	Delete(ctx context.Context, token string, id ID) error
}
