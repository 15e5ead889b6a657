package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// ResourceUseCase CRUD de administración sobre un recurso del backend: valida la entrada,
// reenvía con el token de la sesión y convierte la respuesta.
type ResourceUseCase[T any, ID comparable, Req any, Resp any] struct {
	name     string
	repo     repository.Resource[T, ID]
	toEntity func(Req) (*T, error)
	toResp   func(*T) Resp
	log      *logger.Logger
}

// NewResourceUseCase construye el caso de uso. name se usa en mensajes y logs ("mesa", "producto").
func NewResourceUseCase[T any, ID comparable, Req any, Resp any](
	name string,
	repo repository.Resource[T, ID],
	toEntity func(Req) (*T, error),
	toResp func(*T) Resp,
	log *logger.Logger,
) *ResourceUseCase[T, ID, Req, Resp] {
	if log == nil {
		log = logger.Nop()
	}
	return &ResourceUseCase[T, ID, Req, Resp]{name: name, repo: repo, toEntity: toEntity, toResp: toResp, log: log}
}

// Name nombre del recurso.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Name() string { return uc.name }

// List lista todos los registros.
func (uc *ResourceUseCase[T, ID, Req, Resp]) List(ctx context.Context, s *entity.Session) ([]Resp, error) {
	items, err := uc.repo.List(ctx, s.BearerToken())
	if err != nil {
		return nil, err
	}
	out := make([]Resp, 0, len(items))
	for _, it := range items {
		if it != nil {
			out = append(out, uc.toResp(it))
		}
	}
	return out, nil
}

// Count cantidad de registros.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Count(ctx context.Context, s *entity.Session) (int, error) {
	items, err := uc.repo.List(ctx, s.BearerToken())
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Get obtiene un registro por id.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Get(ctx context.Context, s *entity.Session, id ID) (*Resp, error) {
	it, err := uc.repo.GetByID(ctx, s.BearerToken(), id)
	if err != nil {
		return nil, err
	}
	out := uc.toResp(it)
	return &out, nil
}

// Create valida y crea.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Create(ctx context.Context, s *entity.Session, in Req) (*Resp, error) {
	v, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	it, err := uc.repo.Create(ctx, s.BearerToken(), v)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("resource", uc.name).Str("user_id", s.UserID()).Msg("registro creado")
	out := uc.toResp(it)
	return &out, nil
}

// Update valida y actualiza.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Update(ctx context.Context, s *entity.Session, id ID, in Req) (*Resp, error) {
	v, err := uc.toEntity(in)
	if err != nil {
		return nil, err
	}
	it, err := uc.repo.Update(ctx, s.BearerToken(), id, v)
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("resource", uc.name).Interface("id", id).Str("user_id", s.UserID()).Msg("registro actualizado")
	out := uc.toResp(it)
	return &out, nil
}

// Delete elimina tras confirmación. Si el backend ya no lo tiene (404) se informa como eliminado.
func (uc *ResourceUseCase[T, ID, Req, Resp]) Delete(ctx context.Context, s *entity.Session, id ID, confirmed bool) (*dto.DeleteResponse, error) {
	if !confirmed {
		return nil, domain.NeedsConfirmation(uc.name+".eliminar", fmt.Sprintf("¿Eliminar %s %v?", uc.name, id))
	}
	err := uc.repo.Delete(ctx, s.BearerToken(), id)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		uc.log.Info().Str("resource", uc.name).Interface("id", id).Msg("el registro ya no existía")
		return &dto.DeleteResponse{Deleted: true, AlreadyRemoved: true, Message: fmt.Sprintf("El registro ya había sido eliminado (%s %v)", uc.name, id)}, nil
	case err != nil:
		return nil, err
	}
	uc.log.Info().Str("resource", uc.name).Interface("id", id).Str("user_id", s.UserID()).Msg("registro eliminado")
	return &dto.DeleteResponse{Deleted: true, Message: fmt.Sprintf("Registro eliminado (%s %v)", uc.name, id)}, nil
}

func invalid(msg string) error {
	return domain.WithMessage(domain.ErrInvalidInput, msg)
}
