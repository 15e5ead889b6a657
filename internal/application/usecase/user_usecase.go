package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// UserUseCase CRUD de usuarios, listado por rol y asociación de teléfonos.
type UserUseCase struct {
	*ResourceUseCase[entity.User, string, dto.UserRequest, dto.UserResponse]
	repo repository.UserRepository
	log  *logger.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{
		ResourceUseCase: NewResourceUseCase("usuario", repository.Resource[entity.User, string](repo), userFromRequest, dto.FromUser, log),
		repo:            repo,
		log:             log,
	}
}

// ListByRole usuarios con el rol indicado (ej. COCINERO para asignar comandas).
func (uc *UserUseCase) ListByRole(ctx context.Context, s *entity.Session, role string) ([]dto.UserResponse, error) {
	role = entity.NormalizeRole(role)
	if role == "" {
		return nil, invalid("El rol es obligatorio")
	}
	users, err := uc.repo.ListByRole(ctx, s.BearerToken(), role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}

// LinkPhone asocia un teléfono al usuario.
func (uc *UserUseCase) LinkPhone(ctx context.Context, s *entity.Session, userID string, phoneID int64) error {
	if err := uc.repo.LinkPhone(ctx, s.BearerToken(), userID, phoneID); err != nil {
		return err
	}
	uc.log.Info().Str("target_user", userID).Int64("phone_id", phoneID).Msg("teléfono asociado")
	return nil
}

// UnlinkPhone desasocia un teléfono del usuario.
func (uc *UserUseCase) UnlinkPhone(ctx context.Context, s *entity.Session, userID string, phoneID int64) error {
	if err := uc.repo.UnlinkPhone(ctx, s.BearerToken(), userID, phoneID); err != nil {
		return err
	}
	uc.log.Info().Str("target_user", userID).Int64("phone_id", phoneID).Msg("teléfono desasociado")
	return nil
}

func userFromRequest(in dto.UserRequest) (*entity.User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)
	switch {
	case name == "":
		return nil, invalid("El nombre es obligatorio")
	case !validEmail(email):
		return nil, invalid("Email no válido")
	case in.Password != "" && len(in.Password) < 6:
		return nil, invalid("La contraseña debe tener al menos 6 caracteres")
	}
	u := &entity.User{Name: name, Email: email, Password: in.Password}
	for _, id := range in.RoleIDs {
		u.Roles = append(u.Roles, entity.Role{ID: id})
	}
	return u, nil
}
