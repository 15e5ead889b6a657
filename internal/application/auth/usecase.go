package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/pkg/jwt"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase sesión del usuario: login contra el backend, perfil, logout y registro.
type AuthUseCase struct {
	gateway    repository.AuthGateway
	sessions   repository.SessionRepository
	carts      repository.CartRepository
	jwtCfg     JWTConfig
	backendURL string
	log        *logger.Logger
	now        func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth. backendURL se usa en los mensajes de error.
func NewAuthUseCase(
	gateway repository.AuthGateway,
	sessions repository.SessionRepository,
	carts repository.CartRepository,
	jwtCfg JWTConfig,
	backendURL string,
	log *logger.Logger,
) *AuthUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &AuthUseCase{
		gateway:    gateway,
		sessions:   sessions,
		carts:      carts,
		jwtCfg:     jwtCfg,
		backendURL: strings.TrimRight(backendURL, "/"),
		log:        log.Named("auth"),
		now:        time.Now,
	}
}

// Login valida contra el backend, resuelve el identificador del usuario, guarda la sesión
// y devuelve el token del BFF con la ruta del tablero según el rol.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.WithMessage(domain.ErrInvalidInput, "Email y contraseña son obligatorios")
	}

	res, err := uc.gateway.Login(ctx, email, in.Password)
	if err != nil {
		return nil, uc.loginError(err)
	}
	if res.Token == "" {
		return nil, domain.WithMessage(domain.ErrUnauthorized, "El servidor no devolvió un token")
	}

	profile := res.Profile
	if profile.Email == "" {
		profile.Email = email
	}
	profile.Role = entity.NormalizeRole(profile.Role)
	route, ok := entity.DashboardRoute(profile.Role)
	if !ok {
		uc.log.Warn().Str("email", profile.Email).Str("role", profile.Role).Msg("login con rol no reconocido")
		return nil, domain.WithMessage(domain.ErrUnknownRole, domain.ErrUnknownRole.Error())
	}
	profile.UserID = uc.resolveUserID(res.Token, &profile)

	now := uc.now()
	exp := time.Duration(uc.jwtCfg.ExpMinutes) * time.Minute
	session := &entity.Session{
		ID:        uuid.New().String(),
		Token:     res.Token,
		Profile:   &profile,
		CreatedAt: now,
		ExpiresAt: now.Add(exp),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("auth: guardar sesión: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, session.ID, profile.UserID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		_ = uc.sessions.Delete(ctx, session.ID)
		return nil, err
	}
	uc.log.Info().Str("user_id", profile.UserID).Str("role", profile.Role).Msg("sesión iniciada")

	return &dto.LoginResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: session.ExpiresAt,
		Redirect:  route,
		User:      dto.FromProfile(&profile),
	}, nil
}

// resolveUserID: idUsuario de la respuesta, luego los claims del token, y por último el email.
func (uc *AuthUseCase) resolveUserID(token string, p *entity.Profile) string {
	if p.UserID != "" {
		return p.UserID
	}
	if id := jwt.ExtractUserID(token); id != "" {
		return id
	}
	uc.log.Warn().Str("email", p.Email).Msg("sin identificador de usuario; se usa el email")
	return p.Email
}

func (uc *AuthUseCase) loginError(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnavailable):
		uc.log.Error().Err(err).Str("backend", uc.backendURL).Msg("backend no disponible en login")
		return domain.WithMessage(err, fmt.Sprintf("%s (%s)", domain.ErrUnavailable.Error(), uc.backendURL))
	case errors.Is(err, domain.ErrUnauthorized):
		return domain.WithMessage(err, "Credenciales incorrectas")
	case errors.Is(err, domain.ErrNotFound):
		return domain.WithMessage(err, fmt.Sprintf("Endpoint no encontrado: %s/auth/login", uc.backendURL))
	}
	var be interface{ BackendMessage() string }
	if errors.As(err, &be) && be.BackendMessage() != "" {
		return domain.WithMessage(err, be.BackendMessage())
	}
	uc.log.Error().Err(err).Msg("login falló")
	return domain.WithMessage(err, "Error al iniciar sesión")
}

// Session carga la sesión vigente. Sin sesión o vencida devuelve ErrUnauthorized; con un rol no
// reconocido la descarta y devuelve ErrUnknownRole. Si falta el identificador lo completa desde
// los claims del token y vuelve a guardar la sesión.
func (uc *AuthUseCase) Session(ctx context.Context, sessionID string) (*entity.Session, error) {
	s, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if s == nil || s.Token == "" || s.Profile == nil {
		return nil, domain.ErrUnauthorized
	}
	if s.Expired(uc.now()) {
		uc.discard(ctx, sessionID)
		return nil, domain.WithMessage(domain.ErrUnauthorized, "La sesión expiró")
	}
	if _, ok := entity.DashboardRoute(s.Profile.Role); !ok {
		uc.discard(ctx, sessionID)
		return nil, domain.WithMessage(domain.ErrUnknownRole, domain.ErrUnknownRole.Error())
	}
	if s.Profile.UserID == "" {
		s.Profile.UserID = uc.resolveUserID(s.Token, s.Profile)
		if err := uc.sessions.Save(ctx, s); err != nil {
			uc.log.Warn().Err(err).Str("session_id", s.ID).Msg("no se pudo guardar el identificador completado")
		}
	}
	return s, nil
}

// Profile perfil de la sesión.
func (uc *AuthUseCase) Profile(ctx context.Context, sessionID string) (*dto.ProfileResponse, error) {
	s, err := uc.Session(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	p := dto.FromProfile(s.Profile)
	return &p, nil
}

// Logout borra la sesión completa (token y perfil) y los carritos abiertos.
func (uc *AuthUseCase) Logout(ctx context.Context, sessionID string) error {
	if uc.carts != nil {
		if err := uc.carts.DeleteSession(ctx, sessionID); err != nil {
			uc.log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudieron borrar los carritos")
		}
	}
	if err := uc.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("auth: borrar sesión: %w", err)
	}
	return nil
}

func (uc *AuthUseCase) discard(ctx context.Context, sessionID string) {
	if err := uc.Logout(ctx, sessionID); err != nil {
		uc.log.Warn().Err(err).Str("session_id", sessionID).Msg("no se pudo descartar la sesión")
	}
}

// Register reenvía el registro al backend.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return domain.WithMessage(domain.ErrInvalidInput, "Nombre, email y contraseña son obligatorios")
	}
	return uc.gateway.Register(ctx, repository.Registration{
		Name:     strings.TrimSpace(in.Name),
		Email:    strings.TrimSpace(in.Email),
		Password: in.Password,
		Role:     entity.NormalizeRole(in.Role),
		Phone:    strings.TrimSpace(in.Phone),
	})
}
