package auth

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain"
	"github.com/jhoicas/comandas-bff/internal/domain/cart"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	pkgjwt "github.com/jhoicas/comandas-bff/pkg/jwt"
)

// ─── Fakes ──────────────────────────────────────────────────────────────────

type fakeGateway struct {
	result   *repository.LoginResult
	err      error
	calls    int
	register repository.Registration
}

func (f *fakeGateway) Login(_ context.Context, _, _ string) (*repository.LoginResult, error) {
	f.calls++
	return f.result, f.err
}

func (f *fakeGateway) Register(_ context.Context, in repository.Registration) error {
	f.register = in
	return f.err
}

type fakeSessions struct {
	mu   sync.Mutex
	data map[string]*entity.Session
}

func newFakeSessions() *fakeSessions { return &fakeSessions{data: map[string]*entity.Session{}} }

func (f *fakeSessions) Save(_ context.Context, s *entity.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *s
	p := *s.Profile
	cp.Profile = &p
	f.data[s.ID] = &cp
	return nil
}

func (f *fakeSessions) Get(_ context.Context, id string) (*entity.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data[id], nil
}

func (f *fakeSessions) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.data, id)
	return nil
}

type fakeCarts struct{ deleted []string }

func (f *fakeCarts) Get(_ context.Context, _ string, tableID int64) (*cart.Cart, error) {
	return cart.New(tableID), nil
}
func (f *fakeCarts) Save(context.Context, string, *cart.Cart) error { return nil }
func (f *fakeCarts) Delete(context.Context, string, int64) error    { return nil }

func (f *fakeCarts) DeleteSession(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type backendErr struct {
	sentinel error
	msg      string
}

func (e *backendErr) Error() string          { return e.msg }
func (e *backendErr) Unwrap() error          { return e.sentinel }
func (e *backendErr) BackendMessage() string { return e.msg }

// ─── Helpers ────────────────────────────────────────────────────────────────

const testSecret = "secreto-de-pruebas"

func newUseCase(t *testing.T, gw *fakeGateway) (*AuthUseCase, *fakeSessions, *fakeCarts) {
	t.Helper()
	sessions := newFakeSessions()
	carts := &fakeCarts{}
	uc := NewAuthUseCase(gw, sessions, carts, JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "test"}, "http://backend:8081/api/", nil)
	return uc, sessions, carts
}

func backendToken(t *testing.T, claims gojwt.MapClaims) string {
	t.Helper()
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("otra-llave"))
	require.NoError(t, err)
	return tok
}

func loginResult(token, id, role string) *repository.LoginResult {
	return &repository.LoginResult{
		Token:   token,
		Type:    "Bearer",
		Profile: entity.Profile{UserID: id, Email: "ana@restaurante.co", Name: "Ana", Role: role},
	}
}

// ─── Login ──────────────────────────────────────────────────────────────────

func TestLogin_GuardaSesionYRedirigePorRol(t *testing.T) {
	gw := &fakeGateway{result: loginResult("tok-backend", "USR-1", "mesero")}
	uc, sessions, _ := newUseCase(t, gw)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: " ana@restaurante.co ", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "/mesero/dashboard", out.Redirect)
	assert.Equal(t, "MESERO", out.User.Role)
	assert.Equal(t, "USR-1", out.User.UserID)
	assert.False(t, out.User.DegradedID)

	sessionID, role, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "MESERO", role)

	s, _ := sessions.Get(context.Background(), sessionID)
	require.NotNil(t, s)
	assert.Equal(t, "tok-backend", s.Token)
	assert.True(t, s.IsAuthenticated())
}

func TestLogin_IdentificadorDesdeClaims(t *testing.T) {
	tok := backendToken(t, gojwt.MapClaims{"sub": "ana@restaurante.co", "id_usuario": "USR-77"})
	uc, _, _ := newUseCase(t, &fakeGateway{result: loginResult(tok, "", "COCINERO")})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@restaurante.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "USR-77", out.User.UserID)
	assert.Equal(t, "/cocinero/dashboard", out.Redirect)
}

func TestLogin_SinIdentificadorUsaEmail(t *testing.T) {
	uc, _, _ := newUseCase(t, &fakeGateway{result: loginResult("opaco", "", "ADMIN")})

	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "ana@restaurante.co", Password: "x"})
	require.NoError(t, err)
	assert.Equal(t, "ana@restaurante.co", out.User.UserID)
	assert.True(t, out.User.DegradedID)
}

func TestLogin_CamposVaciosNoLlamanAlBackend(t *testing.T) {
	gw := &fakeGateway{}
	uc, _, _ := newUseCase(t, gw)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "  ", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, gw.calls)
}

func TestLogin_RolNoReconocidoNoGuardaSesion(t *testing.T) {
	uc, sessions, _ := newUseCase(t, &fakeGateway{result: loginResult("tok", "USR-1", "CAJERO")})

	_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	assert.Empty(t, sessions.data)
}

func TestLogin_MensajesSegunError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"sin conexión", &backendErr{sentinel: domain.ErrUnavailable}, "No se puede conectar con el servidor (http://backend:8081/api)"},
		{"401", &backendErr{sentinel: domain.ErrUnauthorized, msg: "Bad credentials"}, "Credenciales incorrectas"},
		{"404", &backendErr{sentinel: domain.ErrNotFound}, "Endpoint no encontrado: http://backend:8081/api/auth/login"},
		{"mensaje del backend", &backendErr{sentinel: errors.New("500"), msg: "Usuario bloqueado"}, "Usuario bloqueado"},
		{"genérico", errors.New("boom"), "Error al iniciar sesión"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, _, _ := newUseCase(t, &fakeGateway{err: tc.err})
			_, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "x"})
			require.Error(t, err)
			var ue *domain.UserError
			require.ErrorAs(t, err, &ue)
			assert.Equal(t, tc.want, ue.Message)
		})
	}
}

// ─── Sesión / Logout ────────────────────────────────────────────────────────

func TestSession_CompletaIdentificadorDesdeToken(t *testing.T) {
	uc, sessions, _ := newUseCase(t, &fakeGateway{})
	tok := backendToken(t, gojwt.MapClaims{"userId": 12})
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{
		ID: "s1", Token: tok, Profile: &entity.Profile{Email: "a@b.co", Role: "MESERO"},
	}))

	s, err := uc.Session(context.Background(), "s1")
	require.NoError(t, err)
	assert.Equal(t, "12", s.UserID())

	stored, _ := sessions.Get(context.Background(), "s1")
	assert.Equal(t, "12", stored.Profile.UserID, "la sesión se vuelve a guardar con el identificador")
}

func TestSession_InexistenteOVencida(t *testing.T) {
	uc, sessions, _ := newUseCase(t, &fakeGateway{})
	_, err := uc.Session(context.Background(), "nada")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, sessions.Save(context.Background(), &entity.Session{
		ID: "s2", Token: "t", Profile: &entity.Profile{UserID: "1", Role: "ADMIN"},
		ExpiresAt: time.Now().Add(-time.Minute),
	}))
	_, err = uc.Session(context.Background(), "s2")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.NotContains(t, sessions.data, "s2")
}

func TestSession_RolInvalidoDescartaSesion(t *testing.T) {
	uc, sessions, carts := newUseCase(t, &fakeGateway{})
	require.NoError(t, sessions.Save(context.Background(), &entity.Session{
		ID: "s3", Token: "t", Profile: &entity.Profile{UserID: "1", Role: "CAJERO"},
	}))

	_, err := uc.Session(context.Background(), "s3")
	assert.ErrorIs(t, err, domain.ErrUnknownRole)
	assert.NotContains(t, sessions.data, "s3")
	assert.Equal(t, []string{"s3"}, carts.deleted)
}

func TestLogout_BorraSesionYCarritos(t *testing.T) {
	uc, _, carts := newUseCase(t, &fakeGateway{result: loginResult("tok", "USR-1", "MESERO")})
	out, err := uc.Login(context.Background(), dto.LoginRequest{Email: "a@b.co", Password: "x"})
	require.NoError(t, err)
	sessionID, _, err := pkgjwt.Parse(testSecret, out.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(context.Background(), sessionID))
	_, err = uc.Session(context.Background(), sessionID)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Equal(t, []string{sessionID}, carts.deleted)
}

// ─── Registro ───────────────────────────────────────────────────────────────

func TestRegister_ReenviaAlBackend(t *testing.T) {
	gw := &fakeGateway{}
	uc, _, _ := newUseCase(t, gw)

	err := uc.Register(context.Background(), dto.RegisterRequest{Name: " Luis ", Email: "l@r.co", Password: "secreto", Role: "role_mesero"})
	require.NoError(t, err)
	assert.Equal(t, "Luis", gw.register.Name)
	assert.Equal(t, "MESERO", gw.register.Role)

	err = uc.Register(context.Background(), dto.RegisterRequest{Email: "l@r.co"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
