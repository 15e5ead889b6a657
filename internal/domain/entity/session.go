package entity

import "time"

// Profile perfil del usuario autenticado, tal como lo devolvió el login del backend.
type Profile struct {
	UserID string
	Email  string
	Name   string
	Role   string
}

// Session sesión explícita: token del backend + perfil. Se construye en el login y se destruye en el logout.
type Session struct {
	ID        string
	Token     string // bearer token del backend
	Profile   *Profile
	CreatedAt time.Time
	ExpiresAt time.Time
}

// BearerToken devuelve el token del backend.
func (s *Session) BearerToken() string {
	if s == nil {
		return ""
	}
	return s.Token
}

// IsAuthenticated requiere token, perfil e identificador.
func (s *Session) IsAuthenticated() bool {
	return s != nil && s.Token != "" && s.Profile != nil && s.Profile.UserID != ""
}

// Expired indica si la sesión venció respecto a now. Sin ExpiresAt no vence.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}

// UserID identificador del usuario o "" si no hay perfil.
func (s *Session) UserID() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return s.Profile.UserID
}

// Role rol normalizado del perfil.
func (s *Session) Role() string {
	if s == nil || s.Profile == nil {
		return ""
	}
	return NormalizeRole(s.Profile.Role)
}
