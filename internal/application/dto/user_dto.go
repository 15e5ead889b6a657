package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token del BFF, perfil y ruta del tablero según el rol.
type LoginResponse struct {
	Token     string          `json:"token"`
	TokenType string          `json:"token_type"`
	ExpiresAt time.Time       `json:"expires_at"`
	Redirect  string          `json:"redirect"`
	User      ProfileResponse `json:"user"`
}

// ProfileResponse perfil de la sesión. DegradedID=true cuando el identificador es el email.
type ProfileResponse struct {
	UserID     string `json:"user_id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	DegradedID bool   `json:"degraded_id,omitempty"`
	Redirect   string `json:"redirect,omitempty"`
}

// RegisterRequest registro de usuario (se reenvía al backend).
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"omitempty"`
	Phone    string `json:"phone" validate:"omitempty"`
}

// UserRequest alta o edición de usuario desde administración.
type UserRequest struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password,omitempty"`
	RoleIDs  []int64 `json:"role_ids,omitempty"`
}

// UserResponse usuario (sin password).
type UserResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   string          `json:"role,omitempty"`
	Roles  []RoleResponse  `json:"roles,omitempty"`
	Phones []PhoneResponse `json:"phones,omitempty"`
}

// RoleRequest alta o edición de rol.
type RoleRequest struct {
	Name string `json:"name"`
}

// RoleResponse rol.
type RoleResponse struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	UsersCount int    `json:"users_count,omitempty"`
}

// PhoneRequest alta o edición de teléfono.
type PhoneRequest struct {
	Number string `json:"number"`
}

// PhoneResponse teléfono y usuarios asociados.
type PhoneResponse struct {
	ID     int64          `json:"id"`
	Number string         `json:"number"`
	Users  []UserRefEntry `json:"users,omitempty"`
}

// UserRefEntry referencia corta a un usuario.
type UserRefEntry struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
