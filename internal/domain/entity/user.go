package entity

import "strings"

// Roles reconocidos por el sistema.
const (
	RoleAdmin    = "ADMIN"
	RoleMesero   = "MESERO"
	RoleCocinero = "COCINERO"
)

var dashboardRoutes = map[string]string{
	RoleAdmin:    "/admin/dashboard",
	RoleMesero:   "/mesero/dashboard",
	RoleCocinero: "/cocinero/dashboard",
}

// NormalizeRole pasa el rol a mayúsculas sin espacios ni prefijo ROLE_.
func NormalizeRole(role string) string {
	r := strings.ToUpper(strings.TrimSpace(role))
	return strings.TrimPrefix(r, "ROLE_")
}

// DashboardRoute devuelve la ruta del tablero para el rol; ok=false si el rol no es reconocido.
func DashboardRoute(role string) (string, bool) {
	route, ok := dashboardRoutes[NormalizeRole(role)]
	return route, ok
}

// Role rol de usuario.
type Role struct {
	ID         int64
	Name       string
	UsersCount int
}

// User usuario del restaurante (el id lo asigna el backend, ej. "USR-123456789").
type User struct {
	ID       string
	Name     string
	Email    string
	Password string // solo al crear o cambiar; nunca se devuelve
	Roles    []Role
	Phones   []Phone
}

// PrimaryRole nombre del primer rol, normalizado.
func (u *User) PrimaryRole() string {
	if len(u.Roles) == 0 {
		return ""
	}
	return NormalizeRole(u.Roles[0].Name)
}
