package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound             = errors.New("recurso no encontrado")
	ErrInvalidInput         = errors.New("entrada inválida")
	ErrUnauthorized         = errors.New("no autorizado")
	ErrForbidden            = errors.New("acceso denegado")
	ErrConflict             = errors.New("conflicto con el estado actual")
	ErrUnavailable          = errors.New("No se puede conectar con el servidor")
	ErrMissingIdentity      = errors.New("sesión sin identificador de usuario")
	ErrUnknownRole          = errors.New("Rol de usuario no válido")
	ErrTableOccupied        = errors.New("La mesa está ocupada; no se puede cambiar su estado")
	ErrOrdersNotReady       = errors.New("Todas las comandas de la mesa deben estar LISTA antes de cerrar la cuenta")
	ErrNoActiveOrders       = errors.New("La mesa no tiene comandas activas")
	ErrEmptyCart            = errors.New("El carrito está vacío")
	ErrInvalidTransition    = errors.New("transición de estado no permitida")
	ErrConfirmationRequired = errors.New("se requiere confirmación")
	ErrPartialFailure       = errors.New("la operación quedó incompleta")
)

// ConfirmationRequiredError se devuelve cuando una acción necesita que el usuario la confirme.
// El llamador repite la operación con confirmed=true.
type ConfirmationRequiredError struct {
	Action string
	Prompt string
}

func (e *ConfirmationRequiredError) Error() string { return e.Prompt }

func (e *ConfirmationRequiredError) Unwrap() error { return ErrConfirmationRequired }

// NeedsConfirmation construye un ConfirmationRequiredError.
func NeedsConfirmation(action, prompt string) error {
	return &ConfirmationRequiredError{Action: action, Prompt: prompt}
}

// UserError error con un mensaje para mostrar al usuario; errors.Is sigue funcionando contra Err.
type UserError struct {
	Err     error
	Message string
}

func (e *UserError) Error() string { return e.Message }

func (e *UserError) Unwrap() error { return e.Err }

// WithMessage envuelve err con un mensaje para el usuario.
func WithMessage(err error, msg string) error {
	return &UserError{Err: err, Message: msg}
}
