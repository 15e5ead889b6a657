package restapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jhoicas/comandas-bff/internal/domain"
)

// APIError falla de una llamada al backend. Status 0 = no hubo respuesta (red, timeout, DNS).
// errors.Is funciona contra los errores de dominio según el status.
type APIError struct {
	Status  int
	Method  string
	URL     string
	Message string // mensaje del backend, si lo envió
	Err     error
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s %s: %s: %v", e.Method, e.URL, domain.ErrUnavailable.Error(), e.Err)
	}
	if e.Message != "" {
		return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.URL, e.Status, e.Message)
	}
	return fmt.Sprintf("%s %s: HTTP %d", e.Method, e.URL, e.Status)
}

// Unwrap expone el error de dominio correspondiente y la causa de red, si la hay.
func (e *APIError) Unwrap() []error {
	errs := []error{e.sentinel()}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// BackendMessage mensaje del backend tal cual (vacío si no envió).
func (e *APIError) BackendMessage() string { return e.Message }

func (e *APIError) sentinel() error {
	switch e.Status {
	case 0:
		return domain.ErrUnavailable
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return domain.ErrInvalidInput
	case http.StatusUnauthorized:
		return domain.ErrUnauthorized
	case http.StatusForbidden:
		return domain.ErrForbidden
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrConflict
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return domain.ErrUnavailable
	default:
		return errGeneric
	}
}

var errGeneric = errors.New("error del servidor")
