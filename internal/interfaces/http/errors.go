package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/application/saga"
	"github.com/jhoicas/comandas-bff/internal/domain"
)

type backendMessenger interface {
	BackendMessage() string
}

// errorStatus mapea errores de dominio a status y código.
var errorStatus = []struct {
	err    error
	status int
	code   string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED"},
	{domain.ErrUnknownRole, fiber.StatusForbidden, "UNKNOWN_ROLE"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN"},
	{domain.ErrMissingIdentity, fiber.StatusUnauthorized, "MISSING_IDENTITY"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND"},
	{domain.ErrTableOccupied, fiber.StatusConflict, "TABLE_OCCUPIED"},
	{domain.ErrOrdersNotReady, fiber.StatusConflict, "ORDERS_NOT_READY"},
	{domain.ErrNoActiveOrders, fiber.StatusConflict, "NO_ACTIVE_ORDERS"},
	{domain.ErrEmptyCart, fiber.StatusConflict, "EMPTY_CART"},
	{domain.ErrInvalidTransition, fiber.StatusConflict, "INVALID_TRANSITION"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT"},
	{domain.ErrUnavailable, fiber.StatusServiceUnavailable, "BACKEND_UNAVAILABLE"},
}

// respondError escribe el error con el status que le corresponde.
func respondError(c *fiber.Ctx, err error) error {
	var confirm *domain.ConfirmationRequiredError
	if errors.As(err, &confirm) {
		return c.Status(fiber.StatusPreconditionRequired).JSON(dto.ConfirmationResponse{
			Code:    "CONFIRMATION_REQUIRED",
			Action:  confirm.Action,
			Message: confirm.Prompt,
		})
	}

	var execErr *saga.ExecutionError
	if errors.As(err, &execErr) && execErr.Partial() {
		return c.Status(fiber.StatusBadGateway).JSON(dto.PartialFailureResponse{
			Code:           "PARTIAL_FAILURE",
			Message:        userMessage(execErr.Cause),
			FailedStep:     execErr.FailedStep,
			CompletedSteps: execErr.Completed,
			PendingSteps:   execErr.NotCompensated,
		})
	}

	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return c.Status(e.status).JSON(dto.ErrorResponse{Code: e.code, Message: userMessage(err)})
		}
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: userMessage(err)})
}

// userMessage prioriza el mensaje pensado para el usuario, luego el del backend.
func userMessage(err error) string {
	var ue *domain.UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	var bm backendMessenger
	if errors.As(err, &bm) && bm.BackendMessage() != "" {
		return bm.BackendMessage()
	}
	for _, e := range errorStatus {
		if errors.Is(err, e.err) {
			return e.err.Error()
		}
	}
	return err.Error()
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
