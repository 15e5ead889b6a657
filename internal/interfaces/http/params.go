package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
)

// paramInt64 lee un parámetro de ruta numérico positivo.
func paramInt64(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func invalidID(c *fiber.Ctx, name string) error {
	return badRequest(c, "INVALID_ID", name+" debe ser un número positivo")
}

// confirmed lee la confirmación del query (?confirmar=true) o del cuerpo {"confirmed": true}.
func confirmed(c *fiber.Ctx) bool {
	if c.QueryBool("confirmar", false) || c.QueryBool("confirmed", false) {
		return true
	}
	if len(c.Body()) == 0 {
		return false
	}
	var in dto.ConfirmRequest
	if err := c.BodyParser(&in); err != nil {
		return false
	}
	return in.Confirmed
}
