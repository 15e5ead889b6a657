package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/application/usecase"
)

// resourceHandler CRUD HTTP genérico sobre un ResourceUseCase.
type resourceHandler[T any, ID comparable, Req any, Resp any] struct {
	uc      *usecase.ResourceUseCase[T, ID, Req, Resp]
	parseID func(string) (ID, bool)
}

// registerResource monta GET /, GET /:id, POST /, PUT /:id y DELETE /:id bajo path.
func registerResource[T any, ID comparable, Req any, Resp any](
	r fiber.Router,
	path string,
	uc *usecase.ResourceUseCase[T, ID, Req, Resp],
	parseID func(string) (ID, bool),
) {
	h := &resourceHandler[T, ID, Req, Resp]{uc: uc, parseID: parseID}
	g := r.Group(path)
	g.Get("/", h.List)
	g.Post("/", h.Create)
	g.Get("/:id", h.Get)
	g.Put("/:id", h.Update)
	g.Delete("/:id", h.Delete)
}

func int64ID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	return id, err == nil && id > 0
}

func stringID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func (h *resourceHandler[T, ID, Req, Resp]) id(c *fiber.Ctx) (ID, bool) {
	return h.parseID(c.Params("id"))
}

// List con paginación opcional (?limit=&offset=).
func (h *resourceHandler[T, ID, Req, Resp]) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badRequest(c, "INVALID_QUERY", "paginación inválida")
	}
	items, err := h.uc.List(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.Paginate(items, page))
}

func (h *resourceHandler[T, ID, Req, Resp]) Get(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Get(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func (h *resourceHandler[T, ID, Req, Resp]) Create(c *fiber.Ctx) error {
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Create(c.UserContext(), GetSession(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

func (h *resourceHandler[T, ID, Req, Resp]) Update(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return invalidID(c, "id")
	}
	var in Req
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.Update(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete pide confirmación (428) salvo ?confirmar=true.
func (h *resourceHandler[T, ID, Req, Resp]) Delete(c *fiber.Ctx) error {
	id, ok := h.id(c)
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Delete(c.UserContext(), GetSession(c), id, confirmed(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
