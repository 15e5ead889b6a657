package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// kitchenService lo implementa *kitchen.KitchenUseCase.
type kitchenService interface {
	Dashboard(ctx context.Context, s *entity.Session) (*dto.KitchenDashboardResponse, error)
	Queue(ctx context.Context, s *entity.Session, f dto.OrderFilter) ([]dto.OrderResponse, error)
	Order(ctx context.Context, s *entity.Session, id int64) (*dto.OrderResponse, error)
	StartPreparation(ctx context.Context, s *entity.Session, id int64, confirmed bool) (*dto.OrderResponse, error)
	MarkReady(ctx context.Context, s *entity.Session, id int64, confirmed bool) (*dto.OrderResponse, error)
}

// CocineroHandler cola de cocina.
type CocineroHandler struct {
	uc kitchenService
}

// NewCocineroHandler construye el handler.
func NewCocineroHandler(uc kitchenService) *CocineroHandler {
	return &CocineroHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero de cocina
// @Tags         cocinero
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.KitchenDashboardResponse
// @Router       /api/cocinero/dashboard [get]
func (h *CocineroHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Queue godoc
// @Summary      Comandas pendientes y en preparación
// @Tags         cocinero
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado"
// @Param        q       query  string  false  "Mesa, mesero o número"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/cocinero/comandas [get]
func (h *CocineroHandler) Queue(c *fiber.Ctx) error {
	var f dto.OrderFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.uc.Queue(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Order godoc
// @Summary      Detalle de una comanda
// @Tags         cocinero
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la comanda"
// @Success      200  {object}  dto.OrderResponse
// @Router       /api/cocinero/comandas/{id} [get]
func (h *CocineroHandler) Order(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Order(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// StartPreparation godoc
// @Summary      Tomar una comanda pendiente
// @Description  Asigna el cocinero de la sesión y pasa la comanda a EN_PREPARACION.
// @Tags         cocinero
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID de la comanda"
// @Param        confirmar  query  bool  false  "Confirmación"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ConfirmationResponse
// @Failure      502  {object}  dto.PartialFailureResponse
// @Router       /api/cocinero/comandas/{id}/preparar [post]
func (h *CocineroHandler) StartPreparation(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.StartPreparation(c.UserContext(), GetSession(c), id, confirmed(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// MarkReady godoc
// @Summary      Marcar una comanda como LISTA
// @Tags         cocinero
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID de la comanda"
// @Param        confirmar  query  bool  false  "Confirmación"
// @Success      200  {object}  dto.OrderResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Failure      428  {object}  dto.ConfirmationResponse
// @Router       /api/cocinero/comandas/{id}/lista [post]
func (h *CocineroHandler) MarkReady(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.MarkReady(c.UserContext(), GetSession(c), id, confirmed(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
