package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// adminService lo implementa *admin.AdminUseCase.
type adminService interface {
	Dashboard(ctx context.Context, s *entity.Session) (*dto.AdminDashboardResponse, error)
	Compensations(ctx context.Context) ([]dto.PendingCompensationResponse, error)
	RetryCompensation(ctx context.Context, s *entity.Session, id string) (*dto.PendingCompensationResponse, error)
}

// productAdmin lo implementa *usecase.ProductUseCase.
type productAdmin interface {
	AdjustStock(ctx context.Context, s *entity.Session, id int64, in dto.StockRequest) (*dto.ProductResponse, error)
	Toggle(ctx context.Context, s *entity.Session, id int64) (*dto.ProductResponse, error)
}

// userAdmin lo implementa *usecase.UserUseCase.
type userAdmin interface {
	ListByRole(ctx context.Context, s *entity.Session, role string) ([]dto.UserResponse, error)
	LinkPhone(ctx context.Context, s *entity.Session, userID string, phoneID int64) error
	UnlinkPhone(ctx context.Context, s *entity.Session, userID string, phoneID int64) error
}

// AdminHandler operaciones del administrador fuera del CRUD genérico.
type AdminHandler struct {
	admin    adminService
	products productAdmin
	users    userAdmin
}

// NewAdminHandler construye el handler.
func NewAdminHandler(admin adminService, products productAdmin, users userAdmin) *AdminHandler {
	return &AdminHandler{admin: admin, products: products, users: users}
}

// Dashboard godoc
// @Summary      Tablero del administrador
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AdminDashboardResponse
// @Router       /api/admin/dashboard [get]
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.admin.Dashboard(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock de un producto
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int               true  "ID del producto"
// @Param        body  body  dto.StockRequest  true  "cantidad y operación (aumentar|reducir)"
// @Success      200   {object}  dto.ProductResponse
// @Router       /api/admin/productos/{id}/stock [put]
func (h *AdminHandler) AdjustStock(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.StockRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.products.AdjustStock(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ToggleProduct godoc
// @Summary      Activar o desactivar un producto
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Router       /api/admin/productos/{id}/estado [put]
func (h *AdminHandler) ToggleProduct(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.products.Toggle(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UsersByRole godoc
// @Summary      Usuarios por rol
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        rol  path  string  true  "ADMIN, MESERO o COCINERO"
// @Success      200  {array}  dto.UserResponse
// @Router       /api/admin/usuarios/rol/{rol} [get]
func (h *AdminHandler) UsersByRole(c *fiber.Ctx) error {
	out, err := h.users.ListByRole(c.UserContext(), GetSession(c), c.Params("rol"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LinkPhone godoc
// @Summary      Asociar teléfono a usuario
// @Tags         admin
// @Security     Bearer
// @Param        id        path  string  true  "ID del usuario"
// @Param        phoneId   path  int     true  "ID del teléfono"
// @Success      204
// @Router       /api/admin/usuarios/{id}/telefonos/{phoneId} [post]
func (h *AdminHandler) LinkPhone(c *fiber.Ctx) error {
	return h.phoneLink(c, h.users.LinkPhone)
}

// UnlinkPhone godoc
// @Summary      Desasociar teléfono de usuario
// @Tags         admin
// @Security     Bearer
// @Param        id        path  string  true  "ID del usuario"
// @Param        phoneId   path  int     true  "ID del teléfono"
// @Success      204
// @Router       /api/admin/usuarios/{id}/telefonos/{phoneId} [delete]
func (h *AdminHandler) UnlinkPhone(c *fiber.Ctx) error {
	return h.phoneLink(c, h.users.UnlinkPhone)
}

func (h *AdminHandler) phoneLink(c *fiber.Ctx, op func(context.Context, *entity.Session, string, int64) error) error {
	userID, ok := stringID(c.Params("id"))
	if !ok {
		return invalidID(c, "id")
	}
	phoneID, ok := paramInt64(c, "phoneId")
	if !ok {
		return invalidID(c, "phoneId")
	}
	if err := op(c.UserContext(), GetSession(c), userID, phoneID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Compensations godoc
// @Summary      Compensaciones pendientes
// @Description  Mesas que quedaron OCUPADA sin comanda porque su liberación falló.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PendingCompensationResponse
// @Router       /api/admin/compensaciones [get]
func (h *AdminHandler) Compensations(c *fiber.Ctx) error {
	out, err := h.admin.Compensations(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RetryCompensation godoc
// @Summary      Reintentar una compensación
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la compensación"
// @Success      200  {object}  dto.PendingCompensationResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/admin/compensaciones/{id}/reintentar [post]
func (h *AdminHandler) RetryCompensation(c *fiber.Ctx) error {
	id, ok := stringID(c.Params("id"))
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.admin.RetryCompensation(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
