package http

import (
	"context"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/dto"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// waiterService lo implementa *waiter.WaiterUseCase.
type waiterService interface {
	Dashboard(ctx context.Context, s *entity.Session) (*dto.WaiterDashboardResponse, error)
	ChangeTableStatus(ctx context.Context, s *entity.Session, tableID int64, raw string, confirmed bool) (*dto.TableResponse, error)
	Products(ctx context.Context, s *entity.Session, f dto.ProductFilter) ([]dto.ProductResponse, error)
	Categories(ctx context.Context, s *entity.Session) ([]dto.CategoryResponse, error)
	Cart(ctx context.Context, s *entity.Session, tableID int64) (*dto.CartResponse, error)
	AddToCart(ctx context.Context, s *entity.Session, tableID int64, in dto.AddCartItemRequest) (*dto.CartResponse, error)
	UpdateCartItem(ctx context.Context, s *entity.Session, tableID, productID int64, in dto.UpdateCartItemRequest) (*dto.CartResponse, error)
	RemoveCartItem(ctx context.Context, s *entity.Session, tableID, productID int64) (*dto.CartResponse, error)
	ClearCart(ctx context.Context, s *entity.Session, tableID int64, confirmed bool) (*dto.CartResponse, error)
	SubmitOrder(ctx context.Context, s *entity.Session, tableID int64, in dto.SubmitOrderRequest) (*dto.OrderResponse, error)
	ActiveOrders(ctx context.Context, s *entity.Session, f dto.OrderFilter) ([]dto.OrderResponse, error)
	TableOrders(ctx context.Context, s *entity.Session, tableID int64) ([]dto.OrderResponse, error)
	Bill(ctx context.Context, s *entity.Session, tableID int64) (*dto.BillResponse, error)
	BillPDF(ctx context.Context, s *entity.Session, tableID int64) ([]byte, error)
	CloseBill(ctx context.Context, s *entity.Session, tableID int64, confirmed bool) (*dto.BillResponse, error)
}

// MeseroHandler tablero del mesero: mesas, carrito, comandas y cuenta.
type MeseroHandler struct {
	uc waiterService
}

// NewMeseroHandler construye el handler.
func NewMeseroHandler(uc waiterService) *MeseroHandler {
	return &MeseroHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero del mesero
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WaiterDashboardResponse
// @Router       /api/mesero/dashboard [get]
func (h *MeseroHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.Dashboard(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ChangeTableStatus godoc
// @Summary      Cambiar estado de una mesa
// @Description  Pide confirmación (428) salvo que confirmed=true. Una mesa OCUPADA no se puede cambiar.
// @Tags         mesero
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                           true  "ID de la mesa"
// @Param        body  body  dto.ChangeTableStatusRequest  true  "Estado destino"
// @Success      200   {object}  dto.TableResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ConfirmationResponse
// @Router       /api/mesero/mesas/{id}/estado [patch]
func (h *MeseroHandler) ChangeTableStatus(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.ChangeTableStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.ChangeTableStatus(c.UserContext(), GetSession(c), id, in.Status, in.Confirmed || c.QueryBool("confirmar", false))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Products godoc
// @Summary      Carta filtrada por categoría y búsqueda
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        category_id  query  int     false  "Categoría"
// @Param        q            query  string  false  "Texto a buscar"
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/mesero/productos [get]
func (h *MeseroHandler) Products(c *fiber.Ctx) error {
	var f dto.ProductFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.uc.Products(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Categories godoc
// @Summary      Categorías de la carta
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/mesero/categorias [get]
func (h *MeseroHandler) Categories(c *fiber.Ctx) error {
	out, err := h.uc.Categories(c.UserContext(), GetSession(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Cart godoc
// @Summary      Carrito de la mesa
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la mesa"
// @Success      200  {object}  dto.CartResponse
// @Router       /api/mesero/mesas/{id}/carrito [get]
func (h *MeseroHandler) Cart(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Cart(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// AddToCart godoc
// @Summary      Agregar producto al carrito
// @Tags         mesero
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true  "ID de la mesa"
// @Param        body  body  dto.AddCartItemRequest  true  "Producto y cantidad"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/mesero/mesas/{id}/carrito [post]
func (h *MeseroHandler) AddToCart(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.AddCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.AddToCart(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateCartItem godoc
// @Summary      Modificar una línea del carrito
// @Tags         mesero
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id          path  int                        true  "ID de la mesa"
// @Param        productId   path  int                        true  "ID del producto"
// @Param        body        body  dto.UpdateCartItemRequest  true  "aumentar, disminuir, cantidad o nota"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/mesero/mesas/{id}/carrito/{productId} [patch]
func (h *MeseroHandler) UpdateCartItem(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	productID, ok := paramInt64(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	var in dto.UpdateCartItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badRequest(c, "INVALID_BODY", "cuerpo inválido")
	}
	out, err := h.uc.UpdateCartItem(c.UserContext(), GetSession(c), id, productID, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveCartItem godoc
// @Summary      Quitar una línea del carrito
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id          path  int  true  "ID de la mesa"
// @Param        productId   path  int  true  "ID del producto"
// @Success      200   {object}  dto.CartResponse
// @Router       /api/mesero/mesas/{id}/carrito/{productId} [delete]
func (h *MeseroHandler) RemoveCartItem(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	productID, ok := paramInt64(c, "productId")
	if !ok {
		return invalidID(c, "productId")
	}
	out, err := h.uc.RemoveCartItem(c.UserContext(), GetSession(c), id, productID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ClearCart godoc
// @Summary      Vaciar el carrito
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID de la mesa"
// @Param        confirmar  query  bool  false  "Confirmación"
// @Success      200   {object}  dto.CartResponse
// @Failure      428   {object}  dto.ConfirmationResponse
// @Router       /api/mesero/mesas/{id}/carrito [delete]
func (h *MeseroHandler) ClearCart(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.ClearCart(c.UserContext(), GetSession(c), id, confirmed(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SubmitOrder godoc
// @Summary      Enviar el carrito como comanda
// @Description  Ocupa la mesa y crea la comanda. Si la creación falla la mesa se libera; si la liberación también falla responde 502.
// @Tags         mesero
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  int                     true   "ID de la mesa"
// @Param        body  body  dto.SubmitOrderRequest  false  "Cocinero opcional"
// @Success      201   {object}  dto.OrderResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.PartialFailureResponse
// @Router       /api/mesero/mesas/{id}/comandas [post]
func (h *MeseroHandler) SubmitOrder(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	var in dto.SubmitOrderRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badRequest(c, "INVALID_BODY", "cuerpo inválido")
		}
	}
	out, err := h.uc.SubmitOrder(c.UserContext(), GetSession(c), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ActiveOrders godoc
// @Summary      Comandas activas del mesero
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "Estado (código o nombre, 'todas')"
// @Param        q       query  string  false  "Mesa, mesero o número"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/mesero/comandas [get]
func (h *MeseroHandler) ActiveOrders(c *fiber.Ctx) error {
	var f dto.OrderFilter
	if err := c.QueryParser(&f); err != nil {
		return badRequest(c, "INVALID_QUERY", "filtros inválidos")
	}
	out, err := h.uc.ActiveOrders(c.UserContext(), GetSession(c), f)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TableOrders godoc
// @Summary      Comandas activas del mesero en una mesa
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la mesa"
// @Success      200  {array}  dto.OrderResponse
// @Router       /api/mesero/mesas/{id}/comandas [get]
func (h *MeseroHandler) TableOrders(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.TableOrders(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Bill godoc
// @Summary      Cuenta de la mesa
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id  path  int  true  "ID de la mesa"
// @Success      200  {object}  dto.BillResponse
// @Router       /api/mesero/mesas/{id}/cuenta [get]
func (h *MeseroHandler) Bill(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.Bill(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// BillPDF godoc
// @Summary      Cuenta de la mesa en PDF
// @Tags         mesero
// @Security     Bearer
// @Produce      application/pdf
// @Param        id  path  int  true  "ID de la mesa"
// @Success      200  {file}  binary
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/mesero/mesas/{id}/cuenta/pdf [get]
func (h *MeseroHandler) BillPDF(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	doc, err := h.uc.BillPDF(c.UserContext(), GetSession(c), id)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="cuenta-mesa-`+strconv.FormatInt(id, 10)+`.pdf"`)
	return c.Send(doc)
}

// CloseBill godoc
// @Summary      Cerrar la cuenta y liberar la mesa
// @Description  Todas las comandas deben estar LISTA. Pide confirmación (428) con el total.
// @Tags         mesero
// @Security     Bearer
// @Produce      json
// @Param        id         path   int   true   "ID de la mesa"
// @Param        confirmar  query  bool  false  "Confirmación"
// @Success      200   {object}  dto.BillResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      428   {object}  dto.ConfirmationResponse
// @Router       /api/mesero/mesas/{id}/cuenta/cerrar [post]
func (h *MeseroHandler) CloseBill(c *fiber.Ctx) error {
	id, ok := paramInt64(c, "id")
	if !ok {
		return invalidID(c, "id")
	}
	out, err := h.uc.CloseBill(c.UserContext(), GetSession(c), id, confirmed(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
