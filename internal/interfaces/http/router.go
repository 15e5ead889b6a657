package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/comandas-bff/internal/application/admin"
	"github.com/jhoicas/comandas-bff/internal/application/auth"
	"github.com/jhoicas/comandas-bff/internal/application/kitchen"
	"github.com/jhoicas/comandas-bff/internal/application/usecase"
	"github.com/jhoicas/comandas-bff/internal/application/waiter"
	"github.com/jhoicas/comandas-bff/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	WaiterUC  *waiter.WaiterUseCase
	KitchenUC *kitchen.KitchenUseCase
	AdminUC   *admin.AdminUseCase
	Catalog   *usecase.CatalogUseCase
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token y sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)
	protected.Get("/home", authHandler.Home)

	// Administrador
	adm := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AdminUC, deps.Catalog.Products, deps.Catalog.Users)
	adm.Get("/dashboard", adminHandler.Dashboard)
	adm.Get("/compensaciones", adminHandler.Compensations)
	adm.Post("/compensaciones/:id/reintentar", adminHandler.RetryCompensation)
	adm.Put("/productos/:id/stock", adminHandler.AdjustStock)
	adm.Put("/productos/:id/estado", adminHandler.ToggleProduct)
	adm.Get("/usuarios/rol/:rol", adminHandler.UsersByRole)
	adm.Post("/usuarios/:id/telefonos/:phoneId", adminHandler.LinkPhone)
	adm.Delete("/usuarios/:id/telefonos/:phoneId", adminHandler.UnlinkPhone)

	cat := deps.Catalog
	registerResource(adm, "/mesas", cat.Tables, int64ID)
	registerResource(adm, "/categorias", cat.Categories, int64ID)
	registerResource(adm, "/productos", cat.Products.ResourceUseCase, int64ID)
	registerResource(adm, "/estados", cat.States, int64ID)
	registerResource(adm, "/roles", cat.Roles, int64ID)
	registerResource(adm, "/telefonos", cat.Phones, int64ID)
	registerResource(adm, "/usuarios", cat.Users.ResourceUseCase, stringID)
	registerResource(adm, "/comandas", cat.Orders, int64ID)
	registerResource(adm, "/detalles-comanda", cat.OrderLines, int64ID)

	// Mesero
	mes := protected.Group("/mesero", RequireRole(entity.RoleMesero))
	meseroHandler := NewMeseroHandler(deps.WaiterUC)
	mes.Get("/dashboard", meseroHandler.Dashboard)
	mes.Get("/productos", meseroHandler.Products)
	mes.Get("/categorias", meseroHandler.Categories)
	mes.Get("/comandas", meseroHandler.ActiveOrders)
	mes.Patch("/mesas/:id/estado", meseroHandler.ChangeTableStatus)
	mes.Get("/mesas/:id/carrito", meseroHandler.Cart)
	mes.Post("/mesas/:id/carrito", meseroHandler.AddToCart)
	mes.Delete("/mesas/:id/carrito", meseroHandler.ClearCart)
	mes.Patch("/mesas/:id/carrito/:productId", meseroHandler.UpdateCartItem)
	mes.Delete("/mesas/:id/carrito/:productId", meseroHandler.RemoveCartItem)
	mes.Get("/mesas/:id/comandas", meseroHandler.TableOrders)
	mes.Post("/mesas/:id/comandas", meseroHandler.SubmitOrder)
	mes.Get("/mesas/:id/cuenta", meseroHandler.Bill)
	mes.Get("/mesas/:id/cuenta/pdf", meseroHandler.BillPDF)
	mes.Post("/mesas/:id/cuenta/cerrar", meseroHandler.CloseBill)

	// Cocinero
	coc := protected.Group("/cocinero", RequireRole(entity.RoleCocinero))
	cocineroHandler := NewCocineroHandler(deps.KitchenUC)
	coc.Get("/dashboard", cocineroHandler.Dashboard)
	coc.Get("/comandas", cocineroHandler.Queue)
	coc.Get("/comandas/:id", cocineroHandler.Order)
	coc.Post("/comandas/:id/preparar", cocineroHandler.StartPreparation)
	coc.Post("/comandas/:id/lista", cocineroHandler.MarkReady)
}
