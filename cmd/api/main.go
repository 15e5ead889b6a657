package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/comandas-bff/internal/application/admin"
	"github.com/jhoicas/comandas-bff/internal/application/auth"
	"github.com/jhoicas/comandas-bff/internal/application/kitchen"
	"github.com/jhoicas/comandas-bff/internal/application/ports"
	"github.com/jhoicas/comandas-bff/internal/application/usecase"
	"github.com/jhoicas/comandas-bff/internal/application/waiter"
	"github.com/jhoicas/comandas-bff/internal/domain/repository"
	"github.com/jhoicas/comandas-bff/internal/infrastructure/events"
	"github.com/jhoicas/comandas-bff/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/comandas-bff/internal/infrastructure/pdf"
	"github.com/jhoicas/comandas-bff/internal/infrastructure/postgres"
	"github.com/jhoicas/comandas-bff/internal/infrastructure/restapi"
	httpRouter "github.com/jhoicas/comandas-bff/internal/interfaces/http"
	"github.com/jhoicas/comandas-bff/pkg/config"
	"github.com/jhoicas/comandas-bff/pkg/logger"
)

type closer interface {
	Close() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("backend", cfg.Backend.BaseURL).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sesiones y compensaciones pendientes: memoria o PostgreSQL
	var (
		sessions      repository.SessionRepository
		compensations repository.CompensationRepository
	)
	if cfg.Session.UsesPostgres() {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de sesiones")
		}
		sessionRepo := postgres.NewSessionRepository(pool)
		go purgeExpiredSessions(ctx, sessionRepo, log)
		sessions = sessionRepo
		compensations = postgres.NewCompensationRepository(pool)
		log.Info().Msg("sesiones en PostgreSQL")
	} else {
		sessions = memory.NewSessionStore()
		compensations = memory.NewCompensationStore()
		log.Info().Msg("sesiones en memoria")
	}
	carts := memory.NewCartStore()

	// Backend REST autoritativo
	client := restapi.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout(), log)
	tables := restapi.NewTableRepo(client)
	categories := restapi.NewCategoryRepo(client)
	products := restapi.NewProductRepo(client)
	states := restapi.NewStateRepo(client)
	roles := restapi.NewRoleRepo(client)
	phones := restapi.NewPhoneRepo(client)
	users := restapi.NewUserRepo(client)
	orders := restapi.NewOrderRepo(client)
	orderLines := restapi.NewOrderLineRepo(client)

	// Eventos: NATS si está configurado
	var publisher interface {
		ports.EventPublisher
		closer
	}
	if cfg.NATS.URL != "" {
		natsPub, err := events.NewNATSPublisher(cfg.NATS.URL, cfg.NATS.SubjectPrefix, log)
		if err != nil {
			log.Fatal().Err(err).Str("url", cfg.NATS.URL).Msg("conexión a NATS")
		}
		publisher = natsPub
	} else {
		publisher = events.NewNoopPublisher(log)
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar publicador de eventos")
		}
	}()

	authUC := auth.NewAuthUseCase(restapi.NewAuthGateway(client), sessions, carts, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Backend.BaseURL, log)

	waiterUC := waiter.NewWaiterUseCase(waiter.Deps{
		Tables:        tables,
		Orders:        orders,
		Products:      products,
		Categories:    categories,
		Carts:         carts,
		Compensations: compensations,
		Events:        publisher,
		PDF:           infrapdf.NewBillGenerator(cfg.App.Name),
		TipPercent:    cfg.Billing.TipPercent,
		Log:           log,
	})
	kitchenUC := kitchen.NewKitchenUseCase(orders, orderLines, publisher, log)
	catalogUC := usecase.NewCatalogUseCase(usecase.CatalogRepos{
		Tables:     tables,
		Categories: categories,
		Products:   products,
		States:     states,
		Roles:      roles,
		Phones:     phones,
		Users:      users,
		Orders:     orders,
		OrderLines: orderLines,
	}, log)
	adminUC := admin.NewAdminUseCase(admin.Repos{
		Tables:        tables,
		Categories:    categories,
		Products:      products,
		States:        states,
		Roles:         roles,
		Phones:        phones,
		Users:         users,
		Orders:        orders,
		OrderLines:    orderLines,
		Compensations: compensations,
	}, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Comandas BFF",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		WaiterUC:  waiterUC,
		KitchenUC: kitchenUC,
		AdminUC:   adminUC,
		Catalog:   catalogUC,
		JWTSecret: cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// purgeExpiredSessions borra cada hora las sesiones vencidas guardadas en PostgreSQL.
func purgeExpiredSessions(ctx context.Context, repo *postgres.SessionRepo, log *logger.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			n, err := repo.DeleteExpired(ctx, now)
			if err != nil {
				log.Warn().Err(err).Msg("purga de sesiones vencidas")
				continue
			}
			if n > 0 {
				log.Info().Int64("sessions", n).Msg("sesiones vencidas purgadas")
			}
		}
	}
}
