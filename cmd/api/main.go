// @title           Crucita Fashion API
// @version         1.0
// @description     API de inventario, ventas y apartados de Crucita Fashion.
// @BasePath        /
// @securityDefinitions.apikey Bearer
// @in              header
// @name            Authorization
// @description     Bearer <token>
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
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crucitafashion/crucita-api/docs"
	"github.com/crucitafashion/crucita-api/internal/application/auth"
	"github.com/crucitafashion/crucita-api/internal/application/usecase"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/excel"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/memory"
	infrapdf "github.com/crucitafashion/crucita-api/internal/infrastructure/pdf"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/postgres"
	"github.com/crucitafashion/crucita-api/internal/infrastructure/postgres/migrations"
	httpRouter "github.com/crucitafashion/crucita-api/internal/interfaces/http"
	"github.com/crucitafashion/crucita-api/pkg/config"
	"github.com/crucitafashion/crucita-api/pkg/logger"
)

// repositories agrupa los puertos de persistencia según STORAGE.
type repositories struct {
	categories repository.CategoryRepository
	products   repository.ProductRepository
	sales      repository.SaleRepository
	layaways   repository.LayawayRepository
	users      repository.UserRepository
	usersTx    repository.UserTxRunner
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.Storage).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		// Solo fuera de production (Validate lo exige allí): los tokens no sobreviven a un reinicio.
		cfg.JWT.Secret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío, usando un secreto aleatorio")
	}

	ctx := context.Background()
	var repos repositories
	switch cfg.App.Storage {
	case "memory":
		store := memory.NewStore()
		repos = repositories{
			categories: store.Categories(),
			products:   store.Products(),
			sales:      store.Sales(),
			layaways:   store.Layaways(),
			users:      store.Users(),
			usersTx:    store,
		}
	default:
		dsn := cfg.DB.ConnectionString()
		if cfg.DB.MigrationsAuto {
			if err := migrations.Up(dsn); err != nil {
				log.Fatal().Err(err).Msg("aplicar migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		var pool *pgxpool.Pool
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		repos = repositories{
			categories: postgres.NewCategoryRepository(pool),
			products:   postgres.NewProductRepository(pool),
			sales:      postgres.NewSaleRepository(pool),
			layaways:   postgres.NewLayawayRepository(pool),
			users:      postgres.NewUserRepository(pool),
			usersTx:    postgres.NewTxRunner(pool),
		}
	}

	productUC := usecase.NewProductUseCase(repos.products, repos.categories, excel.NewProductExporter())
	categoryUC := usecase.NewCategoryUseCase(repos.categories, repos.products)
	saleUC := usecase.NewSaleUseCase(repos.sales, repos.products, infrapdf.NewReceiptGenerator("Crucita Fashion"))
	layawayUC := usecase.NewLayawayUseCase(repos.layaways, repos.products, repos.users)
	userUC := usecase.NewUserUseCase(repos.users, repos.layaways, repos.usersTx, usecase.UserOptions{
		StrictRegistration: cfg.Security.StrictRegistrationGroup,
		BcryptCost:         cfg.Security.BcryptCost,
	})
	authUC := auth.NewAuthUseCase(repos.users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	if cfg.Security.BootstrapUsername != "" {
		created, err := userUC.EnsureSuperUser(ctx, cfg.Security.BootstrapUsername, cfg.Security.BootstrapPassword)
		if err != nil {
			log.Fatal().Err(err).Msg("crear SuperUsuario inicial")
		}
		if created {
			log.Info().Str("username", cfg.Security.BootstrapUsername).Msg("SuperUsuario inicial creado")
		}
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	metrics := httpRouter.NewMetrics("crucita")
	app.Use(recover.New())
	app.Use(httpRouter.RequestIDMiddleware())
	app.Use(httpRouter.LoggingMiddleware(log.Component("http")))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Crucita Fashion API",
	}))
	app.Get("/swagger.json", func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(docs.SwaggerInfo.ReadDoc())
	})

	// Fuera del grupo autenticado: van antes de Router.
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	var loginLimiter *httpRouter.RateLimiter
	done := make(chan struct{})
	if cfg.Security.LoginRatePerMinute > 0 {
		loginLimiter = httpRouter.NewRateLimiter(cfg.Security.LoginRatePerMinute)
		loginLimiter.StartCleanup(5*time.Minute, done)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		CategoryUC:   categoryUC,
		SaleUC:       saleUC,
		LayawayUC:    layawayUC,
		UserUC:       userUC,
		AuthUC:       authUC,
		Users:        repos.users,
		JWTSecret:    cfg.JWT.Secret,
		LoginLimiter: loginLimiter,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	close(done)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
