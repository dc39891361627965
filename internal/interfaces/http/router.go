package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/crucitafashion/crucita-api/internal/application/auth"
	"github.com/crucitafashion/crucita-api/internal/application/usecase"
	"github.com/crucitafashion/crucita-api/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC  *usecase.ProductUseCase
	CategoryUC *usecase.CategoryUseCase
	SaleUC     *usecase.SaleUseCase
	LayawayUC  *usecase.LayawayUseCase
	UserUC     *usecase.UserUseCase
	AuthUC     *auth.AuthUseCase
	// Users lo usa AuthMiddleware para releer el usuario de cada token.
	Users     repository.UserRepository
	JWTSecret string
	// LoginLimiter nil desactiva el límite de intentos de login.
	LoginLimiter *RateLimiter
}

// Router registra las rutas de la API. Todas pasan por AuthMiddleware, que resuelve
// el actor (anónimo si no hay token); los permisos los aplican los casos de uso.
func Router(app fiber.Router, deps RouterDeps) {
	login := []fiber.Handler{}
	if deps.LoginLimiter != nil {
		login = append(login, deps.LoginLimiter.Handler())
	}
	authHandler := NewAuthHandler(deps.AuthUC)
	app.Post("/login", append(login, authHandler.Login)...)

	api := app.Group("/", AuthMiddleware(deps.JWTSecret, deps.Users))

	// Inventario: la exportación va antes de /:id.
	productHandler := NewProductHandler(deps.ProductUC)
	products := api.Group("/inventario/productos")
	products.Get("/exportar", productHandler.Export)
	products.Post("/crear", productHandler.Create)
	products.Get("/", productHandler.Search)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	categoryHandler := NewCategoryHandler(deps.CategoryUC)
	categories := api.Group("/inventario/categorias")
	categories.Post("/crear", categoryHandler.Create)
	categories.Get("/", categoryHandler.Search)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	saleHandler := NewSaleHandler(deps.SaleUC)
	sales := api.Group("/ventas")
	sales.Post("/crear", saleHandler.Create)
	sales.Get("/", saleHandler.Search)
	sales.Get("/:id/comprobante", saleHandler.Receipt)
	sales.Get("/:id", saleHandler.GetByID)
	sales.Put("/:id", saleHandler.Update)
	sales.Delete("/:id", saleHandler.Delete)

	layawayHandler := NewLayawayHandler(deps.LayawayUC)
	layaways := api.Group("/apartados")
	layaways.Post("/crear", layawayHandler.Create)
	layaways.Get("/", layawayHandler.Search)
	layaways.Get("/:id", layawayHandler.GetByID)
	layaways.Put("/:id", layawayHandler.Update)
	layaways.Delete("/:id", layawayHandler.Delete)

	userHandler := NewUserHandler(deps.UserUC)
	users := api.Group("/usuarios")
	users.Get("/", userHandler.Search)
	users.Post("/registro", userHandler.Register)
	users.Post("/admin/crear", userHandler.AdminCreate)
	users.Get("/admin/detalle/:id", userHandler.AdminGet)
	users.Delete("/admin/detalle/:id", userHandler.AdminDelete)
	users.Get("/vendedor/detalles/:id", userHandler.SellerGet)

	profile := api.Group("/perfil")
	profile.Get("/:id", userHandler.ProfileGet)
	profile.Put("/:id", userHandler.ProfileUpdate)
}
