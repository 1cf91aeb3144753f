package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/http/handlers"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/http/middleware"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/metrics"
)

// catalogCacheAge is the browser cache window for catalog reads
const catalogCacheAge = 30 * time.Second

// Setup configures all routes for the application. prestamoService is shared
// with the scheduler; cronService may be nil.
func Setup(
	app *fiber.App,
	db *gorm.DB,
	cfg *config.Config,
	prestamoService *services.PrestamoService,
	cronService *services.CronService,
) {
	// Initialize repositories
	usuarioRepo := repositories.NewUsuarioRepository(db)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db)
	lectorRepo := repositories.NewLectorRepository(db)
	autorRepo := repositories.NewAutorRepository(db)
	categoriaRepo := repositories.NewCategoriaRepository(db)
	materialRepo := repositories.NewMaterialBibliograficoRepository(db)
	autorMaterialRepo := repositories.NewAutorMaterialRepository(db)
	prestamoRepo := repositories.NewPrestamoRepository(db)

	// Initialize services
	formatoService := services.NewFormatoService()
	authService := services.NewAuthService(usuarioRepo, refreshTokenRepo, cfg)
	usuarioService := services.NewUsuarioService(usuarioRepo)
	lectorService := services.NewLectorService(lectorRepo, prestamoRepo)
	autorService := services.NewAutorService(autorRepo)
	categoriaService := services.NewCategoriaService(categoriaRepo)
	materialService := services.NewMaterialBibliograficoService(materialRepo, categoriaRepo)
	fisicoService := services.NewMaterialFisicoService(db, formatoService)
	virtualService := services.NewMaterialVirtualService(db, formatoService)
	autorMaterialService := services.NewAutorMaterialService(autorMaterialRepo, autorRepo, materialRepo)
	reporteService := services.NewReporteService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, cronService, cfg)
	authHandler := handlers.NewAuthHandler(authService, cfg)
	usuarioHandler := handlers.NewUsuarioHandler(usuarioService)
	lectorHandler := handlers.NewLectorHandler(lectorService)
	catalogHandler := handlers.NewCatalogHandler(autorService, categoriaService)
	materialHandler := handlers.NewMaterialHandler(materialService, fisicoService, virtualService, autorMaterialService)
	prestamoHandler := handlers.NewPrestamoHandler(prestamoService)
	reporteHandler := handlers.NewReporteHandler(reporteService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupAuthRoutes(apiV1.Group("/auth"), authHandler, usuarioHandler, cfg)

	// Everything below needs a staff token
	staff := []fiber.Handler{middleware.AuthMiddleware(cfg), middleware.StaffOnly()}

	setupUsuarioRoutes(apiV1.Group("/usuarios", append(staff, middleware.AdminOnly())...), usuarioHandler)
	setupLectorRoutes(apiV1.Group("/lectores", staff...), lectorHandler)
	setupCatalogRoutes(apiV1, staff, catalogHandler, materialHandler)
	setupPrestamoRoutes(apiV1.Group("/prestamos", staff...), prestamoHandler)
	setupReporteRoutes(apiV1.Group("/reportes", staff...), reporteHandler)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, usuarioHandler *handlers.UsuarioHandler, cfg *config.Config) {
	router.Use(middleware.NoCacheHeaders())

	// Public routes
	router.Post("/login", middleware.AuthRateLimiter(), handler.Login)
	router.Post("/refresh", middleware.AuthRateLimiter(), handler.RefreshToken)
	router.Post("/logout", handler.Logout)

	// Protected routes
	auth := middleware.AuthMiddleware(cfg)
	router.Get("/me", auth, handler.Me)
	router.Post("/logout-all", auth, handler.LogoutAll)
	router.Put("/password", auth, middleware.StrictRateLimiter(), usuarioHandler.ChangePassword)
}

// setupUsuarioRoutes configures staff account routes (Admin only)
func setupUsuarioRoutes(router fiber.Router, handler *handlers.UsuarioHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Patch("/:id/reactivar", handler.Reactivate)
}

// setupLectorRoutes configures reader routes
func setupLectorRoutes(router fiber.Router, handler *handlers.LectorHandler) {
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Get("/:id/prestamos", handler.ListPrestamos)
	router.Post("/", handler.Create)
	router.Put("/:id", handler.Update)
	router.Delete("/:id", handler.Delete)
	router.Patch("/:id/reactivar", handler.Reactivate)
}

// setupCatalogRoutes configures autores, categorias and the material routes
func setupCatalogRoutes(router fiber.Router, guards []fiber.Handler, catalog *handlers.CatalogHandler, material *handlers.MaterialHandler) {
	cache := middleware.CacheControl(catalogCacheAge)

	autores := router.Group("/autores", guards...)
	autores.Get("/", cache, catalog.ListAutores)
	autores.Get("/:id", catalog.GetAutor)
	autores.Post("/", catalog.CreateAutor)
	autores.Put("/:id", catalog.UpdateAutor)
	autores.Delete("/:id", catalog.DeleteAutor)
	autores.Patch("/:id/reactivar", catalog.ReactivateAutor)

	categorias := router.Group("/categorias", guards...)
	categorias.Get("/", cache, catalog.ListCategorias)
	categorias.Get("/:id", catalog.GetCategoria)
	categorias.Post("/", catalog.CreateCategoria)
	categorias.Put("/:id", catalog.UpdateCategoria)
	categorias.Delete("/:id", catalog.DeleteCategoria)
	categorias.Patch("/:id/reactivar", catalog.ReactivateCategoria)

	materiales := router.Group("/materiales-bibliograficos", guards...)
	materiales.Get("/", material.ListMaterials)
	materiales.Get("/:id", material.GetMaterial)
	materiales.Get("/:id/autores", material.ListAutoresByMaterial)
	materiales.Post("/", material.CreateMaterial)
	materiales.Put("/:id", material.UpdateMaterial)
	materiales.Delete("/:id", material.DeleteMaterial)
	materiales.Patch("/:id/reactivar", material.ReactivateMaterial)

	fisicos := router.Group("/materiales-fisicos", guards...)
	fisicos.Get("/", material.ListFisicos)
	fisicos.Get("/:id", material.GetFisico)
	fisicos.Post("/", material.CreateFisico)
	fisicos.Put("/:id", material.UpdateFisico)
	fisicos.Delete("/:id", material.DeleteFisico)
	fisicos.Patch("/:id/reactivar", material.ReactivateFisico)

	virtuales := router.Group("/materiales-virtuales", guards...)
	virtuales.Get("/", material.ListVirtuals)
	virtuales.Get("/:id", material.GetVirtual)
	virtuales.Post("/", material.CreateVirtual)
	virtuales.Put("/:id", material.UpdateVirtual)
	virtuales.Delete("/:id", material.DeleteVirtual)
	virtuales.Patch("/:id/reactivar", material.ReactivateVirtual)

	links := router.Group("/autor-material", guards...)
	links.Get("/", material.ListAutorMaterials)
	links.Get("/:id", material.GetAutorMaterial)
	links.Post("/", material.CreateAutorMaterial)
	links.Put("/:id", material.UpdateAutorMaterial)
	links.Delete("/:id", material.DeleteAutorMaterial)
	links.Patch("/:id/reactivar", material.ReactivateAutorMaterial)
}

// setupPrestamoRoutes configures loan routes
func setupPrestamoRoutes(router fiber.Router, handler *handlers.PrestamoHandler) {
	router.Use(middleware.NoCacheHeaders())

	router.Post("/", handler.Create)
	router.Get("/", handler.List)
	router.Get("/:id", handler.Get)
	router.Patch("/detalles/:id/devolver", handler.ReturnDetail)
	router.Post("/vencimientos/ejecutar", middleware.AdminOnly(), handler.RunExpiration)
}

// setupReporteRoutes configures report routes
func setupReporteRoutes(router fiber.Router, handler *handlers.ReporteHandler) {
	router.Get("/resumen", handler.Resumen)
	router.Get("/vencidos", handler.Vencidos)
}
