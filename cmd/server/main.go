package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/http/middleware"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/http/routes"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/logger"

	_ "github.com/VictorMA18/CompuMundo-CEDIS-sub000/docs" // Swagger docs
)

// @title Biblioteca CEDIS API
// @version 1.0
// @description University library loans and catalog API

// @contact.name API Support

// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Setup("prod")
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	logger.Setup(cfg.AppMode)

	// Connect to database
	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer config.CloseDatabase()

	if err := models.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to auto migrate")
	}
	log.Info().Msg("database migration completed")

	if err := config.NewSeeder(db, cfg).Run(); err != nil {
		log.Warn().Err(err).Msg("failed to seed database")
	}

	// The scheduler and the manual endpoint share one loan service
	prestamoService := services.NewPrestamoService(db, services.NewFormatoService(), cfg.Loans.BusinessDays)

	cronService := services.NewCronService(prestamoService, cfg.Loans.ExpirationCron)
	if err := cronService.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to start expiration scheduler")
	}
	defer cronService.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Biblioteca CEDIS API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, db, cfg, prestamoService, cronService)

	go gracefulShutdown(app)

	log.Info().Str("port", cfg.Port).Str("mode", cfg.AppMode).Msg("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server stopped gracefully")
}
