package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/config"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
)

const healthPingTimeout = 2 * time.Second

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db   *gorm.DB
	cron *services.CronService
	cfg  *config.Config
}

// NewHealthHandler creates a new health handler. cron may be nil when the
// scheduler is disabled.
func NewHealthHandler(db *gorm.DB, cron *services.CronService, cfg *config.Config) *HealthHandler {
	return &HealthHandler{
		db:   db,
		cron: cron,
		cfg:  cfg,
	}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "Biblioteca CEDIS API v1.0 is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck handles health check
// @Summary Health check
// @Description Check API, database and scheduler health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), healthPingTimeout)
	defer cancel()

	status := "ok"
	dbStatus := "healthy"
	if err := config.HealthCheck(ctx, h.db); err != nil {
		dbStatus = "unhealthy"
		status = "degraded"
	}

	checks := fiber.Map{
		"api":      "healthy",
		"database": dbStatus,
	}
	if h.cron != nil {
		checks["expiration_sweep"] = h.cron.LastRun()
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}

	return c.Status(code).JSON(fiber.Map{
		"status": status,
		"checks": checks,
	})
}

// APIInfo handles API v1 info
// @Summary API v1 Info
// @Description Returns API v1 information
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /api/v1 [get]
func (h *HealthHandler) APIInfo(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message":    "Biblioteca CEDIS API v1.0",
		"version":    "1.0.0",
		"loan_days":  h.cfg.Loans.BusinessDays,
		"sweep_cron": h.cfg.Loans.ExpirationCron,
	})
}
