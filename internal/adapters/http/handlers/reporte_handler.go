package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// ReporteHandler handles read-only report endpoints
type ReporteHandler struct {
	reporteService *services.ReporteService
}

// NewReporteHandler creates a new reporte handler
func NewReporteHandler(reporteService *services.ReporteService) *ReporteHandler {
	return &ReporteHandler{
		reporteService: reporteService,
	}
}

// Resumen returns catalog and loan counters
// @Summary Summary report
// @Description Counts of loans by state, copies by state, materials by formato and the most lent titles
// @Tags Reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reportes/resumen [get]
func (h *ReporteHandler) Resumen(c *fiber.Ctx) error {
	data, err := h.reporteService.Resumen(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to get resumen")
	}

	return response.Success(c, "Resumen retrieved successfully", data)
}

// Vencidos lists overdue unreturned details
// @Summary Overdue report
// @Tags Reportes
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /reportes/vencidos [get]
func (h *ReporteHandler) Vencidos(c *fiber.Ctx) error {
	items, err := h.reporteService.Vencidos(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to get vencidos")
	}

	return response.Success(c, "Vencidos retrieved successfully", items)
}
