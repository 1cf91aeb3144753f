package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// LectorHandler handles lector endpoints
type LectorHandler struct {
	lectorService *services.LectorService
}

// NewLectorHandler creates a new lector handler
func NewLectorHandler(lectorService *services.LectorService) *LectorHandler {
	return &LectorHandler{lectorService: lectorService}
}

// List lists lectores
// @Summary List lectores
// @Description Get a paginated list of lectores ordered by apellidos
// @Tags Lectores
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /lectores [get]
func (h *LectorHandler) List(c *fiber.Ctx) error {
	result, err := h.lectorService.List(c.Context(), pagination.GetParams(c), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list lectores")
	}

	return response.Paginated(c, "Lectores retrieved successfully", result.Lectores, result.Meta)
}

// Get gets a lector by ID
// @Summary Get lector
// @Tags Lectores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lector ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lectores/{id} [get]
func (h *LectorHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	lector, err := h.lectorService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get lector")
	}

	return response.Success(c, "Lector retrieved successfully", lector)
}

// Create creates a lector
// @Summary Create lector
// @Tags Lectores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.LectorInput true "Lector data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /lectores [post]
func (h *LectorHandler) Create(c *fiber.Ctx) error {
	var input services.LectorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lector, err := h.lectorService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create lector")
	}

	return response.Created(c, "Lector created successfully", lector)
}

// Update updates a lector
// @Summary Update lector
// @Tags Lectores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lector ID"
// @Param body body services.LectorInput true "Lector data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /lectores/{id} [put]
func (h *LectorHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.LectorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	lector, err := h.lectorService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update lector")
	}

	return response.Success(c, "Lector updated successfully", lector)
}

// Delete deactivates a lector
// @Summary Deactivate lector
// @Tags Lectores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lector ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lectores/{id} [delete]
func (h *LectorHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.lectorService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate lector")
	}

	return response.Success(c, "Lector deactivated successfully", nil)
}

// Reactivate reactivates a lector
// @Summary Reactivate lector
// @Tags Lectores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lector ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lectores/{id}/reactivar [patch]
func (h *LectorHandler) Reactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.lectorService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate lector")
	}

	return response.Success(c, "Lector reactivated successfully", nil)
}

// ListPrestamos lists the loan history of a lector
// @Summary Lector loan history
// @Tags Lectores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Lector ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /lectores/{id}/prestamos [get]
func (h *LectorHandler) ListPrestamos(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	prestamos, err := h.lectorService.ListPrestamos(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to list prestamos")
	}

	return response.Success(c, "Prestamos retrieved successfully", prestamoResponses(prestamos))
}

func prestamoResponses(prestamos []*models.Prestamo) []*models.PrestamoResponse {
	out := make([]*models.PrestamoResponse, len(prestamos))
	for i, p := range prestamos {
		out[i] = p.ToResponse()
	}
	return out
}
