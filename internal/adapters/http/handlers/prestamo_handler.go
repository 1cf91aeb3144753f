package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// PrestamoHandler handles loan endpoints
type PrestamoHandler struct {
	prestamoService *services.PrestamoService
}

// NewPrestamoHandler creates a new prestamo handler
func NewPrestamoHandler(prestamoService *services.PrestamoService) *PrestamoHandler {
	return &PrestamoHandler{
		prestamoService: prestamoService,
	}
}

// Create registers a loan. The operator is the authenticated usuario.
// @Summary Create prestamo
// @Description Lend physical copies and virtual records to a lector in one transaction
// @Tags Prestamos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreatePrestamoInput true "Loan data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /prestamos [post]
func (h *PrestamoHandler) Create(c *fiber.Ctx) error {
	operatorID, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.CreatePrestamoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	prestamo, err := h.prestamoService.Create(c.Context(), &input, operatorID)
	if err != nil {
		return handleError(c, err, "Failed to create prestamo")
	}

	return response.Created(c, "Prestamo created successfully", prestamo.ToResponse())
}

// List lists every loan, newest first
// @Summary List prestamos
// @Tags Prestamos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Router /prestamos [get]
func (h *PrestamoHandler) List(c *fiber.Ctx) error {
	prestamos, err := h.prestamoService.List(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to list prestamos")
	}

	return response.Success(c, "Prestamos retrieved successfully", prestamoResponses(prestamos))
}

// Get gets one loan with its details
// @Summary Get prestamo
// @Tags Prestamos
// @Produce json
// @Security BearerAuth
// @Param id path int true "Prestamo ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /prestamos/{id} [get]
func (h *PrestamoHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	prestamo, err := h.prestamoService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get prestamo")
	}

	return response.Success(c, "Prestamo retrieved successfully", prestamo.ToResponse())
}

// ReturnDetail returns one loan detail
// @Summary Return prestamo detalle
// @Description Mark a detail returned. Physical copies take estado_final (default disponible).
// @Tags Prestamos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Detalle ID"
// @Param body body services.ReturnDetalleInput false "Final state"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /prestamos/detalles/{id}/devolver [patch]
func (h *PrestamoHandler) ReturnDetail(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.ReturnDetalleInput
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&input); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	detalle, err := h.prestamoService.ReturnDetail(c.Context(), id, input.EstadoFinal)
	if err != nil {
		return handleError(c, err, "Failed to return detalle")
	}

	return response.Success(c, "Detalle returned successfully", detalle.ToResponse())
}

// RunExpiration runs the overdue sweep now
// @Summary Run expiration sweep
// @Description Mark overdue details and loans VENCIDO (Admin only)
// @Tags Prestamos
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /prestamos/vencimientos/ejecutar [post]
func (h *PrestamoHandler) RunExpiration(c *fiber.Ctx) error {
	result, err := h.prestamoService.ExpireOverdue(c.Context())
	if err != nil {
		return handleError(c, err, "Failed to run expiration sweep")
	}

	return response.Success(c, "Expiration sweep finished", result)
}
