package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// UsuarioHandler handles staff account endpoints
type UsuarioHandler struct {
	usuarioService *services.UsuarioService
}

// NewUsuarioHandler creates a new usuario handler
func NewUsuarioHandler(usuarioService *services.UsuarioService) *UsuarioHandler {
	return &UsuarioHandler{
		usuarioService: usuarioService,
	}
}

// List handles listing usuarios (Admin only)
// @Summary List usuarios
// @Description Get a paginated list of usuarios (Admin only)
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /usuarios [get]
func (h *UsuarioHandler) List(c *fiber.Ctx) error {
	result, err := h.usuarioService.List(c.Context(), pagination.GetParams(c), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list usuarios")
	}

	return response.Paginated(c, "Usuarios retrieved successfully", result.Usuarios, result.Meta)
}

// Get handles getting a usuario by ID (Admin only)
// @Summary Get usuario
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /usuarios/{id} [get]
func (h *UsuarioHandler) Get(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	usuario, err := h.usuarioService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get usuario")
	}

	return response.Success(c, "Usuario retrieved successfully", usuario)
}

// Create handles creating a usuario (Admin only)
// @Summary Create usuario
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CreateUsuarioInput true "Usuario data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /usuarios [post]
func (h *UsuarioHandler) Create(c *fiber.Ctx) error {
	var input services.CreateUsuarioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	usuario, err := h.usuarioService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create usuario")
	}

	return response.Created(c, "Usuario created successfully", usuario)
}

// Update handles updating a usuario (Admin only)
// @Summary Update usuario
// @Tags Usuarios
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Param body body services.UpdateUsuarioInput true "Fields to change"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /usuarios/{id} [put]
func (h *UsuarioHandler) Update(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.UpdateUsuarioInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	usuario, err := h.usuarioService.Update(c.Context(), id, actor, &input)
	if err != nil {
		return handleError(c, err, "Failed to update usuario")
	}

	return response.Success(c, "Usuario updated successfully", usuario)
}

// Delete handles deactivating a usuario (Admin only)
// @Summary Deactivate usuario
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /usuarios/{id} [delete]
func (h *UsuarioHandler) Delete(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}
	actor, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	if err := h.usuarioService.Deactivate(c.Context(), id, actor); err != nil {
		return handleError(c, err, "Failed to deactivate usuario")
	}

	return response.Success(c, "Usuario deactivated successfully", nil)
}

// Reactivate handles reactivating a usuario (Admin only)
// @Summary Reactivate usuario
// @Tags Usuarios
// @Produce json
// @Security BearerAuth
// @Param id path int true "Usuario ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /usuarios/{id}/reactivar [patch]
func (h *UsuarioHandler) Reactivate(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.usuarioService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate usuario")
	}

	return response.Success(c, "Usuario reactivated successfully", nil)
}

// ChangePassword handles changing the caller's own password
// @Summary Change password
// @Tags Auth
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.ChangePasswordInput true "Old and new password"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /auth/password [put]
func (h *UsuarioHandler) ChangePassword(c *fiber.Ctx) error {
	actor, ok := actorID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var input services.ChangePasswordInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.usuarioService.ChangePassword(c.Context(), actor, &input); err != nil {
		return handleError(c, err, "Failed to change password")
	}

	return response.Success(c, "Password changed successfully", nil)
}
