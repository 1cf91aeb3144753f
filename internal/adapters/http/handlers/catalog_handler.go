package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// CatalogHandler handles autor and categoria endpoints
type CatalogHandler struct {
	autorService     *services.AutorService
	categoriaService *services.CategoriaService
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(autorService *services.AutorService, categoriaService *services.CategoriaService) *CatalogHandler {
	return &CatalogHandler{
		autorService:     autorService,
		categoriaService: categoriaService,
	}
}

// ============================================================
// Autor
// ============================================================

// ListAutores lists autores
// @Summary List autores
// @Tags Autores
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /autores [get]
func (h *CatalogHandler) ListAutores(c *fiber.Ctx) error {
	autores, err := h.autorService.List(c.Context(), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list autores")
	}

	return response.Success(c, "Autores retrieved successfully", autores)
}

// GetAutor gets an autor by ID
// @Summary Get autor
// @Tags Autores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Autor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /autores/{id} [get]
func (h *CatalogHandler) GetAutor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	autor, err := h.autorService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get autor")
	}

	return response.Success(c, "Autor retrieved successfully", autor)
}

// CreateAutor creates an autor
// @Summary Create autor
// @Tags Autores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AutorInput true "Autor data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /autores [post]
func (h *CatalogHandler) CreateAutor(c *fiber.Ctx) error {
	var input services.AutorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	autor, err := h.autorService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create autor")
	}

	return response.Created(c, "Autor created successfully", autor)
}

// UpdateAutor updates an autor
// @Summary Update autor
// @Tags Autores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Autor ID"
// @Param body body services.AutorInput true "Autor data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /autores/{id} [put]
func (h *CatalogHandler) UpdateAutor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.AutorInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	autor, err := h.autorService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update autor")
	}

	return response.Success(c, "Autor updated successfully", autor)
}

// DeleteAutor deactivates an autor
// @Summary Deactivate autor
// @Tags Autores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Autor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /autores/{id} [delete]
func (h *CatalogHandler) DeleteAutor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.autorService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate autor")
	}

	return response.Success(c, "Autor deactivated successfully", nil)
}

// ReactivateAutor reactivates an autor
// @Summary Reactivate autor
// @Tags Autores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Autor ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /autores/{id}/reactivar [patch]
func (h *CatalogHandler) ReactivateAutor(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.autorService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate autor")
	}

	return response.Success(c, "Autor reactivated successfully", nil)
}

// ============================================================
// Categoria
// ============================================================

// ListCategorias lists categorias
// @Summary List categorias
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /categorias [get]
func (h *CatalogHandler) ListCategorias(c *fiber.Ctx) error {
	categorias, err := h.categoriaService.List(c.Context(), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list categorias")
	}

	return response.Success(c, "Categorias retrieved successfully", categorias)
}

// GetCategoria gets a categoria by ID
// @Summary Get categoria
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categorias/{id} [get]
func (h *CatalogHandler) GetCategoria(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	categoria, err := h.categoriaService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get categoria")
	}

	return response.Success(c, "Categoria retrieved successfully", categoria)
}

// CreateCategoria creates a categoria
// @Summary Create categoria
// @Tags Categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.CategoriaInput true "Categoria data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categorias [post]
func (h *CatalogHandler) CreateCategoria(c *fiber.Ctx) error {
	var input services.CategoriaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	categoria, err := h.categoriaService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create categoria")
	}

	return response.Created(c, "Categoria created successfully", categoria)
}

// UpdateCategoria updates a categoria
// @Summary Update categoria
// @Tags Categorias
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Param body body services.CategoriaInput true "Categoria data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /categorias/{id} [put]
func (h *CatalogHandler) UpdateCategoria(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.CategoriaInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	categoria, err := h.categoriaService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update categoria")
	}

	return response.Success(c, "Categoria updated successfully", categoria)
}

// DeleteCategoria deactivates a categoria
// @Summary Deactivate categoria
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categorias/{id} [delete]
func (h *CatalogHandler) DeleteCategoria(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.categoriaService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate categoria")
	}

	return response.Success(c, "Categoria deactivated successfully", nil)
}

// ReactivateCategoria reactivates a categoria
// @Summary Reactivate categoria
// @Tags Categorias
// @Produce json
// @Security BearerAuth
// @Param id path int true "Categoria ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /categorias/{id}/reactivar [patch]
func (h *CatalogHandler) ReactivateCategoria(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.categoriaService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate categoria")
	}

	return response.Success(c, "Categoria reactivated successfully", nil)
}
