package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/services"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/response"
)

// MaterialHandler handles bibliographic materials, their physical copies,
// virtual records and autor links
type MaterialHandler struct {
	materialService      *services.MaterialBibliograficoService
	fisicoService        *services.MaterialFisicoService
	virtualService       *services.MaterialVirtualService
	autorMaterialService *services.AutorMaterialService
}

// NewMaterialHandler creates a new material handler
func NewMaterialHandler(
	materialService *services.MaterialBibliograficoService,
	fisicoService *services.MaterialFisicoService,
	virtualService *services.MaterialVirtualService,
	autorMaterialService *services.AutorMaterialService,
) *MaterialHandler {
	return &MaterialHandler{
		materialService:      materialService,
		fisicoService:        fisicoService,
		virtualService:       virtualService,
		autorMaterialService: autorMaterialService,
	}
}

// ============================================================
// Material bibliografico
// ============================================================

// ListMaterials lists material bibliografico records
// @Summary List material bibliografico
// @Description Get a paginated list of materials ordered by titulo
// @Tags Materiales
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /materiales-bibliograficos [get]
func (h *MaterialHandler) ListMaterials(c *fiber.Ctx) error {
	result, err := h.materialService.List(c.Context(), pagination.GetParams(c), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list material bibliografico")
	}

	return response.Paginated(c, "Materiales retrieved successfully", result.Materiales, result.Meta)
}

// GetMaterial gets one material bibliografico by ID
// @Summary Get material bibliografico
// @Tags Materiales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materiales-bibliograficos/{id} [get]
func (h *MaterialHandler) GetMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.materialService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get material bibliografico")
	}

	return response.Success(c, "Material bibliografico retrieved successfully", item)
}

// CreateMaterial creates a material bibliografico
// @Summary Create material bibliografico
// @Tags Materiales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaterialBibliograficoInput true "Data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-bibliograficos [post]
func (h *MaterialHandler) CreateMaterial(c *fiber.Ctx) error {
	var input services.MaterialBibliograficoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.materialService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create material bibliografico")
	}

	return response.Created(c, "Material bibliografico created successfully", item)
}

// UpdateMaterial updates a material bibliografico
// @Summary Update material bibliografico
// @Tags Materiales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param body body services.MaterialBibliograficoInput true "Data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-bibliograficos/{id} [put]
func (h *MaterialHandler) UpdateMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.MaterialBibliograficoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.materialService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update material bibliografico")
	}

	return response.Success(c, "Material bibliografico updated successfully", item)
}

// DeleteMaterial deactivates a material bibliografico
// @Summary Deactivate material bibliografico
// @Tags Materiales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-bibliograficos/{id} [delete]
func (h *MaterialHandler) DeleteMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.materialService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate material bibliografico")
	}

	return response.Success(c, "Material bibliografico deactivated successfully", nil)
}

// ReactivateMaterial reactivates a material bibliografico
// @Summary Reactivate material bibliografico
// @Tags Materiales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-bibliograficos/{id}/reactivar [patch]
func (h *MaterialHandler) ReactivateMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.materialService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate material bibliografico")
	}

	return response.Success(c, "Material bibliografico reactivated successfully", nil)
}

// ============================================================
// Material fisico
// ============================================================

// ListFisicos lists physical copies, optionally of one material
// @Summary List materiales fisicos
// @Tags Materiales fisicos
// @Produce json
// @Security BearerAuth
// @Param material_id query int false "Bibliographic material ID"
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /materiales-fisicos [get]
func (h *MaterialHandler) ListFisicos(c *fiber.Ctx) error {
	var materialID uint
	if raw := c.Query("material_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			return response.BadRequest(c, "Invalid material_id")
		}
		materialID = uint(id)
	}

	fisicos, err := h.fisicoService.List(c.Context(), materialID, includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list materiales fisicos")
	}

	return response.Success(c, "Materiales fisicos retrieved successfully", fisicos)
}

// GetFisico gets one material fisico by ID
// @Summary Get material fisico
// @Tags Materiales fisicos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materiales-fisicos/{id} [get]
func (h *MaterialHandler) GetFisico(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.fisicoService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get material fisico")
	}

	return response.Success(c, "Material fisico retrieved successfully", item)
}

// CreateFisico creates a material fisico
// @Summary Create material fisico
// @Tags Materiales fisicos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaterialFisicoInput true "Data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-fisicos [post]
func (h *MaterialHandler) CreateFisico(c *fiber.Ctx) error {
	var input services.MaterialFisicoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.fisicoService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create material fisico")
	}

	return response.Created(c, "Material fisico created successfully", item)
}

// UpdateFisico updates a material fisico
// @Summary Update material fisico
// @Tags Materiales fisicos
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param body body services.MaterialFisicoInput true "Data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-fisicos/{id} [put]
func (h *MaterialHandler) UpdateFisico(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.MaterialFisicoInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.fisicoService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update material fisico")
	}

	return response.Success(c, "Material fisico updated successfully", item)
}

// DeleteFisico deactivates a material fisico
// @Summary Deactivate material fisico
// @Tags Materiales fisicos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-fisicos/{id} [delete]
func (h *MaterialHandler) DeleteFisico(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.fisicoService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate material fisico")
	}

	return response.Success(c, "Material fisico deactivated successfully", nil)
}

// ReactivateFisico reactivates a material fisico
// @Summary Reactivate material fisico
// @Tags Materiales fisicos
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-fisicos/{id}/reactivar [patch]
func (h *MaterialHandler) ReactivateFisico(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.fisicoService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate material fisico")
	}

	return response.Success(c, "Material fisico reactivated successfully", nil)
}

// ============================================================
// Material virtual
// ============================================================

// ListVirtuals lists material virtual records
// @Summary List material virtual
// @Tags Materiales virtuales
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /materiales-virtuales [get]
func (h *MaterialHandler) ListVirtuals(c *fiber.Ctx) error {
	items, err := h.virtualService.List(c.Context(), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list material virtual")
	}

	return response.Success(c, "Materiales virtuales retrieved successfully", items)
}

// GetVirtual gets one material virtual by ID
// @Summary Get material virtual
// @Tags Materiales virtuales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materiales-virtuales/{id} [get]
func (h *MaterialHandler) GetVirtual(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.virtualService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get material virtual")
	}

	return response.Success(c, "Material virtual retrieved successfully", item)
}

// CreateVirtual creates a material virtual
// @Summary Create material virtual
// @Tags Materiales virtuales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.MaterialVirtualInput true "Data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-virtuales [post]
func (h *MaterialHandler) CreateVirtual(c *fiber.Ctx) error {
	var input services.MaterialVirtualInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.virtualService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create material virtual")
	}

	return response.Created(c, "Material virtual created successfully", item)
}

// UpdateVirtual updates a material virtual
// @Summary Update material virtual
// @Tags Materiales virtuales
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param body body services.MaterialVirtualInput true "Data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-virtuales/{id} [put]
func (h *MaterialHandler) UpdateVirtual(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.MaterialVirtualInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.virtualService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update material virtual")
	}

	return response.Success(c, "Material virtual updated successfully", item)
}

// DeleteVirtual deactivates a material virtual
// @Summary Deactivate material virtual
// @Tags Materiales virtuales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /materiales-virtuales/{id} [delete]
func (h *MaterialHandler) DeleteVirtual(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.virtualService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate material virtual")
	}

	return response.Success(c, "Material virtual deactivated successfully", nil)
}

// ReactivateVirtual reactivates a material virtual
// @Summary Reactivate material virtual
// @Tags Materiales virtuales
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /materiales-virtuales/{id}/reactivar [patch]
func (h *MaterialHandler) ReactivateVirtual(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.virtualService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate material virtual")
	}

	return response.Success(c, "Material virtual reactivated successfully", nil)
}

// ============================================================
// Autor material
// ============================================================

// ListAutorMaterials lists autor material records
// @Summary List autor material
// @Tags Autor material
// @Produce json
// @Security BearerAuth
// @Param all query bool false "Include inactive"
// @Success 200 {object} response.Response
// @Router /autor-material [get]
func (h *MaterialHandler) ListAutorMaterials(c *fiber.Ctx) error {
	items, err := h.autorMaterialService.List(c.Context(), includeInactive(c))
	if err != nil {
		return handleError(c, err, "Failed to list autor material")
	}

	return response.Success(c, "Autor material links retrieved successfully", items)
}

// GetAutorMaterial gets one autor material by ID
// @Summary Get autor material
// @Tags Autor material
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /autor-material/{id} [get]
func (h *MaterialHandler) GetAutorMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	item, err := h.autorMaterialService.GetByID(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to get autor material")
	}

	return response.Success(c, "Autor material retrieved successfully", item)
}

// CreateAutorMaterial creates a autor material
// @Summary Create autor material
// @Tags Autor material
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body services.AutorMaterialInput true "Data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /autor-material [post]
func (h *MaterialHandler) CreateAutorMaterial(c *fiber.Ctx) error {
	var input services.AutorMaterialInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.autorMaterialService.Create(c.Context(), &input)
	if err != nil {
		return handleError(c, err, "Failed to create autor material")
	}

	return response.Created(c, "Autor material created successfully", item)
}

// UpdateAutorMaterial updates a autor material
// @Summary Update autor material
// @Tags Autor material
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Param body body services.AutorMaterialInput true "Data"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /autor-material/{id} [put]
func (h *MaterialHandler) UpdateAutorMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	var input services.AutorMaterialInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	item, err := h.autorMaterialService.Update(c.Context(), id, &input)
	if err != nil {
		return handleError(c, err, "Failed to update autor material")
	}

	return response.Success(c, "Autor material updated successfully", item)
}

// DeleteAutorMaterial deactivates a autor material
// @Summary Deactivate autor material
// @Tags Autor material
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /autor-material/{id} [delete]
func (h *MaterialHandler) DeleteAutorMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.autorMaterialService.Deactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to deactivate autor material")
	}

	return response.Success(c, "Autor material deactivated successfully", nil)
}

// ReactivateAutorMaterial reactivates a autor material
// @Summary Reactivate autor material
// @Tags Autor material
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /autor-material/{id}/reactivar [patch]
func (h *MaterialHandler) ReactivateAutorMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	if err := h.autorMaterialService.Reactivate(c.Context(), id); err != nil {
		return handleError(c, err, "Failed to reactivate autor material")
	}

	return response.Success(c, "Autor material reactivated successfully", nil)
}

// ListAutoresByMaterial lists the active autores of one material
// @Summary Autores of a material
// @Tags Materiales
// @Produce json
// @Security BearerAuth
// @Param id path int true "Bibliographic material ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /materiales-bibliograficos/{id}/autores [get]
func (h *MaterialHandler) ListAutoresByMaterial(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid ID")
	}

	links, err := h.autorMaterialService.ListByMaterial(c.Context(), id)
	if err != nil {
		return handleError(c, err, "Failed to list autores")
	}

	return response.Success(c, "Autores retrieved successfully", links)
}
