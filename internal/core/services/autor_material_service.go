package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// AutorMaterialService links autores to bibliographic materials
type AutorMaterialService struct {
	repo         *repositories.AutorMaterialRepository
	autorRepo    *repositories.AutorRepository
	materialRepo *repositories.MaterialBibliograficoRepository
}

// NewAutorMaterialService creates a new autor/material service
func NewAutorMaterialService(
	repo *repositories.AutorMaterialRepository,
	autorRepo *repositories.AutorRepository,
	materialRepo *repositories.MaterialBibliograficoRepository,
) *AutorMaterialService {
	return &AutorMaterialService{
		repo:         repo,
		autorRepo:    autorRepo,
		materialRepo: materialRepo,
	}
}

// AutorMaterialInput is the body of create and update
type AutorMaterialInput struct {
	AutorID                 uint `json:"autor_id"`
	MaterialBibliograficoID uint `json:"material_bibliografico_id"`
}

// checkPair requires an active autor and an active, non-anonymous material
func (s *AutorMaterialService) checkPair(ctx context.Context, autorID, materialID uint) error {
	if autorID == 0 || materialID == 0 {
		return domain.Invalid("autor_id and material_bibliografico_id are required")
	}

	autor, err := s.autorRepo.GetByID(ctx, autorID)
	if err != nil {
		return translate(err, domain.ErrAutorNotFound)
	}
	if err := domain.RequireActive("autor", autor); err != nil {
		return err
	}

	material, err := s.materialRepo.GetByID(ctx, materialID)
	if err != nil {
		return translate(err, domain.ErrMaterialNotFound)
	}
	if err := domain.RequireActive("material bibliografico", material); err != nil {
		return err
	}
	if material.Anonimo {
		return domain.ErrAnonymousMaterial
	}
	return nil
}

// Create links an autor to a material. Re-linking a pair that was
// deactivated reactivates the existing row.
func (s *AutorMaterialService) Create(ctx context.Context, input *AutorMaterialInput) (*models.AutorMaterial, error) {
	if err := s.checkPair(ctx, input.AutorID, input.MaterialBibliograficoID); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByPair(ctx, input.AutorID, input.MaterialBibliograficoID)
	switch {
	case err == nil && existing.Activo:
		return nil, domain.Duplicate("autor material", "autor_id and material_bibliografico_id")
	case err == nil:
		if err := s.repo.SetActivo(ctx, existing.ID, true); err != nil {
			return nil, err
		}
		return s.GetByID(ctx, existing.ID)
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, err
	}

	link := &models.AutorMaterial{
		AutorID:                 input.AutorID,
		MaterialBibliograficoID: input.MaterialBibliograficoID,
		Activo:                  true,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, link.ID)
}

// List lists links
func (s *AutorMaterialService) List(ctx context.Context, includeInactive bool) ([]*models.AutorMaterial, error) {
	return s.repo.List(ctx, includeInactive)
}

// ListByMaterial lists the active autores of a material
func (s *AutorMaterialService) ListByMaterial(ctx context.Context, materialID uint) ([]*models.AutorMaterial, error) {
	if _, err := s.materialRepo.GetByID(ctx, materialID); err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	return s.repo.ListByMaterial(ctx, materialID)
}

// GetByID gets a link with its autor
func (s *AutorMaterialService) GetByID(ctx context.Context, id uint) (*models.AutorMaterial, error) {
	link, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrAutorMaterialNotFound)
	}
	return link, nil
}

// Update repoints an active link to another pair
func (s *AutorMaterialService) Update(ctx context.Context, id uint, input *AutorMaterialInput) (*models.AutorMaterial, error) {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireActive("autor material", link); err != nil {
		return nil, err
	}
	if err := s.checkPair(ctx, input.AutorID, input.MaterialBibliograficoID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsPair(ctx, input.AutorID, input.MaterialBibliograficoID, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("autor material", "autor_id and material_bibliografico_id")
	}

	link.AutorID = input.AutorID
	link.MaterialBibliograficoID = input.MaterialBibliograficoID
	if err := s.repo.Update(ctx, link); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Deactivate soft-deletes a link
func (s *AutorMaterialService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores a link; both ends must still qualify
func (s *AutorMaterialService) Reactivate(ctx context.Context, id uint) error {
	link, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.checkPair(ctx, link.AutorID, link.MaterialBibliograficoID); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}
