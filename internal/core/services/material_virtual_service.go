package services

import (
	"context"
	"net/url"
	"strings"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// MaterialVirtualService handles virtual record business logic. A bibliographic
// material has at most one virtual record.
type MaterialVirtualService struct {
	db      *gorm.DB
	repo    *repositories.MaterialVirtualRepository
	formato *FormatoService
}

// NewMaterialVirtualService creates a new virtual record service
func NewMaterialVirtualService(db *gorm.DB, formato *FormatoService) *MaterialVirtualService {
	return &MaterialVirtualService{
		db:      db,
		repo:    repositories.NewMaterialVirtualRepository(db),
		formato: formato,
	}
}

// MaterialVirtualInput is the body of create and update
type MaterialVirtualInput struct {
	MaterialBibliograficoID uint   `json:"material_bibliografico_id"`
	URL                     string `json:"url"`
	FormatoArchivo          string `json:"formato_archivo"`
}

func (in *MaterialVirtualInput) normalize() error {
	in.URL = strings.TrimSpace(in.URL)
	in.FormatoArchivo = strings.ToUpper(strings.TrimSpace(in.FormatoArchivo))
	if in.MaterialBibliograficoID == 0 {
		return domain.Invalid("material_bibliografico_id is required")
	}
	if err := required("url", in.URL); err != nil {
		return err
	}
	if u, err := url.ParseRequestURI(in.URL); err != nil || u.Host == "" {
		return domain.Invalid("url must be an absolute URL")
	}
	return nil
}

// Create attaches a virtual record to an active bibliographic material
func (s *MaterialVirtualService) Create(ctx context.Context, input *MaterialVirtualInput) (*models.MaterialVirtual, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	virtual := &models.MaterialVirtual{
		MaterialBibliograficoID: input.MaterialBibliograficoID,
		URL:                     input.URL,
		FormatoArchivo:          input.FormatoArchivo,
		Activo:                  true,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := activeParent(ctx, tx, input.MaterialBibliograficoID); err != nil {
			return err
		}

		taken, err := repo.ExistsForMaterial(ctx, input.MaterialBibliograficoID, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrVirtualAlreadyExists
		}

		if err := repo.Create(ctx, virtual); err != nil {
			return err
		}
		_, err = s.formato.Recalcular(ctx, tx, virtual.MaterialBibliograficoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return virtual, nil
}

// List lists virtual records
func (s *MaterialVirtualService) List(ctx context.Context, includeInactive bool) ([]*models.MaterialVirtual, error) {
	return s.repo.List(ctx, includeInactive)
}

// GetByID gets a virtual record
func (s *MaterialVirtualService) GetByID(ctx context.Context, id uint) (*models.MaterialVirtual, error) {
	virtual, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrVirtualNotFound)
	}
	return virtual, nil
}

// Update edits or moves an active virtual record
func (s *MaterialVirtualService) Update(ctx context.Context, id uint, input *MaterialVirtualInput) (*models.MaterialVirtual, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	var virtual *models.MaterialVirtual
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return translate(err, domain.ErrVirtualNotFound)
		}
		if err := domain.RequireActive("material virtual", current); err != nil {
			return err
		}

		oldParent := current.MaterialBibliograficoID
		moved := input.MaterialBibliograficoID != oldParent

		if _, err := activeParent(ctx, tx, input.MaterialBibliograficoID); err != nil {
			return err
		}
		if moved {
			taken, err := repo.ExistsForMaterial(ctx, input.MaterialBibliograficoID, id)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrVirtualAlreadyExists
			}
		}

		current.MaterialBibliograficoID = input.MaterialBibliograficoID
		current.URL = input.URL
		current.FormatoArchivo = input.FormatoArchivo
		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		// a move changes both parents; RecalcularAll locks them in id order
		if _, err := s.formato.RecalcularAll(ctx, tx, current.MaterialBibliograficoID, oldParent); err != nil {
			return err
		}

		virtual = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return virtual, nil
}

// Deactivate soft-deletes a virtual record
func (s *MaterialVirtualService) Deactivate(ctx context.Context, id uint) error {
	return s.setActivo(ctx, id, false)
}

// Reactivate restores a virtual record under an active bibliographic material
func (s *MaterialVirtualService) Reactivate(ctx context.Context, id uint) error {
	return s.setActivo(ctx, id, true)
}

func (s *MaterialVirtualService) setActivo(ctx context.Context, id uint, activo bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		virtual, err := repo.GetByID(ctx, id)
		if err != nil {
			return translate(err, domain.ErrVirtualNotFound)
		}
		if activo {
			if _, err := activeParent(ctx, tx, virtual.MaterialBibliograficoID); err != nil {
				return err
			}
		}

		if err := repo.SetActivo(ctx, id, activo); err != nil {
			return err
		}
		_, err = s.formato.Recalcular(ctx, tx, virtual.MaterialBibliograficoID)
		return err
	})
}
