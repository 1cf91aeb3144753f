package services

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// MaterialFisicoService handles physical copy business logic. Every write runs
// in a transaction that also recalculates the parent's formato.
type MaterialFisicoService struct {
	db      *gorm.DB
	repo    *repositories.MaterialFisicoRepository
	formato *FormatoService
}

// NewMaterialFisicoService creates a new physical copy service
func NewMaterialFisicoService(db *gorm.DB, formato *FormatoService) *MaterialFisicoService {
	return &MaterialFisicoService{
		db:      db,
		repo:    repositories.NewMaterialFisicoRepository(db),
		formato: formato,
	}
}

// MaterialFisicoInput is the body of create and update. On update a different
// material_bibliografico_id moves the copy.
type MaterialFisicoInput struct {
	MaterialBibliograficoID uint    `json:"material_bibliografico_id"`
	CodigoEjemplar          string  `json:"codigo_ejemplar"`
	Estado                  *string `json:"estado"`
	Ubicacion               string  `json:"ubicacion"`
}

func (in *MaterialFisicoInput) normalize() error {
	in.CodigoEjemplar = strings.TrimSpace(in.CodigoEjemplar)
	in.Ubicacion = strings.TrimSpace(in.Ubicacion)
	if in.MaterialBibliograficoID == 0 {
		return domain.Invalid("material_bibliografico_id is required")
	}
	if err := required("codigo_ejemplar", in.CodigoEjemplar); err != nil {
		return err
	}
	if in.Estado != nil {
		estado := domain.EstadoFisico(*in.Estado)
		if !estado.IsValid() {
			return domain.Invalid("estado must be disponible, prestado, dañado or perdido")
		}
		if estado == domain.EstadoPrestado {
			return domain.ErrCopyStateReserved
		}
	}
	return nil
}

// activeParent loads the bibliographic material through tx and requires it active
func activeParent(ctx context.Context, tx *gorm.DB, id uint) (*models.MaterialBibliografico, error) {
	material, err := repositories.NewMaterialBibliograficoRepository(tx).GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	if err := domain.RequireActive("material bibliografico", material); err != nil {
		return nil, err
	}
	return material, nil
}

// Create adds a copy to an active bibliographic material
func (s *MaterialFisicoService) Create(ctx context.Context, input *MaterialFisicoInput) (*models.MaterialFisico, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	fisico := &models.MaterialFisico{
		MaterialBibliograficoID: input.MaterialBibliograficoID,
		CodigoEjemplar:          input.CodigoEjemplar,
		Estado:                  string(domain.EstadoDisponible),
		Ubicacion:               input.Ubicacion,
		Activo:                  true,
	}
	if input.Estado != nil {
		fisico.Estado = *input.Estado
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if _, err := activeParent(ctx, tx, input.MaterialBibliograficoID); err != nil {
			return err
		}

		taken, err := repo.ExistsCodigoInMaterial(ctx, input.MaterialBibliograficoID, input.CodigoEjemplar, 0)
		if err != nil {
			return err
		}
		if taken {
			return domain.Duplicate("material fisico", "codigo_ejemplar")
		}

		if err := repo.Create(ctx, fisico); err != nil {
			return err
		}
		_, err = s.formato.Recalcular(ctx, tx, fisico.MaterialBibliograficoID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return fisico, nil
}

// List lists copies, optionally of one bibliographic material (materialID 0 lists all)
func (s *MaterialFisicoService) List(ctx context.Context, materialID uint, includeInactive bool) ([]*models.MaterialFisico, error) {
	return s.repo.List(ctx, materialID, includeInactive)
}

// GetByID gets a copy
func (s *MaterialFisicoService) GetByID(ctx context.Context, id uint) (*models.MaterialFisico, error) {
	fisico, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrFisicoNotFound)
	}
	return fisico, nil
}

// Update edits or moves an active copy. A copy on loan keeps its parent and
// its estado; only codigo_ejemplar and ubicacion may change.
func (s *MaterialFisicoService) Update(ctx context.Context, id uint, input *MaterialFisicoInput) (*models.MaterialFisico, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	var fisico *models.MaterialFisico
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		current, err := repo.LockByID(ctx, id)
		if err != nil {
			return translate(err, domain.ErrFisicoNotFound)
		}
		if err := domain.RequireActive("material fisico", current); err != nil {
			return err
		}

		oldParent := current.MaterialBibliograficoID
		moved := input.MaterialBibliograficoID != oldParent
		estadoChanged := input.Estado != nil && *input.Estado != current.Estado

		if current.Estado == string(domain.EstadoPrestado) && (moved || estadoChanged) {
			return domain.ErrCopyOnLoan
		}

		if _, err := activeParent(ctx, tx, input.MaterialBibliograficoID); err != nil {
			return err
		}

		taken, err := repo.ExistsCodigoInMaterial(ctx, input.MaterialBibliograficoID, input.CodigoEjemplar, id)
		if err != nil {
			return err
		}
		if taken {
			return domain.Duplicate("material fisico", "codigo_ejemplar")
		}

		current.MaterialBibliograficoID = input.MaterialBibliograficoID
		current.CodigoEjemplar = input.CodigoEjemplar
		current.Ubicacion = input.Ubicacion
		if input.Estado != nil {
			current.Estado = *input.Estado
		}
		if err := repo.Update(ctx, current); err != nil {
			return err
		}

		// a move changes both parents; RecalcularAll locks them in id order
		if _, err := s.formato.RecalcularAll(ctx, tx, current.MaterialBibliograficoID, oldParent); err != nil {
			return err
		}

		fisico = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return fisico, nil
}

// Deactivate soft-deletes a copy that is not on loan
func (s *MaterialFisicoService) Deactivate(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		fisico, err := repo.LockByID(ctx, id)
		if err != nil {
			return translate(err, domain.ErrFisicoNotFound)
		}
		if fisico.Estado == string(domain.EstadoPrestado) {
			return domain.ErrCopyOnLoan
		}

		if err := repo.SetActivo(ctx, id, false); err != nil {
			return err
		}
		_, err = s.formato.Recalcular(ctx, tx, fisico.MaterialBibliograficoID)
		return err
	})
}

// Reactivate restores a copy under an active bibliographic material
func (s *MaterialFisicoService) Reactivate(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		fisico, err := repo.LockByID(ctx, id)
		if err != nil {
			return translate(err, domain.ErrFisicoNotFound)
		}
		if _, err := activeParent(ctx, tx, fisico.MaterialBibliograficoID); err != nil {
			return err
		}

		if err := repo.SetActivo(ctx, id, true); err != nil {
			return err
		}
		_, err = s.formato.Recalcular(ctx, tx, fisico.MaterialBibliograficoID)
		return err
	})
}
