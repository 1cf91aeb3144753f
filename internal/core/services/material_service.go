package services

import (
	"context"
	"strings"
	"time"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// MaterialBibliograficoService handles bibliographic material business logic
type MaterialBibliograficoService struct {
	repo          *repositories.MaterialBibliograficoRepository
	categoriaRepo *repositories.CategoriaRepository
}

// NewMaterialBibliograficoService creates a new bibliographic material service
func NewMaterialBibliograficoService(
	repo *repositories.MaterialBibliograficoRepository,
	categoriaRepo *repositories.CategoriaRepository,
) *MaterialBibliograficoService {
	return &MaterialBibliograficoService{
		repo:          repo,
		categoriaRepo: categoriaRepo,
	}
}

// MaterialBibliograficoInput is the body of create and update.
// There is no formato field; it is always derived.
type MaterialBibliograficoInput struct {
	Codigo           string  `json:"codigo"`
	Titulo           string  `json:"titulo"`
	Anonimo          bool    `json:"anonimo"`
	CategoriaID      uint    `json:"categoria_id"`
	FechaPublicacion *string `json:"fecha_publicacion"`
}

func (in *MaterialBibliograficoInput) normalize() (*time.Time, error) {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Titulo = strings.TrimSpace(in.Titulo)
	if err := firstErr(required("codigo", in.Codigo), required("titulo", in.Titulo)); err != nil {
		return nil, err
	}
	if in.CategoriaID == 0 {
		return nil, domain.Invalid("categoria_id is required")
	}

	if in.FechaPublicacion == nil || *in.FechaPublicacion == "" {
		return nil, nil
	}
	fecha, err := time.Parse(DateLayout, *in.FechaPublicacion)
	if err != nil {
		return nil, domain.Invalid("fecha_publicacion must be YYYY-MM-DD")
	}
	return &fecha, nil
}

// requireCategoria checks the categoria exists and is active
func (s *MaterialBibliograficoService) requireCategoria(ctx context.Context, id uint) error {
	categoria, err := s.categoriaRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, domain.ErrCategoriaNotFound)
	}
	return domain.RequireActive("categoria", categoria)
}

// Create creates a bibliographic material with formato NINGUNO
func (s *MaterialBibliograficoService) Create(ctx context.Context, input *MaterialBibliograficoInput) (*models.MaterialBibliografico, error) {
	fecha, err := input.normalize()
	if err != nil {
		return nil, err
	}
	if err := s.requireCategoria(ctx, input.CategoriaID); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByCodigo(ctx, input.Codigo, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("material bibliografico", "codigo")
	}

	material := &models.MaterialBibliografico{
		Codigo:           input.Codigo,
		Titulo:           input.Titulo,
		Anonimo:          input.Anonimo,
		CategoriaID:      input.CategoriaID,
		Formato:          string(domain.FormatoNinguno),
		FechaPublicacion: fecha,
		Activo:           true,
	}
	if err := s.repo.Create(ctx, material); err != nil {
		return nil, err
	}
	return material, nil
}

// ListMaterialesOutput represents a page of bibliographic materials
type ListMaterialesOutput struct {
	Materiales []*models.MaterialBibliografico `json:"materiales"`
	Meta       *pagination.Meta                `json:"meta"`
}

// List lists bibliographic materials by titulo with pagination
func (s *MaterialBibliograficoService) List(ctx context.Context, params *pagination.Params, includeInactive bool) (*ListMaterialesOutput, error) {
	materiales, total, err := s.repo.List(ctx, params.Offset, params.Limit, includeInactive)
	if err != nil {
		return nil, err
	}

	return &ListMaterialesOutput{
		Materiales: materiales,
		Meta:       pagination.GetMeta(params, total),
	}, nil
}

// GetByID gets a bibliographic material with categoria, autores, copies and virtual record
func (s *MaterialBibliograficoService) GetByID(ctx context.Context, id uint) (*models.MaterialBibliografico, error) {
	material, err := s.repo.GetByIDWithRelations(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	return material, nil
}

// Update updates an active bibliographic material. Turning it anonymous is
// refused while it still has active authors.
func (s *MaterialBibliograficoService) Update(ctx context.Context, id uint, input *MaterialBibliograficoInput) (*models.MaterialBibliografico, error) {
	fecha, err := input.normalize()
	if err != nil {
		return nil, err
	}

	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrMaterialNotFound)
	}
	if err := domain.RequireActive("material bibliografico", material); err != nil {
		return nil, err
	}

	if input.CategoriaID != material.CategoriaID {
		if err := s.requireCategoria(ctx, input.CategoriaID); err != nil {
			return nil, err
		}
	}

	taken, err := s.repo.ExistsByCodigo(ctx, input.Codigo, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("material bibliografico", "codigo")
	}

	if input.Anonimo && !material.Anonimo {
		autores, err := s.repo.CountActiveAutores(ctx, id)
		if err != nil {
			return nil, err
		}
		if autores > 0 {
			return nil, domain.ErrAnonymousMaterial
		}
	}

	material.Codigo = input.Codigo
	material.Titulo = input.Titulo
	material.Anonimo = input.Anonimo
	material.CategoriaID = input.CategoriaID
	material.FechaPublicacion = fecha
	if err := s.repo.Update(ctx, material); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Deactivate soft-deletes a bibliographic material. Children are left as they
// are but cannot be loaned, moved in or reactivated while it stays inactive.
func (s *MaterialBibliograficoService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return translate(err, domain.ErrMaterialNotFound)
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores a bibliographic material; its categoria must be active
func (s *MaterialBibliograficoService) Reactivate(ctx context.Context, id uint) error {
	material, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return translate(err, domain.ErrMaterialNotFound)
	}
	if err := s.requireCategoria(ctx, material.CategoriaID); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}
