package services

import (
	"context"
	"strings"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// ============================================================
// Autor
// ============================================================

// AutorService handles autor business logic
type AutorService struct {
	repo *repositories.AutorRepository
}

// NewAutorService creates a new autor service
func NewAutorService(repo *repositories.AutorRepository) *AutorService {
	return &AutorService{repo: repo}
}

// AutorInput is the body of autor create and update
type AutorInput struct {
	Nombre       string `json:"nombre"`
	Nacionalidad string `json:"nacionalidad"`
}

func (in *AutorInput) normalize() error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	in.Nacionalidad = strings.TrimSpace(in.Nacionalidad)
	return required("nombre", in.Nombre)
}

// Create creates an autor with a unique nombre
func (s *AutorService) Create(ctx context.Context, input *AutorInput) (*models.Autor, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNombre(ctx, input.Nombre, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("autor", "nombre")
	}

	autor := &models.Autor{Nombre: input.Nombre, Nacionalidad: input.Nacionalidad, Activo: true}
	if err := s.repo.Create(ctx, autor); err != nil {
		return nil, err
	}
	return autor, nil
}

// List lists autores
func (s *AutorService) List(ctx context.Context, includeInactive bool) ([]*models.Autor, error) {
	return s.repo.List(ctx, includeInactive)
}

// GetByID gets an autor
func (s *AutorService) GetByID(ctx context.Context, id uint) (*models.Autor, error) {
	autor, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrAutorNotFound)
	}
	return autor, nil
}

// Update updates an active autor
func (s *AutorService) Update(ctx context.Context, id uint, input *AutorInput) (*models.Autor, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	autor, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireActive("autor", autor); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNombre(ctx, input.Nombre, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("autor", "nombre")
	}

	autor.Nombre = input.Nombre
	autor.Nacionalidad = input.Nacionalidad
	if err := s.repo.Update(ctx, autor); err != nil {
		return nil, err
	}
	return autor, nil
}

// Deactivate soft-deletes an autor
func (s *AutorService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores an autor
func (s *AutorService) Reactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}

// ============================================================
// Categoria
// ============================================================

// CategoriaService handles categoria business logic
type CategoriaService struct {
	repo *repositories.CategoriaRepository
}

// NewCategoriaService creates a new categoria service
func NewCategoriaService(repo *repositories.CategoriaRepository) *CategoriaService {
	return &CategoriaService{repo: repo}
}

// CategoriaInput is the body of categoria create and update
type CategoriaInput struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
}

func (in *CategoriaInput) normalize() error {
	in.Nombre = strings.TrimSpace(in.Nombre)
	return required("nombre", in.Nombre)
}

// Create creates a categoria with a unique nombre
func (s *CategoriaService) Create(ctx context.Context, input *CategoriaInput) (*models.Categoria, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNombre(ctx, input.Nombre, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("categoria", "nombre")
	}

	categoria := &models.Categoria{Nombre: input.Nombre, Descripcion: input.Descripcion, Activo: true}
	if err := s.repo.Create(ctx, categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

// List lists categorias
func (s *CategoriaService) List(ctx context.Context, includeInactive bool) ([]*models.Categoria, error) {
	return s.repo.List(ctx, includeInactive)
}

// GetByID gets a categoria
func (s *CategoriaService) GetByID(ctx context.Context, id uint) (*models.Categoria, error) {
	categoria, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrCategoriaNotFound)
	}
	return categoria, nil
}

// Update updates an active categoria
func (s *CategoriaService) Update(ctx context.Context, id uint, input *CategoriaInput) (*models.Categoria, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	categoria, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireActive("categoria", categoria); err != nil {
		return nil, err
	}

	taken, err := s.repo.ExistsByNombre(ctx, input.Nombre, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("categoria", "nombre")
	}

	categoria.Nombre = input.Nombre
	categoria.Descripcion = input.Descripcion
	if err := s.repo.Update(ctx, categoria); err != nil {
		return nil, err
	}
	return categoria, nil
}

// Deactivate soft-deletes a categoria. Its materials keep pointing at it but
// no new material can be filed under it.
func (s *CategoriaService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores a categoria
func (s *CategoriaService) Reactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}
