package services

import (
	"context"
	"strings"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
)

// LectorService handles lector business logic
type LectorService struct {
	repo         *repositories.LectorRepository
	prestamoRepo *repositories.PrestamoRepository
}

// NewLectorService creates a new lector service
func NewLectorService(repo *repositories.LectorRepository, prestamoRepo *repositories.PrestamoRepository) *LectorService {
	return &LectorService{repo: repo, prestamoRepo: prestamoRepo}
}

// LectorInput is the body of lector create and update
type LectorInput struct {
	Codigo    string `json:"codigo"`
	Nombres   string `json:"nombres"`
	Apellidos string `json:"apellidos"`
	Email     string `json:"email"`
	Telefono  string `json:"telefono"`
	Tipo      string `json:"tipo"`
}

func (in *LectorInput) normalize() error {
	in.Codigo = strings.TrimSpace(in.Codigo)
	in.Nombres = strings.TrimSpace(in.Nombres)
	in.Apellidos = strings.TrimSpace(in.Apellidos)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if in.Tipo == "" {
		in.Tipo = string(domain.LectorEstudiante)
	}

	if err := firstErr(
		required("codigo", in.Codigo),
		required("nombres", in.Nombres),
		required("apellidos", in.Apellidos),
		required("email", in.Email),
	); err != nil {
		return err
	}
	if !domain.TipoLector(in.Tipo).IsValid() {
		return domain.Invalid("tipo must be ESTUDIANTE, DOCENTE or EXTERNO")
	}
	return nil
}

// checkUnique rejects codigo or email already used by another lector
func (s *LectorService) checkUnique(ctx context.Context, input *LectorInput, excludeID uint) error {
	taken, err := s.repo.ExistsByCodigo(ctx, input.Codigo, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Duplicate("lector", "codigo")
	}

	taken, err = s.repo.ExistsByEmail(ctx, input.Email, excludeID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Duplicate("lector", "email")
	}
	return nil
}

// Create creates a lector
func (s *LectorService) Create(ctx context.Context, input *LectorInput) (*models.Lector, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, input, 0); err != nil {
		return nil, err
	}

	lector := &models.Lector{
		Codigo:    input.Codigo,
		Nombres:   input.Nombres,
		Apellidos: input.Apellidos,
		Email:     input.Email,
		Telefono:  input.Telefono,
		Tipo:      input.Tipo,
		Activo:    true,
	}
	if err := s.repo.Create(ctx, lector); err != nil {
		return nil, err
	}
	return lector, nil
}

// ListLectoresOutput represents a page of lectores
type ListLectoresOutput struct {
	Lectores []*models.Lector `json:"lectores"`
	Meta     *pagination.Meta `json:"meta"`
}

// List lists lectores by apellidos with pagination
func (s *LectorService) List(ctx context.Context, params *pagination.Params, includeInactive bool) (*ListLectoresOutput, error) {
	lectores, total, err := s.repo.List(ctx, params.Offset, params.Limit, includeInactive)
	if err != nil {
		return nil, err
	}

	return &ListLectoresOutput{
		Lectores: lectores,
		Meta:     pagination.GetMeta(params, total),
	}, nil
}

// GetByID gets a lector, active or not
func (s *LectorService) GetByID(ctx context.Context, id uint) (*models.Lector, error) {
	lector, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrLectorNotFound)
	}
	return lector, nil
}

// GetActive gets a lector that may borrow
func (s *LectorService) GetActive(ctx context.Context, id uint) (*models.Lector, error) {
	lector, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireActive("lector", lector); err != nil {
		return nil, err
	}
	return lector, nil
}

// Update updates an active lector
func (s *LectorService) Update(ctx context.Context, id uint, input *LectorInput) (*models.Lector, error) {
	if err := input.normalize(); err != nil {
		return nil, err
	}

	lector, err := s.GetActive(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkUnique(ctx, input, id); err != nil {
		return nil, err
	}

	lector.Codigo = input.Codigo
	lector.Nombres = input.Nombres
	lector.Apellidos = input.Apellidos
	lector.Email = input.Email
	lector.Telefono = input.Telefono
	lector.Tipo = input.Tipo
	if err := s.repo.Update(ctx, lector); err != nil {
		return nil, err
	}
	return lector, nil
}

// Deactivate soft-deletes a lector. Open loans stay open and can still be returned.
func (s *LectorService) Deactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores a lector
func (s *LectorService) Reactivate(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}

// ListPrestamos returns the loan history of a lector, newest first
func (s *LectorService) ListPrestamos(ctx context.Context, id uint) ([]*models.Prestamo, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.prestamoRepo.ListByLector(ctx, id)
}
