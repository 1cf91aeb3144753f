package services

import (
	"context"
	"strings"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/repositories"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/pagination"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/password"
)

// UsuarioService handles staff account management
type UsuarioService struct {
	repo repositories.UsuarioRepository
}

// NewUsuarioService creates a new usuario service
func NewUsuarioService(repo repositories.UsuarioRepository) *UsuarioService {
	return &UsuarioService{repo: repo}
}

// CreateUsuarioInput represents create usuario input
type CreateUsuarioInput struct {
	Nombre   string `json:"nombre"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Rol      string `json:"rol"`
}

// UpdateUsuarioInput represents update usuario input (for admin)
type UpdateUsuarioInput struct {
	Nombre   *string `json:"nombre"`
	Email    *string `json:"email"`
	Rol      *string `json:"rol"`
	Password *string `json:"password"`
}

// ChangePasswordInput represents change password input
type ChangePasswordInput struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// ListUsuariosOutput represents a page of usuarios
type ListUsuariosOutput struct {
	Usuarios []*models.UsuarioResponse `json:"usuarios"`
	Meta     *pagination.Meta          `json:"meta"`
}

// Create creates a usuario with a hashed password
func (s *UsuarioService) Create(ctx context.Context, input *CreateUsuarioInput) (*models.UsuarioResponse, error) {
	input.Nombre = strings.TrimSpace(input.Nombre)
	input.Email = strings.ToLower(strings.TrimSpace(input.Email))
	if input.Rol == "" {
		input.Rol = string(domain.RoleBibliotecario)
	}

	if err := firstErr(required("nombre", input.Nombre), required("email", input.Email)); err != nil {
		return nil, err
	}
	if !domain.Role(input.Rol).IsValid() {
		return nil, domain.Invalid("rol must be ADMIN or BIBLIOTECARIO")
	}
	if !password.ValidatePassword(input.Password) {
		return nil, domain.ErrWeakPassword
	}

	taken, err := s.repo.ExistsByEmail(ctx, input.Email, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Duplicate("usuario", "email")
	}

	hashedPassword, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	usuario := &models.Usuario{
		Nombre:   input.Nombre,
		Email:    input.Email,
		Password: hashedPassword,
		Rol:      input.Rol,
		Activo:   true,
	}
	if err := s.repo.Create(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario.ToResponse(), nil
}

// List lists usuarios with pagination
func (s *UsuarioService) List(ctx context.Context, params *pagination.Params, includeInactive bool) (*ListUsuariosOutput, error) {
	usuarios, total, err := s.repo.List(ctx, params.Offset, params.Limit, includeInactive)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.UsuarioResponse, len(usuarios))
	for i, u := range usuarios {
		responses[i] = u.ToResponse()
	}

	return &ListUsuariosOutput{
		Usuarios: responses,
		Meta:     pagination.GetMeta(params, total),
	}, nil
}

// GetByID gets a usuario by ID
func (s *UsuarioService) GetByID(ctx context.Context, id uint) (*models.UsuarioResponse, error) {
	usuario, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return usuario.ToResponse(), nil
}

func (s *UsuarioService) get(ctx context.Context, id uint) (*models.Usuario, error) {
	usuario, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrUsuarioNotFound)
	}
	return usuario, nil
}

// Update updates a usuario. actorID is the caller; admins cannot change their own role.
func (s *UsuarioService) Update(ctx context.Context, id, actorID uint, input *UpdateUsuarioInput) (*models.UsuarioResponse, error) {
	usuario, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := domain.RequireActive("usuario", usuario); err != nil {
		return nil, err
	}

	if input.Nombre != nil {
		nombre := strings.TrimSpace(*input.Nombre)
		if err := required("nombre", nombre); err != nil {
			return nil, err
		}
		usuario.Nombre = nombre
	}

	if input.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*input.Email))
		if err := required("email", email); err != nil {
			return nil, err
		}
		taken, err := s.repo.ExistsByEmail(ctx, email, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Duplicate("usuario", "email")
		}
		usuario.Email = email
	}

	if input.Rol != nil && *input.Rol != usuario.Rol {
		if id == actorID {
			return nil, domain.ErrCannotChangeOwnRole
		}
		if !domain.Role(*input.Rol).IsValid() {
			return nil, domain.Invalid("rol must be ADMIN or BIBLIOTECARIO")
		}
		usuario.Rol = *input.Rol
	}

	if input.Password != nil {
		if !password.ValidatePassword(*input.Password) {
			return nil, domain.ErrWeakPassword
		}
		hashedPassword, err := password.Hash(*input.Password)
		if err != nil {
			return nil, err
		}
		usuario.Password = hashedPassword
	}

	if err := s.repo.Update(ctx, usuario); err != nil {
		return nil, err
	}
	return usuario.ToResponse(), nil
}

// Deactivate soft-deletes a usuario. Their loans keep the operator reference.
func (s *UsuarioService) Deactivate(ctx context.Context, id, actorID uint) error {
	if id == actorID {
		return domain.ErrCannotDeactivateSelf
	}
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, false)
}

// Reactivate restores a usuario
func (s *UsuarioService) Reactivate(ctx context.Context, id uint) error {
	if _, err := s.get(ctx, id); err != nil {
		return err
	}
	return s.repo.SetActivo(ctx, id, true)
}

// ChangePassword changes the caller's own password
func (s *UsuarioService) ChangePassword(ctx context.Context, id uint, input *ChangePasswordInput) error {
	usuario, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if !password.Verify(input.OldPassword, usuario.Password) {
		return domain.ErrOldPasswordWrong
	}
	if !password.ValidatePassword(input.NewPassword) {
		return domain.ErrWeakPassword
	}

	hashedPassword, err := password.Hash(input.NewPassword)
	if err != nil {
		return err
	}

	usuario.Password = hashedPassword
	return s.repo.Update(ctx, usuario)
}
