package repositories

import (
	"context"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// usuarioRepository implements UsuarioRepository interface
type usuarioRepository struct {
	db *gorm.DB
}

// NewUsuarioRepository creates a new usuario repository
func NewUsuarioRepository(db *gorm.DB) UsuarioRepository {
	return &usuarioRepository{db: db}
}

// Create creates a new usuario
func (r *usuarioRepository) Create(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Create(usuario).Error
}

// GetByID gets a usuario by ID
func (r *usuarioRepository) GetByID(ctx context.Context, id uint) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// GetByEmail gets a usuario by email
func (r *usuarioRepository) GetByEmail(ctx context.Context, email string) (*models.Usuario, error) {
	var usuario models.Usuario
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&usuario).Error
	if err != nil {
		return nil, err
	}
	return &usuario, nil
}

// Update updates a usuario
func (r *usuarioRepository) Update(ctx context.Context, usuario *models.Usuario) error {
	return r.db.WithContext(ctx).Save(usuario).Error
}

// SetActivo deactivates or reactivates a usuario
func (r *usuarioRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.Usuario{}, id, activo)
}

// List lists usuarios with pagination
func (r *usuarioRepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*models.Usuario, int64, error) {
	var usuarios []*models.Usuario
	var total int64

	// Count total
	if err := r.db.WithContext(ctx).Model(&models.Usuario{}).Scopes(activeScope(includeInactive)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get usuarios with pagination
	if err := r.db.WithContext(ctx).
		Scopes(activeScope(includeInactive)).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&usuarios).Error; err != nil {
		return nil, 0, err
	}

	return usuarios, total, nil
}

// ExistsByEmail checks if email is taken by another usuario
func (r *usuarioRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Usuario{}, excludeID, "email = ?", email)
}

// Count counts all usuarios
func (r *usuarioRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Usuario{}).Count(&count).Error
	return count, err
}
