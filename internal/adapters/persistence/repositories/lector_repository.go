package repositories

import (
	"context"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LectorRepository handles lector data access
type LectorRepository struct {
	db *gorm.DB
}

// NewLectorRepository creates a new lector repository
func NewLectorRepository(db *gorm.DB) *LectorRepository {
	return &LectorRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *LectorRepository) WithTx(tx *gorm.DB) *LectorRepository {
	return &LectorRepository{db: tx}
}

// Create creates a new lector
func (r *LectorRepository) Create(ctx context.Context, lector *models.Lector) error {
	return r.db.WithContext(ctx).Create(lector).Error
}

// GetByID gets a lector by ID
func (r *LectorRepository) GetByID(ctx context.Context, id uint) (*models.Lector, error) {
	var lector models.Lector
	err := r.db.WithContext(ctx).First(&lector, id).Error
	return &lector, err
}

// List lists lectores ordered by apellidos
func (r *LectorRepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*models.Lector, int64, error) {
	var lectores []*models.Lector
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Lector{}).Scopes(activeScope(includeInactive)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(activeScope(includeInactive)).
		Order("apellidos ASC, nombres ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&lectores).Error; err != nil {
		return nil, 0, err
	}

	return lectores, total, nil
}

// Update updates a lector
func (r *LectorRepository) Update(ctx context.Context, lector *models.Lector) error {
	return r.db.WithContext(ctx).Save(lector).Error
}

// SetActivo deactivates or reactivates a lector
func (r *LectorRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.Lector{}, id, activo)
}

// ExistsByCodigo checks if codigo is taken by another lector
func (r *LectorRepository) ExistsByCodigo(ctx context.Context, codigo string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Lector{}, excludeID, "codigo = ?", codigo)
}

// ExistsByEmail checks if email is taken by another lector
func (r *LectorRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Lector{}, excludeID, "email = ?", email)
}

// CountActive counts active lectores
func (r *LectorRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Lector{}).Where("activo = ?", true).Count(&count).Error
	return count, err
}
