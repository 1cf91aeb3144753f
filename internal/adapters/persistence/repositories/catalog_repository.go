package repositories

import (
	"context"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// AutorRepository handles autor data access
type AutorRepository struct {
	db *gorm.DB
}

// NewAutorRepository creates a new autor repository
func NewAutorRepository(db *gorm.DB) *AutorRepository {
	return &AutorRepository{db: db}
}

// Create creates a new autor
func (r *AutorRepository) Create(ctx context.Context, autor *models.Autor) error {
	return r.db.WithContext(ctx).Create(autor).Error
}

// GetByID gets an autor by ID
func (r *AutorRepository) GetByID(ctx context.Context, id uint) (*models.Autor, error) {
	var autor models.Autor
	err := r.db.WithContext(ctx).First(&autor, id).Error
	return &autor, err
}

// List lists autores
func (r *AutorRepository) List(ctx context.Context, includeInactive bool) ([]*models.Autor, error) {
	var autores []*models.Autor
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).Order("nombre ASC").Find(&autores).Error
	return autores, err
}

// Update updates an autor
func (r *AutorRepository) Update(ctx context.Context, autor *models.Autor) error {
	return r.db.WithContext(ctx).Save(autor).Error
}

// SetActivo deactivates or reactivates an autor
func (r *AutorRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.Autor{}, id, activo)
}

// ExistsByNombre checks if nombre is taken by another autor
func (r *AutorRepository) ExistsByNombre(ctx context.Context, nombre string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Autor{}, excludeID, "nombre = ?", nombre)
}

// CategoriaRepository handles categoria data access
type CategoriaRepository struct {
	db *gorm.DB
}

// NewCategoriaRepository creates a new categoria repository
func NewCategoriaRepository(db *gorm.DB) *CategoriaRepository {
	return &CategoriaRepository{db: db}
}

// Create creates a new categoria
func (r *CategoriaRepository) Create(ctx context.Context, categoria *models.Categoria) error {
	return r.db.WithContext(ctx).Create(categoria).Error
}

// GetByID gets a categoria by ID
func (r *CategoriaRepository) GetByID(ctx context.Context, id uint) (*models.Categoria, error) {
	var categoria models.Categoria
	err := r.db.WithContext(ctx).First(&categoria, id).Error
	return &categoria, err
}

// List lists categorias
func (r *CategoriaRepository) List(ctx context.Context, includeInactive bool) ([]*models.Categoria, error) {
	var categorias []*models.Categoria
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).Order("nombre ASC").Find(&categorias).Error
	return categorias, err
}

// Update updates a categoria
func (r *CategoriaRepository) Update(ctx context.Context, categoria *models.Categoria) error {
	return r.db.WithContext(ctx).Save(categoria).Error
}

// SetActivo deactivates or reactivates a categoria
func (r *CategoriaRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.Categoria{}, id, activo)
}

// ExistsByNombre checks if nombre is taken by another categoria
func (r *CategoriaRepository) ExistsByNombre(ctx context.Context, nombre string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Categoria{}, excludeID, "nombre = ?", nombre)
}
