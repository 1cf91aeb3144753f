package repositories

import (
	"context"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ============================================================
// Material Bibliografico
// ============================================================

// MaterialBibliograficoRepository handles bibliographic material data access
type MaterialBibliograficoRepository struct {
	db *gorm.DB
}

// NewMaterialBibliograficoRepository creates a new bibliographic material repository
func NewMaterialBibliograficoRepository(db *gorm.DB) *MaterialBibliograficoRepository {
	return &MaterialBibliograficoRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *MaterialBibliograficoRepository) WithTx(tx *gorm.DB) *MaterialBibliograficoRepository {
	return &MaterialBibliograficoRepository{db: tx}
}

// Create creates a new bibliographic material
func (r *MaterialBibliograficoRepository) Create(ctx context.Context, material *models.MaterialBibliografico) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(material).Error
}

// GetByID gets a bibliographic material without relations
func (r *MaterialBibliograficoRepository) GetByID(ctx context.Context, id uint) (*models.MaterialBibliografico, error) {
	var material models.MaterialBibliografico
	err := r.db.WithContext(ctx).First(&material, id).Error
	return &material, err
}

// GetByIDWithRelations gets a bibliographic material with categoria, autores, copies and virtual record
func (r *MaterialBibliograficoRepository) GetByIDWithRelations(ctx context.Context, id uint) (*models.MaterialBibliografico, error) {
	var material models.MaterialBibliografico
	err := r.db.WithContext(ctx).
		Preload("Categoria").
		Preload("AutorMateriales", "activo = ?", true).
		Preload("AutorMateriales.Autor").
		Preload("Fisicos", func(db *gorm.DB) *gorm.DB {
			return db.Order("codigo_ejemplar ASC")
		}).
		Preload("Virtual").
		First(&material, id).Error
	return &material, err
}

// LockMany locks the given materials in ascending id order and returns them
// keyed by id. Duplicates are locked once; missing ids are absent.
func (r *MaterialBibliograficoRepository) LockMany(ctx context.Context, ids []uint) (map[uint]*models.MaterialBibliografico, error) {
	result := make(map[uint]*models.MaterialBibliografico, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var materiales []*models.MaterialBibliografico
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sortedIDs(ids)).
		Order("id ASC").
		Find(&materiales).Error
	if err != nil {
		return nil, err
	}

	for _, m := range materiales {
		result[m.ID] = m
	}
	return result, nil
}

// List lists a page of bibliographic materials with their categoria
func (r *MaterialBibliograficoRepository) List(ctx context.Context, offset, limit int, includeInactive bool) ([]*models.MaterialBibliografico, int64, error) {
	var materiales []*models.MaterialBibliografico
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.MaterialBibliografico{}).Scopes(activeScope(includeInactive)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(activeScope(includeInactive)).
		Preload("Categoria").
		Order("titulo ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&materiales).Error; err != nil {
		return nil, 0, err
	}

	return materiales, total, nil
}

// Update writes the editable columns. Formato is owned by SetFormato.
func (r *MaterialBibliograficoRepository) Update(ctx context.Context, material *models.MaterialBibliografico) error {
	return r.db.WithContext(ctx).Model(&models.MaterialBibliografico{}).
		Where("id = ?", material.ID).
		Updates(map[string]interface{}{
			"codigo":            material.Codigo,
			"titulo":            material.Titulo,
			"anonimo":           material.Anonimo,
			"categoria_id":      material.CategoriaID,
			"fecha_publicacion": material.FechaPublicacion,
		}).Error
}

// SetActivo deactivates or reactivates a bibliographic material
func (r *MaterialBibliograficoRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.MaterialBibliografico{}, id, activo)
}

// SetFormato writes the derived format
func (r *MaterialBibliograficoRepository) SetFormato(ctx context.Context, id uint, formato string) error {
	return r.db.WithContext(ctx).Model(&models.MaterialBibliografico{}).
		Where("id = ?", id).
		Update("formato", formato).Error
}

// ExistsByCodigo checks if codigo is taken by another material
func (r *MaterialBibliograficoRepository) ExistsByCodigo(ctx context.Context, codigo string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.MaterialBibliografico{}, excludeID, "codigo = ?", codigo)
}

// CountActiveAutores counts active author links of a material
func (r *MaterialBibliograficoRepository) CountActiveAutores(ctx context.Context, id uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AutorMaterial{}).
		Where("material_bibliografico_id = ? AND activo = ?", id, true).
		Count(&count).Error
	return count, err
}

// ============================================================
// Material Fisico
// ============================================================

// MaterialFisicoRepository handles physical copy data access
type MaterialFisicoRepository struct {
	db *gorm.DB
}

// NewMaterialFisicoRepository creates a new physical copy repository
func NewMaterialFisicoRepository(db *gorm.DB) *MaterialFisicoRepository {
	return &MaterialFisicoRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *MaterialFisicoRepository) WithTx(tx *gorm.DB) *MaterialFisicoRepository {
	return &MaterialFisicoRepository{db: tx}
}

// Create creates a new physical copy
func (r *MaterialFisicoRepository) Create(ctx context.Context, fisico *models.MaterialFisico) error {
	return r.db.WithContext(ctx).Create(fisico).Error
}

// GetByID gets a physical copy by ID
func (r *MaterialFisicoRepository) GetByID(ctx context.Context, id uint) (*models.MaterialFisico, error) {
	var fisico models.MaterialFisico
	err := r.db.WithContext(ctx).First(&fisico, id).Error
	return &fisico, err
}

// LockByID reads a physical copy with SELECT ... FOR UPDATE
func (r *MaterialFisicoRepository) LockByID(ctx context.Context, id uint) (*models.MaterialFisico, error) {
	var fisico models.MaterialFisico
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&fisico, id).Error
	return &fisico, err
}

// LockMany locks the given copies in ascending id order and returns them keyed by id.
// Missing ids are simply absent from the result.
func (r *MaterialFisicoRepository) LockMany(ctx context.Context, ids []uint) (map[uint]*models.MaterialFisico, error) {
	result := make(map[uint]*models.MaterialFisico, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var fisicos []*models.MaterialFisico
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", sortedIDs(ids)).
		Order("id ASC").
		Find(&fisicos).Error
	if err != nil {
		return nil, err
	}

	for _, f := range fisicos {
		result[f.ID] = f
	}
	return result, nil
}

// List lists physical copies, optionally of one material
func (r *MaterialFisicoRepository) List(ctx context.Context, materialID uint, includeInactive bool) ([]*models.MaterialFisico, error) {
	var fisicos []*models.MaterialFisico
	q := r.db.WithContext(ctx).Scopes(activeScope(includeInactive))
	if materialID != 0 {
		q = q.Where("material_bibliografico_id = ?", materialID)
	}
	err := q.Order("material_bibliografico_id ASC, codigo_ejemplar ASC").Find(&fisicos).Error
	return fisicos, err
}

// Update writes the editable columns of a physical copy
func (r *MaterialFisicoRepository) Update(ctx context.Context, fisico *models.MaterialFisico) error {
	return r.db.WithContext(ctx).Model(&models.MaterialFisico{}).
		Where("id = ?", fisico.ID).
		Updates(map[string]interface{}{
			"material_bibliografico_id": fisico.MaterialBibliograficoID,
			"codigo_ejemplar":           fisico.CodigoEjemplar,
			"estado":                    fisico.Estado,
			"ubicacion":                 fisico.Ubicacion,
		}).Error
}

// SetEstado sets the state of a physical copy
func (r *MaterialFisicoRepository) SetEstado(ctx context.Context, id uint, estado string) error {
	return r.db.WithContext(ctx).Model(&models.MaterialFisico{}).
		Where("id = ?", id).
		Update("estado", estado).Error
}

// SetActivo deactivates or reactivates a physical copy
func (r *MaterialFisicoRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.MaterialFisico{}, id, activo)
}

// ExistsCodigoInMaterial checks if codigo_ejemplar is taken within a material
func (r *MaterialFisicoRepository) ExistsCodigoInMaterial(ctx context.Context, materialID uint, codigo string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.MaterialFisico{}, excludeID,
		"material_bibliografico_id = ? AND codigo_ejemplar = ?", materialID, codigo)
}

// CountActiveByMaterial counts active physical copies of a material
func (r *MaterialFisicoRepository) CountActiveByMaterial(ctx context.Context, materialID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaterialFisico{}).
		Where("material_bibliografico_id = ? AND activo = ?", materialID, true).
		Count(&count).Error
	return count, err
}

// ============================================================
// Material Virtual
// ============================================================

// MaterialVirtualRepository handles virtual record data access
type MaterialVirtualRepository struct {
	db *gorm.DB
}

// NewMaterialVirtualRepository creates a new virtual record repository
func NewMaterialVirtualRepository(db *gorm.DB) *MaterialVirtualRepository {
	return &MaterialVirtualRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *MaterialVirtualRepository) WithTx(tx *gorm.DB) *MaterialVirtualRepository {
	return &MaterialVirtualRepository{db: tx}
}

// Create creates a new virtual record
func (r *MaterialVirtualRepository) Create(ctx context.Context, virtual *models.MaterialVirtual) error {
	return r.db.WithContext(ctx).Create(virtual).Error
}

// GetByID gets a virtual record by ID
func (r *MaterialVirtualRepository) GetByID(ctx context.Context, id uint) (*models.MaterialVirtual, error) {
	var virtual models.MaterialVirtual
	err := r.db.WithContext(ctx).First(&virtual, id).Error
	return &virtual, err
}

// List lists virtual records
func (r *MaterialVirtualRepository) List(ctx context.Context, includeInactive bool) ([]*models.MaterialVirtual, error) {
	var virtuales []*models.MaterialVirtual
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).Order("id ASC").Find(&virtuales).Error
	return virtuales, err
}

// Update writes the editable columns of a virtual record
func (r *MaterialVirtualRepository) Update(ctx context.Context, virtual *models.MaterialVirtual) error {
	return r.db.WithContext(ctx).Model(&models.MaterialVirtual{}).
		Where("id = ?", virtual.ID).
		Updates(map[string]interface{}{
			"material_bibliografico_id": virtual.MaterialBibliograficoID,
			"url":                       virtual.URL,
			"formato_archivo":           virtual.FormatoArchivo,
		}).Error
}

// SetActivo deactivates or reactivates a virtual record
func (r *MaterialVirtualRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.MaterialVirtual{}, id, activo)
}

// ExistsForMaterial checks if a material already has a virtual record (active or not)
func (r *MaterialVirtualRepository) ExistsForMaterial(ctx context.Context, materialID uint, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.MaterialVirtual{}, excludeID, "material_bibliografico_id = ?", materialID)
}

// CountActiveByMaterial counts active virtual records of a material
func (r *MaterialVirtualRepository) CountActiveByMaterial(ctx context.Context, materialID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.MaterialVirtual{}).
		Where("material_bibliografico_id = ? AND activo = ?", materialID, true).
		Count(&count).Error
	return count, err
}

// ============================================================
// Autor Material
// ============================================================

// AutorMaterialRepository handles autor/material link data access
type AutorMaterialRepository struct {
	db *gorm.DB
}

// NewAutorMaterialRepository creates a new autor/material repository
func NewAutorMaterialRepository(db *gorm.DB) *AutorMaterialRepository {
	return &AutorMaterialRepository{db: db}
}

// Create creates a new link
func (r *AutorMaterialRepository) Create(ctx context.Context, link *models.AutorMaterial) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(link).Error
}

// GetByID gets a link with its autor
func (r *AutorMaterialRepository) GetByID(ctx context.Context, id uint) (*models.AutorMaterial, error) {
	var link models.AutorMaterial
	err := r.db.WithContext(ctx).Preload("Autor").First(&link, id).Error
	return &link, err
}

// GetByPair gets the link between an autor and a material
func (r *AutorMaterialRepository) GetByPair(ctx context.Context, autorID, materialID uint) (*models.AutorMaterial, error) {
	var link models.AutorMaterial
	err := r.db.WithContext(ctx).
		Where("autor_id = ? AND material_bibliografico_id = ?", autorID, materialID).
		First(&link).Error
	return &link, err
}

// List lists links
func (r *AutorMaterialRepository) List(ctx context.Context, includeInactive bool) ([]*models.AutorMaterial, error) {
	var links []*models.AutorMaterial
	err := r.db.WithContext(ctx).Scopes(activeScope(includeInactive)).Preload("Autor").Order("id ASC").Find(&links).Error
	return links, err
}

// ListByMaterial lists the active links of a material
func (r *AutorMaterialRepository) ListByMaterial(ctx context.Context, materialID uint) ([]*models.AutorMaterial, error) {
	var links []*models.AutorMaterial
	err := r.db.WithContext(ctx).
		Preload("Autor").
		Where("material_bibliografico_id = ? AND activo = ?", materialID, true).
		Order("id ASC").
		Find(&links).Error
	return links, err
}

// Update writes the pair of a link
func (r *AutorMaterialRepository) Update(ctx context.Context, link *models.AutorMaterial) error {
	return r.db.WithContext(ctx).Model(&models.AutorMaterial{}).
		Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"autor_id":                  link.AutorID,
			"material_bibliografico_id": link.MaterialBibliograficoID,
		}).Error
}

// SetActivo deactivates or reactivates a link
func (r *AutorMaterialRepository) SetActivo(ctx context.Context, id uint, activo bool) error {
	return setActivo(ctx, r.db, &models.AutorMaterial{}, id, activo)
}

// ExistsPair checks if the pair is taken by another link
func (r *AutorMaterialRepository) ExistsPair(ctx context.Context, autorID, materialID uint, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.AutorMaterial{}, excludeID,
		"autor_id = ? AND material_bibliografico_id = ?", autorID, materialID)
}
