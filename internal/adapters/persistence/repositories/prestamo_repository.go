package repositories

import (
	"context"
	"time"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PrestamoRepository handles loan header and detail data access
type PrestamoRepository struct {
	db *gorm.DB
}

// NewPrestamoRepository creates a new loan repository
func NewPrestamoRepository(db *gorm.DB) *PrestamoRepository {
	return &PrestamoRepository{db: db}
}

// WithTx returns a repository bound to tx
func (r *PrestamoRepository) WithTx(tx *gorm.DB) *PrestamoRepository {
	return &PrestamoRepository{db: tx}
}

// withDetails preloads everything a loan listing shows
func withDetails(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Lector").
		Preload("Usuario").
		Preload("Detalles", func(db *gorm.DB) *gorm.DB {
			return db.Order("id ASC")
		}).
		Preload("Detalles.MaterialBibliografico").
		Preload("Detalles.MaterialFisico")
}

// ============================================================
// Header
// ============================================================

// CreateHeader inserts a loan header without touching relations
func (r *PrestamoRepository) CreateHeader(ctx context.Context, prestamo *models.Prestamo) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(prestamo).Error
}

// GetByID gets a loan with reader, operator and details
func (r *PrestamoRepository) GetByID(ctx context.Context, id uint) (*models.Prestamo, error) {
	var prestamo models.Prestamo
	err := r.db.WithContext(ctx).Scopes(withDetails).First(&prestamo, id).Error
	return &prestamo, err
}

// List lists every loan newest first
func (r *PrestamoRepository) List(ctx context.Context) ([]*models.Prestamo, error) {
	var prestamos []*models.Prestamo
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Order("fecha_prestamo DESC, id DESC").
		Find(&prestamos).Error
	return prestamos, err
}

// ListByLector lists the loan history of a reader newest first
func (r *PrestamoRepository) ListByLector(ctx context.Context, lectorID uint) ([]*models.Prestamo, error) {
	var prestamos []*models.Prestamo
	err := r.db.WithContext(ctx).
		Scopes(withDetails).
		Where("lector_id = ?", lectorID).
		Order("fecha_prestamo DESC, id DESC").
		Find(&prestamos).Error
	return prestamos, err
}

// LockPrestamo reads a loan header with SELECT ... FOR UPDATE
func (r *PrestamoRepository) LockPrestamo(ctx context.Context, id uint) (*models.Prestamo, error) {
	var prestamo models.Prestamo
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&prestamo, id).Error
	return &prestamo, err
}

// ClosePrestamo marks a header DEVUELTO
func (r *PrestamoRepository) ClosePrestamo(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.Prestamo{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":           string(domain.PrestamoDevuelto),
			"fecha_devolucion": at,
		}).Error
}

// IsLectorDelinquent reports whether the reader holds a VENCIDO header
// with at least one VENCIDO detail
func (r *PrestamoRepository) IsLectorDelinquent(ctx context.Context, lectorID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Prestamo{}).
		Joins("JOIN prestamo_detalles d ON d.prestamo_id = prestamos.id").
		Where("prestamos.lector_id = ? AND prestamos.estado = ? AND d.estado = ?",
			lectorID, string(domain.PrestamoVencido), string(domain.PrestamoVencido)).
		Count(&count).Error
	return count > 0, err
}

// ============================================================
// Details
// ============================================================

// CreateDetalle inserts one loan detail
func (r *PrestamoRepository) CreateDetalle(ctx context.Context, detalle *models.PrestamoDetalle) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(detalle).Error
}

// GetDetalle gets a detail with its material and copy
func (r *PrestamoRepository) GetDetalle(ctx context.Context, id uint) (*models.PrestamoDetalle, error) {
	var detalle models.PrestamoDetalle
	err := r.db.WithContext(ctx).
		Preload("MaterialBibliografico").
		Preload("MaterialFisico").
		First(&detalle, id).Error
	return &detalle, err
}

// HeaderIDOfDetalle returns the header a detail belongs to. The column never
// changes after insert, so a plain read is enough.
func (r *PrestamoRepository) HeaderIDOfDetalle(ctx context.Context, id uint) (uint, error) {
	var detalle models.PrestamoDetalle
	err := r.db.WithContext(ctx).Select("id", "prestamo_id").First(&detalle, id).Error
	return detalle.PrestamoID, err
}

// LockDetalle reads a loan detail with SELECT ... FOR UPDATE
func (r *PrestamoRepository) LockDetalle(ctx context.Context, id uint) (*models.PrestamoDetalle, error) {
	var detalle models.PrestamoDetalle
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&detalle, id).Error
	return &detalle, err
}

// MarkDetalleDevuelto marks a detail DEVUELTO
func (r *PrestamoRepository) MarkDetalleDevuelto(ctx context.Context, id uint, at time.Time) error {
	return r.db.WithContext(ctx).Model(&models.PrestamoDetalle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"estado":           string(domain.PrestamoDevuelto),
			"fecha_devolucion": at,
		}).Error
}

// CountPendientes counts details of a header that are not DEVUELTO. It is a
// locking read so it sees the latest committed siblings whatever snapshot the
// transaction already holds.
func (r *PrestamoRepository) CountPendientes(ctx context.Context, prestamoID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.PrestamoDetalle{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("prestamo_id = ? AND estado <> ?", prestamoID, string(domain.PrestamoDevuelto)).
		Count(&count).Error
	return count, err
}

// ============================================================
// Expiration
// ============================================================

// ExpireDetalles moves VIGENTE details due before now to VENCIDO
func (r *PrestamoRepository) ExpireDetalles(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.PrestamoDetalle{}).
		Where("estado = ? AND fecha_vencimiento < ?", string(domain.PrestamoVigente), now).
		Update("estado", string(domain.PrestamoVencido))
	return result.RowsAffected, result.Error
}

// ExpirePrestamos moves VIGENTE headers due before now to VENCIDO
func (r *PrestamoRepository) ExpirePrestamos(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.Prestamo{}).
		Where("estado = ? AND fecha_vencimiento < ?", string(domain.PrestamoVigente), now).
		Update("estado", string(domain.PrestamoVencido))
	return result.RowsAffected, result.Error
}
