package repositories

import (
	"context"
	"sort"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// UsuarioRepository defines usuario repository interface
type UsuarioRepository interface {
	Create(ctx context.Context, usuario *models.Usuario) error
	GetByID(ctx context.Context, id uint) (*models.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*models.Usuario, error)
	Update(ctx context.Context, usuario *models.Usuario) error
	SetActivo(ctx context.Context, id uint, activo bool) error
	List(ctx context.Context, offset, limit int, includeInactive bool) ([]*models.Usuario, int64, error)
	ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

// RefreshTokenRepository defines refresh token repository interface
type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, id uint) error
	RevokeAllByUsuarioID(ctx context.Context, usuarioID uint) error
	DeleteExpired(ctx context.Context) error
}

// setActivo flips the soft-delete flag of any catalog row
func setActivo(ctx context.Context, db *gorm.DB, model interface{}, id uint, activo bool) error {
	return db.WithContext(ctx).Model(model).Where("id = ?", id).Update("activo", activo).Error
}

// exists counts rows matching query, ignoring the row with excludeID (0 ignores nothing)
func exists(ctx context.Context, db *gorm.DB, model interface{}, excludeID uint, query string, args ...interface{}) (bool, error) {
	var count int64
	q := db.WithContext(ctx).Model(model).Where(query, args...)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

// activeScope filters to active rows unless includeInactive is set
func activeScope(includeInactive bool) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if includeInactive {
			return db
		}
		return db.Where("activo = ?", true)
	}
}

// sortedIDs returns ids deduplicated in ascending order. Row locks are always
// taken in this order so concurrent transactions queue instead of deadlocking.
func sortedIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
