package config

import (
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/adapters/persistence/models"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/password"
)

// Seeder handles database seeding
type Seeder struct {
	db  *gorm.DB
	cfg *Config
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, cfg *Config) *Seeder {
	return &Seeder{db: db, cfg: cfg}
}

// Run executes all seeders. Individual failures are logged and skipped.
func (s *Seeder) Run() error {
	log.Info().Msg("running database seeders")

	if err := s.seedAdminUsuario(); err != nil {
		log.Warn().Err(err).Msg("admin seeder skipped")
	}
	if err := SeedCatalogData(s.db); err != nil {
		log.Warn().Err(err).Msg("catalog seeder skipped")
	}
	if s.cfg.IsDev() {
		if err := SeedDemoData(s.db); err != nil {
			log.Warn().Err(err).Msg("demo seeder skipped")
		}
	}

	log.Info().Msg("database seeding completed")
	return nil
}

// seedAdminUsuario creates the first ADMIN account when no admin exists yet.
// Without ADMIN_PASSWORD nothing is created.
func (s *Seeder) seedAdminUsuario() error {
	var count int64
	if err := s.db.Model(&models.Usuario{}).Where("rol = ?", string(domain.RoleAdmin)).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.cfg.Seed.AdminPassword == "" {
		return errors.New("ADMIN_PASSWORD is not set")
	}

	hashedPassword, err := password.Hash(s.cfg.Seed.AdminPassword)
	if err != nil {
		return err
	}

	admin := &models.Usuario{
		Nombre:   "Administrador",
		Email:    s.cfg.Seed.AdminEmail,
		Password: hashedPassword,
		Rol:      string(domain.RoleAdmin),
		Activo:   true,
	}
	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Info().Str("email", admin.Email).Msg("admin usuario created")
	return nil
}
