package config

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	pkglogger "github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/pkg/logger"
)

// DB is the global database instance
var DB *gorm.DB

// ConnectDatabase establishes connection to MySQL database
func ConnectDatabase(cfg *Config) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(buildDSN(cfg.Database)), &gorm.Config{
		Logger: NewGormLogger(cfg),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Get underlying sql.DB for connection pool settings
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	DB = db

	log.Info().
		Str("host", cfg.Database.Host).
		Str("port", cfg.Database.Port).
		Str("database", cfg.Database.DBName).
		Msg("database connected")

	return db, nil
}

// NewGormLogger routes SQL logging through zerolog: every statement in dev,
// errors only in prod
func NewGormLogger(cfg *Config) logger.Interface {
	level := logger.Error
	if cfg.IsDev() {
		level = logger.Info
	}

	return logger.New(
		pkglogger.GormWriter{Logger: pkglogger.Component("gorm")},
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		},
	)
}

// buildDSN returns the database connection string. parseTime keeps
// DATETIME columns as time.Time; loc=Local matches the loan clock. Sessions
// run at READ COMMITTED so a read taken after a row lock sees what the lock
// holder committed.
func buildDSN(d DatabaseConfig) string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local&transaction_isolation=%%27READ-COMMITTED%%27",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.DBName,
	)
}

// CloseDatabase closes the database connection
func CloseDatabase() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// HealthCheck pings db, falling back to the global connection when db is nil
func HealthCheck(ctx context.Context, db *gorm.DB) error {
	if db == nil {
		db = DB
	}
	if db == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.PingContext(ctx)
}
