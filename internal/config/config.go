package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/VictorMA18/CompuMundo-CEDIS-sub000/internal/core/domain"
)

// Config holds all configuration for the application
type Config struct {
	AppMode        string
	Port           string
	AllowedOrigins string
	Database       DatabaseConfig
	JWT            JWTConfig
	Loans          LoanConfig
	Seed           SeedConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// JWTConfig holds JWT configuration
type JWTConfig struct {
	Secret           string
	RefreshSecret    string
	AccessTokenMins  int
	RefreshTokenDays int
}

// LoanConfig holds loan workflow configuration
type LoanConfig struct {
	BusinessDays   int
	ExpirationCron string
}

// SeedConfig holds the bootstrap administrator account
type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
}

// Global config instance
var AppConfig *Config

// Load reads configuration from .env file and environment variables
func Load() (*Config, error) {
	// Missing .env is fine, the environment may already be populated
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}

	return FromEnv()
}

// FromEnv builds the configuration from the process environment only
func FromEnv() (*Config, error) {
	// trim spaces for Windows compatibility
	appMode := strings.TrimSpace(getEnv("APP_MODE", "dev"))
	if appMode != "dev" && appMode != "prod" {
		return nil, fmt.Errorf("invalid APP_MODE: '%s' (must be 'dev' or 'prod')", appMode)
	}

	loans, err := loadLoanConfig()
	if err != nil {
		return nil, err
	}

	config := &Config{
		AppMode:        appMode,
		Port:           getEnv("PORT", "3000"),
		AllowedOrigins: getEnv("ALLOWED_ORIGINS", ""),
		Database:       loadDatabaseConfig(appMode),
		JWT:            loadJWTConfig(appMode),
		Loans:          loans,
		Seed: SeedConfig{
			AdminEmail:    getEnv("ADMIN_EMAIL", "admin@biblioteca.local"),
			AdminPassword: getEnv("ADMIN_PASSWORD", ""),
		},
	}

	AppConfig = config

	log.Info().Str("mode", appMode).Msg("configuration loaded")
	return config, nil
}

// loadDatabaseConfig loads database config based on mode
func loadDatabaseConfig(mode string) DatabaseConfig {
	prefix := envPrefix(mode)

	return DatabaseConfig{
		Host:     getEnv(prefix+"DB_HOST", "localhost"),
		Port:     getEnv(prefix+"DB_PORT", "3306"),
		User:     getEnv(prefix+"DB_USER", "root"),
		Password: getEnv(prefix+"DB_PASS", ""),
		DBName:   getEnv(prefix+"DB_NAME", "biblioteca"),
	}
}

// loadJWTConfig loads JWT config based on mode
func loadJWTConfig(mode string) JWTConfig {
	prefix := envPrefix(mode)

	return JWTConfig{
		Secret:           getEnv(prefix+"JWT_SECRET", "default_secret"),
		RefreshSecret:    getEnv(prefix+"JWT_REFRESH_SECRET", "default_refresh_secret"),
		AccessTokenMins:  getEnvInt("ACCESS_TOKEN_MINUTES", 15),
		RefreshTokenDays: getEnvInt("REFRESH_TOKEN_DAYS", 7),
	}
}

// loadLoanConfig loads and validates loan settings. A bad cron expression
// fails here rather than when the scheduler starts.
func loadLoanConfig() (LoanConfig, error) {
	cfg := LoanConfig{
		BusinessDays:   getEnvInt("LOAN_BUSINESS_DAYS", domain.DefaultLoanBusinessDays),
		ExpirationCron: getEnv("EXPIRATION_CRON", "0 0 * * *"),
	}

	if cfg.BusinessDays < 1 {
		return cfg, fmt.Errorf("invalid LOAN_BUSINESS_DAYS: %d (must be at least 1)", cfg.BusinessDays)
	}
	if _, err := cron.ParseStandard(cfg.ExpirationCron); err != nil {
		return cfg, fmt.Errorf("invalid EXPIRATION_CRON '%s': %w", cfg.ExpirationCron, err)
	}
	return cfg, nil
}

func envPrefix(mode string) string {
	if mode == "prod" {
		return "PROD_"
	}
	return "DEV_"
}

// getEnv gets environment variable with default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer environment variable, falling back on parse errors
func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// IsDev returns true if running in development mode
func (c *Config) IsDev() bool {
	return c.AppMode == "dev"
}

// IsProd returns true if running in production mode
func (c *Config) IsProd() bool {
	return c.AppMode == "prod"
}

// GetAllowedOrigins returns allowed origins for CORS
func (c *Config) GetAllowedOrigins() string {
	if c.AllowedOrigins == "" {
		if c.IsDev() {
			return "*"
		}
		return "http://localhost:5173"
	}
	return c.AllowedOrigins
}
