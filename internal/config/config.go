package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all environment configuration for the CLI
type Config struct {
	// Token storage configuration
	TokenStore TokenStoreConfig

	// HTTP configuration
	HTTP HTTPConfig

	// Credentials supplied non-interactively (useful for CI/CD)
	Credentials CredentialsConfig

	// Logging Configuration
	Logging LoggingConfig
}

// TokenStoreConfig selects where the session token is persisted
type TokenStoreConfig struct {
	Backend string `env:"SESSIONGUARD_TOKEN_STORE" envDefault:"keyring"`
	DataDir string `env:"SESSIONGUARD_DATA_DIR"` // defaults to the user config directory
}

// HTTPConfig holds transport settings for calls to the auth service
type HTTPConfig struct {
	RequestTimeout time.Duration `env:"SESSIONGUARD_REQUEST_TIMEOUT" envDefault:"30s"`
}

// CredentialsConfig holds signup credentials taken from the environment
type CredentialsConfig struct {
	Email    string `env:"SESSIONGUARD_EMAIL"`
	Password string `env:"SESSIONGUARD_PASSWORD"`
}

// LoggingConfig holds logging-related configuration
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"warn"`
	Format string `env:"LOG_FORMAT" envDefault:"console"` // json, console
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env files (fails silently if files don't exist)
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.HTTP.RequestTimeout < 0 {
		return nil, fmt.Errorf("SESSIONGUARD_REQUEST_TIMEOUT must not be negative")
	}

	return &cfg, nil
}
