// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dangerclosesec/geneql/internal/auth"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Database struct {
		Host       string `json:"host" validate:"required"`
		Port       string `json:"port" validate:"required,numeric"`
		User       string `json:"user" validate:"required"`
		Password   string `json:"password"`
		Name       string `json:"name" validate:"required"`
		SSLMode    string `json:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
		SearchPath string `json:"schema"`
	} `json:"database"`
	Store struct {
		Backend       string        `json:"backend" validate:"oneof=memory postgres permify"`
		SeedFile      string        `json:"seed_file"`
		Timeout       time.Duration `json:"timeout" validate:"gte=0"`
		PermifyHost   string        `json:"permify_host" validate:"required_if=Backend permify"`
		PermifyTenant string        `json:"permify_tenant"`
	} `json:"store"`
	JWT struct {
		Secret       string        `json:"secret" validate:"required,min=16"`
		ExpiryPeriod time.Duration `json:"expiry_period" validate:"gt=0"`
	} `json:"jwt"`
	Auth struct {
		// APIKeyHash is the argon2 encoding of the service API key. Empty
		// disables API key authentication.
		APIKeyHash string `json:"api_key_hash"`
		// APIKey is APIKeyHash decoded by Load
		APIKey *auth.KeyHash `json:"-"`
	} `json:"auth"`
	Server struct {
		Port           string        `json:"port" validate:"required,numeric"`
		ReadTimeout    time.Duration `json:"read_timeout"`
		WriteTimeout   time.Duration `json:"write_timeout"`
		AllowedOrigins []string      `json:"allowed_origins"`
	} `json:"server"`
	Audit struct {
		Enabled bool `json:"enabled"`
	} `json:"audit"`
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error"`
}

// Load reads the configuration from the environment and validates it
func Load() (*Config, error) {
	cfg := &Config{}

	// Database configuration
	cfg.Database.Host = getEnv("DB_HOST", "localhost")
	cfg.Database.Port = getEnv("DB_PORT", "5432")
	cfg.Database.User = getEnv("DB_USER", "postgres")
	cfg.Database.Password = getEnv("DB_PASSWORD", "")
	cfg.Database.Name = getEnv("DB_NAME", "geneql")
	cfg.Database.SSLMode = getEnv("DB_SSLMODE", "disable")
	cfg.Database.SearchPath = getEnv("DB_SCHEMA", "public")

	// Store configuration
	cfg.Store.Backend = getEnv("GENEQL_STORE", "memory")
	cfg.Store.SeedFile = getEnv("GENEQL_SEED_FILE", "")
	cfg.Store.Timeout = getEnvDuration("GENEQL_STORE_TIMEOUT", 5*time.Second)
	cfg.Store.PermifyHost = getEnv("PERMIFY_HOST", "")
	cfg.Store.PermifyTenant = getEnv("PERMIFY_TENANT", "t1")

	// JWT configuration
	cfg.JWT.Secret = getEnv("JWT_SECRET", "geneql-development-secret")
	cfg.JWT.ExpiryPeriod = getEnvDuration("JWT_EXPIRY", time.Hour*24)

	cfg.Auth.APIKeyHash = getEnv("GENEQL_API_KEY_HASH", "")

	// Server configuration
	cfg.Server.Port = getEnv("SERVER_PORT", "8080")
	cfg.Server.ReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", time.Second*15)
	cfg.Server.WriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", time.Second*15)
	cfg.Server.AllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	cfg.Audit.Enabled = getEnvBool("GENEQL_AUDIT", false)
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if cfg.Auth.APIKeyHash != "" {
		key, err := auth.ParseKeyHash(cfg.Auth.APIKeyHash)
		if err != nil {
			return nil, fmt.Errorf("invalid configuration: GENEQL_API_KEY_HASH: %w", err)
		}
		cfg.Auth.APIKey = key
	}

	return cfg, nil
}

// DatabaseDSN renders the database settings as a key/value connection
// string understood by pgx, gorm and lib/pq
func (c *Config) DatabaseDSN() string {
	parts := []string{
		"host=" + c.Database.Host,
		"port=" + c.Database.Port,
		"user=" + c.Database.User,
		"dbname=" + c.Database.Name,
		"sslmode=" + c.Database.SSLMode,
	}
	if c.Database.Password != "" {
		parts = append(parts, "password="+c.Database.Password)
	}
	if c.Database.SearchPath != "" {
		parts = append(parts, "search_path="+c.Database.SearchPath)
	}
	return strings.Join(parts, " ")
}

// NeedsDatabase reports whether the configuration requires PostgreSQL
func (c *Config) NeedsDatabase() bool {
	return c.Store.Backend != "memory" || c.Audit.Enabled
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
