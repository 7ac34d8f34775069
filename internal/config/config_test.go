package config

import (
	"testing"
	"time"

	"github.com/dangerclosesec/geneql/internal/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Store.Backend)
	assert.Equal(t, 5*time.Second, cfg.Store.Timeout)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.NeedsDatabase())
	assert.Nil(t, cfg.Auth.APIKey)
}

func TestLoadDecodesAPIKeyHash(t *testing.T) {
	hash, err := auth.HashKey("service-key")
	require.NoError(t, err)
	t.Setenv("GENEQL_API_KEY_HASH", hash.String())

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg.Auth.APIKey)
	assert.True(t, cfg.Auth.APIKey.Matches("service-key"))
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("GENEQL_STORE", "postgres")
	t.Setenv("GENEQL_STORE_TIMEOUT", "250ms")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PASSWORD", "s3cret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("GENEQL_AUDIT", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Store.Timeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Audit.Enabled)
	assert.True(t, cfg.NeedsDatabase())
	assert.Equal(t,
		"host=db.internal port=5432 user=postgres dbname=geneql sslmode=disable password=s3cret search_path=public",
		cfg.DatabaseDSN())
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"unknown backend", "GENEQL_STORE", "redis"},
		{"short secret", "JWT_SECRET", "short"},
		{"bad port", "SERVER_PORT", "http"},
		{"bad log level", "LOG_LEVEL", "loud"},
		{"permify without host", "GENEQL_STORE", "permify"},
		{"malformed api key hash", "GENEQL_API_KEY_HASH", "$argon2id$v=19$m=65536$c2FsdA$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
