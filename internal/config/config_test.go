package config_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"identity-service/internal/config"
	apperrors "identity-service/pkg/errors"
)

func validConfig() *config.Config {
	cfg := &config.Config{}
	cfg.DB.Host = "localhost"
	cfg.DB.Name = "identity_service"
	cfg.App.HTTPPort = "8080"
	cfg.JWT.Secret = "some-secret"
	return cfg
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyJWTSecretIsFatal(t *testing.T) {
	cfg := validConfig()
	cfg.JWT.Secret = ""

	err := cfg.Validate()
	require.Error(t, err)

	var ce *apperrors.ConfigurationError
	assert.True(t, errors.As(err, &ce))
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate_MissingDatabase(t *testing.T) {
	cfg := validConfig()
	cfg.DB.Host = ""

	err := cfg.Validate()
	require.Error(t, err)

	var ce *apperrors.ConfigurationError
	assert.True(t, errors.As(err, &ce))
}

func TestValidate_MissingHTTPPort(t *testing.T) {
	cfg := validConfig()
	cfg.App.HTTPPort = ""

	assert.Error(t, cfg.Validate())
}

func TestIsDevelopment(t *testing.T) {
	cfg := validConfig()

	cfg.App.Environment = "development"
	assert.True(t, cfg.IsDevelopment())

	cfg.App.Environment = "production"
	assert.False(t, cfg.IsDevelopment())

	cfg.App.Environment = "staging"
	assert.False(t, cfg.IsDevelopment())
}

func TestDSN(t *testing.T) {
	cfg := validConfig()
	cfg.DB.User = "postgres"
	cfg.DB.Password = "postgres"
	cfg.DB.Port = "5432"
	cfg.DB.SSLMode = "disable"

	dsn := cfg.DB.DSN()
	assert.Contains(t, dsn, "host=localhost")
	assert.Contains(t, dsn, "dbname=identity_service")
	assert.Contains(t, dsn, "sslmode=disable")
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, "identity-service", cfg.JWT.Issuer)
	assert.Equal(t, "identity-client", cfg.JWT.Audience)
	assert.Equal(t, 300, cfg.Redis.CacheTTL)
	assert.True(t, cfg.RateLimit.Enabled)

	// No default for the signing secret: it must be provided explicitly.
	if cfg.JWT.Secret == "" {
		assert.Error(t, cfg.Validate())
	}
}
