package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresSecrets(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("JWT_SECRET", "secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "real_estate_db", cfg.MongoDBName)
	assert.Equal(t, "listings-service", cfg.JWTIssuer)
	assert.Equal(t, 24*time.Hour, cfg.TokenExpiry)
}

func TestEnvHelpers(t *testing.T) {
	t.Setenv("SOME_INT", "42")
	t.Setenv("SOME_DURATION", "90s")
	t.Setenv("SOME_STRING", "value")

	assert.Equal(t, 42, GetEnvAsInt("SOME_INT", 1))
	assert.Equal(t, 1, GetEnvAsInt("MISSING_INT", 1))
	assert.Equal(t, 7, GetEnvAsInt("SOME_STRING", 7))

	assert.Equal(t, 90*time.Second, GetEnvAsDuration("SOME_DURATION", time.Minute))
	assert.Equal(t, time.Minute, GetEnvAsDuration("MISSING_DURATION", time.Minute))

	assert.Equal(t, "value", GetEnvAsString("SOME_STRING", "fallback"))
	assert.Equal(t, "fallback", GetEnvAsString("MISSING_STRING", "fallback"))
}
