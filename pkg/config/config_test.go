package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "crucita-api", cfg.App.Name)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 60, cfg.JWT.Expiration)
	assert.False(t, cfg.Security.StrictRegistrationGroup)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("JWT_SECRET", "s")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("STORAGE", "memory")
	t.Setenv("REGISTRATION_STRICT_GROUP", "true")
	t.Setenv("LOGIN_RATE_PER_MINUTE", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "memory", cfg.App.Storage)
	assert.True(t, cfg.Security.StrictRegistrationGroup)
	assert.Equal(t, 3, cfg.Security.LoginRatePerMinute)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Setenv("STORAGE", "mongo")
	_, err := Load()
	assert.Error(t, err)
}

func TestDSN_EscapaPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss/word", DBName: "crucita", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss%2Fword@db:5432/crucita?sslmode=disable", c.DSN())

	c.DatabaseURL = "postgres://x"
	assert.Equal(t, "postgres://x", c.ConnectionString())
}

func TestLoad_SuperUserSinPassword(t *testing.T) {
	t.Setenv("SUPERUSER_USERNAME", "root")
	_, err := Load()
	assert.Error(t, err)
}
