package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, int32(8080), cfg.HTTP.Port)
	assert.False(t, cfg.HTTP.SecureHeaders)
	assert.Equal(t, DefaultDatabasePath, cfg.Database.Path)
	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 15*time.Minute, cfg.Auth.RateLimitWindow)
	assert.Equal(t, DefaultOpenLibraryBaseURL, cfg.OpenLibrary.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.OpenLibrary.Timeout)
	assert.Equal(t, "0 3 * * *", cfg.AuditCleanup.Schedule)
	assert.True(t, cfg.Tasks.Enabled)
}

func TestNewConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_PATH", "/tmp/library.db")
	t.Setenv("AUTH_BCRYPT_COST", "4")
	t.Setenv("OPENLIBRARY_TIMEOUT", "3s")
	t.Setenv("TASKS_ENABLED", "false")

	cfg := NewConfig()

	assert.Equal(t, int32(9090), cfg.HTTP.Port)
	assert.Equal(t, "/tmp/library.db", cfg.Database.Path)
	assert.Equal(t, 4, cfg.Auth.BcryptCost)
	assert.Equal(t, 3*time.Second, cfg.OpenLibrary.Timeout)
	assert.False(t, cfg.Tasks.Enabled)
}
