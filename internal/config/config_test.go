package config_test

import (
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/cambio/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, "projectState", cfg.Redis.Key)
	assert.Equal(t, "projectState:changes", cfg.Redis.Channel)
	assert.Equal(t, 5*time.Minute, cfg.Sync.RefreshInterval)
	assert.Equal(t, time.Second, cfg.Sync.MirrorDebounce)
	assert.True(t, cfg.Sync.MirrorEnabled)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
	assert.Equal(t, "postgres://postgres:@localhost:5432/cambio?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SYNC_MIRROR_DEBOUNCE", "250ms")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "http://a.test,http://b.test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.Sync.MirrorDebounce)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.CORSOrigins)
}

func TestLoad_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	require.NoError(t, os.Unsetenv("JWT_SECRET"))

	_, err := config.Load()
	assert.Error(t, err)
}
