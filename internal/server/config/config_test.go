package config_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartnote/internal/server/config"
	"smartnote/pkg/logger"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.GetAddress())
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, logger.Production, cfg.Logging.GetEnvironment())
	assert.Equal(t, 5*time.Second, cfg.Shutdown.GetTimeout())
	assert.Equal(t, config.StorageMemory, cfg.Storage.Backend)
	assert.False(t, cfg.Redis.Enabled)
	assert.Empty(t, cfg.Chat.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.Chat.Model)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SERVER_HTTP_HOST", "127.0.0.1")
	t.Setenv("SERVER_HTTP_PORT", "9090")
	t.Setenv("SERVER_LOGGER_MODE", "development")
	t.Setenv("SERVER_STORAGE_BACKEND", "postgres")
	t.Setenv("SERVER_POSTGRES_DSN", "postgres://localhost:5432/smartnote")
	t.Setenv("SERVER_REDIS_ENABLED", "true")
	t.Setenv("SERVER_REDIS_PORT", "6380")
	t.Setenv("CHAT_API_KEY", "sk-test")

	cfg, err := config.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.GetAddress())
	assert.Equal(t, logger.Development, cfg.Logging.GetEnvironment())
	assert.Equal(t, config.StoragePostgres, cfg.Storage.Backend)
	assert.Equal(t, "postgres://localhost:5432/smartnote", cfg.Storage.PostgresDSN)
	assert.True(t, cfg.Redis.Enabled)
	assert.Equal(t, "localhost:6380", cfg.Redis.GetAddress())
	assert.Equal(t, "sk-test", cfg.Chat.APIKey)
}

func TestLoadInvalidEnv(t *testing.T) {
	t.Setenv("SERVER_HTTP_PORT", "not-a-port")

	_, err := config.Load(context.Background())
	assert.Error(t, err)
}
