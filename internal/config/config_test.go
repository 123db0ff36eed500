package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, 5*time.Minute, cfg.Cache.UserCacheTTL)
	assert.Equal(t, time.Minute, cfg.Cache.StatsCacheTTL)
	assert.Equal(t, "plan-lookup-workers", cfg.Worker.ConsumerGroup)
	assert.Equal(t, 3, cfg.Worker.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Worker.ShutdownTimeout)
	assert.Equal(t, "https://api.mapbox.com", cfg.Mapbox.BaseURL)
	assert.Equal(t, 10.0, cfg.Mapbox.RateLimit)
	assert.False(t, cfg.GeocoderEnabled())
}

func TestLoadFile_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	content := "API_HOST=127.0.0.1\nAPI_PORT=8081\nDB_NAME=planinfo\nDB_USER=plan\n" +
		"REDIS_PORT=6380\nUSER_CACHE_TTL=30\nWORKER_ENABLED=true\nMAPBOX_ACCESS_TOKEN=pk.test\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.GetServerAddr())
	assert.Equal(t, "localhost:6380", cfg.GetRedisAddr())
	assert.Equal(t, 30*time.Second, cfg.Cache.UserCacheTTL)
	assert.True(t, cfg.Worker.Enabled)
	assert.True(t, cfg.GeocoderEnabled())
	assert.Contains(t, cfg.GetDatabaseDSN(), "dbname=planinfo")
	assert.Contains(t, cfg.GetDatabaseDSN(), "user=plan")
}
