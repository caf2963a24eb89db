package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(body), 0o600))
	return dir
}

func TestLoadConfig_Defaults(t *testing.T) {
	require.NoError(t, LoadConfig(t.TempDir()))

	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, "memory", AppConfig.Store.Backend)
	assert.Equal(t, "json", AppConfig.Log.Format)
	assert.False(t, AppConfig.Redis.Enabled)
	assert.Equal(t, 10*time.Minute, AppConfig.Redis.TTL)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	dir := writeConfig(t, `
server:
  port: "9090"
store:
  backend: postgres
database:
  host: db.internal
  name: bank
redis:
  enabled: true
  ttl: 30s
`)
	t.Setenv("DATABASE_PASSWORD", "s3cret")

	require.NoError(t, LoadConfig(dir))

	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, "postgres", AppConfig.Store.Backend)
	assert.Equal(t, "db.internal", AppConfig.Database.Host)
	assert.Equal(t, "bank", AppConfig.Database.Name)
	assert.Equal(t, "s3cret", AppConfig.Database.Password)
	assert.True(t, AppConfig.Redis.Enabled)
	assert.Equal(t, 30*time.Second, AppConfig.Redis.TTL)
}

func TestLoadConfig_Invalid(t *testing.T) {
	dir := writeConfig(t, `
store:
  backend: cassandra
`)
	assert.Error(t, LoadConfig(dir))
}
