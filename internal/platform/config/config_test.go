package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "cow-catalog", cfg.App.Name)
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.Equal(t, "data/cowcatalog.db", cfg.Storage.SQLite.Path)
	assert.False(t, cfg.Storage.Cache.Enabled)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  address: ":9090"
storage:
  driver: file
  file:
    root: /tmp/cows
  cache:
    enabled: true
    ttl: 30s
`), 0o600))

	t.Setenv("COWCATALOG_LOG_LEVEL", "debug")
	t.Setenv("COWCATALOG_SERVER_ADDRESS", ":7070")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Address, "env wins over file")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Storage.Driver)
	assert.Equal(t, "/tmp/cows", cfg.Storage.File.Root)
	assert.True(t, cfg.Storage.Cache.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Storage.Cache.TTL)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Storage: StorageConfig{Driver: "memory"}}
	require.NoError(t, base.Validate())

	c := base
	c.Storage.Driver = "postgres"
	assert.Error(t, c.Validate())
	c.Storage.Postgres.DSN = "postgres://localhost/cows"
	assert.NoError(t, c.Validate())

	c = base
	c.Storage.Driver = "s3"
	assert.Error(t, c.Validate())

	c = base
	c.Storage.Driver = "floppy"
	assert.Error(t, c.Validate())

	c = base
	c.Storage.Cache.Enabled = true
	assert.Error(t, c.Validate())
}
