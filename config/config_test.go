package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Database.Type)
	assert.Equal(t, 1816, cfg.Web.Port)
	assert.Equal(t, 5, cfg.Crm.LowStockThreshold)
}

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)
	assert.Equal(t, "toughcrm", cfg.Database.Name)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "toughcrm.yml")
	content := `
database:
  type: sqlite
  name: crm.db
logger:
  mode: production
crm:
  low_stock_threshold: 12
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "crm.db", cfg.Database.Name)
	assert.Equal(t, "production", cfg.Logger.Mode)
	assert.Equal(t, 12, cfg.Crm.LowStockThreshold)
	// untouched keys keep their defaults
	assert.Equal(t, 1816, cfg.Web.Port)
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(path, []byte("database: [unterminated"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("TOUGHCRM_DB_TYPE", "sqlite")
	t.Setenv("TOUGHCRM_WEB_PORT", "9090")
	t.Setenv("TOUGHCRM_CRM_SEED_DEMO_PRODUCTS", "true")
	t.Setenv("TOUGHCRM_DB_MAX_CONN", "not-a-number")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, 9090, cfg.Web.Port)
	assert.True(t, cfg.Crm.SeedDemoProducts)
	assert.Equal(t, 100, cfg.Database.MaxConn)
}

func TestAppConfig_Dirs(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.System.Workdir = "/tmp/crm"
	assert.Equal(t, "/tmp/crm/logs", cfg.GetLogDir())
	assert.Equal(t, "/tmp/crm/data", cfg.GetDataDir())
}
