// config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  port: "9090"
database:
  host: "db.local"
  port: "3306"
  user: "svc"
  dbname: "sdmxmeta"
sdmx:
  fetch_timeout: "15s"
  structure_prefixes: ["structure", "str"]
  endpoints:
    SPC: "https://stats-nsi-stable.pacificdata.org/rest"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "9090", AppConfig.Server.Port)
	assert.Equal(t, "db.local", AppConfig.Database.Host)
	assert.Equal(t, 15*time.Second, AppConfig.SDMX.FetchTimeout)
	assert.Equal(t, []string{"structure", "str"}, AppConfig.SDMX.StructurePrefixes)
	assert.Contains(t, AppConfig.SDMX.Endpoints, "SPC")
}

func TestLoadConfigDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  dbname: x\n"), 0644))

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "8080", AppConfig.Server.Port)
	assert.Equal(t, 30*time.Second, AppConfig.SDMX.FetchTimeout)
}

func TestLoadConfigMissingFile(t *testing.T) {
	assert.Error(t, LoadConfig("/nonexistent/config.yaml"))
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  user: filevalue\n"), 0644))

	t.Setenv("SDMXMETA_DB_USER", "envvalue")
	t.Setenv("SDMXMETA_DB_PASSWORD", "secret")

	require.NoError(t, LoadConfig(path))
	assert.Equal(t, "envvalue", AppConfig.Database.User)
	assert.Equal(t, "secret", AppConfig.Database.Password)
}
