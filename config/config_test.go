package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.Staging.Driver)
	assert.Equal(t, "banking_staging", cfg.Staging.DBName)
	assert.Equal(t, "banking_mart", cfg.Mart.DBName)
	assert.Equal(t, "positional", cfg.CombinationStrategy)
	assert.Equal(t, ":8090", cfg.StatusAddr)
}

func TestLoadYamlOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, `
mart:
  host: db.internal
  port: 3307
combination_strategy: cross_product
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Mart.Host)
	assert.Equal(t, 3307, cfg.Mart.Port)
	assert.Equal(t, "cross_product", cfg.CombinationStrategy)
	// Untouched keys keep their defaults.
	assert.Equal(t, "localhost", cfg.Staging.Host)
}

func TestEnvOverridesYaml(t *testing.T) {
	path := writeConfigFile(t, `
mart:
  dbname: from_yaml
`)
	t.Setenv("BANKETL_MART__DBNAME", "from_env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from_env", cfg.Mart.DBName)
}

func TestLoadRejectsUnknownStrategy(t *testing.T) {
	path := writeConfigFile(t, `combination_strategy: outer_join`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "combination_strategy")
}

func TestDSNRendering(t *testing.T) {
	dbc := DatabaseConfig{
		Driver: "mysql", Host: "localhost", Port: 3306,
		User: "root", Password: "secret", DBName: "banking_mart",
	}
	assert.Equal(t, "root:secret@tcp(localhost:3306)/banking_mart?parseTime=true", dbc.DSN())
}
