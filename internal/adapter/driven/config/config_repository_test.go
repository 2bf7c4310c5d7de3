package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigFileTOML(t *testing.T) {
	path := writeTempConfig(t, "config.toml", `
region = "eu-west-1"
report_name = "nightly_check"
report_type = ["json", "csv"]
path_style = true
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "nightly_check", cfg.ReportName)
	assert.Equal(t, []string{"json", "csv"}, cfg.ReportType)
	assert.True(t, cfg.PathStyle)
}

func TestLoadConfigFileYAML(t *testing.T) {
	path := writeTempConfig(t, "config.yaml", `
region: sa-east-1
report_type:
  - pdf
endpoint_url: http://localhost:9000
extended: true
`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "sa-east-1", cfg.Region)
	assert.Equal(t, []string{"pdf"}, cfg.ReportType)
	assert.Equal(t, "http://localhost:9000", cfg.EndpointURL)
	assert.True(t, cfg.Extended)
}

func TestLoadConfigFileJSON(t *testing.T) {
	path := writeTempConfig(t, "config.json", `{"region": "us-west-2", "dir": "/tmp/reports"}`)

	repo := NewConfigRepository()
	cfg, err := repo.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "us-west-2", cfg.Region)
	assert.Equal(t, "/tmp/reports", cfg.Dir)
}

func TestLoadConfigFileUnsupportedExtension(t *testing.T) {
	path := writeTempConfig(t, "config.ini", "region=us-east-1")

	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(path)
	assert.ErrorContains(t, err, "unsupported config file format")
}

func TestLoadConfigFileMissing(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestLoadConfigFileDirectory(t *testing.T) {
	repo := NewConfigRepository()
	_, err := repo.LoadConfigFile(t.TempDir() + "/")
	assert.Error(t, err)
}
