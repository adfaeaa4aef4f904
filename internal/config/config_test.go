package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsZeroValue(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), ".descriptorbuild.yml"))
	require.NoError(t, err)
	assert.Equal(t, &FileConfig{}, cfg)
}

func TestLoad_ParsesDeclaredFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".descriptorbuild.yml")
	body := `
workspaceRoot: .
repositoryRoot: /var/repo
properties:
  revision: "1.2.3"
activeProfiles: [release]
inactiveProfiles: [dev]
validationLevel: V31
processPlugins: true
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ".", cfg.WorkspaceRoot)
	assert.Equal(t, "/var/repo", cfg.RepositoryRoot)
	assert.Equal(t, "1.2.3", cfg.Properties["revision"])
	assert.Equal(t, []string{"release"}, cfg.ActiveProfiles)
	assert.Equal(t, []string{"dev"}, cfg.InactiveProfiles)
	assert.Equal(t, "V31", cfg.ValidationLevel)
	assert.True(t, cfg.ProcessPlugins)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".descriptorbuild.yml")
	require.NoError(t, os.WriteFile(path, []byte("properties: [this is not a map"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
