package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_ShouldExit(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"-h"})

	require.NoError(t, err)
	assert.Contains(t, out.String(), "Usage:")
}

func TestRun_ParseError(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{"--this-is-not-a-valid-flag"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "flag provided but not defined")
}

func TestRun_BuildsAndPrintsEffectiveModel(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "descriptor.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`descriptor "project" {
  group_id    = "com.example"
  artifact_id = "demo"
  version     = "1.0"
}`), 0o644))

	out := &bytes.Buffer{}
	err := run(out, []string{"-repository", t.TempDir(), path})

	require.NoError(t, err)
	assert.Contains(t, out.String(), `"ArtifactID": "demo"`)
}

func TestRun_MissingDescriptorPathFails(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	err := run(out, []string{filepath.Join(t.TempDir(), "missing.hcl")})

	require.Error(t, err)
}
