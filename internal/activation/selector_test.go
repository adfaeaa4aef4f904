package activation

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

func newCtx() *descriptor.ActivationContext {
	return descriptor.NewActivationContext()
}

func TestSelector_NoActivation_IsInactive(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1"}
	assert.False(t, s.IsActive(context.Background(), p, newCtx(), problem.NewCollector(problem.Base)))
}

func TestSelector_ActiveByDefault(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{ActiveByDefault: true}}
	assert.True(t, s.IsActive(context.Background(), p, newCtx(), problem.NewCollector(problem.Base)))
}

func TestSelector_ForcedActiveID_Wins(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1"}
	ctx := newCtx()
	ctx.ActiveIDs["p1"] = true
	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_ForcedInactiveID_Wins(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{ActiveByDefault: true}}
	ctx := newCtx()
	ctx.InactiveIDs["p1"] = true
	assert.False(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_PropertyPresence(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{Property: &descriptor.ActivationProperty{Name: "env"}}}
	ctx := newCtx()

	assert.False(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))

	ctx.UserProperties["env"] = "qa"
	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_PropertyValueMatch(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{Property: &descriptor.ActivationProperty{Name: "env", Value: "prod"}}}
	ctx := newCtx()
	ctx.UserProperties["env"] = "qa"

	assert.False(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))

	ctx.UserProperties["env"] = "prod"
	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_PropertyNegatedValue(t *testing.T) {
	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{Property: &descriptor.ActivationProperty{Name: "env", Value: "!prod"}}}
	ctx := newCtx()
	ctx.UserProperties["env"] = "qa"

	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_FileExists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "marker"), []byte("x"), 0o644))

	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{File: &descriptor.ActivationFile{Exists: "marker"}}}
	ctx := newCtx()
	ctx.ProjectDirectory = dir

	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}

func TestSelector_FileMissing(t *testing.T) {
	dir := t.TempDir()

	s := New()
	p := &descriptor.Profile{ID: "p1", Activation: &descriptor.Activation{File: &descriptor.ActivationFile{Missing: "absent"}}}
	ctx := newCtx()
	ctx.ProjectDirectory = dir

	assert.True(t, s.IsActive(context.Background(), p, ctx, problem.NewCollector(problem.Base)))
}
