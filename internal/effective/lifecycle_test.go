package effective

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

func TestLifecycleBindingsInjector_AddsDefaultPlugins(t *testing.T) {
	inj := NewLifecycleBindingsInjector()
	d := &descriptor.Descriptor{Packaging: "jar"}
	problems := problem.NewCollector(problem.Base)

	err := inj.InjectLifecycleBindings(d, problems)
	require.NoError(t, err)
	require.NotNil(t, d.Build)
	assert.Len(t, d.Build.Plugins, 2)
}

func TestLifecycleBindingsInjector_SkipsAlreadyDeclaredPlugin(t *testing.T) {
	inj := NewLifecycleBindingsInjector()
	d := &descriptor.Descriptor{
		Packaging: "jar",
		Build:     &descriptor.Build{Plugins: []*descriptor.Plugin{{GroupID: "internal", ArtifactID: "compiler-plugin", Version: "custom"}}},
	}
	problems := problem.NewCollector(problem.Base)

	err := inj.InjectLifecycleBindings(d, problems)
	require.NoError(t, err)
	require.Len(t, d.Build.Plugins, 2)
	for _, p := range d.Build.Plugins {
		if p.Key() == "internal:compiler-plugin" {
			assert.Equal(t, "custom", p.Version)
		}
	}
}

func TestLifecycleBindingsInjector_UnknownPackagingReportsError(t *testing.T) {
	inj := NewLifecycleBindingsInjector()
	d := &descriptor.Descriptor{Packaging: "war"}
	problems := problem.NewCollector(problem.Base)

	err := inj.InjectLifecycleBindings(d, problems)
	require.Error(t, err)
	require.Len(t, problems.Snapshot(), 1)
	assert.Equal(t, problem.Error, problems.Snapshot()[0].Severity)
}

func TestLifecycleBindingsInjector_PomPackagingHasNoBindings(t *testing.T) {
	inj := NewLifecycleBindingsInjector()
	d := &descriptor.Descriptor{Packaging: "pom"}
	problems := problem.NewCollector(problem.Base)

	err := inj.InjectLifecycleBindings(d, problems)
	require.NoError(t, err)
	assert.Nil(t, d.Build)
}
