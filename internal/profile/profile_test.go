package profile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/activation"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

func TestSelectActive_BleedsPropertiesToLaterProfiles(t *testing.T) {
	profiles := []*descriptor.Profile{
		{
			ID:         "first",
			Activation: &descriptor.Activation{ActiveByDefault: true},
			Properties: map[string]string{"region": "eu"},
		},
		{
			ID:         "second",
			Activation: &descriptor.Activation{Property: &descriptor.ActivationProperty{Name: "region", Value: "eu"}},
		},
	}

	ctx := descriptor.NewActivationContext()
	active := SelectActive(context.Background(), profiles, activation.New(), ctx, problem.NewCollector(problem.Base))

	require.Len(t, active, 2)
	assert.Equal(t, "first", active[0].ID)
	assert.Equal(t, "second", active[1].ID)
}

func TestInjector_InjectProfiles_DoesNotOverrideExistingProperty(t *testing.T) {
	d := &descriptor.Descriptor{Properties: map[string]string{"region": "us"}}
	p := &descriptor.Profile{ID: "p1", Properties: map[string]string{"region": "eu", "tier": "gold"}}

	New().InjectProfiles(d, []*descriptor.Profile{p}, problem.NewCollector(problem.Base))

	assert.Equal(t, "us", d.Properties["region"])
	assert.Equal(t, "gold", d.Properties["tier"])
}

func TestInjector_InjectProfiles_AppendsDependenciesAndRepositories(t *testing.T) {
	d := &descriptor.Descriptor{}
	p := &descriptor.Profile{
		ID:           "p1",
		Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "a", Version: "1.0"}},
		Repositories: []*descriptor.Repository{{ID: "r1", URL: "https://example.org"}},
	}

	New().InjectProfiles(d, []*descriptor.Profile{p}, problem.NewCollector(problem.Base))

	require.Len(t, d.Dependencies, 1)
	assert.Equal(t, "a", d.Dependencies[0].ArtifactID)
	require.Len(t, d.Repositories, 1)
	assert.Equal(t, "r1", d.Repositories[0].ID)
}
