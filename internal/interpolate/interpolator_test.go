package interpolate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

func TestInterpolate_ResolvesOwnProperty(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Version:    "${revision}",
		Properties: map[string]string{"revision": "1.2.3"},
	}

	out, err := i.Interpolate(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", out.Version)
}

func TestInterpolate_UserPropertyOverridesOwn(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Version:    "${revision}",
		Properties: map[string]string{"revision": "1.2.3"},
	}

	out, err := i.Interpolate(context.Background(), d, map[string]string{"revision": "9.9.9"}, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	assert.Equal(t, "9.9.9", out.Version)
}

func TestInterpolate_UnresolvedExpressionLeftInPlace(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{Version: "${missing}"}

	out, err := i.Interpolate(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	assert.Equal(t, "${missing}", out.Version)
}

func TestInterpolate_DoesNotMutateOriginal(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{Version: "${revision}", Properties: map[string]string{"revision": "1.0"}}

	_, err := i.Interpolate(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	assert.Equal(t, "${revision}", d.Version)
}

func TestInterpolate_ResolvesManagedPluginVersion(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Properties: map[string]string{"plugin.version": "2.5.0"},
		Build: &descriptor.Build{
			PluginManagement: &descriptor.PluginManagement{
				Plugins: []*descriptor.Plugin{
					{GroupID: "com.example", ArtifactID: "compiler-plugin", Version: "${plugin.version}"},
				},
			},
		},
	}

	out, err := i.Interpolate(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	require.NotNil(t, out.Build.PluginManagement)
	assert.Equal(t, "2.5.0", out.Build.PluginManagement.Plugins[0].Version)
}

func TestInterpolate_ResolvesRepositoryURL(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Properties:   map[string]string{"mirror.host": "repo.example.com"},
		Repositories: []*descriptor.Repository{{ID: "central", URL: "https://${mirror.host}/maven2"}},
	}

	out, err := i.Interpolate(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	require.NoError(t, err)
	assert.Equal(t, "https://repo.example.com/maven2", out.Repositories[0].URL)
}

func TestReinterpolateParentVersion_ResolvesAgainstOwnProperties(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Properties: map[string]string{"revision": "1.2.3"},
		Parent:     &descriptor.ParentReference{Coordinates: descriptor.Coordinates{Version: "${revision}"}},
	}

	i.ReinterpolateParentVersion(context.Background(), d, nil, nil, problem.NewCollector(problem.Base))
	assert.Equal(t, "1.2.3", d.Parent.Version)
}

func TestReinterpolateParentVersion_CyclicPropertyIsError(t *testing.T) {
	i := New()
	d := &descriptor.Descriptor{
		Properties: map[string]string{"a": "${b}", "b": "${a}"},
		Parent:     &descriptor.ParentReference{Coordinates: descriptor.Coordinates{Version: "${a}"}},
	}
	problems := problem.NewCollector(problem.Base)

	i.ReinterpolateParentVersion(context.Background(), d, nil, nil, problems)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Error, snap[0].Severity)
}
