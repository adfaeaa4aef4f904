package depimport

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/modelcache"
	"github.com/vk/dxmodel/internal/problem"
)

type fakeBuilder struct {
	result *descriptor.BuildResult
	err    error
}

func (f *fakeBuilder) Build(ctx context.Context, req *descriptor.BuildRequest) (*descriptor.BuildResult, error) {
	return f.result, f.err
}

type fakeSource struct{ name string }

func (s *fakeSource) Location() string                     { return s.name }
func (s *fakeSource) Open() (descriptor.ReadCloser, error) { return nil, nil }

type fakeResolver struct{}

func (r *fakeResolver) Resolve(ctx context.Context, coords descriptor.Coordinates) (descriptor.Source, error) {
	return &fakeSource{name: coords.ModelID()}, nil
}
func (r *fakeResolver) NewCopy() descriptor.ModelResolver { return &fakeResolver{} }
func (r *fakeResolver) AddRepository(repo *descriptor.Repository, replace bool) error {
	return nil
}

func newTestRequest() *descriptor.BuildRequest {
	return &descriptor.BuildRequest{
		ModelResolver: &fakeResolver{},
		ModelCache:    modelcache.New(),
	}
}

func TestImporter_ImportManagement_ExpandsImportEntry(t *testing.T) {
	imported := &descriptor.Descriptor{
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "imported-dep", Version: "1.0"}},
		},
	}
	builder := &fakeBuilder{result: descriptor.NewBuildResult()}
	builder.result.EffectiveModel = imported

	imp := New(builder)

	d := &descriptor.Descriptor{
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{
				{GroupID: "g", ArtifactID: "bom", Version: "1.0", Type: "pom", Scope: "import"},
				{GroupID: "g", ArtifactID: "regular", Version: "2.0"},
			},
		},
	}

	req := newTestRequest()
	err := imp.ImportManagement(context.Background(), d, req, problem.NewCollector(problem.Base))
	require.NoError(t, err)

	require.Len(t, d.DependencyManagement.Dependencies, 2)
	names := []string{d.DependencyManagement.Dependencies[0].ArtifactID, d.DependencyManagement.Dependencies[1].ArtifactID}
	assert.Contains(t, names, "imported-dep")
	assert.Contains(t, names, "regular")
}

func TestImporter_ImportManagement_NoManagementIsNoop(t *testing.T) {
	imp := New(&fakeBuilder{})
	d := &descriptor.Descriptor{}
	err := imp.ImportManagement(context.Background(), d, newTestRequest(), problem.NewCollector(problem.Base))
	assert.NoError(t, err)
}

func TestImporter_ImportManagement_CycleDetected(t *testing.T) {
	builder := &fakeBuilder{}
	imp := New(builder)

	d := &descriptor.Descriptor{
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{
				{GroupID: "g", ArtifactID: "bom", Version: "1.0", Type: "pom", Scope: "import"},
				{GroupID: "g", ArtifactID: "regular", Version: "2.0"},
			},
		},
	}

	req := newTestRequest()
	req.PushImport("g:other:1.0")
	req.PushImport("g:bom:1.0")

	problems := problem.NewCollector(problem.Base)
	err := imp.ImportManagement(context.Background(), d, req, problems)
	require.NoError(t, err)

	require.Len(t, d.DependencyManagement.Dependencies, 1)
	assert.Equal(t, "regular", d.DependencyManagement.Dependencies[0].ArtifactID)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Error, snap[0].Severity)
	assert.Equal(t, "The dependencies of type=pom and with scope=import form a cycle: g:other:1.0 -> g:bom:1.0 -> g:bom:1.0", snap[0].Message)
}

func TestImporter_ImportManagement_MissingCoordinateFieldIsErrorAndSkipped(t *testing.T) {
	imp := New(&fakeBuilder{})

	d := &descriptor.Descriptor{
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{
				{GroupID: "g", Version: "1.0", Type: "pom", Scope: "import"},
				{GroupID: "g", ArtifactID: "regular", Version: "2.0"},
			},
		},
	}

	problems := problem.NewCollector(problem.Base)
	err := imp.ImportManagement(context.Background(), d, newTestRequest(), problems)
	require.NoError(t, err)

	require.Len(t, d.DependencyManagement.Dependencies, 1)
	assert.Equal(t, "regular", d.DependencyManagement.Dependencies[0].ArtifactID)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Error, snap[0].Severity)
	assert.Contains(t, snap[0].Message, "artifactId")
}
