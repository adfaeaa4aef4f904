package modelread

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/hcldesc"
	"github.com/vk/dxmodel/internal/modelcache"
	"github.com/vk/dxmodel/internal/problem"
)

type stringSource struct{ name, body string }

func (s *stringSource) Location() string { return s.name }
func (s *stringSource) Open() (descriptor.ReadCloser, error) {
	return nopCloser{bytes.NewReader([]byte(s.body))}, nil
}

type nopCloser struct{ *bytes.Reader }

func (nopCloser) Close() error { return nil }

// fileStringSource behaves like stringSource but also satisfies
// descriptor.RelatableSource, standing in for a real file-backed source
// in tests exercising FileReader.Read's file-vs-non-file severity split.
type fileStringSource struct{ stringSource }

func (s *fileStringSource) GetRelatedSource(string) descriptor.Source { return nil }

func TestFileReader_Read_NonFileSource_MalformedIsWarning(t *testing.T) {
	r := NewFileReader(hcldesc.New())
	problems := problem.NewCollector(problem.V20)

	src := &stringSource{name: "broken.hcl", body: `descriptor "project" {`}
	_, err := r.Read(context.Background(), src, problem.V20, false, nil, problems)
	assert.NoError(t, err)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Warning, snap[0].Severity)
	assert.Contains(t, snap[0].Message, "Malformed POM ")
}

func TestFileReader_Read_FileSource_MalformedIsError(t *testing.T) {
	r := NewFileReader(hcldesc.New())
	problems := problem.NewCollector(problem.V20)

	src := &fileStringSource{stringSource{name: "broken.hcl", body: `descriptor "project" {`}}
	_, err := r.Read(context.Background(), src, problem.V20, false, nil, problems)
	assert.NoError(t, err)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Error, snap[0].Severity)
	assert.Contains(t, snap[0].Message, "Malformed POM ")
}

type unreadableSource struct{ name string }

func (s *unreadableSource) Location() string { return s.name }
func (s *unreadableSource) Open() (descriptor.ReadCloser, error) {
	return nil, assert.AnError
}

func TestFileReader_Read_BelowV20_FailsOutrightIsFatal(t *testing.T) {
	r := NewFileReader(hcldesc.New())
	problems := problem.NewCollector(problem.Base)

	src := &unreadableSource{name: "missing.hcl"}
	_, err := r.Read(context.Background(), src, problem.Base, false, nil, problems)
	assert.Error(t, err)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Fatal, snap[0].Severity)
	assert.Contains(t, snap[0].Message, "Non-parseable POM ")
}

func TestFileReader_Read_LenientRetryAlsoFails_IsFatal(t *testing.T) {
	r := NewFileReader(hcldesc.New())
	problems := problem.NewCollector(problem.V20)

	src := &unreadableSource{name: "missing.hcl"}
	_, err := r.Read(context.Background(), src, problem.V20, false, nil, problems)
	assert.Error(t, err)

	snap := problems.Snapshot()
	require.Len(t, snap, 1)
	assert.Equal(t, problem.Fatal, snap[0].Severity)
	assert.Contains(t, snap[0].Message, "Non-parseable POM ")
}

func TestRawBuilder_Build_NormalizesAndValidates(t *testing.T) {
	rb := NewRawBuilder(hcldesc.New(), NewNormalizer(), NewValidator())
	problems := problem.NewCollector(problem.Base)

	fileModel := &descriptor.Descriptor{
		GroupID:      "com.example",
		ArtifactID:   "child",
		Version:      "1.0",
		Dependencies: []*descriptor.Dependency{{GroupID: "com.example", ArtifactID: "lib"}},
	}

	raw := rb.Build(context.Background(), &stringSource{name: "x.hcl", body: ""}, fileModel, "", false, nil, problems)
	require.NotNil(t, raw)
	assert.Equal(t, "jar", raw.Packaging)
	require.Len(t, raw.Dependencies, 1)
	assert.Equal(t, "jar", raw.Dependencies[0].Type)
	assert.Equal(t, "compile", raw.Dependencies[0].Scope)
	assert.False(t, problems.HasErrors())
}

func TestRawBuilder_Build_ReportsMissingCoordinates(t *testing.T) {
	rb := NewRawBuilder(hcldesc.New(), NewNormalizer(), NewValidator())
	problems := problem.NewCollector(problem.Base)

	fileModel := &descriptor.Descriptor{}
	rb.Build(context.Background(), &stringSource{name: "x.hcl", body: ""}, fileModel, "", false, nil, problems)

	assert.True(t, problems.HasErrors())
}

func TestFileReader_Read_CacheHitSkipsProcessor(t *testing.T) {
	r := NewFileReader(hcldesc.New())
	cache := modelcache.New()
	problems := problem.NewCollector(problem.Base)

	src := &stringSource{name: "cached.hcl", body: `descriptor "project" {
  group_id    = "com.example"
  artifact_id = "child"
  version     = "1.0"
}`}

	first, err := r.Read(context.Background(), src, problem.Base, false, cache, problems)
	require.NoError(t, err)
	require.Equal(t, "child", first.ArtifactID)

	// A source that would fail to parse still succeeds on a cache hit,
	// proving Processor.Read was never called the second time.
	broken := &stringSource{name: "cached.hcl", body: `not valid hcl at all {{{`}
	second, err := r.Read(context.Background(), broken, problem.Base, false, cache, problems)
	require.NoError(t, err)
	assert.Equal(t, "child", second.ArtifactID)
}

func TestRawBuilder_Build_CacheHitSkipsNormalizeAndValidate(t *testing.T) {
	rb := NewRawBuilder(hcldesc.New(), NewNormalizer(), NewValidator())
	cache := modelcache.New()
	problems := problem.NewCollector(problem.Base)

	fileModel := &descriptor.Descriptor{GroupID: "com.example", ArtifactID: "child", Version: "1.0"}
	first := rb.Build(context.Background(), &stringSource{name: "x.hcl", body: ""}, fileModel, "", false, cache, problems)
	require.Equal(t, "jar", first.Packaging)

	// Same coordinates (so the cache keys match) but a dependency missing
	// its groupId, which Validate would flag if it ran — the cache hit
	// must return the first build's result without re-running
	// Normalize/Validate against this one.
	second := rb.Build(context.Background(), &stringSource{name: "x.hcl", body: ""},
		&descriptor.Descriptor{
			GroupID: "com.example", ArtifactID: "child", Version: "1.0",
			Dependencies: []*descriptor.Dependency{{ArtifactID: "lib"}},
		}, "", false, cache, problems)
	assert.Equal(t, "jar", second.Packaging)
	assert.False(t, problems.HasErrors())
}
