package modelcache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/dxmodel/internal/descriptor"
)

func coords() descriptor.Coordinates {
	return descriptor.Coordinates{GroupID: "com.example", ArtifactID: "child", Version: "1.0"}
}

func TestStore_PutGet_RoundTrips(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := &descriptor.Descriptor{GroupID: "com.example", ArtifactID: "child", Version: "1.0"}
	s.Put(ctx, coords(), descriptor.RawModelTag, d)

	got, ok := s.Get(ctx, coords(), descriptor.RawModelTag)
	require.True(t, ok)
	assert.Equal(t, "com.example", got.GroupID)
}

func TestStore_MissingKey_ReturnsFalse(t *testing.T) {
	s := New()
	_, ok := s.Get(context.Background(), coords(), descriptor.FileModelTag)
	assert.False(t, ok)
}

func TestStore_TagsAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	fileModel := &descriptor.Descriptor{Packaging: "file"}
	rawModel := &descriptor.Descriptor{Packaging: "raw"}
	s.Put(ctx, coords(), descriptor.FileModelTag, fileModel)
	s.Put(ctx, coords(), descriptor.RawModelTag, rawModel)

	gotFile, ok := s.Get(ctx, coords(), descriptor.FileModelTag)
	require.True(t, ok)
	assert.Equal(t, "file", gotFile.Packaging)

	gotRaw, ok := s.Get(ctx, coords(), descriptor.RawModelTag)
	require.True(t, ok)
	assert.Equal(t, "raw", gotRaw.Packaging)
}

func TestStore_Get_ReturnsACloneNotTheOriginal(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := &descriptor.Descriptor{GroupID: "com.example"}
	s.Put(ctx, coords(), descriptor.RawModelTag, d)

	got, _ := s.Get(ctx, coords(), descriptor.RawModelTag)
	got.GroupID = "mutated"

	again, _ := s.Get(ctx, coords(), descriptor.RawModelTag)
	assert.Equal(t, "com.example", again.GroupID)
}

func TestStore_Put_DuplicateWriteIsDropped(t *testing.T) {
	s := New()
	ctx := context.Background()

	first := &descriptor.Descriptor{GroupID: "first"}
	second := &descriptor.Descriptor{GroupID: "second"}
	s.Put(ctx, coords(), descriptor.RawModelTag, first)
	s.Put(ctx, coords(), descriptor.RawModelTag, second)

	got, ok := s.Get(ctx, coords(), descriptor.RawModelTag)
	require.True(t, ok)
	assert.Equal(t, "first", got.GroupID)
}

func TestStore_GetBySource_PutBySource_RoundTrips(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := &descriptor.Descriptor{ArtifactID: "unknown-until-parsed"}
	s.PutBySource(ctx, "/repo/com/example/child/pom.hcl", descriptor.FileModelTag, d)

	got, ok := s.GetBySource(ctx, "/repo/com/example/child/pom.hcl", descriptor.FileModelTag)
	require.True(t, ok)
	assert.Equal(t, "unknown-until-parsed", got.ArtifactID)

	_, ok = s.GetBySource(ctx, "/repo/com/example/child/pom.hcl", descriptor.RawModelTag)
	assert.False(t, ok, "a different tag for the same source must miss")
}

func TestStore_CoordinateAndSourceKeyShapesAreIndependent(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.Put(ctx, coords(), descriptor.RawModelTag, &descriptor.Descriptor{Packaging: "by-coords"})
	s.PutBySource(ctx, "child.hcl", descriptor.RawModelTag, &descriptor.Descriptor{Packaging: "by-source"})

	byCoords, ok := s.Get(ctx, coords(), descriptor.RawModelTag)
	require.True(t, ok)
	assert.Equal(t, "by-coords", byCoords.Packaging)

	bySource, ok := s.GetBySource(ctx, "child.hcl", descriptor.RawModelTag)
	require.True(t, ok)
	assert.Equal(t, "by-source", bySource.Packaging)
}

func TestStore_PutBySource_DuplicateWriteIsDropped(t *testing.T) {
	s := New()
	ctx := context.Background()

	s.PutBySource(ctx, "child.hcl", descriptor.FileModelTag, &descriptor.Descriptor{GroupID: "first"})
	s.PutBySource(ctx, "child.hcl", descriptor.FileModelTag, &descriptor.Descriptor{GroupID: "second"})

	got, ok := s.GetBySource(ctx, "child.hcl", descriptor.FileModelTag)
	require.True(t, ok)
	assert.Equal(t, "first", got.GroupID)
}

func TestStore_Put_MutatingSourceAfterPutDoesNotAffectCache(t *testing.T) {
	s := New()
	ctx := context.Background()

	d := &descriptor.Descriptor{GroupID: "com.example"}
	s.Put(ctx, coords(), descriptor.RawModelTag, d)
	d.GroupID = "mutated-after-put"

	got, _ := s.Get(ctx, coords(), descriptor.RawModelTag)
	assert.Equal(t, "com.example", got.GroupID)
}
