package modelcache

import (
	"context"
	"fmt"
	"sync"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
)

// entryKey is the lookup key: coordinates plus the tag they were cached
// under, so the same coordinates can hold a FILEMODEL, a RAW, and an
// IMPORT entry simultaneously without colliding.
type entryKey struct {
	groupID    string
	artifactID string
	version    string
	tag        descriptor.CacheTag
}

func keyFor(coords descriptor.Coordinates, tag descriptor.CacheTag) entryKey {
	return entryKey{groupID: coords.GroupID, artifactID: coords.ArtifactID, version: coords.Version, tag: tag}
}

// sourceKey is the second lookup key shape: a source's own identity plus
// the tag it was cached under. Used for FILEMODEL entries, whose
// descriptor's coordinates aren't known until after the very read this
// cache is meant to avoid repeating.
type sourceKey struct {
	sourceIdentity string
	tag            descriptor.CacheTag
}

// Store is a sync.Map-backed implementation of descriptor.Cache. Every key
// is written at most once; a second Put for the same coordinates and tag
// is a caller error and is rejected without overwriting the original
// entry, so a build can never observe a cache entry rewritten underneath
// it mid-walk.
type Store struct {
	entries  sync.Map // entryKey -> *descriptor.Descriptor
	bySource sync.Map // sourceKey -> *descriptor.Descriptor
}

// New returns an empty Store, sized for a single top-level build.
func New() *Store {
	return &Store{}
}

// Get returns a clone of the cached descriptor for coords and tag, so the
// caller can mutate its copy freely without corrupting the cached entry.
func (s *Store) Get(ctx context.Context, coords descriptor.Coordinates, tag descriptor.CacheTag) (*descriptor.Descriptor, bool) {
	v, ok := s.entries.Load(keyFor(coords, tag))
	if !ok {
		return nil, false
	}
	return v.(*descriptor.Descriptor).Clone(), true
}

// Put stores a clone of d under coords and tag. If an entry already
// exists for that key, the write is dropped and a warning is logged
// instead of silently overwriting it.
func (s *Store) Put(ctx context.Context, coords descriptor.Coordinates, tag descriptor.CacheTag, d *descriptor.Descriptor) {
	key := keyFor(coords, tag)
	if _, exists := s.entries.Load(key); exists {
		ctxlog.FromContext(ctx).Warn("modelcache: duplicate write ignored",
			"modelID", coords.ModelID(), "tag", tagName(tag))
		return
	}
	s.entries.Store(key, d.Clone())
}

// GetBySource returns a clone of the cached descriptor for sourceIdentity
// and tag, so the caller can mutate its copy freely.
func (s *Store) GetBySource(ctx context.Context, sourceIdentity string, tag descriptor.CacheTag) (*descriptor.Descriptor, bool) {
	v, ok := s.bySource.Load(sourceKey{sourceIdentity: sourceIdentity, tag: tag})
	if !ok {
		return nil, false
	}
	return v.(*descriptor.Descriptor).Clone(), true
}

// PutBySource stores a clone of d under sourceIdentity and tag, dropping
// (with a warning) a second write to the same key.
func (s *Store) PutBySource(ctx context.Context, sourceIdentity string, tag descriptor.CacheTag, d *descriptor.Descriptor) {
	key := sourceKey{sourceIdentity: sourceIdentity, tag: tag}
	if _, exists := s.bySource.Load(key); exists {
		ctxlog.FromContext(ctx).Warn("modelcache: duplicate source-keyed write ignored",
			"source", sourceIdentity, "tag", tagName(tag))
		return
	}
	s.bySource.Store(key, d.Clone())
}

func tagName(tag descriptor.CacheTag) string {
	switch tag {
	case descriptor.FileModelTag:
		return "FILEMODEL"
	case descriptor.RawModelTag:
		return "RAW"
	case descriptor.ImportTag:
		return "IMPORT"
	default:
		return fmt.Sprintf("TAG(%d)", tag)
	}
}

var _ descriptor.Cache = (*Store)(nil)
