package modelcache

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/vk/dxmodel/internal/descriptor"
)

// snapshotEntry is the on-disk shape of one cache entry: the lookup key
// spelled out in plain fields (entryKey itself is unexported and has no
// yaml tags) plus the descriptor it held.
type snapshotEntry struct {
	GroupID    string                 `yaml:"groupId"`
	ArtifactID string                 `yaml:"artifactId"`
	Version    string                 `yaml:"version"`
	Tag        string                 `yaml:"tag"`
	Model      *descriptor.Descriptor `yaml:"model"`
}

type snapshotFile struct {
	Entries []snapshotEntry `yaml:"entries"`
}

// WriteSnapshot serializes every entry currently held by the Store to path
// as YAML, the module's secondary descriptor encoding for cache
// persistence (HCL stays the authoring format; YAML is the machine
// round-trip format, the way a daemon reusing a cache across build
// invocations would want it).
func (s *Store) WriteSnapshot(path string) error {
	var file snapshotFile
	s.entries.Range(func(k, v any) bool {
		key := k.(entryKey)
		file.Entries = append(file.Entries, snapshotEntry{
			GroupID:    key.groupID,
			ArtifactID: key.artifactID,
			Version:    key.version,
			Tag:        tagName(key.tag),
			Model:      v.(*descriptor.Descriptor),
		})
		return true
	})

	out, err := yaml.Marshal(file)
	if err != nil {
		return fmt.Errorf("modelcache: marshaling snapshot: %w", err)
	}
	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("modelcache: writing snapshot %s: %w", path, err)
	}
	return nil
}

// LoadSnapshot populates a fresh Store from a YAML snapshot previously
// written by WriteSnapshot. Unknown tag names are rejected rather than
// silently dropped, since a corrupted snapshot should fail loudly instead
// of producing a cache that is quietly missing entries.
func LoadSnapshot(path string) (*Store, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("modelcache: reading snapshot %s: %w", path, err)
	}

	var file snapshotFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("modelcache: parsing snapshot %s: %w", path, err)
	}

	store := New()
	for _, e := range file.Entries {
		tag, err := tagFromName(e.Tag)
		if err != nil {
			return nil, fmt.Errorf("modelcache: snapshot %s: %w", path, err)
		}
		coords := descriptor.Coordinates{GroupID: e.GroupID, ArtifactID: e.ArtifactID, Version: e.Version}
		if e.Model != nil && len(e.Model.Locations) == 0 {
			// YAML writes a nil Locations map as {}; restore it to nil.
			e.Model.Locations = nil
		}
		store.entries.Store(keyFor(coords, tag), e.Model)
	}
	return store, nil
}

func tagFromName(name string) (descriptor.CacheTag, error) {
	switch name {
	case "FILEMODEL":
		return descriptor.FileModelTag, nil
	case "RAW":
		return descriptor.RawModelTag, nil
	case "IMPORT":
		return descriptor.ImportTag, nil
	default:
		return 0, fmt.Errorf("unknown cache tag %q", name)
	}
}
