package descriptor

import (
	"context"

	"github.com/vk/dxmodel/internal/problem"
)

// CacheTag distinguishes the three kinds of entry the model cache holds
// for a single coordinate: the file model, the raw model, and models
// fetched to satisfy a dependency-management import.
type CacheTag int

const (
	FileModelTag CacheTag = iota
	RawModelTag
	ImportTag
)

// Cache is the narrow surface the build pipeline needs from the model
// cache (component C2): put once per key, get back a clone. A second Put
// for the same key and tag is a caller error.
//
// Two key shapes are needed, not one. A FILEMODEL entry must be keyed by
// the source it was read from (GetBySource/PutBySource) because its own
// coordinates aren't known until after that very read; a RAW (or IMPORT)
// entry is keyed by the coordinates it was resolved for (Get/Put), per
// SPEC_FULL.md §4.2.
type Cache interface {
	Get(ctx context.Context, coords Coordinates, tag CacheTag) (*Descriptor, bool)
	Put(ctx context.Context, coords Coordinates, tag CacheTag, d *Descriptor)
	GetBySource(ctx context.Context, sourceIdentity string, tag CacheTag) (*Descriptor, bool)
	PutBySource(ctx context.Context, sourceIdentity string, tag CacheTag, d *Descriptor)
}

// BuildRequest bundles everything a model build needs: the entry source,
// the collaborators it resolves other descriptors and formats through, and
// the ambient properties and flags that shape how strictly it behaves.
//
// A BuildRequest is created once per top-level build and threaded down
// through every phase unchanged, except where a nested sub-build (a
// dependency-management import) needs an independent copy with a fresh
// resolver and a reduced validation level; see WithImportDefaults.
type BuildRequest struct {
	Source Source

	ModelResolver  ModelResolver
	ModelProcessor ModelProcessor
	ModelCache     Cache

	ProfileSelector ProfileSelector
	ProfileInjector ProfileInjector

	InheritanceAssembler InheritanceAssembler
	ModelInterpolator    ModelInterpolator
	ModelNormalizer      ModelNormalizer
	ModelValidator       ModelValidator
	ModelPathTranslator  ModelPathTranslator
	ModelURLNormalizer   ModelUrlNormalizer
	SuperDescriptor      SuperDescriptorProvider

	PluginManagementInjector     PluginManagementInjector
	DependencyManagementInjector DependencyManagementInjector
	DependencyManagementImporter DependencyManagementImporter
	LifecycleBindingsInjector    LifecycleBindingsInjector
	PluginConfigurationExpander  PluginConfigurationExpander
	ReportConfigurationExpander  ReportConfigurationExpander
	ReportingConverter           ReportingConverter

	Listener Listener

	UserProperties   map[string]string
	SystemProperties map[string]string

	// ActiveProfileIDs and InactiveProfileIDs force profile activation
	// decisions regardless of a profile's own Activation predicate,
	// mirroring ModelBuildingRequest's activeProfileIds/inactiveProfileIds.
	ActiveProfileIDs   []string
	InactiveProfileIDs []string

	// ExternalProfiles are profiles supplied by the request itself rather
	// than declared in any descriptor in the lineage (e.g. the analogue of
	// settings.xml-declared profiles). They are selected and injected after
	// every pom profile in the lineage, per SPEC_FULL.md §4.5's injection
	// order (pom profiles first, then external).
	ExternalProfiles []*Profile

	ValidationLevel  problem.Gate
	LocationTracking bool

	// TwoPhaseBuilding splits Build into a raw-model phase the caller can
	// inspect (e.g. to resolve a parent's groupId/version from a project
	// layout) before the effective-model phase runs.
	TwoPhaseBuilding bool

	// ProcessPlugins controls whether lifecycle bindings and plugin
	// configuration expansion run at all; off for callers that only need
	// dependency information.
	ProcessPlugins bool

	// importStack tracks in-flight dependency-management imports by
	// ModelID to detect import cycles; empty on a fresh top-level request.
	importStack []string
}

// PushImport records coordinates as an in-flight import, returning false
// if they are already on the stack (an import cycle).
func (r *BuildRequest) PushImport(id string) bool {
	for _, existing := range r.importStack {
		if existing == id {
			return false
		}
	}
	r.importStack = append(r.importStack, id)
	return true
}

// PopImport removes the most recently pushed import id.
func (r *BuildRequest) PopImport() {
	if len(r.importStack) == 0 {
		return
	}
	r.importStack = r.importStack[:len(r.importStack)-1]
}

// ImportChain returns a copy of the in-flight import stack, in push order,
// for building a cycle-report message naming the full chain.
func (r *BuildRequest) ImportChain() []string {
	return append([]string(nil), r.importStack...)
}

// WithImportDefaults derives the request a nested dependency-management
// import sub-build runs with: an independent resolver copy so the import
// cannot mutate the parent build's repository configuration, a reduced
// validation level, and the same cache/properties/location-tracking/import
// stack so cycles are still caught and repeated reads still hit the cache.
func (r *BuildRequest) WithImportDefaults(src Source) *BuildRequest {
	clone := *r
	clone.Source = src
	clone.ModelResolver = r.ModelResolver.NewCopy()
	clone.ValidationLevel = problem.Base
	clone.TwoPhaseBuilding = false
	clone.ProcessPlugins = false
	clone.importStack = append([]string(nil), r.importStack...)
	return &clone
}
