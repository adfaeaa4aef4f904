package descriptor

import (
	"context"

	"github.com/vk/dxmodel/internal/problem"
)

// ModelProcessor reads a Source into a FileModel and can serialize a
// Descriptor back out, the parse/format boundary component C3 sits behind.
// The default implementation backs this with HCL; a consumer could supply
// a different format without touching the rest of the pipeline.
type ModelProcessor interface {
	// Read parses src into a FileModel. strict controls whether malformed
	// input is rejected outright (true) or tolerated with a reported
	// problem (false); callers retry with strict=false on failure per the
	// fallback rule in SPEC_FULL.md §4.3.
	Read(ctx context.Context, src Source, strict bool, locationTracking bool, problems *problem.Collector) (*Descriptor, error)
	// Write serializes d back to its source format.
	Write(ctx context.Context, d *Descriptor) ([]byte, error)
}

// ModelResolver locates the descriptor for a set of coordinates, typically
// backed by a repository. It is the component the lineage walker and the
// dependency-management importer both call to resolve coordinates that
// cannot be satisfied locally.
type ModelResolver interface {
	Resolve(ctx context.Context, coords Coordinates) (Source, error)
	// NewCopy returns an independent resolver with the same configuration,
	// used when a nested sub-build (an import) must not mutate the
	// resolver state of the build that triggered it.
	NewCopy() ModelResolver
	// AddRepository folds a profile- or descriptor-declared repository
	// into this resolver's search path. replace, when true, discards any
	// previously added repositories first (§4.10's second reconfiguration
	// call, after inheritance and profile injection have both run).
	AddRepository(repo *Repository, replace bool) error
}

// WorkspaceModelResolver is an optional refinement of ModelResolver that
// can find a descriptor among in-progress sibling builds (e.g. a
// multi-module checkout) before falling back to the repository resolver,
// per SPEC_FULL.md §4's workspace-before-repository rule.
type WorkspaceModelResolver interface {
	ModelResolver
	ResolveWorkspace(ctx context.Context, coords Coordinates) (Source, bool)
}

// ProfileSelector decides which profiles are active for a given
// ActivationContext; component C5's activation half.
type ProfileSelector interface {
	IsActive(ctx context.Context, p *Profile, activation *ActivationContext, problems *problem.Collector) bool
}

// ProfileInjector merges the properties, dependencies, dependency
// management, build, and repositories of every active profile into a
// descriptor; component C5's injection half.
type ProfileInjector interface {
	InjectProfiles(d *Descriptor, active []*Profile, problems *problem.Collector)
}

// InheritanceAssembler merges a child descriptor over its resolved parent,
// ancestor-first, child-wins; component C7.
type InheritanceAssembler interface {
	Assemble(ctx context.Context, child *Descriptor, parent *Descriptor, problems *problem.Collector) *Descriptor
	AssembleChain(ctx context.Context, chain []*Descriptor, problems *problem.Collector) *Descriptor
}

// ModelInterpolator resolves ${expr} placeholders against a descriptor's
// own properties plus the ambient user/system properties; component C8.
type ModelInterpolator interface {
	Interpolate(ctx context.Context, d *Descriptor, userProperties map[string]string, systemProperties map[string]string, problems *problem.Collector) (*Descriptor, error)
	// ReinterpolateParentVersion resolves d.Parent.Version a second time
	// once the full property set is known, since the parent block may be
	// read before properties declared elsewhere in the same document.
	ReinterpolateParentVersion(ctx context.Context, d *Descriptor, userProperties map[string]string, systemProperties map[string]string, problems *problem.Collector)
}

// ModelNormalizer canonicalizes a freshly-read or freshly-merged
// descriptor: default scope/type/packaging values, dedup, sorting where
// the spec calls for determinism.
type ModelNormalizer interface {
	Normalize(d *Descriptor)
}

// ModelValidator checks a descriptor against the invariants active at a
// given Gate, reporting violations to problems rather than returning an
// error directly.
type ModelValidator interface {
	Validate(ctx context.Context, d *Descriptor, level problem.Gate, problems *problem.Collector)
}

// ModelPathTranslator rewrites filesystem-relative fields (build output
// directories and the like) to be relative to ProjectDirectory once the
// effective model's final location is known.
type ModelPathTranslator interface {
	Translate(d *Descriptor, projectDirectory string)
}

// ModelUrlNormalizer rewrites relative URL fields the same way
// ModelPathTranslator rewrites filesystem paths.
type ModelUrlNormalizer interface {
	NormalizeURLs(d *Descriptor)
}

// SuperDescriptorProvider supplies the implicit root ancestor every
// lineage terminates at: the model version, default repository, and
// default build settings common to every descriptor in the system.
type SuperDescriptorProvider interface {
	SuperDescriptor() *Descriptor
}

// PluginManagementInjector merges a descriptor's effective plugin
// management into its own plugin list by key, filling in unset fields
// only (child-declared fields win).
type PluginManagementInjector interface {
	InjectPluginManagement(d *Descriptor)
}

// DependencyManagementInjector merges a descriptor's effective dependency
// management into its own dependency list by ManagementKey.
type DependencyManagementInjector interface {
	InjectDependencyManagement(d *Descriptor)
}

// DependencyManagementImporter expands type=pom/scope=import entries in a
// DependencyManagement block into the dependencies they point at,
// triggering a nested sub-build per import; component C9.
type DependencyManagementImporter interface {
	ImportManagement(ctx context.Context, d *Descriptor, req *BuildRequest, problems *problem.Collector) error
}

// LifecycleBindingsInjector injects the default plugin bindings implied by
// a descriptor's packaging (e.g. "jar" implies compile/test/package
// plugin bindings) before the plugin list is finalized.
type LifecycleBindingsInjector interface {
	InjectLifecycleBindings(d *Descriptor, problems *problem.Collector) error
}

// PluginConfigurationExpander fills in default values a plugin's
// configuration omitted, analogous to Maven's default-value injection for
// <configuration> blocks.
type PluginConfigurationExpander interface {
	ExpandPluginConfiguration(d *Descriptor)
}

// ReportConfigurationExpander is PluginConfigurationExpander's counterpart
// for the reporting section of a descriptor.
type ReportConfigurationExpander interface {
	ExpandReportConfiguration(d *Descriptor)
}

// ReportingConverter folds a legacy <reporting> section into the
// equivalent report-plugin declarations under <build>, so downstream
// consumers only ever need to look in one place.
type ReportingConverter interface {
	ConvertReporting(d *Descriptor)
}

// ModelBuilder is the seam DependencyManagementImporter recurses through
// to run a nested sub-build for a dependency-management import, without
// the importer package needing to import the orchestrator package that
// assembles it (which would create an import cycle, since the
// orchestrator also wires the importer).
type ModelBuilder interface {
	Build(ctx context.Context, req *BuildRequest) (*BuildResult, error)
}

// Listener is notified at fixed points during the effective-model
// assembly, mirroring the event-hook extension point SPEC_FULL.md's
// SUPPLEMENTED FEATURES section carries over from the original. A nil
// Listener is valid and means no notifications are sent.
type Listener interface {
	BuildExtensionsAssembled(ctx context.Context, d *Descriptor)
}
