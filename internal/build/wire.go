package build

import (
	"context"

	"github.com/vk/dxmodel/internal/activation"
	"github.com/vk/dxmodel/internal/depimport"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/effective"
	"github.com/vk/dxmodel/internal/fsresolve"
	"github.com/vk/dxmodel/internal/hcldesc"
	"github.com/vk/dxmodel/internal/inherit"
	"github.com/vk/dxmodel/internal/interpolate"
	"github.com/vk/dxmodel/internal/lineage"
	"github.com/vk/dxmodel/internal/modelcache"
	"github.com/vk/dxmodel/internal/modelread"
	"github.com/vk/dxmodel/internal/problem"
	"github.com/vk/dxmodel/internal/profile"
	"github.com/vk/dxmodel/internal/superdesc"
)

// Config bundles the inputs NewRequest needs to wire a Builder and a
// BuildRequest with this module's default collaborators, the Go analogue
// of the fluent-setter wiring the original builds up through a dependency
// injection container: a configuration record constructed once and passed
// by reference (§9's design note).
type Config struct {
	// RepositoryRoot is the filesystem repository parent/import
	// coordinates fall back to when local and workspace resolution miss.
	RepositoryRoot string
	// WorkspaceRoot, when non-empty, is scanned for sibling descriptor
	// files so parent/import resolution can find them without a
	// repository round-trip.
	WorkspaceRoot string

	UserProperties   map[string]string
	SystemProperties map[string]string

	ValidationLevel  problem.Gate
	LocationTracking bool
	TwoPhaseBuilding bool
	ProcessPlugins   bool

	ActiveProfileIDs   []string
	InactiveProfileIDs []string
	ExternalProfiles   []*descriptor.Profile

	Listener descriptor.Listener
}

// NewRequest wires a Builder and a BuildRequest for src, using cfg's
// filesystem roots and ambient properties. The returned Builder is also
// the DependencyManagementImporter's nested builder: importing a
// dependency-management set recurses through the very same wiring.
func NewRequest(ctx context.Context, src descriptor.Source, cfg Config) (*Builder, *descriptor.BuildRequest, error) {
	processor := hcldesc.New()
	normalizer := modelread.NewNormalizer()
	validator := modelread.NewValidator()
	fileReader := modelread.NewFileReader(processor)
	rawBuilder := modelread.NewRawBuilder(processor, normalizer, validator)
	walker := lineage.NewWalker(fileReader, rawBuilder)
	assembler := inherit.New()
	interpolator := interpolate.New()
	eff := effective.New()

	builder := New(fileReader, rawBuilder, walker, assembler, interpolator, eff)
	importer := depimport.New(builder)

	var resolver descriptor.ModelResolver
	if cfg.WorkspaceRoot != "" {
		modules, err := fsresolve.DiscoverModules(ctx, cfg.WorkspaceRoot, processor)
		if err != nil {
			return nil, nil, err
		}
		resolver = fsresolve.NewWorkspaceResolver(cfg.RepositoryRoot, modules)
	} else {
		resolver = fsresolve.NewResolver(cfg.RepositoryRoot)
	}

	req := &descriptor.BuildRequest{
		Source: src,

		ModelResolver:  resolver,
		ModelProcessor: processor,
		ModelCache:     modelcache.New(),

		ProfileSelector: activation.New(),
		ProfileInjector: profile.New(),

		InheritanceAssembler: assembler,
		ModelInterpolator:    interpolator,
		ModelNormalizer:      normalizer,
		ModelValidator:       validator,
		ModelPathTranslator:  effective.NewPathTranslator(),
		ModelURLNormalizer:   effective.NewUrlNormalizer(),
		SuperDescriptor:      superdesc.New(),

		PluginManagementInjector:     effective.NewPluginManagementInjector(),
		DependencyManagementInjector: effective.NewDependencyManagementInjector(),
		DependencyManagementImporter: importer,
		LifecycleBindingsInjector:    effective.NewLifecycleBindingsInjector(),
		PluginConfigurationExpander:  effective.NewPluginConfigurationExpander(),
		ReportConfigurationExpander:  effective.NewReportConfigurationExpander(),
		ReportingConverter:           effective.NewReportingConverter(),

		Listener: cfg.Listener,

		UserProperties:   cfg.UserProperties,
		SystemProperties: cfg.SystemProperties,

		ActiveProfileIDs:   cfg.ActiveProfileIDs,
		InactiveProfileIDs: cfg.InactiveProfileIDs,
		ExternalProfiles:   cfg.ExternalProfiles,

		ValidationLevel:  cfg.ValidationLevel,
		LocationTracking: cfg.LocationTracking,
		TwoPhaseBuilding: cfg.TwoPhaseBuilding,
		ProcessPlugins:   cfg.ProcessPlugins,
	}

	return builder, req, nil
}
