package effective

import (
	"context"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Builder implements component C10. It has no fields of its own: every
// collaborator it calls (path translator, injectors, expanders, importer,
// validator) is already a field on the BuildRequest passed to Build, the
// single configuration record §9's design notes call for in place of a
// dozen separately-wired services.
type Builder struct{}

// New returns a Builder.
func New() *Builder {
	return &Builder{}
}

// Build takes an inherited, interpolated descriptor and runs the final
// assembly pipeline named in SPEC_FULL.md §4.10: path translation,
// reporting conversion, plugin-management injection, the
// BUILD_EXTENSIONS_ASSEMBLED listener event, lifecycle-bindings
// injection, dependency-management import and injection, default-value
// expansion, final validation, and a replace=true resolver
// reconfiguration against the now-fully-resolved repository list.
func (b *Builder) Build(ctx context.Context, d *descriptor.Descriptor, req *descriptor.BuildRequest, problems *problem.Collector) (*descriptor.Descriptor, error) {
	log := ctxlog.FromContext(ctx)

	req.ModelPathTranslator.Translate(d, d.ProjectDirectory)
	req.ModelURLNormalizer.NormalizeURLs(d)
	req.ReportingConverter.ConvertReporting(d)
	req.PluginManagementInjector.InjectPluginManagement(d)

	if req.Listener != nil {
		req.Listener.BuildExtensionsAssembled(ctx, d)
	}

	if req.ProcessPlugins {
		if err := req.LifecycleBindingsInjector.InjectLifecycleBindings(d, problems); err != nil {
			log.Warn("effective: lifecycle bindings injection failed", "modelID", d.ModelID(), "error", err)
		}
	}

	if req.DependencyManagementImporter != nil {
		if err := req.DependencyManagementImporter.ImportManagement(ctx, d, req, problems); err != nil {
			log.Warn("effective: dependency-management import reported an error, continuing", "modelID", d.ModelID(), "error", err)
		}
	}
	req.DependencyManagementInjector.InjectDependencyManagement(d)

	if req.ProcessPlugins {
		req.PluginConfigurationExpander.ExpandPluginConfiguration(d)
		req.ReportConfigurationExpander.ExpandReportConfiguration(d)
	}

	req.ModelNormalizer.Normalize(d)
	req.ModelValidator.Validate(ctx, d, req.ValidationLevel, problems)

	for i, r := range d.Repositories {
		if err := req.ModelResolver.AddRepository(r, i == 0); err != nil {
			log.Warn("effective: failed to reconfigure resolver", "repository", r.ID, "error", err)
		}
	}

	log.Debug("effective: effective model assembled", "modelID", d.ModelID())
	return d, nil
}
