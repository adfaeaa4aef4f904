package profile

import (
	"context"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// SelectActive walks profiles in declaration order, asking selector
// whether each is active against activationCtx. A profile's own
// properties are merged into activationCtx.UserProperties as soon as it
// activates, so a later profile in the same list can activate off a
// property an earlier one declared — the bleed-through rule from
// SPEC_FULL.md §3's ActivationContext description.
func SelectActive(ctx context.Context, profiles []*descriptor.Profile, selector descriptor.ProfileSelector, activationCtx *descriptor.ActivationContext, problems *problem.Collector) []*descriptor.Profile {
	log := ctxlog.FromContext(ctx)
	var active []*descriptor.Profile
	for _, p := range profiles {
		if !selector.IsActive(ctx, p, activationCtx, problems) {
			continue
		}
		log.Debug("profile activated", "profile", p.ID)
		active = append(active, p)
		for k, v := range p.Properties {
			if _, exists := activationCtx.UserProperties[k]; !exists {
				activationCtx.UserProperties[k] = v
			}
		}
	}
	return active
}

// Injector is the default descriptor.ProfileInjector.
type Injector struct{}

// New returns an Injector.
func New() *Injector {
	return &Injector{}
}

// InjectProfiles folds every active profile's contributions into d, in
// activation order. A profile never overrides a property the descriptor
// already declares directly; dependencies, management entries, plugins,
// and repositories are appended.
func (inj *Injector) InjectProfiles(d *descriptor.Descriptor, active []*descriptor.Profile, problems *problem.Collector) {
	for _, p := range active {
		injectOne(d, p)
	}
}

func injectOne(d *descriptor.Descriptor, p *descriptor.Profile) {
	if d.Properties == nil {
		d.Properties = map[string]string{}
	}
	for k, v := range p.Properties {
		if _, exists := d.Properties[k]; !exists {
			d.Properties[k] = v
		}
	}

	d.Dependencies = append(d.Dependencies, p.Dependencies...)

	if p.DependencyManagement != nil {
		if d.DependencyManagement == nil {
			d.DependencyManagement = &descriptor.DependencyManagement{}
		}
		d.DependencyManagement.Dependencies = append(d.DependencyManagement.Dependencies, p.DependencyManagement.Dependencies...)
	}

	if p.Build != nil {
		if d.Build == nil {
			d.Build = &descriptor.Build{}
		}
		d.Build.Plugins = append(d.Build.Plugins, p.Build.Plugins...)
		if p.Build.PluginManagement != nil {
			if d.Build.PluginManagement == nil {
				d.Build.PluginManagement = &descriptor.PluginManagement{}
			}
			d.Build.PluginManagement.Plugins = append(d.Build.PluginManagement.Plugins, p.Build.PluginManagement.Plugins...)
		}
	}

	d.Repositories = append(d.Repositories, p.Repositories...)
}

var _ descriptor.ProfileInjector = (*Injector)(nil)
