package inherit

import (
	"context"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Assembler is the default descriptor.InheritanceAssembler.
type Assembler struct{}

// New returns an Assembler.
func New() *Assembler {
	return &Assembler{}
}

// Assemble merges child over parent: every field child declares wins;
// every field child leaves unset is inherited from parent. Collection
// fields (dependencies, management entries, plugins, repositories) are
// the union, child's entries first.
func (a *Assembler) Assemble(ctx context.Context, child *descriptor.Descriptor, parent *descriptor.Descriptor, problems *problem.Collector) *descriptor.Descriptor {
	if parent == nil {
		return child.Clone()
	}
	merged := parent.Clone()

	if child.GroupID != "" {
		merged.GroupID = child.GroupID
	}
	merged.ArtifactID = child.ArtifactID
	if child.Version != "" {
		merged.Version = child.Version
	}
	if child.Packaging != "" {
		merged.Packaging = child.Packaging
	}
	merged.Parent = child.Parent.Clone()
	merged.PomFile = child.PomFile
	merged.ProjectDirectory = child.ProjectDirectory

	merged.Properties = mergeProperties(parent.Properties, child.Properties)
	merged.Dependencies = append(append([]*descriptor.Dependency{}, child.Dependencies...), parent.Dependencies...)
	merged.DependencyManagement = mergeDependencyManagement(parent.DependencyManagement, child.DependencyManagement)
	merged.Build = mergeBuild(parent.Build, child.Build)
	merged.Repositories = append(append([]*descriptor.Repository{}, child.Repositories...), parent.Repositories...)
	merged.Profiles = append(append([]*descriptor.Profile{}, child.Profiles...), parent.Profiles...)

	return merged
}

// AssembleChain folds chain (leaf-to-root order, as LineageWalker returns
// it) into a single effective descriptor, ancestor-first: the
// super-descriptor is assembled first, then each ancestor is merged in
// turn down to the leaf, so a property declared by an intermediate
// ancestor can still be overridden by the leaf.
//
// It also performs the plugin-version audit: walking the same
// ancestor-to-descendant order, it remembers the first version seen per
// plugin key across both a descriptor's direct plugins and its plugin
// management, and reports a WARNING for any plugin key that never had a
// version anywhere in the chain.
func (a *Assembler) AssembleChain(ctx context.Context, chain []*descriptor.Descriptor, problems *problem.Collector) *descriptor.Descriptor {
	log := ctxlog.FromContext(ctx)
	if len(chain) == 0 {
		return &descriptor.Descriptor{}
	}

	versions := map[string]*string{}

	result := chain[len(chain)-1].Clone()
	auditPluginVersions(result, versions)

	for i := len(chain) - 2; i >= 0; i-- {
		result = a.Assemble(ctx, chain[i], result, problems)
		auditPluginVersions(result, versions)
	}

	for key, version := range versions {
		if version == nil {
			problems.Add(problem.Problem{
				Severity: problem.Warning,
				Message:  "plugin " + key + " has no declared version anywhere in the ancestor chain",
			})
		}
	}

	log.Debug("inherit: chain assembled", "depth", len(chain))
	return result
}

// auditPluginVersions records, for each plugin key seen in d, the first
// version found for it (direct declaration or plugin management). A key
// seen only without a version is recorded as nil until a later
// declaration supplies one; a recorded version is never overwritten.
func auditPluginVersions(d *descriptor.Descriptor, versions map[string]*string) {
	if d.Build == nil {
		return
	}
	record := func(key, version string) {
		if versions[key] != nil {
			return
		}
		if version == "" {
			versions[key] = nil
			return
		}
		v := version
		versions[key] = &v
	}
	if d.Build.PluginManagement != nil {
		for _, p := range d.Build.PluginManagement.Plugins {
			record(p.Key(), p.Version)
		}
	}
	for _, p := range d.Build.Plugins {
		record(p.Key(), p.Version)
	}
}

func mergeProperties(parent, child map[string]string) map[string]string {
	merged := map[string]string{}
	for k, v := range parent {
		merged[k] = v
	}
	for k, v := range child {
		merged[k] = v
	}
	return merged
}

func mergeDependencyManagement(parent, child *descriptor.DependencyManagement) *descriptor.DependencyManagement {
	if parent == nil && child == nil {
		return nil
	}
	merged := &descriptor.DependencyManagement{}
	if child != nil {
		merged.Dependencies = append(merged.Dependencies, child.Dependencies...)
	}
	if parent != nil {
		merged.Dependencies = append(merged.Dependencies, parent.Dependencies...)
	}
	return merged
}

func mergeBuild(parent, child *descriptor.Build) *descriptor.Build {
	if parent == nil && child == nil {
		return nil
	}
	merged := &descriptor.Build{}
	if child != nil {
		merged.Plugins = append(merged.Plugins, child.Plugins...)
	}
	if parent != nil {
		merged.Plugins = append(merged.Plugins, parent.Plugins...)
	}
	merged.PluginManagement = mergePluginManagement(
		pluginManagementOf(parent),
		pluginManagementOf(child),
	)
	return merged
}

func pluginManagementOf(b *descriptor.Build) *descriptor.PluginManagement {
	if b == nil {
		return nil
	}
	return b.PluginManagement
}

func mergePluginManagement(parent, child *descriptor.PluginManagement) *descriptor.PluginManagement {
	if parent == nil && child == nil {
		return nil
	}
	merged := &descriptor.PluginManagement{}
	if child != nil {
		merged.Plugins = append(merged.Plugins, child.Plugins...)
	}
	if parent != nil {
		merged.Plugins = append(merged.Plugins, parent.Plugins...)
	}
	return merged
}

var _ descriptor.InheritanceAssembler = (*Assembler)(nil)
