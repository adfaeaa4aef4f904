package effective

import "github.com/vk/dxmodel/internal/descriptor"

// PluginManagementInjector is the default
// descriptor.PluginManagementInjector.
type PluginManagementInjector struct{}

// NewPluginManagementInjector returns a PluginManagementInjector.
func NewPluginManagementInjector() *PluginManagementInjector {
	return &PluginManagementInjector{}
}

// InjectPluginManagement fills in any field a declared plugin leaves
// unset (Version and Configuration) from the effective plugin management entry
// sharing its Key. A plugin management entry with no matching direct
// declaration contributes nothing; management without use is inert.
func (inj *PluginManagementInjector) InjectPluginManagement(d *descriptor.Descriptor) {
	if d.Build == nil || d.Build.PluginManagement == nil {
		return
	}
	managed := map[string]*descriptor.Plugin{}
	for _, p := range d.Build.PluginManagement.Plugins {
		managed[p.Key()] = p
	}
	for _, p := range d.Build.Plugins {
		m, ok := managed[p.Key()]
		if !ok {
			continue
		}
		if p.Version == "" {
			p.Version = m.Version
		}
		if p.Configuration == nil {
			p.Configuration = m.Configuration
		}
	}
}

var _ descriptor.PluginManagementInjector = (*PluginManagementInjector)(nil)

// DependencyManagementInjector is the default
// descriptor.DependencyManagementInjector.
type DependencyManagementInjector struct{}

// NewDependencyManagementInjector returns a DependencyManagementInjector.
func NewDependencyManagementInjector() *DependencyManagementInjector {
	return &DependencyManagementInjector{}
}

// InjectDependencyManagement fills in Version (and Scope, when the
// dependency itself left it unset) from the effective dependency
// management entry sharing its ManagementKey.
func (inj *DependencyManagementInjector) InjectDependencyManagement(d *descriptor.Descriptor) {
	if d.DependencyManagement == nil {
		return
	}
	managed := map[string]*descriptor.Dependency{}
	for _, dep := range d.DependencyManagement.Dependencies {
		managed[dep.ManagementKey()] = dep
	}
	for _, dep := range d.Dependencies {
		m, ok := managed[dep.ManagementKey()]
		if !ok {
			continue
		}
		if dep.Version == "" {
			dep.Version = m.Version
		}
		if dep.Scope == "" {
			dep.Scope = m.Scope
		}
	}
}

var _ descriptor.DependencyManagementInjector = (*DependencyManagementInjector)(nil)
