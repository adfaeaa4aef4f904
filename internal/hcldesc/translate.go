package hcldesc

import (
	"github.com/zclconf/go-cty/cty"

	"github.com/vk/dxmodel/internal/descriptor"
)

func translateDescriptor(b *descriptorBlock) *descriptor.Descriptor {
	d := &descriptor.Descriptor{
		GroupID:    b.GroupID,
		ArtifactID: b.ArtifactID,
		Version:    b.Version,
		Packaging:  b.Packaging,
		Properties: b.Properties,
	}

	if b.Parent != nil {
		d.Parent = &descriptor.ParentReference{
			Coordinates:  descriptor.Coordinates{GroupID: b.Parent.GroupID, ArtifactID: b.Parent.ArtifactID, Version: b.Parent.Version},
			RelativePath: b.Parent.RelativePath,
		}
	}

	for _, dep := range b.Dependencies {
		d.Dependencies = append(d.Dependencies, translateDependency(dep))
	}

	d.DependencyManagement = translateDependencyManagement(b.DependencyManagement)
	d.Build = translateBuild(b.Build)

	for _, pr := range b.Profiles {
		d.Profiles = append(d.Profiles, translateProfile(pr))
	}

	for _, r := range b.Repositories {
		d.Repositories = append(d.Repositories, translateRepository(r))
	}

	return d
}

func translateDependency(b *dependencyBlock) *descriptor.Dependency {
	dep := &descriptor.Dependency{
		GroupID:    b.GroupID,
		ArtifactID: b.ArtifactID,
		Version:    b.Version,
		Type:       b.Type,
		Scope:      b.Scope,
		Optional:   b.Optional,
	}
	for _, ex := range b.Exclusions {
		dep.Exclusions = append(dep.Exclusions, descriptor.Exclusion{GroupID: ex.GroupID, ArtifactID: ex.ArtifactID})
	}
	return dep
}

func translateDependencyManagement(b *dependencyMgmtBlock) *descriptor.DependencyManagement {
	if b == nil {
		return nil
	}
	m := &descriptor.DependencyManagement{}
	for _, dep := range b.Dependencies {
		m.Dependencies = append(m.Dependencies, translateDependency(dep))
	}
	return m
}

func translatePlugin(b *pluginBlock) *descriptor.Plugin {
	p := &descriptor.Plugin{
		GroupID:    b.GroupID,
		ArtifactID: b.ArtifactID,
		Version:    b.Version,
	}
	if !b.Configuration.IsNull() && b.Configuration.IsKnown() {
		p.Configuration = ctyToGo(b.Configuration)
	}
	return p
}

func translatePluginManagement(b *pluginMgmtBlock) *descriptor.PluginManagement {
	if b == nil {
		return nil
	}
	m := &descriptor.PluginManagement{}
	for _, pl := range b.Plugins {
		m.Plugins = append(m.Plugins, translatePlugin(pl))
	}
	return m
}

func translateBuild(b *buildBlock) *descriptor.Build {
	if b == nil {
		return nil
	}
	build := &descriptor.Build{PluginManagement: translatePluginManagement(b.PluginManagement)}
	for _, pl := range b.Plugins {
		build.Plugins = append(build.Plugins, translatePlugin(pl))
	}
	return build
}

func translateActivation(b *activationBlock) *descriptor.Activation {
	if b == nil {
		return nil
	}
	a := &descriptor.Activation{ActiveByDefault: b.ActiveByDefault}
	if b.Property != nil {
		a.Property = &descriptor.ActivationProperty{Name: b.Property.Name, Value: b.Property.Value}
	}
	if b.File != nil {
		a.File = &descriptor.ActivationFile{Exists: b.File.Exists, Missing: b.File.Missing}
	}
	return a
}

func translateProfile(b *profileBlock) *descriptor.Profile {
	p := &descriptor.Profile{
		ID:                   b.ID,
		Activation:           translateActivation(b.Activation),
		Properties:           b.Properties,
		DependencyManagement: translateDependencyManagement(b.DependencyManagement),
		Build:                translateBuild(b.Build),
	}
	for _, dep := range b.Dependencies {
		p.Dependencies = append(p.Dependencies, translateDependency(dep))
	}
	for _, r := range b.Repositories {
		p.Repositories = append(p.Repositories, translateRepository(r))
	}
	return p
}

func translateRepository(b *repositoryBlock) *descriptor.Repository {
	return &descriptor.Repository{ID: b.ID, URL: b.URL, Layout: b.Layout}
}

// ctyToGo converts a go-cty value decoded from a "configuration" attribute
// into plain Go data (map[string]any, []any, string, float64, bool, or
// nil), the shape descriptor.Plugin.Configuration is declared to hold.
func ctyToGo(v cty.Value) map[string]any {
	if v.IsNull() || !v.Type().IsObjectType() {
		return nil
	}
	out := make(map[string]any, v.LengthInt())
	it := v.ElementIterator()
	for it.Next() {
		k, val := it.Element()
		out[k.AsString()] = ctyValueToAny(val)
	}
	return out
}

func ctyValueToAny(v cty.Value) any {
	if v.IsNull() {
		return nil
	}
	switch {
	case v.Type() == cty.String:
		return v.AsString()
	case v.Type() == cty.Bool:
		return v.True()
	case v.Type() == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return f
	case v.Type().IsObjectType() || v.Type().IsMapType():
		out := map[string]any{}
		it := v.ElementIterator()
		for it.Next() {
			k, val := it.Element()
			out[k.AsString()] = ctyValueToAny(val)
		}
		return out
	case v.Type().IsListType() || v.Type().IsTupleType() || v.Type().IsSetType():
		var out []any
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			out = append(out, ctyValueToAny(val))
		}
		return out
	default:
		return nil
	}
}
