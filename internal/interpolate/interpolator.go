package interpolate

import (
	"context"
	"fmt"
	"regexp"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

const maxExpansionDepth = 10

// Interpolator is the default descriptor.ModelInterpolator.
type Interpolator struct{}

// New returns an Interpolator.
func New() *Interpolator {
	return &Interpolator{}
}

// Interpolate resolves every ${expr} in d against userProperties, then
// d's own properties, then systemProperties, and returns a new descriptor
// with the resolutions applied. d itself is never mutated: operating on a
// clone is this module's way of achieving the save/restore discipline the
// original wraps around its interpolation pass — nothing here can leak
// back into the activation context a caller is still using for further
// profile decisions.
func (i *Interpolator) Interpolate(ctx context.Context, d *descriptor.Descriptor, userProperties map[string]string, systemProperties map[string]string, problems *problem.Collector) (*descriptor.Descriptor, error) {
	log := ctxlog.FromContext(ctx)
	clone := d.Clone()

	lookup := func(name string) (string, bool) {
		if v, ok := userProperties[name]; ok {
			return v, true
		}
		if v, ok := clone.Properties[name]; ok {
			return v, true
		}
		if v, ok := systemProperties[name]; ok {
			return v, true
		}
		return "", false
	}

	resolve := func(field, s string) string {
		out, err := expand(s, lookup, 0)
		if err != nil {
			problems.Add(problem.Problem{Severity: problem.Warning, Source: clone.ModelID(), Message: fmt.Sprintf("%s: %s", field, err.Error())})
			return s
		}
		return out
	}

	clone.GroupID = resolve("groupId", clone.GroupID)
	clone.ArtifactID = resolve("artifactId", clone.ArtifactID)
	clone.Version = resolve("version", clone.Version)
	clone.Packaging = resolve("packaging", clone.Packaging)

	for k, v := range clone.Properties {
		clone.Properties[k] = resolve("properties."+k, v)
	}

	for _, dep := range clone.Dependencies {
		interpolateDependency(dep, resolve)
	}
	if clone.DependencyManagement != nil {
		for _, dep := range clone.DependencyManagement.Dependencies {
			interpolateDependency(dep, resolve)
		}
	}
	if clone.Build != nil {
		for _, p := range clone.Build.Plugins {
			p.Version = resolve("build.plugins["+p.Key()+"].version", p.Version)
		}
		if clone.Build.PluginManagement != nil {
			for _, p := range clone.Build.PluginManagement.Plugins {
				p.Version = resolve("build.pluginManagement.plugins["+p.Key()+"].version", p.Version)
			}
		}
	}

	for _, repo := range clone.Repositories {
		repo.URL = resolve("repositories["+repo.ID+"].url", repo.URL)
	}

	log.Debug("interpolate: model resolved", "modelID", clone.ModelID())
	return clone, nil
}

// ReinterpolateParentVersion resolves d.Parent.Version on its own. The
// parent block is read and consulted before the rest of a descriptor's
// properties are necessarily known, so a parent version expression that
// depends on a property declared elsewhere in the same document needs a
// second, narrower pass once the full property set is available.
func (i *Interpolator) ReinterpolateParentVersion(ctx context.Context, d *descriptor.Descriptor, userProperties map[string]string, systemProperties map[string]string, problems *problem.Collector) {
	if d.Parent == nil {
		return
	}
	lookup := func(name string) (string, bool) {
		if v, ok := userProperties[name]; ok {
			return v, true
		}
		if v, ok := d.Properties[name]; ok {
			return v, true
		}
		if v, ok := systemProperties[name]; ok {
			return v, true
		}
		return "", false
	}
	resolved, err := expand(d.Parent.Version, lookup, 0)
	if err != nil {
		problems.Add(problem.Problem{Severity: problem.Error, Source: d.ModelID(), Message: "parent.version: " + err.Error()})
		return
	}
	d.Parent.Version = resolved
}

func interpolateDependency(dep *descriptor.Dependency, resolve func(string, string) string) {
	dep.Version = resolve("dependency["+dep.GroupID+":"+dep.ArtifactID+"].version", dep.Version)
}

func expand(s string, lookup func(string) (string, bool), depth int) (string, error) {
	if depth > maxExpansionDepth {
		return s, fmt.Errorf("property expansion exceeded depth %d, possible cyclic reference", maxExpansionDepth)
	}
	if !exprPattern.MatchString(s) {
		return s, nil
	}
	var outerErr error
	out := exprPattern.ReplaceAllStringFunc(s, func(match string) string {
		name := exprPattern.FindStringSubmatch(match)[1]
		value, ok := lookup(name)
		if !ok {
			return match
		}
		expanded, err := expand(value, lookup, depth+1)
		if err != nil {
			outerErr = err
			return match
		}
		return expanded
	})
	if outerErr != nil {
		return s, outerErr
	}
	return out, nil
}

var _ descriptor.ModelInterpolator = (*Interpolator)(nil)
