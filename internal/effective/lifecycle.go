package effective

import (
	"fmt"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// defaultBindings maps a packaging value to the plugins implicitly bound
// to it, the way "jar" packaging implies a standard compile/test/package
// plugin set without the descriptor having to list them.
var defaultBindings = map[string][]*descriptor.Plugin{
	"jar": {
		{GroupID: "internal", ArtifactID: "compiler-plugin"},
		{GroupID: "internal", ArtifactID: "packager-plugin"},
	},
	"pom": {},
}

// LifecycleBindingsInjector is the default
// descriptor.LifecycleBindingsInjector.
type LifecycleBindingsInjector struct{}

// NewLifecycleBindingsInjector returns a LifecycleBindingsInjector.
func NewLifecycleBindingsInjector() *LifecycleBindingsInjector {
	return &LifecycleBindingsInjector{}
}

// InjectLifecycleBindings adds the packaging's default plugins to d's
// build, skipping any plugin key the descriptor already declares
// directly. An unknown packaging with no registered bindings is reported
// as an error, matching the original's missing-injector failure.
func (inj *LifecycleBindingsInjector) InjectLifecycleBindings(d *descriptor.Descriptor, problems *problem.Collector) error {
	bindings, ok := defaultBindings[d.EffectivePackaging()]
	if !ok {
		err := fmt.Errorf("no lifecycle bindings registered for packaging %q", d.EffectivePackaging())
		problems.Add(problem.Problem{Severity: problem.Error, Source: d.ModelID(), Message: err.Error()})
		return err
	}
	if len(bindings) == 0 {
		return nil
	}

	if d.Build == nil {
		d.Build = &descriptor.Build{}
	}
	declared := map[string]bool{}
	for _, p := range d.Build.Plugins {
		declared[p.Key()] = true
	}
	for _, binding := range bindings {
		if declared[binding.Key()] {
			continue
		}
		d.Build.Plugins = append(d.Build.Plugins, binding.Clone())
	}
	return nil
}

var _ descriptor.LifecycleBindingsInjector = (*LifecycleBindingsInjector)(nil)
