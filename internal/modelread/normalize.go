package modelread

import "github.com/vk/dxmodel/internal/descriptor"

// Normalizer is the default descriptor.ModelNormalizer: fills in the
// defaults a descriptor is allowed to omit (dependency type/scope,
// packaging) so every later stage can assume they are always set.
type Normalizer struct{}

// NewNormalizer returns a Normalizer.
func NewNormalizer() *Normalizer {
	return &Normalizer{}
}

// Normalize mutates d in place, defaulting dependency type to "jar" and
// scope to "compile", and packaging to "jar", matching the original's
// implied defaults.
func (n *Normalizer) Normalize(d *descriptor.Descriptor) {
	if d.Packaging == "" {
		d.Packaging = "jar"
	}
	normalizeDependencies(d.Dependencies)
	if d.DependencyManagement != nil {
		normalizeDependencies(d.DependencyManagement.Dependencies)
	}
	for _, p := range d.Profiles {
		normalizeDependencies(p.Dependencies)
		if p.DependencyManagement != nil {
			normalizeDependencies(p.DependencyManagement.Dependencies)
		}
	}
}

func normalizeDependencies(deps []*descriptor.Dependency) {
	for _, dep := range deps {
		if dep.Type == "" {
			dep.Type = "jar"
		}
		if dep.Scope == "" {
			dep.Scope = "compile"
		}
	}
}

var _ descriptor.ModelNormalizer = (*Normalizer)(nil)
