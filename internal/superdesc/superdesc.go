package superdesc

import "github.com/vk/dxmodel/internal/descriptor"

// ModelVersion is the descriptor schema version the super-descriptor
// corresponds to. Descriptor has no model-version field, so the value is
// not stored on the descriptor SuperDescriptor returns.
const ModelVersion = "4.0.0"

// CentralRepositoryID and CentralRepositoryURL name the default remote
// repository the super-descriptor declares. Inheritance appends it after
// every descendant's own repositories, so every effective model lists it.
const (
	CentralRepositoryID  = "central"
	CentralRepositoryURL = "https://repo.example.org/central"
)

// Provider is the default descriptor.SuperDescriptorProvider: a fixed,
// freshly-cloned-per-call descriptor so callers can never mutate the
// shared baseline.
type Provider struct {
	template *descriptor.Descriptor
}

// New builds a Provider around the fixed super-descriptor.
func New() *Provider {
	return &Provider{template: buildSuperDescriptor()}
}

// SuperDescriptor returns a fresh clone of the implicit root ancestor.
func (p *Provider) SuperDescriptor() *descriptor.Descriptor {
	return p.template.Clone()
}

func buildSuperDescriptor() *descriptor.Descriptor {
	return &descriptor.Descriptor{
		Packaging: "jar",
		Build: &descriptor.Build{
			PluginManagement: &descriptor.PluginManagement{},
		},
		Repositories: []*descriptor.Repository{
			{ID: CentralRepositoryID, URL: CentralRepositoryURL, Layout: "default"},
		},
		Properties: map[string]string{},
	}
}

var _ descriptor.SuperDescriptorProvider = (*Provider)(nil)
