package effective

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vk/dxmodel/internal/descriptor"
)

func TestPluginManagementInjector_FillsUnsetVersion(t *testing.T) {
	inj := NewPluginManagementInjector()
	d := &descriptor.Descriptor{
		Build: &descriptor.Build{
			Plugins: []*descriptor.Plugin{{GroupID: "g", ArtifactID: "p"}},
			PluginManagement: &descriptor.PluginManagement{
				Plugins: []*descriptor.Plugin{{GroupID: "g", ArtifactID: "p", Version: "2.0"}},
			},
		},
	}

	inj.InjectPluginManagement(d)
	assert.Equal(t, "2.0", d.Build.Plugins[0].Version)
}

func TestPluginManagementInjector_DoesNotOverrideDeclaredVersion(t *testing.T) {
	inj := NewPluginManagementInjector()
	d := &descriptor.Descriptor{
		Build: &descriptor.Build{
			Plugins: []*descriptor.Plugin{{GroupID: "g", ArtifactID: "p", Version: "1.0"}},
			PluginManagement: &descriptor.PluginManagement{
				Plugins: []*descriptor.Plugin{{GroupID: "g", ArtifactID: "p", Version: "2.0"}},
			},
		},
	}

	inj.InjectPluginManagement(d)
	assert.Equal(t, "1.0", d.Build.Plugins[0].Version)
}

func TestPluginManagementInjector_NoManagementIsNoop(t *testing.T) {
	inj := NewPluginManagementInjector()
	d := &descriptor.Descriptor{Build: &descriptor.Build{Plugins: []*descriptor.Plugin{{GroupID: "g", ArtifactID: "p"}}}}

	inj.InjectPluginManagement(d)
	assert.Equal(t, "", d.Build.Plugins[0].Version)
}

func TestDependencyManagementInjector_FillsUnsetVersionAndScope(t *testing.T) {
	inj := NewDependencyManagementInjector()
	d := &descriptor.Descriptor{
		Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "a"}},
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "a", Version: "1.2.3", Scope: "provided"}},
		},
	}

	inj.InjectDependencyManagement(d)
	assert.Equal(t, "1.2.3", d.Dependencies[0].Version)
	assert.Equal(t, "provided", d.Dependencies[0].Scope)
}

func TestDependencyManagementInjector_DoesNotOverrideDeclaredFields(t *testing.T) {
	inj := NewDependencyManagementInjector()
	d := &descriptor.Descriptor{
		Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "a", Version: "9.9.9", Scope: "test"}},
		DependencyManagement: &descriptor.DependencyManagement{
			Dependencies: []*descriptor.Dependency{{GroupID: "g", ArtifactID: "a", Version: "1.2.3", Scope: "provided"}},
		},
	}

	inj.InjectDependencyManagement(d)
	assert.Equal(t, "9.9.9", d.Dependencies[0].Version)
	assert.Equal(t, "test", d.Dependencies[0].Scope)
}
