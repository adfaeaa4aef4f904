package hcldesc

import (
	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
)

// fileRoot is the top-level shape every descriptor document decodes into.
type fileRoot struct {
	Descriptor *descriptorBlock `hcl:"descriptor,block"`
	Remain     hcl.Body         `hcl:",remain"`
}

type descriptorBlock struct {
	Name string `hcl:"name,label"`

	GroupID    string `hcl:"group_id,optional"`
	ArtifactID string `hcl:"artifact_id,optional"`
	Version    string `hcl:"version,optional"`
	Packaging  string `hcl:"packaging,optional"`

	Parent *parentBlock `hcl:"parent,block"`

	Properties map[string]string `hcl:"properties,optional"`

	Dependencies         []*dependencyBlock     `hcl:"dependency,block"`
	DependencyManagement *dependencyMgmtBlock   `hcl:"dependency_management,block"`

	Build *buildBlock `hcl:"build,block"`

	Profiles []*profileBlock `hcl:"profile,block"`

	Repositories []*repositoryBlock `hcl:"repository,block"`
}

type parentBlock struct {
	GroupID      string `hcl:"group_id"`
	ArtifactID   string `hcl:"artifact_id"`
	Version      string `hcl:"version"`
	RelativePath string `hcl:"relative_path,optional"`
}

type exclusionBlock struct {
	GroupID    string `hcl:"group_id"`
	ArtifactID string `hcl:"artifact_id"`
}

type dependencyBlock struct {
	GroupID    string            `hcl:"group_id"`
	ArtifactID string            `hcl:"artifact_id"`
	Version    string            `hcl:"version,optional"`
	Type       string            `hcl:"type,optional"`
	Scope      string            `hcl:"scope,optional"`
	Optional   bool              `hcl:"optional,optional"`
	Exclusions []*exclusionBlock `hcl:"exclusion,block"`
}

type dependencyMgmtBlock struct {
	Dependencies []*dependencyBlock `hcl:"dependency,block"`
}

type pluginBlock struct {
	GroupID       string    `hcl:"group_id"`
	ArtifactID    string    `hcl:"artifact_id"`
	Version       string    `hcl:"version,optional"`
	Configuration cty.Value `hcl:"configuration,optional"`
}

type pluginMgmtBlock struct {
	Plugins []*pluginBlock `hcl:"plugin,block"`
}

type buildBlock struct {
	Plugins          []*pluginBlock   `hcl:"plugin,block"`
	PluginManagement *pluginMgmtBlock `hcl:"plugin_management,block"`
}

type activationPropertyBlock struct {
	Name  string `hcl:"name"`
	Value string `hcl:"value,optional"`
}

type activationFileBlock struct {
	Exists  string `hcl:"exists,optional"`
	Missing string `hcl:"missing,optional"`
}

type activationBlock struct {
	ActiveByDefault bool                     `hcl:"active_by_default,optional"`
	Property        *activationPropertyBlock `hcl:"property,block"`
	File             *activationFileBlock     `hcl:"file,block"`
}

type profileBlock struct {
	ID                   string               `hcl:"id,label"`
	Activation           *activationBlock     `hcl:"activation,block"`
	Properties           map[string]string    `hcl:"properties,optional"`
	Dependencies         []*dependencyBlock   `hcl:"dependency,block"`
	DependencyManagement *dependencyMgmtBlock `hcl:"dependency_management,block"`
	Build                *buildBlock          `hcl:"build,block"`
	Repositories         []*repositoryBlock   `hcl:"repository,block"`
}

type repositoryBlock struct {
	ID       string `hcl:"id,label"`
	URL      string `hcl:"url"`
	Layout   string `hcl:"layout,optional"`
}
