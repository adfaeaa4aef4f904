package descriptor

import "github.com/vk/dxmodel/internal/problem"

// InputLocation is a pointer into the source document that produced a
// field, carried only when the build request has location tracking
// enabled. It is the same concrete type the problem collector attaches to
// diagnostics, so a field's recorded location can be handed straight to a
// Problem without conversion.
type InputLocation = problem.Location

// Coordinates identifies a descriptor uniquely: the triple the rest of the
// spec calls GAV. It is the cache lookup key and the cycle-detection key.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string
}

// ModelID renders the coordinates as "groupId:artifactId:version", with a
// stable "[unknown-*]" placeholder substituted for any field left empty.
// This is the printable ModelID used by error messages and cache keys.
func (c Coordinates) ModelID() string {
	g, a, v := c.GroupID, c.ArtifactID, c.Version
	if g == "" {
		g = "[unknown-groupId]"
	}
	if a == "" {
		a = "[unknown-artifactId]"
	}
	if v == "" {
		v = "[unknown-version]"
	}
	return g + ":" + a + ":" + v
}

// ParentReference is the <parent> declaration: coordinates plus an
// optional relative path hint used for local resolution.
type ParentReference struct {
	Coordinates
	RelativePath string
}

func (p *ParentReference) Clone() *ParentReference {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

// Exclusion excludes a transitive dependency by coordinates (groupId and
// artifactId only; version is irrelevant to an exclusion).
type Exclusion struct {
	GroupID    string
	ArtifactID string
}

// Dependency is a single entry in <dependencies> or
// <dependencyManagement><dependencies>.
type Dependency struct {
	GroupID    string
	ArtifactID string
	Version    string
	Type       string
	Scope      string
	Optional   bool
	Exclusions []Exclusion
	Location   *InputLocation
}

// ManagementKey identifies a dependency for management purposes: GAV is
// irrelevant here, only groupId:artifactId:type(:classifier) matter, but
// this model does not carry classifiers, so groupId:artifactId:type.
func (d *Dependency) ManagementKey() string {
	typ := d.Type
	if typ == "" {
		typ = "jar"
	}
	return d.GroupID + ":" + d.ArtifactID + ":" + typ
}

func (d *Dependency) Clone() *Dependency {
	if d == nil {
		return nil
	}
	clone := *d
	clone.Exclusions = append([]Exclusion(nil), d.Exclusions...)
	return &clone
}

// DependencyManagement is the <dependencyManagement> block: a flat list of
// dependency coordinate pins, some of which (type=pom, scope=import) are
// import directives rather than literal dependencies.
type DependencyManagement struct {
	Dependencies []*Dependency
}

func (m *DependencyManagement) Clone() *DependencyManagement {
	if m == nil {
		return nil
	}
	clone := &DependencyManagement{Dependencies: make([]*Dependency, len(m.Dependencies))}
	for i, d := range m.Dependencies {
		clone.Dependencies[i] = d.Clone()
	}
	return clone
}

// Plugin is a single entry in <build><plugins> or
// <build><pluginManagement><plugins>.
type Plugin struct {
	GroupID       string
	ArtifactID    string
	Version       string
	Configuration map[string]any
	Location      *InputLocation
}

// Key identifies a plugin for the plugin-version audit: groupId:artifactId.
func (p *Plugin) Key() string {
	return p.GroupID + ":" + p.ArtifactID
}

func (p *Plugin) Clone() *Plugin {
	if p == nil {
		return nil
	}
	clone := *p
	if p.Configuration != nil {
		clone.Configuration = make(map[string]any, len(p.Configuration))
		for k, v := range p.Configuration {
			clone.Configuration[k] = v
		}
	}
	return &clone
}

// PluginManagement is the <build><pluginManagement> block.
type PluginManagement struct {
	Plugins []*Plugin
}

func (m *PluginManagement) Clone() *PluginManagement {
	if m == nil {
		return nil
	}
	clone := &PluginManagement{Plugins: make([]*Plugin, len(m.Plugins))}
	for i, p := range m.Plugins {
		clone.Plugins[i] = p.Clone()
	}
	return clone
}

// Build is the <build> block.
type Build struct {
	Plugins          []*Plugin
	PluginManagement *PluginManagement
}

func (b *Build) Clone() *Build {
	if b == nil {
		return nil
	}
	clone := &Build{
		Plugins:          make([]*Plugin, len(b.Plugins)),
		PluginManagement: b.PluginManagement.Clone(),
	}
	for i, p := range b.Plugins {
		clone.Plugins[i] = p.Clone()
	}
	return clone
}

// Repository is a remote or local descriptor source declaration.
type Repository struct {
	ID     string
	URL    string
	Layout string
}

// ActivationProperty activates a profile when a named property is (or is
// not, if Value starts with "!") set to a given value.
type ActivationProperty struct {
	Name  string
	Value string
}

// ActivationFile activates a profile based on filesystem presence, paths
// resolved relative to ActivationContext.ProjectDirectory.
type ActivationFile struct {
	Exists  string
	Missing string
}

// Activation is the predicate that decides whether a Profile is active for
// a given ActivationContext.
type Activation struct {
	ActiveByDefault bool
	Property        *ActivationProperty
	File            *ActivationFile
}

func (a *Activation) Clone() *Activation {
	if a == nil {
		return nil
	}
	clone := *a
	if a.Property != nil {
		p := *a.Property
		clone.Property = &p
	}
	if a.File != nil {
		f := *a.File
		clone.File = &f
	}
	return &clone
}

// Profile is a conditionally-applied descriptor fragment.
type Profile struct {
	ID                   string
	Activation           *Activation
	Properties           map[string]string
	Dependencies         []*Dependency
	DependencyManagement *DependencyManagement
	Build                *Build
	Repositories         []*Repository
}

func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	clone := &Profile{
		ID:                   p.ID,
		Activation:           p.Activation.Clone(),
		DependencyManagement: p.DependencyManagement.Clone(),
		Build:                p.Build.Clone(),
	}
	if p.Properties != nil {
		clone.Properties = make(map[string]string, len(p.Properties))
		for k, v := range p.Properties {
			clone.Properties[k] = v
		}
	}
	clone.Dependencies = make([]*Dependency, len(p.Dependencies))
	for i, d := range p.Dependencies {
		clone.Dependencies[i] = d.Clone()
	}
	for _, r := range p.Repositories {
		if r != nil {
			rc := *r
			r = &rc
		}
		clone.Repositories = append(clone.Repositories, r)
	}
	return clone
}

// Descriptor is the project-descriptor tree: the central data type this
// module reads, inherits, interpolates, injects into, and validates.
type Descriptor struct {
	GroupID    string
	ArtifactID string
	Version    string
	Packaging  string

	Parent *ParentReference

	Properties map[string]string

	Dependencies         []*Dependency
	DependencyManagement *DependencyManagement

	Build *Build

	Profiles []*Profile

	Repositories []*Repository

	// PomFile is the local filesystem path this descriptor was read from,
	// empty when it came from a non-file source (e.g. a repository).
	PomFile string

	// ProjectDirectory is the directory PomFile lives in, used as the base
	// for path translation and relative activation-file checks.
	ProjectDirectory string

	// Locations maps a dotted field path (e.g. "parent.version",
	// "build.plugins[0].version") to the InputLocation it was read from.
	// Populated only when location tracking is enabled.
	Locations map[string]*InputLocation
}

// EffectivePackaging returns Packaging, defaulting to "jar" the way an
// unset packaging implies the default artifact kind.
func (d *Descriptor) EffectivePackaging() string {
	if d.Packaging == "" {
		return "jar"
	}
	return d.Packaging
}

// Coordinates returns the descriptor's own GAV, without consulting the
// parent for missing fields. Callers that need the inherited GAV (per
// invariant 1 of SPEC_FULL.md §3) should use EffectiveCoordinates.
func (d *Descriptor) Coordinates() Coordinates {
	return Coordinates{GroupID: d.GroupID, ArtifactID: d.ArtifactID, Version: d.Version}
}

// EffectiveCoordinates returns groupId and version inherited from the
// parent when absent on the descriptor itself; artifactId is never
// inherited (invariant 1).
func (d *Descriptor) EffectiveCoordinates() Coordinates {
	c := d.Coordinates()
	if c.GroupID == "" && d.Parent != nil {
		c.GroupID = d.Parent.GroupID
	}
	if c.Version == "" && d.Parent != nil {
		c.Version = d.Parent.Version
	}
	return c
}

// ModelID is the printable "groupId:artifactId:version" for this
// descriptor's own (non-inherited) coordinates.
func (d *Descriptor) ModelID() string {
	return d.Coordinates().ModelID()
}

// Clone performs a deep copy so that mutation of one stage (raw, per
// ancestor, effective) never leaks into another stage's descriptor, per
// the lifecycle rule in SPEC_FULL.md §3.
func (d *Descriptor) Clone() *Descriptor {
	if d == nil {
		return nil
	}
	clone := &Descriptor{
		GroupID:              d.GroupID,
		ArtifactID:           d.ArtifactID,
		Version:              d.Version,
		Packaging:            d.Packaging,
		Parent:               d.Parent.Clone(),
		Build:                d.Build.Clone(),
		DependencyManagement: d.DependencyManagement.Clone(),
		PomFile:              d.PomFile,
		ProjectDirectory:     d.ProjectDirectory,
	}
	if d.Properties != nil {
		clone.Properties = make(map[string]string, len(d.Properties))
		for k, v := range d.Properties {
			clone.Properties[k] = v
		}
	}
	clone.Dependencies = make([]*Dependency, len(d.Dependencies))
	for i, dep := range d.Dependencies {
		clone.Dependencies[i] = dep.Clone()
	}
	clone.Profiles = make([]*Profile, len(d.Profiles))
	for i, p := range d.Profiles {
		clone.Profiles[i] = p.Clone()
	}
	for _, r := range d.Repositories {
		if r != nil {
			rc := *r
			r = &rc
		}
		clone.Repositories = append(clone.Repositories, r)
	}
	if d.Locations != nil {
		clone.Locations = make(map[string]*InputLocation, len(d.Locations))
		for k, v := range d.Locations {
			clone.Locations[k] = v
		}
	}
	return clone
}

// ActivationContext is the evaluation environment for profile activation
// predicates.
type ActivationContext struct {
	ActiveIDs         map[string]bool
	InactiveIDs       map[string]bool
	SystemProperties  map[string]string
	UserProperties    map[string]string
	ProjectProperties map[string]string
	ProjectDirectory  string
}

// NewActivationContext builds an ActivationContext with initialized maps.
func NewActivationContext() *ActivationContext {
	return &ActivationContext{
		ActiveIDs:         map[string]bool{},
		InactiveIDs:       map[string]bool{},
		SystemProperties:  map[string]string{},
		UserProperties:    map[string]string{},
		ProjectProperties: map[string]string{},
	}
}

// Lookup resolves a property name against user, then project, then system
// properties, the priority order §3 mandates for activation predicates.
func (a *ActivationContext) Lookup(name string) (string, bool) {
	if v, ok := a.UserProperties[name]; ok {
		return v, true
	}
	if v, ok := a.ProjectProperties[name]; ok {
		return v, true
	}
	if v, ok := a.SystemProperties[name]; ok {
		return v, true
	}
	return "", false
}

// Source identifies where a descriptor's bytes came from: a plain string
// location for error messages, plus the byte stream itself.
type Source interface {
	// Location is a human-readable string identifying this source, used in
	// diagnostics and as a cache key component.
	Location() string
	// Open returns a fresh reader over the source's bytes. Callers must
	// close it.
	Open() (ReadCloser, error)
}

// ReadCloser is the minimal surface FileReader needs from an opened
// source; satisfied directly by *os.File and any io.ReadCloser.
type ReadCloser interface {
	Read(p []byte) (n int, err error)
	Close() error
}

// RelatableSource is a Source that can resolve a path relative to itself,
// used for local parent resolution (§4.6.1). Not every source supports
// this — only ones backed by a real filesystem location.
type RelatableSource interface {
	Source
	// GetRelatedSource returns the Source at relativePath, interpreted
	// relative to this source's own location, or nil if this kind of
	// source cannot relate paths (matching the original's ModelSource2
	// contract).
	GetRelatedSource(relativePath string) Source
}

// RepositorySource marks a Source as having come from a coordinate-based
// repository lookup rather than a local file or workspace. The lineage
// walker uses this to decide whether a cached RAW entry is safe to reuse
// without re-validating local relativePath/version-skew rules (§4.6.1).
type RepositorySource interface {
	Source
	Coordinates() Coordinates
}

// ModelData pairs a descriptor with the source it was read from and the
// coordinates it should be cached and cycle-detected under. It is both a
// cache entry and a node while walking the ancestor lineage.
type ModelData struct {
	Source Source
	Model  *Descriptor
	Coordinates
}

// ID renders the ModelData's coordinates as a printable ModelID.
func (d *ModelData) ID() string {
	return d.Coordinates.ModelID()
}

// BuildResult is the outcome of a model build: every intermediate model
// plus the accumulated problems, per SPEC_FULL.md §3.
type BuildResult struct {
	FileModel      *Descriptor
	RawModel       *Descriptor
	EffectiveModel *Descriptor

	// ModelIDs is the lineage in leaf-to-root order: ModelIDs[0] is the
	// leaf, ModelIDs[len-1] is the super-descriptor.
	ModelIDs []string

	// RawModels maps each ModelID in ModelIDs to the raw model recorded for
	// it during the lineage walk, with that node's active profiles already
	// injected; no separate "ACTIVATED+"-keyed variant is stored.
	RawModels map[string]*Descriptor

	ActivePomProfiles      map[string][]*Profile
	ActiveExternalProfiles []*Profile

	Problems []problem.Problem
}

// NewBuildResult returns a BuildResult with its maps initialized.
func NewBuildResult() *BuildResult {
	return &BuildResult{
		RawModels:         map[string]*Descriptor{},
		ActivePomProfiles: map[string][]*Profile{},
	}
}
