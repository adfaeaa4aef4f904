package fsresolve

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vk/dxmodel/internal/descriptor"
)

// fileSource is a descriptor.Source backed by a real file on disk. It
// implements RelatableSource (local parent resolution via relative paths)
// and, when resolved from a repository lookup rather than opened directly,
// RepositorySource.
type fileSource struct {
	path   string
	coords *descriptor.Coordinates
}

func (s *fileSource) Location() string { return s.path }

func (s *fileSource) Open() (descriptor.ReadCloser, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("fsresolve: opening %s: %w", s.path, err)
	}
	return f, nil
}

func (s *fileSource) GetRelatedSource(relativePath string) descriptor.Source {
	resolved := filepath.Join(filepath.Dir(s.path), relativePath)
	if info, err := os.Stat(resolved); err == nil && info.IsDir() {
		resolved = filepath.Join(resolved, "descriptor.hcl")
	}
	if _, err := os.Stat(resolved); err != nil {
		return nil
	}
	return &fileSource{path: resolved}
}

func (s *fileSource) Coordinates() descriptor.Coordinates {
	if s.coords == nil {
		return descriptor.Coordinates{}
	}
	return *s.coords
}

var (
	_ descriptor.RelatableSource  = (*fileSource)(nil)
	_ descriptor.RepositorySource = (*fileSource)(nil)
)

// Resolver is the default descriptor.ModelResolver: a filesystem
// repository rooted at repoRoot, laid out as
// <repoRoot>/<groupId>/<artifactId>/<version>/descriptor.hcl.
type Resolver struct {
	repoRoot     string
	repositories []*descriptor.Repository
}

// NewResolver returns a Resolver rooted at repoRoot.
func NewResolver(repoRoot string) *Resolver {
	return &Resolver{repoRoot: repoRoot}
}

// Resolve looks up coords in the repository layout.
func (r *Resolver) Resolve(ctx context.Context, coords descriptor.Coordinates) (descriptor.Source, error) {
	path := filepath.Join(r.repoRoot, coords.GroupID, coords.ArtifactID, coords.Version, "descriptor.hcl")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("fsresolve: %s not found in repository %s: %w", coords.ModelID(), r.repoRoot, err)
	}
	c := coords
	return &fileSource{path: path, coords: &c}, nil
}

// NewCopy returns an independent Resolver with the same repository root
// and repository list, so a nested import sub-build cannot mutate the
// resolver state of the build that triggered it.
func (r *Resolver) NewCopy() descriptor.ModelResolver {
	return &Resolver{
		repoRoot:     r.repoRoot,
		repositories: append([]*descriptor.Repository(nil), r.repositories...),
	}
}

// AddRepository folds repo into the resolver's known repositories. When
// replace is true, any previously added repositories are discarded first,
// matching the effective-model reconfiguration call described in
// SPEC_FULL.md's supplemented resolver-reconfiguration feature.
func (r *Resolver) AddRepository(repo *descriptor.Repository, replace bool) error {
	if repo == nil {
		return nil
	}
	if replace {
		r.repositories = nil
	}
	r.repositories = append(r.repositories, repo)
	return nil
}

// Repositories returns the repositories currently configured, in
// declaration order. Mostly useful for tests and diagnostics.
func (r *Resolver) Repositories() []*descriptor.Repository {
	return append([]*descriptor.Repository(nil), r.repositories...)
}

var _ descriptor.ModelResolver = (*Resolver)(nil)

// WorkspaceResolver layers an in-memory module index (coordinates to a
// descriptor file path, e.g. built from a multi-module checkout) on top
// of a Resolver, consulted first before falling back to the repository.
type WorkspaceResolver struct {
	*Resolver
	modules map[descriptor.Coordinates]string
}

// NewWorkspaceResolver returns a WorkspaceResolver backed by repoRoot for
// the repository fallback and modules for the workspace lookup.
func NewWorkspaceResolver(repoRoot string, modules map[descriptor.Coordinates]string) *WorkspaceResolver {
	return &WorkspaceResolver{Resolver: NewResolver(repoRoot), modules: modules}
}

// ResolveWorkspace looks up coords among the known workspace modules
// without touching the repository.
func (w *WorkspaceResolver) ResolveWorkspace(ctx context.Context, coords descriptor.Coordinates) (descriptor.Source, bool) {
	path, ok := w.modules[coords]
	if !ok {
		return nil, false
	}
	c := coords
	return &fileSource{path: path, coords: &c}, true
}

// NewCopy returns an independent WorkspaceResolver sharing the same
// workspace module index (the index is a fixed checkout layout, not
// per-build mutable state) but an independent repository resolver.
func (w *WorkspaceResolver) NewCopy() descriptor.ModelResolver {
	return &WorkspaceResolver{
		Resolver: w.Resolver.NewCopy().(*Resolver),
		modules:  w.modules,
	}
}

var _ descriptor.WorkspaceModelResolver = (*WorkspaceResolver)(nil)
