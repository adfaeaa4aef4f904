package depimport

import (
	"context"
	"fmt"
	"strings"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// Importer is the default descriptor.DependencyManagementImporter.
type Importer struct {
	// NestedBuilder runs the full nested build a dependency-management
	// import requires. Wired by the orchestrator at startup to avoid an
	// import cycle between this package and the orchestrator package.
	NestedBuilder descriptor.ModelBuilder
}

// New returns an Importer. builder is typically the same
// internal/build.Builder that will end up calling this Importer, wired
// back in after construction.
func New(builder descriptor.ModelBuilder) *Importer {
	return &Importer{NestedBuilder: builder}
}

// ImportManagement replaces every type=pom/scope=import entry in d's
// dependency management with the management entries produced by a full
// nested build of the imported descriptor. A malformed, cyclic, or
// unresolvable import entry is dropped with an ERROR problem rather than
// aborting — the remaining entries, and the caller's dependency-management
// injection and validation that follow, still run.
func (imp *Importer) ImportManagement(ctx context.Context, d *descriptor.Descriptor, req *descriptor.BuildRequest, problems *problem.Collector) error {
	if d.DependencyManagement == nil {
		return nil
	}
	log := ctxlog.FromContext(ctx)

	var resolved []*descriptor.Dependency
	for _, dep := range d.DependencyManagement.Dependencies {
		if !isImport(dep) {
			resolved = append(resolved, dep)
			continue
		}

		imported, err := imp.resolveImport(ctx, dep, req, problems)
		if err != nil {
			log.Warn("depimport: dropping import entry after error", "error", err)
			continue
		}
		resolved = append(resolved, imported...)
	}

	d.DependencyManagement.Dependencies = resolved
	log.Debug("depimport: management imports resolved", "modelID", d.ModelID())
	return nil
}

func isImport(dep *descriptor.Dependency) bool {
	return dep.Type == "pom" && dep.Scope == "import"
}

// resolveImport implements §4.9 steps 2-4: missing coordinate fields and
// an import cycle or resolution failure each yield an ERROR problem and a
// skip (nil, nil) rather than a Go error, so ImportManagement's loop keeps
// processing the remaining entries.
func (imp *Importer) resolveImport(ctx context.Context, dep *descriptor.Dependency, req *descriptor.BuildRequest, problems *problem.Collector) ([]*descriptor.Dependency, error) {
	if missing := missingCoordinateFields(dep); len(missing) > 0 {
		for _, field := range missing {
			problems.Add(problem.Problem{
				Severity: problem.Error,
				Message:  fmt.Sprintf("dependency-management import is missing '%s'", field),
			})
		}
		return nil, nil
	}

	coords := descriptor.Coordinates{GroupID: dep.GroupID, ArtifactID: dep.ArtifactID, Version: dep.Version}
	id := coords.ModelID()

	if !req.PushImport(id) {
		chain := append(req.ImportChain(), id)
		problems.Add(problem.Problem{
			Severity: problem.Error,
			Message:  "The dependencies of type=pom and with scope=import form a cycle: " + strings.Join(chain, " -> "),
		})
		return nil, nil
	}
	defer req.PopImport()

	if cached, ok := req.ModelCache.Get(ctx, coords, descriptor.ImportTag); ok {
		return cached.DependencyManagement.Dependencies, nil
	}

	src, err := imp.resolveSource(ctx, coords, req)
	if err != nil {
		problems.Add(problem.Problem{
			Severity: problem.Error,
			Message:  fmt.Sprintf("cannot resolve dependency-management import %s: %s", id, err),
			Err:      err,
		})
		return nil, nil
	}

	subReq := req.WithImportDefaults(src)
	subResult, err := imp.NestedBuilder.Build(ctx, subReq)
	if subResult != nil {
		problems.AddAll(subResult.Problems)
	}
	if err != nil {
		problems.Add(problem.Problem{
			Severity: problem.Error,
			Message:  fmt.Sprintf("nested build for dependency-management import %s failed: %s", id, err),
			Err:      err,
		})
		return nil, nil
	}

	effective := subResult.EffectiveModel
	if effective == nil || effective.DependencyManagement == nil {
		return nil, nil
	}

	req.ModelCache.Put(ctx, coords, descriptor.ImportTag, effective)
	return effective.DependencyManagement.Dependencies, nil
}

// missingCoordinateFields reports which of groupId/artifactId/version an
// import entry is missing, in declaration order.
func missingCoordinateFields(dep *descriptor.Dependency) []string {
	var missing []string
	if dep.GroupID == "" {
		missing = append(missing, "groupId")
	}
	if dep.ArtifactID == "" {
		missing = append(missing, "artifactId")
	}
	if dep.Version == "" {
		missing = append(missing, "version")
	}
	return missing
}

func (imp *Importer) resolveSource(ctx context.Context, coords descriptor.Coordinates, req *descriptor.BuildRequest) (descriptor.Source, error) {
	if ws, ok := req.ModelResolver.(descriptor.WorkspaceModelResolver); ok {
		if src, found := ws.ResolveWorkspace(ctx, coords); found {
			return src, nil
		}
	}
	return req.ModelResolver.Resolve(ctx, coords)
}

var _ descriptor.DependencyManagementImporter = (*Importer)(nil)
