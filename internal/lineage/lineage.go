package lineage

import (
	"context"
	"fmt"
	"strings"

	"github.com/blang/semver/v4"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/modelread"
	"github.com/vk/dxmodel/internal/problem"
	"github.com/vk/dxmodel/internal/profile"
)

// Walker implements component C6.
type Walker struct {
	FileReader *modelread.FileReader
	RawBuilder *modelread.RawBuilder
}

// NewWalker returns a Walker backed by the given file reader and raw
// builder, used to turn each resolved parent source into a raw model.
func NewWalker(fileReader *modelread.FileReader, rawBuilder *modelread.RawBuilder) *Walker {
	return &Walker{FileReader: fileReader, RawBuilder: rawBuilder}
}

// Walk follows leaf's parent chain to the implicit super-descriptor,
// returning the chain in leaf-to-root order. Every visited node's active
// profiles are injected into its own raw model before the walk descends
// further, and every visited node's declared repositories are folded into
// req.ModelResolver with replace=false (SPEC_FULL.md's supplemented
// resolver-reconfiguration feature, first call site).
func (w *Walker) Walk(ctx context.Context, leaf *descriptor.Descriptor, leafSrc descriptor.Source, req *descriptor.BuildRequest, result *descriptor.BuildResult, problems *problem.Collector) ([]*descriptor.Descriptor, error) {
	log := ctxlog.FromContext(ctx)
	visiting := map[string]bool{}
	var visitOrder []string

	var chain []*descriptor.Descriptor
	current := leaf
	currentSrc := leafSrc

	for {
		id := current.ModelID()
		if visiting[id] {
			chainMsg := strings.Join(append(visitOrder, id), " -> ")
			problems.Add(problem.Problem{
				Severity: problem.Fatal,
				Source:   id,
				Message:  "The parents form a cycle: " + chainMsg,
			})
			return nil, fmt.Errorf("lineage: cycle detected: %s", chainMsg)
		}
		visiting[id] = true
		visitOrder = append(visitOrder, id)

		chain = append(chain, current)
		result.ModelIDs = append(result.ModelIDs, id)
		result.RawModels[id] = current

		activationCtx := BuildActivationContext(current, req)
		active := profile.SelectActive(ctx, current.Profiles, req.ProfileSelector, activationCtx, problems)
		result.ActivePomProfiles[id] = active
		req.ProfileInjector.InjectProfiles(current, active, problems)

		for _, repo := range current.Repositories {
			if err := req.ModelResolver.AddRepository(repo, false); err != nil {
				log.Warn("lineage: failed to register repository", "repository", repo.ID, "error", err)
			}
		}

		if current.Parent == nil {
			break
		}

		parentRaw, parentSrc, err := w.resolveParent(ctx, id, current, currentSrc, req, problems)
		if err != nil {
			return nil, fmt.Errorf("lineage: resolving parent of %s: %w", id, err)
		}

		if parentRaw.EffectivePackaging() != "pom" {
			problems.Add(problem.Problem{
				Severity: problem.Error,
				Source:   id,
				Message:  fmt.Sprintf("parent %s must have packaging 'pom'", parentRaw.ModelID()),
			})
		}

		checkVersion(id, current.Parent, parentRaw, problems)

		current = parentRaw
		currentSrc = parentSrc
	}

	super := req.SuperDescriptor.SuperDescriptor()
	chain = append(chain, super)
	result.ModelIDs = append(result.ModelIDs, super.ModelID())
	result.RawModels[super.ModelID()] = super

	log.Debug("lineage: walk complete", "depth", len(chain))
	return chain, nil
}

// BuildActivationContext assembles the ActivationContext a profile
// selector evaluates d's profiles against, folding in the request's
// ambient properties and any forced profile id overrides. Exported so
// internal/build can build the same context for request-level external
// profiles, which the lineage walk never sees directly.
func BuildActivationContext(d *descriptor.Descriptor, req *descriptor.BuildRequest) *descriptor.ActivationContext {
	ctx := descriptor.NewActivationContext()
	ctx.ProjectDirectory = d.ProjectDirectory
	for k, v := range d.Properties {
		ctx.ProjectProperties[k] = v
	}
	for k, v := range req.SystemProperties {
		ctx.SystemProperties[k] = v
	}
	for k, v := range req.UserProperties {
		ctx.UserProperties[k] = v
	}
	for _, id := range req.ActiveProfileIDs {
		ctx.ActiveIDs[id] = true
	}
	for _, id := range req.InactiveProfileIDs {
		ctx.InactiveIDs[id] = true
	}
	return ctx
}

// resolveParent implements the local-vs-external split of SPEC_FULL.md
// §4.6.1: a relativePath-declared local candidate is only accepted if its
// own coordinates match the declared parent's groupId/artifactId and its
// version satisfies the declared version or range; a candidate that fails
// either check is rejected (WARNING) in favor of workspace, then
// repository, resolution against the declared coordinates.
func (w *Walker) resolveParent(ctx context.Context, id string, child *descriptor.Descriptor, childSrc descriptor.Source, req *descriptor.BuildRequest, problems *problem.Collector) (*descriptor.Descriptor, descriptor.Source, error) {
	parentRef := child.Parent
	declared := parentRef.Coordinates

	if parentRef.RelativePath != "" {
		if related, ok := childSrc.(descriptor.RelatableSource); ok {
			if localSrc := related.GetRelatedSource(parentRef.RelativePath); localSrc != nil {
				localRaw := w.readLocalCandidate(ctx, localSrc, req, problems)
				if localRaw != nil {
					if !matchesParentGA(localRaw, declared) {
						problems.Add(problem.Problem{
							Severity: problem.Warning,
							Source:   id,
							Message: fmt.Sprintf("local parent at %s has coordinates %s, not the declared parent %s; resolving externally",
								localSrc.Location(), localRaw.EffectiveCoordinates().ModelID(), declared.ModelID()),
						})
					} else if accepted, reason := localVersionAccepted(parentRef, localRaw); !accepted {
						problems.Add(problem.Problem{
							Severity: problem.Warning,
							Source:   id,
							Message:  fmt.Sprintf("local parent at %s rejected: %s; resolving externally", localSrc.Location(), reason),
						})
					} else {
						return localRaw, localSrc, nil
					}
				}
			}
		}
	}

	if ws, ok := req.ModelResolver.(descriptor.WorkspaceModelResolver); ok {
		if wsSrc, found := ws.ResolveWorkspace(ctx, declared); found {
			raw, err := w.readExternalParent(ctx, declared, wsSrc, req, problems)
			if err != nil {
				return nil, nil, err
			}
			return raw, wsSrc, nil
		}
	}

	// Check the RAW cache before calling the resolver at all: once a
	// coordinate-addressed parent has been resolved and cached once,
	// re-resolving it on a later build of the same request wastes exactly
	// the repository round-trip the cache exists to avoid (§4.4's
	// idempotence property). A cache hit here has no associated Source —
	// the caller only needs one to resolve a further relativePath-declared
	// grandparent, an edge case repository-addressed ancestors don't hit.
	if cached, ok := req.ModelCache.Get(ctx, declared, descriptor.RawModelTag); ok {
		return cached, nil, nil
	}

	extSrc, err := req.ModelResolver.Resolve(ctx, declared)
	if err != nil {
		return nil, nil, err
	}
	raw, err := w.readExternalParent(ctx, declared, extSrc, req, problems)
	if err != nil {
		return nil, nil, err
	}
	return raw, extSrc, nil
}

// readLocalCandidate reads a relativePath-resolved source without
// consulting or populating the coordinate-keyed RAW cache (a local
// candidate's coordinates are not known until after it is parsed) and
// without failing the walk if it cannot be read — a broken relativePath
// just falls through to external resolution. FileReader.Read has already
// recorded any parse problem against the collector.
func (w *Walker) readLocalCandidate(ctx context.Context, src descriptor.Source, req *descriptor.BuildRequest, problems *problem.Collector) *descriptor.Descriptor {
	fileModel, err := w.FileReader.Read(ctx, src, req.ValidationLevel, req.LocationTracking, nil, problems)
	if err != nil {
		return nil
	}
	pomFile := ""
	if _, ok := src.(descriptor.RelatableSource); ok {
		pomFile = src.Location()
	}
	return w.RawBuilder.Build(ctx, src, fileModel, pomFile, req.LocationTracking, nil, problems)
}

// readExternalParent reads a coordinate-resolved source, consulting the
// RAW cache only when src is a descriptor.RepositorySource carrying real
// coordinates — the marker §4.6.1 uses to decide a cached entry is safe to
// reuse without re-running local relativePath/version-skew rules, since
// the source was addressed by the same coordinates this cache is keyed by.
func (w *Walker) readExternalParent(ctx context.Context, coords descriptor.Coordinates, src descriptor.Source, req *descriptor.BuildRequest, problems *problem.Collector) (*descriptor.Descriptor, error) {
	cacheable := isRepositoryAddressed(src)
	if cacheable {
		if cached, ok := req.ModelCache.Get(ctx, coords, descriptor.RawModelTag); ok {
			return cached, nil
		}
	}

	// nil cache on these two calls: this method already gates the RAW
	// cache itself on isRepositoryAddressed, a narrower and more correct
	// policy than RawBuilder.Build's own EffectiveCoordinates-based gate
	// would apply on its own.
	fileModel, err := w.FileReader.Read(ctx, src, req.ValidationLevel, req.LocationTracking, nil, problems)
	if err != nil {
		return nil, err
	}
	pomFile := ""
	if _, ok := src.(descriptor.RelatableSource); ok {
		pomFile = src.Location()
	}

	raw := w.RawBuilder.Build(ctx, src, fileModel, pomFile, req.LocationTracking, nil, problems)
	if cacheable {
		req.ModelCache.Put(ctx, coords, descriptor.RawModelTag, raw)
	}
	return raw, nil
}

// isRepositoryAddressed reports whether src was resolved from a
// coordinate-based lookup rather than a local relativePath hop: it must
// implement descriptor.RepositorySource and carry non-zero coordinates,
// since a relativePath-resolved source of the same concrete type reports
// zero-value coordinates.
func isRepositoryAddressed(src descriptor.Source) bool {
	rs, ok := src.(descriptor.RepositorySource)
	return ok && rs.Coordinates() != (descriptor.Coordinates{})
}

// matchesParentGA reports whether candidate's own groupId/artifactId match
// the declared parent's — a local relativePath hop can land on an
// unrelated descriptor entirely.
func matchesParentGA(candidate *descriptor.Descriptor, declared descriptor.Coordinates) bool {
	c := candidate.EffectiveCoordinates()
	return c.GroupID == declared.GroupID && c.ArtifactID == declared.ArtifactID
}

// localVersionAccepted checks a local parent candidate's version against
// the declared parent version or range, without adding any problem itself
// — the caller decides whether rejection is a warning-and-fallback.
func localVersionAccepted(parentRef *descriptor.ParentReference, candidate *descriptor.Descriptor) (bool, string) {
	declared := parentRef.Version
	actualVersion := candidate.EffectiveCoordinates().Version

	if strings.Contains(declared, "${") {
		return false, fmt.Sprintf("declared parent version %q is not a constant", declared)
	}

	if isVersionRange(declared) {
		rangeExpr, err := mavenRangeToSemverRange(declared)
		if err != nil {
			return false, "invalid parent version range: " + declared
		}
		rng, err := semver.ParseRange(rangeExpr)
		if err != nil {
			return false, "invalid parent version range: " + declared
		}
		actual, err := semver.Parse(normalizeSemver(actualVersion))
		if err != nil {
			return false, "local parent version is not a semantic version: " + actualVersion
		}
		if !rng(actual) {
			return false, fmt.Sprintf("local parent version %s does not satisfy declared range %s", actualVersion, declared)
		}
		return true, ""
	}

	if declared != "" && declared != actualVersion {
		return false, fmt.Sprintf("local parent version %s differs from declared version %s", actualVersion, declared)
	}
	return true, ""
}

// checkVersion enforces invariant 5 (parent version range containment)
// and the "version must be a constant" policy: an uninterpolated
// expression in a parent version declaration is rejected outright, a
// version range is checked for containment against the resolved parent's
// actual version, and a literal mismatch is reported as a skew warning
// rather than a hard failure.
func checkVersion(childID string, parentRef *descriptor.ParentReference, resolvedParent *descriptor.Descriptor, problems *problem.Collector) {
	declared := parentRef.Version
	if strings.Contains(declared, "${") {
		problems.Add(problem.Problem{
			Severity: problem.Fatal,
			Source:   childID,
			Message:  fmt.Sprintf("'parent.version' must be a constant, got %q", declared),
		})
		return
	}

	if isVersionRange(declared) {
		rangeExpr, err := mavenRangeToSemverRange(declared)
		if err != nil {
			problems.Add(problem.Problem{Severity: problem.Error, Source: childID, Message: "invalid parent version range: " + declared, Err: err})
			return
		}
		rng, err := semver.ParseRange(rangeExpr)
		if err != nil {
			problems.Add(problem.Problem{Severity: problem.Error, Source: childID, Message: "invalid parent version range: " + declared, Err: err})
			return
		}
		actual, err := semver.Parse(normalizeSemver(resolvedParent.Version))
		if err != nil {
			problems.Add(problem.Problem{Severity: problem.Warning, Source: childID, Message: "resolved parent version is not a semantic version: " + resolvedParent.Version})
			return
		}
		if !rng(actual) {
			problems.Add(problem.Problem{
				Severity: problem.Error,
				Source:   childID,
				Message:  fmt.Sprintf("resolved parent version %s does not satisfy declared range %s", resolvedParent.Version, declared),
			})
		}
		return
	}

	if declared != "" && declared != resolvedParent.Version {
		problems.Add(problem.Problem{
			Severity: problem.Warning,
			Source:   childID,
			Message:  fmt.Sprintf("declared parent version %s differs from resolved parent version %s", declared, resolvedParent.Version),
		})
	}
}

func isVersionRange(v string) bool {
	return strings.HasPrefix(v, "[") || strings.HasPrefix(v, "(")
}

// normalizeSemver pads a Maven-style "1.0" or "1" version out to the
// three-component form blang/semver requires.
func normalizeSemver(v string) string {
	parts := strings.Split(v, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts[:3], ".")
}

// mavenRangeToSemverRange translates a Maven-style interval range such as
// "[1.0,2.0)" or "(,2.0]" or "[1.0]" into the comparison-operator syntax
// blang/semver/v4's ParseRange expects.
func mavenRangeToSemverRange(v string) (string, error) {
	if len(v) < 2 {
		return "", fmt.Errorf("lineage: malformed version range %q", v)
	}
	lowInclusive := v[0] == '['
	highInclusive := v[len(v)-1] == ']'
	inner := v[1 : len(v)-1]

	if !strings.Contains(inner, ",") {
		version := normalizeSemver(strings.TrimSpace(inner))
		return "=" + version, nil
	}

	parts := strings.SplitN(inner, ",", 2)
	low := strings.TrimSpace(parts[0])
	high := strings.TrimSpace(parts[1])

	var clauses []string
	if low != "" {
		op := ">="
		if !lowInclusive {
			op = ">"
		}
		clauses = append(clauses, op+normalizeSemver(low))
	}
	if high != "" {
		op := "<="
		if !highInclusive {
			op = "<"
		}
		clauses = append(clauses, op+normalizeSemver(high))
	}
	if len(clauses) == 0 {
		return "", fmt.Errorf("lineage: version range %q has neither bound", v)
	}
	return strings.Join(clauses, " "), nil
}
