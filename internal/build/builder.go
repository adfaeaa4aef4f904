package build

import (
	"context"
	"fmt"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/effective"
	"github.com/vk/dxmodel/internal/lineage"
	"github.com/vk/dxmodel/internal/modelread"
	"github.com/vk/dxmodel/internal/problem"
	"github.com/vk/dxmodel/internal/profile"
)

// Builder orchestrates C1-C10 behind the Build/Resume two-phase API.
type Builder struct {
	FileReader           *modelread.FileReader
	RawBuilder           *modelread.RawBuilder
	LineageWalker        *lineage.Walker
	InheritanceAssembler descriptor.InheritanceAssembler
	Interpolator         descriptor.ModelInterpolator
	EffectiveBuilder     *effective.Builder
}

// New returns a Builder wired to the given collaborators.
func New(fileReader *modelread.FileReader, rawBuilder *modelread.RawBuilder, walker *lineage.Walker, assembler descriptor.InheritanceAssembler, interpolator descriptor.ModelInterpolator, eff *effective.Builder) *Builder {
	return &Builder{
		FileReader:           fileReader,
		RawBuilder:           rawBuilder,
		LineageWalker:        walker,
		InheritanceAssembler: assembler,
		Interpolator:         interpolator,
		EffectiveBuilder:     eff,
	}
}

// Build runs phase 1 (read, raw-build, the lineage walk and its per-node
// profile activation/injection) and, unless req.TwoPhaseBuilding is set,
// continues straight into phase 2 (inheritance assembly, interpolation,
// effective-model assembly). A two-phase caller inspects the returned
// result — typically to mutate properties the lineage resolved — then
// calls Resume to finish the build.
func (b *Builder) Build(ctx context.Context, req *descriptor.BuildRequest) (*descriptor.BuildResult, error) {
	log := ctxlog.FromContext(ctx)
	problems := problem.NewCollector(req.ValidationLevel)
	result := descriptor.NewBuildResult()

	fileModel, err := b.FileReader.Read(ctx, req.Source, req.ValidationLevel, req.LocationTracking, req.ModelCache, problems)
	if err != nil {
		result.Problems = problems.Snapshot()
		return result, fmt.Errorf("build: reading %s: %w", req.Source.Location(), err)
	}
	result.FileModel = fileModel

	pomFile := ""
	if _, ok := req.Source.(descriptor.RelatableSource); ok {
		pomFile = req.Source.Location()
	}
	leafRaw := b.RawBuilder.Build(ctx, req.Source, fileModel, pomFile, req.LocationTracking, req.ModelCache, problems)
	result.RawModel = leafRaw
	problems.SetRootModel(leafRaw.ModelID())

	if problems.HasFatalErrors() {
		result.Problems = problems.Snapshot()
		return result, problem.NewBuildFailedError(problems.Snapshot())
	}

	chain, err := b.LineageWalker.Walk(ctx, leafRaw, req.Source, req, result, problems)
	if err != nil {
		result.Problems = problems.Snapshot()
		return result, fmt.Errorf("build: walking lineage of %s: %w", leafRaw.ModelID(), err)
	}

	b.injectExternalProfiles(ctx, chain[0], req, result, problems)

	if problems.HasErrors() {
		result.Problems = problems.Snapshot()
		return result, problem.NewBuildFailedError(problems.Snapshot())
	}

	if req.TwoPhaseBuilding {
		log.Debug("build: phase 1 complete, two-phase building requested", "modelID", leafRaw.ModelID())
		result.Problems = problems.Snapshot()
		return result, nil
	}

	return b.continuePhase2(ctx, req, result, chain, problems)
}

// Resume completes phase 2 of a build whose phase 1 stopped early because
// req.TwoPhaseBuilding was set. prior's lineage (ModelIDs + RawModels) is
// replayed in order to reconstruct the chain inheritance assembly needs.
func (b *Builder) Resume(ctx context.Context, req *descriptor.BuildRequest, prior *descriptor.BuildResult) (*descriptor.BuildResult, error) {
	problems := problem.NewCollector(req.ValidationLevel)
	problems.AddAll(prior.Problems)

	chain := make([]*descriptor.Descriptor, 0, len(prior.ModelIDs))
	for _, id := range prior.ModelIDs {
		d, ok := prior.RawModels[id]
		if !ok {
			return prior, fmt.Errorf("build: resume: missing raw model for %s", id)
		}
		chain = append(chain, d)
	}
	if len(chain) == 0 {
		return prior, fmt.Errorf("build: resume: prior result has no lineage to resume from")
	}

	return b.continuePhase2(ctx, req, prior, chain, problems)
}

func (b *Builder) continuePhase2(ctx context.Context, req *descriptor.BuildRequest, result *descriptor.BuildResult, chain []*descriptor.Descriptor, problems *problem.Collector) (*descriptor.BuildResult, error) {
	assembled := b.InheritanceAssembler.AssembleChain(ctx, chain, problems)

	interpolated, err := b.Interpolator.Interpolate(ctx, assembled, req.UserProperties, req.SystemProperties, problems)
	if err != nil {
		result.Problems = problems.Snapshot()
		return result, fmt.Errorf("build: interpolating %s: %w", assembled.ModelID(), err)
	}
	b.Interpolator.ReinterpolateParentVersion(ctx, interpolated, req.UserProperties, req.SystemProperties, problems)

	effectiveModel, err := b.EffectiveBuilder.Build(ctx, interpolated, req, problems)
	if err != nil {
		result.Problems = problems.Snapshot()
		return result, fmt.Errorf("build: assembling effective model for %s: %w", interpolated.ModelID(), err)
	}
	result.EffectiveModel = effectiveModel
	result.Problems = problems.Snapshot()

	if problems.HasErrors() {
		return result, problem.NewBuildFailedError(problems.Snapshot())
	}
	return result, nil
}

// injectExternalProfiles selects and injects req.ExternalProfiles into the
// leaf, after every pom profile in the lineage has already been injected,
// per SPEC_FULL.md §4.5's pom-profiles-first-then-external injection order.
func (b *Builder) injectExternalProfiles(ctx context.Context, leaf *descriptor.Descriptor, req *descriptor.BuildRequest, result *descriptor.BuildResult, problems *problem.Collector) {
	if len(req.ExternalProfiles) == 0 {
		return
	}
	activationCtx := lineage.BuildActivationContext(leaf, req)
	active := profile.SelectActive(ctx, req.ExternalProfiles, req.ProfileSelector, activationCtx, problems)
	result.ActiveExternalProfiles = active
	req.ProfileInjector.InjectProfiles(leaf, active, problems)
}

var _ descriptor.ModelBuilder = (*Builder)(nil)
