package build

import (
	"context"
	"fmt"

	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// BuildRawModel runs only C3 (FileReader) and C4 (RawBuilder) — reading
// and validating a single descriptor without walking its parent chain,
// assembling inheritance, or importing dependency management. Grounded in
// DefaultModelBuilder.buildRawModel from the original this core was
// distilled from: a value-or-problems result rather than an exception, so
// a caller inspecting a single descriptor's shape never pays for the rest
// of the pipeline.
func (b *Builder) BuildRawModel(ctx context.Context, src descriptor.Source, validationLevel problem.Gate, locationTracking bool) (*descriptor.Descriptor, []problem.Problem, error) {
	problems := problem.NewCollector(validationLevel)

	// No shared descriptor.Cache is available at this entry point — it
	// builds a single descriptor outside any descriptor.BuildRequest, so
	// neither the FILEMODEL nor the RAW read here is cached.
	fileModel, err := b.FileReader.Read(ctx, src, validationLevel, locationTracking, nil, problems)
	if err != nil {
		return nil, problems.Snapshot(), fmt.Errorf("build: reading raw model for %s: %w", src.Location(), err)
	}

	pomFile := ""
	if _, ok := src.(descriptor.RelatableSource); ok {
		pomFile = src.Location()
	}
	raw := b.RawBuilder.Build(ctx, src, fileModel, pomFile, locationTracking, nil, problems)

	snap := problems.Snapshot()
	if problems.HasFatalErrors() {
		return raw, snap, problem.NewBuildFailedError(snap)
	}
	return raw, snap, nil
}
