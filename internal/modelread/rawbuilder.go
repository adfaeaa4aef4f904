package modelread

import (
	"context"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// RawBuilder implements component C4: turns a file model into a raw
// model, ready for profile activation and the lineage walk.
type RawBuilder struct {
	Processor  descriptor.ModelProcessor
	Normalizer descriptor.ModelNormalizer
	Validator  descriptor.ModelValidator
}

// NewRawBuilder returns a RawBuilder wired to the given collaborators.
func NewRawBuilder(processor descriptor.ModelProcessor, normalizer descriptor.ModelNormalizer, validator descriptor.ModelValidator) *RawBuilder {
	return &RawBuilder{Processor: processor, Normalizer: normalizer, Validator: validator}
}

// Build clones fileModel, optionally enriches its Locations with a second,
// strict, location-tracked parse of src (the "transformed-source merge"),
// normalizes it, and validates it at the Base gate. The merge only runs
// when pomFile is non-empty and locationTracking is enabled: per
// DESIGN.md's Open Question decision, with location tracking off there is
// nothing for the merge to contribute.
//
// cache, when non-nil, is consulted and populated under (coordinates, RAW)
// per §4.4 — keyed by fileModel's own EffectiveCoordinates, which are
// already known at this point even though the raw model itself is not yet
// built. A fileModel with no coordinates at all (nothing to key by) skips
// caching entirely rather than colliding on the zero value.
func (b *RawBuilder) Build(ctx context.Context, src descriptor.Source, fileModel *descriptor.Descriptor, pomFile string, locationTracking bool, cache descriptor.Cache, problems *problem.Collector) *descriptor.Descriptor {
	coords := fileModel.EffectiveCoordinates()
	cacheable := cache != nil && coords != (descriptor.Coordinates{})
	if cacheable {
		if cached, ok := cache.Get(ctx, coords, descriptor.RawModelTag); ok {
			return cached
		}
	}

	log := ctxlog.FromContext(ctx)
	raw := fileModel.Clone()
	raw.PomFile = pomFile

	if pomFile != "" && locationTracking {
		b.mergeLocations(ctx, src, raw, problems)
	}

	b.Normalizer.Normalize(raw)
	b.Validator.Validate(ctx, raw, problem.Base, problems)

	log.Debug("modelread: raw model built", "modelID", raw.ModelID())

	if cacheable {
		cache.Put(ctx, coords, descriptor.RawModelTag, raw)
	}
	return raw
}

// mergeLocations re-reads src in strict, location-tracked mode purely to
// attach richer InputLocation data to raw; the data fields themselves are
// left untouched (a restricted merge — locations only, never values).
func (b *RawBuilder) mergeLocations(ctx context.Context, src descriptor.Source, raw *descriptor.Descriptor, problems *problem.Collector) {
	transformed, err := b.Processor.Read(ctx, src, true, true, problems)
	if err != nil || transformed == nil || transformed.Locations == nil {
		return
	}
	if raw.Locations == nil {
		raw.Locations = map[string]*descriptor.InputLocation{}
	}
	for path, loc := range transformed.Locations {
		raw.Locations[path] = loc
	}
}

var _ interface {
	Build(ctx context.Context, src descriptor.Source, fileModel *descriptor.Descriptor, pomFile string, locationTracking bool, cache descriptor.Cache, problems *problem.Collector) *descriptor.Descriptor
} = (*RawBuilder)(nil)
