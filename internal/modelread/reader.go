package modelread

import (
	"context"
	"fmt"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/problem"
)

// FileReader implements component C3: read a Source into a file model,
// retrying in lenient mode on a strict-parse failure.
type FileReader struct {
	Processor descriptor.ModelProcessor
}

// NewFileReader returns a FileReader backed by processor.
func NewFileReader(processor descriptor.ModelProcessor) *FileReader {
	return &FileReader{Processor: processor}
}

// Read parses src with strict = (validationLevel >= V20). If a strict
// parse fails, it retries once leniently and, on success, records a
// Malformed-POM problem — ERROR for a file-backed source, WARNING
// otherwise — instead of failing the build outright; the lenient retry's
// own diagnostics are not recorded, so that problem is the only one the
// fallback adds. A parse that fails
// outright at a level below V20 (no retry attempted, since it was already
// lenient), or that still fails on the lenient retry, is FATAL.
//
// cache, when non-nil, is consulted and populated under the (source,
// FILEMODEL) key per §4.3 steps 1 and 6 — src's own coordinates aren't
// known until the parse this cache exists to avoid repeating has already
// happened once.
func (r *FileReader) Read(ctx context.Context, src descriptor.Source, validationLevel problem.Gate, locationTracking bool, cache descriptor.Cache, problems *problem.Collector) (*descriptor.Descriptor, error) {
	log := ctxlog.FromContext(ctx)
	strict := validationLevel >= problem.V20

	if cache != nil {
		if cached, ok := cache.GetBySource(ctx, src.Location(), descriptor.FileModelTag); ok {
			return cached, nil
		}
	}

	d, err := r.Processor.Read(ctx, src, strict, locationTracking, problems)
	if err == nil {
		if cache != nil {
			cache.PutBySource(ctx, src.Location(), descriptor.FileModelTag, d)
		}
		return d, nil
	}

	if !strict {
		problems.Add(problem.Problem{
			Severity: problem.Fatal,
			Source:   src.Location(),
			Message:  fmt.Sprintf("Non-parseable POM %s: %s", src.Location(), err),
			Err:      err,
		})
		return nil, err
	}

	log.Warn("modelread: strict parse failed, retrying leniently", "source", src.Location(), "error", err)
	lenient, lerr := r.Processor.Read(ctx, src, false, locationTracking, problem.NewCollector(validationLevel))
	if lerr != nil {
		problems.Add(problem.Problem{
			Severity: problem.Fatal,
			Source:   src.Location(),
			Message:  fmt.Sprintf("Non-parseable POM %s: %s", src.Location(), err),
			Err:      err,
		})
		return nil, err
	}

	severity := problem.Warning
	if _, isFile := src.(descriptor.RelatableSource); isFile {
		severity = problem.Error
	}
	problems.Add(problem.Problem{
		Severity: severity,
		Gate:     problem.V20,
		Source:   src.Location(),
		Message:  fmt.Sprintf("Malformed POM %s: %s", src.Location(), err),
		Err:      err,
	})

	if cache != nil {
		cache.PutBySource(ctx, src.Location(), descriptor.FileModelTag, lenient)
	}
	return lenient, nil
}
