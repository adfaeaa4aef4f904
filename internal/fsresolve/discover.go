package fsresolve

import (
	"context"
	"fmt"

	"github.com/vk/dxmodel/internal/ctxlog"
	"github.com/vk/dxmodel/internal/descriptor"
	"github.com/vk/dxmodel/internal/fsutil"
	"github.com/vk/dxmodel/internal/problem"
)

// DescriptorExtension is the file suffix a workspace scan looks for.
const DescriptorExtension = ".hcl"

// DiscoverModules walks workspaceRoot for descriptor files and reads just
// enough of each (via processor) to index it by coordinates, the way a
// multi-module checkout's modules are found before any build runs.
// Descriptors that fail to parse are skipped with a warning rather than
// aborting the scan; one malformed sibling module should not prevent the
// rest of the workspace from being discovered.
func DiscoverModules(ctx context.Context, workspaceRoot string, processor descriptor.ModelProcessor) (map[descriptor.Coordinates]string, error) {
	paths, err := fsutil.FindFilesByExtension(workspaceRoot, DescriptorExtension)
	if err != nil {
		return nil, fmt.Errorf("fsresolve: scanning %s: %w", workspaceRoot, err)
	}

	log := ctxlog.FromContext(ctx)
	modules := make(map[descriptor.Coordinates]string, len(paths))
	for _, path := range paths {
		src := &fileSource{path: path}
		d, err := processor.Read(ctx, src, true, false, problem.NewCollector(problem.Base))
		if err != nil || d == nil {
			log.Warn("fsresolve: skipping unreadable workspace module", "path", path, "error", err)
			continue
		}
		modules[d.EffectiveCoordinates()] = path
	}
	return modules, nil
}
