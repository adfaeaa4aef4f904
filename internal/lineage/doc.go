// Package lineage implements component C6, the LineageWalker: walking a
// descriptor's parent chain from leaf to the implicit super-descriptor,
// resolving each parent either locally (via relativePath against the
// child's own source) or externally (via the request's ModelResolver),
// detecting cycles the way internal/dag's graph builder detects them in
// the teacher repo — an ordered visiting/visited set keyed by ModelID —
// and folding each ancestor's active profiles into the running raw model
// before descending further.
package lineage
