// Package modelcache implements the tagged model cache (component C2):
// a keyed store that remembers, per set of coordinates, the file model,
// the raw model, and any model pulled in to satisfy a dependency
// management import, so a lineage that is visited more than once (a
// diamond dependency on a common parent, or two imports pointing at the
// same bom) reads and parses it only once.
//
// The store is ephemeral and request-scoped: a fresh Store is created per
// top-level build and discarded with it, the same lifecycle inmemorystore
// gives node execution state in the sibling engine this module grew out
// of. It uses sync.Map for the same reason: the key space (every
// coordinate touched by a build) is write-once and read-many, with no
// cross-key contention to amortize behind a single mutex.
package modelcache
