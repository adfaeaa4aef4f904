// Package interpolate implements component C8: resolving ${expr}
// placeholders throughout a descriptor against the caller's user
// properties, its own properties, and the ambient system properties, in that
// priority order. It also re-interpolates a descriptor's parent version
// on its own once the main pass is done, since the parent block is read
// before the rest of the model's properties are known to exist.
package interpolate
