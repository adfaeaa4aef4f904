// Package descriptor defines the format-agnostic model of a project
// descriptor: the hierarchical declaration of a project's identity,
// dependencies, build configuration, and profiles that the rest of this
// module reads, inherits, interpolates, and validates.
//
// A Descriptor is built in three stages:
//
//   - FileModel: exactly what the parser produced, unmodified.
//   - RawModel: the file model after normalization and profile injection,
//     but before parent inheritance is applied.
//   - EffectiveModel: the fully resolved descriptor, after inheritance,
//     interpolation, management injection, and validation.
//
// This package holds only data and the narrow collaborator interfaces
// (see interfaces.go); the algorithms that produce and consume these types
// live in the sibling packages named in SPEC_FULL.md.
package descriptor
