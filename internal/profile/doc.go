// Package profile implements component C5, the ProfileEngine: assembling
// an ActivationContext, selecting which profiles apply to it (delegated to
// a descriptor.ProfileSelector), and injecting an active profile's
// properties, dependencies, dependency management, build, and repository
// declarations into the descriptor being built.
//
// Activation and injection are kept separate per SPEC_FULL.md §6: this
// package supplies the default descriptor.ProfileInjector, and calls out
// to whatever descriptor.ProfileSelector the build request carries for the
// activation decision itself.
package profile
