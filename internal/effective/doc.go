// Package effective implements component C10, the EffectiveBuilder: the
// final assembly stage that turns an inherited, interpolated descriptor
// into the effective model handed back to a build's caller. It applies
// path translation, plugin-management injection, fires the
// BUILD_EXTENSIONS_ASSEMBLED listener event, injects lifecycle bindings
// and dependency management (importing transitive management sets along
// the way), expands plugin/report configuration defaults, runs final
// validation, and reconfigures the resolver with the fully-resolved
// repository list using replace=true — the second of the two resolver
// reconfiguration call sites named in SPEC_FULL.md's supplemented
// features (the first is in internal/lineage, with replace=false).
package effective
