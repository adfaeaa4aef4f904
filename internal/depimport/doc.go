// Package depimport implements component C9, the ImportResolver:
// expanding type=pom/scope=import entries in a descriptor's dependency
// management into the management entries they point at. Each import
// triggers a full nested sub-build of the imported descriptor (not just a
// raw read), since the imported descriptor may itself import further
// management sets; import cycles are detected with a push/pop stack of
// in-flight import ModelIDs carried on the BuildRequest, the same
// invariant the original enforces by walking an importIds list.
package depimport
