// Package build wires components C1 through C10 behind the two-phase
// Build/Resume API: Build runs file-reading, raw-model construction, and
// the lineage walk (stopping there when the request asks for two-phase
// building), Resume completes inheritance assembly, interpolation, and
// effective-model assembly. A standalone BuildRawModel entry point runs
// only the read-and-validate step, without touching lineage or inheritance
// at all.
package build
