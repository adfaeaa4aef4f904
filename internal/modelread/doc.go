// Package modelread implements components C3 (FileReader) and C4
// (RawBuilder): reading a source into a file model with a strict-then-
// lenient fallback, and turning that file model into a raw model ready
// for profile activation and lineage walking.
//
// FileReader.Read parses strictly when the request's validation level has
// reached V20 and falls back to a lenient re-parse on failure, recording
// an ERROR for a file-backed source or a WARNING otherwise — mirroring
// the original's file-vs-non-file severity split for a recovered parse
// failure. A lenient parse that still fails, or a parse attempted at a
// validation level below V20 that fails outright, is FATAL.
//
// RawBuilder.Build clones the file model (so later mutation during
// inheritance can never corrupt the cached FILEMODEL entry), runs it
// through normalization, and — per the decision recorded in DESIGN.md —
// only attempts the transformed-source location-enrichment merge when
// both a concrete pomFile path and location tracking are present, since
// that merge exists solely to attach better InputLocations and has
// nothing to contribute with location tracking off.
package modelread
