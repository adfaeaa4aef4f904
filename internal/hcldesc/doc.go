// Package hcldesc implements the default descriptor.ModelProcessor:
// descriptors are authored as HCL documents built around a top-level
// `descriptor "project" { ... }` block, decoded with hashicorp/hcl/v2's
// gohcl package into the types in internal/descriptor, with typed leaves
// (plugin configuration) represented as go-cty values
// until the moment they are folded into plain Go data.
//
// Read implements the strict/lenient distinction component C3 needs:
// called with strict=true it returns the first parse or decode diagnostic
// as a Go error; called with strict=false it downgrades the same
// diagnostics to WARNING problems and returns whatever partial model HCL
// still managed to decode, exactly as hashicorp/hcl's own
// hcl.Diagnostics.HasErrors() is consulted.
package hcldesc
