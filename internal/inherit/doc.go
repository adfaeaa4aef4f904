// Package inherit implements component C7, the InheritanceAssembler:
// composing a descriptor from its resolved ancestor chain, ancestor-first,
// child-wins. AssembleChain also runs the plugin-version audit: as the
// fold proceeds from the super-descriptor down to the leaf, the first
// version seen for each plugin key (direct or managed) is remembered, and
// a WARNING is raised only for a plugin that never had a version from any
// ancestor or the leaf itself.
package inherit
