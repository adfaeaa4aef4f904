// Package fsresolve implements the default descriptor.ModelResolver and
// descriptor.WorkspaceModelResolver: a filesystem-backed repository, laid
// out as <repoRoot>/<groupId>/<artifactId>/<version>/descriptor.hcl, plus
// a workspace resolver that finds sibling modules by coordinates in a
// module index before
// falling back to the repository lookup, mirroring the teacher's
// local/workspace-vs-remote split between localsession and a registry
// lookup.
package fsresolve
