// Package activation implements the default descriptor.ProfileSelector:
// evaluation of a Profile's Activation predicate against an
// ActivationContext. Supported conditions are activeByDefault, a property
// name/value (or negated-value) test, and a file existence/absence test
// resolved relative to the context's project directory.
package activation
