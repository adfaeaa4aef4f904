// Package superdesc supplies the implicit super-descriptor: the root
// ancestor every lineage terminates at even when no descriptor in the
// lineage declares a parent. It plays the role the original's super POM
// plays for Maven builds, minus the parts tied to artifact execution.
package superdesc
