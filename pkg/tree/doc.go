// Package tree implements the generic document model shared by the merge and
// rendering packages: an ordered mapping, a sequence and a scalar leaf. Trees
// are built from structured text with Parse, which preserves the declaration
// order of mapping keys.
package tree
