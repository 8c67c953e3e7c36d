// Package yaml renders document trees back to structured text. Marshal is
// the block serializer used to persist documents; Layout flattens a mapping
// into indented single lines for console reports. Equal and Diff compare
// trees by content.
package yaml
