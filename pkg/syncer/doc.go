// Package syncer reconciles dependency pins between two documents on disk:
// it reads both files, merges the source's dependency sections into the
// target, writes the target back and renders a console report.
package syncer
