// Package types defines the charter document model: document types, phases,
// tags, short codes, and the errors surfaced at the public boundary.
//
// The markdown files on disk are the source of truth for every value defined
// here; the index database only caches them and can be rebuilt from the file
// tree at any time.
package types
