// Package changelog provides the product-update catalogue behind the
// "what's new" panel.
//
// This package implements:
//   - changelog.yaml parsing and validation
//   - Semantic version ordering of entries
//   - Grouping of entries by version or release date for display
//   - Embedded catalogue support via go:embed, with an optional served source
//   - Terminal and markdown rendering for the CLI
//
// A Catalogue is immutable once constructed. Entries are kept in the order
// the content source supplies them, which is newest first.
package changelog
