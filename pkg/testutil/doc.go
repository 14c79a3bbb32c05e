// Package testutil provides fixtures for testing iconpack components.
//
// Key components:
//   - Corpus: declarative builder for an icon source tree on disk
//   - WriteBundle: writes a compiled bundle artifact from in-memory files
//
// All fixtures live under t.TempDir() and are removed with the test.
package testutil
