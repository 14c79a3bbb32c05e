// Package manifest builds and serializes the resource collection documents
// (Qt .qrc files) that list the logical paths fed to the bundle compiler.
//
// A manifest is an ordered list of paths. Order follows the directory walk
// and is stable within one run; it is not significant for correctness.
package manifest
