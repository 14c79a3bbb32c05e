// Package types defines the core types used throughout iconpack.
// This includes the closed Style and Size enumerations, the IconAxis that
// addresses one compiled bundle, the IconSelector that addresses one icon
// variant, and the LogicalPath that joins the source tree, the manifest and
// the compiled bundle's lookup table.
package types
