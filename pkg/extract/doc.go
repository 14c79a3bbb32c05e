// Package extract produces minimal bundles holding only requested icons.
//
// For every axis touched by a selector set the extractor loads the full
// bundle, writes each requested variant to the output directory under its
// logical path, and compiles those files into a new bundle for the axis.
// Missing variants are logged and skipped; an axis where nothing resolved
// produces no artifact and reports ErrEmptyExtraction. Axis failures never
// stop other axes.
//
// One extraction at a time may write to an output directory. This is
// enforced with a lock file; a second caller gets ErrLocked.
package extract
