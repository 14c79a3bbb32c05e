// Package compiler turns a manifest and the files it references into a
// compiled resource artifact, then patches the artifact's binding import.
//
// Each call handles one axis and shares no state with other calls, so
// callers may compile axes concurrently.
package compiler
