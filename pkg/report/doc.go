// Package report renders pipeline summaries for people and for tools.
//
// Renderer prints a styled per-axis table to a terminal. WriteYAML emits
// the same summary as a stable YAML document for CI and scripts.
package report
