// Package registry provides a generic, type-safe registry used for
// artifact adapters and for process-wide, load-once bundle registration.
// Items are never removed once registered.
package registry
