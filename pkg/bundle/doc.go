// Package bundle loads compiled icon bundles and serves their content by
// logical path.
//
// A Registry holds at most one loaded bundle per axis. EnsureLoaded is
// idempotent: concurrent calls for the same axis load once and share the
// result, calls for different axes proceed independently, and a failed
// load is retried on the next call. Bundles are never unloaded.
package bundle
