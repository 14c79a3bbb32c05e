// Package patch rewrites compiled resource artifacts so they load under
// several GUI binding libraries without recompilation.
//
// The rewrite depends on the compiler's output format, so it lives behind a
// versioned Adapter. When the compiler's output changes, add a new adapter
// and select it by version in configuration.
package patch
