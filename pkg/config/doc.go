// Package config loads iconpack configuration.
//
// Sources are layered, later ones winning: the embedded defaults, an
// iconpack.toml file (or the file named with --config), and ICONPACK_
// environment variables where a double underscore separates the section
// from the key.
package config
