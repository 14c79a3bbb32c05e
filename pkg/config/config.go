package config

import (
	"time"

	"github.com/arthur-debert/iconpack/pkg/compiler"
	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/patch"
	"github.com/arthur-debert/iconpack/pkg/rcc"
	"github.com/arthur-debert/iconpack/pkg/types"
)

// Config is the complete iconpack configuration
type Config struct {
	Source   Source   `koanf:"source" toml:"source"`
	Compiler Compiler `koanf:"compiler" toml:"compiler"`
	Package  Package  `koanf:"package" toml:"package"`
	Build    Build    `koanf:"build" toml:"build"`
	Extract  Extract  `koanf:"extract" toml:"extract"`
	Bundle   Bundle   `koanf:"bundle" toml:"bundle"`
}

// Source locates the upstream icon corpus
type Source struct {
	Root       string `koanf:"root" toml:"root"`
	Fetch      bool   `koanf:"fetch" toml:"fetch"`
	Repository string `koanf:"repository" toml:"repository"`
	SparsePath string `koanf:"sparse_path" toml:"sparse_path"`
	Ref        string `koanf:"ref" toml:"ref"`
}

// Compiler selects and tunes the bundle compiler
type Compiler struct {
	Backend string   `koanf:"backend" toml:"backend"`
	Command string   `koanf:"command" toml:"command"`
	Args    []string `koanf:"args" toml:"args"`
	Timeout Duration `koanf:"timeout" toml:"timeout"`
	Adapter string   `koanf:"adapter" toml:"adapter"`
}

// Package describes the generated icon package
type Package struct {
	Name        string   `koanf:"name" toml:"name"`
	Root        string   `koanf:"root" toml:"root"`
	FacadeFiles []string `koanf:"facade_files" toml:"facade_files"`
}

// Build selects the axes a build covers
type Build struct {
	Styles      []string `koanf:"styles" toml:"styles"`
	Sizes       []int    `koanf:"sizes" toml:"sizes"`
	Concurrency int      `koanf:"concurrency" toml:"concurrency"`
}

// Extract selects the axes an extraction covers when no flag names them
type Extract struct {
	Styles []string `koanf:"styles" toml:"styles"`
	Sizes  []int    `koanf:"sizes" toml:"sizes"`
}

// Bundle tunes native bundle encoding
type Bundle struct {
	Compress string `koanf:"compress" toml:"compress"`
}

// Duration is a time.Duration written as "5m" in TOML
type Duration time.Duration

// MarshalText implements encoding.TextMarshaler
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Axes returns the cross product of build.styles and build.sizes
func (c *Config) Axes() ([]types.IconAxis, error) {
	styles, err := parseStyles(c.Build.Styles)
	if err != nil {
		return nil, err
	}
	sizes, err := parseSizes(c.Build.Sizes)
	if err != nil {
		return nil, err
	}
	return types.CrossAxes(styles, sizes), nil
}

// ExtractAxes returns extract.styles and extract.sizes, parsed
func (c *Config) ExtractAxes() ([]types.Style, []types.Size, error) {
	styles, err := parseStyles(c.Extract.Styles)
	if err != nil {
		return nil, nil, err
	}
	sizes, err := parseSizes(c.Extract.Sizes)
	if err != nil {
		return nil, nil, err
	}
	return styles, sizes, nil
}

func parseStyles(names []string) ([]types.Style, error) {
	styles := make([]types.Style, 0, len(names))
	for _, s := range names {
		st, err := types.ParseStyle(s)
		if err != nil {
			return nil, err
		}
		styles = append(styles, st)
	}
	return styles, nil
}

func parseSizes(values []int) ([]types.Size, error) {
	sizes := make([]types.Size, 0, len(values))
	for _, n := range values {
		sz, err := types.ParseSize(n)
		if err != nil {
			return nil, err
		}
		sizes = append(sizes, sz)
	}
	return sizes, nil
}

// Compression maps bundle.compress to an encoder setting
func (c *Config) Compression() (rcc.Compression, error) {
	switch c.Bundle.Compress {
	case "", "zlib":
		return rcc.CompressZlib, nil
	case "zstd":
		return rcc.CompressZstd, nil
	case "none":
		return rcc.CompressNone, nil
	}
	return 0, errors.Newf(errors.ErrConfigValid, "unknown bundle.compress %q", c.Bundle.Compress).
		WithDetail("allowed", "none, zlib, zstd")
}

// Validate checks values that cannot be expressed by types alone
func (c *Config) Validate() error {
	switch c.Compiler.Backend {
	case compiler.BackendExternal, compiler.BackendNative:
	default:
		return errors.Newf(errors.ErrConfigValid, "unknown compiler.backend %q", c.Compiler.Backend).
			WithDetail("allowed", compiler.BackendExternal+", "+compiler.BackendNative)
	}
	if c.Compiler.Backend == compiler.BackendExternal && c.Compiler.Command == "" {
		return errors.New(errors.ErrConfigValid, "compiler.command is required for the external backend")
	}
	if c.Compiler.Timeout < 0 {
		return errors.New(errors.ErrConfigValid, "compiler.timeout cannot be negative")
	}
	if _, err := patch.Lookup(c.Compiler.Adapter); err != nil {
		return err
	}
	if c.Package.Name == "" {
		return errors.New(errors.ErrConfigValid, "package.name is required")
	}
	if c.Build.Concurrency < 1 {
		return errors.Newf(errors.ErrConfigValid, "build.concurrency must be at least 1, got %d", c.Build.Concurrency)
	}
	if _, err := c.Axes(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid build axes")
	}
	if _, _, err := c.ExtractAxes(); err != nil {
		return errors.Wrap(err, errors.ErrConfigValid, "invalid extract axes")
	}
	if _, err := c.Compression(); err != nil {
		return err
	}
	return nil
}
