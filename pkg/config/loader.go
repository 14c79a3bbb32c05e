package config

import (
	_ "embed"
	"os"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// Names used to find configuration
const (
	FileName  = "iconpack.toml"
	EnvPrefix = "ICONPACK_"
)

// Load builds the configuration. configFile may be empty, in which case
// iconpack.toml in the working directory is used when present. overrides
// are dotted keys applied last, e.g. from command line flags.
func Load(configFile string, overrides map[string]interface{}) (*Config, error) {
	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(rawbytes.Provider(defaultConfig), toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load default configuration")
	}

	// 2. Config file
	path, explicit := configFile, configFile != ""
	if !explicit {
		path = FileName
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse configuration file").
				WithDetail("path", path)
		}
	} else if explicit {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "configuration file not found").
			WithDetail("path", path)
	}

	// 3. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment configuration")
	}

	// 4. Explicit overrides
	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply configuration overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.TextUnmarshallerHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps ICONPACK_COMPILER__TIMEOUT to compiler.timeout
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}
