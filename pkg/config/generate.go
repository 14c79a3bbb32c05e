package config

import (
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	toml "github.com/pelletier/go-toml/v2"
)

// Marshal renders the effective configuration as TOML
func Marshal(cfg *Config) ([]byte, error) {
	out, err := toml.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to render configuration")
	}
	return out, nil
}

// GenerateConfigContent returns the defaults with every value commented
// out, as a starting point for iconpack.toml
func GenerateConfigContent() string {
	return commentOutConfigValues(string(defaultConfig))
}

// commentOutConfigValues comments out assignment lines, keeping blank
// lines, comments and section headers
func commentOutConfigValues(content string) string {
	lines := strings.Split(content, "\n")
	result := make([]string, 0, len(lines))

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "",
			strings.HasPrefix(trimmed, "#"),
			strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]"):
			result = append(result, line)
		default:
			result = append(result, "# "+line)
		}
	}

	return strings.Join(result, "\n")
}
