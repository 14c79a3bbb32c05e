package patch

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/registry"
)

// Adapter rewrites one artifact format
type Adapter interface {
	// Version identifies the artifact format the adapter understands
	Version() string
	// Patch returns the rewritten artifact or ErrPatchMismatch
	Patch(content []byte) ([]byte, error)
}

// DefaultAdapter is the adapter used when none is configured
const DefaultAdapter = "pyside-v1"

// Bindings lists the modules tried, in order, by the patched import
var Bindings = []string{"qtpy", "PySide6", "PySide2"}

var adapters = registry.New[Adapter]()

func init() {
	registry.MustRegister[Adapter](adapters, DefaultAdapter, NewImportAdapter(DefaultAdapter, "QtCore", Bindings))
}

// Register makes an adapter available by version
func Register(a Adapter) error {
	return adapters.Register(a.Version(), a)
}

// Lookup returns the adapter registered for version
func Lookup(version string) (Adapter, error) {
	a, err := adapters.Get(version)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "unknown artifact adapter %q", version).
			WithDetail("available", adapters.List())
	}
	return a, nil
}

// ImportAdapter replaces a single "from <binding> import <module>" line with
// a try/except chain over a list of bindings
type ImportAdapter struct {
	version     string
	pattern     *regexp.Regexp
	replacement []byte
}

// NewImportAdapter builds an adapter for the given module and binding order
func NewImportAdapter(version, module string, bindings []string) *ImportAdapter {
	return &ImportAdapter{
		version:     version,
		pattern:     regexp.MustCompile(`(?m)^from \w+ import ` + regexp.QuoteMeta(module) + `[ \t]*\r?$`),
		replacement: []byte(fallbackChain(module, bindings)),
	}
}

// Version implements Adapter
func (a *ImportAdapter) Version() string {
	return a.version
}

// Patch implements Adapter. The import line must occur exactly once.
func (a *ImportAdapter) Patch(content []byte) ([]byte, error) {
	matches := a.pattern.FindAllIndex(content, -1)
	if len(matches) != 1 {
		return nil, errors.Newf(errors.ErrPatchMismatch,
			"expected exactly one binding import line, found %d", len(matches)).
			WithDetail("adapter", a.version).
			WithDetail("matches", len(matches))
	}

	m := matches[0]
	out := make([]byte, 0, len(content)+len(a.replacement))
	out = append(out, content[:m[0]]...)
	out = append(out, a.replacement...)
	out = append(out, content[m[1]:]...)
	return out, nil
}

// fallbackChain renders nested try/except imports, first binding outermost
func fallbackChain(module string, bindings []string) string {
	var b strings.Builder
	for i, binding := range bindings {
		indent := strings.Repeat("    ", i)
		line := indent + "from " + binding + " import " + module
		if i == len(bindings)-1 {
			b.WriteString(line)
			break
		}
		b.WriteString(indent + "try:\n")
		b.WriteString("    " + line + "\n")
		b.WriteString(indent + "except ImportError:\n")
	}
	return b.String()
}
