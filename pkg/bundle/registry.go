package bundle

import (
	"path/filepath"

	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/registry"
	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/rs/zerolog"
)

// ResourcesDir is the package subdirectory holding compiled bundles
const ResourcesDir = "resources"

// ArtifactName returns the bundle module file name for an axis
func ArtifactName(axis types.IconAxis) string {
	return "icons_" + axis.String() + ".py"
}

// ArtifactPath returns where the bundle for axis lives under a package root
func ArtifactPath(packageRoot string, axis types.IconAxis) string {
	return filepath.Join(packageRoot, ResourcesDir, ArtifactName(axis))
}

// Locator maps an axis to its artifact path
type Locator func(axis types.IconAxis) string

// PackageLocator locates bundles inside a package root
func PackageLocator(packageRoot string) Locator {
	return func(axis types.IconAxis) string {
		return ArtifactPath(packageRoot, axis)
	}
}

// Registry loads bundles on demand, at most once per axis
type Registry struct {
	locate Locator
	load   func(path string) (*Bundle, error)
	loaded registry.Registry[*Bundle]
	logger zerolog.Logger
}

// NewRegistry creates an empty registry
func NewRegistry(locate Locator) *Registry {
	return &Registry{
		locate: locate,
		load:   Load,
		loaded: registry.New[*Bundle](),
		logger: logging.GetLogger("bundle"),
	}
}

// EnsureLoaded returns the bundle for axis, loading it on first use
func (r *Registry) EnsureLoaded(axis types.IconAxis) (*Bundle, error) {
	return r.loaded.GetOrCreate(axis.String(), func() (*Bundle, error) {
		path := r.locate(axis)
		r.logger.Debug().Str("axis", axis.String()).Str("path", path).Msg("Loading bundle")

		b, err := r.load(path)
		if err != nil {
			r.logger.Error().Err(err).Str("axis", axis.String()).Msg("Failed to load bundle")
			return nil, err
		}
		r.logger.Info().Str("axis", axis.String()).Str("path", b.Source()).Int("icons", b.Len()).Msg("Bundle loaded")
		return b, nil
	})
}

