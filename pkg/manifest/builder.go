package manifest

import (
	"os"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/logging"
	"github.com/arthur-debert/iconpack/pkg/types"
)

// Manifest is the ordered set of logical paths for one axis
type Manifest struct {
	Axis  types.IconAxis
	Paths []types.LogicalPath
}

// Files returns the manifest entries relative to the manifest location
func (m Manifest) Files() []string {
	files := make([]string, len(m.Paths))
	for i, p := range m.Paths {
		files[i] = p.Relative()
	}
	return files
}

// FileName returns the manifest file name used for an axis
func FileName(axis types.IconAxis) string {
	return "material_design_icons_" + axis.String() + ".qrc"
}

// Build lists every subdirectory of root as an icon name and returns two
// logical paths per name for the axis, unfilled first. File existence is not
// checked here; the compiler and the extractor validate it later.
func Build(root string, axis types.IconAxis) (Manifest, error) {
	logger := logging.GetLogger("manifest.builder")

	if !axis.Valid() {
		return Manifest{}, errors.Newf(errors.ErrInvalidInput, "invalid axis %s", axis)
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return Manifest{}, errors.Wrap(err, errors.ErrSourceNotFound, "icon source root does not exist").
				WithDetail("path", root)
		}
		return Manifest{}, errors.Wrap(err, errors.ErrFileAccess, "cannot read icon source root").
			WithDetail("path", root)
	}

	m := Manifest{Axis: axis, Paths: make([]types.LogicalPath, 0, 2*len(entries))}
	for _, entry := range entries {
		if !entry.IsDir() {
			logger.Trace().Str("name", entry.Name()).Msg("Skipping non-directory entry")
			continue
		}
		for _, fill := range []bool{false, true} {
			sel := types.IconSelector{Name: entry.Name(), Style: axis.Style, Fill: fill, Size: axis.Size}
			m.Paths = append(m.Paths, sel.LogicalPath())
		}
	}

	logger.Debug().
		Str("axis", axis.String()).
		Int("icons", len(m.Paths)/2).
		Msg("Built manifest")
	return m, nil
}
