package extract

import (
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/arthur-debert/iconpack/pkg/types"
)

// Selectors expands names over the style and size cross product, yielding
// the unfilled and filled variant of each name. Order is style, size, name.
func Selectors(names []string, styles []types.Style, sizes []types.Size) []types.IconSelector {
	var out []types.IconSelector
	for _, axis := range types.CrossAxes(styles, sizes) {
		for _, name := range names {
			for _, fill := range []bool{false, true} {
				out = append(out, types.IconSelector{Name: name, Style: axis.Style, Fill: fill, Size: axis.Size})
			}
		}
	}
	return out
}

// Validate rejects selectors that could never name a bundle path
func Validate(selectors []types.IconSelector) error {
	if len(selectors) == 0 {
		return errors.New(errors.ErrInvalidInput, "no icons selected")
	}
	for _, sel := range selectors {
		if sel.Name == "" || strings.ContainsAny(sel.Name, `/\`) || sel.Name == "." || sel.Name == ".." {
			return errors.Newf(errors.ErrInvalidInput, "invalid icon name %q", sel.Name)
		}
		if !sel.Axis().Valid() {
			return errors.Newf(errors.ErrInvalidInput, "invalid axis for icon %s", sel.Name).
				WithDetail("style", int(sel.Style)).
				WithDetail("size", int(sel.Size))
		}
	}
	return nil
}

// groupByAxis buckets selectors per axis in first-seen order, dropping
// duplicates
func groupByAxis(selectors []types.IconSelector) ([]types.IconAxis, map[types.IconAxis][]types.IconSelector) {
	var axes []types.IconAxis
	groups := make(map[types.IconAxis][]types.IconSelector)
	seen := make(map[types.IconSelector]bool)
	for _, sel := range selectors {
		if seen[sel] {
			continue
		}
		seen[sel] = true
		axis := sel.Axis()
		if _, ok := groups[axis]; !ok {
			axes = append(axes, axis)
		}
		groups[axis] = append(groups[axis], sel)
	}
	return axes, groups
}
