package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/errors"
)

// Style is the visual style of a Material Symbols icon
type Style int

const (
	StyleOutlined Style = iota
	StyleRounded
	StyleSharp
)

var styleNames = [...]string{"outlined", "rounded", "sharp"}

// AllStyles returns every style in declaration order
func AllStyles() []Style {
	return []Style{StyleOutlined, StyleRounded, StyleSharp}
}

// ParseStyle converts a style name into a Style
func ParseStyle(s string) (Style, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range styleNames {
		if n == name {
			return Style(i), nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown icon style %q", s).
		WithDetail("valid", styleNames[:])
}

// String returns the lower case style name used in paths
func (s Style) String() string {
	if !s.Valid() {
		return "Style(" + strconv.Itoa(int(s)) + ")"
	}
	return styleNames[s]
}

// Valid reports whether s is one of the declared styles
func (s Style) Valid() bool {
	return s >= StyleOutlined && s <= StyleSharp
}

// MarshalText implements encoding.TextMarshaler
func (s Style) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, errors.Newf(errors.ErrInvalidInput, "invalid icon style %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (s *Style) UnmarshalText(text []byte) error {
	parsed, err := ParseStyle(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Size is the optical pixel size of an icon
type Size int

const (
	Size20 Size = 20
	Size24 Size = 24
	Size40 Size = 40
	Size48 Size = 48
)

// AllSizes returns every size in ascending order
func AllSizes() []Size {
	return []Size{Size20, Size24, Size40, Size48}
}

// ParseSize validates a pixel size
func ParseSize(n int) (Size, error) {
	for _, s := range AllSizes() {
		if int(s) == n {
			return s, nil
		}
	}
	return 0, errors.Newf(errors.ErrInvalidInput, "unknown icon size %d", n).
		WithDetail("valid", []int{20, 24, 40, 48})
}

// Valid reports whether s is one of the declared sizes
func (s Size) Valid() bool {
	_, err := ParseSize(int(s))
	return err == nil
}

func (s Size) String() string {
	return strconv.Itoa(int(s))
}

// IconAxis selects one independently buildable bundle
type IconAxis struct {
	Style Style
	Size  Size
}

// NewAxis validates and returns an axis
func NewAxis(style Style, size Size) (IconAxis, error) {
	if !style.Valid() {
		return IconAxis{}, errors.Newf(errors.ErrInvalidInput, "invalid icon style %d", int(style))
	}
	if !size.Valid() {
		return IconAxis{}, errors.Newf(errors.ErrInvalidInput, "invalid icon size %d", int(size))
	}
	return IconAxis{Style: style, Size: size}, nil
}

// AllAxes returns the cross product of all styles and sizes, style-major
func AllAxes() []IconAxis {
	return CrossAxes(AllStyles(), AllSizes())
}

// CrossAxes returns the cross product of styles and sizes, style-major,
// without duplicates
func CrossAxes(styles []Style, sizes []Size) []IconAxis {
	seen := make(map[IconAxis]bool)
	axes := make([]IconAxis, 0, len(styles)*len(sizes))
	for _, st := range styles {
		for _, sz := range sizes {
			a := IconAxis{Style: st, Size: sz}
			if seen[a] {
				continue
			}
			seen[a] = true
			axes = append(axes, a)
		}
	}
	return axes
}

// String returns "<style>_<size>", used as registry key and file stem
func (a IconAxis) String() string {
	return a.Style.String() + "_" + a.Size.String()
}

// Valid reports whether both components are declared values
func (a IconAxis) Valid() bool {
	return a.Style.Valid() && a.Size.Valid()
}

// IconSelector identifies one logical icon variant
type IconSelector struct {
	Name  string
	Style Style
	Fill  bool
	Size  Size
}

// Axis returns the bundle axis the selector lives in
func (s IconSelector) Axis() IconAxis {
	return IconAxis{Style: s.Style, Size: s.Size}
}

// FileName returns the svg file name, e.g. home_fill1_24px.svg
func (s IconSelector) FileName() string {
	if s.Fill {
		return fmt.Sprintf("%s_fill1_%dpx.svg", s.Name, s.Size)
	}
	return fmt.Sprintf("%s_%dpx.svg", s.Name, s.Size)
}

// LogicalPath returns the bundle path of the selected variant
func (s IconSelector) LogicalPath() LogicalPath {
	return LogicalPath(ResourcePrefix + CorpusRoot + "/" + s.Name + "/materialsymbols" + s.Style.String() + "/" + s.FileName())
}

func (s IconSelector) String() string {
	fill := "nofill"
	if s.Fill {
		fill = "fill"
	}
	return fmt.Sprintf("%s(%s,%s,%d)", s.Name, s.Style, fill, s.Size)
}

const (
	// ResourcePrefix is the virtual root under which compiled bundles register paths
	ResourcePrefix = ":/"

	// CheckoutDir is the upstream git checkout, relative to the source root
	CheckoutDir = "material-design-icons"

	// CorpusRoot is the directory of the upstream corpus holding one
	// subdirectory per icon name, relative to the manifest location
	CorpusRoot = CheckoutDir + "/symbols/web"
)

// LogicalPath is a bundle-internal virtual path such as
// :/material-design-icons/symbols/web/home/materialsymbolsoutlined/home_20px.svg
type LogicalPath string

// Relative strips the virtual root, giving the path relative to a manifest
// directory or an extraction output directory
func (p LogicalPath) Relative() string {
	return strings.TrimPrefix(string(p), ResourcePrefix)
}

func (p LogicalPath) String() string {
	return string(p)
}

// LogicalPathFromRelative is the inverse of Relative
func LogicalPathFromRelative(rel string) LogicalPath {
	return LogicalPath(ResourcePrefix + strings.TrimPrefix(strings.ReplaceAll(rel, "\\", "/"), "/"))
}
