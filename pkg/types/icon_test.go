package types

import (
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/iconpack/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStyle(t *testing.T) {
	tests := []struct {
		in      string
		want    Style
		wantErr bool
	}{
		{"outlined", StyleOutlined, false},
		{"Rounded", StyleRounded, false},
		{" sharp ", StyleSharp, false},
		{"filled", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStyle(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseSize(t *testing.T) {
	for _, n := range []int{20, 24, 40, 48} {
		s, err := ParseSize(n)
		require.NoError(t, err)
		assert.Equal(t, n, int(s))
	}

	_, err := ParseSize(32)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}

func TestNewAxis(t *testing.T) {
	a, err := NewAxis(StyleSharp, Size48)
	require.NoError(t, err)
	assert.Equal(t, "sharp_48", a.String())

	_, err = NewAxis(Style(7), Size48)
	assert.Error(t, err)

	_, err = NewAxis(StyleSharp, Size(12))
	assert.Error(t, err)
}

func TestAllAxes(t *testing.T) {
	axes := AllAxes()
	require.Len(t, axes, 12)
	assert.Equal(t, "outlined_20", axes[0].String())
	assert.Equal(t, "outlined_48", axes[3].String())
	assert.Equal(t, "sharp_48", axes[11].String())

	dedup := CrossAxes([]Style{StyleSharp, StyleSharp}, []Size{Size20, Size20})
	assert.Len(t, dedup, 1)
}

func TestSelectorLogicalPath(t *testing.T) {
	tests := []struct {
		sel  IconSelector
		want LogicalPath
	}{
		{
			IconSelector{Name: "home", Style: StyleOutlined, Size: Size20},
			":/material-design-icons/symbols/web/home/materialsymbolsoutlined/home_20px.svg",
		},
		{
			IconSelector{Name: "home", Style: StyleOutlined, Fill: true, Size: Size20},
			":/material-design-icons/symbols/web/home/materialsymbolsoutlined/home_fill1_20px.svg",
		},
		{
			IconSelector{Name: "account_circle", Style: StyleSharp, Size: Size48},
			":/material-design-icons/symbols/web/account_circle/materialsymbolssharp/account_circle_48px.svg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.sel.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.LogicalPath())
		})
	}
}

func TestLogicalPathRelative(t *testing.T) {
	p := IconSelector{Name: "menu", Style: StyleRounded, Size: Size24}.LogicalPath()
	rel := p.Relative()

	assert.Equal(t, "material-design-icons/symbols/web/menu/materialsymbolsrounded/menu_24px.svg", rel)
	assert.Equal(t, p, LogicalPathFromRelative(rel))
	assert.Equal(t, p, LogicalPathFromRelative(`material-design-icons\symbols\web\menu\materialsymbolsrounded\menu_24px.svg`))
}

func TestStyleText(t *testing.T) {
	var s Style
	require.NoError(t, s.UnmarshalText([]byte("sharp")))
	assert.Equal(t, StyleSharp, s)

	b, err := StyleRounded.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "rounded", string(b))

	_, err = Style(9).MarshalText()
	assert.Error(t, err)
}

func TestSummary(t *testing.T) {
	outlined := IconAxis{Style: StyleOutlined, Size: Size20}
	sharp := IconAxis{Style: StyleSharp, Size: Size48}
	failure := errors.New(errors.ErrCompileFailure, "boom")

	s := &Summary{Results: []AxisResult{
		{Axis: outlined, Artifact: "a.py"},
		{Axis: sharp, Err: failure},
	}}

	assert.Len(t, s.Succeeded(), 1)
	assert.Len(t, s.Failed(), 1)

	r, ok := s.Result(sharp)
	require.True(t, ok)
	assert.False(t, r.Succeeded())

	err := s.Err()
	require.Error(t, err)
	assert.True(t, stderrors.Is(err, failure))
	assert.True(t, errors.IsErrorCode(err, errors.ErrCompileFailure))

	assert.NoError(t, (&Summary{Results: []AxisResult{{Axis: outlined}}}).Err())
}
