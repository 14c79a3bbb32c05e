package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/iconpack/pkg/types"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Renderer writes human readable summaries
type Renderer struct {
	w      io.Writer
	styles styles
}

// NewRenderer creates a renderer for w. With noColor every style renders
// as plain text.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}
	return &Renderer{w: w, styles: newStyles(r)}
}

// Render prints one line per axis followed by any warnings
func (r *Renderer) Render(s *types.Summary) error {
	var b strings.Builder

	ok := len(s.Succeeded())
	header := fmt.Sprintf("%s: %d of %d axes succeeded", s.Command, ok, len(s.Results))
	b.WriteString(r.styles.Header.Render(header))
	b.WriteString("\n")

	for _, res := range s.Results {
		b.WriteString(r.line(res))
		b.WriteString("\n")
	}

	if len(s.Warnings) > 0 {
		b.WriteString("\n")
		b.WriteString(r.styles.Warning.Render("warnings:"))
		b.WriteString("\n")
		for _, w := range s.Warnings {
			b.WriteString("  ")
			b.WriteString(r.styles.Warning.Render(w))
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *Renderer) line(res types.AxisResult) string {
	axis := r.styles.Axis.Render(res.Axis.String())
	if !res.Succeeded() {
		return fmt.Sprintf("  %s %s %s",
			r.styles.Failure.Render("✗"), axis, r.styles.Failure.Render(res.Err.Error()))
	}

	detail := fmt.Sprintf("%d icons", len(res.Written))
	if res.Missing > 0 {
		detail += r.styles.Warning.Render(fmt.Sprintf(", %d missing", res.Missing))
	}
	return fmt.Sprintf("  %s %s %s  %s",
		r.styles.Success.Render("✓"), axis, detail,
		r.styles.Muted.Render(res.Artifact))
}
