package report

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.AdaptiveColor{Light: "#007A3D", Dark: "#3FD68B"}
	colorFailure = lipgloss.AdaptiveColor{Light: "#B00020", Dark: "#FF6B6B"}
	colorWarning = lipgloss.AdaptiveColor{Light: "#8A5A00", Dark: "#F2C14E"}
	colorMuted   = lipgloss.AdaptiveColor{Light: "#6B6B6B", Dark: "#9A9A9A"}
)

// styles holds the styles bound to one lipgloss renderer
type styles struct {
	Header  lipgloss.Style
	Axis    lipgloss.Style
	Success lipgloss.Style
	Failure lipgloss.Style
	Warning lipgloss.Style
	Muted   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header:  r.NewStyle().Bold(true).MarginBottom(1),
		Axis:    r.NewStyle().Width(12),
		Success: r.NewStyle().Foreground(colorSuccess),
		Failure: r.NewStyle().Foreground(colorFailure).Bold(true),
		Warning: r.NewStyle().Foreground(colorWarning),
		Muted:   r.NewStyle().Foreground(colorMuted),
	}
}
