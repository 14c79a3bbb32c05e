package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/iconpack/cmd/iconpack"
	"github.com/charmbracelet/lipgloss"
)

var errorStyle = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#C62828", Dark: "#EF5350"}).
	Bold(true)

func main() {
	rootCmd := iconpack.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
