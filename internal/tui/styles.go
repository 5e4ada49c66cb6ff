// Package tui implements the Bubble Tea TUI for slate.
package tui

import (
	"image/color"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/styles"
)

// Styles used for rendering the TUI.
var (
	// Title style for the board header.
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.ColorBlue).
			PaddingLeft(1)

	// Subtle text such as element counts.
	mutedStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	// Status bar segments.
	statusStyle = lipgloss.NewStyle().
			Foreground(styles.ColorWhite).
			PaddingLeft(1)

	enabledStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGreen)

	disabledStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray)

	drawingStyle = lipgloss.NewStyle().
			Foreground(styles.ColorYellow).
			Bold(true)

	// Transient feedback after a keybinding runs.
	messageStyle = lipgloss.NewStyle().
			Foreground(styles.ColorBlue).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(styles.ColorRed).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(styles.ColorGray).
			PaddingLeft(1)
)

// Icons and symbols.
const (
	iconDot   = "•" // Unicode bullet separator
	iconUndo  = "↶"
	iconRedo  = "↷"
	iconHalf  = "▀" // upper half block; fg is the top pixel, bg the bottom
	iconBlock = "██"
)

// cellStyles caches one style per foreground/background pair so a frame
// does not allocate a style per cell.
type cellStyles map[[2]color.NRGBA]lipgloss.Style

func (c cellStyles) get(top, bottom color.NRGBA) lipgloss.Style {
	k := [2]color.NRGBA{top, bottom}
	if st, ok := c[k]; ok {
		return st
	}
	st := lipgloss.NewStyle().
		Foreground(lipgloss.Color(raster.Hex(top))).
		Background(lipgloss.Color(raster.Hex(bottom)))
	c[k] = st
	return st
}

// swatch renders a color sample.
func swatch(c color.NRGBA) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(raster.Hex(c))).Render(iconBlock)
}
