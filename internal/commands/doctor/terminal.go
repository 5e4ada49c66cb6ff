package doctor

import (
	"context"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// TerminalCheck reports whether the terminal can host the interactive board.
type TerminalCheck struct {
	isTerminal func(fd int) bool
	profile    func() termenv.Profile
}

// NewTerminalCheck creates a new terminal check for stdout.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{
		isTerminal: term.IsTerminal,
		profile:    lipgloss.ColorProfile,
	}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.isTerminal(int(os.Stdout.Fd())) {
		result.pass("Interactive", "")
	} else {
		result.warn("Interactive", "stdout is not a terminal; use 'slate render' for batch output")
	}

	item := CheckItem{Label: "Colors", Status: StatusPass}
	switch c.profile() {
	case termenv.TrueColor:
		item.Detail = "true color"
	case termenv.ANSI256:
		item.Detail = "256 colors; canvas colors are approximated"
	case termenv.ANSI:
		item.Status = StatusWarn
		item.Detail = "16 colors; canvas colors are approximated"
	default:
		item.Status = StatusWarn
		item.Detail = "no color support; the canvas renders without color"
	}
	result.Items = append(result.Items, item)

	return result
}
