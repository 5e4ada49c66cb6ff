package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/tui"
	"github.com/hay-kot/slate/internal/whiteboard"
)

// TuiCmd opens the interactive whiteboard. It is the default action.
type TuiCmd struct {
	flags  *Flags
	width  int
	height int
}

func NewTuiCmd(flags *Flags) *TuiCmd {
	return &TuiCmd{flags: flags}
}

// Flags returns the canvas size overrides registered on the root command.
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "width",
			Usage:       "canvas width in pixels (overrides canvas.width)",
			Destination: &cmd.width,
		},
		&cli.IntFlag{
			Name:        "height",
			Usage:       "canvas height in pixels (overrides canvas.height)",
			Destination: &cmd.height,
		},
	}
}

// Run opens a blank board with the loaded configuration.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	cfg := *cmd.flags.Config
	if cmd.width > 0 {
		cfg.Canvas.Width = cmd.width
	}
	if cmd.height > 0 {
		cfg.Canvas.Height = cmd.height
	}

	svc, err := cmd.flags.NewSession(&cfg)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	return runTUI(ctx, svc, &cfg)
}

// runTUI blocks until the user quits or ctx is cancelled.
func runTUI(ctx context.Context, svc *whiteboard.Service, cfg *config.Config) error {
	program := tea.NewProgram(
		tui.New(svc, cfg),
		tea.WithContext(ctx),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
