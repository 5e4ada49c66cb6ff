package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/slate/internal/printer"
	"github.com/hay-kot/slate/internal/templates"
)

type NewCmd struct {
	flags *Flags
	sets  []string
}

// NewNewCmd creates a new new command
func NewNewCmd(flags *Flags) *NewCmd {
	return &NewCmd{flags: flags}
}

// Register adds the new command to the application
func (cmd *NewCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "new",
		Usage:     "Start a new board from a template",
		UsageText: "slate new [--set title=...] [--set template=...]",
		Description: `Creates a board with a title and one of the built-in templates,
then opens it in the whiteboard TUI.

Values not given with --set are prompted for. When both are set the
form is skipped.

Example:
  slate new
  slate new --set title="Sprint Retro" --set template=kanban`,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:        "set",
				Aliases:     []string{"s"},
				Usage:       "set a board field (title or template) as name=value",
				Destination: &cmd.sets,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *NewCmd) run(ctx context.Context, _ *cli.Command) error {
	p := printer.Ctx(ctx)

	prefilled, err := templates.ParseSetValues(cmd.sets)
	if err != nil {
		return err
	}

	var result templates.FormResult
	switch {
	case templates.AllFieldsPrefilled(prefilled):
		result = templates.Prefilled(prefilled)
	case !term.IsTerminal(int(os.Stdin.Fd())):
		return fmt.Errorf("stdin is not a terminal: pass --set title=... and --set template=...")
	default:
		res, err := templates.RunForm(prefilled)
		if err != nil {
			return fmt.Errorf("new board form: %w", err)
		}
		result = *res
	}

	if err := result.Validate(); err != nil {
		return fmt.Errorf("new board: %w", err)
	}

	svc, err := cmd.flags.NewSession(nil)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}

	if err := svc.Board().SetTitle(result.Title); err != nil {
		return fmt.Errorf("set title: %w", err)
	}
	if err := svc.ApplyTemplate(result.Template); err != nil {
		return fmt.Errorf("apply template: %w", err)
	}

	b := svc.Board()
	p.Infof("Board %q from template %s", b.Title, result.Template)

	return runTUI(ctx, svc, cmd.flags.Config)
}
