package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/commands"
	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/printer"
	"github.com/hay-kot/slate/pkg/utils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}
	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	os.Exit(run(os.Args))
}

func run(args []string) int {
	if _, err := setupLogger("info", "", nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var (
		p     = printer.New(os.Stderr)
		ctx   = printer.NewContext(context.Background(), p)
		flags = &commands.Flags{}
		logs  = &utils.DeferredWriter{}
	)

	app := newApp(flags, logs)

	code := 0
	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr)
		p.FatalError(err)
		code = 1
	}

	// Logs written while the alternate screen was up are replayed here.
	if logs.Len() > 0 {
		if err := logs.Flush(zerolog.ConsoleWriter{Out: os.Stderr}); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush logs: %v\n", err)
		}
	}

	return code
}

// interactive reports whether the invocation takes over the terminal.
func interactive(args []string) bool {
	return len(args) == 0 || args[0] == "new"
}

func newApp(flags *commands.Flags, logs *utils.DeferredWriter) *cli.Command {
	tuiCmd := commands.NewTuiCmd(flags)
	closeLog := func() error { return nil }

	app := &cli.Command{
		Name:      "slate",
		Usage:     "Draw on a whiteboard in your terminal",
		UsageText: "slate [global options] command [command options]",
		Description: `Slate is a terminal whiteboard with freehand brushes, outline shapes,
board templates and an undo history bounded by snapshot count or memory.

Run 'slate' with no arguments to open a blank board.
Run 'slate new' to start a board from a template.
Run 'slate render' to draw scripts to PNG without a terminal.`,
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("SLATE_LOG_LEVEL"),
				Value:       "info",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (optional)",
				Sources:     cli.EnvVars("SLATE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("SLATE_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var deferred *utils.DeferredWriter
			if interactive(c.Args().Slice()) {
				deferred = logs
			}
			closer, err := setupLogger(flags.LogLevel, flags.LogFile, deferred)
			if err != nil {
				return ctx, err
			}
			closeLog = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if err := closeLog(); err != nil {
				return fmt.Errorf("close log file: %w", err)
			}
			return nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() > 0 {
				return fmt.Errorf("unknown command %q. Run 'slate --help' for usage", c.Args().First())
			}
			return tuiCmd.Run(ctx, c)
		},
	}
	app.Flags = append(app.Flags, tuiCmd.Flags()...)

	for _, r := range []interface {
		Register(*cli.Command) *cli.Command
	}{
		commands.NewNewCmd(flags),
		commands.NewRenderCmd(flags),
		commands.NewToolsCmd(flags),
		commands.NewTemplatesCmd(flags),
		commands.NewConfigCmd(flags),
		commands.NewDoctorCmd(flags),
		commands.NewDocCmd(flags),
	} {
		app = r.Register(app)
	}

	return app
}
