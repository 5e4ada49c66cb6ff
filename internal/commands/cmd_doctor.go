package commands

import (
	"context"
	"encoding/json"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/commands/doctor"
	"github.com/hay-kot/slate/internal/printer"
)

type DoctorCmd struct {
	flags  *Flags
	format string
}

func NewDoctorCmd(flags *Flags) *DoctorCmd {
	return &DoctorCmd{flags: flags}
}

func (cmd *DoctorCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "doctor",
		Usage:       "Run health checks on your slate setup",
		UsageText:   "slate doctor [options]",
		Description: "Runs diagnostic checks on the configuration, the canvas and history memory bounds, and the terminal.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Usage:       "output format (text, json)",
				Value:       "text",
				Destination: &cmd.format,
			},
		},
		Action: cmd.run,
	})
	return app
}

func (cmd *DoctorCmd) run(ctx context.Context, c *cli.Command) error {
	checks := []doctor.Check{
		doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath),
		doctor.NewCanvasCheck(cmd.flags.Config),
		doctor.NewTerminalCheck(),
	}

	report := doctor.RunAll(ctx, checks)

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			return err
		}
	} else {
		printReport(printer.Ctx(ctx), report)
	}

	if !report.Healthy {
		return cli.Exit("", 1)
	}
	return nil
}

func printReport(p *printer.Printer, report doctor.Report) {
	for _, result := range report.Checks {
		p.Section(result.Name)

		for _, item := range result.Items {
			switch item.Status {
			case doctor.StatusPass:
				p.CheckItem(item.Label, item.Detail)
			case doctor.StatusWarn:
				p.WarnItem(item.Label, item.Detail)
			case doctor.StatusFail:
				p.FailItem(item.Label, item.Detail)
			}
		}

		p.Printf("")
	}

	s := report.Summary
	p.Printf("Summary: %d passed, %d warnings, %d failed", s.Passed, s.Warned, s.Failed)
}
