package commands

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/slate/internal/commands/doctor"
	"github.com/hay-kot/slate/internal/printer"
)

type ConfigCmd struct {
	flags  *Flags
	format string
	strict bool
}

// NewConfigCmd creates the config command group.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Inspect and validate the configuration",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate the configuration file",
				UsageText:   "slate config validate [--format json] [--strict]",
				Description: "Checks colors, canvas and history limits, keybinding actions, the export directory and the export filename template.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
					&cli.BoolFlag{
						Name:        "strict",
						Usage:       "treat warnings as failures",
						Destination: &cmd.strict,
					},
				},
				Action: cmd.validate,
			},
			{
				Name:   "show",
				Usage:  "Print the effective configuration as YAML",
				Action: cmd.show,
			},
		},
	})

	return app
}

func (cmd *ConfigCmd) validate(ctx context.Context, c *cli.Command) error {
	result := doctor.NewConfigCheck(cmd.flags.Config, cmd.flags.ConfigPath).Run(ctx)

	ok := result.Status() == doctor.StatusPass ||
		(!cmd.strict && result.Status() == doctor.StatusWarn)

	if cmd.format == "json" {
		enc := json.NewEncoder(c.Root().Writer)
		enc.SetIndent("", "  ")
		err := enc.Encode(struct {
			Path  string             `json:"path"`
			Valid bool               `json:"valid"`
			Items []doctor.CheckItem `json:"items"`
		}{cmd.flags.ConfigPath, ok, result.Items})
		if err != nil {
			return err
		}
	} else {
		p := printer.Ctx(ctx)
		printReport(p, doctor.Report{
			Healthy: ok,
			Summary: doctor.Summarize([]doctor.Result{result}),
			Checks:  []doctor.Result{result},
		})
	}

	if !ok {
		return cli.Exit("", 1)
	}
	return nil
}

func (cmd *ConfigCmd) show(_ context.Context, c *cli.Command) error {
	if cmd.flags.Config == nil {
		return fmt.Errorf("configuration not loaded")
	}

	enc := yaml.NewEncoder(c.Root().Writer)
	enc.SetIndent(2)
	if err := enc.Encode(cmd.flags.Config); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return enc.Close()
}
