package commands

import (
	"context"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/tools"
)

type ToolsCmd struct {
	flags *Flags
}

// NewToolsCmd creates a new tools command
func NewToolsCmd(flags *Flags) *ToolsCmd {
	return &ToolsCmd{flags: flags}
}

// Register adds the tools command to the application
func (cmd *ToolsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "tools",
		Usage:       "List drawing tools and brushes",
		UsageText:   "slate tools",
		Description: "Displays the tool catalog with the keys bound to each tool, followed by the brush presets.",
		Action:      cmd.run,
	})

	return app
}

func (cmd *ToolsCmd) run(_ context.Context, c *cli.Command) error {
	keys := cmd.toolKeys()

	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TOOL\tNAME\tCATEGORY\tKEYS")
	for _, t := range tools.Tools() {
		k := strings.Join(keys[config.ActionToolPrefix+t.ID], ", ")
		if k == "" {
			k = "-"
		}
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, k)
	}

	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "BRUSH\tWIDTH\tOPACITY\tDESCRIPTION")
	for _, b := range tools.BrushTypes() {
		_, _ = fmt.Fprintf(w, "%s\t%g\t%g\t%s\n", b.ID, b.StrokeWidth, b.Opacity, b.Description)
	}

	return w.Flush()
}

// toolKeys maps each action to the sorted keys bound to it.
func (cmd *ToolsCmd) toolKeys() map[string][]string {
	out := make(map[string][]string)
	if cmd.flags.Config == nil {
		return out
	}
	for _, key := range cmd.flags.Config.SortedKeys() {
		action := cmd.flags.Config.Keybindings[key].Action
		out[action] = append(out[action], key)
	}
	return out
}
