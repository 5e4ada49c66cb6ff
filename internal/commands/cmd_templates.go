package commands

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/core/board"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/printer"
)

type TemplatesCmd struct {
	flags *Flags
}

// NewTemplatesCmd creates a new templates command
func NewTemplatesCmd(flags *Flags) *TemplatesCmd {
	return &TemplatesCmd{flags: flags}
}

// Register adds the templates command to the application
func (cmd *TemplatesCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:        "templates",
		Usage:       "Inspect board templates",
		UsageText:   "slate templates <command>",
		Description: "List and inspect the built-in board templates.",
		Commands: []*cli.Command{
			{
				Name:        "list",
				Aliases:     []string{"ls"},
				Usage:       "List all available templates",
				UsageText:   "slate templates list",
				Description: "Displays a table of all templates with their ID, name and category.",
				Action:      cmd.runList,
			},
			{
				Name:        "show",
				Usage:       "Show the elements a template creates",
				UsageText:   "slate templates show <id>",
				Description: "Displays the sticky notes and text elements a template seeds on a new board.",
				Action:      cmd.runShow,
			},
		},
	})

	return app
}

func (cmd *TemplatesCmd) runList(_ context.Context, c *cli.Command) error {
	w := tabwriter.NewWriter(c.Root().Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tCATEGORY")

	for _, t := range tools.Templates() {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, t.Category)
	}

	return w.Flush()
}

func (cmd *TemplatesCmd) runShow(ctx context.Context, c *cli.Command) error {
	p := printer.Ctx(ctx)

	if c.Args().Len() < 1 {
		return fmt.Errorf("template id required")
	}

	id := c.Args().First()
	tmpl, err := tools.LookupTemplate(id)
	if err != nil {
		return err
	}

	b := board.New()
	if err := b.ApplyTemplate(id); err != nil {
		return err
	}

	w := c.Root().Writer

	p.Infof("Template: %s", tmpl.Name)
	_, _ = fmt.Fprintf(w, "Category: %s\n\n", tmpl.Category)

	if len(b.TextElements) == 0 && len(b.StickyNotes) == 0 {
		_, _ = fmt.Fprintln(w, "Elements: (none)")
		return nil
	}

	if len(b.TextElements) > 0 {
		_, _ = fmt.Fprintln(w, "Text:")
		for _, el := range b.TextElements {
			_, _ = fmt.Fprintf(w, "  • %s\n", el.Content)
			_, _ = fmt.Fprintf(w, "    At: %g,%g, Size: %d\n", el.Position.X, el.Position.Y, el.FontSize)
		}
		_, _ = fmt.Fprintln(w)
	}

	if len(b.StickyNotes) > 0 {
		_, _ = fmt.Fprintln(w, "Sticky notes:")
		for _, note := range b.StickyNotes {
			_, _ = fmt.Fprintf(w, "  • %s\n", note.Content)
			_, _ = fmt.Fprintf(w, "    At: %g,%g, Color: %s\n", note.Position.X, note.Position.Y, note.Color)
		}
	}

	return nil
}
