package commands

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/slate/internal/script"
)

// docWrap is the word wrap width for rendered guides.
const docWrap = 80

type DocCmd struct {
	flags *Flags
	raw   bool
}

func NewDocCmd(flags *Flags) *DocCmd {
	return &DocCmd{flags: flags}
}

func (cmd *DocCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "doc",
		Usage: "Documentation for scripts and keybindings",
		Description: `Access documentation for slate.

Use 'slate doc scripting' to see the drawing script format used by 'slate render'.
Use 'slate doc keys' to see the active TUI keybindings.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "raw",
				Usage:       "print markdown without terminal styling",
				Destination: &cmd.raw,
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "scripting",
				Usage:  "Show the drawing script format",
				Action: cmd.runScripting,
			},
			{
				Name:   "keys",
				Usage:  "Show the TUI keybindings",
				Action: cmd.runKeys,
			},
		},
	})
	return app
}

func (cmd *DocCmd) runScripting(_ context.Context, c *cli.Command) error {
	return cmd.print(c.Root().Writer, scriptingGuide())
}

func (cmd *DocCmd) runKeys(_ context.Context, c *cli.Command) error {
	return cmd.print(c.Root().Writer, keysGuide(cmd.flags))
}

// print renders markdown through glamour unless --raw is set.
func (cmd *DocCmd) print(w io.Writer, markdown string) error {
	if cmd.raw {
		_, err := fmt.Fprintln(w, markdown)
		return err
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("tokyo-night"),
		glamour.WithWordWrap(docWrap),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	out, err := renderer.Render(markdown)
	if err != nil {
		return fmt.Errorf("render markdown: %w", err)
	}

	_, err = fmt.Fprint(w, out)
	return err
}

func scriptingGuide() string {
	ops := make([]string, len(script.Ops))
	for i, op := range script.Ops {
		ops[i] = "`" + string(op) + "`"
	}

	return `# Slate Drawing Scripts

A script is a YAML or JSON document rendered to PNG by ` + "`slate render`" + `.
Steps run in order against a fresh canvas with its own undo history.

## Document

| Field | Description |
|-------|-------------|
| ` + "`title`" + ` | Board title, used for the export file name |
| ` + "`template`" + ` | Board template: blank, brainstorm or kanban |
| ` + "`width`" + `, ` + "`height`" + ` | Canvas size override in pixels |
| ` + "`steps`" + ` | Ordered list of operations |

## Operations

Supported ops: ` + strings.Join(ops, ", ") + `

| Op | Fields | Effect |
|----|--------|--------|
| ` + "`stroke`" + ` | ` + "`points`" + ` | Freehand line through the points with the active brush |
| ` + "`erase`" + ` | ` + "`points`, `width`" + ` | Paint the background along the points |
| ` + "`shape`" + ` | ` + "`shape`, `from`, `to`" + ` | Square, circle or triangle outline in the box |
| ` + "`select`" + ` | ` + "`tool`, `brush`, `color`, `width`, `opacity`" + ` | Change the active selection |
| ` + "`save`" + ` | | Save the canvas so it can be returned to with redo |
| ` + "`undo`" + `, ` + "`redo`" + ` | | Step through the history |
| ` + "`clear`" + ` | | Fill the canvas with the background |
| ` + "`note`" + ` | ` + "`content`, `at`, `color`" + ` | Add a sticky note |
| ` + "`text`" + ` | ` + "`content`, `at`, `font_size`" + ` | Add a text element |

## History

Every edit saves the canvas first, so ` + "`undo`" + ` reverts exactly one edit
and ` + "`redo`" + ` brings it back. A new edit after an undo drops the redo steps.
When the history is bounded by ` + "`history.max_entries`" + ` or
` + "`history.max_bytes`" + `, the oldest snapshots are evicted first.

## Example

` + "```yaml" + `
title: Sprint Retro
template: kanban
width: 200
height: 120
steps:
  - op: select
    color: "#3b82f6"
    width: 4
  - op: stroke
    points: [{x: 10, y: 10}, {x: 80, y: 40}]
  - op: shape
    shape: circle
    from: {x: 100, y: 20}
    to: {x: 160, y: 80}
  - op: undo
  - op: redo
` + "```" + `

Render it:

` + "```bash" + `
slate render -o out/ retro.yaml
cat retro.yaml | slate render
` + "```" + `
`
}

func keysGuide(flags *Flags) string {
	var sb strings.Builder
	sb.WriteString("# Slate Keybindings\n\n")
	sb.WriteString("| Key | Action | Help |\n")
	sb.WriteString("|-----|--------|------|\n")

	cfg := flags.Config
	for _, k := range cfg.SortedKeys() {
		kb := cfg.Keybindings[k]
		fmt.Fprintf(&sb, "| `%s` | %s | %s |\n", k, kb.Action, kb.Help)
	}

	sb.WriteString("\n`?` toggles the full help, `esc` cancels a stroke, `q` or `ctrl+c` quits.\n")
	sb.WriteString("The mouse wheel changes the stroke width. Drag with the hand tool to pan.\n")
	return sb.String()
}
