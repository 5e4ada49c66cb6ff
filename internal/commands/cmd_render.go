package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/hay-kot/slate/internal/script"
)

const (
	// StatusRendered indicates the script ran and its PNG was written.
	StatusRendered = "rendered"
	// StatusFailed indicates the script could not be rendered.
	StatusFailed = "failed"
	// StatusSkipped indicates the script was not attempted due to failure threshold.
	StatusSkipped = "skipped"

	// maxFailures is the number of failures before stopping render processing.
	maxFailures = 3

	stdinSource = "<stdin>"
)

// RenderResult is the output for a single script.
type RenderResult struct {
	Source string         `json:"source"`
	Path   string         `json:"path,omitempty"`
	Status string         `json:"status"`
	Error  string         `json:"error,omitempty"`
	Script *script.Result `json:"script,omitempty"`
}

// RenderOutput is the JSON output schema.
type RenderOutput struct {
	Results []RenderResult `json:"results"`
}

// RenderErrorOutput is the JSON output for fatal errors.
type RenderErrorOutput struct {
	Error string `json:"error"`
}

type RenderCmd struct {
	flags  *Flags
	file   string
	outDir string
	jobs   int
}

func NewRenderCmd(flags *Flags) *RenderCmd {
	return &RenderCmd{flags: flags}
}

func (cmd *RenderCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "render",
		Usage: "Render drawing scripts to PNG",
		UsageText: `slate render [options] [glob...]

Read from stdin:
  echo '{"steps":[{"op":"stroke","points":[{"x":1,"y":1},{"x":20,"y":9}]}]}' | slate render

Read from a file:
  slate render -f retro.yaml

Read every script matching a pattern:
  slate render 'boards/**/*.yaml' -o out`,
		Description: `Runs each drawing script against a fresh board and exports the result as PNG.

Scripts are YAML or JSON. See 'slate doc scripting' for the format.

The PNG name comes from the export.filename template in your config and is
written to --out, or export.dir when --out is not set. When two scripts in
one run produce the same name, later ones get a numeric suffix (board-2.png).

Up to --jobs scripts render at once. Processing stops after 3 failures;
scripts not attempted are marked as skipped.

Output is JSON with one result per script.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "file",
				Aliases:     []string{"f"},
				Usage:       "path to a script file (reads from stdin if no file or glob is given)",
				Destination: &cmd.file,
			},
			&cli.StringFlag{
				Name:        "out",
				Aliases:     []string{"o"},
				Usage:       "output directory (defaults to export.dir)",
				Destination: &cmd.outDir,
			},
			&cli.IntFlag{
				Name:        "jobs",
				Aliases:     []string{"j"},
				Usage:       "number of scripts to render concurrently",
				Value:       1,
				Destination: &cmd.jobs,
			},
		},
		Action: cmd.run,
	})

	return app
}

func (cmd *RenderCmd) run(ctx context.Context, c *cli.Command) error {
	logger := log.With().Str("component", "render").Logger()
	out := c.Root().Writer

	sources, err := cmd.sources(c.Args().Slice())
	if err != nil {
		logger.Error().Err(err).Msg("failed to resolve inputs")
		return cmd.writeError(out, err)
	}

	logger.Info().Int("scripts", len(sources)).Msg("starting render")

	output := RenderOutput{Results: cmd.renderAll(ctx, logger, sources)}
	failures := countByStatus(output.Results, StatusFailed)

	logger.Info().
		Int("total", len(sources)).
		Int("rendered", countByStatus(output.Results, StatusRendered)).
		Int("failed", countByStatus(output.Results, StatusFailed)).
		Int("skipped", countByStatus(output.Results, StatusSkipped)).
		Msg("render complete")

	if err := writeJSON(out, output); err != nil {
		return err
	}
	if failures > 0 {
		return cli.Exit("", 1)
	}
	return nil
}

// sources resolves the scripts to render: the --file flag, then glob
// arguments, then stdin.
func (cmd *RenderCmd) sources(patterns []string) ([]string, error) {
	if cmd.file != "" {
		return []string{cmd.file}, nil
	}

	if len(patterns) > 0 {
		var paths []string
		for _, pattern := range patterns {
			matches, err := doublestar.FilepathGlob(pattern)
			if err != nil {
				return nil, fmt.Errorf("glob %q: %w", pattern, err)
			}
			paths = append(paths, matches...)
		}
		slices.Sort(paths)
		paths = slices.Compact(paths)
		if len(paths) == 0 {
			return nil, fmt.Errorf("no scripts match %v", patterns)
		}
		return paths, nil
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("no input provided (stdin is a terminal); use -f, a glob, or pipe a script")
	}
	return []string{stdinSource}, nil
}

// renderAll renders sources with at most cmd.jobs in flight. Once
// maxFailures scripts have failed, scripts not yet started are skipped.
// Results keep the order of sources.
func (cmd *RenderCmd) renderAll(ctx context.Context, logger zerolog.Logger, sources []string) []RenderResult {
	results := make([]RenderResult, len(sources))
	names := newOutputNames()
	var failures atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cmd.jobs, 1))

	for i, src := range sources {
		g.Go(func() error {
			if failures.Load() >= maxFailures {
				logger.Warn().Str("source", src).Msg("skipping script due to failure threshold")
				results[i] = RenderResult{Source: src, Status: StatusSkipped}
				return nil
			}

			results[i] = cmd.render(gctx, logger, src, names)
			if results[i].Status == StatusFailed {
				failures.Add(1)
				logger.Error().Str("source", src).Str("error", results[i].Error).Msg("render failed")
			} else {
				logger.Info().Str("source", src).Str("path", results[i].Path).Msg("rendered")
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

func (cmd *RenderCmd) render(ctx context.Context, logger zerolog.Logger, src string, names *outputNames) RenderResult {
	failed := func(err error) RenderResult {
		return RenderResult{Source: src, Status: StatusFailed, Error: err.Error()}
	}

	doc, err := readScript(src)
	if err != nil {
		return failed(err)
	}
	if err := doc.Validate(); err != nil {
		return failed(fmt.Errorf("invalid script: %w", err))
	}

	cfg := doc.Canvas(*cmd.flags.Config)
	svc, err := cmd.flags.NewSession(&cfg)
	if err != nil {
		return failed(err)
	}

	logger.Debug().Str("source", src).Int("steps", len(doc.Steps)).Msg("running script")

	res, err := script.Run(ctx, svc, doc)
	if err != nil {
		return failed(err)
	}

	name, err := svc.ExportName()
	if err != nil {
		return failed(err)
	}

	dir := cmd.outDir
	if dir == "" {
		dir = cfg.Export.Dir
	}
	path := names.claim(filepath.Join(dir, name))

	if err := svc.ExportTo(path); err != nil {
		return failed(err)
	}

	return RenderResult{Source: src, Path: path, Status: StatusRendered, Script: &res}
}

// outputNames hands out export paths that are unique within a render run.
type outputNames struct {
	mu    sync.Mutex
	taken map[string]bool
}

func newOutputNames() *outputNames {
	return &outputNames{taken: make(map[string]bool)}
}

// claim returns path, or path with a -N suffix before the extension when an
// earlier script already claimed it.
func (n *outputNames) claim(path string) string {
	n.mu.Lock()
	defer n.mu.Unlock()

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)

	candidate := path
	for i := 2; n.taken[candidate]; i++ {
		candidate = fmt.Sprintf("%s-%d%s", base, i, ext)
	}
	n.taken[candidate] = true
	return candidate
}

func readScript(src string) (script.Document, error) {
	var reader io.Reader = os.Stdin

	if src != stdinSource {
		f, err := os.Open(src)
		if err != nil {
			return script.Document{}, fmt.Errorf("open file: %w", err)
		}
		defer func() { _ = f.Close() }()
		reader = f
	}

	return script.Parse(reader)
}

func (cmd *RenderCmd) writeError(w io.Writer, err error) error {
	if encErr := writeJSON(w, RenderErrorOutput{Error: err.Error()}); encErr != nil {
		fmt.Fprintf(os.Stderr, "error: %s (failed to write JSON: %v)\n", err, encErr)
	}
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func countByStatus(results []RenderResult, status string) int {
	count := 0
	for _, r := range results {
		if r.Status == status {
			count++
		}
	}
	return count
}
