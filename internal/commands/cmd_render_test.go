package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"go.uber.org/goleak"

	"github.com/hay-kot/slate/internal/core/config"
)

func testFlags(t *testing.T) *Flags {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Canvas.Width, cfg.Canvas.Height = 32, 16
	cfg.Export.Dir = t.TempDir()
	return &Flags{Config: &cfg}
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRenderCmd_Globs(t *testing.T) {
	flags := testFlags(t)
	src := t.TempDir()
	out := t.TempDir()

	writeScript(t, src, "a/one.yaml", "title: One\nsteps:\n  - op: stroke\n    points: [{x: 1, y: 1}, {x: 20, y: 8}]\n")
	writeScript(t, src, "b/c/two.json", `{"title":"Two","steps":[{"op":"shape","shape":"circle","from":{"x":2,"y":2},"to":{"x":12,"y":12}}]}`)

	var buf bytes.Buffer
	app := &cli.Command{Name: "slate", Writer: &buf}
	app = NewRenderCmd(flags).Register(app)

	err := app.Run(context.Background(), []string{
		"slate", "render", "-o", out,
		filepath.Join(src, "**", "*.yaml"),
		filepath.Join(src, "**", "*.json"),
	})
	require.NoError(t, err)

	var output RenderOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	require.Len(t, output.Results, 2)

	for _, r := range output.Results {
		assert.Equal(t, StatusRendered, r.Status, r.Error)
		assert.FileExists(t, r.Path)
		require.NotNil(t, r.Script)
		assert.Equal(t, 1, r.Script.StepsApplied)
	}
	assert.Equal(t, filepath.Join(out, "one.png"), output.Results[0].Path)
	assert.Equal(t, filepath.Join(out, "two.png"), output.Results[1].Path)
}

func TestRenderCmd_Sources(t *testing.T) {
	dir := t.TempDir()
	writeScript(t, dir, "x.yaml", "steps: []")

	cmd := &RenderCmd{flags: testFlags(t)}

	got, err := cmd.sources([]string{filepath.Join(dir, "*.yaml"), filepath.Join(dir, "x.yaml")})
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "x.yaml")}, got, "duplicates are removed")

	_, err = cmd.sources([]string{filepath.Join(dir, "*.toml")})
	assert.ErrorContains(t, err, "no scripts match")

	cmd.file = "explicit.yaml"
	got, err = cmd.sources([]string{"ignored"})
	require.NoError(t, err)
	assert.Equal(t, []string{"explicit.yaml"}, got)
}

func TestRenderCmd_RenderFailures(t *testing.T) {
	dir := t.TempDir()
	cmd := &RenderCmd{flags: testFlags(t), outDir: t.TempDir()}

	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"parse", "steps: [", "decode script"},
		{"validate", "steps: []", "invalid script"},
		{"unknown tool", "width: 4\nheight: 4\nsteps:\n  - op: select\n    tool: lasso\n", "invalid script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeScript(t, dir, tt.name+".yaml", tt.body)

			res := cmd.render(context.Background(), zerolog.Nop(), path, newOutputNames())
			assert.Equal(t, StatusFailed, res.Status)
			assert.Contains(t, res.Error, tt.wantErr)
			assert.Empty(t, res.Path)
		})
	}

	res := cmd.render(context.Background(), zerolog.Nop(), filepath.Join(dir, "missing.yaml"), newOutputNames())
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Error, "open file")
}

func TestRenderCmd_RenderAllStopsAfterFailures(t *testing.T) {
	dir := t.TempDir()
	cmd := &RenderCmd{flags: testFlags(t), outDir: t.TempDir(), jobs: 1}

	var sources []string
	for i := range 5 {
		sources = append(sources, writeScript(t, dir, fmt.Sprintf("bad%d.yaml", i), "steps: ["))
	}

	results := cmd.renderAll(context.Background(), zerolog.Nop(), sources)
	require.Len(t, results, 5)
	assert.Equal(t, maxFailures, countByStatus(results, StatusFailed))
	assert.Equal(t, StatusSkipped, results[3].Status)
	assert.Equal(t, StatusSkipped, results[4].Status)
}

func TestRenderCmd_RenderAllConcurrent(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	out := t.TempDir()
	cmd := &RenderCmd{flags: testFlags(t), outDir: out, jobs: 4}

	var sources []string
	for i := range 6 {
		body := fmt.Sprintf("title: Board %d\nsteps:\n  - op: stroke\n    points: [{x: 1, y: %d}, {x: 30, y: %d}]\n", i, i, i)
		sources = append(sources, writeScript(t, dir, fmt.Sprintf("s%d.yaml", i), body))
	}

	results := cmd.renderAll(context.Background(), zerolog.Nop(), sources)
	require.Len(t, results, 6)
	for i, r := range results {
		assert.Equal(t, sources[i], r.Source, "results keep input order")
		assert.Equal(t, StatusRendered, r.Status, r.Error)
		assert.Equal(t, filepath.Join(out, fmt.Sprintf("board-%d.png", i)), r.Path)
	}
}

func TestRenderCmd_RenderAllSuffixesSharedNames(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()

	body := "steps:\n  - op: stroke\n    points: [{x: 1, y: 1}, {x: 30, y: 1}]\n"
	var sources []string
	for i := range 3 {
		sources = append(sources, writeScript(t, dir, fmt.Sprintf("untitled%d.yaml", i), body))
	}

	t.Run("sequential", func(t *testing.T) {
		cmd := &RenderCmd{flags: testFlags(t), outDir: out, jobs: 1}

		results := cmd.renderAll(context.Background(), zerolog.Nop(), sources)
		require.Len(t, results, 3)
		assert.Equal(t, filepath.Join(out, "untitled-whiteboard.png"), results[0].Path)
		assert.Equal(t, filepath.Join(out, "untitled-whiteboard-2.png"), results[1].Path)
		assert.Equal(t, filepath.Join(out, "untitled-whiteboard-3.png"), results[2].Path)
	})

	t.Run("concurrent", func(t *testing.T) {
		out := t.TempDir()
		cmd := &RenderCmd{flags: testFlags(t), outDir: out, jobs: 3}

		results := cmd.renderAll(context.Background(), zerolog.Nop(), sources)
		paths := make(map[string]bool)
		for _, r := range results {
			require.Equal(t, StatusRendered, r.Status, r.Error)
			assert.FileExists(t, r.Path)
			paths[r.Path] = true
		}
		assert.Len(t, paths, 3, "every script gets its own file")
	})
}

func TestOutputNames_Claim(t *testing.T) {
	names := newOutputNames()

	assert.Equal(t, "out/board.png", names.claim("out/board.png"))
	assert.Equal(t, "out/board-2.png", names.claim("out/board-2.png"))
	assert.Equal(t, "out/board-3.png", names.claim("out/board.png"), "skips names already handed out")
	assert.Equal(t, "other/board.png", names.claim("other/board.png"))

	assert.Equal(t, "out/noext", names.claim("out/noext"))
	assert.Equal(t, "out/noext-2", names.claim("out/noext"))
}

func TestCountByStatus(t *testing.T) {
	results := []RenderResult{
		{Status: StatusRendered},
		{Status: StatusFailed},
		{Status: StatusRendered},
		{Status: StatusSkipped},
	}

	assert.Equal(t, 2, countByStatus(results, StatusRendered))
	assert.Equal(t, 1, countByStatus(results, StatusFailed))
	assert.Equal(t, 1, countByStatus(results, StatusSkipped))
}
