package doctor

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/slate/internal/core/config"
)

func bounded(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Canvas.Width, cfg.Canvas.Height = 10, 10
	cfg.Export.Dir = t.TempDir()
	cfg.History.MaxEntries = 20
	return &cfg
}

func TestConfigCheck(t *testing.T) {
	cfg := bounded(t)

	result := NewConfigCheck(cfg, "").Run(context.Background())
	require.Len(t, result.Items, 2)
	assert.Equal(t, "built-in defaults", result.Items[0].Detail)
	assert.Equal(t, "Config valid", result.Items[1].Label)
	assert.Equal(t, StatusPass, result.Status())

	cfg.Brush.Color = "nope"
	result = NewConfigCheck(cfg, "").Run(context.Background())
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusFail, result.Items[1].Status)
	assert.Equal(t, "brush.color", result.Items[1].Label)
	assert.Equal(t, StatusFail, result.Status())
}

func TestConfigCheck_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	result := NewConfigCheck(bounded(t), path).Run(context.Background())
	assert.Contains(t, result.Items[0].Detail, "not found, using defaults")
	assert.Equal(t, StatusPass, result.Status())

	require.NoError(t, os.WriteFile(path, []byte("canvas:\n  width: 10\n"), 0o644))
	result = NewConfigCheck(bounded(t), path).Run(context.Background())
	assert.Equal(t, path, result.Items[0].Detail)

	result = NewConfigCheck(bounded(t), dir).Run(context.Background())
	assert.Equal(t, StatusFail, result.Status())
}

func TestConfigCheck_Warnings(t *testing.T) {
	cfg := bounded(t)
	cfg.History.MaxEntries = 0

	result := NewConfigCheck(cfg, "").Run(context.Background())
	assert.Equal(t, StatusWarn, result.Status())
	assert.Equal(t, "History", result.Items[len(result.Items)-1].Label)
}

func TestConfigCheck_NotLoaded(t *testing.T) {
	result := NewConfigCheck(nil, "").Run(context.Background())
	assert.Equal(t, StatusFail, result.Items[0].Status)
}

func TestCanvasCheck(t *testing.T) {
	tests := []struct {
		name       string
		maxEntries int
		maxBytes   int
		want       Status
		detail     string
	}{
		{name: "entries", maxEntries: 20, want: StatusPass, detail: "up to 20 snapshots"},
		{name: "bytes", maxBytes: 4000, want: StatusPass, detail: "up to 10 snapshots"},
		{name: "smallest wins", maxEntries: 5, maxBytes: 4000, want: StatusPass, detail: "up to 5 snapshots"},
		{name: "unbounded", want: StatusWarn, detail: "unbounded"},
		{name: "single entry", maxEntries: 1, want: StatusWarn, detail: "undo needs at least 2"},
		{name: "too small", maxBytes: 10, want: StatusFail, detail: "cannot hold one snapshot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := bounded(t)
			cfg.History.MaxEntries = tt.maxEntries
			cfg.History.MaxBytes = tt.maxBytes

			result := NewCanvasCheck(cfg).Run(context.Background())
			require.Len(t, result.Items, 2)
			assert.Equal(t, StatusPass, result.Items[0].Status)
			assert.Contains(t, result.Items[0].Detail, "10x10")
			assert.Equal(t, tt.want, result.Items[1].Status)
			assert.Contains(t, result.Items[1].Detail, tt.detail)
		})
	}
}

func TestTerminalCheck(t *testing.T) {
	check := &TerminalCheck{
		isTerminal: func(int) bool { return false },
		profile:    func() termenv.Profile { return termenv.Ascii },
	}

	result := check.Run(context.Background())
	require.Len(t, result.Items, 2)
	assert.Equal(t, StatusWarn, result.Items[0].Status)
	assert.Equal(t, StatusWarn, result.Items[1].Status)

	check.isTerminal = func(int) bool { return true }
	check.profile = func() termenv.Profile { return termenv.TrueColor }

	result = check.Run(context.Background())
	assert.Equal(t, StatusPass, result.Items[0].Status)
	assert.Equal(t, StatusPass, result.Items[1].Status)
}

func TestRunAll(t *testing.T) {
	report := RunAll(context.Background(), []Check{
		NewConfigCheck(bounded(t), ""),
		NewCanvasCheck(bounded(t)),
	})

	assert.True(t, report.Healthy)
	assert.Equal(t, Summary{Passed: 4}, report.Summary)
	require.Len(t, report.Checks, 2)

	data, err := json.Marshal(report.Checks[0].Items[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"status":"pass"`)
}

func TestRunAll_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := RunAll(ctx, []Check{NewCanvasCheck(bounded(t))})
	assert.Empty(t, report.Checks)
	assert.True(t, report.Healthy)
}
