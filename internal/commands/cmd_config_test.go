package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/slate/internal/core/config"
)

func runConfig(t *testing.T, cfg *config.Config, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	app := &cli.Command{Name: "slate", Writer: &buf}
	app = NewConfigCmd(&Flags{Config: cfg}).Register(app)

	require.NoError(t, app.Run(context.Background(), append([]string{"slate", "config"}, args...)))
	return buf.String()
}

func TestConfigCmd_ValidateJSON(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Export.Dir = t.TempDir()

	var out struct {
		Valid bool `json:"valid"`
		Items []struct {
			Label  string `json:"label"`
			Status string `json:"status"`
		} `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(runConfig(t, cfg, "validate", "--format", "json")), &out))

	assert.True(t, out.Valid, "warnings pass without --strict")
	require.NotEmpty(t, out.Items)
	assert.Equal(t, "Config file", out.Items[0].Label)

	var warned bool
	for _, item := range out.Items {
		if item.Status == "warn" {
			warned = true
		}
	}
	assert.True(t, warned, "unbounded history is reported")
}

func TestConfigCmd_Show(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Canvas.Width = 321

	var got config.Config
	require.NoError(t, yaml.Unmarshal([]byte(runConfig(t, cfg, "show")), &got))
	assert.Equal(t, 321, got.Canvas.Width)
	assert.Equal(t, cfg.Keybindings, got.Keybindings)
}
