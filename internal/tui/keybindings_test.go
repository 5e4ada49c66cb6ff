package tui

import (
	"image"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/whiteboard"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Canvas.Width = 20
	cfg.Canvas.Height = 12
	cfg.Export.Dir = t.TempDir()
	return cfg
}

func newService(t *testing.T, cfg *config.Config) *whiteboard.Service {
	t.Helper()
	svc, err := whiteboard.New(cfg, zerolog.Nop())
	require.NoError(t, err)
	return svc
}

func TestKeybindingHandler_Resolve(t *testing.T) {
	keybindings := map[string]config.Keybinding{
		"u": {Action: config.ActionUndo, Help: "undo"},
		"e": {Action: config.ActionToolPrefix + tools.Eraser},
		"b": {Action: config.ActionBrushPrefix + "highlighter", Help: "highlighter"},
		"z": {Action: "launch"},
	}

	handler := NewKeybindingHandler(keybindings, nil, nil)

	tests := []struct {
		name       string
		key        string
		wantOK     bool
		wantTyp    ActionType
		wantTarget string
		wantHelp   string
	}{
		{name: "built-in action", key: "u", wantOK: true, wantTyp: ActionTypeUndo, wantHelp: "undo"},
		{name: "tool action falls back to action help", key: "e", wantOK: true, wantTyp: ActionTypeTool, wantTarget: tools.Eraser, wantHelp: "tool:eraser"},
		{name: "brush action", key: "b", wantOK: true, wantTyp: ActionTypeBrush, wantTarget: "highlighter", wantHelp: "highlighter"},
		{name: "unknown action", key: "z", wantOK: false},
		{name: "unbound key", key: "x", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, ok := handler.Resolve(tt.key)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantTyp, action.Type)
			assert.Equal(t, tt.wantTarget, action.Target)
			assert.Equal(t, tt.wantHelp, action.Help)
			assert.Equal(t, tt.key, action.Key)
		})
	}
}

func TestKeybindingHandler_ExecuteHistory(t *testing.T) {
	cfg := testConfig(t)
	svc := newService(t, cfg)
	handler := NewKeybindingHandler(cfg.Keybindings, cfg.Palette, svc)

	msg, err := handler.Execute(Action{Type: ActionTypeUndo})
	require.NoError(t, err)
	assert.Equal(t, "nothing to undo", msg)

	require.NoError(t, svc.BeginStroke(image.Pt(1, 1)))
	svc.ContinueStroke(image.Pt(10, 1))
	require.NoError(t, svc.EndStroke(image.Pt(10, 1)))

	_, err = handler.Execute(Action{Type: ActionTypeUndo})
	require.NoError(t, err)
	assert.Equal(t, raster.White, svc.At(5, 1))

	msg, err = handler.Execute(Action{Type: ActionTypeRedo})
	require.NoError(t, err)
	assert.Equal(t, "redo", msg)
	assert.Equal(t, raster.Black, svc.At(5, 1))

	msg, err = handler.Execute(Action{Type: ActionTypeRedo})
	require.NoError(t, err)
	assert.Equal(t, "nothing to redo", msg)

	_, err = handler.Execute(Action{Type: ActionTypeClear})
	require.NoError(t, err)
	assert.Equal(t, raster.White, svc.At(5, 1))
}

func TestKeybindingHandler_ExecuteSelection(t *testing.T) {
	cfg := testConfig(t)
	svc := newService(t, cfg)
	handler := NewKeybindingHandler(cfg.Keybindings, []string{"#000000", "#ef4444", "nope"}, svc)

	msg, err := handler.Execute(Action{Type: ActionTypeNextColor})
	require.NoError(t, err)
	assert.Equal(t, "color #ef4444", msg)

	_, err = handler.Execute(Action{Type: ActionTypeNextColor})
	require.NoError(t, err)
	assert.Equal(t, raster.Black, svc.Selection().Color, "wraps around")

	_, err = handler.Execute(Action{Type: ActionTypePrevColor})
	require.NoError(t, err)
	assert.Equal(t, raster.MustParseColor("#ef4444"), svc.Selection().Color)

	width := svc.Selection().Width
	_, err = handler.Execute(Action{Type: ActionTypeSizeUp})
	require.NoError(t, err)
	assert.Equal(t, width+1, svc.Selection().Width)

	_, err = handler.Execute(Action{Type: ActionTypeTool, Target: tools.Circle})
	require.NoError(t, err)
	assert.Equal(t, tools.Circle, svc.Selection().Tool.ID)

	msg, err = handler.Execute(Action{Type: ActionTypeBrush, Target: "highlighter"})
	require.NoError(t, err)
	assert.Contains(t, msg, "brush")
	assert.Equal(t, 0.4, svc.Selection().Opacity)

	_, err = handler.Execute(Action{Type: ActionTypeTool, Target: "lasso"})
	assert.ErrorIs(t, err, tools.ErrUnknownTool)

	_, err = handler.Execute(Action{Type: ActionTypeNone})
	assert.Error(t, err)
}

func TestKeybindingHandler_ExecuteExport(t *testing.T) {
	cfg := testConfig(t)
	svc := newService(t, cfg)
	handler := NewKeybindingHandler(cfg.Keybindings, cfg.Palette, svc)

	msg, err := handler.Execute(Action{Type: ActionTypeExport})
	require.NoError(t, err)
	assert.Contains(t, msg, "untitled-whiteboard.png")
	assert.FileExists(t, msg[len("exported "):])
}

func TestKeybindingHandler_HelpEntries(t *testing.T) {
	handler := NewKeybindingHandler(map[string]config.Keybinding{
		"u": {Action: config.ActionUndo, Help: "undo"},
		"c": {Action: config.ActionClear},
	}, nil, nil)

	assert.Equal(t, []string{"[c] clear", "[u] undo"}, handler.HelpEntries())
	assert.Equal(t, "[c] clear  [u] undo", handler.HelpString())

	bindings := handler.KeyBindings()
	require.Len(t, bindings, 2)
	assert.Equal(t, "c", bindings[0].Help().Key)
	assert.Equal(t, "undo", bindings[1].Help().Desc)
}
