package tui

import (
	"image"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/whiteboard"
)

func newModel(t *testing.T) (Model, *whiteboard.Service) {
	t.Helper()
	cfg := testConfig(t)
	svc := newService(t, cfg)

	m := New(svc, cfg)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	return m, svc
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, button tea.MouseButton, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: button}
}

// drag presses at from, moves to to and releases there. Cells map to surface
// pixels one row below the header.
func drag(t *testing.T, m Model, from, to image.Point) Model {
	t.Helper()
	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, from.X, from.Y+headerRows))
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, to.X, to.Y+headerRows))
	return update(t, m, mouse(tea.MouseActionRelease, tea.MouseButtonNone, to.X, to.Y+headerRows))
}

func TestModel_DrawAndUndo(t *testing.T) {
	m, svc := newModel(t)

	m = drag(t, m, image.Pt(2, 1), image.Pt(12, 1))
	assert.Equal(t, raster.Black, svc.At(7, 2))
	assert.False(t, svc.Drawing())

	m = update(t, m, runes("u"))
	assert.NoError(t, m.err)
	assert.Equal(t, raster.White, svc.At(7, 2))

	m = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlY})
	assert.Equal(t, "redo", m.message)
	assert.Equal(t, raster.Black, svc.At(7, 2))
}

func TestModel_PressOutsideCanvasIgnored(t *testing.T) {
	m, svc := newModel(t)

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 2, 0))
	assert.False(t, svc.Drawing())

	update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonRight, 2, 2))
	assert.False(t, svc.Drawing())
}

func TestModel_ShapePreviewInView(t *testing.T) {
	m, svc := newModel(t)
	m = update(t, m, runes("1"))
	require.Equal(t, tools.Square, svc.Selection().Tool.ID)

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonLeft, 2, 2))
	m = update(t, m, mouse(tea.MouseActionMotion, tea.MouseButtonLeft, 10, 4))
	assert.Contains(t, m.View(), "drawing")
	assert.Equal(t, raster.White, svc.At(2, 2), "preview is not committed")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, svc.Drawing())
	assert.Equal(t, "stroke cancelled", m.message)
	assert.Equal(t, 1, svc.Status().Len)
}

func TestModel_WheelChangesWidth(t *testing.T) {
	m, svc := newModel(t)
	width := svc.Selection().Width

	m = update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelUp, 1, 1))
	assert.Equal(t, width+1, svc.Selection().Width)

	update(t, m, mouse(tea.MouseActionPress, tea.MouseButtonWheelDown, 1, 1))
	assert.Equal(t, width, svc.Selection().Width)
}

func TestModel_HandPans(t *testing.T) {
	cfg := testConfig(t)
	cfg.Canvas.Width = 100
	cfg.Canvas.Height = 60
	svc := newService(t, cfg)

	m := New(svc, cfg)
	m = update(t, m, tea.WindowSizeMsg{Width: 40, Height: 20})
	m = update(t, m, runes("m"))
	require.Equal(t, tools.Hand, svc.Selection().Tool.ID)

	m = drag(t, m, image.Pt(20, 10), image.Pt(15, 8))
	assert.Equal(t, image.Pt(5, 4), m.view.offset)
	assert.Nil(t, m.panFrom)
	assert.Equal(t, 1, svc.Status().Len, "panning does not touch history")
}

func TestModel_HelpToggle(t *testing.T) {
	m, _ := newModel(t)
	rows := m.view.rows

	m = update(t, m, runes("?"))
	assert.True(t, m.showHelp)
	assert.Less(t, m.view.rows, rows)
	assert.Contains(t, m.View(), "bigger")

	m = update(t, m, runes("?"))
	assert.False(t, m.showHelp)
	assert.Equal(t, rows, m.view.rows)
}

func TestModel_Quit(t *testing.T) {
	m, _ := newModel(t)

	next, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}

func TestModel_ViewStatus(t *testing.T) {
	m, _ := newModel(t)

	view := m.View()
	assert.Contains(t, view, "Untitled Whiteboard")
	assert.Contains(t, view, "Pencil")
	assert.Contains(t, view, "#000000")
	assert.Contains(t, view, "history 1/1")
}
