package tui

import (
	"fmt"
	"image/color"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/whiteboard"
)

// ActionType identifies the kind of action a keybinding triggers.
type ActionType int

const (
	ActionTypeNone ActionType = iota
	ActionTypeUndo
	ActionTypeRedo
	ActionTypeCheckpoint
	ActionTypeClear
	ActionTypeExport
	ActionTypeNextColor
	ActionTypePrevColor
	ActionTypeSizeUp
	ActionTypeSizeDown
	ActionTypeTool
	ActionTypeBrush
)

var actionTypes = map[string]ActionType{
	config.ActionUndo:       ActionTypeUndo,
	config.ActionRedo:       ActionTypeRedo,
	config.ActionCheckpoint: ActionTypeCheckpoint,
	config.ActionClear:      ActionTypeClear,
	config.ActionExport:     ActionTypeExport,
	config.ActionNextColor:  ActionTypeNextColor,
	config.ActionPrevColor:  ActionTypePrevColor,
	config.ActionSizeUp:     ActionTypeSizeUp,
	config.ActionSizeDown:   ActionTypeSizeDown,
}

// Action represents a resolved keybinding action ready for execution.
type Action struct {
	Type   ActionType
	Key    string
	Help   string
	Target string // tool or brush ID for ActionTypeTool and ActionTypeBrush
}

// KeybindingHandler resolves keybindings to actions and applies them to a
// whiteboard session.
type KeybindingHandler struct {
	keybindings map[string]config.Keybinding
	service     *whiteboard.Service
	palette     []color.NRGBA
}

// NewKeybindingHandler creates a new handler. Palette entries that fail to
// parse are skipped; config validation reports them.
func NewKeybindingHandler(keybindings map[string]config.Keybinding, palette []string, service *whiteboard.Service) *KeybindingHandler {
	colors := make([]color.NRGBA, 0, len(palette))
	for _, hex := range palette {
		if c, err := raster.ParseColor(hex); err == nil {
			colors = append(colors, c)
		}
	}

	return &KeybindingHandler{
		keybindings: keybindings,
		service:     service,
		palette:     colors,
	}
}

// Resolve attempts to resolve a key press to an action.
func (h *KeybindingHandler) Resolve(k string) (Action, bool) {
	kb, exists := h.keybindings[k]
	if !exists {
		return Action{}, false
	}

	action := Action{Key: k, Help: kb.Help}
	if action.Help == "" {
		action.Help = kb.Action
	}

	switch {
	case strings.HasPrefix(kb.Action, config.ActionToolPrefix):
		action.Type = ActionTypeTool
		action.Target = strings.TrimPrefix(kb.Action, config.ActionToolPrefix)
	case strings.HasPrefix(kb.Action, config.ActionBrushPrefix):
		action.Type = ActionTypeBrush
		action.Target = strings.TrimPrefix(kb.Action, config.ActionBrushPrefix)
	default:
		t, ok := actionTypes[kb.Action]
		if !ok {
			return Action{}, false
		}
		action.Type = t
	}

	return action, true
}

// Execute applies action to the session and returns a short status message.
func (h *KeybindingHandler) Execute(action Action) (string, error) {
	svc := h.service
	sel := svc.Selection()

	switch action.Type {
	case ActionTypeUndo:
		if !svc.CanUndo() {
			return "nothing to undo", nil
		}
		return "undo", svc.Undo()
	case ActionTypeRedo:
		if !svc.CanRedo() {
			return "nothing to redo", nil
		}
		return "redo", svc.Redo()
	case ActionTypeCheckpoint:
		return "checkpoint saved", svc.Checkpoint()
	case ActionTypeClear:
		return "canvas cleared", svc.Clear()
	case ActionTypeExport:
		path, err := svc.ExportFile("")
		if err != nil {
			return "", err
		}
		return "exported " + path, nil
	case ActionTypeNextColor, ActionTypePrevColor:
		if len(h.palette) == 0 {
			return "palette is empty", nil
		}
		step := 1
		if action.Type == ActionTypePrevColor {
			step = -1
		}
		c := h.cycleColor(sel.Color, step)
		svc.Select(sel.WithColor(c))
		return "color " + raster.Hex(c), nil
	case ActionTypeSizeUp:
		svc.Select(sel.WithWidth(sel.Width + 1))
		return fmt.Sprintf("width %.0fpx", svc.Selection().Width), nil
	case ActionTypeSizeDown:
		svc.Select(sel.WithWidth(sel.Width - 1))
		return fmt.Sprintf("width %.0fpx", svc.Selection().Width), nil
	case ActionTypeTool:
		tool, err := tools.Lookup(action.Target)
		if err != nil {
			return "", err
		}
		svc.Select(sel.WithTool(tool))
		return "tool " + tool.Name, nil
	case ActionTypeBrush:
		brush, err := tools.LookupBrush(action.Target)
		if err != nil {
			return "", err
		}
		svc.Select(sel.WithBrush(brush))
		return "brush " + brush.Name, nil
	default:
		return "", fmt.Errorf("action type %d not supported by Execute", action.Type)
	}
}

// cycleColor returns the palette entry step positions from current. A color
// not in the palette starts from the first entry.
func (h *KeybindingHandler) cycleColor(current color.NRGBA, step int) color.NRGBA {
	idx := slices.Index(h.palette, current)
	if idx < 0 {
		return h.palette[0]
	}
	n := len(h.palette)
	return h.palette[((idx+step)%n+n)%n]
}

// HelpEntries returns all configured keybindings for display, sorted by key.
func (h *KeybindingHandler) HelpEntries() []string {
	keys := slices.Sorted(maps.Keys(h.keybindings))

	entries := make([]string, 0, len(h.keybindings))
	for _, k := range keys {
		entries = append(entries, fmt.Sprintf("[%s] %s", k, h.help(k)))
	}
	return entries
}

// HelpString returns a formatted help string for all keybindings.
func (h *KeybindingHandler) HelpString() string {
	return strings.Join(h.HelpEntries(), "  ")
}

// KeyBindings returns key.Binding objects for integration with bubbles help system.
func (h *KeybindingHandler) KeyBindings() []key.Binding {
	keys := slices.Sorted(maps.Keys(h.keybindings))
	bindings := make([]key.Binding, 0, len(keys))

	for _, k := range keys {
		bindings = append(bindings, key.NewBinding(
			key.WithKeys(k),
			key.WithHelp(k, h.help(k)),
		))
	}

	return bindings
}

func (h *KeybindingHandler) help(k string) string {
	kb := h.keybindings[k]
	if kb.Help != "" {
		return kb.Help
	}
	return kb.Action
}
