// Package config handles configuration loading and validation for slate.
package config

import (
	"fmt"
	"image/color"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
)

// Built-in action names for keybindings.
const (
	ActionUndo       = "undo"
	ActionRedo       = "redo"
	ActionCheckpoint = "checkpoint"
	ActionClear      = "clear"
	ActionExport     = "export"
	ActionNextColor  = "next-color"
	ActionPrevColor  = "prev-color"
	ActionSizeUp     = "size-up"
	ActionSizeDown   = "size-down"

	// ActionToolPrefix selects a tool, e.g. "tool:eraser".
	ActionToolPrefix = "tool:"
	// ActionBrushPrefix selects a brush type, e.g. "brush:highlighter".
	ActionBrushPrefix = "brush:"
)

// defaultKeybindings provides built-in keybindings that users can override.
var defaultKeybindings = map[string]Keybinding{
	"u":      {Action: ActionUndo, Help: "undo"},
	"ctrl+z": {Action: ActionUndo, Help: "undo"},
	"r":      {Action: ActionRedo, Help: "redo"},
	"ctrl+y": {Action: ActionRedo, Help: "redo"},
	"w":      {Action: ActionCheckpoint, Help: "checkpoint"},
	"x":      {Action: ActionClear, Help: "clear"},
	"s":      {Action: ActionExport, Help: "export png"},
	"]":      {Action: ActionNextColor, Help: "next color"},
	"[":      {Action: ActionPrevColor, Help: "prev color"},
	"+":      {Action: ActionSizeUp, Help: "bigger"},
	"-":      {Action: ActionSizeDown, Help: "smaller"},
	"p":      {Action: ActionToolPrefix + tools.Pencil, Help: "pencil"},
	"h":      {Action: ActionToolPrefix + tools.Highlighter, Help: "highlighter"},
	"e":      {Action: ActionToolPrefix + tools.Eraser, Help: "eraser"},
	"1":      {Action: ActionToolPrefix + tools.Square, Help: "square"},
	"2":      {Action: ActionToolPrefix + tools.Circle, Help: "circle"},
	"3":      {Action: ActionToolPrefix + tools.Triangle, Help: "triangle"},
	"m":      {Action: ActionToolPrefix + tools.Hand, Help: "pan"},
}

// defaultPalette mirrors the color picker swatches.
var defaultPalette = []string{
	"#000000", "#ef4444", "#f97316", "#eab308", "#22c55e",
	"#3b82f6", "#8b5cf6", "#ec4899", "#ffffff",
}

// Config holds the application configuration.
type Config struct {
	Canvas      CanvasConfig          `yaml:"canvas"`
	History     HistoryConfig         `yaml:"history"`
	Brush       BrushConfig           `yaml:"brush"`
	Export      ExportConfig          `yaml:"export"`
	Palette     []string              `yaml:"palette"`
	Keybindings map[string]Keybinding `yaml:"keybindings"`

	warnings []ValidationWarning
}

// CanvasConfig holds the drawing surface dimensions.
type CanvasConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// HistoryConfig bounds undo history memory.
type HistoryConfig struct {
	// MaxEntries caps the number of snapshots kept (0 = unbounded).
	MaxEntries int `yaml:"max_entries"`
	// MaxBytes caps the total snapshot bytes kept (0 = unbounded).
	MaxBytes int `yaml:"max_bytes"`
}

// BrushConfig sets the initial tool selection.
type BrushConfig struct {
	Type  string `yaml:"type"`
	Color string `yaml:"color"`
}

// ExportConfig controls PNG export.
type ExportConfig struct {
	Dir string `yaml:"dir"`
	// Filename is a Go template rendered with ExportTemplateData.
	Filename string `yaml:"filename"`
}

// Keybinding defines a TUI keybinding action.
type Keybinding struct {
	Action string `yaml:"action"` // built-in action name
	Help   string `yaml:"help"`   // help text shown in TUI
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Canvas: CanvasConfig{
			Width:      160,
			Height:     96,
			Background: "#ffffff",
		},
		History: HistoryConfig{
			MaxEntries: 0,
			MaxBytes:   0,
		},
		Brush: BrushConfig{
			Type:  "pencil",
			Color: "#000000",
		},
		Export: ExportConfig{
			Dir:      ".",
			Filename: "{{ .Slug }}.png",
		},
		Palette:     append([]string(nil), defaultPalette...),
		Keybindings: map[string]Keybinding{},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			data, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}

			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Merge user keybindings into defaults (user config overrides defaults)
	cfg.Keybindings = mergeKeybindings(defaultKeybindings, cfg.Keybindings)

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Canvas.Width == 0 {
		c.Canvas.Width = defaults.Canvas.Width
	}
	if c.Canvas.Height == 0 {
		c.Canvas.Height = defaults.Canvas.Height
	}
	if c.Canvas.Background == "" {
		c.Canvas.Background = defaults.Canvas.Background
	}
	if c.Brush.Type == "" {
		c.Brush.Type = defaults.Brush.Type
	}
	if c.Brush.Color == "" {
		c.Brush.Color = defaults.Brush.Color
	}
	if c.Export.Dir == "" {
		c.Export.Dir = defaults.Export.Dir
	}
	if c.Export.Filename == "" {
		c.Export.Filename = defaults.Export.Filename
	}
	if len(c.Palette) == 0 {
		c.Palette = defaults.Palette
	}
}

// mergeKeybindings merges user keybindings into defaults.
// User keybindings override defaults for the same key.
func mergeKeybindings(defaults, user map[string]Keybinding) map[string]Keybinding {
	result := make(map[string]Keybinding, len(defaults)+len(user))

	for k, v := range defaults {
		result[k] = v
	}

	for k, v := range user {
		result[k] = v
	}

	return result
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.Canvas.Width < 1 {
		errs = errs.Append("canvas.width", fmt.Errorf("must be at least 1"))
	}
	if c.Canvas.Height < 1 {
		errs = errs.Append("canvas.height", fmt.Errorf("must be at least 1"))
	}
	if c.Canvas.Width > 0 && c.Canvas.Height > 0 && c.Canvas.Width > raster.DefaultMaxPixels/c.Canvas.Height {
		errs = errs.Append("canvas", fmt.Errorf("%dx%d exceeds %d pixels", c.Canvas.Width, c.Canvas.Height, raster.DefaultMaxPixels))
	}
	if _, err := raster.ParseColor(c.Canvas.Background); err != nil {
		errs = errs.Append("canvas.background", err)
	}

	if c.History.MaxEntries < 0 {
		errs = errs.Append("history.max_entries", fmt.Errorf("cannot be negative"))
	}
	if c.History.MaxBytes < 0 {
		errs = errs.Append("history.max_bytes", fmt.Errorf("cannot be negative"))
	}

	if _, err := tools.LookupBrush(c.Brush.Type); err != nil {
		errs = errs.Append("brush.type", err)
	}
	if _, err := raster.ParseColor(c.Brush.Color); err != nil {
		errs = errs.Append("brush.color", err)
	}

	for i, hex := range c.Palette {
		if _, err := raster.ParseColor(hex); err != nil {
			errs = errs.Append(fmt.Sprintf("palette[%d]", i), err)
		}
	}

	for _, key := range c.SortedKeys() {
		if err := validateAction(c.Keybindings[key].Action); err != nil {
			errs = errs.Append(fmt.Sprintf("keybindings.%s", key), err)
		}
	}

	return errs.ToError()
}

// SortedKeys returns the bound keys in lexical order.
func (c *Config) SortedKeys() []string {
	return slices.Sorted(maps.Keys(c.Keybindings))
}

// Warnings returns non-fatal issues found by the last ValidateDeep call.
func (c *Config) Warnings() []ValidationWarning {
	return c.warnings
}

// BrushColor returns the parsed initial brush color.
func (c *Config) BrushColor() (color.NRGBA, error) {
	return raster.ParseColor(c.Brush.Color)
}

// BackgroundColor returns the parsed canvas background.
func (c *Config) BackgroundColor() (color.NRGBA, error) {
	return raster.ParseColor(c.Canvas.Background)
}

func validateAction(action string) error {
	switch {
	case action == "":
		return fmt.Errorf("action is required")
	case strings.HasPrefix(action, ActionToolPrefix):
		_, err := tools.Lookup(strings.TrimPrefix(action, ActionToolPrefix))
		return err
	case strings.HasPrefix(action, ActionBrushPrefix):
		_, err := tools.LookupBrush(strings.TrimPrefix(action, ActionBrushPrefix))
		return err
	case isValidAction(action):
		return nil
	default:
		return fmt.Errorf("invalid action %q", action)
	}
}

func isValidAction(action string) bool {
	switch action {
	case ActionUndo, ActionRedo, ActionCheckpoint, ActionClear, ActionExport,
		ActionNextColor, ActionPrevColor, ActionSizeUp, ActionSizeDown:
		return true
	default:
		return false
	}
}
