// Package script parses and runs batch drawing scripts: a title, an optional
// board template and an ordered list of drawing steps applied to a
// whiteboard session.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hay-kot/criterio"
	"gopkg.in/yaml.v3"

	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/core/validate"
)

// Op names a step operation.
type Op string

const (
	OpStroke Op = "stroke"
	OpShape  Op = "shape"
	OpErase  Op = "erase"
	OpSave   Op = "save"
	OpUndo   Op = "undo"
	OpRedo   Op = "redo"
	OpClear  Op = "clear"
	OpSelect Op = "select"
	OpNote   Op = "note"
	OpText   Op = "text"
)

// Ops lists every supported operation.
var Ops = []Op{OpStroke, OpShape, OpErase, OpSave, OpUndo, OpRedo, OpClear, OpSelect, OpNote, OpText}

// Point is a surface coordinate.
type Point struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

func (p Point) validate() error {
	if !inRange(p.X) || !inRange(p.Y) {
		return fmt.Errorf("(%d, %d) is outside ±%d", p.X, p.Y, raster.MaxCoordinate)
	}
	return nil
}

func inRange(v int) bool {
	return v >= -raster.MaxCoordinate && v <= raster.MaxCoordinate
}

// Document is a drawing script.
type Document struct {
	Title    string `yaml:"title" json:"title"`
	Template string `yaml:"template" json:"template"`
	// Width and Height override the configured canvas size when set.
	Width  int    `yaml:"width" json:"width"`
	Height int    `yaml:"height" json:"height"`
	Steps  []Step `yaml:"steps" json:"steps"`
}

// Step is one operation. Which fields apply depends on Op.
type Step struct {
	Op Op `yaml:"op" json:"op"`

	// stroke, erase
	Points []Point `yaml:"points,omitempty" json:"points,omitempty"`

	// shape
	Shape string `yaml:"shape,omitempty" json:"shape,omitempty"`
	From  *Point `yaml:"from,omitempty" json:"from,omitempty"`
	To    *Point `yaml:"to,omitempty" json:"to,omitempty"`

	// select; Width also sets the eraser width for erase
	Tool    string  `yaml:"tool,omitempty" json:"tool,omitempty"`
	Brush   string  `yaml:"brush,omitempty" json:"brush,omitempty"`
	Color   string  `yaml:"color,omitempty" json:"color,omitempty"`
	Width   float64 `yaml:"width,omitempty" json:"width,omitempty"`
	Opacity float64 `yaml:"opacity,omitempty" json:"opacity,omitempty"`

	// note, text; Color also sets the note color
	Content  string `yaml:"content,omitempty" json:"content,omitempty"`
	At       Point  `yaml:"at,omitempty" json:"at,omitempty"`
	FontSize int    `yaml:"font_size,omitempty" json:"font_size,omitempty"`
}

// Parse decodes a YAML or JSON document. Unknown fields are rejected.
func Parse(r io.Reader) (Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Document{}, fmt.Errorf("read script: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc Document
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("decode script: empty document")
		}
		return Document{}, fmt.Errorf("decode script: %w", err)
	}
	return doc, nil
}

// Canvas returns cfg with the canvas size overridden by the document.
func (d Document) Canvas(cfg config.Config) config.Config {
	if d.Width > 0 {
		cfg.Canvas.Width = d.Width
	}
	if d.Height > 0 {
		cfg.Canvas.Height = d.Height
	}
	return cfg
}

// Validate checks the document for errors using criterio.
func (d Document) Validate() error {
	if len(d.Steps) == 0 {
		return criterio.NewFieldErrors("steps", fmt.Errorf("array is empty"))
	}

	var errs criterio.FieldErrorsBuilder

	if d.Title != "" {
		if err := validate.Title(d.Title); err != nil {
			errs = errs.Append("title", err)
		}
	}
	if d.Template != "" {
		if _, err := tools.LookupTemplate(d.Template); err != nil {
			errs = errs.Append("template", err)
		}
	}
	if d.Width < 0 {
		errs = errs.Append("width", fmt.Errorf("cannot be negative"))
	}
	if d.Height < 0 {
		errs = errs.Append("height", fmt.Errorf("cannot be negative"))
	}

	for i, step := range d.Steps {
		errs = step.validate(errs, fmt.Sprintf("steps[%d]", i))
	}

	return errs.ToError()
}

// validate appends the step's field errors under the given prefix.
func (s Step) validate(errs criterio.FieldErrorsBuilder, prefix string) criterio.FieldErrorsBuilder {
	field := func(name string) string { return prefix + "." + name }

	switch s.Op {
	case OpStroke, OpErase:
		if len(s.Points) < 2 {
			errs = errs.Append(field("points"), fmt.Errorf("needs at least 2 points, got %d", len(s.Points)))
		}
		for i, p := range s.Points {
			if err := p.validate(); err != nil {
				errs = errs.Append(field(fmt.Sprintf("points[%d]", i)), err)
			}
		}
		if s.Width < 0 {
			errs = errs.Append(field("width"), fmt.Errorf("cannot be negative"))
		}
	case OpShape:
		if !raster.ShapeKind(s.Shape).Valid() {
			errs = errs.Append(field("shape"), fmt.Errorf("unknown shape %q", s.Shape))
		}
		if s.From == nil {
			errs = errs.Append(field("from"), fmt.Errorf("is required"))
		} else if err := s.From.validate(); err != nil {
			errs = errs.Append(field("from"), err)
		}
		if s.To == nil {
			errs = errs.Append(field("to"), fmt.Errorf("is required"))
		} else if err := s.To.validate(); err != nil {
			errs = errs.Append(field("to"), err)
		}
	case OpSelect:
		if s.Tool == "" && s.Brush == "" && s.Color == "" && s.Width == 0 && s.Opacity == 0 {
			errs = errs.Append(field("op"), fmt.Errorf("select needs at least one of tool, brush, color, width, opacity"))
		}
		if s.Tool != "" {
			if _, err := tools.Lookup(s.Tool); err != nil {
				errs = errs.Append(field("tool"), err)
			}
		}
		if s.Brush != "" {
			if _, err := tools.LookupBrush(s.Brush); err != nil {
				errs = errs.Append(field("brush"), err)
			}
		}
		if s.Color != "" {
			if _, err := raster.ParseColor(s.Color); err != nil {
				errs = errs.Append(field("color"), err)
			}
		}
		if s.Width < 0 {
			errs = errs.Append(field("width"), fmt.Errorf("cannot be negative"))
		}
		if s.Opacity != 0 {
			if err := validate.Opacity(s.Opacity); err != nil {
				errs = errs.Append(field("opacity"), err)
			}
		}
	case OpNote, OpText:
		if s.Content == "" {
			errs = errs.Append(field("content"), fmt.Errorf("is required"))
		}
		if s.Op == OpNote && s.Color != "" {
			if _, err := raster.ParseColor(s.Color); err != nil {
				errs = errs.Append(field("color"), err)
			}
		}
		if s.FontSize < 0 {
			errs = errs.Append(field("font_size"), fmt.Errorf("cannot be negative"))
		}
	case OpSave, OpUndo, OpRedo, OpClear:
	case "":
		errs = errs.Append(field("op"), fmt.Errorf("is required"))
	default:
		errs = errs.Append(field("op"), fmt.Errorf("unknown op %q", s.Op))
	}

	return errs
}
