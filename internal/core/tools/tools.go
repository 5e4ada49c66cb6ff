// Package tools defines the whiteboard tool, brush and template catalogs and
// the immutable tool selection passed to drawing operations.
package tools

import (
	"errors"
	"fmt"
)

// Lookup errors.
var (
	ErrUnknownTool     = errors.New("unknown tool")
	ErrUnknownBrush    = errors.New("unknown brush type")
	ErrUnknownTemplate = errors.New("unknown template")
)

// Category groups tools in the toolbar.
type Category string

const (
	CategoryDraw   Category = "draw"
	CategoryShapes Category = "shapes"
	CategoryTools  Category = "tools"
	CategoryText   Category = "text"
	CategoryMedia  Category = "media"
)

// Tool IDs.
const (
	Pencil      = "pencil"
	Highlighter = "highlighter"
	Eraser      = "eraser"
	Square      = "square"
	Circle      = "circle"
	Triangle    = "triangle"
	Text        = "text"
	StickyNote  = "sticky-note"
	Image       = "image"
	Hand        = "hand"
)

// Tool is a toolbar entry.
type Tool struct {
	ID       string   `json:"id" yaml:"id"`
	Name     string   `json:"name" yaml:"name"`
	Category Category `json:"category" yaml:"category"`
}

// Draws reports whether the tool paints freehand strokes on the surface.
func (t Tool) Draws() bool {
	return t.Category == CategoryDraw
}

// IsShape reports whether the tool commits an outline shape on release.
func (t Tool) IsShape() bool {
	return t.Category == CategoryShapes
}

// BrushType is a preset stroke width and opacity.
type BrushType struct {
	ID          string  `json:"id" yaml:"id"`
	Name        string  `json:"name" yaml:"name"`
	StrokeWidth float64 `json:"stroke_width" yaml:"stroke_width"`
	Opacity     float64 `json:"opacity" yaml:"opacity"`
	Description string  `json:"description" yaml:"description"`
}

// Template is a board starting layout.
type Template struct {
	ID       string `json:"id" yaml:"id"`
	Name     string `json:"name" yaml:"name"`
	Category string `json:"category" yaml:"category"`
}

var catalog = []Tool{
	{ID: Pencil, Name: "Pencil", Category: CategoryDraw},
	{ID: Highlighter, Name: "Highlighter", Category: CategoryDraw},
	{ID: Eraser, Name: "Eraser", Category: CategoryDraw},
	{ID: Square, Name: "Square", Category: CategoryShapes},
	{ID: Circle, Name: "Circle", Category: CategoryShapes},
	{ID: Triangle, Name: "Triangle", Category: CategoryShapes},
	{ID: Text, Name: "Text", Category: CategoryText},
	{ID: StickyNote, Name: "Sticky Note", Category: CategoryText},
	{ID: Image, Name: "Image", Category: CategoryMedia},
	{ID: Hand, Name: "Hand (Pan)", Category: CategoryTools},
}

var brushTypes = []BrushType{
	{ID: "pencil", Name: "Pencil", StrokeWidth: 2, Opacity: 1, Description: "Thin, precise lines"},
	{ID: "highlighter", Name: "Highlighter", StrokeWidth: 15, Opacity: 0.4, Description: "Transparent, wide strokes"},
}

var templates = []Template{
	{ID: "blank", Name: "Blank Canvas", Category: "Basic"},
	{ID: "brainstorm", Name: "Brainstorming", Category: "Planning"},
	{ID: "kanban", Name: "Kanban Board", Category: "Project Management"},
}

// Tools returns the tool catalog in toolbar order.
func Tools() []Tool {
	return append([]Tool(nil), catalog...)
}

// BrushTypes returns the brush presets.
func BrushTypes() []BrushType {
	return append([]BrushType(nil), brushTypes...)
}

// Templates returns the board templates.
func Templates() []Template {
	return append([]Template(nil), templates...)
}

// Lookup returns the tool with the given ID.
func Lookup(id string) (Tool, error) {
	for _, t := range catalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Tool{}, fmt.Errorf("%w: %q", ErrUnknownTool, id)
}

// LookupBrush returns the brush type with the given ID.
func LookupBrush(id string) (BrushType, error) {
	for _, b := range brushTypes {
		if b.ID == id {
			return b, nil
		}
	}
	return BrushType{}, fmt.Errorf("%w: %q", ErrUnknownBrush, id)
}

// LookupTemplate returns the template with the given ID.
func LookupTemplate(id string) (Template, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %q", ErrUnknownTemplate, id)
}
