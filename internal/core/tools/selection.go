package tools

import (
	"image/color"

	"github.com/hay-kot/slate/internal/core/raster"
)

// Stroke width and opacity limits.
const (
	MinWidth   = 1
	MaxWidth   = 50
	MinOpacity = 0.05
	MaxOpacity = 1.0
)

// Selection is the active tool context. It is a value type; the With
// methods return updated copies.
type Selection struct {
	Tool    Tool
	Brush   BrushType
	Color   color.NRGBA
	Width   float64
	Opacity float64
}

// DefaultSelection returns the pencil with the pencil brush in black.
func DefaultSelection() Selection {
	s := Selection{Tool: catalog[0], Color: raster.Black}
	return s.WithBrush(brushTypes[0])
}

// WithTool returns a copy using tool t.
func (s Selection) WithTool(t Tool) Selection {
	s.Tool = t
	return s
}

// WithBrush returns a copy using brush b, resetting width and opacity to
// the brush defaults.
func (s Selection) WithBrush(b BrushType) Selection {
	s.Brush = b
	s.Width = b.StrokeWidth
	s.Opacity = b.Opacity
	return s
}

// WithColor returns a copy using color c.
func (s Selection) WithColor(c color.NRGBA) Selection {
	c.A = 0xff
	s.Color = c
	return s
}

// WithWidth returns a copy with the stroke width clamped to [MinWidth, MaxWidth].
func (s Selection) WithWidth(w float64) Selection {
	s.Width = min(max(w, MinWidth), MaxWidth)
	return s
}

// WithOpacity returns a copy with opacity clamped to [MinOpacity, MaxOpacity].
func (s Selection) WithOpacity(o float64) Selection {
	s.Opacity = min(max(o, MinOpacity), MaxOpacity)
	return s
}

// RasterBrush converts the selection into a raster brush.
func (s Selection) RasterBrush() raster.Brush {
	return raster.Brush{
		Color:   s.Color,
		Width:   s.Width,
		Opacity: s.Opacity,
	}
}
