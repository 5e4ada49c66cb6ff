package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"
)

// Brush describes how a stroke is painted.
type Brush struct {
	Color   color.NRGBA
	Width   float64 // line width in pixels
	Opacity float64 // 0..1, applied once per stroke segment
}

// ShapeKind identifies an outline shape.
type ShapeKind string

const (
	ShapeSquare   ShapeKind = "square"
	ShapeCircle   ShapeKind = "circle"
	ShapeTriangle ShapeKind = "triangle"
)

// Valid reports whether k is a known shape.
func (k ShapeKind) Valid() bool {
	switch k {
	case ShapeSquare, ShapeCircle, ShapeTriangle:
		return true
	default:
		return false
	}
}

// ellipseSegments is the minimum number of segments used to approximate an ellipse.
const ellipseSegments = 32

// MaxCoordinate bounds the absolute value of drawing coordinates accepted
// from untrusted input such as scripts.
const MaxCoordinate = 1 << 16

// Stroke paints a round-capped line segment from -> to.
func (s *Surface) Stroke(from, to image.Point, b Brush) {
	s.paint([]image.Point{from, to}, false, b.Width, b.Color, b.Opacity)
}

// Erase paints the background along from -> to at full opacity.
func (s *Surface) Erase(from, to image.Point, width float64) {
	s.paint([]image.Point{from, to}, false, width, s.background, 1)
}

// Shape paints the outline of kind inside the box spanned by start and end.
func (s *Surface) Shape(kind ShapeKind, start, end image.Point, b Brush) error {
	var (
		pts    []image.Point
		closed = true
	)

	switch kind {
	case ShapeSquare:
		pts = []image.Point{
			{X: start.X, Y: start.Y},
			{X: end.X, Y: start.Y},
			{X: end.X, Y: end.Y},
			{X: start.X, Y: end.Y},
		}
	case ShapeCircle:
		rx := math.Abs(float64(end.X-start.X)) / 2
		ry := math.Abs(float64(end.Y-start.Y)) / 2
		cx := float64(min(start.X, end.X)) + rx
		cy := float64(min(start.Y, end.Y)) + ry
		pts = ellipsePoints(cx, cy, rx, ry, s.maxSegments())
	case ShapeTriangle:
		pts = []image.Point{
			{X: start.X, Y: end.Y},
			{X: start.X + (end.X-start.X)/2, Y: start.Y},
			{X: end.X, Y: end.Y},
		}
	default:
		return fmt.Errorf("unknown shape %q", kind)
	}

	s.paint(pts, closed, b.Width, b.Color, b.Opacity)
	return nil
}

// maxSegments caps ellipse detail at the surface perimeter. Finer
// segments cannot add visible pixels.
func (s *Surface) maxSegments() int {
	return max(ellipseSegments, 2*(s.Width()+s.Height()))
}

func ellipsePoints(cx, cy, rx, ry float64, limit int) []image.Point {
	n := ellipseSegments
	if want := 2 * math.Pi * math.Max(rx, ry) / 4; want > float64(n) {
		n = int(math.Min(want, float64(limit)))
	}
	pts := make([]image.Point, 0, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts = append(pts, image.Point{
			X: int(math.Round(cx + rx*math.Cos(theta))),
			Y: int(math.Round(cy + ry*math.Sin(theta))),
		})
	}
	return pts
}

// paint builds a coverage mask for the polyline and blends c through it once,
// so overlapping segments do not accumulate alpha.
func (s *Surface) paint(pts []image.Point, closed bool, width float64, c color.NRGBA, opacity float64) {
	if len(pts) == 0 {
		return
	}

	radius := math.Max(width, 1) / 2
	pad := int(math.Ceil(radius)) + 1

	box := image.Rectangle{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		box = box.Union(image.Rectangle{Min: p, Max: p})
	}
	box = image.Rect(box.Min.X-pad, box.Min.Y-pad, box.Max.X+pad+1, box.Max.Y+pad+1).Intersect(s.img.Rect)
	if box.Empty() {
		return
	}

	alpha := uint8(math.Round(clamp(opacity, 0, 1) * 0xff))
	if alpha == 0 {
		return
	}

	mask := image.NewAlpha(box)

	segments := len(pts) - 1
	if closed {
		segments = len(pts)
	}
	if segments == 0 {
		stamp(mask, pts[0], pts[0], radius, alpha)
	}
	for i := 0; i < segments; i++ {
		stamp(mask, pts[i], pts[(i+1)%len(pts)], radius, alpha)
	}

	draw.DrawMask(s.img, box, image.NewUniform(c), image.Point{}, mask, box.Min, draw.Over)
}

// stamp marks every mask pixel whose center lies within radius of segment a-b.
func stamp(mask *image.Alpha, a, b image.Point, radius float64, alpha uint8) {
	pad := int(math.Ceil(radius))
	r := image.Rect(
		min(a.X, b.X)-pad, min(a.Y, b.Y)-pad,
		max(a.X, b.X)+pad+1, max(a.Y, b.Y)+pad+1,
	).Intersect(mask.Rect)

	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	lenSq := dx*dx + dy*dy
	limit := radius * radius

	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			px, py := float64(x), float64(y)

			t := 0.0
			if lenSq > 0 {
				t = clamp(((px-ax)*dx+(py-ay)*dy)/lenSq, 0, 1)
			}
			qx, qy := ax+t*dx-px, ay+t*dy-py

			if qx*qx+qy*qy <= limit {
				mask.SetAlpha(x, y, color.Alpha{A: alpha})
			}
		}
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
