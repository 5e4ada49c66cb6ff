// Package raster provides an in-memory RGBA drawing surface with strokes,
// outline shapes and PNG export.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	"github.com/hay-kot/slate/internal/core/canvas"
)

// DefaultMaxPixels bounds surface allocation (roughly 64 MiB of pixels).
const DefaultMaxPixels = 16 << 20

// ErrDimensionMismatch is returned when restoring a snapshot of another size.
var ErrDimensionMismatch = errors.New("snapshot dimensions do not match surface")

// Surface is a raster drawing surface. It implements canvas.Surface.
//
// Surface is not safe for concurrent use.
type Surface struct {
	img        *image.NRGBA
	background color.NRGBA
}

var _ canvas.Surface = (*Surface)(nil)

// New creates a surface filled with background. The background alpha is
// forced opaque.
func New(width, height int, background color.NRGBA) (*Surface, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid surface size %dx%d", width, height)
	}
	if width > DefaultMaxPixels/height {
		return nil, fmt.Errorf("allocate %dx%d surface: %w", width, height, canvas.ErrResourceExhausted)
	}

	background.A = 0xff
	s := &Surface{
		img:        image.NewNRGBA(image.Rect(0, 0, width, height)),
		background: background,
	}
	s.Clear()
	return s, nil
}

// Width returns the surface width in pixels.
func (s *Surface) Width() int { return s.img.Rect.Dx() }

// Height returns the surface height in pixels.
func (s *Surface) Height() int { return s.img.Rect.Dy() }

// Bounds returns the surface rectangle.
func (s *Surface) Bounds() image.Rectangle { return s.img.Rect }

// Background returns the fill color used by Clear and Erase.
func (s *Surface) Background() color.NRGBA { return s.background }

// At returns the pixel at (x, y). Points outside the surface are transparent.
func (s *Surface) At(x, y int) color.NRGBA {
	return s.img.NRGBAAt(x, y)
}

// Image returns a copy of the surface image.
func (s *Surface) Image() *image.NRGBA {
	out := image.NewNRGBA(s.img.Rect)
	copy(out.Pix, s.img.Pix)
	return out
}

// Clone returns an independent copy of the surface.
func (s *Surface) Clone() *Surface {
	return &Surface{img: s.Image(), background: s.background}
}

// Clear fills the whole surface with the background color.
func (s *Surface) Clear() {
	draw.Draw(s.img, s.img.Rect, image.NewUniform(s.background), image.Point{}, draw.Src)
}

// Capture returns a full copy of the pixel buffer.
func (s *Surface) Capture() (canvas.Snapshot, error) {
	return canvas.NewSnapshot(s.Width(), s.Height(), s.img.Pix), nil
}

// Restore overwrites the pixel buffer with snap.
func (s *Surface) Restore(snap canvas.Snapshot) error {
	if snap.Width() != s.Width() || snap.Height() != s.Height() {
		return fmt.Errorf("restore %dx%d onto %dx%d: %w",
			snap.Width(), snap.Height(), s.Width(), s.Height(), ErrDimensionMismatch)
	}
	if snap.Size() != len(s.img.Pix) {
		return fmt.Errorf("restore: %w", ErrDimensionMismatch)
	}

	snap.CopyTo(s.img.Pix)
	return nil
}

// Matches reports whether the surface pixels equal snap.
func (s *Surface) Matches(snap canvas.Snapshot) bool {
	return snap.Matches(s.Width(), s.Height(), s.img.Pix)
}

// EncodePNG writes the surface as a PNG image.
func (s *Surface) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
