// Package canvas implements linear undo/redo history over full raster
// snapshots of a drawing surface.
package canvas

import (
	"bytes"
	"time"
)

// Snapshot is an immutable copy of a drawing surface's pixel buffer.
type Snapshot struct {
	width      int
	height     int
	pix        []byte
	capturedAt time.Time
}

// NewSnapshot copies pix into a new Snapshot. pix is expected to hold
// width*height*4 bytes of RGBA data; the caller keeps ownership of pix.
func NewSnapshot(width, height int, pix []byte) Snapshot {
	buf := make([]byte, len(pix))
	copy(buf, pix)

	return Snapshot{
		width:      width,
		height:     height,
		pix:        buf,
		capturedAt: time.Now(),
	}
}

// Width returns the snapshot width in pixels.
func (s Snapshot) Width() int { return s.width }

// Height returns the snapshot height in pixels.
func (s Snapshot) Height() int { return s.height }

// Size returns the number of bytes retained by the snapshot.
func (s Snapshot) Size() int { return len(s.pix) }

// CapturedAt returns when the snapshot was taken.
func (s Snapshot) CapturedAt() time.Time { return s.capturedAt }

// Pixels returns a copy of the pixel buffer.
func (s Snapshot) Pixels() []byte {
	buf := make([]byte, len(s.pix))
	copy(buf, s.pix)
	return buf
}

// CopyTo copies the pixel buffer into dst and returns the number of bytes copied.
func (s Snapshot) CopyTo(dst []byte) int {
	return copy(dst, s.pix)
}

// Equal reports whether both snapshots hold the same dimensions and pixels.
// Capture times are ignored.
func (s Snapshot) Equal(other Snapshot) bool {
	return s.width == other.width &&
		s.height == other.height &&
		bytes.Equal(s.pix, other.pix)
}

// Matches reports whether the snapshot holds exactly pix at the given
// dimensions. pix is not copied.
func (s Snapshot) Matches(width, height int, pix []byte) bool {
	return s.width == width && s.height == height && bytes.Equal(s.pix, pix)
}

// IsZero reports whether the snapshot was never captured.
func (s Snapshot) IsZero() bool {
	return s.pix == nil && s.width == 0 && s.height == 0
}
