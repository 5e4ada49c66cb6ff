package tui

import (
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hay-kot/slate/internal/core/raster"
)

// viewport maps terminal cells onto surface pixels. Each cell covers one
// pixel column and two pixel rows.
type viewport struct {
	origin image.Point // terminal cell of the top-left canvas cell
	cols   int
	rows   int
	offset image.Point // surface pixel drawn in the top-left cell
}

// pixel returns the surface point under the terminal cell (x, y) and
// whether the cell is inside the canvas area. Cells outside still map to a
// point so a drag can leave the canvas.
func (v viewport) pixel(x, y int) (image.Point, bool) {
	cx, cy := x-v.origin.X, y-v.origin.Y
	inside := cx >= 0 && cy >= 0 && cx < v.cols && cy < v.rows
	return image.Pt(v.offset.X+cx, v.offset.Y+cy*2), inside
}

// pan moves the offset by d pixels, keeping it inside bounds. The vertical
// offset stays even so cells keep their pixel pairs.
func (v viewport) pan(d image.Point, bounds image.Rectangle) viewport {
	v.offset = v.offset.Add(d)
	return v.clamp(bounds)
}

func (v viewport) clamp(bounds image.Rectangle) viewport {
	maxX := max(0, bounds.Dx()-v.cols)
	maxY := max(0, bounds.Dy()-v.rows*2)
	v.offset.X = min(max(v.offset.X, 0), maxX)
	v.offset.Y = min(max(v.offset.Y, 0), maxY)
	v.offset.Y -= v.offset.Y % 2
	return v
}

// render draws the visible part of img with half-block cells. Cells past
// the surface edge are blank.
func (v viewport) render(img *image.NRGBA, cache cellStyles) string {
	b := img.Bounds()
	var sb strings.Builder

	for row := range v.rows {
		if row > 0 {
			sb.WriteByte('\n')
		}

		top := v.offset.Y + row*2
		for col := range v.cols {
			x := v.offset.X + col
			p := image.Pt(x, top)
			if !p.In(b) {
				sb.WriteByte(' ')
				continue
			}

			upper := img.NRGBAAt(x, top)
			if top+1 >= b.Max.Y {
				// Odd height: only the top pixel exists.
				sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(raster.Hex(upper))).Render(iconHalf))
				continue
			}
			lower := img.NRGBAAt(x, top+1)
			sb.WriteString(cache.get(upper, lower).Render(iconHalf))
		}
	}

	return sb.String()
}
