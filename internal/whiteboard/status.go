package whiteboard

import (
	"github.com/hay-kot/slate/internal/core/canvas"
	"github.com/hay-kot/slate/internal/core/raster"
)

// Status summarizes the session for display.
type Status struct {
	Title   string  `json:"title"`
	Cursor  int     `json:"cursor"`
	Len     int     `json:"len"`
	Bytes   int     `json:"bytes"`
	CanUndo bool    `json:"can_undo"`
	CanRedo bool    `json:"can_redo"`
	Tool    string  `json:"tool"`
	Brush   string  `json:"brush"`
	Color   string  `json:"color"`
	Width   float64 `json:"width"`
	Opacity float64 `json:"opacity"`
	Drawing bool    `json:"drawing"`
}

// Status returns the current session summary.
func (s *Service) Status() Status {
	return Status{
		Title:   s.board.Title,
		Cursor:  s.history.Cursor(),
		Len:     s.history.Len(),
		Bytes:   s.history.Bytes(),
		CanUndo: s.CanUndo(),
		CanRedo: s.history.CanRedo(),
		Tool:    s.selection.Tool.ID,
		Brush:   s.selection.Brush.ID,
		Color:   raster.Hex(s.selection.Color),
		Width:   s.selection.Width,
		Opacity: s.selection.Opacity,
		Drawing: s.active != nil,
	}
}

// Entries lists the history entries, oldest first.
func (s *Service) Entries() []canvas.EntryInfo {
	return s.history.Entries()
}
