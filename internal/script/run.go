package script

import (
	"context"
	"fmt"
	"image"

	"github.com/hay-kot/slate/internal/core/board"
	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
	"github.com/hay-kot/slate/internal/whiteboard"
)

// Session is the part of a whiteboard session a script drives.
type Session interface {
	BeginStroke(p image.Point) error
	ContinueStroke(p image.Point)
	EndStroke(p image.Point) error
	Undo() error
	Redo() error
	Checkpoint() error
	Clear() error
	Select(sel tools.Selection)
	Selection() tools.Selection
	Board() *board.Board
	ApplyTemplate(id string) error
	Status() whiteboard.Status
}

var _ Session = (*whiteboard.Service)(nil)

// Result summarizes a script run.
type Result struct {
	Title        string `json:"title"`
	StepsApplied int    `json:"steps_applied"`
	Cursor       int    `json:"cursor"`
	Len          int    `json:"len"`
	CanUndo      bool   `json:"can_undo"`
	CanRedo      bool   `json:"can_redo"`
	StickyNotes  int    `json:"sticky_notes"`
	TextElements int    `json:"text_elements"`
}

// Run validates doc and applies its steps to s in order. Cancellation is
// checked between steps. On failure the returned Result describes the
// session as left by the steps that were applied.
func Run(ctx context.Context, s Session, doc Document) (Result, error) {
	if err := doc.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid script: %w", err)
	}

	if doc.Title != "" {
		if err := s.Board().SetTitle(doc.Title); err != nil {
			return summarize(s, 0), fmt.Errorf("set title: %w", err)
		}
	}
	if doc.Template != "" {
		if err := s.ApplyTemplate(doc.Template); err != nil {
			return summarize(s, 0), fmt.Errorf("apply template: %w", err)
		}
	}

	for i, step := range doc.Steps {
		if err := ctx.Err(); err != nil {
			return summarize(s, i), err
		}
		if err := apply(s, step); err != nil {
			return summarize(s, i), fmt.Errorf("steps[%d] (%s): %w", i, step.Op, err)
		}
	}

	return summarize(s, len(doc.Steps)), nil
}

func summarize(s Session, applied int) Result {
	st := s.Status()
	b := s.Board()
	return Result{
		Title:        b.Title,
		StepsApplied: applied,
		Cursor:       st.Cursor,
		Len:          st.Len,
		CanUndo:      st.CanUndo,
		CanRedo:      st.CanRedo,
		StickyNotes:  len(b.StickyNotes),
		TextElements: len(b.TextElements),
	}
}

func apply(s Session, step Step) error {
	switch step.Op {
	case OpStroke:
		sel := s.Selection()
		if !sel.Tool.Draws() || sel.Tool.ID == tools.Eraser {
			sel = sel.WithTool(mustTool(tools.Pencil))
		}
		return withSelection(s, sel, func() error { return polyline(s, step.Points) })
	case OpErase:
		sel := s.Selection().WithTool(mustTool(tools.Eraser))
		if step.Width > 0 {
			sel = sel.WithWidth(step.Width)
		}
		return withSelection(s, sel, func() error { return polyline(s, step.Points) })
	case OpShape:
		sel := s.Selection().WithTool(mustTool(step.Shape))
		return withSelection(s, sel, func() error {
			if err := s.BeginStroke(step.From.pt()); err != nil {
				return err
			}
			return s.EndStroke(step.To.pt())
		})
	case OpSave:
		return s.Checkpoint()
	case OpUndo:
		return s.Undo()
	case OpRedo:
		return s.Redo()
	case OpClear:
		return s.Clear()
	case OpSelect:
		sel, err := selection(s.Selection(), step)
		if err != nil {
			return err
		}
		s.Select(sel)
		return nil
	case OpNote:
		s.Board().AddStickyNote(step.Content, step.At.position(), step.Color)
		return nil
	case OpText:
		s.Board().AddTextElement(step.Content, step.At.position(), step.FontSize)
		return nil
	default:
		return fmt.Errorf("unknown op %q", step.Op)
	}
}

// withSelection runs fn with sel active and restores the previous selection.
func withSelection(s Session, sel tools.Selection, fn func() error) error {
	prev := s.Selection()
	s.Select(sel)
	defer s.Select(prev)
	return fn()
}

func polyline(s Session, pts []Point) error {
	if err := s.BeginStroke(pts[0].pt()); err != nil {
		return err
	}
	for _, p := range pts[1:] {
		s.ContinueStroke(p.pt())
	}
	return s.EndStroke(pts[len(pts)-1].pt())
}

func selection(sel tools.Selection, step Step) (tools.Selection, error) {
	if step.Tool != "" {
		tool, err := tools.Lookup(step.Tool)
		if err != nil {
			return sel, err
		}
		sel = sel.WithTool(tool)
	}
	// Brush first: it resets width and opacity.
	if step.Brush != "" {
		b, err := tools.LookupBrush(step.Brush)
		if err != nil {
			return sel, err
		}
		sel = sel.WithBrush(b)
	}
	if step.Color != "" {
		c, err := raster.ParseColor(step.Color)
		if err != nil {
			return sel, err
		}
		sel = sel.WithColor(c)
	}
	if step.Width > 0 {
		sel = sel.WithWidth(step.Width)
	}
	if step.Opacity > 0 {
		sel = sel.WithOpacity(step.Opacity)
	}
	return sel, nil
}

// mustTool looks up a tool ID that validation has already accepted.
func mustTool(id string) tools.Tool {
	t, err := tools.Lookup(id)
	if err != nil {
		panic(err)
	}
	return t
}

func (p Point) pt() image.Point {
	return image.Pt(p.X, p.Y)
}

func (p Point) position() board.Position {
	return board.Position{X: float64(p.X), Y: float64(p.Y)}
}
