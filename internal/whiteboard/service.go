// Package whiteboard ties the raster surface, its undo history, the board
// document and the active tool selection into one editing session.
package whiteboard

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/hay-kot/slate/internal/core/board"
	"github.com/hay-kot/slate/internal/core/canvas"
	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/raster"
	"github.com/hay-kot/slate/internal/core/tools"
)

// ErrStrokeInProgress is returned when a stroke is started while another
// one has not been ended.
var ErrStrokeInProgress = errors.New("stroke already in progress")

// stroke tracks the pointer between BeginStroke and EndStroke.
type stroke struct {
	tool   tools.Tool
	brush  raster.Brush
	anchor image.Point
	last   image.Point
}

// Service orchestrates a single whiteboard session. Like the history it
// wraps, it is not safe for concurrent use.
type Service struct {
	config    *config.Config
	log       zerolog.Logger
	surface   *raster.Surface
	history   *canvas.History
	board     *board.Board
	selection tools.Selection
	active    *stroke

	// dirty is set when the surface has been painted since the snapshot at
	// the history cursor was captured or restored.
	dirty bool
}

// New creates a session with a blank surface sized from cfg and an
// initialized history.
func New(cfg *config.Config, log zerolog.Logger) (*Service, error) {
	bg, err := cfg.BackgroundColor()
	if err != nil {
		return nil, fmt.Errorf("canvas background: %w", err)
	}

	surface, err := raster.New(cfg.Canvas.Width, cfg.Canvas.Height, bg)
	if err != nil {
		return nil, fmt.Errorf("create surface: %w", err)
	}

	history := canvas.NewHistory(
		canvas.WithMaxEntries(cfg.History.MaxEntries),
		canvas.WithMaxBytes(cfg.History.MaxBytes),
	)
	if err := history.Init(surface); err != nil {
		return nil, fmt.Errorf("init history: %w", err)
	}

	selection, err := initialSelection(cfg)
	if err != nil {
		return nil, err
	}

	s := &Service{
		config:    cfg,
		log:       log,
		surface:   surface,
		history:   history,
		board:     board.New(),
		selection: selection,
	}

	s.log.Debug().
		Int("width", cfg.Canvas.Width).
		Int("height", cfg.Canvas.Height).
		Str("board_id", s.board.ID).
		Msg("session started")

	return s, nil
}

func initialSelection(cfg *config.Config) (tools.Selection, error) {
	brush, err := tools.LookupBrush(cfg.Brush.Type)
	if err != nil {
		return tools.Selection{}, fmt.Errorf("brush type: %w", err)
	}
	c, err := cfg.BrushColor()
	if err != nil {
		return tools.Selection{}, fmt.Errorf("brush color: %w", err)
	}
	return tools.DefaultSelection().WithBrush(brush).WithColor(c), nil
}

// BeginStroke starts an edit at p with the selected tool. Freehand tools
// snapshot the surface first and reject the stroke if that fails. Shape
// tools only record the anchor; they snapshot when the shape is committed.
// Tools that do not paint on the surface are ignored.
func (s *Service) BeginStroke(p image.Point) error {
	if s.active != nil {
		return ErrStrokeInProgress
	}

	tool := s.selection.Tool
	if !tool.Draws() && !tool.IsShape() {
		s.log.Debug().Str("tool", tool.ID).Msg("tool does not draw")
		return nil
	}

	if tool.Draws() {
		if err := s.snapshot(); err != nil {
			s.log.Warn().Err(err).Str("tool", tool.ID).Msg("stroke rejected")
			return fmt.Errorf("save before stroke: %w", err)
		}
	}

	s.active = &stroke{
		tool:   tool,
		brush:  s.selection.RasterBrush(),
		anchor: p,
		last:   p,
	}
	return nil
}

// ContinueStroke extends the active stroke to p. Freehand tools paint the
// segment from the previous point; shape tools only track the pointer.
func (s *Service) ContinueStroke(p image.Point) {
	if s.active == nil {
		return
	}

	if s.active.tool.Draws() {
		s.paintSegment(s.active.last, p)
	}
	s.active.last = p
}

// EndStroke finishes the active stroke at p. For shape tools this saves the
// history and commits the outline; if the save fails the shape is dropped
// and the error returned.
func (s *Service) EndStroke(p image.Point) error {
	st := s.active
	if st == nil {
		return nil
	}
	s.active = nil

	if st.tool.Draws() {
		if p != st.last {
			s.paintSegment(st.last, p)
		}
		return nil
	}

	if err := s.snapshot(); err != nil {
		s.log.Warn().Err(err).Str("tool", st.tool.ID).Msg("shape rejected")
		return fmt.Errorf("save before shape: %w", err)
	}

	if err := s.surface.Shape(raster.ShapeKind(st.tool.ID), st.anchor, p, st.brush); err != nil {
		return fmt.Errorf("draw shape: %w", err)
	}
	s.dirty = true

	s.log.Debug().Str("shape", st.tool.ID).Msg("shape committed")
	return nil
}

// CancelStroke drops the active stroke without ending it. Freehand paint
// already applied stays on the surface and can be undone.
func (s *Service) CancelStroke() {
	s.active = nil
}

// Drawing reports whether a stroke is in progress.
func (s *Service) Drawing() bool {
	return s.active != nil
}

// ShapePreview returns the tool and box of an in-progress shape.
func (s *Service) ShapePreview() (tools.Tool, image.Rectangle, bool) {
	if s.active == nil || !s.active.tool.IsShape() {
		return tools.Tool{}, image.Rectangle{}, false
	}
	return s.active.tool, image.Rectangle{Min: s.active.anchor, Max: s.active.last}.Canon(), true
}

// Frame returns a copy of the surface with any in-progress shape drawn on
// it. The surface itself is not modified.
func (s *Service) Frame() *image.NRGBA {
	tool, _, ok := s.ShapePreview()
	if !ok {
		return s.surface.Image()
	}

	preview := s.surface.Clone()
	if err := preview.Shape(raster.ShapeKind(tool.ID), s.active.anchor, s.active.last, s.active.brush); err != nil {
		s.log.Debug().Err(err).Str("shape", tool.ID).Msg("preview skipped")
		return s.surface.Image()
	}
	return preview.Image()
}

func (s *Service) paintSegment(from, to image.Point) {
	st := s.active
	s.dirty = true
	if st.tool.ID == tools.Eraser {
		s.surface.Erase(from, to, st.brush.Width)
		return
	}
	s.surface.Stroke(from, to, st.brush)
}

// snapshot records the surface ahead of an edit. A surface that still
// matches the snapshot at the cursor is not captured again; only the redo
// entries are discarded.
func (s *Service) snapshot() error {
	if !s.changed() {
		return s.history.DropRedo()
	}
	if err := s.history.Save(); err != nil {
		return err
	}
	s.dirty = false
	return nil
}

// Undo reverts the most recent edit. An edit still on screen is captured
// first so Redo can bring it back. If that capture fails the surface is
// reset to the snapshot at the cursor, which drops only that edit. It is a
// no-op at the oldest entry.
func (s *Service) Undo() error {
	s.active = nil
	if s.changed() {
		s.dirty = false
		if err := s.history.Save(); err != nil {
			s.log.Warn().Err(err).Msg("edit not kept for redo")
			return s.revert()
		}
	}
	if err := s.history.Undo(); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	return nil
}

// changed reports whether the surface differs from the snapshot at the
// cursor. A dirty surface that turns out to match is marked clean.
func (s *Service) changed() bool {
	if !s.dirty {
		return false
	}
	if snap, err := s.history.Current(); err == nil && s.surface.Matches(snap) {
		s.dirty = false
	}
	return s.dirty
}

// revert restores the snapshot at the cursor without moving it.
func (s *Service) revert() error {
	snap, err := s.history.Current()
	if err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	if err := s.surface.Restore(snap); err != nil {
		return fmt.Errorf("undo: %w", err)
	}
	return nil
}

// Redo restores the next snapshot. It is a no-op at the newest entry.
func (s *Service) Redo() error {
	s.active = nil
	if !s.history.CanRedo() {
		return nil
	}
	if err := s.history.Redo(); err != nil {
		return fmt.Errorf("redo: %w", err)
	}
	s.dirty = false
	return nil
}

// CanUndo reports whether Undo would change the surface.
func (s *Service) CanUndo() bool { return s.dirty || s.history.CanUndo() }

// CanRedo reports whether Redo would change the surface.
func (s *Service) CanRedo() bool { return s.history.CanRedo() }

// Checkpoint saves the current surface without editing it, so the state
// can be returned to with Redo after an Undo.
func (s *Service) Checkpoint() error {
	if !s.changed() {
		return nil
	}
	if err := s.history.Save(); err != nil {
		return fmt.Errorf("checkpoint: %w", err)
	}
	s.dirty = false
	return nil
}

// Clear snapshots the surface and fills it with the background.
func (s *Service) Clear() error {
	s.active = nil
	if err := s.snapshot(); err != nil {
		s.log.Warn().Err(err).Msg("clear rejected")
		return fmt.Errorf("save before clear: %w", err)
	}
	s.surface.Clear()
	s.dirty = true
	s.log.Debug().Msg("canvas cleared")
	return nil
}

// Select replaces the active tool selection.
func (s *Service) Select(sel tools.Selection) {
	s.selection = sel
}

// Selection returns the active tool selection.
func (s *Service) Selection() tools.Selection {
	return s.selection
}

// Board returns the board document layered over the surface.
func (s *Service) Board() *board.Board {
	return s.board
}

// ApplyTemplate seeds board elements from a template. The surface and its
// history are not affected.
func (s *Service) ApplyTemplate(id string) error {
	if err := s.board.ApplyTemplate(id); err != nil {
		return err
	}
	s.log.Debug().Str("template", id).Msg("template applied")
	return nil
}

// Bounds returns the surface bounds.
func (s *Service) Bounds() image.Rectangle {
	return s.surface.Bounds()
}

// At returns the surface pixel at (x, y).
func (s *Service) At(x, y int) color.NRGBA {
	return s.surface.At(x, y)
}

// Export writes the surface to w as PNG.
func (s *Service) Export(w io.Writer) error {
	return s.surface.EncodePNG(w)
}

// ExportFile writes the surface as PNG into dir using the configured
// filename template and returns the written path. An empty dir uses the
// configured export directory.
func (s *Service) ExportFile(dir string) (string, error) {
	if dir == "" {
		dir = s.config.Export.Dir
	}

	name, err := s.ExportName()
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := s.ExportTo(path); err != nil {
		return "", err
	}
	return path, nil
}

// ExportName renders the configured export filename for the board.
func (s *Service) ExportName() (string, error) {
	name, err := s.config.ExportFilename(config.ExportTemplateData{
		Title: s.board.Title,
		Slug:  s.board.Slug(),
		ID:    s.board.ID,
	})
	if err != nil {
		return "", fmt.Errorf("export filename: %w", err)
	}
	return name, nil
}

// ExportTo writes the surface as PNG to path. The image is encoded to a
// temporary file in the same directory and renamed into place, so path
// never holds a partial image.
func (s *Service) ExportTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".slate-*.png")
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := s.Export(tmp); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod export file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("write export file: %w", err)
	}

	s.log.Info().Str("path", path).Msg("board exported")
	return nil
}
