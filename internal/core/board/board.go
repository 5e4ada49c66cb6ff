// Package board defines the whiteboard document: its title and the sticky
// notes and text elements layered over the raster canvas.
package board

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/hay-kot/criterio"

	"github.com/hay-kot/slate/internal/core/validate"
	"github.com/hay-kot/slate/pkg/randid"
)

// DefaultTitle is the title of a new board.
const DefaultTitle = "Untitled Whiteboard"

// Default element styling.
const (
	DefaultNoteColor = "#FFEB3B"
	DefaultFontSize  = 16
)

// ErrNotFound is returned when an element is not found.
var ErrNotFound = errors.New("element not found")

// Position is a point on the board in canvas pixels.
type Position struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// StickyNote is a colored note pinned to the board.
type StickyNote struct {
	ID       string   `json:"id" yaml:"id"`
	Content  string   `json:"content" yaml:"content"`
	Position Position `json:"position" yaml:"position"`
	Color    string   `json:"color" yaml:"color"`
}

// TextElement is a free text label on the board.
type TextElement struct {
	ID       string   `json:"id" yaml:"id"`
	Content  string   `json:"content" yaml:"content"`
	Position Position `json:"position" yaml:"position"`
	FontSize int      `json:"font_size" yaml:"font_size"`
}

// Board is a whiteboard document.
type Board struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	StickyNotes  []StickyNote  `json:"sticky_notes"`
	TextElements []TextElement `json:"text_elements"`
}

// New creates an empty board with the default title.
func New() *Board {
	return &Board{
		ID:           uuid.NewString(),
		Title:        DefaultTitle,
		StickyNotes:  []StickyNote{},
		TextElements: []TextElement{},
	}
}

// NewElementID returns a random element ID such as "id_k3j9x0a1b".
func NewElementID() string {
	return randid.WithPrefix("id_", 9)
}

// SetTitle renames the board.
func (b *Board) SetTitle(title string) error {
	if err := validate.Title(title); err != nil {
		return err
	}
	b.Title = strings.TrimSpace(title)
	return nil
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	separators = strings.NewReplacer("/", "-", "\\", "-")
)

// Slug returns the title with whitespace runs replaced by dashes, lowercased.
func (b *Board) Slug() string {
	s := whitespace.ReplaceAllString(strings.TrimSpace(b.Title), "-")
	return strings.ToLower(separators.Replace(s))
}

// ExportName returns the default PNG file name for the board.
func (b *Board) ExportName() string {
	return b.Slug() + ".png"
}

// AddStickyNote appends a note and returns it. Empty color uses the default.
func (b *Board) AddStickyNote(content string, pos Position, color string) StickyNote {
	if color == "" {
		color = DefaultNoteColor
	}
	note := StickyNote{
		ID:       NewElementID(),
		Content:  content,
		Position: pos,
		Color:    color,
	}
	b.StickyNotes = append(b.StickyNotes, note)
	return note
}

// UpdateStickyNote replaces the content, position and color of a note.
func (b *Board) UpdateStickyNote(id, content string, pos Position, color string) error {
	for i := range b.StickyNotes {
		if b.StickyNotes[i].ID == id {
			b.StickyNotes[i].Content = content
			b.StickyNotes[i].Position = pos
			b.StickyNotes[i].Color = color
			return nil
		}
	}
	return fmt.Errorf("sticky note %q: %w", id, ErrNotFound)
}

// DeleteStickyNote removes a note by ID.
func (b *Board) DeleteStickyNote(id string) error {
	for i, note := range b.StickyNotes {
		if note.ID == id {
			b.StickyNotes = append(b.StickyNotes[:i], b.StickyNotes[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("sticky note %q: %w", id, ErrNotFound)
}

// AddTextElement appends a text element and returns it. A zero font size
// uses the default.
func (b *Board) AddTextElement(content string, pos Position, fontSize int) TextElement {
	if fontSize <= 0 {
		fontSize = DefaultFontSize
	}
	el := TextElement{
		ID:       NewElementID(),
		Content:  content,
		Position: pos,
		FontSize: fontSize,
	}
	b.TextElements = append(b.TextElements, el)
	return el
}

// UpdateTextElement replaces the content, position and font size of a text element.
func (b *Board) UpdateTextElement(id, content string, pos Position, fontSize int) error {
	for i := range b.TextElements {
		if b.TextElements[i].ID == id {
			b.TextElements[i].Content = content
			b.TextElements[i].Position = pos
			b.TextElements[i].FontSize = fontSize
			return nil
		}
	}
	return fmt.Errorf("text element %q: %w", id, ErrNotFound)
}

// DeleteTextElement removes a text element by ID.
func (b *Board) DeleteTextElement(id string) error {
	for i, el := range b.TextElements {
		if el.ID == id {
			b.TextElements = append(b.TextElements[:i], b.TextElements[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("text element %q: %w", id, ErrNotFound)
}

// Validate checks the board for errors using criterio.
func (b *Board) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if err := validate.Title(b.Title); err != nil {
		errs = errs.Append("title", err)
	}

	for i, note := range b.StickyNotes {
		if err := validate.ElementID(note.ID); err != nil {
			errs = errs.Append(fmt.Sprintf("sticky_notes[%d].id", i), err)
		}
	}

	for i, el := range b.TextElements {
		if err := validate.ElementID(el.ID); err != nil {
			errs = errs.Append(fmt.Sprintf("text_elements[%d].id", i), err)
		}
		if el.FontSize <= 0 {
			errs = errs.Append(fmt.Sprintf("text_elements[%d].font_size", i), fmt.Errorf("must be positive"))
		}
	}

	return errs.ToError()
}
