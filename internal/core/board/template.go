package board

import (
	"fmt"

	"github.com/hay-kot/slate/internal/core/tools"
)

// ApplyTemplate seeds the board elements for the given template ID. Existing
// notes and text elements are replaced; the raster canvas is not touched.
func (b *Board) ApplyTemplate(id string) error {
	if _, err := tools.LookupTemplate(id); err != nil {
		return err
	}

	switch id {
	case "blank":
		b.StickyNotes = []StickyNote{}
		b.TextElements = []TextElement{}
	case "kanban":
		b.StickyNotes = []StickyNote{}
		b.TextElements = []TextElement{}
		b.AddStickyNote("To Do", Position{X: 100, Y: 100}, "#FFEB3B")
		b.AddStickyNote("In Progress", Position{X: 350, Y: 100}, "#FFC107")
		b.AddStickyNote("Done", Position{X: 600, Y: 100}, "#4CAF50")
		b.AddTextElement("Kanban Board", Position{X: 350, Y: 50}, 24)
	case "brainstorm":
		b.StickyNotes = []StickyNote{}
		b.TextElements = []TextElement{}
		b.AddTextElement("Main Idea", Position{X: 400, Y: 200}, 24)
		b.AddStickyNote("Idea 1", Position{X: 200, Y: 300}, "#2196F3")
		b.AddStickyNote("Idea 2", Position{X: 450, Y: 300}, "#9C27B0")
		b.AddStickyNote("Idea 3", Position{X: 700, Y: 300}, "#F48FB1")
	default:
		return fmt.Errorf("template %q has no layout", id)
	}

	return nil
}
