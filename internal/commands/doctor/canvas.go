package doctor

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/hay-kot/slate/internal/core/canvas"
	"github.com/hay-kot/slate/internal/core/config"
	"github.com/hay-kot/slate/internal/core/raster"
)

// CanvasCheck verifies the configured surface can be allocated and reports
// how much undo history the configured bounds allow.
type CanvasCheck struct {
	config *config.Config
}

// NewCanvasCheck creates a new canvas check.
func NewCanvasCheck(cfg *config.Config) *CanvasCheck {
	return &CanvasCheck{config: cfg}
}

func (c *CanvasCheck) Name() string {
	return "Canvas"
}

func (c *CanvasCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	if c.config == nil {
		result.fail("Surface", "configuration not loaded")
		return result
	}

	bg, err := c.config.BackgroundColor()
	if err != nil {
		result.fail("Surface", err.Error())
		return result
	}

	surface, err := raster.New(c.config.Canvas.Width, c.config.Canvas.Height, bg)
	if err != nil {
		result.fail("Surface", err.Error())
		return result
	}

	snap, _ := surface.Capture()
	size := snap.Size()

	result.pass("Surface", fmt.Sprintf("%dx%d, %s per snapshot", surface.Width(), surface.Height(), humanize.IBytes(uint64(size))))

	h := c.config.History
	history := canvas.NewHistory(canvas.WithMaxEntries(h.MaxEntries), canvas.WithMaxBytes(h.MaxBytes))
	if err := history.Init(surface); err != nil {
		result.fail("History", fmt.Sprintf("history.max_bytes (%s) cannot hold one snapshot", humanize.IBytes(uint64(h.MaxBytes))))
		return result
	}

	result.Items = append(result.Items, historyItem(h, size))
	return result
}

func historyItem(h config.HistoryConfig, size int) CheckItem {
	limit := 0
	if h.MaxBytes > 0 {
		limit = h.MaxBytes / size
	}
	if h.MaxEntries > 0 && (limit == 0 || h.MaxEntries < limit) {
		limit = h.MaxEntries
	}

	if limit == 0 {
		return CheckItem{
			Label:  "History",
			Status: StatusWarn,
			Detail: fmt.Sprintf("unbounded; each save retains %s", humanize.IBytes(uint64(size))),
		}
	}

	item := CheckItem{
		Label:  "History",
		Status: StatusPass,
		Detail: fmt.Sprintf("up to %d snapshots (%s)", limit, humanize.IBytes(uint64(limit*size))),
	}
	if limit < 2 {
		item.Status = StatusWarn
		item.Detail += "; undo needs at least 2"
	}
	return item
}
