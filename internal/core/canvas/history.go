package canvas

import (
	"errors"
	"fmt"
	"time"
)

// Common errors for history operations.
var (
	ErrNotInitialized     = errors.New("history not initialized")
	ErrAlreadyInitialized = errors.New("history already initialized")
	ErrResourceExhausted  = errors.New("snapshot capacity exhausted")
)

// Surface is a drawing surface that can be captured and restored in full.
type Surface interface {
	// Capture returns a full copy of the current pixel buffer.
	Capture() (Snapshot, error)
	// Restore overwrites the full pixel buffer with the snapshot.
	Restore(Snapshot) error
}

// EntryInfo describes a single history entry for display.
type EntryInfo struct {
	Index      int
	Bytes      int
	CapturedAt time.Time
	Current    bool
}

// Option configures a History.
type Option func(*History)

// WithMaxEntries bounds the number of retained snapshots. When a save pushes
// the history past n entries the oldest entries are dropped. Zero means
// unbounded.
func WithMaxEntries(n int) Option {
	return func(h *History) {
		if n < 0 {
			n = 0
		}
		h.maxEntries = n
	}
}

// WithMaxBytes bounds the total pixel bytes retained. A save that would
// exceed n bytes fails with ErrResourceExhausted. Zero means unbounded.
func WithMaxBytes(n int) Option {
	return func(h *History) {
		if n < 0 {
			n = 0
		}
		h.maxBytes = n
	}
}

// History is a linear sequence of surface snapshots and a cursor into it.
//
// Saving after an undo discards every snapshot past the cursor; no redo tree
// is kept. Callers save immediately before applying a destructive edit, so
// the snapshot at each index is the state the following edit started from.
//
// History is not safe for concurrent use. It is meant to be driven from the
// single goroutine that owns the surface.
type History struct {
	surface    Surface
	snapshots  []Snapshot
	cursor     int
	maxEntries int
	maxBytes   int
}

// NewHistory creates an uninitialized history. Init must be called before
// any other operation.
func NewHistory(opts ...Option) *History {
	h := &History{}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Init captures the surface state as the first snapshot and sets the
// cursor to it.
func (h *History) Init(surface Surface) error {
	if h.surface != nil {
		return ErrAlreadyInitialized
	}
	if surface == nil {
		return fmt.Errorf("init history: nil surface")
	}

	snap, err := surface.Capture()
	if err != nil {
		return fmt.Errorf("capture initial snapshot: %w", err)
	}

	if h.maxBytes > 0 && snap.Size() > h.maxBytes {
		return fmt.Errorf("capture initial snapshot: %w", ErrResourceExhausted)
	}

	h.surface = surface
	h.snapshots = []Snapshot{snap}
	h.cursor = 0
	return nil
}

// Initialized reports whether Init has completed.
func (h *History) Initialized() bool {
	return h.surface != nil
}

// Save captures the current surface state and appends it after the cursor,
// discarding any redo entries.
func (h *History) Save() error {
	if !h.Initialized() {
		return ErrNotInitialized
	}

	snap, err := h.surface.Capture()
	if err != nil {
		return fmt.Errorf("capture snapshot: %w", err)
	}

	kept := h.snapshots[:h.cursor+1]

	if h.maxBytes > 0 && retained(kept)+snap.Size() > h.maxBytes {
		return fmt.Errorf("capture snapshot: %w", ErrResourceExhausted)
	}

	h.truncate()
	h.snapshots = append(kept, snap)

	if h.maxEntries > 0 && len(h.snapshots) > h.maxEntries {
		excess := len(h.snapshots) - h.maxEntries
		for i := 0; i < excess; i++ {
			h.snapshots[i] = Snapshot{}
		}
		h.snapshots = h.snapshots[excess:]
	}

	h.cursor = len(h.snapshots) - 1
	return nil
}

// DropRedo discards every snapshot after the cursor without capturing the
// surface. It is used when an edit starts from the current snapshot.
func (h *History) DropRedo() error {
	if !h.Initialized() {
		return ErrNotInitialized
	}
	h.truncate()
	return nil
}

// truncate clears the entries past the cursor so their buffers can be
// collected.
func (h *History) truncate() {
	for i := h.cursor + 1; i < len(h.snapshots); i++ {
		h.snapshots[i] = Snapshot{}
	}
	h.snapshots = h.snapshots[:h.cursor+1]
}

// Undo moves the cursor back one entry and restores that snapshot.
// It is a no-op at the oldest entry.
func (h *History) Undo() error {
	if !h.Initialized() {
		return ErrNotInitialized
	}
	if h.cursor == 0 {
		return nil
	}

	return h.moveTo(h.cursor - 1)
}

// Redo moves the cursor forward one entry and restores that snapshot.
// It is a no-op at the newest entry.
func (h *History) Redo() error {
	if !h.Initialized() {
		return ErrNotInitialized
	}
	if h.cursor == len(h.snapshots)-1 {
		return nil
	}

	return h.moveTo(h.cursor + 1)
}

// moveTo restores the snapshot at index and only then moves the cursor.
func (h *History) moveTo(index int) error {
	if err := h.surface.Restore(h.snapshots[index]); err != nil {
		return fmt.Errorf("restore snapshot %d: %w", index, err)
	}
	h.cursor = index
	return nil
}

// CanUndo returns true if an earlier snapshot exists.
func (h *History) CanUndo() bool {
	return h.Initialized() && h.cursor > 0
}

// CanRedo returns true if a later snapshot exists.
func (h *History) CanRedo() bool {
	return h.Initialized() && h.cursor < len(h.snapshots)-1
}

// Len returns the number of retained snapshots.
func (h *History) Len() int {
	return len(h.snapshots)
}

// Cursor returns the index of the current snapshot.
func (h *History) Cursor() int {
	return h.cursor
}

// Current returns the snapshot at the cursor.
func (h *History) Current() (Snapshot, error) {
	if !h.Initialized() {
		return Snapshot{}, ErrNotInitialized
	}
	return h.snapshots[h.cursor], nil
}

// Bytes returns the total pixel bytes retained by all snapshots.
func (h *History) Bytes() int {
	return retained(h.snapshots)
}

// Entries returns display info for every retained snapshot, oldest first.
func (h *History) Entries() []EntryInfo {
	result := make([]EntryInfo, len(h.snapshots))
	for i, snap := range h.snapshots {
		result[i] = EntryInfo{
			Index:      i,
			Bytes:      snap.Size(),
			CapturedAt: snap.CapturedAt(),
			Current:    i == h.cursor,
		}
	}
	return result
}

func retained(snaps []Snapshot) int {
	total := 0
	for _, s := range snaps {
		total += s.Size()
	}
	return total
}
