// Package utils contains small helpers shared by the CLI entry point.
package utils

import (
	"bytes"
	"io"
	"sync"
)

// DeferredWriter buffers writes until Flush is called. It is used to hold
// log output while the TUI owns the terminal.
type DeferredWriter struct {
	mu      sync.Mutex
	entries [][]byte
}

// Write stores a copy of p. Each call is kept as one entry so that
// structured log lines are replayed one at a time.
func (d *DeferredWriter) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.entries = append(d.entries, bytes.Clone(p))
	return len(p), nil
}

// Len returns the number of buffered entries.
func (d *DeferredWriter) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Flush writes every buffered entry to w in order and empties the buffer.
func (d *DeferredWriter) Flush(w io.Writer) error {
	d.mu.Lock()
	entries := d.entries
	d.entries = nil
	d.mu.Unlock()

	for _, e := range entries {
		if _, err := w.Write(e); err != nil {
			return err
		}
	}
	return nil
}
