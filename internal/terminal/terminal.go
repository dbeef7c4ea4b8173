// Package terminal maintains the shared terminal buffer registry: one
// emulated screen per connected pane, fed by sandbox output events and
// read by the render path without blocking.
package terminal

import (
	"strings"
	"sync"

	"github.com/vito/midterm"
)

// SafeTerminal wraps midterm.Terminal with a mutex for thread-safe access.
// All reads and writes to the terminal must go through this wrapper.
type SafeTerminal struct {
	*midterm.Terminal
	mu sync.Mutex
}

// NewSafeTerminal creates a new thread-safe terminal with the given
// dimensions.
func NewSafeTerminal(rows, cols int) *SafeTerminal {
	return &SafeTerminal{
		Terminal: midterm.NewTerminal(rows, cols),
	}
}

// Write writes sandbox output to the terminal buffer. Thread-safe.
func (t *SafeTerminal) Write(data []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Terminal.Write(data)
}

// Resize changes the terminal dimensions. Thread-safe.
func (t *SafeTerminal) Resize(rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.Terminal.Resize(rows, cols)
}

// Render writes the terminal content to a strings.Builder. Thread-safe.
func (t *SafeTerminal) Render(w *strings.Builder) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.Height <= 0 || t.Width <= 0 {
		return nil
	}
	return t.Terminal.Render(w)
}

// TryRender renders the terminal content without blocking. It returns
// false when the buffer is locked by a writer; the caller skips the pane
// for this frame.
func (t *SafeTerminal) TryRender() (string, bool) {
	if !t.mu.TryLock() {
		return "", false
	}
	defer t.mu.Unlock()

	if t.Height <= 0 || t.Width <= 0 {
		return "", true
	}
	var sb strings.Builder
	if err := t.Terminal.Render(&sb); err != nil {
		return "", false
	}
	return sb.String(), true
}

// Cursor returns the current cursor position. Thread-safe.
func (t *SafeTerminal) Cursor() (x, y int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Terminal.Cursor.X, t.Terminal.Cursor.Y
}

// Dimensions returns the terminal size. Thread-safe.
func (t *SafeTerminal) Dimensions() (rows, cols int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Height, t.Width
}

// CursorVisible returns whether the cursor should be visible.
// Thread-safe.
func (t *SafeTerminal) CursorVisible() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.Terminal.CursorVisible
}
