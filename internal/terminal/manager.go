package terminal

import (
	"sync"

	"github.com/abdullathedruid/sandmux/internal/layout"
)

// Manager is the registry of terminal buffers keyed by pane. Backend
// goroutines write output into it while the UI goroutine reads snapshots;
// the render path never blocks on it.
type Manager struct {
	mu      sync.Mutex
	buffers map[layout.PaneID]*SafeTerminal
}

// NewManager creates an empty registry.
func NewManager() *Manager {
	return &Manager{
		buffers: make(map[layout.PaneID]*SafeTerminal),
	}
}

// Attach creates (or returns) the buffer for a pane with the given
// dimensions.
func (m *Manager) Attach(id layout.PaneID, rows, cols int) *SafeTerminal {
	if rows < 1 {
		rows = 24
	}
	if cols < 1 {
		cols = 80
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if t, ok := m.buffers[id]; ok {
		return t
	}
	t := NewSafeTerminal(rows, cols)
	m.buffers[id] = t
	return t
}

// Get returns the buffer for a pane, or nil when none is attached.
func (m *Manager) Get(id layout.PaneID) *SafeTerminal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buffers[id]
}

// Detach removes a pane's buffer. The backend connection, if any, is the
// API client's responsibility.
func (m *Manager) Detach(id layout.PaneID) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.buffers, id)
}

// Write feeds sandbox output into a pane's buffer. Output for unknown
// panes is dropped.
func (m *Manager) Write(id layout.PaneID, data []byte) {
	if t := m.Get(id); t != nil {
		t.Write(data)
	}
}

// Resize updates a pane's buffer dimensions if it exists.
func (m *Manager) Resize(id layout.PaneID, rows, cols int) {
	if t := m.Get(id); t != nil {
		t.Resize(rows, cols)
	}
}

// TrySnapshot returns the rendered content of a pane's buffer without
// blocking. It returns false when no buffer exists or when either the
// registry or the buffer is contended; the frame simply omits the pane's
// content.
func (m *Manager) TrySnapshot(id layout.PaneID) (string, bool) {
	if !m.mu.TryLock() {
		return "", false
	}
	t := m.buffers[id]
	m.mu.Unlock()

	if t == nil {
		return "", false
	}
	return t.TryRender()
}

// Count returns the number of attached buffers.
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buffers)
}
