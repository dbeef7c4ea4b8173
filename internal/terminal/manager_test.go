package terminal

import (
	"strings"
	"testing"

	"github.com/abdullathedruid/sandmux/internal/layout"
)

func TestManager_AttachIsIdempotent(t *testing.T) {
	m := NewManager()
	id := layout.NewPaneID()

	a := m.Attach(id, 24, 80)
	b := m.Attach(id, 10, 10)
	if a != b {
		t.Error("second attach should return the existing buffer")
	}
	if m.Count() != 1 {
		t.Errorf("expected 1 buffer, got %d", m.Count())
	}
}

func TestManager_AttachClampsDimensions(t *testing.T) {
	m := NewManager()
	buf := m.Attach(layout.NewPaneID(), 0, -1)

	rows, cols := buf.Dimensions()
	if rows != 24 || cols != 80 {
		t.Errorf("expected 24x80 fallback, got %dx%d", rows, cols)
	}
}

func TestManager_WriteAndSnapshot(t *testing.T) {
	m := NewManager()
	id := layout.NewPaneID()
	m.Attach(id, 24, 80)

	m.Write(id, []byte("hello"))
	content, ok := m.TrySnapshot(id)
	if !ok {
		t.Fatal("expected a snapshot")
	}
	if !strings.Contains(content, "hello") {
		t.Error("snapshot should contain written output")
	}
}

func TestManager_WriteUnknownPaneDropped(t *testing.T) {
	m := NewManager()
	// Must not panic or create a buffer.
	m.Write(layout.NewPaneID(), []byte("lost"))
	if m.Count() != 0 {
		t.Error("write to unknown pane should not create a buffer")
	}
}

func TestManager_SnapshotMissingPane(t *testing.T) {
	m := NewManager()
	if _, ok := m.TrySnapshot(layout.NewPaneID()); ok {
		t.Error("snapshot of an unattached pane should report false")
	}
}

func TestManager_Detach(t *testing.T) {
	m := NewManager()
	id := layout.NewPaneID()
	m.Attach(id, 24, 80)
	m.Detach(id)

	if m.Get(id) != nil {
		t.Error("buffer should be gone after detach")
	}
}

func TestSafeTerminal_TryRenderUnderContention(t *testing.T) {
	st := NewSafeTerminal(24, 80)

	st.mu.Lock()
	if _, ok := st.TryRender(); ok {
		t.Error("TryRender should fail while the buffer is locked")
	}
	st.mu.Unlock()

	if _, ok := st.TryRender(); !ok {
		t.Error("TryRender should succeed on an uncontended buffer")
	}
}
