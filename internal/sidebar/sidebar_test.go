package sidebar

import "testing"

func TestSelectionBounds(t *testing.T) {
	s := New()

	// Empty list: nothing selectable, moves are no-ops.
	if _, ok := s.SelectedSandbox(); ok {
		t.Error("empty sidebar should have no selection")
	}
	s.SelectNext()
	s.SelectPrevious()
	if s.Selected != 0 {
		t.Errorf("selection moved on empty list: %d", s.Selected)
	}

	s.SetSandboxes([]Sandbox{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	s.SelectNext()
	s.SelectNext()
	s.SelectNext()
	if s.Selected != 2 {
		t.Errorf("selection should stop at the last entry, got %d", s.Selected)
	}
	s.SelectPrevious()
	s.SelectPrevious()
	s.SelectPrevious()
	if s.Selected != 0 {
		t.Errorf("selection should stop at the first entry, got %d", s.Selected)
	}
}

func TestSetSandboxesClampsSelectionAndClearsError(t *testing.T) {
	s := New()
	s.SetSandboxes([]Sandbox{{ID: "a"}, {ID: "b"}, {ID: "c"}})
	s.SelectNext()
	s.SelectNext()

	s.SetError("refresh failed")
	if s.Err == "" {
		t.Fatal("error not recorded")
	}

	s.SetSandboxes([]Sandbox{{ID: "a"}})
	if s.Selected != 0 {
		t.Errorf("selection should clamp after shrink, got %d", s.Selected)
	}
	if s.Err != "" {
		t.Error("successful refresh should clear the error")
	}

	sb, ok := s.SelectedSandbox()
	if !ok || sb.ID != "a" {
		t.Errorf("unexpected selection %+v", sb)
	}
}
