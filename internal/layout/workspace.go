package layout

import "fmt"

// Workspace is the ordered collection of tabs plus the active-tab cursor.
// It always holds at least one tab.
type Workspace struct {
	Tabs           []*Tab
	ActiveTabIndex int
}

// NewWorkspace creates a workspace with a single tab containing one
// terminal pane.
func NewWorkspace() *Workspace {
	return &Workspace{
		Tabs: []*Tab{NewTab("Tab 1")},
	}
}

// ActiveTab returns the active tab, or nil when the index is out of range.
func (w *Workspace) ActiveTab() *Tab {
	if w.ActiveTabIndex < 0 || w.ActiveTabIndex >= len(w.Tabs) {
		return nil
	}
	return w.Tabs[w.ActiveTabIndex]
}

// NewTab appends a tab named "Tab {n}" with one terminal pane and makes it
// active.
func (w *Workspace) NewTab() TabID {
	t := NewTab(fmt.Sprintf("Tab %d", len(w.Tabs)+1))
	w.Tabs = append(w.Tabs, t)
	w.ActiveTabIndex = len(w.Tabs) - 1
	return t.ID
}

// CloseActiveTab removes the active tab. Refuses (returns false) when only
// one tab remains; otherwise clamps the active index to the last valid
// position.
func (w *Workspace) CloseActiveTab() bool {
	if len(w.Tabs) <= 1 {
		return false
	}
	w.Tabs = append(w.Tabs[:w.ActiveTabIndex], w.Tabs[w.ActiveTabIndex+1:]...)
	if w.ActiveTabIndex >= len(w.Tabs) {
		w.ActiveTabIndex = len(w.Tabs) - 1
	}
	return true
}

// NextTab cycles to the next tab.
func (w *Workspace) NextTab() {
	if len(w.Tabs) > 0 {
		w.ActiveTabIndex = (w.ActiveTabIndex + 1) % len(w.Tabs)
	}
}

// PrevTab cycles to the previous tab.
func (w *Workspace) PrevTab() {
	if len(w.Tabs) > 0 {
		w.ActiveTabIndex = (w.ActiveTabIndex - 1 + len(w.Tabs)) % len(w.Tabs)
	}
}

// GoToTab activates the tab at the given index; out-of-range indexes are
// silently ignored.
func (w *Workspace) GoToTab(index int) {
	if index >= 0 && index < len(w.Tabs) {
		w.ActiveTabIndex = index
	}
}

// MoveTabLeft swaps the active tab with its left neighbor and follows it.
func (w *Workspace) MoveTabLeft() {
	i := w.ActiveTabIndex
	if i > 0 {
		w.Tabs[i], w.Tabs[i-1] = w.Tabs[i-1], w.Tabs[i]
		w.ActiveTabIndex = i - 1
	}
}

// MoveTabRight swaps the active tab with its right neighbor and follows it.
func (w *Workspace) MoveTabRight() {
	i := w.ActiveTabIndex
	if i < len(w.Tabs)-1 {
		w.Tabs[i], w.Tabs[i+1] = w.Tabs[i+1], w.Tabs[i]
		w.ActiveTabIndex = i + 1
	}
}

// RenameActiveTab overwrites the active tab's name.
func (w *Workspace) RenameActiveTab(name string) {
	if t := w.ActiveTab(); t != nil {
		t.Name = name
	}
}
