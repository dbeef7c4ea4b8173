package layout

// Tab is one independent layout tree with its own active-pane cursor.
type Tab struct {
	ID   TabID
	Name string

	// Layout is the root of the split tree. It always holds at least one
	// pane.
	Layout *LayoutNode

	// ActivePane is the focused pane's ID, or the zero value when the tab
	// has no active pane.
	ActivePane PaneID
}

// ResizeStep is the ratio adjustment applied per resize invocation.
const ResizeStep = 0.05

// NewTab creates a tab with a single unbound terminal pane, which becomes
// the active pane.
func NewTab(name string) *Tab {
	root := NewTerminalLeaf("", "Terminal")
	t := &Tab{
		ID:     NewTabID(),
		Name:   name,
		Layout: root,
	}
	if ids := root.PaneIDs(); len(ids) > 0 {
		t.ActivePane = ids[0]
	}
	return t
}

// Split splits the active pane in the given direction and focuses the new
// pane. No-op when the tab has no active pane.
func (t *Tab) Split(dir Direction, newPane *Pane) {
	if t.ActivePane.IsZero() {
		return
	}
	if splitNodeAtPane(t.Layout, t.ActivePane, dir, newPane) {
		t.ActivePane = newPane.ID
	}
}

func splitNodeAtPane(n *LayoutNode, id PaneID, dir Direction, newPane *Pane) bool {
	if n.IsLeaf() {
		if n.Pane.ID == id {
			n.Split(dir, newPane)
			return true
		}
		return false
	}
	return splitNodeAtPane(n.First, id, dir, newPane) ||
		splitNodeAtPane(n.Second, id, dir, newPane)
}

// CloseActivePane removes the active pane and focuses the first pane in
// traversal order. Returns false when nothing changed (no active pane, or
// the tree is down to its last pane).
func (t *Tab) CloseActivePane() bool {
	if t.ActivePane.IsZero() {
		return false
	}
	if !t.Layout.RemovePane(t.ActivePane) {
		return false
	}
	t.ActivePane = PaneID{}
	if ids := t.Layout.PaneIDs(); len(ids) > 0 {
		t.ActivePane = ids[0]
	}
	return true
}

// Navigate moves focus to the neighbor in the given direction, if any.
func (t *Tab) Navigate(dir NavDirection) {
	if t.ActivePane.IsZero() {
		return
	}
	if id, ok := t.Layout.FindNeighbor(t.ActivePane, dir); ok {
		t.ActivePane = id
	}
}

// NextPane cycles focus to the next pane in traversal order.
func (t *Tab) NextPane() {
	ids := t.Layout.PaneIDs()
	if len(ids) == 0 {
		return
	}
	idx := indexOf(ids, t.ActivePane)
	t.ActivePane = ids[(idx+1)%len(ids)]
}

// PrevPane cycles focus to the previous pane in traversal order.
func (t *Tab) PrevPane() {
	ids := t.Layout.PaneIDs()
	if len(ids) == 0 {
		return
	}
	idx := indexOf(ids, t.ActivePane)
	if idx == 0 {
		idx = len(ids)
	}
	t.ActivePane = ids[idx-1]
}

// indexOf returns the position of id, defaulting to 0 when absent.
func indexOf(ids []PaneID, id PaneID) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return 0
}

// Resize adjusts the relevant split for the active pane by ResizeStep.
func (t *Tab) Resize(dir NavDirection) {
	if t.ActivePane.IsZero() {
		return
	}
	t.Layout.ResizePane(t.ActivePane, dir, ResizeStep)
}

// PaneCount returns the number of panes in the tab.
func (t *Tab) PaneCount() int {
	return t.Layout.PaneCount()
}
