package layout

// LayoutNode is a node in a tab's split tree. A node is either a leaf
// holding a single pane (Pane != nil) or a split dividing its rectangle
// between two exclusively owned child subtrees at Ratio along Direction.
type LayoutNode struct {
	// Pane is set on leaf nodes only.
	Pane *Pane

	// Split fields, meaningful when Pane is nil.
	Direction Direction
	Ratio     float64 // share of the first child, kept within [0.1, 0.9]
	First     *LayoutNode
	Second    *LayoutNode
}

const (
	minRatio = 0.1
	maxRatio = 0.9
)

// NewLeaf creates a leaf node holding the given pane.
func NewLeaf(p *Pane) *LayoutNode {
	return &LayoutNode{Pane: p}
}

// NewEmptyLeaf creates a leaf with a placeholder pane.
func NewEmptyLeaf() *LayoutNode {
	return NewLeaf(EmptyPane())
}

// NewTerminalLeaf creates a leaf with a terminal pane.
func NewTerminalLeaf(sandboxID, title string) *LayoutNode {
	return NewLeaf(TerminalPane(sandboxID, title))
}

// IsLeaf reports whether the node holds a pane.
func (n *LayoutNode) IsLeaf() bool {
	return n.Pane != nil
}

// Split replaces this node in place with a split whose first child is the
// old node and whose second child is a new leaf holding newPane. The new
// split starts at an even 0.5 ratio.
func (n *LayoutNode) Split(dir Direction, newPane *Pane) {
	old := *n
	*n = LayoutNode{
		Direction: dir,
		Ratio:     0.5,
		First:     &old,
		Second:    NewLeaf(newPane),
	}
}

// FindPane returns the first pane with the given ID in pre-order, or nil.
func (n *LayoutNode) FindPane(id PaneID) *Pane {
	if n.IsLeaf() {
		if n.Pane.ID == id {
			return n.Pane
		}
		return nil
	}
	if p := n.First.FindPane(id); p != nil {
		return p
	}
	return n.Second.FindPane(id)
}

// PaneIDs returns all pane IDs in first-then-second traversal order. This
// order defines next/previous pane cycling.
func (n *LayoutNode) PaneIDs() []PaneID {
	var ids []PaneID
	n.walk(func(p *Pane) {
		ids = append(ids, p.ID)
	})
	return ids
}

// Panes returns all panes in traversal order.
func (n *LayoutNode) Panes() []*Pane {
	var panes []*Pane
	n.walk(func(p *Pane) {
		panes = append(panes, p)
	})
	return panes
}

func (n *LayoutNode) walk(fn func(*Pane)) {
	if n.IsLeaf() {
		fn(n.Pane)
		return
	}
	n.First.walk(fn)
	n.Second.walk(fn)
}

// PaneCount returns the number of panes in the subtree.
func (n *LayoutNode) PaneCount() int {
	if n.IsLeaf() {
		return 1
	}
	return n.First.PaneCount() + n.Second.PaneCount()
}

// ContainsPane reports whether the subtree contains the given pane.
func (n *LayoutNode) ContainsPane(id PaneID) bool {
	if n.IsLeaf() {
		return n.Pane.ID == id
	}
	return n.First.ContainsPane(id) || n.Second.ContainsPane(id)
}

// RemovePane removes the pane with the given ID. It refuses (returns false)
// when the tree holds a single pane, so a tab never drops to zero panes.
// When the pane's subtree is a lone leaf, its parent split collapses into
// the sibling subtree.
func (n *LayoutNode) RemovePane(id PaneID) bool {
	if n.PaneCount() <= 1 {
		return false
	}
	return n.removePane(id)
}

func (n *LayoutNode) removePane(id PaneID) bool {
	if n.IsLeaf() {
		return n.Pane.ID == id
	}

	switch {
	case n.First.ContainsPane(id):
		if n.First.PaneCount() == 1 {
			*n = *n.Second
			return true
		}
		return n.First.removePane(id)
	case n.Second.ContainsPane(id):
		if n.Second.PaneCount() == 1 {
			*n = *n.First
			return true
		}
		return n.Second.removePane(id)
	default:
		return false
	}
}

// CalculateAreas recursively partitions area across the tree and stores the
// result on each pane. Horizontal splits divide height at floor(h*ratio),
// vertical splits divide width; the remainder always goes to the second
// child. Rounding drift of up to the tree depth is accepted.
func (n *LayoutNode) CalculateAreas(area Rect) {
	if n.IsLeaf() {
		r := area
		n.Pane.Area = &r
		return
	}

	var firstArea, secondArea Rect
	switch n.Direction {
	case Horizontal:
		split := int(float64(area.Height) * n.Ratio)
		firstArea = Rect{X: area.X, Y: area.Y, Width: area.Width, Height: split}
		secondArea = Rect{X: area.X, Y: area.Y + split, Width: area.Width, Height: max(area.Height-split, 0)}
	case Vertical:
		split := int(float64(area.Width) * n.Ratio)
		firstArea = Rect{X: area.X, Y: area.Y, Width: split, Height: area.Height}
		secondArea = Rect{X: area.X + split, Y: area.Y, Width: max(area.Width-split, 0), Height: area.Height}
	}

	n.First.CalculateAreas(firstArea)
	n.Second.CalculateAreas(secondArea)
}

// FindNeighbor returns the pane adjacent to fromID in the given direction,
// or the zero PaneID and false when there is none. Candidates must have a
// computed area lying beyond the source's edge; the closest by Manhattan
// distance between centers wins, with the axis perpendicular to travel
// weighted double so aligned panes are preferred. Ties keep the candidate
// encountered first in traversal order.
func (n *LayoutNode) FindNeighbor(fromID PaneID, dir NavDirection) (PaneID, bool) {
	panes := n.Panes()

	var from *Pane
	for _, p := range panes {
		if p.ID == fromID {
			from = p
			break
		}
	}
	if from == nil || from.Area == nil {
		return PaneID{}, false
	}

	fromCX := from.Area.X + from.Area.Width/2
	fromCY := from.Area.Y + from.Area.Height/2

	var bestID PaneID
	bestDist := -1

	for _, p := range panes {
		if p.ID == fromID || p.Area == nil {
			continue
		}
		a := p.Area

		var valid bool
		switch dir {
		case Left:
			valid = a.X+a.Width <= from.Area.X
		case Right:
			valid = a.X >= from.Area.X+from.Area.Width
		case Up:
			valid = a.Y+a.Height <= from.Area.Y
		case Down:
			valid = a.Y >= from.Area.Y+from.Area.Height
		}
		if !valid {
			continue
		}

		cx := a.X + a.Width/2
		cy := a.Y + a.Height/2
		dx := abs(cx - fromCX)
		dy := abs(cy - fromCY)

		var dist int
		if dir == Left || dir == Right {
			dist = dx + dy*2
		} else {
			dist = dy + dx*2
		}

		if bestDist < 0 || dist < bestDist {
			bestID = p.ID
			bestDist = dist
		}
	}

	if bestDist < 0 {
		return PaneID{}, false
	}
	return bestID, true
}

// ResizePane adjusts the ratio of the split whose axis matches dir and
// whose subtree contains the pane. The sign of the adjustment depends on
// which side holds the pane and the requested direction; the ratio stays
// within [0.1, 0.9]. Splits on the other axis are skipped by recursing
// into the child holding the pane.
func (n *LayoutNode) ResizePane(id PaneID, dir NavDirection, delta float64) {
	if n.IsLeaf() {
		return
	}

	firstContains := n.First.ContainsPane(id)
	secondContains := n.Second.ContainsPane(id)

	relevant := (n.Direction == Vertical && (dir == Left || dir == Right)) ||
		(n.Direction == Horizontal && (dir == Up || dir == Down))

	if relevant && (firstContains || secondContains) {
		adjustment := delta
		switch dir {
		case Left, Up:
			if firstContains {
				adjustment = -delta
			}
		case Right, Down:
			if !firstContains {
				adjustment = -delta
			}
		}
		n.Ratio = clampRatio(n.Ratio + adjustment)
		return
	}

	if firstContains {
		n.First.ResizePane(id, dir, delta)
	} else if secondContains {
		n.Second.ResizePane(id, dir, delta)
	}
}

func clampRatio(r float64) float64 {
	if r < minRatio {
		return minRatio
	}
	if r > maxRatio {
		return maxRatio
	}
	return r
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
