// Package layout implements the pane layout engine: a recursive split tree
// per tab, spatial navigation between panes, and a workspace of ordered tabs.
package layout

import (
	"fmt"

	"github.com/google/uuid"
)

// PaneID uniquely identifies a pane. IDs are random 128-bit values compared
// only for equality; the zero value means "no pane".
type PaneID uuid.UUID

// NewPaneID returns a fresh random pane identifier.
func NewPaneID() PaneID {
	return PaneID(uuid.New())
}

// ParsePaneID parses the string form produced by String.
func ParsePaneID(s string) (PaneID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return PaneID{}, fmt.Errorf("parsing pane id %q: %w", s, err)
	}
	return PaneID(u), nil
}

// IsZero reports whether the ID is the zero value.
func (id PaneID) IsZero() bool {
	return id == PaneID{}
}

func (id PaneID) String() string {
	return uuid.UUID(id).String()
}

// TabID uniquely identifies a tab.
type TabID uuid.UUID

// NewTabID returns a fresh random tab identifier.
func NewTabID() TabID {
	return TabID(uuid.New())
}

func (id TabID) String() string {
	return uuid.UUID(id).String()
}

// Direction is the axis of a split.
type Direction int

const (
	// Horizontal stacks children top/bottom (divides height).
	Horizontal Direction = iota
	// Vertical places children side by side (divides width).
	Vertical
)

func (d Direction) String() string {
	if d == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// NavDirection is a direction for navigation and resizing.
type NavDirection int

const (
	Left NavDirection = iota
	Right
	Up
	Down
)

func (d NavDirection) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "down"
	}
}

// Rect is a rectangle in screen cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// ContentKind discriminates pane content variants.
type ContentKind int

const (
	// ContentEmpty is a placeholder pane.
	ContentEmpty ContentKind = iota
	// ContentTerminal is a shell/terminal pane, optionally bound to a sandbox.
	ContentTerminal
	// ContentChat is a chat session bound to a sandbox and provider.
	ContentChat
)

// PaneContent describes what a pane displays. Kind selects the variant;
// the other fields are meaningful only for the variants that use them.
type PaneContent struct {
	Kind ContentKind

	// SandboxID binds the pane to a sandbox. Empty means unbound for
	// terminals; chat panes always carry one.
	SandboxID string

	// Title is the display title for terminal panes.
	Title string

	// Provider is the chat provider for chat panes.
	Provider string
}

// Pane is a single leaf content area in the layout.
type Pane struct {
	ID      PaneID
	Content PaneContent

	// Area is the computed screen rectangle, set by CalculateAreas each
	// frame. It is derived state and never the source of truth.
	Area *Rect
}

// NewPane creates a pane with the given content and a fresh ID.
func NewPane(content PaneContent) *Pane {
	return &Pane{ID: NewPaneID(), Content: content}
}

// EmptyPane creates a placeholder pane.
func EmptyPane() *Pane {
	return NewPane(PaneContent{Kind: ContentEmpty})
}

// TerminalPane creates a terminal pane. sandboxID may be empty for an
// unbound terminal.
func TerminalPane(sandboxID, title string) *Pane {
	return NewPane(PaneContent{Kind: ContentTerminal, SandboxID: sandboxID, Title: title})
}

// ChatPane creates a chat pane for the given sandbox and provider.
func ChatPane(sandboxID, provider string) *Pane {
	return NewPane(PaneContent{Kind: ContentChat, SandboxID: sandboxID, Provider: provider})
}

// Title returns the display title for the pane.
func (p *Pane) Title() string {
	switch p.Content.Kind {
	case ContentTerminal:
		return p.Content.Title
	case ContentChat:
		return fmt.Sprintf("Chat (%s)", p.Content.Provider)
	default:
		return "Empty"
	}
}
