package mux

import (
	"sync"

	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/sidebar"
)

// NotificationLevel classifies notification events.
type NotificationLevel int

const (
	LevelInfo NotificationLevel = iota
	LevelWarning
	LevelError
)

// MuxEvent is an inbound event delivered by backend goroutines and folded
// into application state by App.HandleEvent. The variant set is closed;
// producers must not deliver other shapes.
type MuxEvent interface {
	muxEvent()
}

// SandboxesRefreshed replaces the sidebar's sandbox list.
type SandboxesRefreshed struct {
	Sandboxes []sidebar.Sandbox
}

// SandboxRefreshFailed records a failed list refresh.
type SandboxRefreshFailed struct {
	Err string
}

// SandboxCreated reports a newly created sandbox.
type SandboxCreated struct {
	Sandbox sidebar.Sandbox
}

// SandboxDeleted reports a deleted sandbox by ID.
type SandboxDeleted struct {
	ID string
}

// SandboxConnectionChanged reports a connection-state transition.
type SandboxConnectionChanged struct {
	SandboxID string
	Connected bool
}

// TerminalOutput carries PTY bytes for a connected pane.
type TerminalOutput struct {
	PaneID    layout.PaneID
	SandboxID string
	Data      []byte
}

// Error is a generic backend failure.
type Error struct {
	Message string
}

// Notification is a generic informational message.
type Notification struct {
	Message string
	Level   NotificationLevel
}

// ConnectToSandbox asks the runner to open a terminal connection.
type ConnectToSandbox struct {
	SandboxID string
}

func (SandboxesRefreshed) muxEvent()       {}
func (SandboxRefreshFailed) muxEvent()     {}
func (SandboxCreated) muxEvent()           {}
func (SandboxDeleted) muxEvent()           {}
func (SandboxConnectionChanged) muxEvent() {}
func (TerminalOutput) muxEvent()           {}
func (Error) muxEvent()                    {}
func (Notification) muxEvent()             {}
func (ConnectToSandbox) muxEvent()         {}

// EventQueue is an unbounded, ordered, multi-producer queue of events.
// Producers push without blocking from any goroutine; the UI goroutine
// drains it once per tick. Ordering is FIFO per producer.
type EventQueue struct {
	mu     sync.Mutex
	events []MuxEvent
}

// NewEventQueue creates an empty queue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// Push appends an event. It never blocks.
func (q *EventQueue) Push(ev MuxEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// Drain removes and returns all queued events in arrival order.
func (q *EventQueue) Drain() []MuxEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	events := q.events
	q.events = nil
	return events
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
