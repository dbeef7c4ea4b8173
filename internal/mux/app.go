package mux

import (
	"fmt"
	"time"

	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/sidebar"
)

// FocusArea is the top-level UI region currently receiving routed
// commands.
type FocusArea int

const (
	FocusSidebar FocusArea = iota
	FocusMainArea
	FocusCommandPalette
)

// statusTTL is how long a status message stays visible.
const statusTTL = 3 * time.Second

// StatusMessage is a transient message shown in the status bar.
type StatusMessage struct {
	Text      string
	CreatedAt time.Time
}

// TerminalSource looks up terminal buffer snapshots for panes. It must be
// callable without blocking; implementations return false on contention.
type TerminalSource interface {
	TrySnapshot(id layout.PaneID) (string, bool)
}

// App is the multiplexer application state. A single UI goroutine owns it:
// ExecuteCommand and HandleEvent are the only entry points and both are
// synchronous, pure over the state, and free of I/O. Backend work is
// requested by pushing intents onto Events and observed later as inbound
// events.
type App struct {
	Workspace *layout.Workspace
	Sidebar   *sidebar.Sidebar
	Palette   *CommandPalette
	Focus     FocusArea

	// ZoomedPane is a render-only override showing one pane full-viewport.
	// It never restructures the layout tree. Zero value means no zoom.
	ZoomedPane layout.PaneID

	ShowHelp bool

	// Events carries backend events in and fire-and-forget intents out.
	Events *EventQueue

	// BaseURL of the sandbox service, recorded for the runner.
	BaseURL string

	Status *StatusMessage

	// Tab rename state: Idle -> Renaming on CmdRenameTab, back to Idle on
	// FinishTabRename.
	RenamingTab bool
	RenameInput string

	// SelectedSandboxID is the sandbox targeted for terminal attachment.
	SelectedSandboxID string

	// NeedsInitialSandbox asks the runner to create a sandbox on startup.
	NeedsInitialSandbox bool

	terminals TerminalSource
}

// New creates the application state with one tab containing one terminal
// pane.
func New(baseURL string, events *EventQueue) *App {
	return &App{
		Workspace:           layout.NewWorkspace(),
		Sidebar:             sidebar.New(),
		Palette:             NewCommandPalette(),
		Focus:               FocusMainArea,
		Events:              events,
		BaseURL:             baseURL,
		NeedsInitialSandbox: true,
	}
}

// SetTerminalSource attaches the shared terminal buffer registry.
func (a *App) SetTerminalSource(ts TerminalSource) {
	a.terminals = ts
}

// TerminalSnapshot returns the rendered buffer for a pane without
// blocking. The second result is false when no buffer exists or the
// registry is contended this frame.
func (a *App) TerminalSnapshot(id layout.PaneID) (string, bool) {
	if a.terminals == nil {
		return "", false
	}
	return a.terminals.TrySnapshot(id)
}

// ActivePaneID returns the active pane of the active tab.
func (a *App) ActivePaneID() (layout.PaneID, bool) {
	tab := a.Workspace.ActiveTab()
	if tab == nil || tab.ActivePane.IsZero() {
		return layout.PaneID{}, false
	}
	return tab.ActivePane, true
}

// SetStatus records a transient status message.
func (a *App) SetStatus(text string) {
	a.setStatusAt(text, time.Now())
}

func (a *App) setStatusAt(text string, now time.Time) {
	a.Status = &StatusMessage{Text: text, CreatedAt: now}
}

// ClearExpiredStatus drops the status message once it is older than the
// display window. Called lazily each tick with the current time.
func (a *App) ClearExpiredStatus(now time.Time) {
	if a.Status != nil && now.Sub(a.Status.CreatedAt) > statusTTL {
		a.Status = nil
	}
}

// ExecuteCommand routes a command by the current focus area and mutates
// workspace, sidebar, palette, or flags. It is total over the vocabulary:
// unknown states degrade to no-ops, never failures.
func (a *App) ExecuteCommand(cmd MuxCommand) {
	switch cmd {
	// Navigation
	case CmdFocusLeft:
		if a.Focus == FocusMainArea {
			if tab := a.Workspace.ActiveTab(); tab != nil {
				tab.Navigate(layout.Left)
			}
		}
	case CmdFocusRight:
		if a.Focus == FocusMainArea {
			if tab := a.Workspace.ActiveTab(); tab != nil {
				tab.Navigate(layout.Right)
			}
		}
	case CmdFocusUp:
		if a.Focus == FocusMainArea {
			if tab := a.Workspace.ActiveTab(); tab != nil {
				tab.Navigate(layout.Up)
			}
		} else if a.Focus == FocusSidebar {
			a.Sidebar.SelectPrevious()
		}
	case CmdFocusDown:
		if a.Focus == FocusMainArea {
			if tab := a.Workspace.ActiveTab(); tab != nil {
				tab.Navigate(layout.Down)
			}
		} else if a.Focus == FocusSidebar {
			a.Sidebar.SelectNext()
		}
	case CmdFocusSidebar:
		if a.Sidebar.Visible {
			a.Focus = FocusSidebar
		}
	case CmdFocusMainArea:
		a.Focus = FocusMainArea
	case CmdNextPane:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.NextPane()
		}
	case CmdPrevPane:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.PrevPane()
		}

	// Pane management
	case CmdSplitHorizontal:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Split(layout.Horizontal, layout.TerminalPane("", "Terminal"))
			a.SetStatus("Split horizontally")
		}
	case CmdSplitVertical:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Split(layout.Vertical, layout.TerminalPane("", "Terminal"))
			a.SetStatus("Split vertically")
		}
	case CmdClosePane:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			if tab.CloseActivePane() {
				a.SetStatus("Pane closed")
			}
		}
	case CmdToggleZoom:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			if !a.ZoomedPane.IsZero() {
				a.ZoomedPane = layout.PaneID{}
				a.SetStatus("Zoom off")
			} else if !tab.ActivePane.IsZero() {
				a.ZoomedPane = tab.ActivePane
				a.SetStatus("Zoom on")
			}
		}
	case CmdSwapPaneLeft, CmdSwapPaneRight, CmdSwapPaneUp, CmdSwapPaneDown:
		// Accepted but not implemented yet.
		a.SetStatus("Pane swapping not yet implemented")
	case CmdResizeLeft:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Resize(layout.Left)
		}
	case CmdResizeRight:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Resize(layout.Right)
		}
	case CmdResizeUp:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Resize(layout.Up)
		}
	case CmdResizeDown:
		if tab := a.Workspace.ActiveTab(); tab != nil {
			tab.Resize(layout.Down)
		}

	// Tab management
	case CmdNewTab:
		a.Workspace.NewTab()
		a.SetStatus("New tab created")
	case CmdCloseTab:
		if a.Workspace.CloseActiveTab() {
			a.SetStatus("Tab closed")
		}
	case CmdRenameTab:
		a.StartTabRename()
	case CmdMoveTabLeft:
		a.Workspace.MoveTabLeft()
	case CmdMoveTabRight:
		a.Workspace.MoveTabRight()
	case CmdNextTab:
		a.Workspace.NextTab()
	case CmdPrevTab:
		a.Workspace.PrevTab()
	case CmdGoToTab1, CmdGoToTab2, CmdGoToTab3, CmdGoToTab4, CmdGoToTab5,
		CmdGoToTab6, CmdGoToTab7, CmdGoToTab8, CmdGoToTab9:
		a.Workspace.GoToTab(int(cmd - CmdGoToTab1))

	// Sidebar
	case CmdToggleSidebar:
		if !a.Sidebar.Visible {
			a.Sidebar.Visible = true
		}
		if a.Focus == FocusSidebar {
			a.Focus = FocusMainArea
		} else {
			a.Focus = FocusSidebar
		}
	case CmdSelectSandbox:
		if a.Focus == FocusSidebar {
			if sb, ok := a.Sidebar.SelectedSandbox(); ok {
				a.SelectedSandboxID = sb.ID
				a.SetStatus(fmt.Sprintf("Selected: %s", sb.Name))
				a.Focus = FocusMainArea
			}
		}

	// Sandbox management
	case CmdNewSandbox:
		a.SetStatus("Creating new sandbox...")
		a.Events.Push(Notification{Message: "Creating sandbox...", Level: LevelInfo})
	case CmdDeleteSandbox:
		if sb, ok := a.Sidebar.SelectedSandbox(); ok {
			a.SetStatus(fmt.Sprintf("Deleting sandbox: %s", sb.Name))
		} else {
			a.SetStatus("No sandbox selected")
		}
	case CmdRefreshSandboxes:
		a.SetStatus("Refreshing sandboxes...")
	case CmdNewSession:
		a.SetStatus("Creating new session...")
	case CmdAttachSandbox:
		if a.SelectedSandboxID != "" {
			a.SetStatus(fmt.Sprintf("Attaching to sandbox: %s", a.SelectedSandboxID))
		} else if sb, ok := a.Sidebar.SelectedSandbox(); ok {
			a.SelectedSandboxID = sb.ID
			a.SetStatus(fmt.Sprintf("Attaching to sandbox: %s", sb.Name))
		} else {
			a.SetStatus("No sandbox selected")
		}
	case CmdDetachSandbox:
		a.SetStatus("Detaching from sandbox...")
		a.SelectedSandboxID = ""

	// UI
	case CmdOpenCommandPalette:
		a.Palette.Open()
		a.Focus = FocusCommandPalette
	case CmdToggleHelp:
		a.ShowHelp = !a.ShowHelp
	case CmdQuit:
		// Handled by the runner.

	// Scrolling is handled in pane content by the runner.
	case CmdScrollUp, CmdScrollDown, CmdScrollPageUp, CmdScrollPageDown,
		CmdScrollToTop, CmdScrollToBottom:
	}
}

// CloseCommandPalette hides the palette and returns focus to the main
// area.
func (a *App) CloseCommandPalette() {
	a.Palette.Close()
	a.Focus = FocusMainArea
}

// StartTabRename enters rename mode, seeding the input buffer with the
// active tab's current name.
func (a *App) StartTabRename() {
	if tab := a.Workspace.ActiveTab(); tab != nil {
		a.RenameInput = tab.Name
		a.RenamingTab = true
	}
}

// FinishTabRename leaves rename mode. When apply is true and the buffer is
// non-empty, the active tab takes the new name; otherwise the edit is
// discarded.
func (a *App) FinishTabRename(apply bool) {
	if apply && a.RenameInput != "" {
		a.Workspace.RenameActiveTab(a.RenameInput)
	}
	a.RenameInput = ""
	a.RenamingTab = false
}

// HandleEvent folds one inbound backend event into state. It performs no
// I/O; connection work announced here is carried out by the runner.
func (a *App) HandleEvent(ev MuxEvent) {
	switch e := ev.(type) {
	case SandboxesRefreshed:
		a.Sidebar.SetSandboxes(e.Sandboxes)
		if len(e.Sandboxes) > 0 {
			a.NeedsInitialSandbox = false
		}
	case SandboxRefreshFailed:
		a.Sidebar.SetError(e.Err)
		a.SetStatus(fmt.Sprintf("Error: %s", e.Err))
	case SandboxCreated:
		a.SetStatus(fmt.Sprintf("Created sandbox: %s", e.Sandbox.Name))
	case SandboxDeleted:
		a.SetStatus(fmt.Sprintf("Deleted sandbox: %s", e.ID))
	case SandboxConnectionChanged:
		state := "disconnected"
		if e.Connected {
			state = "connected"
		}
		a.SetStatus(fmt.Sprintf("Sandbox %s: %s", e.SandboxID, state))
	case TerminalOutput:
		// Not routed to a pane by the state machine; the runner feeds the
		// terminal registry directly.
	case Error:
		a.SetStatus(fmt.Sprintf("Error: %s", e.Message))
	case Notification:
		a.SetStatus(e.Message)
	case ConnectToSandbox:
		a.SelectedSandboxID = e.SandboxID
		a.SetStatus(fmt.Sprintf("Connecting to sandbox: %s", e.SandboxID))
	}
}
