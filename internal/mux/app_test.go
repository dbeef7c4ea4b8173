package mux

import (
	"testing"
	"time"

	"github.com/abdullathedruid/sandmux/internal/sidebar"
)

func newTestApp() *App {
	return New("http://localhost:3030", NewEventQueue())
}

func TestApp_InitialState(t *testing.T) {
	a := newTestApp()

	if a.Focus != FocusMainArea {
		t.Error("initial focus should be the main area")
	}
	if len(a.Workspace.Tabs) != 1 {
		t.Errorf("expected 1 tab, got %d", len(a.Workspace.Tabs))
	}
	if _, ok := a.ActivePaneID(); !ok {
		t.Error("expected an active pane at startup")
	}
	if !a.ZoomedPane.IsZero() {
		t.Error("no pane should be zoomed at startup")
	}
	if !a.NeedsInitialSandbox {
		t.Error("a fresh app should want an initial sandbox")
	}
}

func TestApp_InitialSandboxFlagClearsOnNonEmptyRefresh(t *testing.T) {
	a := newTestApp()

	a.HandleEvent(SandboxesRefreshed{})
	if !a.NeedsInitialSandbox {
		t.Error("an empty refresh should leave the flag set")
	}

	a.HandleEvent(SandboxesRefreshed{Sandboxes: []sidebar.Sandbox{{ID: "sb-1"}}})
	if a.NeedsInitialSandbox {
		t.Error("a populated refresh should clear the flag")
	}
}

func TestApp_SplitCommandsSetStatusAndFocusNewPane(t *testing.T) {
	a := newTestApp()

	a.ExecuteCommand(CmdSplitVertical)
	tab := a.Workspace.ActiveTab()
	if tab.PaneCount() != 2 {
		t.Fatalf("expected 2 panes, got %d", tab.PaneCount())
	}
	if a.Status == nil || a.Status.Text != "Split vertically" {
		t.Error("expected split status message")
	}

	a.ExecuteCommand(CmdSplitHorizontal)
	if tab.PaneCount() != 3 {
		t.Fatalf("expected 3 panes, got %d", tab.PaneCount())
	}
	if a.Status.Text != "Split horizontally" {
		t.Error("expected split status message")
	}
}

func TestApp_ClosePaneStatusOnlyOnChange(t *testing.T) {
	a := newTestApp()

	// Closing the last pane is refused and sets no status.
	a.ExecuteCommand(CmdClosePane)
	if a.Status != nil {
		t.Error("refused close should not set a status")
	}

	a.ExecuteCommand(CmdSplitVertical)
	a.Status = nil
	a.ExecuteCommand(CmdClosePane)
	if a.Status == nil || a.Status.Text != "Pane closed" {
		t.Error("expected close status message")
	}
}

func TestApp_FocusRoutingSidebar(t *testing.T) {
	a := newTestApp()
	a.Sidebar.SetSandboxes([]sidebar.Sandbox{
		{ID: "sb-1", Name: "one"},
		{ID: "sb-2", Name: "two"},
	})
	a.Focus = FocusSidebar

	start := a.Sidebar.Selected
	a.ExecuteCommand(CmdFocusDown)
	a.ExecuteCommand(CmdFocusUp)
	if a.Sidebar.Selected != start {
		t.Errorf("down then up should restore selection %d, got %d", start, a.Sidebar.Selected)
	}
}

func TestApp_SelectSandboxRequiresSidebarFocus(t *testing.T) {
	a := newTestApp()
	a.Sidebar.SetSandboxes([]sidebar.Sandbox{{ID: "sb-1", Name: "one"}})

	a.Focus = FocusMainArea
	a.ExecuteCommand(CmdSelectSandbox)
	if a.SelectedSandboxID != "" {
		t.Error("SelectSandbox should be ignored outside sidebar focus")
	}

	a.Focus = FocusSidebar
	a.ExecuteCommand(CmdSelectSandbox)
	if a.SelectedSandboxID != "sb-1" {
		t.Errorf("expected sb-1 selected, got %q", a.SelectedSandboxID)
	}
	if a.Focus != FocusMainArea {
		t.Error("selection should return focus to the main area")
	}
}

func TestApp_ToggleSidebarFlipsFocus(t *testing.T) {
	a := newTestApp()

	a.ExecuteCommand(CmdToggleSidebar)
	if a.Focus != FocusSidebar {
		t.Error("expected sidebar focus")
	}
	a.ExecuteCommand(CmdToggleSidebar)
	if a.Focus != FocusMainArea {
		t.Error("expected main area focus")
	}

	// Forces the sidebar visible before focusing it.
	a.Sidebar.Visible = false
	a.ExecuteCommand(CmdToggleSidebar)
	if !a.Sidebar.Visible || a.Focus != FocusSidebar {
		t.Error("toggle should make the sidebar visible and focused")
	}
}

func TestApp_FocusSidebarRequiresVisible(t *testing.T) {
	a := newTestApp()
	a.Sidebar.Visible = false

	a.ExecuteCommand(CmdFocusSidebar)
	if a.Focus != FocusMainArea {
		t.Error("hidden sidebar must not take focus")
	}
}

func TestApp_ToggleZoom(t *testing.T) {
	a := newTestApp()
	active, _ := a.ActivePaneID()

	a.ExecuteCommand(CmdToggleZoom)
	if a.ZoomedPane != active {
		t.Error("expected the active pane zoomed")
	}
	if a.Status.Text != "Zoom on" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}

	a.ExecuteCommand(CmdToggleZoom)
	if !a.ZoomedPane.IsZero() {
		t.Error("expected zoom cleared")
	}
	if a.Status.Text != "Zoom off" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}
}

func TestApp_SwapCommandsAreStubbed(t *testing.T) {
	a := newTestApp()
	a.ExecuteCommand(CmdSplitVertical)
	before := a.Workspace.ActiveTab().Layout.PaneIDs()

	for _, cmd := range []MuxCommand{CmdSwapPaneLeft, CmdSwapPaneRight, CmdSwapPaneUp, CmdSwapPaneDown} {
		a.ExecuteCommand(cmd)
		if a.Status == nil || a.Status.Text != "Pane swapping not yet implemented" {
			t.Errorf("%s should only set the informational status", cmd.Label())
		}
	}

	after := a.Workspace.ActiveTab().Layout.PaneIDs()
	for i := range before {
		if before[i] != after[i] {
			t.Fatal("swap stubs must not restructure the tree")
		}
	}
}

func TestApp_GoToTabCommands(t *testing.T) {
	a := newTestApp()
	a.ExecuteCommand(CmdNewTab)
	a.ExecuteCommand(CmdNewTab)

	a.ExecuteCommand(CmdGoToTab1)
	if a.Workspace.ActiveTabIndex != 0 {
		t.Errorf("expected tab 0, got %d", a.Workspace.ActiveTabIndex)
	}
	a.ExecuteCommand(CmdGoToTab3)
	if a.Workspace.ActiveTabIndex != 2 {
		t.Errorf("expected tab 2, got %d", a.Workspace.ActiveTabIndex)
	}
	// Out of range: ignored.
	a.ExecuteCommand(CmdGoToTab9)
	if a.Workspace.ActiveTabIndex != 2 {
		t.Error("out-of-range GoToTab should be ignored")
	}
}

func TestApp_StatusExpiry(t *testing.T) {
	a := newTestApp()
	a.SetStatus("x")
	created := a.Status.CreatedAt

	a.ClearExpiredStatus(created.Add(2 * time.Second))
	if a.Status == nil {
		t.Fatal("status should survive 2 seconds")
	}
	a.ClearExpiredStatus(created.Add(4 * time.Second))
	if a.Status != nil {
		t.Fatal("status should expire after 4 seconds")
	}
}

func TestApp_TabRenameMachine(t *testing.T) {
	a := newTestApp()

	a.ExecuteCommand(CmdRenameTab)
	if !a.RenamingTab {
		t.Fatal("expected rename mode")
	}
	if a.RenameInput != "Tab 1" {
		t.Errorf("buffer should seed from the current name, got %q", a.RenameInput)
	}

	a.RenameInput = "deploy"
	a.FinishTabRename(true)
	if a.RenamingTab {
		t.Error("rename mode should end")
	}
	if a.Workspace.ActiveTab().Name != "deploy" {
		t.Errorf("expected rename applied, got %q", a.Workspace.ActiveTab().Name)
	}

	// Empty buffer discards even when applying.
	a.ExecuteCommand(CmdRenameTab)
	a.RenameInput = ""
	a.FinishTabRename(true)
	if a.Workspace.ActiveTab().Name != "deploy" {
		t.Error("empty rename should be discarded")
	}

	// Cancel discards the edit.
	a.ExecuteCommand(CmdRenameTab)
	a.RenameInput = "scratch"
	a.FinishTabRename(false)
	if a.Workspace.ActiveTab().Name != "deploy" {
		t.Error("cancelled rename should be discarded")
	}
}

func TestApp_OpenPaletteTakesFocus(t *testing.T) {
	a := newTestApp()

	a.ExecuteCommand(CmdOpenCommandPalette)
	if !a.Palette.Visible || a.Focus != FocusCommandPalette {
		t.Error("palette should be visible and focused")
	}

	a.CloseCommandPalette()
	if a.Palette.Visible || a.Focus != FocusMainArea {
		t.Error("closing the palette should restore main area focus")
	}
}

func TestApp_NewSandboxEmitsIntent(t *testing.T) {
	a := newTestApp()

	a.ExecuteCommand(CmdNewSandbox)
	events := a.Events.Drain()
	if len(events) != 1 {
		t.Fatalf("expected 1 intent, got %d", len(events))
	}
	if _, ok := events[0].(Notification); !ok {
		t.Errorf("expected a Notification intent, got %T", events[0])
	}
}

func TestApp_HandleEvents(t *testing.T) {
	a := newTestApp()

	a.HandleEvent(SandboxesRefreshed{Sandboxes: []sidebar.Sandbox{
		{ID: "sb-1", Name: "one"},
	}})
	if a.Sidebar.Count() != 1 {
		t.Errorf("expected 1 sandbox, got %d", a.Sidebar.Count())
	}

	a.HandleEvent(SandboxRefreshFailed{Err: "boom"})
	if a.Sidebar.Err != "boom" {
		t.Errorf("expected sidebar error recorded, got %q", a.Sidebar.Err)
	}
	if a.Status == nil || a.Status.Text != "Error: boom" {
		t.Error("expected error status")
	}

	a.HandleEvent(SandboxCreated{Sandbox: sidebar.Sandbox{ID: "sb-2", Name: "two"}})
	if a.Status.Text != "Created sandbox: two" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}

	a.HandleEvent(SandboxDeleted{ID: "sb-2"})
	if a.Status.Text != "Deleted sandbox: sb-2" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}

	a.HandleEvent(SandboxConnectionChanged{SandboxID: "sb-1", Connected: true})
	if a.Status.Text != "Sandbox sb-1: connected" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}

	a.HandleEvent(Notification{Message: "hello", Level: LevelInfo})
	if a.Status.Text != "hello" {
		t.Errorf("unexpected status %q", a.Status.Text)
	}

	a.HandleEvent(ConnectToSandbox{SandboxID: "sb-1"})
	if a.SelectedSandboxID != "sb-1" {
		t.Error("expected selected sandbox recorded")
	}
}

func TestApp_TerminalOutputDoesNotTouchLayout(t *testing.T) {
	a := newTestApp()
	active, _ := a.ActivePaneID()
	before := a.Workspace.ActiveTab().PaneCount()

	a.HandleEvent(TerminalOutput{PaneID: active, SandboxID: "sb-1", Data: []byte("hi")})
	if a.Workspace.ActiveTab().PaneCount() != before {
		t.Error("terminal output must not change the tree")
	}
	if a.Status != nil {
		t.Error("terminal output must not set a status")
	}
}

func TestApp_TerminalSnapshotWithoutSource(t *testing.T) {
	a := newTestApp()
	id, _ := a.ActivePaneID()
	if _, ok := a.TerminalSnapshot(id); ok {
		t.Error("snapshot lookup without a registry should report false")
	}
}

func TestEventQueue_FIFO(t *testing.T) {
	q := NewEventQueue()
	q.Push(SandboxDeleted{ID: "1"})
	q.Push(SandboxDeleted{ID: "2"})
	q.Push(SandboxDeleted{ID: "3"})

	events := q.Drain()
	if len(events) != 3 {
		t.Fatalf("expected 3 events, got %d", len(events))
	}
	for i, ev := range events {
		if ev.(SandboxDeleted).ID != string(rune('1'+i)) {
			t.Fatal("events drained out of order")
		}
	}
	if q.Len() != 0 {
		t.Error("queue should be empty after drain")
	}
}
