// Package mux implements the multiplexer application state machine: the
// command vocabulary, the command palette, inbound backend events, and the
// App that folds both into workspace and sidebar state.
package mux

import "strings"

// MuxCommand is one entry in the command vocabulary. Every input chord and
// every palette selection resolves to exactly one command.
type MuxCommand int

const (
	// Navigation
	CmdFocusLeft MuxCommand = iota
	CmdFocusRight
	CmdFocusUp
	CmdFocusDown
	CmdFocusSidebar
	CmdFocusMainArea
	CmdNextPane
	CmdPrevPane

	// Pane management
	CmdSplitHorizontal
	CmdSplitVertical
	CmdClosePane
	CmdToggleZoom
	CmdSwapPaneLeft
	CmdSwapPaneRight
	CmdSwapPaneUp
	CmdSwapPaneDown
	CmdResizeLeft
	CmdResizeRight
	CmdResizeUp
	CmdResizeDown

	// Tab management
	CmdNewTab
	CmdCloseTab
	CmdRenameTab
	CmdMoveTabLeft
	CmdMoveTabRight
	CmdNextTab
	CmdPrevTab
	CmdGoToTab1
	CmdGoToTab2
	CmdGoToTab3
	CmdGoToTab4
	CmdGoToTab5
	CmdGoToTab6
	CmdGoToTab7
	CmdGoToTab8
	CmdGoToTab9

	// Sidebar
	CmdToggleSidebar
	CmdSelectSandbox

	// Sandbox management
	CmdNewSandbox
	CmdDeleteSandbox
	CmdRefreshSandboxes
	CmdAttachSandbox
	CmdDetachSandbox
	CmdNewSession

	// UI
	CmdOpenCommandPalette
	CmdToggleHelp
	CmdQuit

	// Scrolling
	CmdScrollUp
	CmdScrollDown
	CmdScrollPageUp
	CmdScrollPageDown
	CmdScrollToTop
	CmdScrollToBottom
)

// commandInfo is the static catalog entry for one command.
type commandInfo struct {
	label    string
	category string
	keywords string // space-separated search terms beyond the label
}

var commandCatalog = map[MuxCommand]commandInfo{
	CmdFocusLeft:     {"Focus Left", "Navigation", "move left pane"},
	CmdFocusRight:    {"Focus Right", "Navigation", "move right pane"},
	CmdFocusUp:       {"Focus Up", "Navigation", "move up pane"},
	CmdFocusDown:     {"Focus Down", "Navigation", "move down pane"},
	CmdFocusSidebar:  {"Focus Sidebar", "Navigation", "sandbox list"},
	CmdFocusMainArea: {"Focus Main Area", "Navigation", "panes"},
	CmdNextPane:      {"Next Pane", "Navigation", "cycle forward"},
	CmdPrevPane:      {"Previous Pane", "Navigation", "cycle backward"},

	CmdSplitHorizontal: {"Split Horizontal", "Pane", "pane divide down"},
	CmdSplitVertical:   {"Split Vertical", "Pane", "pane divide right"},
	CmdClosePane:       {"Close Pane", "Pane", "kill remove"},
	CmdToggleZoom:      {"Toggle Zoom", "Pane", "fullscreen maximize"},
	CmdSwapPaneLeft:    {"Swap Pane Left", "Pane", "exchange"},
	CmdSwapPaneRight:   {"Swap Pane Right", "Pane", "exchange"},
	CmdSwapPaneUp:      {"Swap Pane Up", "Pane", "exchange"},
	CmdSwapPaneDown:    {"Swap Pane Down", "Pane", "exchange"},
	CmdResizeLeft:      {"Resize Left", "Pane", "shrink grow"},
	CmdResizeRight:     {"Resize Right", "Pane", "shrink grow"},
	CmdResizeUp:        {"Resize Up", "Pane", "shrink grow"},
	CmdResizeDown:      {"Resize Down", "Pane", "shrink grow"},

	CmdNewTab:       {"New Tab", "Tab", "create"},
	CmdCloseTab:     {"Close Tab", "Tab", "kill remove"},
	CmdRenameTab:    {"Rename Tab", "Tab", "title"},
	CmdMoveTabLeft:  {"Move Tab Left", "Tab", "reorder"},
	CmdMoveTabRight: {"Move Tab Right", "Tab", "reorder"},
	CmdNextTab:      {"Next Tab", "Tab", "cycle"},
	CmdPrevTab:      {"Previous Tab", "Tab", "cycle"},
	CmdGoToTab1:     {"Go to Tab 1", "Tab", ""},
	CmdGoToTab2:     {"Go to Tab 2", "Tab", ""},
	CmdGoToTab3:     {"Go to Tab 3", "Tab", ""},
	CmdGoToTab4:     {"Go to Tab 4", "Tab", ""},
	CmdGoToTab5:     {"Go to Tab 5", "Tab", ""},
	CmdGoToTab6:     {"Go to Tab 6", "Tab", ""},
	CmdGoToTab7:     {"Go to Tab 7", "Tab", ""},
	CmdGoToTab8:     {"Go to Tab 8", "Tab", ""},
	CmdGoToTab9:     {"Go to Tab 9", "Tab", ""},

	CmdToggleSidebar: {"Toggle Sidebar", "Sidebar", "focus sandbox list"},
	CmdSelectSandbox: {"Select Sandbox", "Sidebar", "choose"},

	CmdNewSandbox:       {"New Sandbox", "Sandbox", "create"},
	CmdDeleteSandbox:    {"Delete Sandbox", "Sandbox", "remove destroy"},
	CmdRefreshSandboxes: {"Refresh Sandboxes", "Sandbox", "reload list"},
	CmdAttachSandbox:    {"Attach to Sandbox", "Sandbox", "connect terminal"},
	CmdDetachSandbox:    {"Detach from Sandbox", "Sandbox", "disconnect"},
	CmdNewSession:       {"New Session", "Sandbox", "create shell"},

	CmdOpenCommandPalette: {"Command Palette", "UI", "search actions"},
	CmdToggleHelp:         {"Toggle Help", "UI", "keys bindings"},
	CmdQuit:               {"Quit", "UI", "exit"},

	CmdScrollUp:       {"Scroll Up", "Scroll", "history"},
	CmdScrollDown:     {"Scroll Down", "Scroll", "history"},
	CmdScrollPageUp:   {"Scroll Page Up", "Scroll", "history"},
	CmdScrollPageDown: {"Scroll Page Down", "Scroll", "history"},
	CmdScrollToTop:    {"Scroll to Top", "Scroll", "history"},
	CmdScrollToBottom: {"Scroll to Bottom", "Scroll", "history"},
}

// allCommands is the catalog in display order. The palette groups by
// category, so commands sharing a category must be contiguous here.
var allCommands = []MuxCommand{
	CmdFocusLeft, CmdFocusRight, CmdFocusUp, CmdFocusDown,
	CmdFocusSidebar, CmdFocusMainArea, CmdNextPane, CmdPrevPane,

	CmdSplitHorizontal, CmdSplitVertical, CmdClosePane, CmdToggleZoom,
	CmdSwapPaneLeft, CmdSwapPaneRight, CmdSwapPaneUp, CmdSwapPaneDown,
	CmdResizeLeft, CmdResizeRight, CmdResizeUp, CmdResizeDown,

	CmdNewTab, CmdCloseTab, CmdRenameTab, CmdMoveTabLeft, CmdMoveTabRight,
	CmdNextTab, CmdPrevTab,
	CmdGoToTab1, CmdGoToTab2, CmdGoToTab3, CmdGoToTab4, CmdGoToTab5,
	CmdGoToTab6, CmdGoToTab7, CmdGoToTab8, CmdGoToTab9,

	CmdToggleSidebar, CmdSelectSandbox,

	CmdNewSandbox, CmdDeleteSandbox, CmdRefreshSandboxes,
	CmdAttachSandbox, CmdDetachSandbox, CmdNewSession,

	CmdOpenCommandPalette, CmdToggleHelp, CmdQuit,

	CmdScrollUp, CmdScrollDown, CmdScrollPageUp, CmdScrollPageDown,
	CmdScrollToTop, CmdScrollToBottom,
}

// AllCommands returns the full catalog in display order.
func AllCommands() []MuxCommand {
	return allCommands
}

// Label returns the human-readable command name.
func (c MuxCommand) Label() string {
	return commandCatalog[c].label
}

// Category returns the command's palette group.
func (c MuxCommand) Category() string {
	return commandCatalog[c].category
}

// Keywords returns extra search terms matched by the palette filter.
func (c MuxCommand) Keywords() string {
	return commandCatalog[c].keywords
}

// Matches reports whether the command matches a palette query. The query
// is matched case-insensitively against the label and the keywords; an
// empty query matches everything.
func (c MuxCommand) Matches(query string) bool {
	if query == "" {
		return true
	}
	q := strings.ToLower(query)
	info := commandCatalog[c]
	return strings.Contains(strings.ToLower(info.label), q) ||
		strings.Contains(strings.ToLower(info.keywords), q)
}
