package app

import (
	"fmt"
	"strings"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/sandmux/internal/config"
	"github.com/abdullathedruid/sandmux/internal/mux"
)

// setupKeybindings installs the configured chords plus the fixed keys
// that drive whichever modal is open. Plain keystrokes are not bound
// globally so they fall through to the focused pane's editor.
func (a *App) setupKeybindings() error {
	bindings := []struct {
		key string
		cmd mux.MuxCommand
	}{
		{a.config.Keys.Quit, mux.CmdQuit},
		{a.config.Keys.CommandPalette, mux.CmdOpenCommandPalette},
		{a.config.Keys.Help, mux.CmdToggleHelp},
		{a.config.Keys.ToggleSidebar, mux.CmdToggleSidebar},
		{a.config.Keys.NavLeft, mux.CmdFocusLeft},
		{a.config.Keys.NavDown, mux.CmdFocusDown},
		{a.config.Keys.NavUp, mux.CmdFocusUp},
		{a.config.Keys.NavRight, mux.CmdFocusRight},
		{a.config.Keys.SplitHorizontal, mux.CmdSplitHorizontal},
		{a.config.Keys.SplitVertical, mux.CmdSplitVertical},
		{a.config.Keys.ClosePane, mux.CmdClosePane},
		{a.config.Keys.ZoomPane, mux.CmdToggleZoom},
		{a.config.Keys.NextPane, mux.CmdNextPane},
		{a.config.Keys.NewTab, mux.CmdNewTab},
		{a.config.Keys.NextTab, mux.CmdNextTab},
		{a.config.Keys.PrevTab, mux.CmdPrevTab},
		{a.config.Keys.Refresh, mux.CmdRefreshSandboxes},
		{a.config.Keys.ResizeLeft, mux.CmdResizeLeft},
		{a.config.Keys.ResizeDown, mux.CmdResizeDown},
		{a.config.Keys.ResizeUp, mux.CmdResizeUp},
		{a.config.Keys.ResizeRight, mux.CmdResizeRight},
	}

	for _, b := range bindings {
		key, err := config.ParseKey(b.key)
		if err != nil {
			return fmt.Errorf("binding %q: %w", b.key, err)
		}
		cmd := b.cmd
		if err := a.gui.SetKeybinding("", key.Value, key.Mod, func(g *gocui.Gui, v *gocui.View) error {
			return a.commandKey(cmd)
		}); err != nil {
			return err
		}
	}

	// Fixed keys routed by modal state.
	fixed := []struct {
		key     any
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyEnter, a.enterKey},
		{gocui.KeyEsc, a.escKey},
		{gocui.KeyBackspace, a.backspaceKey},
		{gocui.KeyBackspace2, a.backspaceKey},
		{gocui.KeyArrowUp, a.arrowKey(mux.CmdFocusUp, "\x1b[A")},
		{gocui.KeyArrowDown, a.arrowKey(mux.CmdFocusDown, "\x1b[B")},
		{gocui.KeyArrowRight, a.arrowKey(mux.CmdFocusRight, "\x1b[C")},
		{gocui.KeyArrowLeft, a.arrowKey(mux.CmdFocusLeft, "\x1b[D")},
		{gocui.KeyTab, a.passthroughKey("\t")},
		{gocui.KeySpace, a.passthroughKey(" ")},
		{gocui.KeyPgup, a.scrollKey(mux.CmdScrollPageUp)},
		{gocui.KeyPgdn, a.scrollKey(mux.CmdScrollPageDown)},
	}

	for _, f := range fixed {
		if err := a.gui.SetKeybinding("", f.key, gocui.ModNone, f.handler); err != nil {
			return err
		}
	}

	return nil
}

// commandKey runs a configured chord. While a text modal is open the
// chords are inert so typing is never hijacked.
func (a *App) commandKey(cmd mux.MuxCommand) error {
	if a.mux.RenamingTab {
		return nil
	}
	if a.mux.Palette.Visible && cmd != mux.CmdOpenCommandPalette {
		return nil
	}
	return a.execute(cmd)
}

func (a *App) enterKey(g *gocui.Gui, v *gocui.View) error {
	switch {
	case a.mux.RenamingTab:
		a.mux.FinishTabRename(true)
	case a.mux.Palette.Visible:
		if cmd, ok := a.mux.Palette.ExecuteSelection(); ok {
			a.mux.Focus = mux.FocusMainArea
			return a.execute(cmd)
		}
		a.mux.CloseCommandPalette()
	case a.mux.ShowHelp:
		a.mux.ShowHelp = false
	case a.mux.Focus == mux.FocusSidebar:
		return a.execute(mux.CmdSelectSandbox)
	default:
		a.forwardToPane("\r")
	}
	return nil
}

func (a *App) escKey(g *gocui.Gui, v *gocui.View) error {
	switch {
	case a.mux.RenamingTab:
		a.mux.FinishTabRename(false)
	case a.mux.Palette.Visible:
		a.mux.CloseCommandPalette()
	case a.mux.ShowHelp:
		a.mux.ShowHelp = false
	case !a.mux.ZoomedPane.IsZero():
		return a.execute(mux.CmdToggleZoom)
	default:
		a.forwardToPane("\x1b")
	}
	return nil
}

func (a *App) backspaceKey(g *gocui.Gui, v *gocui.View) error {
	switch {
	case a.mux.RenamingTab:
		if a.mux.RenameInput != "" {
			runes := []rune(a.mux.RenameInput)
			a.mux.RenameInput = string(runes[:len(runes)-1])
		}
	case a.mux.Palette.Visible:
		a.mux.Palette.BackspaceQuery()
	default:
		a.forwardToPane("\x7f")
	}
	return nil
}

// arrowKey moves selection in modals and the sidebar, otherwise passes
// the escape sequence through to the pane.
func (a *App) arrowKey(cmd mux.MuxCommand, seq string) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		switch {
		case a.mux.RenamingTab:
		case a.mux.Palette.Visible:
			switch cmd {
			case mux.CmdFocusUp:
				a.mux.Palette.SelectUp()
			case mux.CmdFocusDown:
				a.mux.Palette.SelectDown()
			}
		case a.mux.Focus == mux.FocusSidebar:
			return a.execute(cmd)
		default:
			a.forwardToPane(seq)
		}
		return nil
	}
}

// passthroughKey forwards a fixed byte sequence to the active pane
// unless a modal wants it.
func (a *App) passthroughKey(seq string) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		switch {
		case a.mux.RenamingTab:
			if seq == " " {
				a.mux.RenameInput += " "
			}
		case a.mux.Palette.Visible:
			if seq == " " {
				a.mux.Palette.AppendQuery(' ')
			}
		default:
			a.forwardToPane(seq)
		}
		return nil
	}
}

func (a *App) scrollKey(cmd mux.MuxCommand) func(*gocui.Gui, *gocui.View) error {
	return func(g *gocui.Gui, v *gocui.View) error {
		if a.mux.RenamingTab || a.mux.Palette.Visible {
			return nil
		}
		return a.execute(cmd)
	}
}

// runeEditor handles plain keystrokes for the current view: query text
// for the palette, buffer edits for the rename modal, PTY input for
// panes. Attached as each view's editor during rendering.
func (a *App) runeEditor(v *gocui.View, key gocui.Key, ch rune, mod gocui.Modifier) bool {
	if ch == 0 || mod != gocui.ModNone {
		return false
	}

	switch {
	case a.mux.RenamingTab:
		a.mux.RenameInput += string(ch)
	case a.mux.Palette.Visible:
		a.mux.Palette.AppendQuery(ch)
	case a.mux.ShowHelp:
		a.mux.ShowHelp = false
	case a.mux.Focus == mux.FocusSidebar:
		a.sidebarRune(ch)
	default:
		a.forwardToPane(string(ch))
	}
	return true
}

// sidebarRune gives the sidebar vim-style list keys.
func (a *App) sidebarRune(ch rune) {
	switch ch {
	case 'j':
		a.mux.Sidebar.SelectNext()
	case 'k':
		a.mux.Sidebar.SelectPrevious()
	case 'r':
		a.execute(mux.CmdRefreshSandboxes)
	case 'n':
		a.execute(mux.CmdNewSandbox)
	case 'x':
		a.execute(mux.CmdDeleteSandbox)
	}
}

// forwardToPane sends raw input to the active pane's PTY session. Input
// for unattached panes is dropped.
func (a *App) forwardToPane(seq string) {
	paneID, ok := a.mux.ActivePaneID()
	if !ok {
		return
	}
	if a.terminals.Get(paneID) == nil {
		return
	}
	sock := a.socket()
	if sock == nil {
		return
	}
	data := []byte(seq)
	go func() {
		if err := sock.SendInput(paneID, data); err != nil {
			a.events.Push(mux.Error{Message: fmt.Sprintf("sending input: %v", err)})
		}
	}()
}

// paneViewName reports whether a view belongs to a pane.
func paneViewName(name string) bool {
	return strings.HasPrefix(name, "pane-")
}
