package app

import (
	"fmt"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/mux"
	"github.com/abdullathedruid/sandmux/internal/ui"
	"github.com/abdullathedruid/sandmux/internal/version"
)

const (
	tabBarHeight    = 2
	statusBarHeight = 2
	minSidebarWidth = 10
)

// layout is the gocui manager function. It derives every frame from the
// state machine: chrome first, then panes, then whichever overlay is
// active.
func (a *App) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	if err := a.renderTabBar(g, maxX); err != nil {
		return err
	}
	if err := a.renderStatusBar(g, maxX, maxY); err != nil {
		return err
	}

	mainX0 := 0
	if a.mux.Sidebar.Visible {
		w := a.sidebarWidth(maxX)
		if err := a.renderSidebar(g, w, maxY); err != nil {
			return err
		}
		mainX0 = w
	} else {
		g.DeleteView("sidebar")
	}

	if err := a.renderPanes(g, mainX0, maxX, maxY); err != nil {
		return err
	}

	if a.mux.Palette.Visible {
		if err := a.renderPalette(g, maxX, maxY); err != nil {
			return err
		}
	} else {
		g.DeleteView("palette")
	}

	if a.mux.RenamingTab {
		if err := a.renderRenameModal(g, maxX, maxY); err != nil {
			return err
		}
	} else {
		g.DeleteView("rename")
	}

	if a.mux.ShowHelp {
		if err := a.renderHelp(g, maxX, maxY); err != nil {
			return err
		}
	} else {
		g.DeleteView("help")
	}

	a.setFocusView(g)
	return nil
}

func (a *App) sidebarWidth(maxX int) int {
	w := a.config.SidebarWidth
	if w > maxX/3 {
		w = maxX / 3
	}
	if w < minSidebarWidth {
		w = minSidebarWidth
	}
	return w
}

// setView creates or resizes a named view, tolerating first-frame
// creation.
func setView(g *gocui.Gui, name string, x0, y0, x1, y1 int) (*gocui.View, error) {
	v, err := g.SetView(name, x0, y0, x1, y1, 0)
	if err != nil && !errors.Is(err, gocui.ErrUnknownView) {
		return nil, err
	}
	return v, nil
}

func (a *App) renderTabBar(g *gocui.Gui, maxX int) error {
	v, err := setView(g, "tabbar", -1, -1, maxX, 1)
	if err != nil {
		return err
	}
	v.Frame = false
	v.Clear()

	names := make([]string, 0, len(a.mux.Workspace.Tabs))
	for _, tab := range a.mux.Workspace.Tabs {
		names = append(names, tab.Name)
	}
	fmt.Fprint(v, ui.TabBarLine(names, a.mux.Workspace.ActiveTabIndex, maxX))
	return nil
}

func (a *App) renderStatusBar(g *gocui.Gui, maxX, maxY int) error {
	v, err := setView(g, "statusbar", -1, maxY-statusBarHeight, maxX, maxY)
	if err != nil {
		return err
	}
	v.Frame = false
	v.BgColor = gocui.ColorBlue
	v.FgColor = gocui.ColorWhite
	v.Clear()

	message := ""
	if a.mux.Status != nil {
		message = a.mux.Status.Text
	}

	focus := "main"
	switch a.mux.Focus {
	case mux.FocusSidebar:
		focus = "sidebar"
	case mux.FocusCommandPalette:
		focus = "palette"
	}

	paneCount := 0
	if tab := a.mux.Workspace.ActiveTab(); tab != nil {
		paneCount = tab.PaneCount()
	}

	fmt.Fprint(v, ui.StatusBarLine(message, focus, paneCount, version.Short(), maxX))
	return nil
}

func (a *App) renderSidebar(g *gocui.Gui, width, maxY int) error {
	v, err := setView(g, "sidebar", 0, tabBarHeight-1, width-1, maxY-statusBarHeight)
	if err != nil {
		return err
	}
	v.Title = " Sandboxes "
	v.Frame = true
	v.Wrap = false
	if a.mux.Focus == mux.FocusSidebar {
		v.FrameColor = gocui.ColorGreen
	} else {
		v.FrameColor = gocui.ColorDefault
	}
	v.Clear()

	innerWidth := width - 2

	if a.mux.Sidebar.Err != "" {
		for _, line := range ui.WrapText("error: "+a.mux.Sidebar.Err, innerWidth) {
			fmt.Fprintln(v, ui.ColorRed+line+ui.ColorReset)
		}
		return nil
	}

	if a.mux.Sidebar.Count() == 0 {
		fmt.Fprintln(v, ui.ColorDim+" no sandboxes"+ui.ColorReset)
		return nil
	}

	for i, sb := range a.mux.Sidebar.Sandboxes {
		style := a.config.Theme.Status[sb.Status]
		selected := i == a.mux.Sidebar.Selected && a.mux.Focus == mux.FocusSidebar
		fmt.Fprintln(v, ui.SandboxLine(sb, style, selected, innerWidth))
	}
	return nil
}

// renderPanes lays out the active tab's split tree in the main area and
// fills each pane view with its terminal snapshot.
func (a *App) renderPanes(g *gocui.Gui, mainX0, maxX, maxY int) error {
	tab := a.mux.Workspace.ActiveTab()
	if tab == nil {
		return nil
	}

	mainArea := layout.Rect{
		X:      mainX0,
		Y:      tabBarHeight - 1,
		Width:  maxX - mainX0,
		Height: maxY - statusBarHeight - (tabBarHeight - 1),
	}

	visible := make(map[string]bool)

	zoomed := a.mux.ZoomedPane
	if !zoomed.IsZero() && tab.Layout.ContainsPane(zoomed) {
		// Zoom: one pane fills the whole main area. The tree is untouched.
		if pane := tab.Layout.FindPane(zoomed); pane != nil {
			area := mainArea
			pane.Area = &area
			if err := a.renderPane(g, pane, tab.ActivePane, true, visible); err != nil {
				return err
			}
		}
	} else {
		tab.Layout.CalculateAreas(mainArea)
		for _, pane := range tab.Layout.Panes() {
			if pane.Area == nil {
				continue
			}
			if err := a.renderPane(g, pane, tab.ActivePane, false, visible); err != nil {
				return err
			}
		}
	}

	// Drop views for panes that no longer exist or are hidden by zoom.
	for _, view := range g.Views() {
		name := view.Name()
		if paneViewName(name) && !visible[name] {
			g.DeleteView(name)
		}
	}
	return nil
}

func (a *App) renderPane(g *gocui.Gui, pane *layout.Pane, active layout.PaneID, zoomed bool, visible map[string]bool) error {
	area := *pane.Area
	name := "pane-" + pane.ID.String()
	visible[name] = true

	v, err := setView(g, name, area.X, area.Y, area.X+area.Width-1, area.Y+area.Height-1)
	if err != nil {
		return err
	}

	frameColor := gocui.ColorGreen
	if c := colorAttr(a.config.Theme.Colors.ActiveFrame); c != gocui.ColorDefault {
		frameColor = c
	}
	ui.ConfigurePaneView(v, pane, pane.ID == active, zoomed, frameColor)
	v.Editable = pane.ID == active && a.mux.Focus == mux.FocusMainArea
	v.Editor = gocui.EditorFunc(a.runeEditor)
	a.propagateResize(pane.ID, area)

	v.Clear()
	if pane.Content.Kind == layout.ContentTerminal && pane.Content.SandboxID != "" {
		if content, ok := a.mux.TerminalSnapshot(pane.ID); ok {
			fmt.Fprint(v, content)
		}
	} else {
		fmt.Fprint(v, ui.ColorDim+" [empty] select a sandbox or open the palette"+ui.ColorReset)
	}
	return nil
}

// propagateResize pushes geometry changes to the terminal buffer and the
// remote PTY.
func (a *App) propagateResize(id layout.PaneID, area layout.Rect) {
	last, ok := a.lastAreas[id]
	if ok && last == area {
		return
	}
	a.lastAreas[id] = area

	rows, cols := area.Height-2, area.Width-2
	if rows < 1 || cols < 1 {
		return
	}
	a.terminals.Resize(id, rows, cols)
	if sock := a.socket(); sock != nil {
		go sock.ResizeSession(id, rows, cols)
	}
}

func (a *App) renderPalette(g *gocui.Gui, maxX, maxY int) error {
	width := 60
	if width > maxX-4 {
		width = maxX - 4
	}
	height := 16
	if height > maxY-4 {
		height = maxY - 4
	}

	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, width, height)
	v, err := setView(g, "palette", x0, y0, x1, y1)
	if err != nil {
		return err
	}
	v.Title = " Command Palette "
	v.Frame = true
	v.FrameColor = gocui.ColorCyan
	v.Wrap = false
	v.Editable = true
	v.Editor = gocui.EditorFunc(a.runeEditor)
	v.Clear()

	fmt.Fprintf(v, " > %s\n\n", a.mux.Palette.Query)

	for _, item := range a.mux.Palette.Items() {
		if item.Header != "" {
			fmt.Fprintf(v, " %s%s%s\n", ui.ColorDim, item.Header, ui.ColorReset)
			continue
		}
		label := item.Command.Label()
		if item.Highlighted {
			fmt.Fprintf(v, " %s> %s%s\n", ui.ColorReverse, label, ui.ColorReset)
		} else {
			fmt.Fprintf(v, "   %s\n", label)
		}
	}
	return nil
}

func (a *App) renderRenameModal(g *gocui.Gui, maxX, maxY int) error {
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, 40, 2)
	v, err := setView(g, "rename", x0, y0, x1, y1)
	if err != nil {
		return err
	}
	ui.ConfigureInputModal(v, "Rename Tab", a.mux.RenameInput)
	v.Editor = gocui.EditorFunc(a.runeEditor)
	v.SetCursor(len(a.mux.RenameInput)+1, 0)
	return nil
}

func (a *App) renderHelp(g *gocui.Gui, maxX, maxY int) error {
	width := 56
	if width > maxX-2 {
		width = maxX - 2
	}
	height := maxY - 4
	x0, y0, x1, y1 := ui.ModalDimensions(maxX, maxY, width, height)
	v, err := setView(g, "help", x0, y0, x1, y1)
	if err != nil {
		return err
	}
	v.Title = " Help "
	v.Frame = true
	v.FrameColor = gocui.ColorYellow
	v.Clear()
	fmt.Fprint(v, ui.HelpText(a.config.Keys))
	return nil
}

// setFocusView points gocui's current view at the focused region so
// editors and cursor state land in the right place.
func (a *App) setFocusView(g *gocui.Gui) {
	switch {
	case a.mux.RenamingTab:
		g.SetCurrentView("rename")
		g.Cursor = true
	case a.mux.Palette.Visible:
		g.SetCurrentView("palette")
		g.Cursor = false
	case a.mux.Focus == mux.FocusSidebar:
		g.SetCurrentView("sidebar")
		g.Cursor = false
	default:
		if id, ok := a.mux.ActivePaneID(); ok {
			g.SetCurrentView("pane-" + id.String())
		}
		g.Cursor = false
	}
}

// colorAttr maps a config color name to a gocui attribute.
func colorAttr(name string) gocui.Attribute {
	switch name {
	case "black":
		return gocui.ColorBlack
	case "red":
		return gocui.ColorRed
	case "green":
		return gocui.ColorGreen
	case "yellow":
		return gocui.ColorYellow
	case "blue":
		return gocui.ColorBlue
	case "magenta":
		return gocui.ColorMagenta
	case "cyan":
		return gocui.ColorCyan
	case "white":
		return gocui.ColorWhite
	default:
		return gocui.ColorDefault
	}
}
