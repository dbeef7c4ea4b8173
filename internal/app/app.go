// Package app provides the main application orchestration for sandmux:
// the gocui shell, the background goroutines talking to the sandbox
// service, and the pump that feeds backend events into the state machine.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-errors/errors"
	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/sandmux/internal/api"
	"github.com/abdullathedruid/sandmux/internal/config"
	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/mux"
	"github.com/abdullathedruid/sandmux/internal/sidebar"
	"github.com/abdullathedruid/sandmux/internal/terminal"
)

// eventPumpInterval is how often queued backend events are folded into
// state on the UI goroutine.
const eventPumpInterval = 50 * time.Millisecond

// App wires the state machine to the terminal, the sandbox service, and
// the keyboard. All state mutation happens on the gocui main loop; the
// background goroutines only push events onto the queue.
type App struct {
	gui    *gocui.Gui
	config *config.Config
	mux    *mux.App
	events *mux.EventQueue

	client    *api.Client
	terminals *terminal.Manager

	sockMu sync.Mutex
	sock   *api.MuxSocket

	watcher *config.Watcher

	// Last known pane geometry, for resize propagation.
	lastAreas map[layout.PaneID]layout.Rect

	stopCh chan struct{}
}

// New creates the application. The GUI is initialized later in Run so
// the state machine can be exercised headless in tests.
func New(cfg *config.Config) *App {
	events := mux.NewEventQueue()
	m := mux.New(cfg.BaseURL, events)
	tm := terminal.NewManager()
	m.SetTerminalSource(tm)

	return &App{
		config:    cfg,
		mux:       m,
		events:    events,
		client:    api.NewClient(cfg.BaseURL),
		terminals: tm,
		lastAreas: make(map[layout.PaneID]layout.Rect),
		stopCh:    make(chan struct{}),
	}
}

// Run starts the main event loop and blocks until the user quits.
func (a *App) Run() error {
	g, err := gocui.NewGui(gocui.NewGuiOpts{
		OutputMode: gocui.OutputTrue,
	})
	if err != nil {
		return fmt.Errorf("initializing GUI: %w", err)
	}
	a.gui = g
	defer a.Close()

	a.gui.SetManagerFunc(a.layout)

	if err := a.setupKeybindings(); err != nil {
		return fmt.Errorf("setting up keybindings: %w", err)
	}

	a.startConfigWatcher()

	go a.connectMux()
	go a.refreshLoop()
	go a.eventPump()

	// Handle SIGINT/SIGTERM for clean exit
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		a.gui.Update(func(g *gocui.Gui) error {
			return gocui.ErrQuit
		})
	}()

	if err := a.gui.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return fmt.Errorf("main loop: %w", err)
	}
	return nil
}

// Close tears down background work and the GUI.
func (a *App) Close() {
	select {
	case <-a.stopCh:
	default:
		close(a.stopCh)
	}
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.sockMu.Lock()
	if a.sock != nil {
		a.sock.Close()
		a.sock = nil
	}
	a.sockMu.Unlock()
	if a.gui != nil {
		a.gui.Close()
	}
}

// startConfigWatcher reloads keybindings and theme on config edits. A
// watcher failure is not fatal; the session just runs without live
// reload.
func (a *App) startConfigWatcher() {
	w, err := config.NewWatcher(a.config)
	if err != nil {
		return
	}
	w.OnReload(func(cfg *config.Config) {
		a.gui.Update(func(g *gocui.Gui) error {
			a.config = cfg
			a.mux.Events.Push(mux.Notification{Message: "Config reloaded", Level: mux.LevelInfo})
			return nil
		})
	})
	w.Start()
	a.watcher = w
}

// connectMux dials the multiplexed attachment socket. Terminal panes
// stay blank until it is up; failures surface in the status bar.
func (a *App) connectMux() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	sock, err := api.DialMux(ctx, a.config.BaseURL, a.events)
	if err != nil {
		a.events.Push(mux.Error{Message: fmt.Sprintf("mux attach failed: %v", err)})
		return
	}

	a.sockMu.Lock()
	a.sock = sock
	a.sockMu.Unlock()
}

// socket returns the attachment socket, or nil while disconnected.
func (a *App) socket() *api.MuxSocket {
	a.sockMu.Lock()
	defer a.sockMu.Unlock()
	return a.sock
}

// refreshLoop polls the sandbox list.
func (a *App) refreshLoop() {
	a.refreshSandboxes()

	interval := time.Duration(a.config.RefreshInterval) * time.Second
	if interval <= 0 {
		interval = 5 * time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.refreshSandboxes()
		}
	}
}

// eventPump moves queued events onto the UI goroutine and expires stale
// status messages.
func (a *App) eventPump() {
	ticker := time.NewTicker(eventPumpInterval)
	defer ticker.Stop()

	for {
		select {
		case <-a.stopCh:
			return
		case <-ticker.C:
			a.gui.Update(func(g *gocui.Gui) error {
				a.drainEvents()
				a.mux.ClearExpiredStatus(time.Now())
				return nil
			})
		}
	}
}

// drainEvents folds every queued event into state. Terminal output goes
// straight to the buffer registry; everything else goes through the
// state machine.
func (a *App) drainEvents() {
	for _, ev := range a.events.Drain() {
		switch e := ev.(type) {
		case mux.TerminalOutput:
			a.terminals.Write(e.PaneID, e.Data)
		case mux.ConnectToSandbox:
			a.mux.HandleEvent(ev)
			a.attachActivePane(e.SandboxID)
		case mux.SandboxesRefreshed:
			a.mux.HandleEvent(ev)
			if a.mux.NeedsInitialSandbox && len(e.Sandboxes) == 0 {
				a.mux.NeedsInitialSandbox = false
				go a.createSandbox()
			}
		default:
			a.mux.HandleEvent(ev)
		}
	}
}

// execute runs a command through the state machine and performs any
// backend side effects the command implies.
func (a *App) execute(cmd mux.MuxCommand) error {
	a.mux.ExecuteCommand(cmd)

	switch cmd {
	case mux.CmdQuit:
		return gocui.ErrQuit

	case mux.CmdNewSandbox, mux.CmdNewSession:
		go a.createSandbox()

	case mux.CmdDeleteSandbox:
		if sb, ok := a.mux.Sidebar.SelectedSandbox(); ok {
			go a.deleteSandbox(sb.ID)
		}

	case mux.CmdRefreshSandboxes:
		go a.refreshSandboxes()

	case mux.CmdSelectSandbox, mux.CmdAttachSandbox:
		if id := a.mux.SelectedSandboxID; id != "" {
			a.attachActivePane(id)
		}

	case mux.CmdDetachSandbox:
		a.detachActivePane()

	case mux.CmdClosePane, mux.CmdCloseTab:
		a.pruneBuffers()
	}

	return nil
}

// attachActivePane points the active pane's terminal at a sandbox and
// opens a PTY session for it.
func (a *App) attachActivePane(sandboxID string) {
	paneID, ok := a.mux.ActivePaneID()
	if !ok {
		return
	}

	tab := a.mux.Workspace.ActiveTab()
	if tab == nil {
		return
	}
	if pane := tab.Layout.FindPane(paneID); pane != nil {
		title := sandboxID
		if sb, ok := a.mux.Sidebar.SelectedSandbox(); ok && sb.ID == sandboxID {
			title = sb.Name
		}
		pane.Content = layout.PaneContent{
			Kind:      layout.ContentTerminal,
			SandboxID: sandboxID,
			Title:     title,
		}
	}

	rows, cols := a.paneDimensions(paneID)
	a.terminals.Attach(paneID, rows, cols)

	sock := a.socket()
	if sock == nil {
		a.events.Push(mux.Error{Message: "not connected to sandbox service"})
		return
	}
	go func() {
		if err := sock.OpenSession(paneID, sandboxID, rows, cols); err != nil {
			a.events.Push(mux.Error{Message: fmt.Sprintf("opening session: %v", err)})
		}
	}()
}

// detachActivePane closes the active pane's session and drops its
// buffer. The pane itself stays in the layout.
func (a *App) detachActivePane() {
	paneID, ok := a.mux.ActivePaneID()
	if !ok {
		return
	}

	if sock := a.socket(); sock != nil {
		go sock.CloseSession(paneID)
	}
	a.terminals.Detach(paneID)

	tab := a.mux.Workspace.ActiveTab()
	if tab == nil {
		return
	}
	if pane := tab.Layout.FindPane(paneID); pane != nil {
		pane.Content = layout.PaneContent{Kind: layout.ContentEmpty}
	}
}

// pruneBuffers drops terminal buffers for panes no longer in any tab.
func (a *App) pruneBuffers() {
	live := make(map[layout.PaneID]bool)
	for _, tab := range a.mux.Workspace.Tabs {
		for _, id := range tab.Layout.PaneIDs() {
			live[id] = true
		}
	}
	for id := range a.lastAreas {
		if !live[id] {
			if sock := a.socket(); sock != nil {
				go sock.CloseSession(id)
			}
			a.terminals.Detach(id)
			delete(a.lastAreas, id)
		}
	}
}

// paneDimensions returns the interior rows/cols for a pane, falling back
// to a standard terminal size before the first layout pass.
func (a *App) paneDimensions(id layout.PaneID) (rows, cols int) {
	if area, ok := a.lastAreas[id]; ok {
		rows, cols = area.Height-2, area.Width-2
	}
	if rows < 1 {
		rows = 24
	}
	if cols < 1 {
		cols = 80
	}
	return rows, cols
}

// Backend calls. Each pushes its outcome onto the event queue.

func (a *App) refreshSandboxes() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	summaries, err := a.client.ListSandboxes(ctx)
	if err != nil {
		a.events.Push(mux.SandboxRefreshFailed{Err: err.Error()})
		return
	}
	a.events.Push(mux.SandboxesRefreshed{Sandboxes: toSidebarSandboxes(summaries)})
}

func (a *App) createSandbox() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sb, err := a.client.CreateSandbox(ctx, api.CreateSandboxRequest{})
	if err != nil {
		a.events.Push(mux.Error{Message: err.Error()})
		return
	}
	a.events.Push(mux.SandboxCreated{Sandbox: toSidebarSandbox(sb)})
	a.refreshSandboxes()
}

func (a *App) deleteSandbox(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := a.client.DeleteSandbox(ctx, id); err != nil {
		a.events.Push(mux.Error{Message: err.Error()})
		return
	}
	a.events.Push(mux.SandboxDeleted{ID: id})
	a.refreshSandboxes()
}

func toSidebarSandbox(s api.SandboxSummary) sidebar.Sandbox {
	return sidebar.Sandbox{
		ID:        s.ID,
		Name:      s.Name,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
	}
}

func toSidebarSandboxes(summaries []api.SandboxSummary) []sidebar.Sandbox {
	out := make([]sidebar.Sandbox, 0, len(summaries))
	for _, s := range summaries {
		out = append(out, toSidebarSandbox(s))
	}
	return out
}
