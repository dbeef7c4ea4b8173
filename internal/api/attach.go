package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/mux"
)

const (
	writeTimeout = 10 * time.Second
	dialTimeout  = 10 * time.Second
)

// muxFrame is one message on the multiplexed attachment socket. Sessions
// are keyed by pane ID so a single connection carries every pane's
// terminal traffic.
type muxFrame struct {
	Type      string `json:"type"`
	Session   string `json:"session,omitempty"`
	SandboxID string `json:"sandbox_id,omitempty"`
	Rows      int    `json:"rows,omitempty"`
	Cols      int    `json:"cols,omitempty"`
	Data      []byte `json:"data,omitempty"`
	Message   string `json:"message,omitempty"`
}

// MuxSocket is the client side of the multiplexed attachment. It sends
// open/input/resize frames for individual panes and turns incoming frames
// into events on the shared queue.
type MuxSocket struct {
	conn   *websocket.Conn
	events *mux.EventQueue

	writeMu sync.Mutex

	mu       sync.Mutex
	sessions map[string]string // session id -> sandbox id
	closed   bool
}

// DialMux opens the multiplexed attachment socket for the service at
// baseURL and starts reading frames. Incoming terminal output and
// connection changes are pushed onto events until the socket closes.
func DialMux(ctx context.Context, baseURL string, events *mux.EventQueue) (*MuxSocket, error) {
	target, err := wsURL(baseURL, "/mux")
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: dialTimeout}
	conn, _, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", target, err)
	}

	s := &MuxSocket{
		conn:     conn,
		events:   events,
		sessions: make(map[string]string),
	}
	go s.readLoop()
	return s, nil
}

// wsURL rewrites an http(s) base URL into the ws(s) endpoint at path.
func wsURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("parsing base url: %w", err)
	}
	switch u.Scheme {
	case "http", "ws":
		u.Scheme = "ws"
	case "https", "wss":
		u.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path
	return u.String(), nil
}

// OpenSession starts a PTY session for a pane attached to a sandbox.
// The server confirms with an "opened" frame.
func (s *MuxSocket) OpenSession(paneID layout.PaneID, sandboxID string, rows, cols int) error {
	s.mu.Lock()
	s.sessions[paneID.String()] = sandboxID
	s.mu.Unlock()

	return s.send(muxFrame{
		Type:      "open",
		Session:   paneID.String(),
		SandboxID: sandboxID,
		Rows:      rows,
		Cols:      cols,
	})
}

// SendInput forwards keystrokes to a pane's session.
func (s *MuxSocket) SendInput(paneID layout.PaneID, data []byte) error {
	return s.send(muxFrame{Type: "input", Session: paneID.String(), Data: data})
}

// ResizeSession tells the server the pane's PTY dimensions changed.
func (s *MuxSocket) ResizeSession(paneID layout.PaneID, rows, cols int) error {
	return s.send(muxFrame{Type: "resize", Session: paneID.String(), Rows: rows, Cols: cols})
}

// CloseSession ends a pane's session. The socket stays open for the
// remaining panes.
func (s *MuxSocket) CloseSession(paneID layout.PaneID) error {
	s.mu.Lock()
	delete(s.sessions, paneID.String())
	s.mu.Unlock()

	return s.send(muxFrame{Type: "close", Session: paneID.String()})
}

// Close shuts the connection down. The read loop exits without reporting
// an error event.
func (s *MuxSocket) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return s.conn.Close()
}

func (s *MuxSocket) send(f muxFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("encoding frame: %w", err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		return fmt.Errorf("writing frame: %w", err)
	}
	return nil
}

// readLoop turns server frames into queue events. It runs until the
// connection drops.
func (s *MuxSocket) readLoop() {
	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.mu.Lock()
			closed := s.closed
			s.mu.Unlock()
			if !closed {
				s.events.Push(mux.Error{Message: fmt.Sprintf("mux connection lost: %v", err)})
			}
			return
		}

		var f muxFrame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		s.handleFrame(f)
	}
}

func (s *MuxSocket) handleFrame(f muxFrame) {
	switch f.Type {
	case "output":
		paneID, err := layout.ParsePaneID(f.Session)
		if err != nil {
			return
		}
		s.events.Push(mux.TerminalOutput{
			PaneID:    paneID,
			SandboxID: s.sandboxFor(f.Session),
			Data:      f.Data,
		})
	case "opened":
		s.events.Push(mux.SandboxConnectionChanged{
			SandboxID: s.sandboxFor(f.Session),
			Connected: true,
		})
	case "closed":
		sandboxID := s.sandboxFor(f.Session)
		s.mu.Lock()
		delete(s.sessions, f.Session)
		s.mu.Unlock()
		s.events.Push(mux.SandboxConnectionChanged{
			SandboxID: sandboxID,
			Connected: false,
		})
	case "error":
		s.events.Push(mux.Error{Message: f.Message})
	}
}

func (s *MuxSocket) sandboxFor(session string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[session]
}
