package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/abdullathedruid/sandmux/internal/layout"
	"github.com/abdullathedruid/sandmux/internal/mux"
)

// muxTestServer upgrades the connection and hands it to fn.
func muxTestServer(t *testing.T, fn func(conn *websocket.Conn)) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mux" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		fn(conn)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func waitEvents(t *testing.T, q *mux.EventQueue, n int) []mux.MuxEvent {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	var got []mux.MuxEvent
	for time.Now().Before(deadline) {
		got = append(got, q.Drain()...)
		if len(got) >= n {
			return got
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d events, got %d", n, len(got))
	return nil
}

func TestMuxSocket_OutputBecomesEvent(t *testing.T) {
	paneID := layout.NewPaneID()
	srv := muxTestServer(t, func(conn *websocket.Conn) {
		defer conn.Close()

		// Wait for the open frame, then echo output for that session.
		var f muxFrame
		if err := conn.ReadJSON(&f); err != nil {
			t.Errorf("reading open frame: %v", err)
			return
		}
		if f.Type != "open" || f.SandboxID != "sb-1" || f.Rows != 24 || f.Cols != 80 {
			t.Errorf("unexpected open frame: %+v", f)
		}

		conn.WriteJSON(muxFrame{Type: "opened", Session: f.Session})
		conn.WriteJSON(muxFrame{Type: "output", Session: f.Session, Data: []byte("hello")})
	})

	events := mux.NewEventQueue()
	sock, err := DialMux(context.Background(), srv.URL, events)
	if err != nil {
		t.Fatalf("DialMux: %v", err)
	}
	defer sock.Close()

	if err := sock.OpenSession(paneID, "sb-1", 24, 80); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	got := waitEvents(t, events, 2)

	conn, ok := got[0].(mux.SandboxConnectionChanged)
	if !ok || !conn.Connected || conn.SandboxID != "sb-1" {
		t.Errorf("unexpected first event: %#v", got[0])
	}
	out, ok := got[1].(mux.TerminalOutput)
	if !ok {
		t.Fatalf("unexpected second event: %#v", got[1])
	}
	if out.PaneID != paneID || out.SandboxID != "sb-1" || !bytes.Equal(out.Data, []byte("hello")) {
		t.Errorf("unexpected output event: %#v", out)
	}
}

func TestMuxSocket_ServerCloseReportsDisconnect(t *testing.T) {
	paneID := layout.NewPaneID()
	srv := muxTestServer(t, func(conn *websocket.Conn) {
		defer conn.Close()

		var f muxFrame
		if err := conn.ReadJSON(&f); err != nil {
			return
		}
		conn.WriteJSON(muxFrame{Type: "closed", Session: f.Session})
	})

	events := mux.NewEventQueue()
	sock, err := DialMux(context.Background(), srv.URL, events)
	if err != nil {
		t.Fatalf("DialMux: %v", err)
	}
	defer sock.Close()

	if err := sock.OpenSession(paneID, "sb-2", 24, 80); err != nil {
		t.Fatalf("OpenSession: %v", err)
	}

	got := waitEvents(t, events, 1)
	conn, ok := got[0].(mux.SandboxConnectionChanged)
	if !ok || conn.Connected || conn.SandboxID != "sb-2" {
		t.Errorf("unexpected event: %#v", got[0])
	}
}

func TestMuxSocket_ErrorFrame(t *testing.T) {
	srv := muxTestServer(t, func(conn *websocket.Conn) {
		defer conn.Close()
		conn.WriteJSON(muxFrame{Type: "error", Message: "pty spawn failed"})
	})

	events := mux.NewEventQueue()
	sock, err := DialMux(context.Background(), srv.URL, events)
	if err != nil {
		t.Fatalf("DialMux: %v", err)
	}
	defer sock.Close()

	got := waitEvents(t, events, 1)
	ev, ok := got[0].(mux.Error)
	if !ok || ev.Message != "pty spawn failed" {
		t.Errorf("unexpected event: %#v", got[0])
	}
}

func TestMuxSocket_CloseIsQuiet(t *testing.T) {
	block := make(chan struct{})
	srv := muxTestServer(t, func(conn *websocket.Conn) {
		<-block
		conn.Close()
	})
	defer close(block)

	events := mux.NewEventQueue()
	sock, err := DialMux(context.Background(), srv.URL, events)
	if err != nil {
		t.Fatalf("DialMux: %v", err)
	}
	sock.Close()

	time.Sleep(50 * time.Millisecond)
	for _, ev := range events.Drain() {
		if _, isErr := ev.(mux.Error); isErr {
			t.Errorf("client-initiated close should not report an error event, got %#v", ev)
		}
	}
}

func TestMuxFrameInputRoundTrip(t *testing.T) {
	f := muxFrame{Type: "input", Session: "s", Data: []byte{0x1b, '[', 'A'}}
	data, err := json.Marshal(f)
	if err != nil {
		t.Fatal(err)
	}
	var back muxFrame
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(back.Data, f.Data) {
		t.Errorf("data corrupted in transit: %v != %v", back.Data, f.Data)
	}
}
