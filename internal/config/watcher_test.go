package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcher_ReloadOnWrite(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()

	w, err := NewWatcher(cfg)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	reloaded := make(chan *Config, 1)
	w.OnReload(func(c *Config) {
		select {
		case reloaded <- c:
		default:
		}
	})
	w.Start()

	content := []byte("sidebar_width: 55\n")
	if err := os.WriteFile(cfg.ConfigFile(), content, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.SidebarWidth != 55 {
			t.Errorf("reloaded SidebarWidth = %d, want 55", c.SidebarWidth)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for reload")
	}
}

func TestWatcher_InvalidConfigIgnored(t *testing.T) {
	cfg := Default()
	cfg.DataDir = t.TempDir()

	w, err := NewWatcher(cfg)
	if err != nil {
		t.Fatalf("NewWatcher() error = %v", err)
	}
	defer w.Stop()

	reloads := make(chan struct{}, 4)
	w.OnReload(func(*Config) { reloads <- struct{}{} })
	w.Start()

	bad := []byte("keys:\n  quit: \"not-a-key\"\n")
	if err := os.WriteFile(cfg.ConfigFile(), bad, 0644); err != nil {
		t.Fatal(err)
	}

	select {
	case <-reloads:
		t.Error("invalid config should not trigger a reload callback")
	case <-time.After(300 * time.Millisecond):
	}
}
