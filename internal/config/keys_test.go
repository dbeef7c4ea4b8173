package config

import (
	"testing"

	"github.com/jesseduffield/gocui"
)

func TestParseKey_SingleChar(t *testing.T) {
	tests := []struct {
		input    string
		wantRune rune
	}{
		{"q", 'q'},
		{"?", '?'},
		{"/", '/'},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if !key.IsRune() {
			t.Errorf("ParseKey(%q) expected rune, got special key", tt.input)
			continue
		}
		if key.Rune() != tt.wantRune {
			t.Errorf("ParseKey(%q) = %q, want %q", tt.input, key.Rune(), tt.wantRune)
		}
	}
}

func TestParseKey_UppercasePreserved(t *testing.T) {
	key, err := ParseKey("N")
	if err != nil {
		t.Fatalf("ParseKey(N) error = %v", err)
	}
	if !key.IsRune() {
		t.Fatal("ParseKey(N) expected rune, got special key")
	}
	if key.Rune() != 'N' {
		t.Errorf("ParseKey(N) = %q, want 'N'", key.Rune())
	}
}

func TestParseKey_SpecialKeys(t *testing.T) {
	tests := []struct {
		input   string
		wantKey gocui.Key
	}{
		{"enter", gocui.KeyEnter},
		{"space", gocui.KeySpace},
		{"esc", gocui.KeyEsc},
		{"escape", gocui.KeyEsc},
		{"tab", gocui.KeyTab},
		{"backspace", gocui.KeyBackspace2},
		{"up", gocui.KeyArrowUp},
		{"down", gocui.KeyArrowDown},
		{"left", gocui.KeyArrowLeft},
		{"right", gocui.KeyArrowRight},
		{"f1", gocui.KeyF1},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if key.IsRune() {
			t.Errorf("ParseKey(%q) expected special key, got rune", tt.input)
			continue
		}
		if key.GocuiKey() != tt.wantKey {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.input, key.GocuiKey(), tt.wantKey)
		}
	}
}

func TestParseKey_CtrlKeys(t *testing.T) {
	tests := []struct {
		input   string
		wantKey gocui.Key
	}{
		{"ctrl+c", gocui.KeyCtrlC},
		{"ctrl+s", gocui.KeyCtrlS},
		{"Ctrl+A", gocui.KeyCtrlA},
	}

	for _, tt := range tests {
		key, err := ParseKey(tt.input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", tt.input, err)
			continue
		}
		if key.IsRune() {
			t.Errorf("ParseKey(%q) expected ctrl key, got rune", tt.input)
			continue
		}
		if key.GocuiKey() != tt.wantKey {
			t.Errorf("ParseKey(%q) = %v, want %v", tt.input, key.GocuiKey(), tt.wantKey)
		}
	}
}

func TestParseKey_AltKeys(t *testing.T) {
	key, err := ParseKey("alt+h")
	if err != nil {
		t.Fatalf("ParseKey(alt+h) error = %v", err)
	}
	if !key.IsRune() || key.Rune() != 'h' {
		t.Errorf("ParseKey(alt+h) = %v, want rune 'h'", key.Value)
	}
	if key.Mod != gocui.ModAlt {
		t.Errorf("ParseKey(alt+h) Mod = %v, want ModAlt", key.Mod)
	}

	key, err = ParseKey("alt+left")
	if err != nil {
		t.Fatalf("ParseKey(alt+left) error = %v", err)
	}
	if key.GocuiKey() != gocui.KeyArrowLeft {
		t.Errorf("ParseKey(alt+left) = %v, want KeyArrowLeft", key.Value)
	}
	if key.Mod != gocui.ModAlt {
		t.Errorf("ParseKey(alt+left) Mod = %v, want ModAlt", key.Mod)
	}
}

func TestParseKey_Invalid(t *testing.T) {
	tests := []string{
		"",
		"ctrl+",
		"alt+",
		"invalid_key",
		"ab",
	}

	for _, input := range tests {
		_, err := ParseKey(input)
		if err == nil {
			t.Errorf("ParseKey(%q) expected error, got nil", input)
		}
	}
}

func TestKeyToString_RoundTrip(t *testing.T) {
	tests := []string{"q", "enter", "ctrl+b", "alt+h", "up"}

	for _, input := range tests {
		key, err := ParseKey(input)
		if err != nil {
			t.Errorf("ParseKey(%q) error = %v", input, err)
			continue
		}
		if got := KeyToString(key); got != input {
			t.Errorf("KeyToString(ParseKey(%q)) = %q", input, got)
		}
	}
}

func TestValidateKeys_NoDuplicates(t *testing.T) {
	keys := DefaultKeyBindings()
	if err := ValidateKeys(&keys); err != nil {
		t.Errorf("ValidateKeys() error = %v, want nil", err)
	}
}

func TestValidateKeys_WithDuplicates(t *testing.T) {
	keys := &KeyBindings{
		Quit:           "ctrl+q",
		CommandPalette: "ctrl+q", // duplicate
		Help:           "f1",
	}

	err := ValidateKeys(keys)
	if err == nil {
		t.Error("ValidateKeys() expected error for duplicate keys, got nil")
	}
}

func TestValidateKeys_InvalidKey(t *testing.T) {
	keys := &KeyBindings{
		Quit: "not-a-key",
	}

	err := ValidateKeys(keys)
	if err == nil {
		t.Error("ValidateKeys() expected error for invalid key, got nil")
	}
}
