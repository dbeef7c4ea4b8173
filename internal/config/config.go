// Package config handles application configuration.
package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration.
type Config struct {
	// DataDir is the directory for persistent data (config, logs)
	DataDir string `yaml:"-"`

	// BaseURL is the address of the sandbox service
	BaseURL string `yaml:"base_url"`

	// RefreshInterval is how often to refresh the sandbox list (in seconds)
	RefreshInterval int `yaml:"refresh_interval"`

	// SidebarWidth is the width of the sandbox sidebar in columns
	SidebarWidth int `yaml:"sidebar_width"`

	// Keys contains keybinding configuration
	Keys KeyBindings `yaml:"keys"`

	// Theme contains theme/appearance configuration
	Theme Theme `yaml:"theme"`
}

// KeyBindings holds all configurable keybindings. Every binding is a
// chord so plain keystrokes pass through to the focused terminal.
type KeyBindings struct {
	Quit            string `yaml:"quit"`
	CommandPalette  string `yaml:"command_palette"`
	Help            string `yaml:"help"`
	ToggleSidebar   string `yaml:"toggle_sidebar"`
	NavLeft         string `yaml:"nav_left"`
	NavDown         string `yaml:"nav_down"`
	NavUp           string `yaml:"nav_up"`
	NavRight        string `yaml:"nav_right"`
	SplitHorizontal string `yaml:"split_horizontal"`
	SplitVertical   string `yaml:"split_vertical"`
	ClosePane       string `yaml:"close_pane"`
	ZoomPane        string `yaml:"zoom_pane"`
	NextPane        string `yaml:"next_pane"`
	NewTab          string `yaml:"new_tab"`
	NextTab         string `yaml:"next_tab"`
	PrevTab         string `yaml:"prev_tab"`
	Refresh         string `yaml:"refresh"`
	ResizeLeft      string `yaml:"resize_left"`
	ResizeDown      string `yaml:"resize_down"`
	ResizeUp        string `yaml:"resize_up"`
	ResizeRight     string `yaml:"resize_right"`
}

// Theme holds theme configuration.
type Theme struct {
	Colors ThemeColors            `yaml:"colors"`
	Status map[string]StatusStyle `yaml:"status"`
}

// ThemeColors holds color configuration.
type ThemeColors struct {
	SelectionBg string `yaml:"selection_bg"`
	SelectionFg string `yaml:"selection_fg"`
	StatusBarBg string `yaml:"statusbar_bg"`
	StatusBarFg string `yaml:"statusbar_fg"`
	ActiveFrame string `yaml:"active_frame"`
}

// StatusStyle holds style configuration for a sandbox status.
type StatusStyle struct {
	Icon  string `yaml:"icon"`
	Color string `yaml:"color"`
	Label string `yaml:"label"`
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		DataDir:         defaultDataDir(),
		BaseURL:         "http://127.0.0.1:7777",
		RefreshInterval: 5,
		SidebarWidth:    30,
		Keys:            DefaultKeyBindings(),
		Theme:           DefaultTheme(),
	}
}

// DefaultKeyBindings returns the default keybindings.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{
		Quit:            "ctrl+q",
		CommandPalette:  "ctrl+p",
		Help:            "f1",
		ToggleSidebar:   "ctrl+b",
		NavLeft:         "ctrl+h",
		NavDown:         "ctrl+j",
		NavUp:           "ctrl+k",
		NavRight:        "ctrl+l",
		SplitHorizontal: "ctrl+s",
		SplitVertical:   "ctrl+e",
		ClosePane:       "ctrl+x",
		ZoomPane:        "ctrl+z",
		NextPane:        "ctrl+o",
		NewTab:          "ctrl+t",
		NextTab:         "ctrl+n",
		PrevTab:         "ctrl+w",
		Refresh:         "ctrl+r",
		ResizeLeft:      "alt+h",
		ResizeDown:      "alt+j",
		ResizeUp:        "alt+k",
		ResizeRight:     "alt+l",
	}
}

// DefaultTheme returns the default theme configuration.
func DefaultTheme() Theme {
	return Theme{
		Colors: ThemeColors{
			SelectionBg: "blue",
			SelectionFg: "white",
			StatusBarBg: "blue",
			StatusBarFg: "white",
			ActiveFrame: "green",
		},
		Status: map[string]StatusStyle{
			"running": {
				Icon:  "●", // ●
				Color: "green",
				Label: "RUNNING",
			},
			"starting": {
				Icon:  "◐", // ◐
				Color: "yellow",
				Label: "STARTING",
			},
			"stopped": {
				Icon:  "○", // ○
				Color: "white",
				Label: "STOPPED",
			},
			"error": {
				Icon:  "✗", // ✗
				Color: "red",
				Label: "ERROR",
			},
		},
	}
}

// Load loads configuration from the config file, falling back to defaults.
func Load() (*Config, error) {
	cfg := Default()
	return loadFrom(cfg, cfg.ConfigFile())
}

// loadFrom merges the file at configPath over cfg.
func loadFrom(cfg *Config, configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file doesn't exist, use defaults
			return cfg, nil
		}
		return nil, err
	}

	// Parse YAML into a temporary struct to merge with defaults
	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, err
	}

	// Merge file config with defaults (file values override defaults)
	mergeConfig(cfg, &fileCfg)

	// Validate keybindings
	if err := ValidateKeys(&cfg.Keys); err != nil {
		return nil, err
	}

	return cfg, nil
}

// mergeConfig merges file configuration into the default configuration.
// Only non-zero values from file are applied.
func mergeConfig(dst, src *Config) {
	if src.BaseURL != "" {
		dst.BaseURL = src.BaseURL
	}
	if src.RefreshInterval != 0 {
		dst.RefreshInterval = src.RefreshInterval
	}
	if src.SidebarWidth != 0 {
		dst.SidebarWidth = src.SidebarWidth
	}

	// Merge keybindings
	mergeKeyBindings(&dst.Keys, &src.Keys)

	// Merge theme
	mergeTheme(&dst.Theme, &src.Theme)
}

// mergeKeyBindings merges keybindings from src into dst.
func mergeKeyBindings(dst, src *KeyBindings) {
	if src.Quit != "" {
		dst.Quit = src.Quit
	}
	if src.CommandPalette != "" {
		dst.CommandPalette = src.CommandPalette
	}
	if src.Help != "" {
		dst.Help = src.Help
	}
	if src.ToggleSidebar != "" {
		dst.ToggleSidebar = src.ToggleSidebar
	}
	if src.NavLeft != "" {
		dst.NavLeft = src.NavLeft
	}
	if src.NavDown != "" {
		dst.NavDown = src.NavDown
	}
	if src.NavUp != "" {
		dst.NavUp = src.NavUp
	}
	if src.NavRight != "" {
		dst.NavRight = src.NavRight
	}
	if src.SplitHorizontal != "" {
		dst.SplitHorizontal = src.SplitHorizontal
	}
	if src.SplitVertical != "" {
		dst.SplitVertical = src.SplitVertical
	}
	if src.ClosePane != "" {
		dst.ClosePane = src.ClosePane
	}
	if src.ZoomPane != "" {
		dst.ZoomPane = src.ZoomPane
	}
	if src.NextPane != "" {
		dst.NextPane = src.NextPane
	}
	if src.NewTab != "" {
		dst.NewTab = src.NewTab
	}
	if src.NextTab != "" {
		dst.NextTab = src.NextTab
	}
	if src.PrevTab != "" {
		dst.PrevTab = src.PrevTab
	}
	if src.Refresh != "" {
		dst.Refresh = src.Refresh
	}
	if src.ResizeLeft != "" {
		dst.ResizeLeft = src.ResizeLeft
	}
	if src.ResizeDown != "" {
		dst.ResizeDown = src.ResizeDown
	}
	if src.ResizeUp != "" {
		dst.ResizeUp = src.ResizeUp
	}
	if src.ResizeRight != "" {
		dst.ResizeRight = src.ResizeRight
	}
}

// mergeTheme merges theme configuration from src into dst.
func mergeTheme(dst, src *Theme) {
	// Merge colors
	if src.Colors.SelectionBg != "" {
		dst.Colors.SelectionBg = src.Colors.SelectionBg
	}
	if src.Colors.SelectionFg != "" {
		dst.Colors.SelectionFg = src.Colors.SelectionFg
	}
	if src.Colors.StatusBarBg != "" {
		dst.Colors.StatusBarBg = src.Colors.StatusBarBg
	}
	if src.Colors.StatusBarFg != "" {
		dst.Colors.StatusBarFg = src.Colors.StatusBarFg
	}
	if src.Colors.ActiveFrame != "" {
		dst.Colors.ActiveFrame = src.Colors.ActiveFrame
	}

	// Merge status styles
	if src.Status != nil {
		for key, style := range src.Status {
			if existing, ok := dst.Status[key]; ok {
				// Merge individual fields
				if style.Icon != "" {
					existing.Icon = style.Icon
				}
				if style.Color != "" {
					existing.Color = style.Color
				}
				if style.Label != "" {
					existing.Label = style.Label
				}
				dst.Status[key] = existing
			} else {
				// New status type, add it
				dst.Status[key] = style
			}
		}
	}
}

// defaultDataDir returns the default data directory.
func defaultDataDir() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "sandmux")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sandmux"
	}
	return filepath.Join(home, ".config", "sandmux")
}

// ConfigFile returns the path to the config file.
func (c *Config) ConfigFile() string {
	return filepath.Join(c.DataDir, "config.yaml")
}

// EnsureDataDir creates the data directory if it doesn't exist.
func (c *Config) EnsureDataDir() error {
	return os.MkdirAll(c.DataDir, 0755)
}
