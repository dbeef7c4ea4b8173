// Package ui provides shared rendering helpers for the sandmux TUI.
package ui

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/abdullathedruid/sandmux/internal/config"
	"github.com/abdullathedruid/sandmux/internal/sidebar"
)

// ANSI colors and styles for rendered text.
const (
	ColorReset   = "\033[0m"
	ColorBold    = "\033[1m"
	ColorDim     = "\033[2m"
	ColorReverse = "\033[7m"
	ColorRed     = "\033[31m"
	ColorGreen   = "\033[32m"
	ColorYellow  = "\033[33m"
	ColorBlue    = "\033[34m"
	ColorMagenta = "\033[35m"
	ColorCyan    = "\033[36m"
	ColorWhite   = "\033[37m"
)

// ColorCode maps a config color name to its ANSI escape. Unknown names
// render uncolored.
func ColorCode(name string) string {
	switch strings.ToLower(name) {
	case "red":
		return ColorRed
	case "green":
		return ColorGreen
	case "yellow":
		return ColorYellow
	case "blue":
		return ColorBlue
	case "magenta":
		return ColorMagenta
	case "cyan":
		return ColorCyan
	case "white":
		return ColorWhite
	default:
		return ""
	}
}

// SandboxLine renders one sidebar entry: selection marker, status icon,
// and name truncated to width.
func SandboxLine(sb sidebar.Sandbox, style config.StatusStyle, selected bool, width int) string {
	icon := style.Icon
	if icon == "" {
		icon = "○"
	}

	marker := "  "
	if selected {
		marker = "> "
	}

	name := sb.Name
	if name == "" {
		name = sb.ID
	}

	line := Truncate(marker+icon+" "+name, width)

	if selected {
		return ColorBold + line + ColorReset
	}
	if color := ColorCode(style.Color); color != "" {
		return color + line + ColorReset
	}
	return line
}

// TabBarLine renders the tab strip: each tab as " N:Name " with the
// active one highlighted.
func TabBarLine(names []string, active int, width int) string {
	var b strings.Builder
	for i, name := range names {
		entry := fmt.Sprintf(" %d:%s ", i+1, name)
		if i == active {
			b.WriteString(ColorReverse + entry + ColorReset)
		} else {
			b.WriteString(entry)
		}
	}
	return b.String()
}

// StatusBarLine renders the bottom bar: transient message on the left,
// focus, pane count and build version on the right.
func StatusBarLine(message, focus string, paneCount int, version string, width int) string {
	left := " " + message
	right := fmt.Sprintf(" [%s] %d panes | sandmux %s ", focus, paneCount, version)

	padding := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if padding < 0 {
		return Truncate(left, width)
	}
	return left + strings.Repeat(" ", padding) + right
}

// Truncate shortens a string to fit in the given width.
func Truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	if width <= 3 {
		return runewidth.Truncate(s, width, "")
	}
	return runewidth.Truncate(s, width, "...")
}

// PadRight pads a string to the right.
func PadRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return s + strings.Repeat(" ", width-sw)
}

// PadLeft pads a string to the left.
func PadLeft(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", width-sw) + s
}

// Center centers a string in the given width.
func Center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	padding := (width - sw) / 2
	return strings.Repeat(" ", padding) + s + strings.Repeat(" ", width-sw-padding)
}

// WrapText wraps text to fit within the given width.
func WrapText(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if runewidth.StringWidth(line) <= width {
			lines = append(lines, line)
			continue
		}

		// Wrap long lines
		for runewidth.StringWidth(line) > width {
			// Find a break point that fits within width
			breakIdx := 0
			currentWidth := 0
			lastSpace := -1
			for i, r := range line {
				rw := runewidth.RuneWidth(r)
				if currentWidth+rw > width {
					break
				}
				currentWidth += rw
				breakIdx = i + len(string(r))
				if r == ' ' {
					lastSpace = breakIdx
				}
			}
			if lastSpace > 0 {
				breakIdx = lastSpace
			}
			lines = append(lines, line[:breakIdx])
			line = strings.TrimSpace(line[breakIdx:])
		}
		if line != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// HelpText returns the help overlay content.
func HelpText(keys config.KeyBindings) string {
	return fmt.Sprintf(`sandmux - Sandbox Multiplexer

Navigation
  %s/%s/%s/%s    Move focus between panes
  %s    Cycle to next pane
  %s    Toggle sidebar focus
  j/k, arrows    Move selection (sidebar)
  Enter    Select sandbox (sidebar)

Panes
  %s    Split horizontally
  %s    Split vertically
  %s    Close pane
  %s    Zoom pane
  alt+h/j/k/l    Resize pane

Tabs
  %s    New tab
  %s / %s    Next / previous tab

Sandboxes
  %s    Refresh sandbox list

Other
  %s    Command palette
  %s    This help
  %s    Quit sandmux

Press any key to close this help...`,
		keys.NavLeft, keys.NavDown, keys.NavUp, keys.NavRight,
		keys.NextPane,
		keys.ToggleSidebar,
		keys.SplitHorizontal,
		keys.SplitVertical,
		keys.ClosePane,
		keys.ZoomPane,
		keys.NewTab,
		keys.NextTab, keys.PrevTab,
		keys.Refresh,
		keys.CommandPalette,
		keys.Help,
		keys.Quit,
	)
}
