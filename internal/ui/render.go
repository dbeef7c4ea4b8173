package ui

import (
	"fmt"

	"github.com/jesseduffield/gocui"

	"github.com/abdullathedruid/sandmux/internal/layout"
)

// ConfigurePaneView sets up a gocui view for a layout pane. The active
// pane gets a heavy colored frame so focus is visible at a glance.
func ConfigurePaneView(v *gocui.View, p *layout.Pane, isActive, zoomed bool, frameColor gocui.Attribute) {
	title := fmt.Sprintf(" %s ", p.Title())
	if zoomed {
		title = fmt.Sprintf(" %s [zoom] ", p.Title())
	}
	v.Title = title

	if isActive {
		v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
		v.FrameColor = frameColor
	} else {
		v.FrameRunes = []rune{'─', '│', '┌', '┐', '└', '┘'}
		v.FrameColor = gocui.ColorDefault
	}
	v.Frame = true
	v.Wrap = false
}

// ConfigureInputModal sets up a single-line text input modal.
func ConfigureInputModal(v *gocui.View, title, buffer string) {
	v.Title = fmt.Sprintf(" %s (Enter=confirm, Esc=cancel) ", title)
	v.Frame = true
	v.FrameRunes = []rune{'━', '┃', '┏', '┓', '┗', '┛'}
	v.FrameColor = gocui.ColorYellow
	v.Editable = true
	v.Clear()
	fmt.Fprintf(v, " %s", buffer)
}

// ModalDimensions calculates centered modal dimensions.
func ModalDimensions(maxX, maxY, width, height int) (x0, y0, x1, y1 int) {
	x0 = (maxX - width) / 2
	y0 = (maxY - height) / 2
	x1 = x0 + width
	y1 = y0 + height
	return
}
