package mux

// PaletteItem is one display row in the palette list: either a category
// header or a command annotated with whether it is selected.
type PaletteItem struct {
	// Header is non-empty for header rows.
	Header string

	Command     MuxCommand
	Highlighted bool
}

// CommandPalette is a live filter over the static command catalog. The
// query is a plain string; cursor and highlighting belong to the render
// layer.
type CommandPalette struct {
	Visible       bool
	Query         string
	SelectedIndex int

	filtered []MuxCommand
}

// NewCommandPalette creates a closed palette with the full catalog
// filtered in.
func NewCommandPalette() *CommandPalette {
	p := &CommandPalette{}
	p.UpdateFiltered()
	return p
}

// Open shows the palette with a fresh query and selection.
func (p *CommandPalette) Open() {
	p.Visible = true
	p.Query = ""
	p.SelectedIndex = 0
	p.UpdateFiltered()
}

// Close hides the palette.
func (p *CommandPalette) Close() {
	p.Visible = false
}

// SetQuery replaces the query and refilters when it changed.
func (p *CommandPalette) SetQuery(q string) {
	if q == p.Query {
		return
	}
	p.Query = q
	p.UpdateFiltered()
	p.SelectedIndex = 0
}

// AppendQuery adds typed runes to the query.
func (p *CommandPalette) AppendQuery(r rune) {
	p.SetQuery(p.Query + string(r))
}

// BackspaceQuery removes the last byte sequence of the query.
func (p *CommandPalette) BackspaceQuery() {
	if p.Query == "" {
		return
	}
	runes := []rune(p.Query)
	p.SetQuery(string(runes[:len(runes)-1]))
}

// UpdateFiltered refilters the catalog against the current query,
// preserving catalog order. The selection resets to 0 when it falls
// outside the new list.
func (p *CommandPalette) UpdateFiltered() {
	p.filtered = p.filtered[:0]
	for _, cmd := range AllCommands() {
		if cmd.Matches(p.Query) {
			p.filtered = append(p.filtered, cmd)
		}
	}
	if p.SelectedIndex >= len(p.filtered) {
		p.SelectedIndex = 0
	}
}

// SelectUp moves the selection up, wrapping at the top.
func (p *CommandPalette) SelectUp() {
	if len(p.filtered) == 0 {
		return
	}
	if p.SelectedIndex == 0 {
		p.SelectedIndex = len(p.filtered) - 1
	} else {
		p.SelectedIndex--
	}
}

// SelectDown moves the selection down, wrapping at the bottom.
func (p *CommandPalette) SelectDown() {
	if len(p.filtered) == 0 {
		return
	}
	p.SelectedIndex = (p.SelectedIndex + 1) % len(p.filtered)
}

// SelectedCommand returns the selected command, if any.
func (p *CommandPalette) SelectedCommand() (MuxCommand, bool) {
	if p.SelectedIndex < 0 || p.SelectedIndex >= len(p.filtered) {
		return 0, false
	}
	return p.filtered[p.SelectedIndex], true
}

// ExecuteSelection returns the selected command and closes the palette
// unconditionally.
func (p *CommandPalette) ExecuteSelection() (MuxCommand, bool) {
	cmd, ok := p.SelectedCommand()
	p.Close()
	return cmd, ok
}

// FilteredCount returns the size of the filtered list.
func (p *CommandPalette) FilteredCount() int {
	return len(p.filtered)
}

// Filtered returns the filtered commands in catalog order.
func (p *CommandPalette) Filtered() []MuxCommand {
	return p.filtered
}

// Items returns the filtered list grouped for display: a header row is
// emitted whenever the category changes, followed by its commands.
func (p *CommandPalette) Items() []PaletteItem {
	var items []PaletteItem
	current := ""
	for i, cmd := range p.filtered {
		if cat := cmd.Category(); cat != current {
			items = append(items, PaletteItem{Header: cat})
			current = cat
		}
		items = append(items, PaletteItem{
			Command:     cmd,
			Highlighted: i == p.SelectedIndex,
		})
	}
	return items
}
