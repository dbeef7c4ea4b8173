// Package sidebar holds the sandbox list shown beside the main area.
package sidebar

import "time"

// Sandbox is a summary of a remote sandbox as reported by the backend.
type Sandbox struct {
	ID        string
	Name      string
	Status    string
	CreatedAt time.Time
}

// Sidebar is the sandbox list plus its selection cursor. It is plain view
// state owned by the UI goroutine; the backend updates it only through
// events folded by the application state machine.
type Sidebar struct {
	Visible   bool
	Sandboxes []Sandbox
	Selected  int

	// Err is the last refresh error, cleared on a successful refresh.
	Err string
}

// New creates a visible, empty sidebar.
func New() *Sidebar {
	return &Sidebar{Visible: true}
}

// SetSandboxes replaces the list and clears any previous error. The
// selection is clamped into the new list.
func (s *Sidebar) SetSandboxes(sandboxes []Sandbox) {
	s.Sandboxes = sandboxes
	s.Err = ""
	if s.Selected >= len(s.Sandboxes) {
		s.Selected = 0
	}
}

// SetError records a refresh failure.
func (s *Sidebar) SetError(msg string) {
	s.Err = msg
}

// SelectPrevious moves the selection up, stopping at the top.
func (s *Sidebar) SelectPrevious() {
	if s.Selected > 0 {
		s.Selected--
	}
}

// SelectNext moves the selection down, stopping at the bottom.
func (s *Sidebar) SelectNext() {
	if s.Selected < len(s.Sandboxes)-1 {
		s.Selected++
	}
}

// SelectedSandbox returns the selected sandbox, if any.
func (s *Sidebar) SelectedSandbox() (Sandbox, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Sandboxes) {
		return Sandbox{}, false
	}
	return s.Sandboxes[s.Selected], true
}

// Count returns the number of listed sandboxes.
func (s *Sidebar) Count() int {
	return len(s.Sandboxes)
}
