package app

import "github.com/kmacinski/windesk/internal/wm"

// State holds the shared application state that is not window state.
// Window state lives in the wm registry.
type State struct {
	// Pointer
	DragID    string // window dragged with the mouse, empty if none
	LastMouse wm.Point

	// Notes opened with the new window key
	Notes int

	// Status
	Status    string
	StatusErr bool
	statusSeq int
}

// NewState creates a new state with defaults
func NewState() *State {
	return &State{}
}

// StartDrag remembers the window and the pointer cell a drag started from
func (s *State) StartDrag(id string, x, y int) {
	s.DragID = id
	s.LastMouse = wm.Point{X: x, Y: y}
}

// MoveMouse returns the delta since the last pointer cell
func (s *State) MoveMouse(x, y int) (int, int) {
	dx, dy := x-s.LastMouse.X, y-s.LastMouse.Y
	s.LastMouse = wm.Point{X: x, Y: y}
	return dx, dy
}

// StopDrag forgets the dragged window
func (s *State) StopDrag() {
	s.DragID = ""
}

// NextNote returns the number of the next note window
func (s *State) NextNote() int {
	s.Notes++
	return s.Notes
}

// SetStatus shows text in the taskbar and returns its sequence number
func (s *State) SetStatus(text string, isErr bool) int {
	s.statusSeq++
	s.Status = text
	s.StatusErr = isErr
	return s.statusSeq
}

// ExpireStatus clears the status if seq is still the latest one
func (s *State) ExpireStatus(seq int) {
	if seq != s.statusSeq {
		return
	}
	s.Status = ""
	s.StatusErr = false
}

// CycleWindow returns the id after current in ids, wrapping around
func CycleWindow(ids []string, current string, reverse bool) string {
	if len(ids) == 0 {
		return ""
	}
	currentIdx := 0
	for i, id := range ids {
		if id == current {
			currentIdx = i
			break
		}
	}
	if reverse {
		currentIdx = (currentIdx - 1 + len(ids)) % len(ids)
	} else {
		currentIdx = (currentIdx + 1) % len(ids)
	}
	return ids[currentIdx]
}
