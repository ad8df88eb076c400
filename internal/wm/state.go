package wm

import (
	"errors"
	"fmt"
)

// Point is a position in container coordinates.
type Point struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// Size is the rendered size of a window.
type Size struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Rect is a measured rectangle (container geometry or a window frame).
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner of the rect.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Contains checks if a point is within the rect.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// Boundary is the rectangle a window origin may occupy.
type Boundary struct {
	Top    int
	Left   int
	Right  int
	Bottom int
}

// Clamp pulls p inside the boundary.
func (b Boundary) Clamp(p Point) Point {
	return Point{
		X: clamp(p.X, b.Left, b.Right),
		Y: clamp(p.Y, b.Top, b.Bottom),
	}
}

func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// WindowState is the lifecycle state of a window as seen by its controller.
type WindowState int

const (
	// StateFloating is an open, draggable window.
	StateFloating WindowState = iota
	// StateFullScreen is an open window covering the whole container.
	StateFullScreen
	// StateMinimized is a hidden window that keeps its record and layer.
	StateMinimized
	// StateUnmounted means the window has no record in the registry.
	StateUnmounted
)

// String returns a string representation of the window state.
func (s WindowState) String() string {
	switch s {
	case StateFloating:
		return "floating"
	case StateFullScreen:
		return "fullscreen"
	case StateMinimized:
		return "minimized"
	case StateUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// Record is the registry entry of one window.
type Record struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Open       bool   `yaml:"open"`
	FullScreen bool   `yaml:"fullscreen"`
	Layer      int    `yaml:"layer"`
	Position   Point  `yaml:"position"`
}

// State derives the window state from the record flags.
func (r Record) State() WindowState {
	switch {
	case !r.Open:
		return StateMinimized
	case r.FullScreen:
		return StateFullScreen
	default:
		return StateFloating
	}
}

// Patch lists the record fields a window controller may write.
// Nil fields are left untouched. Layers are owned by the LayerManager.
type Patch struct {
	Open       *bool
	FullScreen *bool
	Position   *Point
}

func (p Patch) apply(rec *Record) bool {
	changed := false
	if p.Open != nil && *p.Open != rec.Open {
		rec.Open = *p.Open
		changed = true
	}
	if p.FullScreen != nil && *p.FullScreen != rec.FullScreen {
		rec.FullScreen = *p.FullScreen
		changed = true
	}
	if p.Position != nil && *p.Position != rec.Position {
		rec.Position = *p.Position
		changed = true
	}
	return changed
}

// Bool returns a pointer to b, for Patch and Options literals.
func Bool(b bool) *bool {
	return &b
}

// At returns a pointer to the point (x, y), for Patch literals.
func At(x, y int) *Point {
	return &Point{X: x, Y: y}
}

// ErrWindowNotFound is returned when an id has no record in the registry.
var ErrWindowNotFound = errors.New("window not found")

// ErrDuplicateWindow is returned when an id is registered twice.
var ErrDuplicateWindow = errors.New("window already registered")

// ErrNameRequired is returned when a window is created without a name.
var ErrNameRequired = errors.New("window name is required")

// ErrNoManager is the panic value for window operations used outside a live manager.
var ErrNoManager = errors.New("window used outside of a window manager")

// ErrLayerInvariant is returned when layers are not exactly 1..N.
var ErrLayerInvariant = errors.New("layers are not dense")

func notFound(id string) error {
	return fmt.Errorf("%w: %q", ErrWindowNotFound, id)
}
