package wm

import (
	"fmt"

	"github.com/google/uuid"
)

// DefaultSize is the window size assumed before the first measurement.
var DefaultSize = Size{Width: 400, Height: 300}

// DefaultPosition is where a window opens when no position is given.
var DefaultPosition = Point{X: 200, Y: 200}

// Options configures a window controller.
type Options struct {
	// Name is the title of the window. Required.
	Name string
	// DefaultOpen defaults to true.
	DefaultOpen *bool
	// DefaultFullScreen defaults to false; a Container picks fullscreen for
	// compact containers when it is nil.
	DefaultFullScreen *bool
	// DefaultPosition defaults to DefaultPosition.
	DefaultPosition *Point
	// CustomID replaces the generated id.
	CustomID string
	// OnClose is called with the window id when the window is closed.
	// Windows without it have no close affordance.
	OnClose func(id string)
	// Size is the initial measured size, if already known.
	Size *Size
	// FallbackSize is used for constraints until the window is measured.
	FallbackSize *Size
}

type dragSession struct {
	start Point
	point Point
}

// Controller drives one window. The registry holds the authoritative
// open/fullscreen/layer/position state; the controller only keeps the
// transient drag session, the measured size, and the floating position to
// come back to after fullscreen or minimize.
type Controller struct {
	id      string
	name    string
	mgr     *Manager
	bounds  *BoundaryTracker
	onClose func(string)

	initial  Record
	size     Size
	measured bool
	fallback Size

	lastFloating Point
	restore      *Rect
	drag         *dragSession

	mounted   bool
	onUnmount func(id string)
}

// NewController creates a controller bound to mgr. bounds may be nil, in
// which case drags are never clamped. The window is registered by Mount.
func NewController(mgr *Manager, bounds *BoundaryTracker, opts Options) (*Controller, error) {
	mgr.mustBeLive()
	if opts.Name == "" {
		return nil, ErrNameRequired
	}

	id := opts.CustomID
	if id == "" {
		id = uuid.New().String()
	}

	pos := DefaultPosition
	if opts.DefaultPosition != nil {
		pos = *opts.DefaultPosition
	}
	open := true
	if opts.DefaultOpen != nil {
		open = *opts.DefaultOpen
	}
	fullScreen := opts.DefaultFullScreen != nil && *opts.DefaultFullScreen

	c := &Controller{
		id:           id,
		name:         opts.Name,
		mgr:          mgr,
		bounds:       bounds,
		onClose:      opts.OnClose,
		fallback:     DefaultSize,
		lastFloating: pos,
		initial: Record{
			ID:         id,
			Name:       opts.Name,
			Open:       open,
			FullScreen: fullScreen,
			Position:   pos,
		},
	}
	if opts.FallbackSize != nil {
		c.fallback = *opts.FallbackSize
	}
	if opts.Size != nil {
		c.Measure(*opts.Size)
	}
	if fullScreen {
		c.initial.Position = c.fullScreenOrigin()
	}
	return c, nil
}

// ID returns the window id.
func (c *Controller) ID() string {
	return c.id
}

// Name returns the window title.
func (c *Controller) Name() string {
	return c.name
}

// Closable reports whether the window has a close affordance.
func (c *Controller) Closable() bool {
	return c.onClose != nil
}

// Mounted reports whether the window currently has a registry record.
func (c *Controller) Mounted() bool {
	return c.mounted
}

// Mount registers the window on top of the existing ones.
func (c *Controller) Mount() error {
	c.mgr.mustBeLive()
	if c.mounted {
		return nil
	}
	// checked here too: during a render pass Register only queues
	if c.mgr.reg.Has(c.id) {
		return fmt.Errorf("%w: %q", ErrDuplicateWindow, c.id)
	}
	if err := c.mgr.Register(c.initial); err != nil {
		return err
	}
	c.mounted = true
	return nil
}

// Unmount removes the window record and compacts the layers. Calling it on
// an unmounted window does nothing.
func (c *Controller) Unmount() error {
	c.mgr.mustBeLive()
	if !c.mounted {
		return nil
	}
	c.drag = nil
	c.mounted = false
	if err := c.mgr.Remove(c.id); err != nil {
		return err
	}
	if c.onUnmount != nil {
		c.onUnmount(c.id)
	}
	return nil
}

// Close runs the close callback and unmounts the window. Closing an
// unmounted window does nothing.
func (c *Controller) Close() error {
	c.mgr.mustBeLive()
	if !c.mounted {
		return nil
	}
	if c.onClose != nil {
		c.onClose(c.id)
	}
	return c.Unmount()
}

// Record returns the registry record of the window.
func (c *Controller) Record() (Record, bool) {
	return c.mgr.Get(c.id)
}

// State returns the lifecycle state of the window.
func (c *Controller) State() WindowState {
	rec, ok := c.Record()
	if !ok {
		return StateUnmounted
	}
	return rec.State()
}

// Measure records the rendered size of the window.
func (c *Controller) Measure(s Size) {
	c.size = s
	c.measured = true
}

// Size returns the measured size, or the fallback size before measurement.
func (c *Controller) Size() Size {
	if c.measured {
		return c.size
	}
	return c.fallback
}

// Constraints returns the rectangle the window origin may occupy. It
// reports false while the container has not been measured.
func (c *Controller) Constraints() (Boundary, bool) {
	b, ok := c.bounds.Boundary()
	if !ok {
		return Boundary{}, false
	}
	return Constraint(b, c.Size()), true
}

// Frame returns the on-screen rectangle of the window.
func (c *Controller) Frame() Rect {
	rec, _ := c.Record()
	if rec.FullScreen {
		if b, ok := c.bounds.Boundary(); ok {
			return Rect{X: b.Left, Y: b.Top, Width: b.Right - b.Left, Height: b.Bottom - b.Top}
		}
	}
	s := c.Size()
	return Rect{X: rec.Position.X, Y: rec.Position.Y, Width: s.Width, Height: s.Height}
}

// Focus raises the window to the top layer.
func (c *Controller) Focus() error {
	c.mgr.mustBeLive()
	return c.mgr.Focus(c.id)
}

// PointerDown handles a press anywhere on the window: it always raises the
// window, and starts a drag session when the press is on the title bar of
// a non-fullscreen window.
func (c *Controller) PointerDown(onTitleBar bool) error {
	c.mgr.mustBeLive()
	if err := c.mgr.Focus(c.id); err != nil {
		return err
	}
	if !onTitleBar {
		return nil
	}
	rec, ok := c.mgr.Get(c.id)
	if !ok || rec.FullScreen || !rec.Open {
		return nil
	}
	c.drag = &dragSession{start: rec.Position, point: rec.Position}
	return nil
}

// Dragging reports whether a drag session is active.
func (c *Controller) Dragging() bool {
	return c.drag != nil
}

// DragPoint returns the unclamped point of the current drag session, or the
// record position when no session is active.
func (c *Controller) DragPoint() Point {
	if c.drag != nil {
		return c.drag.point
	}
	rec, _ := c.Record()
	return rec.Position
}

// DragMove applies a raw pointer delta. The position is published unclamped.
func (c *Controller) DragMove(dx, dy int) error {
	c.mgr.mustBeLive()
	if c.drag == nil {
		return nil
	}
	c.drag.point.X += dx
	c.drag.point.Y += dy
	p := c.drag.point
	return c.mgr.Update(c.id, Patch{Position: &p})
}

// DragEnd finishes the drag session at p, clamped into the constraint
// rectangle. Without an active session it does nothing.
func (c *Controller) DragEnd(p Point) error {
	c.mgr.mustBeLive()
	if c.drag == nil {
		return nil
	}
	c.drag = nil
	p = c.clamp(p)
	c.lastFloating = p
	return c.mgr.Update(c.id, Patch{Position: &p})
}

// CancelDrag abandons the drag session and returns to where it started.
func (c *Controller) CancelDrag() error {
	c.mgr.mustBeLive()
	if c.drag == nil {
		return nil
	}
	start := c.drag.start
	c.drag = nil
	return c.mgr.Update(c.id, Patch{Position: &start})
}

// Minimize hides the window, keeping its record and layer. The on-screen
// rectangle is kept for Restore.
func (c *Controller) Minimize() error {
	c.mgr.mustBeLive()
	rec, ok := c.mgr.Get(c.id)
	if !ok {
		return notFound(c.id)
	}
	if !rec.Open {
		return nil
	}
	if c.drag != nil {
		c.settleDrag()
		rec, _ = c.mgr.Get(c.id)
	}
	frame := c.Frame()
	c.restore = &frame
	if !rec.FullScreen {
		c.lastFloating = rec.Position
	}
	return c.mgr.Update(c.id, Patch{Open: Bool(false)})
}

// Restore shows a minimized window where it was, clamped into the current
// constraint, and raises it.
func (c *Controller) Restore() error {
	c.mgr.mustBeLive()
	rec, ok := c.mgr.Get(c.id)
	if !ok {
		return notFound(c.id)
	}
	p := Patch{Open: Bool(true)}
	if !rec.Open && c.restore != nil && !rec.FullScreen {
		pos := c.clamp(c.restore.Origin())
		p.Position = &pos
	}
	if err := c.mgr.Update(c.id, p); err != nil {
		return err
	}
	return c.mgr.Focus(c.id)
}

// RestoreRect returns the rectangle captured by the last Minimize.
func (c *Controller) RestoreRect() (Rect, bool) {
	if c.restore == nil {
		return Rect{}, false
	}
	return *c.restore, true
}

// ToggleFullScreen switches between floating and fullscreen.
func (c *Controller) ToggleFullScreen() error {
	rec, ok := c.Record()
	if !ok {
		return notFound(c.id)
	}
	return c.SetFullScreen(!rec.FullScreen)
}

// SetFullScreen enters or leaves fullscreen. Entering suspends any drag and
// remembers the floating position; leaving puts it back, clamped into the
// current constraint.
func (c *Controller) SetFullScreen(on bool) error {
	c.mgr.mustBeLive()
	rec, ok := c.mgr.Get(c.id)
	if !ok {
		return notFound(c.id)
	}
	if rec.FullScreen == on {
		return nil
	}
	if on {
		if c.drag != nil {
			c.settleDrag()
			rec, _ = c.mgr.Get(c.id)
		}
		c.lastFloating = rec.Position
		origin := c.fullScreenOrigin()
		return c.mgr.Update(c.id, Patch{FullScreen: Bool(true), Position: &origin})
	}
	pos := c.clamp(c.lastFloating)
	c.lastFloating = pos
	return c.mgr.Update(c.id, Patch{FullScreen: Bool(false), Position: &pos})
}

// settleDrag ends a drag session in place, clamped.
func (c *Controller) settleDrag() {
	p := c.clamp(c.drag.point)
	c.drag = nil
	if err := c.mgr.Update(c.id, Patch{Position: &p}); err != nil {
		c.mgr.log.Error("settle drag", err, "id", c.id)
	}
}

func (c *Controller) clamp(p Point) Point {
	if cons, ok := c.Constraints(); ok {
		return cons.Clamp(p)
	}
	return p
}

func (c *Controller) fullScreenOrigin() Point {
	if b, ok := c.bounds.Boundary(); ok {
		return Point{X: b.Left, Y: b.Top}
	}
	return Point{}
}
