package wm

import "fmt"

// DefaultCompactWidth is the container width below which windows without an
// explicit fullscreen default open fullscreen.
const DefaultCompactWidth = 1024

// Container is the viewport the windows live in. It owns the boundary
// tracker and creates the controllers bound to it.
type Container struct {
	mgr          *Manager
	bounds       *BoundaryTracker
	fallbackSize Size
	compactWidth int

	controllers map[string]*Controller
}

// ContainerOption configures a Container.
type ContainerOption func(*Container)

// WithFallbackSize sets the size assumed for windows not measured yet.
func WithFallbackSize(s Size) ContainerOption {
	return func(c *Container) {
		c.fallbackSize = s
	}
}

// WithCompactWidth sets the width under which windows default to fullscreen.
func WithCompactWidth(w int) ContainerOption {
	return func(c *Container) {
		c.compactWidth = w
	}
}

// NewContainer creates a container bound to mgr.
func NewContainer(mgr *Manager, opts ...ContainerOption) *Container {
	mgr.mustBeLive()
	c := &Container{
		mgr:          mgr,
		bounds:       NewBoundaryTracker(),
		fallbackSize: DefaultSize,
		compactWidth: DefaultCompactWidth,
		controllers:  make(map[string]*Controller),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Manager returns the manager the container is bound to.
func (c *Container) Manager() *Manager {
	return c.mgr
}

// Bounds returns the boundary tracker of the container.
func (c *Container) Bounds() *BoundaryTracker {
	return c.bounds
}

// Mount publishes the container geometry.
func (c *Container) Mount(r Rect) {
	c.bounds.Measure(r)
}

// Resize publishes a container of the given size anchored at the origin.
func (c *Container) Resize(width, height int) {
	c.bounds.Measure(Rect{Width: width, Height: height})
}

// Compact reports whether the container is narrower than the compact width.
func (c *Container) Compact() bool {
	w := c.bounds.Width()
	return w > 0 && w < c.compactWidth
}

// SetCompactWidth changes the compact width for windows opened afterwards.
func (c *Container) SetCompactWidth(w int) {
	c.compactWidth = w
}

// SetFallbackSize changes the fallback size for windows opened afterwards.
func (c *Container) SetFallbackSize(s Size) {
	c.fallbackSize = s
}

// Open creates a window controller and mounts it on top.
func (c *Container) Open(opts Options) (*Controller, error) {
	c.mgr.mustBeLive()
	if opts.DefaultFullScreen == nil {
		opts.DefaultFullScreen = Bool(c.Compact())
	}
	if opts.FallbackSize == nil {
		fallback := c.fallbackSize
		opts.FallbackSize = &fallback
	}

	ctrl, err := NewController(c.mgr, c.bounds, opts)
	if err != nil {
		return nil, err
	}
	if _, exists := c.controllers[ctrl.ID()]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateWindow, ctrl.ID())
	}
	if err := ctrl.Mount(); err != nil {
		return nil, err
	}
	ctrl.onUnmount = func(id string) {
		delete(c.controllers, id)
	}
	c.controllers[ctrl.ID()] = ctrl
	return ctrl, nil
}

// Controller returns the controller of a mounted window.
func (c *Container) Controller(id string) (*Controller, bool) {
	ctrl, ok := c.controllers[id]
	return ctrl, ok
}

// Close closes the window with the given id.
func (c *Container) Close(id string) error {
	ctrl, ok := c.controllers[id]
	if !ok {
		return notFound(id)
	}
	return ctrl.Close()
}

// WindowControl is what the container exposes per registered window.
type WindowControl struct {
	Record
	Focus func() error
}

// Windows lists every registered window in registration order.
func (c *Container) Windows() []WindowControl {
	snap := c.mgr.Snapshot()
	out := make([]WindowControl, 0, snap.Len())
	for _, rec := range snap.Records {
		id := rec.ID
		out = append(out, WindowControl{
			Record: rec,
			Focus:  func() error { return c.mgr.Focus(id) },
		})
	}
	return out
}

// Topmost returns the controller of the open window with the highest layer.
func (c *Container) Topmost() (*Controller, bool) {
	visible := c.mgr.Snapshot().Visible()
	for i := len(visible) - 1; i >= 0; i-- {
		if ctrl, ok := c.controllers[visible[i].ID]; ok {
			return ctrl, true
		}
	}
	return nil, false
}
