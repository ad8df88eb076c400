package wm

import "sort"

// BoundaryTracker republishes the measured geometry of the container.
// Until the first measurement there is no boundary and windows are
// unconstrained.
type BoundaryTracker struct {
	bounds   Boundary
	measured bool

	subs    map[int]func(Boundary)
	nextSub int
}

// NewBoundaryTracker creates a tracker with no measurement yet.
func NewBoundaryTracker() *BoundaryTracker {
	return &BoundaryTracker{subs: make(map[int]func(Boundary))}
}

// Measure publishes the container rectangle.
func (t *BoundaryTracker) Measure(r Rect) {
	b := Boundary{
		Top:    r.Y,
		Left:   r.X,
		Right:  r.X + r.Width,
		Bottom: r.Y + r.Height,
	}
	if t.measured && b == t.bounds {
		return
	}
	t.bounds = b
	t.measured = true

	keys := make([]int, 0, len(t.subs))
	for k := range t.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		t.subs[k](b)
	}
}

// Boundary returns the last published boundary.
func (t *BoundaryTracker) Boundary() (Boundary, bool) {
	if t == nil {
		return Boundary{}, false
	}
	return t.bounds, t.measured
}

// Width returns the container width, or 0 before the first measurement.
func (t *BoundaryTracker) Width() int {
	if t == nil || !t.measured {
		return 0
	}
	return t.bounds.Right - t.bounds.Left
}

// Subscribe registers fn to receive every new boundary.
func (t *BoundaryTracker) Subscribe(fn func(Boundary)) func() {
	key := t.nextSub
	t.nextSub++
	t.subs[key] = fn
	return func() {
		delete(t.subs, key)
	}
}

// Constraint derives the rectangle a window origin may occupy so the whole
// window of the given size stays inside b. A window larger than the
// boundary is pinned to the top-left edge.
func Constraint(b Boundary, s Size) Boundary {
	c := Boundary{
		Top:    b.Top,
		Left:   b.Left,
		Right:  b.Right - s.Width,
		Bottom: b.Bottom - s.Height,
	}
	if c.Right < c.Left {
		c.Right = c.Left
	}
	if c.Bottom < c.Top {
		c.Bottom = c.Top
	}
	return c
}
