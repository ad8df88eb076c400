package wm

// Logger is the logging surface the manager needs.
type Logger interface {
	Debug(msg string, fields ...interface{})
	Error(msg string, err error, fields ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{})        {}
func (nopLogger) Error(string, error, ...interface{}) {}

// Manager is the scope every window lives in. It owns the registry and the
// layer manager and is passed by reference to each window controller.
//
// Mutations requested while a render pass is running are queued and applied,
// in order, once the pass returns.
type Manager struct {
	reg    *Registry
	layers *LayerManager
	log    Logger

	closed    bool
	rendering bool
	pending   []func() error
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithLogger sets the logger used for registry events.
func WithLogger(l Logger) ManagerOption {
	return func(m *Manager) {
		if l != nil {
			m.log = l
		}
	}
}

// NewManager creates a window manager with an empty registry.
func NewManager(opts ...ManagerOption) *Manager {
	reg := NewRegistry()
	m := &Manager{
		reg:    reg,
		layers: NewLayerManager(reg),
		log:    nopLogger{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// mustBeLive panics when the manager is missing or closed.
func (m *Manager) mustBeLive() {
	if m == nil || m.closed {
		panic(ErrNoManager)
	}
}

// Registry returns the underlying registry for read access.
func (m *Manager) Registry() *Registry {
	m.mustBeLive()
	return m.reg
}

// Layers returns the layer manager.
func (m *Manager) Layers() *LayerManager {
	m.mustBeLive()
	return m.layers
}

// Snapshot returns the current registry snapshot.
func (m *Manager) Snapshot() Snapshot {
	m.mustBeLive()
	return m.reg.Snapshot()
}

// Get returns the record for id.
func (m *Manager) Get(id string) (Record, bool) {
	m.mustBeLive()
	return m.reg.Get(id)
}

// Subscribe registers fn to receive every new snapshot.
func (m *Manager) Subscribe(fn func(Snapshot)) func() {
	m.mustBeLive()
	return m.reg.Subscribe(fn)
}

// Register adds a window on top of every other one.
func (m *Manager) Register(rec Record) error {
	m.mustBeLive()
	return m.do(func() error {
		rec.Layer = m.layers.Next()
		if err := m.reg.Register(rec.ID, rec); err != nil {
			return err
		}
		m.log.Debug("window registered", "id", rec.ID, "name", rec.Name, "layer", rec.Layer)
		return nil
	})
}

// Update patches the controller-owned fields of a record.
func (m *Manager) Update(id string, p Patch) error {
	m.mustBeLive()
	return m.do(func() error {
		return m.reg.Update(id, p)
	})
}

// Remove deletes a window and compacts the layers above it.
func (m *Manager) Remove(id string) error {
	m.mustBeLive()
	return m.do(func() error {
		var err error
		m.reg.batch(func() {
			var rec Record
			rec, err = m.reg.Remove(id)
			if err != nil {
				return
			}
			m.layers.Compact(rec.Layer)
			m.log.Debug("window removed", "id", id, "layer", rec.Layer, "remaining", m.reg.Len())
		})
		return err
	})
}

// Focus raises a window to the top layer.
func (m *Manager) Focus(id string) error {
	m.mustBeLive()
	return m.do(func() error {
		changed, err := m.layers.Focus(id)
		if err != nil {
			return err
		}
		if changed {
			m.log.Debug("window focused", "id", id, "layer", m.reg.Len())
		}
		return nil
	})
}

// Render runs fn with the current snapshot. Mutations issued from inside fn
// are deferred until fn returns.
func (m *Manager) Render(fn func(Snapshot)) {
	m.mustBeLive()
	if m.rendering {
		fn(m.reg.Snapshot())
		return
	}
	m.rendering = true
	func() {
		defer func() { m.rendering = false }()
		fn(m.reg.Snapshot())
	}()
	m.flush()
}

// Rendering reports whether a render pass is running.
func (m *Manager) Rendering() bool {
	return m.rendering
}

// Close ends the manager scope. Later calls on it, or on controllers bound
// to it, panic with ErrNoManager.
func (m *Manager) Close() {
	m.mustBeLive()
	m.closed = true
	m.pending = nil
}

func (m *Manager) do(op func() error) error {
	if m.rendering {
		m.pending = append(m.pending, op)
		return nil
	}
	return op()
}

func (m *Manager) flush() {
	for len(m.pending) > 0 {
		op := m.pending[0]
		m.pending = m.pending[1:]
		if err := op(); err != nil {
			m.log.Error("deferred window update failed", err)
		}
	}
	if err := m.layers.Validate(); err != nil {
		m.log.Error("layer invariant broken", err)
	}
}
