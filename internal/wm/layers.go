package wm

import "fmt"

// LayerManager keeps the layers of a registry dense and unique: with N
// records, every layer in 1..N is held by exactly one of them.
// It is the only writer of Record.Layer.
type LayerManager struct {
	reg *Registry
}

// NewLayerManager creates a layer manager over reg.
func NewLayerManager(reg *Registry) *LayerManager {
	return &LayerManager{reg: reg}
}

// Next returns the layer a newly registered window gets (topmost).
func (l *LayerManager) Next() int {
	return l.reg.Len() + 1
}

// Focus raises id to the top layer and closes the gap it leaves behind.
// Windows above the old layer move down by one; windows below are untouched.
// It reports whether any layer changed.
func (l *LayerManager) Focus(id string) (bool, error) {
	rec, ok := l.reg.records[id]
	if !ok {
		return false, notFound(id)
	}
	top := l.reg.Len()
	old := rec.Layer
	if old == top {
		return false, nil
	}

	l.reg.batch(func() {
		for _, other := range l.reg.order {
			if other == id {
				continue
			}
			if layer := l.reg.records[other].Layer; layer > old {
				l.reg.setLayer(other, layer-1)
			}
		}
		l.reg.setLayer(id, top)
	})
	return true, nil
}

// Compact closes the gap left by a removed window that held layer removed.
func (l *LayerManager) Compact(removed int) {
	l.reg.batch(func() {
		for _, id := range l.reg.order {
			if layer := l.reg.records[id].Layer; layer > removed {
				l.reg.setLayer(id, layer-1)
			}
		}
	})
}

// Top returns the id holding the highest layer.
func (l *LayerManager) Top() (string, bool) {
	top := l.reg.Len()
	for _, id := range l.reg.order {
		if l.reg.records[id].Layer == top {
			return id, true
		}
	}
	return "", false
}

// Order returns ids from the bottom layer to the top one.
func (l *LayerManager) Order() []string {
	recs := l.reg.Snapshot().ByLayer()
	ids := make([]string, len(recs))
	for i, rec := range recs {
		ids[i] = rec.ID
	}
	return ids
}

// Validate checks that layers are exactly 1..N.
func (l *LayerManager) Validate() error {
	n := l.reg.Len()
	seen := make(map[int]string, n)
	for _, id := range l.reg.order {
		layer := l.reg.records[id].Layer
		if layer < 1 || layer > n {
			return fmt.Errorf("%w: %q has layer %d outside 1..%d", ErrLayerInvariant, id, layer, n)
		}
		if prev, dup := seen[layer]; dup {
			return fmt.Errorf("%w: %q and %q share layer %d", ErrLayerInvariant, prev, id, layer)
		}
		seen[layer] = id
	}
	return nil
}
