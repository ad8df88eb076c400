package wm

import (
	"fmt"
	"sort"
)

// Snapshot is an immutable copy of the registry at one version.
type Snapshot struct {
	Version uint64   `yaml:"version"`
	Records []Record `yaml:"windows"`
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int {
	return len(s.Records)
}

// Get returns the record for id.
func (s Snapshot) Get(id string) (Record, bool) {
	for _, rec := range s.Records {
		if rec.ID == id {
			return rec, true
		}
	}
	return Record{}, false
}

// ByLayer returns the records from the bottom layer to the top one.
func (s Snapshot) ByLayer() []Record {
	out := make([]Record, len(s.Records))
	copy(out, s.Records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Layer < out[j].Layer
	})
	return out
}

// Visible returns the open records from the bottom layer to the top one.
func (s Snapshot) Visible() []Record {
	var out []Record
	for _, rec := range s.ByLayer() {
		if rec.Open {
			out = append(out, rec)
		}
	}
	return out
}

// Registry is the insertion-ordered map of window records.
// Every mutation bumps the version and republishes a snapshot to subscribers.
type Registry struct {
	order   []string
	records map[string]*Record
	version uint64

	subs    map[int]func(Snapshot)
	nextSub int

	// batch depth; publishing waits until it drops back to zero
	hold  int
	dirty bool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		records: make(map[string]*Record),
		subs:    make(map[int]func(Snapshot)),
	}
}

// Register adds a record under id. The record's layer is stored as given;
// use Manager.Register to get layer assignment.
func (r *Registry) Register(id string, rec Record) error {
	if _, exists := r.records[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateWindow, id)
	}
	rec.ID = id
	r.records[id] = &rec
	r.order = append(r.order, id)
	r.changed()
	return nil
}

// Get returns a copy of the record for id.
func (r *Registry) Get(id string) (Record, bool) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, false
	}
	return *rec, true
}

// Has reports whether id is registered.
func (r *Registry) Has(id string) bool {
	_, ok := r.records[id]
	return ok
}

// Update applies a patch to the record for id.
func (r *Registry) Update(id string, p Patch) error {
	rec, ok := r.records[id]
	if !ok {
		return notFound(id)
	}
	if p.apply(rec) {
		r.changed()
	}
	return nil
}

// Remove deletes the record for id and returns it.
// Layers are not compacted here; Manager.Remove does that.
func (r *Registry) Remove(id string) (Record, error) {
	rec, ok := r.records[id]
	if !ok {
		return Record{}, notFound(id)
	}
	delete(r.records, id)
	for i, other := range r.order {
		if other == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	r.changed()
	return *rec, nil
}

// Len returns the number of registered windows.
func (r *Registry) Len() int {
	return len(r.order)
}

// IDs returns the registered ids in insertion order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Version returns the current snapshot version.
func (r *Registry) Version() uint64 {
	return r.version
}

// Snapshot returns a copy of every record in insertion order.
func (r *Registry) Snapshot() Snapshot {
	recs := make([]Record, 0, len(r.order))
	for _, id := range r.order {
		recs = append(recs, *r.records[id])
	}
	return Snapshot{Version: r.version, Records: recs}
}

// Subscribe registers fn to receive every new snapshot.
// The returned function removes the subscription.
func (r *Registry) Subscribe(fn func(Snapshot)) func() {
	key := r.nextSub
	r.nextSub++
	r.subs[key] = fn
	return func() {
		delete(r.subs, key)
	}
}

func (r *Registry) setLayer(id string, layer int) {
	rec, ok := r.records[id]
	if !ok || rec.Layer == layer {
		return
	}
	rec.Layer = layer
	r.changed()
}

// batch runs fn and publishes at most one snapshot for all of its changes.
func (r *Registry) batch(fn func()) {
	r.hold++
	defer func() {
		r.hold--
		if r.hold == 0 && r.dirty {
			r.dirty = false
			r.publish()
		}
	}()
	fn()
}

func (r *Registry) changed() {
	if r.hold > 0 {
		r.dirty = true
		return
	}
	r.publish()
}

func (r *Registry) publish() {
	r.version++
	if len(r.subs) == 0 {
		return
	}
	snap := r.Snapshot()
	keys := make([]int, 0, len(r.subs))
	for k := range r.subs {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	for _, k := range keys {
		if fn, ok := r.subs[k]; ok {
			fn(snap)
		}
	}
}
