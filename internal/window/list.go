package window

import (
	"fmt"

	"github.com/kmacinski/windesk/internal/wm"
	"github.com/mattn/go-runewidth"
)

// List shows the live window registry, topmost first. It keeps the last
// snapshot it was given; subscribe Update to the registry to keep it live.
type List struct {
	Base
	snap wm.Snapshot
}

// NewList creates a registry listing body showing snap
func NewList(name string, snap wm.Snapshot) *List {
	return &List{
		Base: NewBase(name),
		snap: snap,
	}
}

// Update replaces the listed snapshot
func (l *List) Update(snap wm.Snapshot) {
	l.snap = snap
}

// View renders one line per window: layer, name and state
func (l *List) View(width, height int) string {
	snap := l.snap
	recs := snap.ByLayer()

	lines := []string{fmt.Sprintf("%d windows  v%d", len(recs), snap.Version)}
	for i := len(recs) - 1; i >= 0; i-- {
		rec := recs[i]
		name := runewidth.FillRight(runewidth.Truncate(rec.Name, 14, "…"), 14)
		lines = append(lines, fmt.Sprintf("%2d %s %s", rec.Layer, name, rec.State()))
	}
	return fit(lines, width, height)
}
