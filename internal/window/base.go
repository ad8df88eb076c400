package window

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Base provides common functionality for window bodies
type Base struct {
	name string
}

// NewBase creates a new base body
func NewBase(name string) Base {
	return Base{name: name}
}

// Name returns the window name
func (b *Base) Name() string {
	return b.name
}

// fit truncates lines to width cells and pads or cuts to height rows
func fit(lines []string, width, height int) string {
	if width < 1 || height < 1 {
		return ""
	}
	out := make([]string, 0, height)
	for _, line := range lines {
		if len(out) == height {
			break
		}
		line = strings.ReplaceAll(line, "\t", "    ")
		out = append(out, runewidth.Truncate(line, width, "…"))
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}
