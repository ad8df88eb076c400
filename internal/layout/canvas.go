package layout

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// styleID indexes the palette a canvas is rendered with
type styleID uint8

const (
	styleDesktop styleID = iota
	styleTitleFocused
	styleTitleUnfocused
	styleBorderFocused
	styleBorderUnfocused
	styleBody
	styleTaskbar
	styleTaskbarFocused
	styleTaskbarMinimized
	styleError
	styleCount
)

// cell holds one terminal cell; r == 0 marks the right half of a wide rune
type cell struct {
	r rune
	s styleID
}

// canvas is a grid of cells that windows are painted on, bottom to top
type canvas struct {
	width  int
	height int
	cells  []cell
}

func newCanvas(width, height int) *canvas {
	cv := &canvas{
		width:  width,
		height: height,
		cells:  make([]cell, width*height),
	}
	for i := range cv.cells {
		cv.cells[i] = cell{r: ' ', s: styleDesktop}
	}
	return cv
}

func (cv *canvas) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < cv.width && y < cv.height
}

// set writes a single-width rune, repairing any wide rune it splits
func (cv *canvas) set(x, y int, r rune, s styleID) {
	if !cv.inside(x, y) {
		return
	}
	i := y*cv.width + x
	if cv.cells[i].r == 0 && x > 0 {
		cv.cells[i-1].r = ' '
	}
	if x+1 < cv.width && cv.cells[i+1].r == 0 {
		cv.cells[i+1].r = ' '
	}
	cv.cells[i] = cell{r: r, s: s}
}

func (cv *canvas) fill(x, y, width, height int, r rune, s styleID) {
	for row := y; row < y+height; row++ {
		for col := x; col < x+width; col++ {
			cv.set(col, row, r, s)
		}
	}
}

// text writes str from (x, y) using at most maxWidth cells and returns the
// number of cells used
func (cv *canvas) text(x, y, maxWidth int, str string, s styleID) int {
	used := 0
	for _, r := range str {
		w := runewidth.RuneWidth(r)
		if w == 0 {
			continue
		}
		if used+w > maxWidth {
			break
		}
		if w == 1 {
			cv.set(x+used, y, r, s)
		} else if cv.inside(x+used, y) && cv.inside(x+used+1, y) {
			cv.set(x+used+1, y, ' ', s)
			cv.set(x+used, y, r, s)
			cv.cells[y*cv.width+x+used+1].r = 0
		} else {
			// half of the rune is clipped
			cv.set(x+used, y, ' ', s)
			cv.set(x+used+1, y, ' ', s)
		}
		used += w
	}
	return used
}

// plain returns the canvas content without styling
func (cv *canvas) plain() string {
	var b strings.Builder
	for y := 0; y < cv.height; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < cv.width; x++ {
			if r := cv.cells[y*cv.width+x].r; r != 0 {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// render joins runs of equally styled cells and styles each run once
func (cv *canvas) render(palette [styleCount]lipgloss.Style) string {
	rows := make([]string, cv.height)
	var run strings.Builder
	for y := 0; y < cv.height; y++ {
		var line strings.Builder
		current := styleID(0)
		flush := func() {
			if run.Len() > 0 {
				line.WriteString(palette[current].Render(run.String()))
				run.Reset()
			}
		}
		for x := 0; x < cv.width; x++ {
			c := cv.cells[y*cv.width+x]
			if c.r == 0 {
				continue
			}
			if c.s != current {
				flush()
				current = c.s
			}
			run.WriteRune(c.r)
		}
		flush()
		rows[y] = line.String()
	}
	return strings.Join(rows, "\n")
}
