package layout

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/kmacinski/windesk/internal/ui"
	"github.com/kmacinski/windesk/internal/window"
	"github.com/kmacinski/windesk/internal/wm"
	"github.com/mattn/go-runewidth"
)

// Part is the area of the screen a pointer landed on
type Part int

const (
	PartNone Part = iota
	PartBody
	PartTitle
	PartMinimize
	PartFullScreen
	PartClose
	PartTaskbar
)

// String returns the string representation of the part
func (p Part) String() string {
	switch p {
	case PartNone:
		return "none"
	case PartBody:
		return "body"
	case PartTitle:
		return "title"
	case PartMinimize:
		return "minimize"
	case PartFullScreen:
		return "fullscreen"
	case PartClose:
		return "close"
	case PartTaskbar:
		return "taskbar"
	default:
		return "unknown"
	}
}

// Hit is the result of a hit test
type Hit struct {
	ID   string
	Part Part
}

// Frame is one window to paint
type Frame struct {
	Record   wm.Record
	Rect     wm.Rect
	Closable bool
	Body     window.Window
}

// Status is the text shown on the right of the taskbar
type Status struct {
	Text string
	Err  bool
}

const (
	buttonWidth = 3
	minimizeBtn = "[_]"
	maximizeBtn = "[^]"
	restoreBtn  = "[v]"
	closeBtn    = "[x]"
)

type region struct {
	id       string
	rect     wm.Rect
	closable bool
}

type span struct {
	id    string
	start int
	end   int
}

// Manager paints windows in layer order and answers hit tests against the
// last painted frame. The bottom row is the taskbar.
type Manager struct {
	palette [styleCount]lipgloss.Style
	width   int
	height  int

	regions []region
	tasks   []span
	last    *canvas
}

// NewManager creates a new layout manager
func NewManager(styles ui.Styles) *Manager {
	m := &Manager{}
	m.SetStyles(styles)
	return m
}

// SetStyles swaps the palette, e.g. after a config reload
func (m *Manager) SetStyles(s ui.Styles) {
	m.palette = [styleCount]lipgloss.Style{
		styleDesktop:          s.Desktop,
		styleTitleFocused:     s.TitleFocused,
		styleTitleUnfocused:   s.TitleUnfocused,
		styleBorderFocused:    s.BorderFocused,
		styleBorderUnfocused:  s.BorderUnfocused,
		styleBody:             s.Body,
		styleTaskbar:          s.Taskbar,
		styleTaskbarFocused:   s.TaskbarFocused,
		styleTaskbarMinimized: s.TaskbarMinimized,
		styleError:            s.Error,
	}
}

// Resize updates the layout dimensions
func (m *Manager) Resize(width, height int) {
	m.width = width
	m.height = height
}

// Desktop returns the area windows live in: everything above the taskbar
func (m *Manager) Desktop() wm.Rect {
	h := m.height - 1
	if h < 0 {
		h = 0
	}
	return wm.Rect{Width: m.width, Height: h}
}

// Render paints the open frames from the lowest layer up, then the taskbar
// listing every record. focused is the id drawn with focused chrome.
func (m *Manager) Render(frames []Frame, records []wm.Record, focused string, status Status) string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	sorted := make([]Frame, 0, len(frames))
	for _, f := range frames {
		if f.Record.Open {
			sorted = append(sorted, f)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Record.Layer < sorted[j].Record.Layer
	})

	cv := newCanvas(m.width, m.height)
	m.regions = m.regions[:0]
	for _, f := range sorted {
		m.paintWindow(cv, f, f.Record.ID == focused)
		m.regions = append(m.regions, region{id: f.Record.ID, rect: f.Rect, closable: f.Closable})
	}
	m.paintTaskbar(cv, records, focused, status)
	m.last = cv

	return cv.render(m.palette)
}

// Plain returns the last rendered frame without styling
func (m *Manager) Plain() string {
	if m.last == nil {
		return ""
	}
	return m.last.plain()
}

func (m *Manager) paintWindow(cv *canvas, f Frame, focused bool) {
	r := f.Rect
	if r.Width < 1 || r.Height < 1 {
		return
	}
	title, border := styleTitleUnfocused, styleBorderUnfocused
	if focused {
		title, border = styleTitleFocused, styleBorderFocused
	}

	// title bar with buttons on the right
	cv.fill(r.X, r.Y, r.Width, 1, ' ', title)
	buttons := []string{minimizeBtn, maximizeBtn}
	if f.Record.FullScreen {
		buttons[1] = restoreBtn
	}
	if f.Closable {
		buttons = append(buttons, closeBtn)
	}
	btnStart := r.X + r.Width - buttonWidth*len(buttons)
	cv.text(r.X+1, r.Y, btnStart-r.X-2, f.Record.Name, title)
	if btnStart > r.X {
		cv.text(btnStart, r.Y, buttonWidth*len(buttons), strings.Join(buttons, ""), title)
	}

	if r.Height < 2 {
		return
	}

	// frame
	bottom := r.Y + r.Height - 1
	right := r.X + r.Width - 1
	for y := r.Y + 1; y < bottom; y++ {
		cv.set(r.X, y, '│', border)
		cv.set(right, y, '│', border)
	}
	cv.set(r.X, bottom, '└', border)
	cv.set(right, bottom, '┘', border)
	for x := r.X + 1; x < right; x++ {
		cv.set(x, bottom, '─', border)
	}

	// body
	innerW, innerH := r.Width-2, r.Height-2
	if innerW < 1 || innerH < 1 {
		return
	}
	cv.fill(r.X+1, r.Y+1, innerW, innerH, ' ', styleBody)
	if f.Body == nil {
		return
	}
	lines := strings.Split(ansi.Strip(f.Body.View(innerW, innerH)), "\n")
	for i, line := range lines {
		if i == innerH {
			break
		}
		cv.text(r.X+1, r.Y+1+i, innerW, line, styleBody)
	}
}

func (m *Manager) paintTaskbar(cv *canvas, records []wm.Record, focused string, status Status) {
	y := m.height - 1
	cv.fill(0, y, m.width, 1, ' ', styleTaskbar)
	m.tasks = m.tasks[:0]

	x := 1
	for _, rec := range records {
		label := " " + runewidth.Truncate(rec.Name, 16, "…") + " "
		s := styleTaskbar
		switch {
		case !rec.Open:
			s = styleTaskbarMinimized
		case rec.ID == focused:
			s = styleTaskbarFocused
			label = "[" + label[1:len(label)-1] + "]"
		}
		w := cv.text(x, y, m.width-x, label, s)
		if w == 0 {
			break
		}
		m.tasks = append(m.tasks, span{id: rec.ID, start: x, end: x + w})
		x += w + 1
	}

	if status.Text == "" {
		return
	}
	sw := runewidth.StringWidth(status.Text)
	start := m.width - sw - 1
	if start <= x {
		return
	}
	s := styleTaskbar
	if status.Err {
		s = styleError
	}
	cv.text(start, y, sw, status.Text, s)
}

// HitTest returns the window part under (x, y), checking the topmost
// window first
func (m *Manager) HitTest(x, y int) Hit {
	if y == m.height-1 {
		for _, t := range m.tasks {
			if x >= t.start && x < t.end {
				return Hit{ID: t.id, Part: PartTaskbar}
			}
		}
		return Hit{}
	}

	for i := len(m.regions) - 1; i >= 0; i-- {
		reg := m.regions[i]
		if !reg.rect.Contains(x, y) {
			continue
		}
		if y != reg.rect.Y {
			return Hit{ID: reg.id, Part: PartBody}
		}
		return Hit{ID: reg.id, Part: titlePart(reg, x)}
	}
	return Hit{}
}

func titlePart(reg region, x int) Part {
	parts := []Part{PartMinimize, PartFullScreen}
	if reg.closable {
		parts = append(parts, PartClose)
	}
	start := reg.rect.X + reg.rect.Width - buttonWidth*len(parts)
	if start <= reg.rect.X || x < start {
		return PartTitle
	}
	return parts[(x-start)/buttonWidth]
}
