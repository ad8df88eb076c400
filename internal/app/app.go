package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/windesk/internal/config"
	"github.com/kmacinski/windesk/internal/keys"
	"github.com/kmacinski/windesk/internal/layout"
	"github.com/kmacinski/windesk/internal/logger"
	"github.com/kmacinski/windesk/internal/ui"
	"github.com/kmacinski/windesk/internal/watcher"
	"github.com/kmacinski/windesk/internal/window"
	"github.com/kmacinski/windesk/internal/wm"
	"gopkg.in/yaml.v3"
)

const (
	helpID         = "help"
	statusDuration = 3 * time.Second
	reloadDebounce = 300 * time.Millisecond
)

// ErrNotClosable is reported when closing a window without a close button
var ErrNotClosable = errors.New("window cannot be closed")

// App is the main application model
type App struct {
	state   *State
	cfg     *config.Config
	cfgPath string
	log     *logger.Logger
	styles  ui.Styles

	mgr       *wm.Manager
	container *wm.Container
	layout    *layout.Manager

	// Window bodies by window id, and their registry subscriptions
	bodies map[string]window.Window
	unsubs map[string]func()

	// Dimensions
	width   int
	height  int
	started bool

	// Clipboard, replaceable in tests
	copy func(string) error

	// Config watcher
	watcher *watcher.Watcher
	program *tea.Program
}

// New creates a new application. Windows from cfg are opened once the
// terminal size is known.
func New(cfg *config.Config, cfgPath string, log *logger.Logger) *App {
	if log == nil {
		log = logger.Nop()
	}
	styles := ui.NewStyles(ui.NewColors(cfg.Colors))
	mgr := wm.NewManager(wm.WithLogger(log))
	container := wm.NewContainer(mgr,
		wm.WithFallbackSize(wm.Size{Width: cfg.Desktop.WindowWidth, Height: cfg.Desktop.WindowHeight}),
		wm.WithCompactWidth(cfg.Desktop.CompactWidth),
	)
	container.Bounds().Subscribe(func(b wm.Boundary) {
		log.Debug("desktop measured", "width", b.Right-b.Left, "height", b.Bottom-b.Top)
	})

	return &App{
		state:     NewState(),
		cfg:       cfg,
		cfgPath:   cfgPath,
		log:       log,
		styles:    styles,
		mgr:       mgr,
		container: container,
		layout:    layout.NewManager(styles),
		bodies:    make(map[string]window.Window),
		unsubs:    make(map[string]func()),
		copy:      clipboard.WriteAll,
	}
}

// SetProgram sets the tea.Program reference for sending messages from watcher
func (a *App) SetProgram(p *tea.Program) {
	a.program = p
	if a.cfgPath == "" {
		return
	}

	w, err := watcher.New(a.cfgPath, reloadDebounce, func() {
		if a.program != nil {
			a.program.Send(ConfigChangedMsg{})
		}
	})
	if err != nil {
		a.log.Warn("config watcher disabled", "path", a.cfgPath, "error", err.Error())
		return
	}
	a.watcher = w
	a.watcher.Start()
}

// Cleanup stops the watcher and releases the window manager
func (a *App) Cleanup() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	a.mgr.Close()
}

// Manager returns the window manager
func (a *App) Manager() *wm.Manager {
	return a.mgr
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("windesk")
}

// Update handles messages
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.layout.Resize(msg.Width, msg.Height)
		a.container.Mount(a.layout.Desktop())
		if !a.started {
			a.started = true
			return a, a.openConfigured()
		}
		return a, nil

	case tea.MouseMsg:
		return a, a.handleMouse(msg)

	case tea.KeyMsg:
		return a.handleKey(msg)

	case ConfigChangedMsg:
		return a, a.reload()

	case StatusExpiredMsg:
		a.state.ExpireStatus(msg.Seq)
		return a, nil

	case ErrorMsg:
		return a, a.fail("error", msg.Err)
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	km := keys.DefaultKeyMap

	switch {
	case key.Matches(msg, km.Quit):
		return a, tea.Quit

	case key.Matches(msg, km.Help):
		return a, a.toggleHelp()

	case key.Matches(msg, km.Escape):
		a.cancelDrag()
		return a, nil

	case key.Matches(msg, km.Tab):
		return a, a.cycleFocus(false)

	case key.Matches(msg, km.ShiftTab):
		return a, a.cycleFocus(true)

	case key.Matches(msg, km.NewWindow):
		return a, a.openNote()

	case key.Matches(msg, km.Yank):
		return a, a.yank()

	case key.Matches(msg, km.RestoreAll):
		return a, a.restoreAll()
	}

	ctrl, ok := a.container.Topmost()
	if !ok {
		return a, nil
	}

	switch {
	case key.Matches(msg, km.FullScreen):
		if err := ctrl.ToggleFullScreen(); err != nil {
			return a, a.fail("toggle fullscreen", err)
		}

	case key.Matches(msg, km.Minimize):
		if err := ctrl.Minimize(); err != nil {
			return a, a.fail("minimize", err)
		}

	case key.Matches(msg, km.Close):
		if !ctrl.Closable() {
			return a, a.fail("close", ErrNotClosable)
		}
		if err := a.container.Close(ctrl.ID()); err != nil {
			return a, a.fail("close", err)
		}

	case key.Matches(msg, km.Move):
		return a, a.nudge(ctrl, msg.String())
	}

	return a, nil
}

func (a *App) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		return a.press(msg.X, msg.Y)

	case tea.MouseActionMotion:
		ctrl, ok := a.dragged()
		if !ok {
			return nil
		}
		dx, dy := a.state.MoveMouse(msg.X, msg.Y)
		if dx == 0 && dy == 0 {
			return nil
		}
		if err := ctrl.DragMove(dx, dy); err != nil {
			return a.fail("drag", err)
		}

	case tea.MouseActionRelease:
		ctrl, ok := a.dragged()
		a.state.StopDrag()
		if !ok {
			return nil
		}
		if err := ctrl.DragEnd(ctrl.DragPoint()); err != nil {
			return a.fail("drop", err)
		}
	}
	return nil
}

// press dispatches a left click on whatever the last frame showed at (x, y)
func (a *App) press(x, y int) tea.Cmd {
	hit := a.layout.HitTest(x, y)
	if hit.Part == layout.PartNone {
		return nil
	}
	ctrl, ok := a.container.Controller(hit.ID)
	if !ok {
		return nil
	}

	var err error
	switch hit.Part {
	case layout.PartTitle:
		err = ctrl.PointerDown(true)
		if err == nil && ctrl.Dragging() {
			a.state.StartDrag(ctrl.ID(), x, y)
		}
	case layout.PartBody:
		err = ctrl.PointerDown(false)
	case layout.PartMinimize:
		err = ctrl.Minimize()
	case layout.PartFullScreen:
		if err = ctrl.Focus(); err == nil {
			err = ctrl.ToggleFullScreen()
		}
	case layout.PartClose:
		err = a.container.Close(ctrl.ID())
	case layout.PartTaskbar:
		if ctrl.State() == wm.StateMinimized {
			err = ctrl.Restore()
		} else {
			err = ctrl.Focus()
		}
	}
	if err != nil {
		return a.fail(hit.Part.String(), err)
	}
	return nil
}

func (a *App) dragged() (*wm.Controller, bool) {
	if a.state.DragID == "" {
		return nil, false
	}
	ctrl, ok := a.container.Controller(a.state.DragID)
	if !ok || !ctrl.Dragging() {
		a.state.StopDrag()
		return nil, false
	}
	return ctrl, true
}

func (a *App) cancelDrag() {
	ctrl, ok := a.dragged()
	a.state.StopDrag()
	if !ok {
		return
	}
	if err := ctrl.CancelDrag(); err != nil {
		a.log.Error("cancel drag", err, "id", ctrl.ID())
	}
}

// nudge moves a window by one key step, clamped like a mouse drop
func (a *App) nudge(ctrl *wm.Controller, k string) tea.Cmd {
	if ctrl.ID() == a.state.DragID {
		return nil
	}
	dx, dy := keys.Delta(k)
	if err := ctrl.PointerDown(true); err != nil {
		return a.fail("move", err)
	}
	if !ctrl.Dragging() {
		return nil
	}
	if err := ctrl.DragMove(dx, dy); err != nil {
		return a.fail("move", err)
	}
	if err := ctrl.DragEnd(ctrl.DragPoint()); err != nil {
		return a.fail("move", err)
	}
	return nil
}

// cycleFocus raises the next open window in registration order
func (a *App) cycleFocus(reverse bool) tea.Cmd {
	snap := a.mgr.Snapshot()
	visible := snap.Visible()
	if len(visible) < 2 {
		return nil
	}
	top := visible[len(visible)-1].ID

	var ids []string
	for _, rec := range snap.Records {
		if rec.Open {
			ids = append(ids, rec.ID)
		}
	}
	next := CycleWindow(ids, top, reverse)
	if err := a.mgr.Focus(next); err != nil {
		return a.fail("focus", err)
	}
	return nil
}

func (a *App) restoreAll() tea.Cmd {
	restored := 0
	for _, w := range a.container.Windows() {
		if w.Open {
			continue
		}
		ctrl, ok := a.container.Controller(w.ID)
		if !ok {
			continue
		}
		if err := ctrl.Restore(); err != nil {
			return a.fail("restore", err)
		}
		restored++
	}
	if restored == 0 {
		return nil
	}
	return a.setStatus(fmt.Sprintf("Restored %d windows", restored))
}

func (a *App) toggleHelp() tea.Cmd {
	if _, ok := a.container.Controller(helpID); ok {
		if err := a.container.Close(helpID); err != nil {
			return a.fail("close help", err)
		}
		return nil
	}

	desk := a.layout.Desktop()
	w, h := 40, 16
	_, err := a.open(config.WindowConfig{
		ID:     helpID,
		Name:   "Help",
		Kind:   config.KindHelp,
		X:      max(0, (desk.Width-w)/2),
		Y:      max(0, (desk.Height-h)/2),
		Width:  w,
		Height: h,
	})
	if err != nil {
		return a.fail("open help", err)
	}
	return nil
}

func (a *App) openNote() tea.Cmd {
	n := a.state.NextNote()
	step := n % 8
	_, err := a.open(config.WindowConfig{
		Name: fmt.Sprintf("Note %d", n),
		Kind: config.KindText,
		X:    4 + 3*step,
		Y:    2 + step,
	})
	if err != nil {
		return a.fail("new note", err)
	}
	return nil
}

// yank copies the registry, bottom to top, as YAML
func (a *App) yank() tea.Cmd {
	snap := a.mgr.Snapshot()
	data, err := yaml.Marshal(snap.ByLayer())
	if err != nil {
		return a.fail("yank", err)
	}
	if err := a.copy(string(data)); err != nil {
		return a.fail("copy to clipboard", err)
	}
	return a.setStatus(fmt.Sprintf("Copied %d windows", snap.Len()))
}

// openConfigured opens every configured window that is not open yet
func (a *App) openConfigured() tea.Cmd {
	var cmds []tea.Cmd
	for _, wc := range a.cfg.Windows {
		if wc.ID != "" && a.mgr.Registry().Has(wc.ID) {
			continue
		}
		if _, err := a.open(wc); err != nil {
			cmds = append(cmds, a.fail("open "+wc.Name, err))
		}
	}
	return tea.Batch(cmds...)
}

func (a *App) open(wc config.WindowConfig) (*wm.Controller, error) {
	width, height := a.cfg.WindowSize(wc)
	size := wm.Size{Width: width, Height: height}
	opts := wm.Options{
		Name:              wc.Name,
		CustomID:          wc.ID,
		DefaultOpen:       wc.Open,
		DefaultFullScreen: wc.FullScreen,
		DefaultPosition:   wm.At(wc.X, wc.Y),
		Size:              &size,
	}
	if wc.IsClosable() {
		opts.OnClose = a.onClose
	}

	ctrl, err := a.container.Open(opts)
	if err != nil {
		return nil, err
	}
	a.bodies[ctrl.ID()] = a.newBody(ctrl.ID(), wc)
	return ctrl, nil
}

func (a *App) newBody(id string, wc config.WindowConfig) window.Window {
	switch wc.Kind {
	case config.KindWindows:
		list := window.NewList(wc.Name, a.mgr.Snapshot())
		a.unsubs[id] = a.mgr.Subscribe(list.Update)
		return list
	case config.KindHelp:
		return window.NewHelp(wc.Name)
	default:
		return window.NewText(wc.Name, wc.Body)
	}
}

func (a *App) onClose(id string) {
	name := id
	if rec, ok := a.mgr.Get(id); ok {
		name = rec.Name
	}
	delete(a.bodies, id)
	if unsub, ok := a.unsubs[id]; ok {
		unsub()
		delete(a.unsubs, id)
	}
	if a.state.DragID == id {
		a.state.StopDrag()
	}
	a.log.Info("window closed", "id", id, "name", name)
}

// reload applies a changed config file: colors, sizes, text bodies and any
// configured window that is not open
func (a *App) reload() tea.Cmd {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return a.fail("reload config", err)
	}
	a.cfg = cfg
	a.styles = ui.NewStyles(ui.NewColors(cfg.Colors))
	a.layout.SetStyles(a.styles)
	a.container.SetFallbackSize(wm.Size{Width: cfg.Desktop.WindowWidth, Height: cfg.Desktop.WindowHeight})
	a.container.SetCompactWidth(cfg.Desktop.CompactWidth)

	for _, wc := range cfg.Windows {
		if wc.ID == "" {
			continue
		}
		if text, ok := a.bodies[wc.ID].(*window.Text); ok && wc.Kind != config.KindWindows && wc.Kind != config.KindHelp {
			text.SetBody(wc.Body)
		}
	}

	a.log.Info("config reloaded", "path", a.cfgPath)
	cmd := a.openConfigured()
	return tea.Batch(cmd, a.setStatus("Config reloaded"))
}

func (a *App) setStatus(text string) tea.Cmd {
	seq := a.state.SetStatus(text, false)
	return expireStatus(seq)
}

func (a *App) fail(action string, err error) tea.Cmd {
	a.log.Error(action+" failed", err)
	seq := a.state.SetStatus(err.Error(), true)
	return expireStatus(seq)
}

func expireStatus(seq int) tea.Cmd {
	return tea.Tick(statusDuration, func(time.Time) tea.Msg {
		return StatusExpiredMsg{Seq: seq}
	})
}

// View renders the application
func (a *App) View() string {
	if a.width == 0 || a.height == 0 {
		return "Loading..."
	}

	var out string
	a.mgr.Render(func(snap wm.Snapshot) {
		focused := ""
		if visible := snap.Visible(); len(visible) > 0 {
			focused = visible[len(visible)-1].ID
		}
		out = a.layout.Render(a.frames(snap), snap.Records, focused, layout.Status{
			Text: a.state.Status,
			Err:  a.state.StatusErr,
		})
	})
	return out
}

func (a *App) frames(snap wm.Snapshot) []layout.Frame {
	frames := make([]layout.Frame, 0, snap.Len())
	for _, rec := range snap.Records {
		ctrl, ok := a.container.Controller(rec.ID)
		if !ok {
			continue
		}
		frames = append(frames, layout.Frame{
			Record:   rec,
			Rect:     ctrl.Frame(),
			Closable: ctrl.Closable(),
			Body:     a.bodies[rec.ID],
		})
	}
	return frames
}
