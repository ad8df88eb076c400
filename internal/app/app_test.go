package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/windesk/internal/config"
	"github.com/kmacinski/windesk/internal/logger"
	"github.com/kmacinski/windesk/internal/wm"
)

func newApp(t *testing.T, width, height int) *App {
	t.Helper()
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return start(t, New(cfg, "", logger.Nop()), width, height)
}

func start(t *testing.T, a *App, width, height int) *App {
	t.Helper()
	a.Update(tea.WindowSizeMsg{Width: width, Height: height})
	a.View()
	return a
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "shift+tab":
		return tea.KeyMsg{Type: tea.KeyShiftTab}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
}

func motion(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
}

func release(a *App, x, y int) {
	a.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
}

func record(t *testing.T, a *App, id string) wm.Record {
	t.Helper()
	rec, ok := a.mgr.Get(id)
	if !ok {
		t.Fatalf("window %q is not registered", id)
	}
	return rec
}

func topID(a *App) string {
	id, _ := a.mgr.Layers().Top()
	return id
}

func TestStartup_OpensConfiguredWindows(t *testing.T) {
	a := newApp(t, 80, 24)

	if got := a.mgr.Snapshot().Len(); got != 2 {
		t.Fatalf("expected 2 windows, got %d", got)
	}
	if got := record(t, a, "welcome"); got.Layer != 1 || got.Position != (wm.Point{X: 2, Y: 1}) || got.FullScreen {
		t.Fatalf("unexpected welcome record %+v", got)
	}
	if got := record(t, a, "windows"); got.Layer != 2 {
		t.Fatalf("expected windows on top, got %+v", got)
	}

	// a second resize does not reopen anything
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if got := a.mgr.Snapshot().Len(); got != 2 {
		t.Fatalf("expected 2 windows after resize, got %d", got)
	}
}

func TestStartup_CompactTerminalOpensFullScreen(t *testing.T) {
	a := newApp(t, 50, 20)

	for _, id := range []string{"welcome", "windows"} {
		rec := record(t, a, id)
		if !rec.FullScreen || rec.Position != (wm.Point{}) {
			t.Fatalf("expected %s fullscreen at the origin, got %+v", id, rec)
		}
	}
}

func TestView_BeforeResize(t *testing.T) {
	cfg := config.Default
	a := New(&cfg, "", nil)
	if got := a.View(); got != "Loading..." {
		t.Fatalf("unexpected view %q", got)
	}
}

func TestMouse_ClickBodyRaises(t *testing.T) {
	a := newApp(t, 80, 24)

	press(a, 5, 5)
	if topID(a) != "welcome" {
		t.Fatalf("expected welcome on top, got %q", topID(a))
	}
	if a.state.DragID != "" {
		t.Fatalf("body click should not start a drag")
	}
	if got := record(t, a, "windows").Layer; got != 1 {
		t.Fatalf("expected windows on layer 1, got %d", got)
	}
}

func TestMouse_DragTitleBar(t *testing.T) {
	a := newApp(t, 80, 24)

	press(a, 10, 1)
	if topID(a) != "welcome" || a.state.DragID != "welcome" {
		t.Fatalf("expected welcome raised and dragged, top=%q drag=%q", topID(a), a.state.DragID)
	}

	motion(a, 15, 3)
	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 7, Y: 3}) {
		t.Fatalf("expected (7,3) while dragging, got %+v", got)
	}

	release(a, 15, 3)
	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 7, Y: 3}) {
		t.Fatalf("expected (7,3) after drop, got %+v", got)
	}
	if a.state.DragID != "" {
		t.Fatalf("expected drag to end")
	}
}

func TestMouse_DropClampsToDesktop(t *testing.T) {
	a := newApp(t, 80, 24)

	press(a, 10, 1)
	motion(a, 100, 40)
	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 92, Y: 40}) {
		t.Fatalf("expected unclamped (92,40) while dragging, got %+v", got)
	}

	// desktop is 80x23, welcome is 40x12
	release(a, 100, 40)
	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 40, Y: 11}) {
		t.Fatalf("expected (40,11) after drop, got %+v", got)
	}
}

func TestEscape_CancelsDrag(t *testing.T) {
	a := newApp(t, 80, 24)

	press(a, 10, 1)
	motion(a, 20, 6)
	a.Update(keyMsg("esc"))

	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 2, Y: 1}) {
		t.Fatalf("expected drag start (2,1), got %+v", got)
	}
	release(a, 20, 6)
	if got := record(t, a, "welcome").Position; got != (wm.Point{X: 2, Y: 1}) {
		t.Fatalf("release after cancel moved the window to %+v", got)
	}
}

func TestMouse_CloseButton(t *testing.T) {
	a := newApp(t, 80, 24)

	press(a, 40, 1)
	if a.mgr.Registry().Has("welcome") {
		t.Fatalf("expected welcome to be closed")
	}
	if _, ok := a.bodies["welcome"]; ok {
		t.Fatalf("expected welcome body to be dropped")
	}
	if got := record(t, a, "windows").Layer; got != 1 {
		t.Fatalf("expected layers to compact, got %d", got)
	}
}

func TestMouse_MinimizeAndTaskbarRestore(t *testing.T) {
	a := newApp(t, 80, 24)

	// windows: x 46..79, minimize button at 71..73
	press(a, 72, 4)
	if rec := record(t, a, "windows"); rec.Open || rec.Layer != 2 {
		t.Fatalf("expected windows minimized on layer 2, got %+v", rec)
	}

	// taskbar: " [Welcome]  Windows "
	a.View()
	press(a, 12, 23)
	if rec := record(t, a, "windows"); !rec.Open || rec.Position != (wm.Point{X: 46, Y: 4}) {
		t.Fatalf("expected windows restored in place, got %+v", rec)
	}
	if topID(a) != "windows" {
		t.Fatalf("expected restored window on top")
	}
}

func TestKeys_FullScreenRoundTrip(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("f"))
	rec := record(t, a, "windows")
	if !rec.FullScreen || rec.Position != (wm.Point{}) {
		t.Fatalf("expected fullscreen at the origin, got %+v", rec)
	}
	ctrl, _ := a.container.Controller("windows")
	if got := ctrl.Frame(); got != (wm.Rect{Width: 80, Height: 23}) {
		t.Fatalf("expected frame to cover the desktop, got %+v", got)
	}

	a.Update(keyMsg("f"))
	rec = record(t, a, "windows")
	if rec.FullScreen || rec.Position != (wm.Point{X: 46, Y: 4}) {
		t.Fatalf("expected floating at (46,4), got %+v", rec)
	}
}

func TestKeys_MinimizeAndRestoreAll(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("m"))
	a.Update(keyMsg("m"))
	if visible := a.mgr.Snapshot().Visible(); len(visible) != 0 {
		t.Fatalf("expected no visible windows, got %d", len(visible))
	}

	a.Update(keyMsg("r"))
	if visible := a.mgr.Snapshot().Visible(); len(visible) != 2 {
		t.Fatalf("expected both windows restored, got %d", len(visible))
	}
	if a.state.Status != "Restored 2 windows" {
		t.Fatalf("unexpected status %q", a.state.Status)
	}
	if err := a.mgr.Layers().Validate(); err != nil {
		t.Fatalf("layers not dense: %v", err)
	}
}

func TestKeys_CycleFocus(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("tab"))
	if topID(a) != "welcome" {
		t.Fatalf("expected welcome on top, got %q", topID(a))
	}
	a.Update(keyMsg("shift+tab"))
	if topID(a) != "windows" {
		t.Fatalf("expected windows on top, got %q", topID(a))
	}
}

func TestKeys_MoveClamps(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("h"))
	if got := record(t, a, "windows").Position; got != (wm.Point{X: 44, Y: 4}) {
		t.Fatalf("expected (44,4), got %+v", got)
	}

	// windows is 34 wide: its origin cannot pass 46
	a.Update(keyMsg("l"))
	a.Update(keyMsg("l"))
	if got := record(t, a, "windows").Position; got != (wm.Point{X: 46, Y: 4}) {
		t.Fatalf("expected (46,4), got %+v", got)
	}
}

func TestKeys_CloseNotClosable(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Windows[1].Closable = wm.Bool(false)
	a := start(t, New(cfg, "", logger.Nop()), 80, 24)

	a.Update(keyMsg("x"))
	if !a.mgr.Registry().Has("windows") {
		t.Fatalf("expected windows to stay open")
	}
	if !a.state.StatusErr || a.state.Status != ErrNotClosable.Error() {
		t.Fatalf("unexpected status %q", a.state.Status)
	}

	a.Update(keyMsg("tab"))
	a.Update(keyMsg("x"))
	if a.mgr.Registry().Has("welcome") {
		t.Fatalf("expected welcome to close")
	}
}

func TestKeys_HelpToggles(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("?"))
	if topID(a) != helpID {
		t.Fatalf("expected help on top, got %q", topID(a))
	}
	if !strings.Contains(a.View(), "raise next window") {
		t.Fatalf("expected help text in view")
	}

	a.Update(keyMsg("?"))
	if a.mgr.Registry().Has(helpID) {
		t.Fatalf("expected help to close")
	}
}

func TestKeys_NewNote(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("n"))
	a.Update(keyMsg("n"))

	snap := a.mgr.Snapshot()
	if snap.Len() != 4 {
		t.Fatalf("expected 4 windows, got %d", snap.Len())
	}
	top := snap.ByLayer()[3]
	if top.Name != "Note 2" || top.Position != (wm.Point{X: 10, Y: 4}) {
		t.Fatalf("unexpected note %+v", top)
	}
	if top.ID == "" || top.ID == snap.ByLayer()[2].ID {
		t.Fatalf("expected generated unique ids")
	}
}

func TestKeys_YankCopiesLayout(t *testing.T) {
	a := newApp(t, 80, 24)
	var copied string
	a.copy = func(s string) error {
		copied = s
		return nil
	}

	a.Update(keyMsg("y"))
	for _, want := range []string{"id: welcome", "name: Windows", "layer: 2"} {
		if !strings.Contains(copied, want) {
			t.Fatalf("expected %q in copied layout:\n%s", want, copied)
		}
	}
	if a.state.Status != "Copied 2 windows" {
		t.Fatalf("unexpected status %q", a.state.Status)
	}

	a.copy = func(string) error { return errors.New("no clipboard") }
	a.Update(keyMsg("y"))
	if !a.state.StatusErr {
		t.Fatalf("expected clipboard error in status")
	}
}

func TestStatus_Expires(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(ErrorMsg{Err: errors.New("boom")})
	first := a.state.statusSeq
	a.Update(ErrorMsg{Err: errors.New("bang")})

	a.Update(StatusExpiredMsg{Seq: first})
	if a.state.Status != "bang" {
		t.Fatalf("stale expiry cleared a newer status")
	}
	a.Update(StatusExpiredMsg{Seq: a.state.statusSeq})
	if a.state.Status != "" || a.state.StatusErr {
		t.Fatalf("expected status cleared")
	}
}

func TestConfigChanged_OpensNewWindows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	initial := "windows:\n  - id: welcome\n    name: Welcome\n    body: hello\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	a := start(t, New(cfg, path, logger.Nop()), 80, 24)
	if got := a.mgr.Snapshot().Len(); got != 1 {
		t.Fatalf("expected 1 window, got %d", got)
	}

	updated := initial + "  - id: extra\n    name: Extra\n    x: 10\n    y: 5\n"
	updated = strings.Replace(updated, "body: hello", "body: changed", 1)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a.Update(ConfigChangedMsg{})

	if rec := record(t, a, "extra"); rec.Position != (wm.Point{X: 10, Y: 5}) || rec.Layer != 2 {
		t.Fatalf("unexpected extra record %+v", rec)
	}
	if !strings.Contains(a.View(), "changed") {
		t.Fatalf("expected welcome body to be updated")
	}
	if a.state.Status != "Config reloaded" {
		t.Fatalf("unexpected status %q", a.state.Status)
	}
}

func TestConfigChanged_InvalidKeepsRunning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	a := start(t, New(&config.Default, path, logger.Nop()), 80, 24)

	if err := os.WriteFile(path, []byte("windows: [\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	a.Update(ConfigChangedMsg{})
	if !a.state.StatusErr {
		t.Fatalf("expected reload error in status")
	}
	if got := a.mgr.Snapshot().Len(); got != 2 {
		t.Fatalf("expected windows untouched, got %d", got)
	}
}

func TestWindowsList_FollowsRegistry(t *testing.T) {
	a := newApp(t, 80, 24)

	a.Update(keyMsg("tab"))
	a.Update(keyMsg("n"))

	view := a.View()
	want := fmt.Sprintf("3 windows  v%d", a.mgr.Registry().Version())
	if !strings.Contains(view, want) {
		t.Fatalf("expected %q in view:\n%s", want, view)
	}
	if !strings.Contains(view, " 3 Note 1") {
		t.Fatalf("expected new note listed on top:\n%s", view)
	}
}

func TestClose_DropsListSubscription(t *testing.T) {
	a := newApp(t, 80, 24)
	if _, ok := a.unsubs["windows"]; !ok {
		t.Fatalf("expected windows list to be subscribed")
	}

	if err := a.container.Close("windows"); err != nil {
		t.Fatalf("close: %v", err)
	}
	if _, ok := a.unsubs["windows"]; ok {
		t.Fatalf("expected subscription to be dropped")
	}
}

func TestCycleWindow(t *testing.T) {
	ids := []string{"a", "b", "c"}
	if got := CycleWindow(ids, "c", false); got != "a" {
		t.Fatalf("expected wrap to a, got %q", got)
	}
	if got := CycleWindow(ids, "a", true); got != "c" {
		t.Fatalf("expected wrap to c, got %q", got)
	}
	if got := CycleWindow(nil, "a", false); got != "" {
		t.Fatalf("expected empty, got %q", got)
	}
}
