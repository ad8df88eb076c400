package window

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/kmacinski/windesk/internal/keys"
	"github.com/mattn/go-runewidth"
)

// Help displays keybinding help
type Help struct {
	Base
	bindings []key.Binding
}

// NewHelp creates a new help window body
func NewHelp(name string) *Help {
	return &Help{
		Base:     NewBase(name),
		bindings: keys.HelpBindings(),
	}
}

// View renders the help content
func (h *Help) View(width, height int) string {
	lines := []string{"Mouse: drag title bar, click to raise", ""}
	for _, b := range h.bindings {
		help := b.Help()
		lines = append(lines, runewidth.FillRight(help.Key, 9)+" "+help.Desc)
	}
	return fit(lines, width, height)
}
