package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/kmacinski/windesk/internal/config"
)

// Colors defines the color palette for the desktop
type Colors struct {
	Desktop         lipgloss.Color
	TitleFocused    lipgloss.Color
	TitleUnfocused  lipgloss.Color
	TitleText       lipgloss.Color
	BorderFocused   lipgloss.Color
	BorderUnfocused lipgloss.Color
	Text            lipgloss.Color
	Muted           lipgloss.Color
	Taskbar         lipgloss.Color
	Error           lipgloss.Color
}

// NewColors converts configured hex colors into a palette
func NewColors(c config.ColorConfig) Colors {
	return Colors{
		Desktop:         lipgloss.Color(c.Desktop),
		TitleFocused:    lipgloss.Color(c.TitleFocused),
		TitleUnfocused:  lipgloss.Color(c.TitleUnfocused),
		TitleText:       lipgloss.Color(c.TitleText),
		BorderFocused:   lipgloss.Color(c.BorderFocused),
		BorderUnfocused: lipgloss.Color(c.BorderUnfocused),
		Text:            lipgloss.Color(c.Text),
		Muted:           lipgloss.Color(c.Muted),
		Taskbar:         lipgloss.Color(c.Taskbar),
		Error:           lipgloss.Color(c.Error),
	}
}

// DefaultColors returns the default color palette
var DefaultColors = NewColors(config.Default.Colors)
