package ui

import "github.com/charmbracelet/lipgloss"

// Styles holds all the lipgloss styles for the desktop
type Styles struct {
	// Desktop background
	Desktop lipgloss.Style

	// Window chrome
	TitleFocused    lipgloss.Style
	TitleUnfocused  lipgloss.Style
	BorderFocused   lipgloss.Style
	BorderUnfocused lipgloss.Style
	Body            lipgloss.Style

	// Taskbar
	Taskbar          lipgloss.Style
	TaskbarFocused   lipgloss.Style
	TaskbarMinimized lipgloss.Style

	// General
	Muted lipgloss.Style
	Bold  lipgloss.Style
	Error lipgloss.Style
}

// NewStyles creates a new Styles instance with the given colors
func NewStyles(c Colors) Styles {
	return Styles{
		Desktop: lipgloss.NewStyle().
			Background(c.Desktop),

		TitleFocused: lipgloss.NewStyle().
			Background(c.TitleFocused).
			Foreground(c.TitleText).
			Bold(true),
		TitleUnfocused: lipgloss.NewStyle().
			Background(c.TitleUnfocused).
			Foreground(c.Text),
		BorderFocused: lipgloss.NewStyle().
			Foreground(c.BorderFocused),
		BorderUnfocused: lipgloss.NewStyle().
			Foreground(c.BorderUnfocused),
		Body: lipgloss.NewStyle().
			Foreground(c.Text),

		Taskbar: lipgloss.NewStyle().
			Background(c.Taskbar).
			Foreground(c.Text),
		TaskbarFocused: lipgloss.NewStyle().
			Background(c.Taskbar).
			Foreground(c.TitleFocused).
			Bold(true),
		TaskbarMinimized: lipgloss.NewStyle().
			Background(c.Taskbar).
			Foreground(c.Muted).
			Italic(true),

		Muted: lipgloss.NewStyle().
			Foreground(c.Muted),
		Bold: lipgloss.NewStyle().
			Bold(true),
		Error: lipgloss.NewStyle().
			Background(c.Taskbar).
			Foreground(c.Error).
			Bold(true),
	}
}

// DefaultStyles returns styles with the default color palette
var DefaultStyles = NewStyles(DefaultColors)
