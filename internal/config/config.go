package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Window body kinds
const (
	KindText    = "text"
	KindWindows = "windows"
	KindHelp    = "help"
)

// Config holds all application configuration
type Config struct {
	Desktop DesktopConfig  `yaml:"desktop"`
	Windows []WindowConfig `yaml:"windows"`
	Colors  ColorConfig    `yaml:"colors"`
}

// DesktopConfig holds container-wide settings
type DesktopConfig struct {
	WindowWidth  int `yaml:"window_width"` // size assumed for windows without one
	WindowHeight int `yaml:"window_height"`
	CompactWidth int `yaml:"compact_width"` // below this, windows open fullscreen
}

// WindowConfig describes one window opened at startup
type WindowConfig struct {
	ID         string `yaml:"id"`
	Name       string `yaml:"name"`
	Kind       string `yaml:"kind"`
	Body       string `yaml:"body"`
	X          int    `yaml:"x"`
	Y          int    `yaml:"y"`
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Open       *bool  `yaml:"open"`
	FullScreen *bool  `yaml:"fullscreen"`
	Closable   *bool  `yaml:"closable"`
}

// IsClosable reports whether the window gets a close button (default true)
func (w WindowConfig) IsClosable() bool {
	return w.Closable == nil || *w.Closable
}

// ColorConfig holds color definitions
type ColorConfig struct {
	Desktop         string `yaml:"desktop"`
	TitleFocused    string `yaml:"title_focused"`
	TitleUnfocused  string `yaml:"title_unfocused"`
	TitleText       string `yaml:"title_text"`
	BorderFocused   string `yaml:"border_focused"`
	BorderUnfocused string `yaml:"border_unfocused"`
	Text            string `yaml:"text"`
	Muted           string `yaml:"muted"`
	Taskbar         string `yaml:"taskbar"`
	Error           string `yaml:"error"`
}

// ErrInvalidConfig is returned when a loaded config fails validation
var ErrInvalidConfig = errors.New("invalid config")

// Default returns the default configuration
var Default = Config{
	Desktop: DesktopConfig{
		WindowWidth:  40,
		WindowHeight: 12,
		CompactWidth: 60,
	},
	Windows: []WindowConfig{
		{
			ID:   "welcome",
			Name: "Welcome",
			Kind: KindText,
			Body: "Drag windows by their title bar.\nClick anywhere on a window to raise it.\n\n[_] minimize  [^] fullscreen  [x] close\n\nPress ? for keys.",
			X:    2,
			Y:    1,
		},
		{
			ID:     "windows",
			Name:   "Windows",
			Kind:   KindWindows,
			X:      46,
			Y:      4,
			Width:  34,
			Height: 10,
		},
	},
	Colors: ColorConfig{
		Desktop:         "#1e1e2e",
		TitleFocused:    "#89b4fa",
		TitleUnfocused:  "#45475a",
		TitleText:       "#11111b",
		BorderFocused:   "#89b4fa",
		BorderUnfocused: "#585b70",
		Text:            "#cdd6f4",
		Muted:           "#6c7086",
		Taskbar:         "#313244",
		Error:           "#f38ba8",
	},
}

// DefaultPath returns ~/.config/windesk/config.yaml
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "windesk", "config.yaml"), nil
}

// Load reads the config at path on top of the defaults.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := clone(Default)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Validate checks sizes and window entries
func (c *Config) Validate() error {
	if c.Desktop.WindowWidth < 8 || c.Desktop.WindowHeight < 3 {
		return fmt.Errorf("%w: desktop window size %dx%d is below 8x3",
			ErrInvalidConfig, c.Desktop.WindowWidth, c.Desktop.WindowHeight)
	}
	if c.Desktop.CompactWidth < 0 {
		return fmt.Errorf("%w: compact_width must not be negative", ErrInvalidConfig)
	}

	ids := make(map[string]bool)
	for i, w := range c.Windows {
		if w.Name == "" {
			return fmt.Errorf("%w: windows[%d] has no name", ErrInvalidConfig, i)
		}
		if w.ID != "" {
			if ids[w.ID] {
				return fmt.Errorf("%w: duplicate window id %q", ErrInvalidConfig, w.ID)
			}
			ids[w.ID] = true
		}
		switch w.Kind {
		case "", KindText, KindWindows, KindHelp:
		default:
			return fmt.Errorf("%w: windows[%d] has unknown kind %q", ErrInvalidConfig, i, w.Kind)
		}
		if w.Width < 0 || w.Height < 0 {
			return fmt.Errorf("%w: windows[%d] has a negative size", ErrInvalidConfig, i)
		}
	}
	return nil
}

// WindowSize returns the size of w, falling back to the desktop default
func (c *Config) WindowSize(w WindowConfig) (int, int) {
	width, height := w.Width, w.Height
	if width == 0 {
		width = c.Desktop.WindowWidth
	}
	if height == 0 {
		height = c.Desktop.WindowHeight
	}
	return width, height
}

func clone(c Config) Config {
	out := c
	out.Windows = make([]WindowConfig, len(c.Windows))
	copy(out.Windows, c.Windows)
	return out
}
