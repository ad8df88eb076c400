package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Desktop != Default.Desktop {
		t.Fatalf("expected default desktop, got %+v", cfg.Desktop)
	}
	if len(cfg.Windows) != len(Default.Windows) {
		t.Fatalf("expected %d default windows, got %d", len(Default.Windows), len(cfg.Windows))
	}

	cfg.Windows[0].Name = "changed"
	if Default.Windows[0].Name == "changed" {
		t.Fatalf("Load must not alias the default window list")
	}
}

func TestLoad_OverridesOnTopOfDefaults(t *testing.T) {
	path := writeConfig(t, `
desktop:
  window_width: 30
windows:
  - id: todo
    name: Todo
    body: "- ship it"
    x: 4
    y: 2
    fullscreen: true
    closable: false
colors:
  desktop: "#000000"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Desktop.WindowWidth != 30 || cfg.Desktop.WindowHeight != Default.Desktop.WindowHeight {
		t.Fatalf("expected width override only, got %+v", cfg.Desktop)
	}
	if len(cfg.Windows) != 1 {
		t.Fatalf("expected window list to be replaced, got %d windows", len(cfg.Windows))
	}
	w := cfg.Windows[0]
	if w.ID != "todo" || w.X != 4 || w.Y != 2 || w.FullScreen == nil || !*w.FullScreen {
		t.Fatalf("unexpected window %+v", w)
	}
	if w.IsClosable() {
		t.Fatalf("expected closable: false to be honoured")
	}
	if w.Open != nil {
		t.Fatalf("expected unset open to stay nil")
	}
	if cfg.Colors.Desktop != "#000000" || cfg.Colors.Text != Default.Colors.Text {
		t.Fatalf("unexpected colors %+v", cfg.Colors)
	}

	width, height := cfg.WindowSize(w)
	if width != 30 || height != Default.Desktop.WindowHeight {
		t.Fatalf("expected fallback size 30x%d, got %dx%d", Default.Desktop.WindowHeight, width, height)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"tiny window", "desktop:\n  window_width: 2\n"},
		{"missing name", "windows:\n  - id: a\n"},
		{"duplicate id", "windows:\n  - {id: a, name: A}\n  - {id: a, name: B}\n"},
		{"unknown kind", "windows:\n  - {name: A, kind: browser}\n"},
		{"negative size", "windows:\n  - {name: A, width: -1}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "windows: [\n"))
	if err == nil {
		t.Fatalf("expected parse error")
	}
	if errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("parse errors are not validation errors: %v", err)
	}
}
