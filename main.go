package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kmacinski/windesk/internal/app"
	"github.com/kmacinski/windesk/internal/config"
	"github.com/kmacinski/windesk/internal/logger"
	"github.com/rs/zerolog"
)

var (
	version = "dev"
)

func main() {
	// Parse flags
	var (
		showVersion bool
		showHelp    bool
		debug       bool
		configPath  string
		logPath     string
	)

	flag.BoolVar(&showVersion, "v", false, "Show version")
	flag.BoolVar(&showVersion, "version", false, "Show version")
	flag.BoolVar(&showHelp, "h", false, "Show help")
	flag.BoolVar(&showHelp, "help", false, "Show help")
	flag.BoolVar(&debug, "debug", false, "Log registry events")
	flag.StringVar(&configPath, "c", "", "Config file")
	flag.StringVar(&configPath, "config", "", "Config file")
	flag.StringVar(&logPath, "log", "", "Log file")
	flag.Parse()

	if showVersion {
		fmt.Printf("windesk %s\n", version)
		os.Exit(0)
	}

	if showHelp {
		printHelp()
		os.Exit(0)
	}

	if configPath == "" {
		p, err := config.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		configPath = p
	}
	if logPath == "" {
		p, err := logger.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logPath = p
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	log, err := logger.New(logger.WithFile(logPath), logger.WithLevel(level))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Error("failed to load config", err, "path", configPath)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Close()
		os.Exit(1)
	}
	log.Info("starting", "version", version, "config", configPath)

	// Create and run app
	application := app.New(cfg, configPath, log)

	p := tea.NewProgram(
		application,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	application.SetProgram(p)

	_, err = p.Run()
	application.Cleanup()
	if err != nil {
		log.Error("program exited", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Close()
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println(`windesk - floating windows in the terminal

A desktop of draggable, stackable windows with a taskbar.

Usage:
  windesk [flags]

Flags:
  -c, --config      Config file (default: ~/.config/windesk/config.yaml)
      --log         Log file (default: ~/.local/state/windesk/windesk.log)
      --debug       Log every registry event
  -h, --help        Show help
  -v, --version     Show version

Mouse:
  Drag title bar    Move window
  Click window      Raise window
  [_] [^] [x]       Minimize, fullscreen, close
  Click taskbar     Raise or restore window

Keybindings:
  Tab / S-Tab       Raise next / previous window
  h/j/k/l, arrows   Move top window
  f                 Toggle fullscreen
  m                 Minimize
  x                 Close
  r                 Restore all
  n                 New note
  y                 Copy layout as YAML
  Esc               Cancel drag
  ?                 Toggle help
  q                 Quit`)
}
