package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"notefield/audio"
	"notefield/config"
	"notefield/debug"
	"notefield/editor"
	"notefield/engine"
	"notefield/theme"
	"notefield/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("config: %v\n", err)
		os.Exit(1)
	}
	if cfg.Debug || os.Getenv("NOTEFIELD_DEBUG") != "" {
		if err := debug.Enable(); err != nil {
			fmt.Printf("debug log: %v\n", err)
		}
		defer debug.Disable()
	}

	// Theme
	palette := theme.DefaultPalette()
	if cfg.UI.PalettePath != "" {
		if p, err := theme.LoadGPL(cfg.UI.PalettePath); err == nil {
			palette = p
		} else {
			debug.Warn("theme", "palette %q: %v, using built-in", cfg.UI.PalettePath, err)
		}
	}
	th := theme.New(palette)

	// Audio output
	tuning := audio.DefaultTuning()
	tuning.BendRange = cfg.SynthOutput.BendRange
	player := audio.NewPlayer(tuning)
	if cfg.SynthOutput.PortName != "" {
		player.SetPort(cfg.SynthOutput.PortName)
	} else if ports := audio.OutPorts(); len(ports) > 0 {
		player.SetPort(ports[0])
		debug.Log("audio", "auto-selected port %q", ports[0])
	}

	// Editor session
	clock := audio.NewClock()
	ed := editor.New(player, clock, editor.Options{
		Tempo:      cfg.UI.LastTempo,
		TimeGrid:   cfg.UI.TimeGrid,
		Resolution: cfg.Resolution,
	})
	if cfg.UI.LastDocument != "" {
		if err := ed.OpenDocument(cfg.UI.LastDocument); err != nil {
			debug.Warn("doc", "open %q: %v", cfg.UI.LastDocument, err)
		}
	}

	// Command engine
	runner := engine.NewRunner()
	editor.RegisterCommands(runner, ed)

	// TUI
	m := tui.NewModel(runner, ed, th, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	// Remember session prefs
	cfg.UI.LastTempo = ed.Tempo
	cfg.UI.TimeGrid = ed.TimeGrid
	if ed.DocName() != "" {
		cfg.UI.LastDocument = ed.DocName()
	}
	if err := cfg.Save(); err != nil {
		fmt.Printf("save config: %v\n", err)
	}
}
