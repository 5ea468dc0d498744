package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the chrome bindings handled by the TUI itself. Everything else
// is forwarded to the command engine.
type KeyMap struct {
	Quit      key.Binding
	Help      key.Binding
	PanLeft   key.Binding
	PanRight  key.Binding
	PanUp     key.Binding
	PanDown   key.Binding
	ZoomIn    key.Binding
	ZoomOut   key.Binding
	TempoUp   key.Binding
	TempoDown key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		PanLeft:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "pan left")),
		PanRight:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "pan right")),
		PanUp:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "pan up")),
		PanDown:   key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "pan down")),
		ZoomIn:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "zoom in")),
		ZoomOut:   key.NewBinding(key.WithKeys("["), key.WithHelp("[", "zoom out")),
		TempoUp:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "tempo up")),
		TempoDown: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "tempo down")),
	}
}
