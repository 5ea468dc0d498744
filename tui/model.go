package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"notefield/config"
	"notefield/editor"
	"notefield/engine"
	"notefield/theme"
	"notefield/widgets"
)

const frameRate = 30

// layoutBounds holds cached layout info for pointer hit testing.
type layoutBounds struct {
	canvasTop int
}

type Model struct {
	Runner *engine.Runner
	Editor *editor.Editor
	Theme  *theme.Theme
	Config *config.Config

	keys     KeyMap
	help     *widgets.CommandHelp
	showHelp bool
	quitting bool
	bounds   *layoutBounds
	start    time.Time
}

type frameMsg time.Time

type clockMsg time.Time

func NewModel(r *engine.Runner, ed *editor.Editor, th *theme.Theme, cfg *config.Config) Model {
	return Model{
		Runner: r,
		Editor: ed,
		Theme:  th,
		Config: cfg,
		keys:   DefaultKeyMap(),
		help:   widgets.NewCommandHelp(th.Accent(), th.FG()),
		bounds: &layoutBounds{},
		start:  time.Now(),
	}
}

func frameTick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func clockTick(resolution float64) tea.Cmd {
	return tea.Tick(time.Duration(resolution*float64(time.Second)), func(t time.Time) tea.Msg {
		return clockMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameTick(), clockTick(m.Config.Resolution))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v := m.Editor.Viewport()
		if msg.Width > 4 {
			v.Cols = msg.Width - 2
		}
		if msg.Height > 8 {
			v.Rows = msg.Height - 6
		}

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		m.handleMouse(msg)

	case frameMsg:
		m.Runner.Dispatch(engine.Event{
			Hook: engine.FrameTick,
			Pos:  m.Editor.Pointer(),
			Time: m.now(),
		})
		return m, frameTick()

	case clockMsg:
		m.Editor.TickAudio()
		return m, clockTick(m.Config.Resolution)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	v := m.Editor.Viewport()
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		if m.Editor.Playing() {
			m.Editor.TogglePlayback()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp

	case key.Matches(msg, m.keys.PanLeft):
		v.Pan(-4, 0)
	case key.Matches(msg, m.keys.PanRight):
		v.Pan(4, 0)
	case key.Matches(msg, m.keys.PanUp):
		v.Pan(0, 2)
	case key.Matches(msg, m.keys.PanDown):
		v.Pan(0, -2)
	case key.Matches(msg, m.keys.ZoomIn):
		v.Zoom(true)
	case key.Matches(msg, m.keys.ZoomOut):
		v.Zoom(false)

	case key.Matches(msg, m.keys.TempoUp):
		m.Editor.Tempo = clampTempo(m.Editor.Tempo + 5)
	case key.Matches(msg, m.keys.TempoDown):
		m.Editor.Tempo = clampTempo(m.Editor.Tempo - 5)

	default:
		if code := keyCode(msg); code != 0 {
			m.Runner.Dispatch(engine.Event{
				Hook: engine.KeyDown,
				Key:  code,
				Pos:  m.Editor.Pointer(),
				Time: m.now(),
			})
		}
	}
	return m, nil
}

// handleMouse mirrors pointer state into the editor and forwards presses and
// releases to the engine. Terminals report no key releases, so KeyUp is never
// dispatched from here; commands are written against presses and pointer
// transitions instead.
func (m Model) handleMouse(msg tea.MouseMsg) {
	pos := engine.Point{X: msg.X, Y: msg.Y - m.bounds.canvasTop}
	m.Editor.SetShift(msg.Shift)
	m.Editor.SetPointer(pos)

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.Editor.Viewport().Pan(0, 1)
		return
	case tea.MouseButtonWheelDown:
		m.Editor.Viewport().Pan(0, -1)
		return
	}

	ev := engine.Event{Pos: pos, Time: m.now()}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			ev.Hook = engine.PointerDown
			m.Runner.Dispatch(ev)
		}
	case tea.MouseActionRelease:
		ev.Hook = engine.PointerUp
		m.Runner.Dispatch(ev)
	}
}

// keyCode maps a terminal key press onto the engine's key-code vocabulary.
// Printable keys use their rune value.
func keyCode(msg tea.KeyMsg) int {
	switch msg.Type {
	case tea.KeyRunes:
		if len(msg.Runes) == 1 {
			return int(msg.Runes[0])
		}
	case tea.KeySpace:
		return editor.KeySpace
	case tea.KeyBackspace, tea.KeyDelete:
		return editor.KeyBackspace
	case tea.KeyEscape:
		return editor.KeyEscape
	}
	return 0
}

func clampTempo(bpm int) int {
	if bpm < 20 {
		return 20
	}
	if bpm > 300 {
		return 300
	}
	return bpm
}

func (m Model) now() float64 {
	return time.Since(m.start).Seconds()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	headerStyle := lipgloss.NewStyle().Foreground(m.Theme.Accent())
	dimStyle := lipgloss.NewStyle().Foreground(m.Theme.Muted())
	statusStyle := lipgloss.NewStyle().Foreground(m.Theme.FG())

	playState := "STOP"
	if m.Editor.Playing() {
		playState = "PLAY"
	}
	grid := fmt.Sprintf("grid:%g", m.Editor.TimeGrid)
	if step := m.Editor.PitchGrid(); step != nil {
		grid += " pitch:" + step.RatString()
	}
	doc := m.Editor.DocName()
	if doc == "" {
		doc = "untitled"
	}
	if m.Editor.Dirty() {
		doc += "*"
	}
	header := headerStyle.Render(fmt.Sprintf("notefield  %s  %3dbpm  %s  sel:%d  %s",
		playState, m.Editor.Tempo, grid, m.Editor.SelectionCount(), doc))

	var body string
	if m.showHelp {
		body = m.help.View(m.Runner.Listing())
	} else {
		body = m.Editor.View(m.Theme)
	}

	helpLine := dimStyle.Render("drag:draw  shift-drag:select  d:dup  g:grid  y/p:yank/paste  space:play  w:write  ?:help  q:quit")

	headerHeight := lipgloss.Height(header)
	m.bounds.canvasTop = headerHeight + 1

	var out strings.Builder
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(body)
	out.WriteString("\n\n")
	out.WriteString(helpLine)

	if status := m.Editor.Status(); status != "" {
		out.WriteString("\n")
		out.WriteString(statusStyle.Render(status))
	}

	return out.String()
}
