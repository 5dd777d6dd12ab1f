// Package replay shows a finished battle's event log at a readable pace
package replay

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nathanieltooley/duelcore/battle"
)

var (
	NextKey = key.NewBinding(
		key.WithKeys(" ", "right", "n"),
	)
	PauseKey = key.NewBinding(
		key.WithKeys("p"),
	)
	AllKey = key.NewBinding(
		key.WithKeys("end", "G"),
	)
	QuitKey = key.NewBinding(
		key.WithKeys("q", "esc", "ctrl+c"),
	)
)

type tickMsg time.Time

func tick(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model reveals one event per tick, or per key press when paused
type Model struct {
	events []battle.Event
	shown  int
	delay  time.Duration
	paused bool

	viewport viewport.Model
	width    int
	height   int
	ready    bool
}

// New makes a viewer for events. A delay of zero starts paused.
func New(events []battle.Event, delay time.Duration) Model {
	return Model{
		events: events,
		delay:  delay,
		paused: delay <= 0,
	}
}

// Run plays events in the terminal until the user quits
func Run(events []battle.Event, delay time.Duration) error {
	_, err := tea.NewProgram(New(events, delay), tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	if m.paused {
		return nil
	}
	return tick(m.delay)
}

func (m Model) Done() bool {
	return m.shown >= len(m.events)
}

func (m Model) Shown() int {
	return m.shown
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		// one line for the status bar
		vpHeight := max(msg.Height-1, 1)

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}
		m.height = msg.Height
		m.refresh(true)

	case tickMsg:
		if m.paused || m.Done() {
			return m, nil
		}
		m = m.reveal(1)
		if m.Done() {
			return m, nil
		}
		return m, tick(m.delay)

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, QuitKey):
			return m, tea.Quit
		case key.Matches(msg, NextKey):
			return m.reveal(1), nil
		case key.Matches(msg, AllKey):
			return m.reveal(len(m.events)), nil
		case key.Matches(msg, PauseKey):
			if m.delay <= 0 || m.Done() {
				return m, nil
			}
			m.paused = !m.paused
			if !m.paused {
				return m, tick(m.delay)
			}
			return m, nil
		}

		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) reveal(n int) Model {
	if m.Done() {
		return m
	}

	follow := !m.ready || m.viewport.AtBottom()
	m.shown = min(m.shown+n, len(m.events))
	m.refresh(follow)

	return m
}

func (m *Model) refresh(follow bool) {
	if !m.ready {
		return
	}

	m.viewport.SetContent(render(m.events[:m.shown], m.width))
	if follow {
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + statusLine(m.shown, len(m.events), m.paused, m.width)
}

func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithKeys("up", "k")),
		Down:         key.NewBinding(key.WithKeys("down", "j")),
	}
}

func render(events []battle.Event, width int) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, renderEvent(e, width))
	}
	return strings.Join(lines, "\n")
}

// Print writes the whole log at once, wrapped to width
func Print(w io.Writer, events []battle.Event, width int) error {
	if len(events) == 0 {
		return nil
	}

	_, err := io.WriteString(w, render(events, width)+"\n")
	return err
}
