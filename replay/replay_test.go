package replay

import (
	"bytes"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/duelcore/battle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEvents() []battle.Event {
	return []battle.Event{
		{Seq: 0, Turn: 1, Kind: battle.EVENT_TURN, Side: battle.SIDE_NONE, Slot: -1, Text: "Turn 1"},
		{Seq: 1, Turn: 1, Kind: battle.EVENT_MOVE, Side: battle.SIDE_A, Text: "Dragonite used Extreme Speed!"},
		{Seq: 2, Turn: 1, Kind: battle.EVENT_DAMAGE, Side: battle.SIDE_B, Amount: 60, Text: "Corviknight lost 60 HP"},
		{Seq: 3, Turn: 1, Kind: battle.EVENT_FAINT, Side: battle.SIDE_B, Text: "Corviknight fainted!"},
		{Seq: 4, Turn: 1, Kind: battle.EVENT_BATTLE_END, Side: battle.SIDE_NONE, Slot: -1, Text: "Team A won the battle!"},
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()

	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "end":
		return tea.KeyMsg{Type: tea.KeyEnd}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTicksRevealEvents(t *testing.T) {
	m := New(sampleEvents(), 10*time.Millisecond)
	require.NotNil(t, m.Init())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})
	assert.Equal(t, 0, m.Shown())

	for i := 1; i < len(sampleEvents()); i++ {
		var cmd tea.Cmd
		m, cmd = update(t, m, tickMsg(time.Now()))
		assert.Equal(t, i, m.Shown())
		assert.NotNil(t, cmd, "keeps ticking")
	}

	m, cmd := update(t, m, tickMsg(time.Now()))
	assert.True(t, m.Done())
	assert.Nil(t, cmd, "stops once everything is shown")

	view := m.View()
	assert.Contains(t, view, "Corviknight fainted!")
	assert.Contains(t, view, "Team A won the battle!")
}

func TestKeysRevealEvents(t *testing.T) {
	m := New(sampleEvents(), 0)
	assert.Nil(t, m.Init(), "no delay starts paused")

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, 0, m.Shown(), "ticks do nothing while paused")

	m, _ = update(t, m, keyPress(" "))
	m, _ = update(t, m, keyPress("n"))
	assert.Equal(t, 2, m.Shown())
	assert.Contains(t, m.View(), "Dragonite used Extreme Speed!")
	assert.NotContains(t, m.View(), "Corviknight lost 60 HP")

	m, _ = update(t, m, keyPress("end"))
	assert.True(t, m.Done())

	m, _ = update(t, m, keyPress(" "))
	assert.Equal(t, len(sampleEvents()), m.Shown())
}

func TestPauseToggles(t *testing.T) {
	m := New(sampleEvents(), time.Second)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 20})

	m, cmd := update(t, m, keyPress("p"))
	assert.Nil(t, cmd)
	assert.Contains(t, m.View(), "paused")

	m, _ = update(t, m, tickMsg(time.Now()))
	assert.Equal(t, 0, m.Shown())

	m, cmd = update(t, m, keyPress("p"))
	assert.NotNil(t, cmd, "resuming schedules the next tick")
	assert.Contains(t, m.View(), "playing")
}

func TestQuit(t *testing.T) {
	m := New(sampleEvents(), time.Second)

	for _, k := range []string{"q", "esc"} {
		_, cmd := update(t, m, keyPress(k))
		require.NotNil(t, cmd, k)
		assert.Equal(t, tea.Quit(), cmd(), k)
	}
}

func TestViewBeforeResize(t *testing.T) {
	m := New(sampleEvents(), 0)
	m, _ = update(t, m, keyPress(" "))

	assert.Equal(t, 1, m.Shown())
	assert.Equal(t, "Loading...", m.View())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 10})
	assert.Contains(t, m.View(), "Turn 1")
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, sampleEvents(), 80))

	text := out.String()
	for _, e := range sampleEvents() {
		assert.Contains(t, text, e.Text)
	}
	assert.Less(t, strings.Index(text, "Dragonite used"), strings.Index(text, "Corviknight fainted!"))
	assert.Contains(t, text, "[A]")
	assert.Contains(t, text, "[B]")
}

func TestPrintWraps(t *testing.T) {
	long := battle.Event{Kind: battle.EVENT_MESSAGE, Side: battle.SIDE_A, Text: strings.Repeat("word ", 40)}

	var out bytes.Buffer
	require.NoError(t, Print(&out, []battle.Event{long}, 40))

	for _, line := range strings.Split(strings.TrimRight(out.String(), "\n"), "\n") {
		assert.LessOrEqual(t, lipgloss.Width(line), 40)
	}
}

func TestPrintNothing(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, nil, 80))
	assert.Empty(t, out.String())
}

func TestStylesCoverEveryKind(t *testing.T) {
	for kind := battle.EVENT_MESSAGE; kind <= battle.EVENT_BATTLE_END; kind++ {
		rendered := renderEvent(battle.Event{Kind: kind, Side: battle.SIDE_NONE, Text: kind.String()}, 0)
		assert.Contains(t, rendered, kind.String())
	}
}
