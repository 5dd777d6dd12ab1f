package replay

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/nathanieltooley/duelcore/battle"
)

var (
	sideAColor = lipgloss.Color("33")
	sideBColor = lipgloss.Color("203")

	styleTurn = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)

	styleMessage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	styleDamage = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	styleHeal = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("135"))

	styleStat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	styleField = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Italic(true)

	styleFaint = lipgloss.NewStyle().
			Foreground(lipgloss.Color("160")).
			Bold(true)

	styleQuiet = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleEnd = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true).
			MarginTop(1)

	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)
)

func styleFor(kind battle.EventKind) lipgloss.Style {
	switch kind {
	case battle.EVENT_TURN:
		return styleTurn
	case battle.EVENT_DAMAGE:
		return styleDamage
	case battle.EVENT_HEAL, battle.EVENT_CURE:
		return styleHeal
	case battle.EVENT_STATUS:
		return styleStatus
	case battle.EVENT_STAT:
		return styleStat
	case battle.EVENT_WEATHER, battle.EVENT_FIELD, battle.EVENT_ROOM, battle.EVENT_SCREEN, battle.EVENT_HAZARD:
		return styleField
	case battle.EVENT_FAINT:
		return styleFaint
	case battle.EVENT_MISS, battle.EVENT_FAILED, battle.EVENT_EXPIRE:
		return styleQuiet
	case battle.EVENT_BATTLE_END:
		return styleEnd
	default:
		return styleMessage
	}
}

// sideTag marks which team an event is about
func sideTag(side battle.Side) string {
	switch side {
	case battle.SIDE_A:
		return lipgloss.NewStyle().Foreground(sideAColor).Render("[A]")
	case battle.SIDE_B:
		return lipgloss.NewStyle().Foreground(sideBColor).Render("[B]")
	default:
		return "   "
	}
}

// renderEvent styles one event, wrapped to width when width is positive
func renderEvent(e battle.Event, width int) string {
	if e.Kind == battle.EVENT_TURN {
		return styleTurn.Render(e.Text)
	}

	style := styleFor(e.Kind)
	text := e.Text
	if e.Kind == battle.EVENT_MOVE {
		style = style.Bold(true)
	}

	prefix := sideTag(e.Side) + " "
	if width > 0 {
		// leave room for the tag
		style = style.Width(max(width-lipgloss.Width(prefix), 10))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, prefix, style.Render(text))
}

func statusLine(shown, total int, paused bool, width int) string {
	state := "playing"
	switch {
	case shown >= total:
		state = "done"
	case paused:
		state = "paused"
	}

	text := fmt.Sprintf(" %d/%d events | %s | space: next  p: pause  end: all  q: quit", shown, total, state)
	return styleStatusBar.Width(max(width, lipgloss.Width(text))).Render(text)
}
