package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Model is the Bubble Tea model of a single player game.
type Model struct {
	engine *mines.Engine
	params mines.GameParams
	x, y   int
	status string
}

// NewModel starts a game with p on e.
func NewModel(e *mines.Engine, p mines.GameParams) (Model, error) {
	if err := e.Build(p); err != nil {
		return Model{}, err
	}
	return Model{
		engine: e,
		params: p,
		x:      p.Width / 2,
		y:      p.Height / 2,
	}, nil
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "up", "k":
		m.y = max(m.y-1, 0)
	case "down", "j":
		m.y = min(m.y+1, m.params.Height-1)
	case "left", "h":
		m.x = max(m.x-1, 0)
	case "right", "l":
		m.x = min(m.x+1, m.params.Width-1)
	case " ", "enter":
		m.status = m.afterReveal(m.engine.Reveal(m.x, m.y))
	case "c":
		m.status = m.afterReveal(m.engine.Chord(m.x, m.y))
	case "f":
		m.engine.ToggleFlag(m.x, m.y)
		m.status = ""
	case "n":
		if err := m.engine.Build(m.params); err != nil {
			m.status = err.Error()
			return m, nil
		}
		m.status = ""
	}
	return m, nil
}

func (m Model) afterReveal(res mines.RevealResult) string {
	switch {
	case res.Loss():
		m.engine.RevealAll()
		return ""
	case res.Forgiven:
		return "lucky! that was a mine"
	case res.Unflagged:
		return "flag removed"
	}
	return ""
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(HeaderStyle.Render(fmt.Sprintf(
		"mines %dx%d", m.params.Width, m.params.Height,
	)))
	b.WriteString("\n\n")

	for y := range m.params.Height {
		for x := range m.params.Width {
			v, _ := m.engine.TileView(x, y)
			cell := " " + v.Symbol + " "
			if x == m.x && y == m.y {
				b.WriteString(CursorStyle.Render(cell))
			} else {
				b.WriteString(tileStyle(v).Render(cell))
			}
		}
		b.WriteByte('\n')
	}
	b.WriteByte('\n')

	b.WriteString(fmt.Sprintf("mines left: %d", m.engine.RemainingMines()))
	switch {
	case m.engine.Won():
		b.WriteString("  " + SuccessStyle.Render("you won!"))
	case m.engine.Dead():
		b.WriteString("  " + ErrorStyle.Render("boom! game over"))
	case m.status != "":
		b.WriteString("  " + m.status)
	}
	b.WriteByte('\n')
	b.WriteString(InfoStyle.Render(
		"arrows/hjkl move · space reveal · f flag · c chord · n new · q quit",
	))
	b.WriteByte('\n')
	return b.String()
}
