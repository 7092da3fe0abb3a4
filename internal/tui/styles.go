package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1)

	HiddenStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	FlagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	MineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	CursorStyle = lipgloss.NewStyle().Reverse(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

// numberColors are indexed by adjacent mine count.
var numberColors = [...]lipgloss.Color{
	"", "#5DADE2", "#58D68D", "#EC7063", "#AF7AC5",
	"#DC7633", "#48C9B0", "#FAFAFA", "#AAB7B8",
}

func tileStyle(v mines.TileView) lipgloss.Style {
	switch v.Symbol {
	case mines.SymbolFlag:
		return FlagStyle
	case mines.SymbolHidden:
		return HiddenStyle
	case mines.SymbolMine:
		return MineStyle
	}
	if n, err := strconv.Atoi(v.Symbol); err == nil && n < len(numberColors) {
		return lipgloss.NewStyle().Foreground(numberColors[n])
	}
	return lipgloss.NewStyle()
}
