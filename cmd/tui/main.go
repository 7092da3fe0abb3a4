package main

import (
	"fmt"
	"hash/maphash"
	"io"
	"math/rand/v2"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/tui"
)

var CLI struct {
	Width         int    `short:"W" default:"9" help:"Field width"`
	Height        int    `short:"H" default:"9" help:"Field height"`
	Mines         int    `short:"m" default:"10" help:"Number of mines"`
	Seed          uint64 `short:"s" help:"Random seed, 0 picks one"`
	Game          string `short:"g" help:"Game seed (width:height:mines:safe:clear), overrides the size flags"`
	SafeStart     bool   `default:"true" negatable:"" help:"Generate the field around the first reveal"`
	ClearClusters bool   `help:"Remove mines fully surrounded by mines"`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mines"),
		kong.Description("Play minesweeper in the terminal."),
	)

	params := mines.GameParams{
		Width:         CLI.Width,
		Height:        CLI.Height,
		MineCount:     CLI.Mines,
		SafeStart:     CLI.SafeStart,
		ClearClusters: CLI.ClearClusters,
	}
	if CLI.Game != "" {
		p, err := mines.ParseSeed(CLI.Game)
		if err != nil {
			fmt.Printf("Invalid game seed: %v\n", err)
			ctx.Exit(1)
		}
		params = *p
	}

	seed := CLI.Seed
	if seed == 0 {
		seed = new(maphash.Hash).Sum64()
	}
	// the alternate screen owns the terminal
	mines.Log.SetOutput(io.Discard)

	model, err := tui.NewModel(mines.New(rand.New(rand.NewPCG(seed, seed))), params)
	if err != nil {
		fmt.Printf("Invalid game: %v\n", err)
		ctx.Exit(1)
	}

	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		ctx.Exit(1)
	}
}
