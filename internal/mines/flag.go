package mines

type FlagResult struct {
	// Changed is false when the toggle was a no-op.
	Changed bool `json:"changed"`
	Flagged bool `json:"flagged"`
}

// ToggleFlag flips the flag on an unrevealed tile. Out of bounds and
// revealed tiles are left alone.
func (e *Engine) ToggleFlag(x, y int) FlagResult {
	if !e.inBounds(x, y) || e.Over() {
		return FlagResult{}
	}
	t := e.grid.at(x, y)
	if t.revealed {
		return FlagResult{Flagged: t.flagged}
	}
	e.toggleFlag(t)
	e.updateWon()
	return FlagResult{Changed: true, Flagged: t.flagged}
}

func (e *Engine) toggleFlag(t *Tile) {
	t.toggleFlag()
	d := iif(t.flagged, 1, -1)
	e.counters.TotalFlags += d
	if t.mine {
		e.counters.FlaggedMines += d
	}
}

// CheckWin reports whether every remaining mine is flagged and no safe
// tile is. It does not look at revealed tiles.
func (e *Engine) CheckWin() bool {
	if e.grid == nil || e.pending {
		return false
	}
	return e.counters.Won()
}

func (e *Engine) updateWon() {
	if !e.dead && e.CheckWin() {
		e.won = true
	}
}
