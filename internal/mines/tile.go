package mines

import "strconv"

const (
	SymbolFlag   = "^"
	SymbolHidden = "-"
	SymbolMine   = "*"
	SymbolEmpty  = " "
)

// Tile is a single cell of the field. Only the engine mutates tiles; the
// exported methods are read-only.
type Tile struct {
	mine     bool
	flagged  bool
	revealed bool
	adjacent int
}

func (t Tile) HasMine() bool      { return t.mine }
func (t Tile) IsFlagged() bool    { return t.flagged }
func (t Tile) IsRevealed() bool   { return t.revealed }
func (t Tile) AdjacentMines() int { return t.adjacent }

// IsEmpty reports whether the tile is safe and has no mined neighbours.
// Revealing an empty tile cascades.
func (t Tile) IsEmpty() bool {
	return !t.mine && t.adjacent == 0
}

func (t Tile) String() string {
	switch {
	case t.flagged:
		return SymbolFlag
	case !t.revealed:
		return SymbolHidden
	case t.mine:
		return SymbolMine
	case t.adjacent == 0:
		return SymbolEmpty
	default:
		return strconv.Itoa(t.adjacent)
	}
}

// toggleFlag does not look at revealed; callers check it first.
func (t *Tile) toggleFlag() {
	t.flagged = !t.flagged
}

// reveal opens the tile and reports whether it held a mine. Callers check
// revealed first so that counters are not updated twice.
func (t *Tile) reveal() bool {
	t.revealed = true
	return t.mine
}

// A mined tile never displays its count, so it is not tracked.
func (t *Tile) incrementAdjacent() {
	if t.mine {
		return
	}
	t.adjacent++
}

func (t *Tile) decrementAdjacent() {
	if t.mine || t.adjacent == 0 {
		return
	}
	t.adjacent--
}

// clearMine turns a mined tile into a safe one with the given count.
func (t *Tile) clearMine(adjacent int) {
	t.mine = false
	t.adjacent = adjacent
}
