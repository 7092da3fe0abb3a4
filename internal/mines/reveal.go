package mines

import (
	"github.com/sirupsen/logrus"
)

type Outcome int8

const (
	OutOfBounds Outcome = iota
	AlreadyRevealed
	GameOver
	Ignored // chord on a tile it does not apply to
	Mine
	Empty
	Numbered
)

func (o Outcome) String() string {
	switch o {
	case OutOfBounds:
		return "out_of_bounds"
	case AlreadyRevealed:
		return "already_revealed"
	case GameOver:
		return "game_over"
	case Ignored:
		return "ignored"
	case Mine:
		return "mine"
	case Empty:
		return "empty"
	case Numbered:
		return "numbered"
	default:
		return "unknown"
	}
}

func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

type RevealResult struct {
	Outcome Outcome `json:"outcome"`
	// Unflagged is set when a flag had to be lifted before revealing.
	Unflagged bool `json:"unflagged,omitempty"`
	// Forgiven is set when the first reveal of the game hit a mine and the
	// mine was removed instead of ending the game.
	Forgiven bool `json:"forgiven,omitempty"`
	// Revealed lists every tile opened by the action in the order opened.
	Revealed []Point `json:"revealed"`
}

func (r RevealResult) Loss() bool {
	return r.Outcome == Mine
}

func (r RevealResult) Safe() bool {
	return r.Outcome == Empty || r.Outcome == Numbered
}

// Reveal opens (x, y). A flagged tile is unflagged first. Hitting a mine
// ends the game unless it is the first reveal of the game, in which case
// the mine is removed. An empty tile cascades to its whole empty region and
// the numbered tiles bordering it.
func (e *Engine) Reveal(x, y int) RevealResult {
	if !e.inBounds(x, y) {
		return RevealResult{Outcome: OutOfBounds}
	}
	if e.Over() {
		return RevealResult{Outcome: GameOver}
	}
	if e.pending {
		if err := e.place(x, y); err != nil {
			Log.WithError(err).Error("unable to place deferred field")
			return RevealResult{Outcome: OutOfBounds}
		}
	}

	t := e.grid.at(x, y)
	if t.revealed {
		return RevealResult{Outcome: AlreadyRevealed}
	}

	var res RevealResult
	if t.flagged {
		e.toggleFlag(t)
		res.Unflagged = true
	}

	first := e.firstClick
	e.firstClick = false

	if t.reveal() {
		if !first {
			e.dead = true
			res.Outcome = Mine
			res.Revealed = []Point{{x, y}}
			Log.WithFields(logrus.Fields{"x": x, "y": y}).Debug("mine hit")
			return res
		}
		e.forgive(x, y)
		res.Forgiven = true
	}

	res.Revealed = e.cascade(x, y)
	res.Outcome = iif(t.IsEmpty(), Empty, Numbered)
	e.updateWon()
	return res
}

// forgive removes the mine at (x, y) after a first-click hit.
func (e *Engine) forgive(x, y int) {
	e.grid.removeMine(x, y)
	e.counters.TotalMines--
	Log.WithFields(logrus.Fields{
		"x": x, "y": y, "mines": e.counters.TotalMines,
	}).Debug("forgave first click on a mine")
}

// cascade opens the empty region around an already revealed (x, y). It
// uses an explicit stack; a tile is marked revealed before it is pushed so
// it is never visited twice.
func (e *Engine) cascade(x, y int) []Point {
	opened := []Point{{x, y}}
	if !e.grid.at(x, y).IsEmpty() {
		return opened
	}
	stack := []Point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		e.grid.neighbours(p.X, p.Y, func(nx, ny int) {
			n := e.grid.at(nx, ny)
			if n.revealed {
				return
			}
			if n.flagged {
				e.toggleFlag(n)
			}
			n.reveal()
			opened = append(opened, Point{nx, ny})
			if n.IsEmpty() {
				stack = append(stack, Point{nx, ny})
			}
		})
	}
	return opened
}

// Chord reveals every unflagged neighbour of a revealed numbered tile once
// as many neighbours are flagged as it has adjacent mines. It stops at the
// first mine hit.
func (e *Engine) Chord(x, y int) RevealResult {
	if !e.inBounds(x, y) {
		return RevealResult{Outcome: OutOfBounds}
	}
	if e.Over() {
		return RevealResult{Outcome: GameOver}
	}
	t := e.grid.at(x, y)
	if !t.revealed || t.mine || t.adjacent == 0 {
		return RevealResult{Outcome: Ignored}
	}

	var (
		flags   int
		targets []Point
	)
	e.grid.neighbours(x, y, func(nx, ny int) {
		n := e.grid.at(nx, ny)
		switch {
		case n.flagged:
			flags++
		case !n.revealed:
			targets = append(targets, Point{nx, ny})
		}
	})
	if flags != t.adjacent {
		return RevealResult{Outcome: Ignored}
	}

	res := RevealResult{Outcome: Numbered}
	for _, p := range targets {
		r := e.Reveal(p.X, p.Y)
		res.Revealed = append(res.Revealed, r.Revealed...)
		if r.Loss() {
			res.Outcome = Mine
			break
		}
		if e.Over() {
			break
		}
	}
	return res
}
