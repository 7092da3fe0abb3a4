package mines

import (
	"github.com/sirupsen/logrus"
)

// Counters track mines and flags over the life of one game. TotalMines
// shrinks when a mine is forgiven or cleared from a dense cluster.
type Counters struct {
	TotalMines   int `json:"total_mines"`
	TotalFlags   int `json:"total_flags"`
	FlaggedMines int `json:"-"`
}

// Won reports whether every remaining mine is flagged and nothing else is.
func (c Counters) Won() bool {
	return c.TotalFlags == c.FlaggedMines && c.FlaggedMines == c.TotalMines
}

// Engine owns one game: the field, the counters and the first-click state.
// It is not safe for concurrent use.
type Engine struct {
	params     GameParams
	grid       *Grid
	rnd        Source
	counters   Counters
	pending    bool // SafeStart field not generated yet
	firstClick bool
	dead, won  bool
}

func New(r Source) *Engine {
	return &Engine{rnd: r}
}

// Build replaces the current game with a new one. On error the current game
// is left untouched.
func (e *Engine) Build(p GameParams) error {
	if err := p.Validate(); err != nil {
		return err
	}

	var (
		grid *Grid
		err  error
	)
	if p.SafeStart {
		grid, err = toMatrix(p.Width, p.Height, make([]Tile, p.Size()))
	} else {
		grid, err = Build(p, e.rnd)
	}
	if err != nil {
		return err
	}

	e.params = p
	e.grid = grid
	e.counters = Counters{TotalMines: p.MineCount}
	e.pending = p.SafeStart
	e.firstClick = true
	e.dead, e.won = false, false

	if !e.pending {
		e.clearClusters()
	}
	return nil
}

// place generates the deferred field around the first revealed tile and
// moves any flags that were placed beforehand onto it.
func (e *Engine) place(x, y int) error {
	grid, err := BuildAround(e.params, x, y, e.rnd)
	if err != nil {
		return err
	}
	old := e.grid
	e.grid = grid
	e.pending = false
	e.clearClusters()

	e.counters.TotalFlags, e.counters.FlaggedMines = 0, 0
	old.each(func(x, y int, t *Tile) {
		if !t.flagged {
			return
		}
		nt := e.grid.at(x, y)
		if nt.revealed {
			return
		}
		nt.flagged = true
		e.counters.TotalFlags++
		if nt.mine {
			e.counters.FlaggedMines++
		}
	})
	return nil
}

func (e *Engine) clearClusters() {
	if !e.params.ClearClusters {
		return
	}
	cleared := e.grid.clearDenseClusters()
	e.counters.TotalMines -= len(cleared)
	if len(cleared) > 0 {
		Log.WithFields(logrus.Fields{
			"cleared": cleared,
			"mines":   e.counters.TotalMines,
		}).Debug("cleared dense mine clusters")
	}
}

func (e *Engine) Params() GameParams { return e.params }
func (e *Engine) Counters() Counters { return e.counters }
func (e *Engine) Dead() bool         { return e.dead }
func (e *Engine) Won() bool          { return e.won }
func (e *Engine) Over() bool         { return e.dead || e.won }
func (e *Engine) Built() bool        { return e.grid != nil }

// RemainingMines is the number of mines minus the number of flags, as shown
// by a mine counter. It goes negative when there are too many flags.
func (e *Engine) RemainingMines() int {
	return e.counters.TotalMines - e.counters.TotalFlags
}

func (e *Engine) inBounds(x, y int) bool {
	return e.grid != nil && e.grid.InBounds(x, y)
}

// Tile returns a copy of the tile at (x, y), mine included. Adapters should
// render through [Engine.TileView] instead.
func (e *Engine) Tile(x, y int) (Tile, bool) {
	if e.grid == nil {
		return Tile{}, false
	}
	return e.grid.Tile(x, y)
}

type TileView struct {
	Symbol        string `json:"symbol"`
	Revealed      bool   `json:"revealed"`
	Flagged       bool   `json:"flagged"`
	AdjacentMines int    `json:"adjacent_mines"`
}

// TileView describes what a player may see at (x, y). The adjacent mine
// count of an unrevealed tile is not disclosed.
func (e *Engine) TileView(x, y int) (TileView, bool) {
	if !e.inBounds(x, y) {
		return TileView{}, false
	}
	t := e.grid.at(x, y)
	return TileView{
		Symbol:        t.String(),
		Revealed:      t.revealed,
		Flagged:       t.flagged,
		AdjacentMines: iif(t.revealed && !t.mine, t.adjacent, 0),
	}, true
}

type Snapshot struct {
	Width          int        `json:"width"`
	Height         int        `json:"height"`
	MineCount      int        `json:"mine_count"`
	RemainingMines int        `json:"remaining_mines"`
	Dead           bool       `json:"dead"`
	Won            bool       `json:"won"`
	Grid           [][]string `json:"grid"`
}

func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Width:          e.params.Width,
		Height:         e.params.Height,
		MineCount:      e.params.MineCount,
		RemainingMines: e.RemainingMines(),
		Dead:           e.dead,
		Won:            e.won,
	}
	if e.grid != nil {
		s.Grid = e.grid.Symbols()
	}
	return s
}

// RevealAll opens every tile for display, typically after a loss. Flags
// stay in place.
func (e *Engine) RevealAll() {
	if e.grid == nil || e.pending {
		return
	}
	e.grid.each(func(_, _ int, t *Tile) {
		t.revealed = true
	})
}

// Forfeit ends a running game as lost and reveals the field.
func (e *Engine) Forfeit() {
	if e.grid == nil {
		return
	}
	if !e.won {
		e.dead = true
	}
	if e.pending {
		if err := e.place(e.params.Width/2, e.params.Height/2); err != nil {
			Log.WithError(err).Error("unable to place field on forfeit")
			return
		}
	}
	e.RevealAll()
}

func (e *Engine) String() string {
	if e.grid == nil {
		return ""
	}
	return e.grid.String()
}
