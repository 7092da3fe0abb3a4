package commands

import (
	"errors"
	"fmt"
	"iter"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/mines"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("invalid arguments")
)

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"g": 0, // get
	"o": 2, // open
	"f": 2, // flag
	"c": 2, // chord
	"r": 0, // resign and reveal all
	"n": 3, // new game
}

// Result is what a single command did. Only the field matching the
// command is set.
type Result struct {
	Command string              `json:"command"`
	Reveal  *mines.RevealResult `json:"reveal,omitempty"`
	Flag    *mines.FlagResult   `json:"flag,omitempty"`
}

func parseInts(strs []string) ([]int, error) {
	ints := make([]int, len(strs))
	for i, s := range strs {
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d must be an int", ErrArguments, i+1)
		}
		ints[i] = n
	}
	return ints, nil
}

// Execute applies one command to e. Out of bounds coordinates are not an
// error; the engine ignores them.
func Execute(e *mines.Engine, c string) (*Result, error) {
	parts := strings.Fields(c)
	if len(parts) == 0 {
		return nil, ErrUnknownCommand
	}
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, parts[0])
	}
	if nargs != len(parts)-1 {
		return nil, fmt.Errorf(
			"%w: %q takes %d arguments", ErrArguments, parts[0], nargs,
		)
	}
	args, err := parseInts(parts[1:])
	if err != nil {
		return nil, err
	}

	res := &Result{Command: parts[0]}
	switch parts[0] {
	case "g":
	case "o":
		r := e.Reveal(args[0], args[1])
		res.Reveal = &r
	case "f":
		f := e.ToggleFlag(args[0], args[1])
		res.Flag = &f
	case "c":
		r := e.Chord(args[0], args[1])
		res.Reveal = &r
	case "r":
		e.Forfeit()
	case "n":
		p := e.Params()
		p.Width, p.Height, p.MineCount = args[0], args[1], args[2]
		if err := e.Build(p); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Lines splits a frame into trimmed non-empty lines.
func Lines(s string) iter.Seq2[int, string] {
	return func(yield func(int, string) bool) {
		i := 0
		found := true
		var line string
		for found {
			line, s, found = strings.Cut(s, "\n")
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if !yield(i, line) {
				return
			}
			i++
		}
	}
}

// ExecuteAll runs every command in the frame, stopping at the first error
// or once the game is over.
func ExecuteAll(e *mines.Engine, frame string) ([]*Result, error) {
	var results []*Result
	for _, c := range Lines(frame) {
		res, err := Execute(e, c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		if e.Over() {
			break
		}
	}
	return results, nil
}
