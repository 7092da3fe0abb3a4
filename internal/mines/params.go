package mines

import (
	"fmt"
	"strings"
)

// MaxGridSize is the largest number of tiles a field may hold.
const MaxGridSize = 2500

type GameParams struct {
	Width, Height, MineCount int
	// SafeStart defers mine placement until the first reveal so that the
	// first revealed tile never holds a mine.
	SafeStart bool
	// ClearClusters removes every mine that is completely surrounded by
	// other mines right after the field is generated.
	ClearClusters bool
}

func (p GameParams) Unpack() (w int, h int, mc int) {
	return p.Width, p.Height, p.MineCount
}

func (p GameParams) Size() int {
	return p.Width * p.Height
}

func (p GameParams) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("%w: width and height must be above 0", ErrInvalidParameters)
	case p.MineCount <= 0:
		return fmt.Errorf("%w: mine count must be above 0", ErrInvalidParameters)
	case p.Width > MaxGridSize || p.Height > MaxGridSize || p.Size() > MaxGridSize:
		return fmt.Errorf(
			"%w: the grid cannot contain more than %d tiles", ErrInvalidParameters, MaxGridSize,
		)
	case p.MineCount >= p.Size():
		return fmt.Errorf("%w: all tiles can't have mines", ErrInvalidParameters)
	}
	return nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

func (p GameParams) Seed() string {
	return fmt.Sprintf(
		"%d:%d:%d:%d:%d",
		p.Width, p.Height, p.MineCount,
		iif(p.SafeStart, 1, 0), iif(p.ClearClusters, 1, 0),
	)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	var s, c int
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(
		sseed, "%d %d %d %d %d", &p.Width, &p.Height, &p.MineCount, &s, &c,
	)
	if n != 5 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	p.SafeStart = s == 1
	p.ClearClusters = c == 1
	return p, nil
}
