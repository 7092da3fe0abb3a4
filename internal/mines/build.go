package mines

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// fillTiles returns n tiles of which the first mineCount are mined.
func fillTiles(n, mineCount int) []Tile {
	tiles := make([]Tile, n)
	for i := range min(mineCount, n) {
		tiles[i].mine = true
	}
	return tiles
}

// shuffle is a Fisher-Yates shuffle: every index from the last down to 1 is
// swapped with a uniformly drawn index in [0, i].
func shuffle(tiles []Tile, r Source) {
	for i := len(tiles) - 1; i > 0; i-- {
		j := r.IntN(i + 1)
		tiles[i], tiles[j] = tiles[j], tiles[i]
	}
}

// toMatrix slices tiles into height rows of width tiles each. The rows
// share tiles as their backing array.
func toMatrix(width, height int, tiles []Tile) (*Grid, error) {
	if width*height != len(tiles) {
		return nil, fmt.Errorf(
			"cannot shape %d tiles into %dx%d", len(tiles), width, height,
		)
	}
	rows := make([][]Tile, height)
	for y := range height {
		rows[y] = tiles[y*width : (y+1)*width : (y+1)*width]
	}
	return &Grid{width: width, height: height, rows: rows}, nil
}

// Build generates a shuffled field for p and computes adjacency counts.
// Every tile, including the one the player opens first, may hold a mine.
func Build(p GameParams, r Source) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	width, height, mineCount := p.Unpack()

	tiles := fillTiles(width*height, mineCount)
	shuffle(tiles, r)

	grid, err := toMatrix(width, height, tiles)
	if err != nil {
		return nil, err
	}
	grid.computeAdjacency()

	Log.WithFields(logrus.Fields{
		"seed": p.Seed(),
	}).Debug("built field")

	return grid, nil
}

// BuildAround generates a field in which (x, y) is guaranteed to be safe.
// One tile fewer than the field holds is shuffled, and an unmined tile is
// inserted at (x, y) before shaping.
func BuildAround(p GameParams, x, y int, r Source) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if !p.PointInBounds(x, y) {
		return nil, fmt.Errorf(
			"%w: start tile %d:%d is outside the field", ErrInvalidParameters, x, y,
		)
	}
	width, height, mineCount := p.Unpack()

	tiles := fillTiles(width*height-1, mineCount)
	shuffle(tiles, r)

	i := y*width + x
	tiles = append(tiles, Tile{})
	copy(tiles[i+1:], tiles[i:])
	tiles[i] = Tile{}

	grid, err := toMatrix(width, height, tiles)
	if err != nil {
		return nil, err
	}
	grid.computeAdjacency()

	Log.WithFields(logrus.Fields{
		"seed":  p.Seed(),
		"start": fmt.Sprintf("%d:%d", x, y),
	}).Debug("built field around start tile")

	return grid, nil
}
