package mines

import (
	"fmt"
	"strings"
)

type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Grid is a rectangular field of tiles stored row-major. rows[y][x] is the
// tile at (x, y).
type Grid struct {
	width, height int
	rows          [][]Tile
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

func (g *Grid) InBounds(x, y int) bool {
	return 0 <= x && x < g.width && 0 <= y && y < g.height
}

func (g *Grid) at(x, y int) *Tile {
	return &g.rows[y][x]
}

// Tile returns a copy of the tile at (x, y).
func (g *Grid) Tile(x, y int) (Tile, bool) {
	if !g.InBounds(x, y) {
		return Tile{}, false
	}
	return g.rows[y][x], true
}

// neighbours calls fn for each in-bounds tile at Chebyshev distance 1.
func (g *Grid) neighbours(x, y int, fn func(nx, ny int)) {
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			if g.InBounds(x+dx, y+dy) {
				fn(x+dx, y+dy)
			}
		}
	}
}

// countMines counts the mined neighbours of (x, y).
func (g *Grid) countMines(x, y int) (n int) {
	g.neighbours(x, y, func(nx, ny int) {
		if g.at(nx, ny).mine {
			n++
		}
	})
	return
}

// Mines counts the mined tiles on the whole field.
func (g *Grid) Mines() (n int) {
	for _, row := range g.rows {
		for _, t := range row {
			if t.mine {
				n++
			}
		}
	}
	return
}

// each visits every tile in row-major order.
func (g *Grid) each(fn func(x, y int, t *Tile)) {
	for y := range g.rows {
		for x := range g.rows[y] {
			fn(x, y, &g.rows[y][x])
		}
	}
}

func (g *Grid) Symbols() [][]string {
	symbols := make([][]string, g.height)
	for y, row := range g.rows {
		symbols[y] = make([]string, g.width)
		for x, t := range row {
			symbols[y][x] = t.String()
		}
	}
	return symbols
}

func (g *Grid) String() string {
	var b strings.Builder
	for _, row := range g.rows {
		for _, t := range row {
			fmt.Fprint(&b, t.String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
