package mines

// computeAdjacency adds every mine to the counts of its neighbours. It runs
// once on a freshly shaped field.
func (g *Grid) computeAdjacency() {
	g.each(func(x, y int, t *Tile) {
		if !t.mine {
			return
		}
		g.neighbours(x, y, func(nx, ny int) {
			g.at(nx, ny).incrementAdjacent()
		})
	})
}

// removeMine makes (x, y) safe and takes its contribution back from the
// neighbouring counts.
func (g *Grid) removeMine(x, y int) {
	t := g.at(x, y)
	if !t.mine {
		return
	}
	t.clearMine(g.countMines(x, y))
	g.neighbours(x, y, func(nx, ny int) {
		g.at(nx, ny).decrementAdjacent()
	})
}

// isDense reports whether (x, y) is a mine with all eight neighbours in
// bounds and mined. Such a mine can never be deduced.
func (g *Grid) isDense(x, y int) bool {
	if !g.at(x, y).mine {
		return false
	}
	if x == 0 || y == 0 || x == g.width-1 || y == g.height-1 {
		return false
	}
	return g.countMines(x, y) == 8
}

// clearDenseClusters removes every dense mine and leaves it revealed. One
// row-major sweep is enough: removing a mine only shrinks neighbourhoods,
// so it never makes another mine dense.
func (g *Grid) clearDenseClusters() (cleared []Point) {
	g.each(func(x, y int, t *Tile) {
		if !g.isDense(x, y) {
			return
		}
		g.removeMine(x, y)
		t.reveal()
		cleared = append(cleared, Point{x, y})
	})
	return cleared
}
