package physics

import "math"

// SpatialGrid is a uniform grid for broad-phase collision detection.
// Items are inserted by position and index; Pairs then yields every pair of items
// sharing a 3x3 cell neighborhood exactly once. Neighborhoods stop at the arena
// edges: items on opposite sides of a wrap seam are never paired.
//
// Cell size must be >= the maximum interaction distance between any two
// colliding items so that all potential collisions are found within
// the 3x3 neighborhood.
type SpatialGrid struct {
	cellSize    float64
	invCellSize float64 // 1 / cellSize (precomputed to avoid division)
	cols        int
	rows        int
	cells       [][]int
	itemCell    []int // cell index per inserted item, in insertion order
}

// NewSpatialGrid creates a spatial grid covering the given arena dimensions.
// cellSize should be >= the maximum collision distance for the items being inserted.
func NewSpatialGrid(worldW, worldH, cellSize float64) *SpatialGrid {
	cols := int(math.Ceil(worldW / cellSize))
	rows := int(math.Ceil(worldH / cellSize))
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}

	return &SpatialGrid{
		cellSize:    cellSize,
		invCellSize: 1.0 / cellSize,
		cols:        cols,
		rows:        rows,
		cells:       make([][]int, cols*rows),
	}
}

// Clear removes all items from the grid without deallocating cell memory.
func (g *SpatialGrid) Clear() {
	for i := range g.cells {
		g.cells[i] = g.cells[i][:0]
	}
	g.itemCell = g.itemCell[:0]
}

// Insert adds an item at the given arena position. Items must be inserted
// with consecutive indices starting at 0 after each Clear.
func (g *SpatialGrid) Insert(x, y float64, index int) {
	col, row := g.posToCell(x, y)
	idx := row*g.cols + col
	g.cells[idx] = append(g.cells[idx], index)
	g.itemCell = append(g.itemCell, idx)
}

// Pairs calls fn(i, j) with i < j for every pair of items in neighboring cells.
func (g *SpatialGrid) Pairs(fn func(i, j int)) {
	for i, cell := range g.itemCell {
		col, row := cell%g.cols, cell/g.cols
		for r := max(row-1, 0); r <= min(row+1, g.rows-1); r++ {
			for c := max(col-1, 0); c <= min(col+1, g.cols-1); c++ {
				for _, j := range g.cells[r*g.cols+c] {
					if j > i {
						fn(i, j)
					}
				}
			}
		}
	}
}

// posToCell converts arena coordinates to grid cell coordinates.
// Clamps to valid range to handle edge cases with floating point.
func (g *SpatialGrid) posToCell(x, y float64) (col, row int) {
	col = int(x * g.invCellSize)
	if col < 0 {
		col = 0
	} else if col >= g.cols {
		col = g.cols - 1
	}

	row = int(y * g.invCellSize)
	if row < 0 {
		row = 0
	} else if row >= g.rows {
		row = g.rows - 1
	}

	return col, row
}
