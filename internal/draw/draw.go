// Package draw renders line art to a terminal using half-block characters.
package draw

import (
	"fmt"
	"io"
)

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// Viewport is the region of the terminal a square playfield is drawn into.
// Columns and rows are counts of terminal cells; offsets are 0-based.
type Viewport struct {
	Cols, Rows           int
	OffsetCol, OffsetRow int
}

// FitSquare returns the largest viewport that shows a square playfield in a
// terminal of the given size. Half-block cells are twice as tall as wide, so
// a square needs twice as many columns as rows. top rows are reserved above
// the viewport and the result never exceeds maxCols by maxRows.
func FitSquare(termCols, termRows, top, maxCols, maxRows int) Viewport {
	rows := min(termRows-top, maxRows, termCols/2, maxCols/2)
	if rows < 1 {
		rows = 1
	}
	cols := rows * 2

	return Viewport{
		Cols:      cols,
		Rows:      rows,
		OffsetCol: max(0, (termCols-cols)/2),
		OffsetRow: top + max(0, (termRows-top-rows)/2),
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
