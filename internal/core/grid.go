package core

import "fmt"

// Grid maps between linear cell indices and (x, y) coordinates of a
// row-major W*H grid. Row 0 is the bottom row.
type Grid struct {
	W, H int
}

// NewGrid validates the dimensions and returns the topology.
func NewGrid(w, h int) (Grid, error) {
	if w <= 0 || h <= 0 {
		return Grid{}, fmt.Errorf("%w: %dx%d", ErrInvalidGridDimensions, w, h)
	}
	return Grid{W: w, H: h}, nil
}

// Len returns the number of cells.
func (g Grid) Len() int { return g.W * g.H }

// Index returns the linear slice index for coordinates (x, y).
func (g Grid) Index(x, y int) int { return y*g.W + x }

// X returns the column of index i.
func (g Grid) X(i int) int { return i % g.W }

// Y returns the row of index i.
func (g Grid) Y(i int) int { return i / g.W }

// Contains reports whether (x, y) lies inside the grid.
func (g Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Valid reports whether i is a cell index of the grid.
func (g Grid) Valid(i int) bool { return i >= 0 && i < g.Len() }

// Neighbours appends the 4-connected neighbours of i to buf in the order
// up, left, right, down and returns the extended slice. Cells outside the
// grid are omitted.
func (g Grid) Neighbours(i int, buf []int) []int {
	x, y := g.X(i), g.Y(i)
	if y+1 < g.H {
		buf = append(buf, i+g.W)
	}
	if x > 0 {
		buf = append(buf, i-1)
	}
	if x+1 < g.W {
		buf = append(buf, i+1)
	}
	if y > 0 {
		buf = append(buf, i-g.W)
	}
	return buf
}
