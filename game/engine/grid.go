package engine

import "errors"

// ErrOutOfBounds is returned by At and Set for positions outside the grid.
var ErrOutOfBounds = errors.New("position out of bounds")

// Grid is the mutable 2D tile array. Height and width are derived from the
// slice, never stored. The engine receives exclusive mutable access for the
// duration of one operation and retains nothing between calls.
type Grid [][]Tile

// Bounds returns the grid height and width. Width is taken from the first
// row; Validate rejects grids whose rows differ in length.
func (g Grid) Bounds() (height, width int) {
	if len(g) == 0 {
		return 0, 0
	}
	return len(g), len(g[0])
}

// InBounds reports whether p can be dereferenced. The column is checked
// against p's own row so that even a ragged grid never panics.
func (g Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(g) && p.Col >= 0 && p.Col < len(g[p.Row])
}

// At returns the tile at p.
func (g Grid) At(p Position) (Tile, error) {
	if !g.InBounds(p) {
		return 0, ErrOutOfBounds
	}
	return g[p.Row][p.Col], nil
}

// Set places t at p.
func (g Grid) Set(p Position, t Tile) error {
	if !g.InBounds(p) {
		return ErrOutOfBounds
	}
	g[p.Row][p.Col] = t
	return nil
}

// FindAll returns every position holding t, in row-major order.
func (g Grid) FindAll(t Tile) []Position {
	var found []Position
	for i, row := range g {
		for j, tile := range row {
			if tile == t {
				found = append(found, Position{Row: i, Col: j})
			}
		}
	}
	return found
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	c := make(Grid, len(g))
	for i, row := range g {
		c[i] = make([]Tile, len(row))
		copy(c[i], row)
	}
	return c
}

// Equal reports whether two grids hold identical tiles.
func (g Grid) Equal(other Grid) bool {
	if len(g) != len(other) {
		return false
	}
	for i, row := range g {
		if len(row) != len(other[i]) {
			return false
		}
		for j, tile := range row {
			if tile != other[i][j] {
				return false
			}
		}
	}
	return true
}
