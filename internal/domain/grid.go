package domain

import "fmt"

// Box-size bounds accepted by New. A 1x1 board is degenerate and anything
// past 5 exceeds the compact codec's character set.
const (
	MinBox = 2
	MaxBox = 5
)

// Grid holds the cell values of one board. Box is the box dimension (3 for
// a standard 9x9 board); Cells is Side x Side, row-major, 0 = empty.
type Grid struct {
	Box   int       `json:"box"`
	Cells [][]uint8 `json:"cells"`
}

// New returns an empty grid for the given box size.
func New(box int) (*Grid, error) {
	if box < MinBox || box > MaxBox {
		return nil, fmt.Errorf("%w: box size %d (want %d..%d)", ErrOutOfRange, box, MinBox, MaxBox)
	}
	side := box * box
	cells := make([][]uint8, side)
	for r := range cells {
		cells[r] = make([]uint8, side)
	}
	return &Grid{Box: box, Cells: cells}, nil
}

// MustNew is New for box sizes known valid at compile time (tests, defaults).
func MustNew(box int) *Grid {
	g, err := New(box)
	if err != nil {
		panic(err)
	}
	return g
}

// Side is the board edge length (Box squared).
func (g *Grid) Side() int { return g.Box * g.Box }

// InBounds reports whether (r, c) is on the board.
func (g *Grid) InBounds(r, c int) bool {
	return r >= 0 && r < g.Side() && c >= 0 && c < g.Side()
}

// Get returns the value at (r, c), range-checked.
func (g *Grid) Get(r, c int) (uint8, error) {
	if !g.InBounds(r, c) {
		return 0, fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, r, c)
	}
	return g.Cells[r][c], nil
}

// Set writes v at (r, c); v == 0 clears the cell.
func (g *Grid) Set(r, c int, v uint8) error {
	if !g.InBounds(r, c) {
		return fmt.Errorf("%w: cell (%d,%d)", ErrOutOfRange, r, c)
	}
	if int(v) > g.Side() {
		return fmt.Errorf("%w: value %d exceeds %d", ErrOutOfRange, v, g.Side())
	}
	g.Cells[r][c] = v
	return nil
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	cells := make([][]uint8, len(g.Cells))
	for r := range g.Cells {
		cells[r] = append([]uint8(nil), g.Cells[r]...)
	}
	return &Grid{Box: g.Box, Cells: cells}
}

// Equal reports cell-for-cell equality.
func (g *Grid) Equal(o *Grid) bool {
	if o == nil || g.Box != o.Box {
		return false
	}
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] != o.Cells[r][c] {
				return false
			}
		}
	}
	return true
}

// IsComplete reports whether no cell is empty.
func (g *Grid) IsComplete() bool {
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] == 0 {
				return false
			}
		}
	}
	return true
}

// EmptyCount returns the number of empty cells.
func (g *Grid) EmptyCount() int {
	n := 0
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] == 0 {
				n++
			}
		}
	}
	return n
}

// Givens returns the number of filled cells.
func (g *Grid) Givens() int { return g.Side()*g.Side() - g.EmptyCount() }

// EmptyCells returns the coordinates of all empty cells in row-major order.
func (g *Grid) EmptyCells() []CellCoord {
	out := make([]CellCoord, 0, g.EmptyCount())
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] == 0 {
				out = append(out, CellCoord{Row: r, Col: c})
			}
		}
	}
	return out
}

// FirstEmpty returns the first empty cell in row-major order.
func (g *Grid) FirstEmpty() (CellCoord, bool) {
	for r := range g.Cells {
		for c := range g.Cells[r] {
			if g.Cells[r][c] == 0 {
				return CellCoord{Row: r, Col: c}, true
			}
		}
	}
	return CellCoord{}, false
}

// BoxAt returns the box index of (r, c): boxes are numbered row-major.
func (g *Grid) BoxAt(r, c int) int { return (r/g.Box)*g.Box + c/g.Box }

// wellFormed checks the structural invariant: square Cells of side Box^2
// with every value in range. Used on grids arriving from outside (JSON,
// nested arrays) before they reach the solver.
func (g *Grid) wellFormed() error {
	if g.Box < MinBox || g.Box > MaxBox {
		return fmt.Errorf("%w: box size %d", ErrMalformedInput, g.Box)
	}
	side := g.Side()
	if len(g.Cells) != side {
		return fmt.Errorf("%w: %d rows (want %d)", ErrMalformedInput, len(g.Cells), side)
	}
	for r, row := range g.Cells {
		if len(row) != side {
			return fmt.Errorf("%w: row %d has %d cells (want %d)", ErrMalformedInput, r, len(row), side)
		}
		for c, v := range row {
			if int(v) > side {
				return fmt.Errorf("%w: value %d at (%d,%d)", ErrMalformedInput, v, r, c)
			}
		}
	}
	return nil
}

// CheckShape exposes the structural invariant check for adapters that
// decode grids from external payloads.
func (g *Grid) CheckShape() error { return g.wellFormed() }
