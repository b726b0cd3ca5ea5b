package solver

import (
	"fmt"

	"svw.info/sodo/internal/domain"
)

// index keeps per-search bitsets of used values for every row, column, and
// box. Bit v-1 set means value v is present in that unit. Rebuilt from a
// grid at the start of each search, updated incrementally during it;
// place and remove are always paired by the searcher's undo trail.
type index struct {
	box  int
	side int
	rows []uint32
	cols []uint32
	boxs []uint32
	all  uint32 // mask of all side values
}

// newIndex builds the bitsets from g in one pass and fails fast with
// ErrInvalidGrid on the first duplicate it meets.
func newIndex(g *domain.Grid) (*index, error) {
	side := g.Side()
	ix := &index{
		box:  g.Box,
		side: side,
		rows: make([]uint32, side),
		cols: make([]uint32, side),
		boxs: make([]uint32, side),
		all:  uint32(1)<<uint(side) - 1,
	}
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			v := g.Cells[r][c]
			if v == 0 {
				continue
			}
			bit := uint32(1) << (v - 1)
			b := ix.boxAt(r, c)
			if ix.rows[r]&bit != 0 || ix.cols[c]&bit != 0 || ix.boxs[b]&bit != 0 {
				return nil, fmt.Errorf("%w: duplicate %d at (%d,%d)", domain.ErrInvalidGrid, v, r, c)
			}
			ix.rows[r] |= bit
			ix.cols[c] |= bit
			ix.boxs[b] |= bit
		}
	}
	return ix, nil
}

func (ix *index) boxAt(r, c int) int { return (r/ix.box)*ix.box + c/ix.box }

// candidates returns the bitset of values not blocked by the row, column,
// or box of (r, c).
func (ix *index) candidates(r, c int) uint32 {
	return ix.all &^ (ix.rows[r] | ix.cols[c] | ix.boxs[ix.boxAt(r, c)])
}

func (ix *index) place(r, c int, v uint8) {
	bit := uint32(1) << (v - 1)
	ix.rows[r] |= bit
	ix.cols[c] |= bit
	ix.boxs[ix.boxAt(r, c)] |= bit
}

func (ix *index) remove(r, c int, v uint8) {
	bit := uint32(1) << (v - 1)
	ix.rows[r] &^= bit
	ix.cols[c] &^= bit
	ix.boxs[ix.boxAt(r, c)] &^= bit
}
