package hint

import (
	"context"
	"errors"
	"fmt"
	"math/bits"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
)

// StepHinter suggests one safe next step. Forced cells (naked singles,
// then hidden singles) come first; only when no logical step exists does
// it fall back to a full solve and reveal one cell as a guess. Scan order
// is fixed, so repeated calls on the same grid return the same hint.
type StepHinter struct {
	Solver ports.Solver
}

func NewStepHinter(s ports.Solver) *StepHinter { return &StepHinter{Solver: s} }

// masks are the per-unit used-value bitsets, built once per call.
type masks struct {
	rows, cols, boxs []uint32
	all              uint32
}

func (h *StepHinter) Hint(ctx context.Context, g *domain.Grid) (domain.Hint, bool, error) {
	if err := g.CheckShape(); err != nil {
		return domain.Hint{}, false, err
	}
	if g.IsComplete() {
		return domain.Hint{}, false, nil
	}
	m, ok := buildMasks(g)
	if !ok {
		// Duplicate somewhere: nothing safe to reveal.
		return domain.Hint{}, false, nil
	}

	if hh, ok := nakedSingle(g, m); ok {
		return hh, true, nil
	}
	if hh, ok := hiddenSingle(g, m); ok {
		return hh, true, nil
	}

	// No forced step: take one cell from a full solve.
	solved, _, err := h.Solver.Solve(ctx, g)
	if err != nil {
		if errors.Is(err, domain.ErrUnsolvable) || errors.Is(err, domain.ErrInvalidGrid) {
			return domain.Hint{}, false, nil
		}
		return domain.Hint{}, false, err
	}
	cell, _ := g.FirstEmpty()
	v := solved.Cells[cell.Row][cell.Col]
	return domain.Hint{
		Cell:    cell,
		Value:   v,
		Kind:    domain.HintGuessed,
		Message: fmt.Sprintf("no forced move; %d works at row %d, column %d", v, cell.Row+1, cell.Col+1),
	}, true, nil
}

func buildMasks(g *domain.Grid) (*masks, bool) {
	side := g.Side()
	m := &masks{
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
			b := g.BoxAt(r, c)
			if m.rows[r]&bit != 0 || m.cols[c]&bit != 0 || m.boxs[b]&bit != 0 {
				return nil, false
			}
			m.rows[r] |= bit
			m.cols[c] |= bit
			m.boxs[b] |= bit
		}
	}
	return m, true
}

func (m *masks) candidates(g *domain.Grid, r, c int) uint32 {
	return m.all &^ (m.rows[r] | m.cols[c] | m.boxs[g.BoxAt(r, c)])
}

// nakedSingle returns the first cell (row-major) whose candidate set has
// exactly one value.
func nakedSingle(g *domain.Grid, m *masks) (domain.Hint, bool) {
	side := g.Side()
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			if g.Cells[r][c] != 0 {
				continue
			}
			cands := m.candidates(g, r, c)
			if cands != 0 && cands&(cands-1) == 0 {
				v := uint8(bits.TrailingZeros32(cands) + 1)
				return domain.Hint{
					Cell:    domain.CellCoord{Row: r, Col: c},
					Value:   v,
					Kind:    domain.HintForced,
					Message: fmt.Sprintf("only %d fits at row %d, column %d", v, r+1, c+1),
				}, true
			}
		}
	}
	return domain.Hint{}, false
}

// hiddenSingle looks for a value with exactly one admissible cell within a
// unit, scanning rows, then columns, then boxes.
func hiddenSingle(g *domain.Grid, m *masks) (domain.Hint, bool) {
	side := g.Side()
	for r := 0; r < side; r++ {
		for v := uint8(1); int(v) <= side; v++ {
			if m.rows[r]&(uint32(1)<<(v-1)) != 0 {
				continue
			}
			spot, n := -1, 0
			for c := 0; c < side; c++ {
				if g.Cells[r][c] == 0 && m.candidates(g, r, c)&(uint32(1)<<(v-1)) != 0 {
					spot = c
					n++
				}
			}
			if n == 1 {
				return hiddenHint(r, spot, v, "row", r+1), true
			}
		}
	}
	for c := 0; c < side; c++ {
		for v := uint8(1); int(v) <= side; v++ {
			if m.cols[c]&(uint32(1)<<(v-1)) != 0 {
				continue
			}
			spot, n := -1, 0
			for r := 0; r < side; r++ {
				if g.Cells[r][c] == 0 && m.candidates(g, r, c)&(uint32(1)<<(v-1)) != 0 {
					spot = r
					n++
				}
			}
			if n == 1 {
				return hiddenHint(spot, c, v, "column", c+1), true
			}
		}
	}
	for b := 0; b < side; b++ {
		br, bc := (b/g.Box)*g.Box, (b%g.Box)*g.Box
		for v := uint8(1); int(v) <= side; v++ {
			if m.boxs[b]&(uint32(1)<<(v-1)) != 0 {
				continue
			}
			sr, sc, n := -1, -1, 0
			for dr := 0; dr < g.Box; dr++ {
				for dc := 0; dc < g.Box; dc++ {
					r, c := br+dr, bc+dc
					if g.Cells[r][c] == 0 && m.candidates(g, r, c)&(uint32(1)<<(v-1)) != 0 {
						sr, sc = r, c
						n++
					}
				}
			}
			if n == 1 {
				return hiddenHint(sr, sc, v, "box", b+1), true
			}
		}
	}
	return domain.Hint{}, false
}

func hiddenHint(r, c int, v uint8, unit string, unitNo int) domain.Hint {
	return domain.Hint{
		Cell:    domain.CellCoord{Row: r, Col: c},
		Value:   v,
		Kind:    domain.HintForced,
		Message: fmt.Sprintf("only place for %d in %s %d", v, unit, unitNo),
	}
}
