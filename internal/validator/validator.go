package validator

import (
	"context"

	"svw.info/sodo/internal/domain"
)

// FastValidator does linear bitmask scans, no search.
type FastValidator struct{}

func New() *FastValidator { return &FastValidator{} }

// ValidateGrid reports whether no filled value repeats within a row,
// column, or box. Empty cells are allowed; an empty grid is valid. The
// returned conflicts name the second occurrence of each duplicate.
func (v *FastValidator) ValidateGrid(ctx context.Context, g *domain.Grid) (bool, []domain.CellCoord, error) {
	if err := g.CheckShape(); err != nil {
		return false, nil, err
	}
	side := g.Side()
	conf := make([]domain.CellCoord, 0, 8)
	// rows
	for r := 0; r < side; r++ {
		var m uint32
		for c := 0; c < side; c++ {
			val := g.Cells[r][c]
			if val == 0 {
				continue
			}
			bit := uint32(1) << (val - 1)
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// cols
	for c := 0; c < side; c++ {
		var m uint32
		for r := 0; r < side; r++ {
			val := g.Cells[r][c]
			if val == 0 {
				continue
			}
			bit := uint32(1) << (val - 1)
			if m&bit != 0 {
				conf = append(conf, domain.CellCoord{Row: r, Col: c})
			}
			m |= bit
		}
	}
	// boxes
	for br := 0; br < g.Box; br++ {
		for bc := 0; bc < g.Box; bc++ {
			var m uint32
			for dr := 0; dr < g.Box; dr++ {
				for dc := 0; dc < g.Box; dc++ {
					r := br*g.Box + dr
					c := bc*g.Box + dc
					val := g.Cells[r][c]
					if val == 0 {
						continue
					}
					bit := uint32(1) << (val - 1)
					if m&bit != 0 {
						conf = append(conf, domain.CellCoord{Row: r, Col: c})
					}
					m |= bit
				}
			}
		}
	}
	return len(conf) == 0, conf, nil
}

// ValidateSolution reports whether candidate is a complete, legal grid
// that agrees with every originally filled cell of puzzle.
func (v *FastValidator) ValidateSolution(ctx context.Context, puzzle, candidate *domain.Grid) (bool, error) {
	if puzzle == nil || candidate == nil || puzzle.Box != candidate.Box {
		return false, nil
	}
	if !candidate.IsComplete() {
		return false, nil
	}
	ok, _, err := v.ValidateGrid(ctx, candidate)
	if err != nil || !ok {
		return false, err
	}
	for r := range puzzle.Cells {
		for c := range puzzle.Cells[r] {
			if pv := puzzle.Cells[r][c]; pv != 0 && pv != candidate.Cells[r][c] {
				return false, nil
			}
		}
	}
	return true, nil
}
