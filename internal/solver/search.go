package solver

import (
	"context"
	"math/bits"
	"math/rand"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
)

// One backtracking routine serves every entry point: find-first solving,
// counting up to a cap, and the generator's random board filler. The
// differences are a continuation policy (searchMode) and an optional RNG
// that replaces the deterministic cell/value ordering.
type searchMode int

const (
	modeFirst searchMode = iota // stop at the first full assignment
	modeCount                   // count full assignments up to a limit
)

// placement is one trail entry: a value written to the working grid,
// either at a choice point or by propagation. Unwinding the trail in
// reverse restores the grid and index exactly.
type placement struct {
	r, c int
	v    uint8
}

// frame is one explicit choice point: the chosen cell, the values left to
// try there, and the trail mark to unwind to between values.
type frame struct {
	r, c  int
	order []uint8
	next  int
	mark  int
}

type searcher struct {
	g      *domain.Grid // private working copy, mutated in place
	ix     *index
	rng    *rand.Rand // nil = deterministic: row-major ties, ascending values
	empty  int
	trail  []placement
	frames []frame
	stats  ports.Stats
}

// newSearcher clones g so the caller's grid is never touched, and fails
// fast with ErrInvalidGrid if g already breaks a constraint.
func newSearcher(g *domain.Grid, rng *rand.Rand) (*searcher, error) {
	work := g.Clone()
	ix, err := newIndex(work)
	if err != nil {
		return nil, err
	}
	return &searcher{
		g:     work,
		ix:    ix,
		rng:   rng,
		empty: work.EmptyCount(),
	}, nil
}

// run drives the search to completion and returns the number of full
// assignments found (at most 1 in modeFirst, at most limit in modeCount).
// In modeFirst the working grid holds the solution on return. A zero
// return with a nil error means the grid is unsolvable.
func (s *searcher) run(ctx context.Context, mode searchMode, limit int) (int, error) {
	found := 0
	if !s.propagate() {
		return 0, nil
	}
	if s.empty == 0 {
		// Propagation alone completed the grid; forced fills admit no
		// alternatives, so this is the only solution.
		return 1, nil
	}

	for {
		// Open a choice point at the most constrained cell.
		r, c := s.pickCell()
		s.frames = append(s.frames, frame{
			r: r, c: c,
			order: s.valueOrder(s.ix.candidates(r, c)),
			mark:  len(s.trail),
		})

	advance:
		for {
			if err := ctx.Err(); err != nil {
				return found, err
			}
			top := &s.frames[len(s.frames)-1]
			// Undo whatever the previous value at this frame placed.
			s.unwind(top.mark)
			if top.next >= len(top.order) {
				// Choice point exhausted: pop and resume the parent.
				s.frames = s.frames[:len(s.frames)-1]
				if len(s.frames) == 0 {
					return found, nil
				}
				continue advance
			}
			v := top.order[top.next]
			top.next++
			s.stats.Nodes++
			s.stats.Guesses++
			s.place(top.r, top.c, v)
			if !s.propagate() {
				continue advance
			}
			if s.empty == 0 {
				found++
				if mode == modeFirst || found >= limit {
					return found, nil
				}
				continue advance
			}
			break // descend
		}
	}
}

// propagate fills naked singles to fixpoint. Returns false on a
// contradiction (an empty cell with no candidates left).
func (s *searcher) propagate() bool {
	side := s.ix.side
	for {
		changed := false
		for r := 0; r < side; r++ {
			for c := 0; c < side; c++ {
				if s.g.Cells[r][c] != 0 {
					continue
				}
				cands := s.ix.candidates(r, c)
				if cands == 0 {
					return false
				}
				if cands&(cands-1) == 0 {
					s.place(r, c, uint8(bits.TrailingZeros32(cands)+1))
					s.stats.Forced++
					changed = true
				}
			}
		}
		if !changed {
			return true
		}
		s.stats.Rounds++
	}
}

// pickCell returns the empty cell with the fewest candidates. Determinism
// ties break row-major; with an RNG the winner is sampled uniformly among
// the ties.
func (s *searcher) pickCell() (int, int) {
	side := s.ix.side
	bestR, bestC, bestN := 0, 0, side+1
	ties := 0
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			if s.g.Cells[r][c] != 0 {
				continue
			}
			n := bits.OnesCount32(s.ix.candidates(r, c))
			switch {
			case n < bestN:
				bestR, bestC, bestN = r, c, n
				ties = 1
			case n == bestN && s.rng != nil:
				ties++
				if s.rng.Intn(ties) == 0 {
					bestR, bestC = r, c
				}
			}
		}
	}
	return bestR, bestC
}

// valueOrder expands a candidate bitset into the try order: ascending, or
// shuffled when an RNG is injected.
func (s *searcher) valueOrder(cands uint32) []uint8 {
	out := make([]uint8, 0, bits.OnesCount32(cands))
	for m := cands; m != 0; m &= m - 1 {
		out = append(out, uint8(bits.TrailingZeros32(m)+1))
	}
	if s.rng != nil {
		s.rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	}
	return out
}

func (s *searcher) place(r, c int, v uint8) {
	s.g.Cells[r][c] = v
	s.ix.place(r, c, v)
	s.empty--
	s.trail = append(s.trail, placement{r, c, v})
}

// unwind pops trail entries down to mark, clearing cells and index bits in
// reverse placement order.
func (s *searcher) unwind(mark int) {
	for len(s.trail) > mark {
		p := s.trail[len(s.trail)-1]
		s.trail = s.trail[:len(s.trail)-1]
		s.ix.remove(p.r, p.c, p.v)
		s.g.Cells[p.r][p.c] = 0
		s.empty++
	}
}
