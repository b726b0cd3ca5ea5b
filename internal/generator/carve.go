package generator

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
	"svw.info/sodo/internal/solver"
)

// carved is one uniqueness-preserving attempt plus its distance to the
// requested difficulty band.
type carved struct {
	puzzle   *domain.Grid
	solution *domain.Grid
	dist     int
}

// Generate builds a puzzle: fill a random solved grid, carve cells while
// every removal keeps the solution count at one, then grade the result and
// retry (same RNG stream, fresh board) while it lands outside the tier's
// band. The closest attempt wins when none lands inside.
func (g *UniqueGenerator) Generate(ctx context.Context, seed int64, diff domain.Difficulty, box int) (*domain.Puzzle, ports.Stats, error) {
	start := time.Now()
	if box == 0 {
		box = 3
	}
	if _, err := domain.New(box); err != nil {
		return nil, ports.Stats{}, err
	}
	tier := g.Tuning.tier(diff)
	rng := rand.New(rand.NewSource(seed))
	attempts := max(1, g.Tuning.Attempts)

	var stats ports.Stats
	var best *carved
	for a := 0; a < attempts; a++ {
		cand, st, err := g.attempt(ctx, rng, tier, box)
		stats.Add(st)
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			continue
		}
		if best == nil || cand.dist < best.dist {
			best = cand
		}
		if best.dist == 0 {
			break
		}
	}
	if best == nil {
		return nil, stats, fmt.Errorf("%w: no puzzle after %d attempts", domain.ErrGenerationTimeout, attempts)
	}
	stats.Duration = time.Since(start)
	p := &domain.Puzzle{
		ID:         uuid.NewString(),
		Seed:       seed,
		Difficulty: diff,
		Puzzle:     best.puzzle,
		Solution:   best.solution,
		CreatedAt:  time.Now().UnixNano(),
	}
	return p, stats, nil
}

func (g *UniqueGenerator) attempt(ctx context.Context, rng *rand.Rand, tier TierParams, box int) (*carved, ports.Stats, error) {
	var stats ports.Stats

	full, st, err := solver.FillRandom(ctx, box, rng)
	stats.Add(st)
	if err != nil {
		return nil, stats, err
	}

	side := box * box
	puz := full.Clone()
	floor := tier.MinGivens * side * side / 81
	budget := tier.NodeBudget

	// Visit every filled cell once, in random order; a removal survives
	// only if the solution count stays at one.
	for _, pos := range rng.Perm(side * side) {
		if puz.Givens() <= floor || budget <= 0 {
			break
		}
		r, c := pos/side, pos%side
		v := puz.Cells[r][c]
		if v == 0 {
			continue
		}
		puz.Cells[r][c] = 0
		n, cst, err := g.Solver.CountSolutions(ctx, puz, 2)
		stats.Add(cst)
		budget -= cst.Nodes + cst.Forced
		if err != nil {
			puz.Cells[r][c] = v
			if ctx.Err() != nil {
				return nil, stats, err
			}
			continue
		}
		if n != 1 {
			puz.Cells[r][c] = v
		}
	}

	gst, err := solver.Grade(ctx, puz)
	stats.Add(gst)
	if err != nil {
		return nil, stats, err
	}
	return &carved{puzzle: puz, solution: full, dist: tier.distance(gst.Guesses)}, stats, nil
}
