package generator

import (
	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
)

// TierParams are the generator knobs for one difficulty tier. MinGivens is
// the filled-cell floor on a 9x9 board (scaled by area for other sizes).
// NodeBudget caps the total solver nodes spent on uniqueness checks during
// one carve pass. The guess band [MinGuesses, MaxGuesses] is matched
// against the deterministic solve of the carved puzzle; MaxGuesses < 0
// means unbounded.
type TierParams struct {
	MinGivens  int
	NodeBudget int
	MinGuesses int
	MaxGuesses int
}

// Tuning is the full difficulty table plus the retry budget. The values
// are empirical, sized to keep 9x9 generation well under a second.
type Tuning struct {
	Attempts int
	Tiers    map[domain.Difficulty]TierParams
}

// DefaultTuning mirrors the shipped calibration: floors 40/34/28/24 givens
// and guess bands that separate propagation-only puzzles from ones that
// need search.
func DefaultTuning() Tuning {
	return Tuning{
		Attempts: 3,
		Tiers: map[domain.Difficulty]TierParams{
			domain.Easy:   {MinGivens: 40, NodeBudget: 150_000, MinGuesses: 0, MaxGuesses: 0},
			domain.Medium: {MinGivens: 34, NodeBudget: 150_000, MinGuesses: 0, MaxGuesses: 3},
			domain.Hard:   {MinGivens: 28, NodeBudget: 150_000, MinGuesses: 2, MaxGuesses: 15},
			domain.Expert: {MinGivens: 24, NodeBudget: 150_000, MinGuesses: 6, MaxGuesses: -1},
		},
	}
}

func (t Tuning) tier(d domain.Difficulty) TierParams {
	if p, ok := t.Tiers[d]; ok {
		return p
	}
	return t.Tiers[domain.Medium]
}

// distance is how far a graded guess count sits outside the band; zero
// means in band.
func (p TierParams) distance(guesses int) int {
	if guesses < p.MinGuesses {
		return p.MinGuesses - guesses
	}
	if p.MaxGuesses >= 0 && guesses > p.MaxGuesses {
		return guesses - p.MaxGuesses
	}
	return 0
}

// UniqueGenerator creates puzzles whose solution is unique, using the
// provided solver for the cap-2 solution counts.
type UniqueGenerator struct {
	Solver ports.Solver
	Tuning Tuning
}

// NewUniqueGenerator wires a generator with the default tuning table.
func NewUniqueGenerator(s ports.Solver) *UniqueGenerator {
	return &UniqueGenerator{Solver: s, Tuning: DefaultTuning()}
}
