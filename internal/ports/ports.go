package ports

import (
	"context"
	"time"

	"svw.info/sodo/internal/domain"
)

// Stats captures the search effort of one operation. Nodes counts value
// trials at choice points, Forced counts cells filled by propagation,
// Rounds counts naked-single passes, Guesses counts placements that came
// from a choice point rather than propagation. The generator grades
// difficulty from Guesses and Rounds.
type Stats struct {
	Nodes    int
	Forced   int
	Rounds   int
	Guesses  int
	Duration time.Duration
}

// Add accumulates st2 into st (Duration included).
func (st *Stats) Add(st2 Stats) {
	st.Nodes += st2.Nodes
	st.Forced += st2.Forced
	st.Rounds += st2.Rounds
	st.Guesses += st2.Guesses
	st.Duration += st2.Duration
}

// Solver solves a grid, counts its solutions, and tests solvability.
// Implementations keep no state between calls.
type Solver interface {
	Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, Stats, error)
	CountSolutions(ctx context.Context, g *domain.Grid, limit int) (int, Stats, error)
	IsSolvable(ctx context.Context, g *domain.Grid) (bool, error)
}

// Generator creates puzzles with a unique solution at a target difficulty.
type Generator interface {
	Generate(ctx context.Context, seed int64, difficulty domain.Difficulty, box int) (*domain.Puzzle, Stats, error)
}

// Validator performs fast constraint checks (row/col/box), no search.
type Validator interface {
	ValidateGrid(ctx context.Context, g *domain.Grid) (ok bool, conflicts []domain.CellCoord, err error)
	ValidateSolution(ctx context.Context, puzzle, candidate *domain.Grid) (bool, error)
}

// Hinter returns one safe next step, preferring forced cells over guesses.
type Hinter interface {
	Hint(ctx context.Context, g *domain.Grid) (domain.Hint, bool, error)
}

// Storage persists and retrieves puzzles.
type Storage interface {
	Save(ctx context.Context, p *domain.Puzzle) error
	Load(ctx context.Context, id string) (*domain.Puzzle, error)
	List(ctx context.Context) ([]domain.PuzzleMeta, error)
}
