package hint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/solver"
)

const classic = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
const classicSolved = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func newHinter() *StepHinter {
	return NewStepHinter(solver.NewBacktrackingSolver())
}

func mustParse(t *testing.T, s string) *domain.Grid {
	t.Helper()
	g, err := domain.ParseCompact(s)
	require.NoError(t, err)
	return g
}

func TestHintNakedSingle(t *testing.T) {
	// Row 0 holds 1..8; (0,8) is the lone empty cell in that row.
	g := domain.MustNew(3)
	for c := 0; c < 8; c++ {
		require.NoError(t, g.Set(0, c, uint8(c+1)))
	}

	hh, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 8}, hh.Cell)
	assert.Equal(t, uint8(9), hh.Value)
	assert.Equal(t, domain.HintForced, hh.Kind)
}

func TestHintHiddenSingle(t *testing.T) {
	// Column 0 and the bottom-left box pin a 1 into (8,2) without making
	// it a naked single: row 8 stays otherwise open.
	g := domain.MustNew(3)
	require.NoError(t, g.Set(0, 0, 1))
	require.NoError(t, g.Set(3, 1, 1))
	// Block 1 from (6,2) and (7,2) via their rows.
	require.NoError(t, g.Set(6, 5, 1))
	require.NoError(t, g.Set(7, 8, 1))

	hh, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.HintForced, hh.Kind)
	assert.Equal(t, uint8(1), hh.Value)
	assert.Equal(t, domain.CellCoord{Row: 8, Col: 2}, hh.Cell)
}

func TestHintGuessedFallback(t *testing.T) {
	// An empty grid has no forced cell anywhere.
	g := domain.MustNew(3)
	hh, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, domain.HintGuessed, hh.Kind)
	assert.Equal(t, domain.CellCoord{Row: 0, Col: 0}, hh.Cell)
	assert.NotZero(t, hh.Value)
}

func TestHintIdempotent(t *testing.T) {
	g := mustParse(t, classic)
	h := newHinter()

	a, foundA, err := h.Hint(context.Background(), g)
	require.NoError(t, err)
	b, foundB, err := h.Hint(context.Background(), g)
	require.NoError(t, err)
	assert.Equal(t, foundA, foundB)
	assert.Equal(t, a, b, "same grid, same hint")
}

func TestHintOnFullGrid(t *testing.T) {
	_, found, err := newHinter().Hint(context.Background(), mustParse(t, classicSolved))
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHintOnIllegalGrid(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(0, 0, 5))
	require.NoError(t, g.Set(0, 3, 5))
	_, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHintOnUnsolvableGrid(t *testing.T) {
	// Legal but dead: top-left box 1..8, (2,2) blocked from 9 by its row.
	g := domain.MustNew(3)
	vals := [][]uint8{{1, 2, 3}, {4, 5, 6}, {7, 8, 0}}
	for r := range vals {
		for c, v := range vals[r] {
			require.NoError(t, g.Set(r, c, v))
		}
	}
	require.NoError(t, g.Set(2, 5, 9))

	_, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestHintMatchesSolution(t *testing.T) {
	g := mustParse(t, classic)
	solution := mustParse(t, classicSolved)

	hh, found, err := newHinter().Hint(context.Background(), g)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, solution.Cells[hh.Cell.Row][hh.Cell.Col], hh.Value,
		"a hint on a unique puzzle must agree with its solution")
}
