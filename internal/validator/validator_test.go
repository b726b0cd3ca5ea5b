package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
)

const classic = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
const classicSolved = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func mustParse(t *testing.T, s string) *domain.Grid {
	t.Helper()
	g, err := domain.ParseCompact(s)
	require.NoError(t, err)
	return g
}

func TestValidateGridEmptyIsLegal(t *testing.T) {
	ok, conflicts, err := New().ValidateGrid(context.Background(), domain.MustNew(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, conflicts)
}

func TestValidateGridRowDuplicate(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(0, 0, 5))
	require.NoError(t, g.Set(0, 3, 5))

	ok, conflicts, err := New().ValidateGrid(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NotEmpty(t, conflicts)
	assert.Contains(t, conflicts, domain.CellCoord{Row: 0, Col: 3},
		"the second occurrence is the conflict")
}

func TestValidateGridColumnDuplicate(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(1, 4, 8))
	require.NoError(t, g.Set(7, 4, 8))

	ok, conflicts, err := New().ValidateGrid(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, conflicts, domain.CellCoord{Row: 7, Col: 4})
}

func TestValidateGridBoxDuplicate(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(3, 3, 2))
	require.NoError(t, g.Set(5, 5, 2))

	ok, conflicts, err := New().ValidateGrid(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Contains(t, conflicts, domain.CellCoord{Row: 5, Col: 5})
}

func TestValidateGridPartialLegal(t *testing.T) {
	ok, conflicts, err := New().ValidateGrid(context.Background(), mustParse(t, classic))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, conflicts)
}

func TestValidateGridCompleteSolution(t *testing.T) {
	ok, conflicts, err := New().ValidateGrid(context.Background(), mustParse(t, classicSolved))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, conflicts)
}

func TestValidateGridMalformedShape(t *testing.T) {
	g := &domain.Grid{Box: 3, Cells: [][]uint8{{1, 2, 3}}}
	_, _, err := New().ValidateGrid(context.Background(), g)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestValidateGridValueOutOfRange(t *testing.T) {
	g := domain.MustNew(2)
	g.Cells[0][0] = 5 // side is 4
	_, _, err := New().ValidateGrid(context.Background(), g)
	assert.ErrorIs(t, err, domain.ErrMalformedInput)
}

func TestValidateSolution(t *testing.T) {
	ctx := context.Background()
	v := New()
	puzzle := mustParse(t, classic)
	solution := mustParse(t, classicSolved)

	ok, err := v.ValidateSolution(ctx, puzzle, solution)
	require.NoError(t, err)
	assert.True(t, ok)

	t.Run("incomplete candidate", func(t *testing.T) {
		ok, err := v.ValidateSolution(ctx, puzzle, puzzle.Clone())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("disagrees with a given", func(t *testing.T) {
		wrong := solution.Clone()
		// (0,0) is a given 5; swapping it breaks the agreement even if
		// the grid itself stayed legal.
		wrong.Cells[0][0], wrong.Cells[0][1] = wrong.Cells[0][1], wrong.Cells[0][0]
		ok, err := v.ValidateSolution(ctx, puzzle, wrong)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("illegal candidate", func(t *testing.T) {
		bad := solution.Clone()
		bad.Cells[8][8] = bad.Cells[8][7] // duplicate in the last row
		ok, err := v.ValidateSolution(ctx, puzzle, bad)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("box size mismatch", func(t *testing.T) {
		ok, err := v.ValidateSolution(ctx, puzzle, domain.MustNew(2))
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("nil candidate", func(t *testing.T) {
		ok, err := v.ValidateSolution(ctx, puzzle, nil)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
