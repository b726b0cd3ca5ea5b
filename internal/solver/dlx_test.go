package solver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
)

func TestDLXAgreesWithBacktracking(t *testing.T) {
	ctx := context.Background()
	in := mustParse(t, classic)

	a, _, err := NewDLXSolver().Solve(ctx, in)
	require.NoError(t, err)
	b, _, err := NewBacktrackingSolver().Solve(ctx, in)
	require.NoError(t, err)
	assert.True(t, a.Equal(b), "both engines find the unique solution")
	assert.Equal(t, classicSolved, domain.FormatCompact(a))
}

func TestDLXCountSolutions(t *testing.T) {
	ctx := context.Background()
	s := NewDLXSolver()

	n, _, err := s.CountSolutions(ctx, mustParse(t, classic), 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, _, err = s.CountSolutions(ctx, domain.MustNew(3), 2)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestDLXInvalidGiven(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(0, 0, 5))
	require.NoError(t, g.Set(0, 3, 5))
	_, _, err := NewDLXSolver().Solve(context.Background(), g)
	assert.ErrorIs(t, err, domain.ErrInvalidGrid)

	ok, err := NewDLXSolver().IsSolvable(context.Background(), g)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDLXSolves4x4(t *testing.T) {
	out, _, err := NewDLXSolver().Solve(context.Background(), domain.MustNew(2))
	require.NoError(t, err)
	assert.True(t, out.IsComplete())
}
