package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/generator"
	"svw.info/sodo/internal/hint"
	"svw.info/sodo/internal/solver"
	"svw.info/sodo/internal/validator"
)

func TestServiceGuardsMissingDependencies(t *testing.T) {
	ctx := context.Background()
	empty := &Service{}
	g := domain.MustNew(3)

	_, _, err := empty.Solve(ctx, g)
	assert.Error(t, err)
	_, _, err = empty.Generate(ctx, 1, domain.Medium, 3)
	assert.Error(t, err)
	_, _, err = empty.ValidateGrid(ctx, g)
	assert.Error(t, err)
	_, _, err = empty.Hint(ctx, g)
	assert.Error(t, err)
	assert.Error(t, empty.Save(ctx, nil))
}

func TestServiceDelegates(t *testing.T) {
	ctx := context.Background()
	s := solver.NewBacktrackingSolver()
	uc := NewService(s, generator.NewUniqueGenerator(s), validator.New(), hint.NewStepHinter(s), nil)

	out, _, err := uc.Solve(ctx, domain.MustNew(2))
	require.NoError(t, err)
	assert.True(t, out.IsComplete())

	ok, conflicts, err := uc.ValidateGrid(ctx, domain.MustNew(3))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, conflicts)

	n, _, err := uc.CountSolutions(ctx, out, 2)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	solvable, err := uc.IsSolvable(ctx, out)
	require.NoError(t, err)
	assert.True(t, solvable)

	_, found, err := uc.Hint(ctx, domain.MustNew(3))
	require.NoError(t, err)
	assert.True(t, found)
}
