package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
)

func samplePuzzle(id string) *domain.Puzzle {
	g := domain.MustNew(3)
	g.Cells[0][0] = 5
	g.Cells[4][4] = 7
	return &domain.Puzzle{
		ID:         id,
		Seed:       42,
		Difficulty: domain.Hard,
		Puzzle:     g,
		Solution:   g.Clone(),
		CreatedAt:  1700000000,
		Name:       "sample",
	}
}

func TestFSRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewFS(t.TempDir())

	p := samplePuzzle("abc-123")
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Load(ctx, "abc-123")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.Equal(t, p.Difficulty, got.Difficulty)
	assert.True(t, p.Puzzle.Equal(got.Puzzle))
	assert.True(t, p.Solution.Equal(got.Solution))
}

func TestFSRejectsMissingID(t *testing.T) {
	s := NewFS(t.TempDir())
	assert.Error(t, s.Save(context.Background(), &domain.Puzzle{Puzzle: domain.MustNew(3)}))
	assert.Error(t, s.Save(context.Background(), nil))
}

func TestFSLoadNotFound(t *testing.T) {
	s := NewFS(t.TempDir())
	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFSLoadLegacyFlatLayout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s := NewFS(dir)

	p := samplePuzzle("flat-1")
	require.NoError(t, s.Save(ctx, p))
	// Move the file into the old flat layout and make sure Load still
	// finds it.
	require.NoError(t, os.Rename(
		filepath.Join(dir, "hard", "flat-1.json"),
		filepath.Join(dir, "flat-1.json")))

	got, err := s.Load(ctx, "flat-1")
	require.NoError(t, err)
	assert.Equal(t, "flat-1", got.ID)
}

func TestFSList(t *testing.T) {
	ctx := context.Background()
	s := NewFS(t.TempDir())

	require.NoError(t, s.Save(ctx, samplePuzzle("one")))
	p2 := samplePuzzle("two")
	p2.Difficulty = domain.Easy
	require.NoError(t, s.Save(ctx, p2))

	metas, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 2)
	ids := []string{metas[0].ID, metas[1].ID}
	assert.ElementsMatch(t, []string{"one", "two"}, ids)
}

func TestBadgerRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewBadger(t.TempDir())
	require.NoError(t, err)
	defer s.Close()

	p := samplePuzzle("kv-1")
	require.NoError(t, s.Save(ctx, p))

	got, err := s.Load(ctx, "kv-1")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)
	assert.True(t, p.Puzzle.Equal(got.Puzzle))

	_, err = s.Load(ctx, "missing")
	assert.ErrorIs(t, err, os.ErrNotExist)

	metas, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, metas, 1)
	assert.Equal(t, "kv-1", metas[0].ID)
}
