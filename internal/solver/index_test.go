package solver

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"svw.info/sodo/internal/domain"
)

func TestIndexCandidates(t *testing.T) {
	g := domain.MustNew(3)
	require.NoError(t, g.Set(0, 0, 1)) // row 0
	require.NoError(t, g.Set(5, 4, 2)) // col 4
	require.NoError(t, g.Set(1, 1, 3)) // box 0

	ix, err := newIndex(g)
	require.NoError(t, err)

	// (0,4): blocked by 1 (row), 2 (col); 3 is in another box.
	cands := ix.candidates(0, 4)
	assert.Zero(t, cands&(1<<0))
	assert.Zero(t, cands&(1<<1))
	assert.NotZero(t, cands&(1<<2))
	assert.Equal(t, 7, bits.OnesCount32(cands))

	// (2,2): same box as the 1 and the 3.
	cands = ix.candidates(2, 2)
	assert.Equal(t, 7, bits.OnesCount32(cands))
	assert.Zero(t, cands&(1<<0))
	assert.Zero(t, cands&(1<<2))
}

func TestIndexRejectsDuplicates(t *testing.T) {
	mk := func(set func(g *domain.Grid)) error {
		g := domain.MustNew(3)
		set(g)
		_, err := newIndex(g)
		return err
	}

	assert.ErrorIs(t, mk(func(g *domain.Grid) {
		g.Cells[0][0], g.Cells[0][8] = 4, 4
	}), domain.ErrInvalidGrid, "row duplicate")

	assert.ErrorIs(t, mk(func(g *domain.Grid) {
		g.Cells[0][2], g.Cells[7][2] = 6, 6
	}), domain.ErrInvalidGrid, "column duplicate")

	assert.ErrorIs(t, mk(func(g *domain.Grid) {
		g.Cells[0][0], g.Cells[2][2] = 9, 9
	}), domain.ErrInvalidGrid, "box duplicate")
}

func TestIndexPlaceRemovePair(t *testing.T) {
	g := domain.MustNew(3)
	ix, err := newIndex(g)
	require.NoError(t, err)

	before := ix.candidates(4, 4)
	ix.place(4, 4, 5)
	assert.Zero(t, ix.candidates(4, 7)&(1<<4), "5 blocked along the row")
	assert.Zero(t, ix.candidates(0, 4)&(1<<4), "5 blocked along the column")
	assert.Zero(t, ix.candidates(3, 3)&(1<<4), "5 blocked inside the box")

	ix.remove(4, 4, 5)
	assert.Equal(t, before, ix.candidates(4, 4), "remove restores the exact state")
}
