package solver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"svw.info/sodo/internal/domain"
	"svw.info/sodo/internal/ports"
)

// DLXSolver implements Algorithm X / Dancing Links over the Sudoku exact
// cover. For side n (n = box^2) there are 4*n^2 constraint columns and
// n^3 candidate rows:
//
//	0        .. n^2-1   -> cell (r,c) is filled
//	n^2      .. 2n^2-1  -> row r has value v
//	2n^2     .. 3n^2-1  -> col c has value v
//	3n^2     .. 4n^2-1  -> box b has value v, b = (r/box)*box + c/box
//
// It shares the ports.Solver contract with the backtracking engine but
// carries no propagation signal; Stats reports Nodes and Duration only.
type DLXSolver struct{}

func NewDLXSolver() *DLXSolver { return &DLXSolver{} }

type dlxNode struct {
	left, right, up, down *dlxNode
	col                   *dlxColumn
	rowIdx                int // identifies (r,c,v)
}

type dlxColumn struct {
	dlxNode
	size   int
	active bool // whether this constraint column is currently uncovered
}

type dlx struct {
	box, side int
	cols      []*dlxColumn
	rowHead   []*dlxNode
	sol       []*dlxNode
	solLen    int
	nodes     int
	activeCnt int
}

func newDLX(box int) *dlx {
	side := box * box
	nCells := side * side
	nCols := 4 * nCells
	nRows := nCells * side
	d := &dlx{
		box:     box,
		side:    side,
		cols:    make([]*dlxColumn, nCols),
		rowHead: make([]*dlxNode, nRows),
		sol:     make([]*dlxNode, nCells),
	}
	for i := 0; i < nCols; i++ {
		c := &dlxColumn{active: true}
		c.up = &c.dlxNode
		c.down = &c.dlxNode
		d.cols[i] = c
	}
	d.activeCnt = nCols

	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			for v := 1; v <= side; v++ {
				row := d.rowIndex(r, c, v)
				var first, prev *dlxNode
				for _, colID := range d.rowColumns(r, c, v) {
					col := d.cols[colID]
					n := &dlxNode{col: col, rowIdx: row}
					// vertical insert at the bottom of the column
					n.down = &col.dlxNode
					n.up = col.dlxNode.up
					col.dlxNode.up.down = n
					col.dlxNode.up = n
					col.size++
					// horizontal ring across the row's four nodes
					if first == nil {
						first = n
						n.left = n
						n.right = n
					} else {
						n.left = prev
						n.right = prev.right
						prev.right.left = n
						prev.right = n
					}
					prev = n
				}
				d.rowHead[row] = first
			}
		}
	}
	return d
}

func (d *dlx) rowIndex(r, c, v int) int { return (r*d.side+c)*d.side + (v - 1) }

func (d *dlx) rowColumns(r, c, v int) [4]int {
	nCells := d.side * d.side
	cell := r*d.side + c
	rowN := nCells + r*d.side + (v - 1)
	colN := 2*nCells + c*d.side + (v - 1)
	box := (r/d.box)*d.box + c/d.box
	boxN := 3*nCells + box*d.side + (v - 1)
	return [4]int{cell, rowN, colN, boxN}
}

func (d *dlx) decodeRow(row int) (r, c int, v uint8) {
	cell := row / d.side
	v = uint8(row%d.side) + 1
	return cell / d.side, cell % d.side, v
}

func (d *dlx) cover(col *dlxColumn) {
	if col.active {
		col.active = false
		d.activeCnt--
	}
	for i := col.down; i != &col.dlxNode; i = i.down {
		for j := i.right; j != i; j = j.right {
			j.down.up = j.up
			j.up.down = j.down
			j.col.size--
		}
	}
}

func (d *dlx) uncover(col *dlxColumn) {
	for i := col.up; i != &col.dlxNode; i = i.up {
		for j := i.left; j != i; j = j.left {
			j.col.size++
			j.down.up = j
			j.up.down = j
		}
	}
	if !col.active {
		col.active = true
		d.activeCnt++
	}
}

// chooseColumn picks the active column with the smallest size.
func (d *dlx) chooseColumn() *dlxColumn {
	var best *dlxColumn
	for _, c := range d.cols {
		if c.active {
			if best == nil || c.size < best.size {
				best = c
				if best.size == 0 {
					break
				}
			}
		}
	}
	return best
}

func (d *dlx) search(ctx context.Context, k, wantCount int, found *int) bool {
	select {
	case <-ctx.Done():
		return true // stop search
	default:
	}
	if d.activeCnt == 0 {
		d.solLen = k
		(*found)++
		return *found >= wantCount
	}

	c := d.chooseColumn()
	if c == nil || c.size == 0 {
		return false
	}
	d.cover(c)
	for r := c.down; r != &c.dlxNode; r = r.down {
		d.nodes++
		d.sol[k] = r
		for j := r.right; j != r; j = j.right {
			if j.col.active {
				d.cover(j.col)
			}
		}
		if d.search(ctx, k+1, wantCount, found) {
			for j := r.left; j != r; j = j.left {
				d.uncover(j.col)
			}
			d.uncover(c)
			return true
		}
		for j := r.left; j != r; j = j.left {
			d.uncover(j.col)
		}
	}
	d.uncover(c)
	return false
}

// applyGiven selects the (r,c,v) row at the top level and covers its
// columns. An already-covered column means the given collides with an
// earlier one.
func (d *dlx) applyGiven(r, c int, v uint8) error {
	head := d.rowHead[d.rowIndex(r, c, int(v))]
	for j := head; ; j = j.right {
		if !j.col.active {
			return fmt.Errorf("%w: duplicate %d at (%d,%d)", domain.ErrInvalidGrid, v, r, c)
		}
		if j.right == head {
			break
		}
	}
	for j := head; ; j = j.right {
		d.cover(j.col)
		if j.right == head {
			break
		}
	}
	return nil
}

func (d *dlx) applyGrid(g *domain.Grid) error {
	for r := 0; r < d.side; r++ {
		for c := 0; c < d.side; c++ {
			if v := g.Cells[r][c]; v > 0 {
				if int(v) > d.side {
					return fmt.Errorf("%w: value %d at (%d,%d)", domain.ErrOutOfRange, v, r, c)
				}
				if err := d.applyGiven(r, c, v); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func (s *DLXSolver) Solve(ctx context.Context, g *domain.Grid) (*domain.Grid, ports.Stats, error) {
	start := time.Now()
	d := newDLX(g.Box)
	if err := d.applyGrid(g); err != nil {
		return nil, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, 1, &found)
	st := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	if err := ctx.Err(); err != nil {
		return nil, st, err
	}
	if found < 1 {
		return nil, st, domain.ErrUnsolvable
	}
	out := g.Clone()
	for i := 0; i < d.solLen; i++ {
		r, c, v := d.decodeRow(d.sol[i].rowIdx)
		out.Cells[r][c] = v
	}
	return out, st, nil
}

func (s *DLXSolver) CountSolutions(ctx context.Context, g *domain.Grid, limit int) (int, ports.Stats, error) {
	start := time.Now()
	if limit <= 0 {
		limit = 2
	}
	d := newDLX(g.Box)
	if err := d.applyGrid(g); err != nil {
		return 0, ports.Stats{}, err
	}
	found := 0
	_ = d.search(ctx, 0, limit, &found)
	st := ports.Stats{Nodes: d.nodes, Duration: time.Since(start)}
	return found, st, ctx.Err()
}

func (s *DLXSolver) IsSolvable(ctx context.Context, g *domain.Grid) (bool, error) {
	_, _, err := s.Solve(ctx, g)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrUnsolvable) || errors.Is(err, domain.ErrInvalidGrid):
		return false, nil
	default:
		return false, err
	}
}
