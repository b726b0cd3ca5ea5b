package domain

import (
	"fmt"
	"math"
	"strings"
)

// Compact codec: one character per cell, row-major. '.' (or '0' / ' ' on
// input) is empty, values 1..9 are digits, 10..25 are 'A'..'P'. This is the
// single-line interchange form used by the CLI and HTTP adapters.

// ParseCompact builds a grid from its compact form. The side length is
// inferred from the text length, which must be a fourth power (side^2 with
// side itself a perfect square).
func ParseCompact(text string) (*Grid, error) {
	text = strings.TrimSpace(text)
	n := len(text)
	side := int(math.Round(math.Sqrt(float64(n))))
	if side*side != n {
		return nil, fmt.Errorf("%w: length %d is not a square", ErrMalformedInput, n)
	}
	box := int(math.Round(math.Sqrt(float64(side))))
	if box*box != side {
		return nil, fmt.Errorf("%w: side %d is not a square", ErrMalformedInput, side)
	}
	g, err := New(box)
	if err != nil {
		return nil, fmt.Errorf("%w: side %d", ErrMalformedInput, side)
	}
	for i := 0; i < n; i++ {
		r, c := i/side, i%side
		v, err := parseCell(text[i], side)
		if err != nil {
			return nil, fmt.Errorf("%w: %q at position %d", ErrMalformedInput, text[i], i)
		}
		g.Cells[r][c] = v
	}
	return g, nil
}

// FormatCompact renders the grid in its compact form.
func FormatCompact(g *Grid) string {
	side := g.Side()
	var b strings.Builder
	b.Grow(side * side)
	for r := 0; r < side; r++ {
		for c := 0; c < side; c++ {
			b.WriteByte(formatCell(g.Cells[r][c]))
		}
	}
	return b.String()
}

// FormatPretty renders the grid as a human-readable block with box
// separators, in the style of the CLI output.
func FormatPretty(g *Grid) string {
	side, box := g.Side(), g.Box
	var b strings.Builder
	for r := 0; r < side; r++ {
		if r > 0 && r%box == 0 {
			b.WriteString(strings.Repeat("-", side*2+box-1))
			b.WriteByte('\n')
		}
		for c := 0; c < side; c++ {
			if c > 0 && c%box == 0 {
				b.WriteByte('|')
			}
			b.WriteByte(formatCell(g.Cells[r][c]))
			b.WriteByte(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}

func parseCell(ch byte, side int) (uint8, error) {
	switch {
	case ch == '0' || ch == '.' || ch == ' ':
		return 0, nil
	case ch >= '1' && ch <= '9':
		v := ch - '0'
		if int(v) > side {
			return 0, ErrMalformedInput
		}
		return v, nil
	case ch >= 'A' && ch <= 'Z':
		v := ch - 'A' + 10
		if int(v) > side {
			return 0, ErrMalformedInput
		}
		return v, nil
	default:
		return 0, ErrMalformedInput
	}
}

func formatCell(v uint8) byte {
	switch {
	case v == 0:
		return '.'
	case v <= 9:
		return '0' + v
	default:
		return 'A' + v - 10
	}
}

// ToNested returns the grid as a nested int slice for JSON-like interchange.
func ToNested(g *Grid) [][]int {
	out := make([][]int, len(g.Cells))
	for r, row := range g.Cells {
		out[r] = make([]int, len(row))
		for c, v := range row {
			out[r][c] = int(v)
		}
	}
	return out
}

// FromNested builds a grid from a nested int slice. The box size is
// inferred from the outer length.
func FromNested(rows [][]int) (*Grid, error) {
	side := len(rows)
	box := int(math.Round(math.Sqrt(float64(side))))
	if box*box != side {
		return nil, fmt.Errorf("%w: %d rows is not a square side", ErrMalformedInput, side)
	}
	g, err := New(box)
	if err != nil {
		return nil, fmt.Errorf("%w: side %d", ErrMalformedInput, side)
	}
	for r, row := range rows {
		if len(row) != side {
			return nil, fmt.Errorf("%w: row %d has %d cells (want %d)", ErrMalformedInput, r, len(row), side)
		}
		for c, v := range row {
			if v < 0 || v > side {
				return nil, fmt.Errorf("%w: value %d at (%d,%d)", ErrMalformedInput, v, r, c)
			}
			g.Cells[r][c] = uint8(v)
		}
	}
	return g, nil
}
