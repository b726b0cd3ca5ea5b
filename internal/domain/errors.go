package domain

import "errors"

// Error taxonomy for the engine. Callers match with errors.Is; every
// operation wraps these with position/value context via fmt.Errorf("%w").
var (
	// ErrMalformedInput marks parse failures (wrong length, bad character,
	// ragged nested arrays). Caller-correctable.
	ErrMalformedInput = errors.New("malformed input")

	// ErrOutOfRange marks a cell coordinate or value outside the board.
	ErrOutOfRange = errors.New("out of range")

	// ErrInvalidGrid marks a structurally illegal grid (duplicate in a
	// row, column, or box) handed to the solver or generator.
	ErrInvalidGrid = errors.New("invalid grid")

	// ErrUnsolvable marks a well-formed grid with no completion.
	ErrUnsolvable = errors.New("unsolvable")

	// ErrGenerationTimeout is the generator's safety valve: the retry
	// budget ran out before any uniqueness-preserving puzzle was produced.
	ErrGenerationTimeout = errors.New("generation timeout")
)
