package domain

// CellCoord identifies a cell on the board.
type CellCoord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Hint is one safe next step: a cell, the value to place there, and how the
// step was justified. Recomputed on every call, never cached.
type Hint struct {
	Cell    CellCoord `json:"cell"`
	Value   uint8     `json:"value"`
	Kind    HintKind  `json:"kind"`
	Message string    `json:"message,omitempty"`
}

// Puzzle pairs a generated puzzle with its unique solution, plus the
// metadata the storage and HTTP layers carry.
type Puzzle struct {
	ID         string     `json:"id,omitempty"`
	Seed       int64      `json:"seed,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	Puzzle     *Grid      `json:"puzzle"`
	Solution   *Grid      `json:"solution,omitempty"`
	CreatedAt  int64      `json:"createdAt,omitempty"`
	// Optional user metadata
	Name  string `json:"name,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// PuzzleMeta is a lightweight listing entry.
type PuzzleMeta struct {
	ID         string     `json:"id"`
	Name       string     `json:"name,omitempty"`
	Difficulty Difficulty `json:"difficulty"`
	CreatedAt  int64      `json:"createdAt"`
}
