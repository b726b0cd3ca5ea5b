package domain

import "fmt"

// Difficulty labels target puzzle generation & grading.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
	Expert
)

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Hard:
		return "hard"
	case Expert:
		return "expert"
	default:
		return "medium"
	}
}

// ParseDifficulty maps the string-keyed variants used by the binding
// layers ("easy", "hard", ...) onto the enum.
func ParseDifficulty(s string) (Difficulty, error) {
	switch s {
	case "easy":
		return Easy, nil
	case "medium", "":
		return Medium, nil
	case "hard":
		return Hard, nil
	case "expert":
		return Expert, nil
	default:
		return Medium, fmt.Errorf("%w: difficulty %q", ErrMalformedInput, s)
	}
}

// HintKind says how a hint was justified: a logically forced cell, or a
// value taken from a full solve when no forced step exists.
type HintKind int

const (
	HintForced HintKind = iota
	HintGuessed
)

func (k HintKind) String() string {
	if k == HintGuessed {
		return "guessed"
	}
	return "forced"
}

// MarshalJSON renders the kind as its string form for the API surface.
func (k HintKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// UnmarshalJSON parses the string form produced by MarshalJSON.
func (k *HintKind) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"forced"`:
		*k = HintForced
	case `"guessed"`:
		*k = HintGuessed
	default:
		return fmt.Errorf("%w: hint kind %s", ErrMalformedInput, b)
	}
	return nil
}
