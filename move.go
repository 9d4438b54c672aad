package cubeviz

import (
	"fmt"
	"strings"
)

// Face represents a cube face in standard notation.
type Face string

const (
	FaceU Face = "U" // Up
	FaceD Face = "D" // Down
	FaceR Face = "R" // Right
	FaceL Face = "L" // Left
	FaceF Face = "F" // Front
	FaceB Face = "B" // Back
)

// Faces lists the six faces in vocabulary order.
var Faces = []Face{FaceU, FaceD, FaceR, FaceL, FaceF, FaceB}

// Turn represents the direction and magnitude of a face turn.
// The value is the number of quarter turns in the face's own clockwise sense.
type Turn int

const (
	CW     Turn = 1  // Clockwise (90 degrees)
	CCW    Turn = -1 // Counter-clockwise (90 degrees)
	Double Turn = 2  // Half turn (180 degrees)
)

// Move is a single face turn. Moves are data; they carry no cube state.
type Move struct {
	Face Face
	Turn Turn
}

// Notation returns the standard cube notation string for this move.
// Examples: R, R', R2
func (m Move) Notation() string {
	suffix := ""
	switch m.Turn {
	case CCW:
		suffix = "'"
	case Double:
		suffix = "2"
	}
	return string(m.Face) + suffix
}

// String returns the notation string (alias for Notation).
func (m Move) String() string {
	return m.Notation()
}

// Inverse returns the inverse of this move.
// R becomes R', R' becomes R, R2 stays R2.
func (m Move) Inverse() Move {
	inv := m
	switch m.Turn {
	case CW:
		inv.Turn = CCW
	case CCW:
		inv.Turn = CW
	}
	return inv
}

// ParseMove parses a token from the 18-move vocabulary.
// Only upper-case faces with no suffix, a prime (') or a 2 are accepted;
// anything else wraps ErrInvalidMove.
func ParseMove(s string) (Move, error) {
	if len(s) == 0 || len(s) > 2 {
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	var face Face
	switch s[0] {
	case 'U':
		face = FaceU
	case 'D':
		face = FaceD
	case 'R':
		face = FaceR
	case 'L':
		face = FaceL
	case 'F':
		face = FaceF
	case 'B':
		face = FaceB
	default:
		return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
	}

	turn := CW
	if len(s) == 2 {
		switch s[1] {
		case '\'':
			turn = CCW
		case '2':
			turn = Double
		default:
			return Move{}, fmt.Errorf("%w: %q", ErrInvalidMove, s)
		}
	}

	return Move{Face: face, Turn: turn}, nil
}

// ParseMoves parses a space-separated sequence of moves.
// Unlike token playback, parsing is strict: the first invalid token fails the whole sequence.
func ParseMoves(s string) ([]Move, error) {
	parts := strings.Fields(s)
	moves := make([]Move, 0, len(parts))

	for i, part := range parts {
		move, err := ParseMove(part)
		if err != nil {
			return nil, fmt.Errorf("token %d: %w", i, err)
		}
		moves = append(moves, move)
	}

	return moves, nil
}

// SplitMoves splits a space-separated move string into raw tokens without validating them.
func SplitMoves(s string) []string {
	return strings.Fields(s)
}

// FormatMoves formats a slice of moves as a space-separated notation string.
func FormatMoves(moves []Move) string {
	if len(moves) == 0 {
		return ""
	}

	parts := make([]string, len(moves))
	for i, m := range moves {
		parts[i] = m.Notation()
	}

	return strings.Join(parts, " ")
}

// Tokens returns the notation of each move.
func Tokens(moves []Move) []string {
	out := make([]string, len(moves))
	for i, m := range moves {
		out[i] = m.Notation()
	}
	return out
}

// InverseSequence returns the reverse-inverse of a sequence: reversed order, each move inverted.
// Applying a sequence followed by its InverseSequence is the identity.
func InverseSequence(moves []Move) []Move {
	out := make([]Move, len(moves))
	for i, m := range moves {
		out[len(moves)-1-i] = m.Inverse()
	}
	return out
}

// Simplify merges adjacent turns of the same face and drops those that cancel.
// R R becomes R2, R R' disappears, R2 R becomes R'.
func Simplify(moves []Move) []Move {
	out := make([]Move, 0, len(moves))
	for _, m := range moves {
		if n := len(out); n > 0 && out[n-1].Face == m.Face {
			quarters := normalizeQuarters(int(out[n-1].Turn) + int(m.Turn))
			if quarters == 0 {
				out = out[:n-1]
			} else {
				out[n-1].Turn = Turn(quarters)
			}
			continue
		}
		out = append(out, m)
	}
	return out
}

// normalizeQuarters folds a quarter-turn count into {-1, 0, 1, 2}.
// -3 -> 1, -2 -> 2, 3 -> -1, 4 -> 0
func normalizeQuarters(turn int) int {
	turn = ((turn % 4) + 4) % 4
	if turn == 3 {
		return -1
	}
	return turn
}
