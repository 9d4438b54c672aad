package cubeviz

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Method names a solving strategy offered by the solver service.
type Method string

const (
	MethodKociemba    Method = "kociemba"
	MethodHumanHybrid Method = "human_hybrid"
)

// Methods lists the supported methods in display order.
var Methods = []Method{MethodKociemba, MethodHumanHybrid}

// DisplayName returns the label used in status messages.
func (m Method) DisplayName() string {
	switch m {
	case MethodKociemba:
		return "Machine"
	case MethodHumanHybrid:
		return "Human-Style"
	default:
		return string(m)
	}
}

// Valid reports whether m is a supported method.
func (m Method) Valid() bool {
	return m == MethodKociemba || m == MethodHumanHybrid
}

// ParseMethod resolves a method name. "machine" and "human" are accepted as aliases.
func ParseMethod(s string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "kociemba", "machine":
		return MethodKociemba, nil
	case "human_hybrid", "human", "human-style":
		return MethodHumanHybrid, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMethod, s)
}

// Solution is a solver result. Moves are kept as raw tokens; invalid ones are
// skipped during playback.
type Solution struct {
	Method   Method
	Moves    []string
	Metadata map[string]any
}

// Len returns the number of tokens.
func (s Solution) Len() int {
	return len(s.Moves)
}

func (s Solution) String() string {
	return strings.Join(s.Moves, " ")
}

// Solver produces solutions for a scramble.
type Solver interface {
	Solve(ctx context.Context, scramble string, method Method) (Solution, error)
}

// SolverError is an error reported by the solver in its response body.
type SolverError struct {
	StatusCode int
	Message    string
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("cubeviz: solver error (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap lets errors.Is match ErrSolverReported.
func (e *SolverError) Unwrap() error {
	return ErrSolverReported
}

// Mode is what the session is currently playing.
type Mode int

const (
	ModeIdle Mode = iota
	ModeScrambling
	ModeReturning
	ModeSolving
)

func (m Mode) String() string {
	switch m {
	case ModeIdle:
		return "idle"
	case ModeScrambling:
		return "scrambling"
	case ModeReturning:
		return "returning"
	case ModeSolving:
		return "solving"
	default:
		return "unknown"
	}
}

// Stats tracks the playback of a solution.
type Stats struct {
	Solution []string
	// CurrentMove is 1-based. It starts at 1 and equals Total once playback ends.
	CurrentMove int
	Elapsed     time.Duration
	Running     bool
}

// Total returns the solution length.
func (s Stats) Total() int {
	return len(s.Solution)
}

// Percent returns playback progress in [0,100].
func (s Stats) Percent() float64 {
	if s.Total() == 0 {
		return 0
	}
	done := s.CurrentMove - 1
	if !s.Running {
		done = s.CurrentMove
	}
	return 100 * float64(done) / float64(s.Total())
}

// Status messages shown by the player.
const (
	StatusReady       = "Ready"
	StatusScrambling  = "Scrambling..."
	StatusReturning   = "Returning to initial scrambled state..."
	StatusProceeding  = "Proceeding with solving the cube..."
	StatusSolutions   = "Solutions received. Choose one to animate."
	StatusUnreachable = "Error connecting to solver!"
)

func statusAnimating(m Method) string {
	return fmt.Sprintf("Animating %s solution...", m.DisplayName())
}

func statusError(msg string) string {
	return "Error: " + msg
}

func statusSkipped(tokens []string) string {
	if len(tokens) == 1 {
		return statusError(fmt.Sprintf("invalid move %q skipped", tokens[0]))
	}
	return statusError(fmt.Sprintf("%d invalid moves skipped: %s", len(tokens), strings.Join(tokens, " ")))
}

// State is the session context owned by a Session. Snapshot returns a copy.
type State struct {
	Status          string
	Mode            Mode
	ScrambleID      string
	ScrambleHistory []Move
	Results         map[Method]Solution
	Stats           Stats
	// SolvedVisual is true once a solution has played to the end and the
	// cube on screen is solved. Animating again first replays the scramble.
	SolvedVisual bool
	// FollowUp is the method queued to play after the scramble replay.
	FollowUp Method
	InFlight []Method
	// Skipped lists invalid tokens dropped during the current playback.
	Skipped []string
}

// Scramble returns the scramble as a notation string.
func (s State) Scramble() string {
	return FormatMoves(s.ScrambleHistory)
}

// followUp is a solution waiting for the replayed scramble to finish.
type followUp struct {
	method    Method
	moves     []string
	announced bool
	waited    time.Duration
}
