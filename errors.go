package cubeviz

import "errors"

// Sentinel errors for the cubeviz package.
var (
	// Move errors
	ErrInvalidMove = errors.New("cubeviz: invalid move")

	// Lattice errors. A violation is a defect in the applier, never a user error.
	ErrInvariantViolation = errors.New("cubeviz: lattice invariant violated")

	// Solver errors
	ErrSolverUnavailable = errors.New("cubeviz: solver unavailable")
	ErrSolverReported    = errors.New("cubeviz: solver reported an error")

	// State errors
	ErrBusy            = errors.New("cubeviz: animation in progress")
	ErrFollowUpPending = errors.New("cubeviz: follow-up animation pending")
	ErrNoScramble      = errors.New("cubeviz: no scramble to solve")
	ErrNoSolution      = errors.New("cubeviz: no solution for method")
	ErrRequestInFlight = errors.New("cubeviz: solve request already in flight")
	ErrInvalidLength   = errors.New("cubeviz: scramble length out of range")
	ErrUnknownMethod   = errors.New("cubeviz: unknown solve method")
)
