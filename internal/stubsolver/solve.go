// Package stubsolver is a local stand-in for the solver service. It answers
// the same POST /solve contract by replaying the inverse of the scramble, so
// it never searches for a short solution.
package stubsolver

import (
	"errors"
	"fmt"

	"github.com/TheDeepDelve/cubeviz"
)

var (
	errNoScramble    = errors.New("no scramble provided")
	errInvalidMethod = errors.New("invalid method specified")
)

// Result is a computed solution in wire form.
type Result struct {
	Solution     string
	FullSolution string
	Metadata     map[string]any
}

// Solve computes a solution for the scramble string.
func Solve(scramble string, method cubeviz.Method) (Result, error) {
	moves, err := cubeviz.ParseMoves(scramble)
	if err != nil {
		return Result{}, fmt.Errorf("invalid scramble: %w", err)
	}
	if len(moves) == 0 {
		return Result{}, errNoScramble
	}

	switch method {
	case cubeviz.MethodKociemba:
		solution := cubeviz.Simplify(cubeviz.InverseSequence(moves))
		return Result{
			Solution: cubeviz.FormatMoves(solution),
			Metadata: map[string]any{"method": "Kociemba", "moves": len(solution)},
		}, nil

	case cubeviz.MethodHumanHybrid:
		// Play a T-perm first, then undo both the scramble and the T-perm.
		setup := append(append([]cubeviz.Move(nil), moves...), cubeviz.TPerm...)
		rest := cubeviz.Simplify(cubeviz.InverseSequence(setup))
		full := append(append([]cubeviz.Move(nil), cubeviz.TPerm...), rest...)
		return Result{
			Solution:     cubeviz.FormatMoves(rest),
			FullSolution: cubeviz.FormatMoves(full),
			Metadata: map[string]any{
				"method":       "Human-Hybrid",
				"modification": cubeviz.FormatMoves(cubeviz.TPerm),
				"moves":        len(full),
			},
		}, nil
	}
	return Result{}, errInvalidMethod
}
