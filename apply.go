package cubeviz

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Apply commits one move token to a lattice and returns the new lattice.
// The input is not modified. Unknown tokens fail with ErrInvalidMove.
func Apply(l Lattice, token string) (Lattice, error) {
	def, turns, err := Lookup(token)
	if err != nil {
		return l, err
	}
	return commit(l, def, turns)
}

// ApplyMove commits a parsed move.
func ApplyMove(l Lattice, m Move) (Lattice, error) {
	def, ok := DefinitionFor(m.Face)
	if !ok {
		return l, fmt.Errorf("%w: face %q", ErrInvalidMove, m.Face)
	}
	return commit(l, def, int(m.Turn))
}

// ApplySequence commits tokens in order. It stops at the first invalid token
// and returns the lattice reached so far together with the error.
func ApplySequence(l Lattice, tokens []string) (Lattice, error) {
	for i, token := range tokens {
		next, err := Apply(l, token)
		if err != nil {
			return l, fmt.Errorf("token %d: %w", i, err)
		}
		l = next
	}
	return l, nil
}

// ApplyMoves commits parsed moves in order.
func ApplyMoves(l Lattice, moves []Move) (Lattice, error) {
	for _, m := range moves {
		next, err := ApplyMove(l, m)
		if err != nil {
			return l, err
		}
		l = next
	}
	return l, nil
}

// commit rotates the selected slice by the full move angle. Positions are
// rotated by the move quaternion and snapped back onto the lattice; orientations
// are pre-multiplied and snapped to the nearest cube rotation. Unselected
// cubies are copied through untouched.
func commit(l Lattice, def Definition, turns int) (Lattice, error) {
	quarters := def.Quarters(turns)
	q := quarterTurn(def.Axis, quarters)

	next := l
	for _, i := range def.Members(&l) {
		c := l[i]
		pos, err := rotatePosition(q, c.Position)
		if err != nil {
			return l, fmt.Errorf("rotate %s: %w", c.ID, err)
		}
		c.Position = pos
		c.Orientation = c.Orientation.Compose(q)
		next[i] = c
	}

	if err := Verify(next); err != nil {
		return l, err
	}
	return next, nil
}

func rotatePosition(q mgl64.Quat, p Vec3) (Vec3, error) {
	v := q.Rotate(mgl64.Vec3{p.X, p.Y, p.Z})
	return SnapPosition(Vec3{X: v[0], Y: v[1], Z: v[2]})
}
