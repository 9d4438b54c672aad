package cubeviz

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is a world axis of the scene.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return fmt.Sprintf("Axis(%d)", int(a))
	}
}

// MarshalText encodes the axis as "x", "y" or "z".
func (a Axis) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// Unit returns the positive unit vector of the axis.
func (a Axis) Unit() mgl64.Vec3 {
	switch a {
	case AxisX:
		return mgl64.Vec3{1, 0, 0}
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	default:
		return mgl64.Vec3{0, 0, 1}
	}
}

// Definition describes how one face turn moves the lattice.
type Definition struct {
	Face Face
	Axis Axis
	// UnitAngle is the sign of a clockwise quarter turn, as seen looking at
	// the face, expressed as a right-hand rotation about Axis.
	UnitAngle int
	// Layer is the sign of the axis coordinate of the turning slice.
	Layer int
}

var definitions = map[Face]Definition{
	FaceU: {Face: FaceU, Axis: AxisY, UnitAngle: -1, Layer: 1},
	FaceD: {Face: FaceD, Axis: AxisY, UnitAngle: 1, Layer: -1},
	FaceR: {Face: FaceR, Axis: AxisX, UnitAngle: -1, Layer: 1},
	FaceL: {Face: FaceL, Axis: AxisX, UnitAngle: 1, Layer: -1},
	FaceF: {Face: FaceF, Axis: AxisZ, UnitAngle: -1, Layer: 1},
	FaceB: {Face: FaceB, Axis: AxisZ, UnitAngle: 1, Layer: -1},
}

// DefinitionFor returns the table entry of a face.
func DefinitionFor(f Face) (Definition, bool) {
	d, ok := definitions[f]
	return d, ok
}

// Lookup resolves a move token into its table entry and signed turn count
// (1, -1 or 2). Unknown tokens fail with ErrInvalidMove.
func Lookup(token string) (Definition, int, error) {
	m, err := ParseMove(token)
	if err != nil {
		return Definition{}, 0, err
	}
	return definitions[m.Face], int(m.Turn), nil
}

// Selects reports whether a cubie at p belongs to the turning slice.
// The position is rounded to its lattice index first.
func (d Definition) Selects(p Vec3) bool {
	return p.Index().Component(d.Axis)*d.Layer > 0
}

// Quarters returns the signed number of right-hand quarter turns about Axis.
func (d Definition) Quarters(turns int) int {
	return d.UnitAngle * turns
}

// Angle returns the rotation angle in radians for a turn count.
func (d Definition) Angle(turns int) float64 {
	return float64(d.Quarters(turns)) * math.Pi / 2
}

// Members returns the indexes of the lattice cubies the turn moves.
func (d Definition) Members(l *Lattice) []int {
	members := make([]int, 0, 9)
	for i, c := range l {
		if d.Selects(c.Position) {
			members = append(members, i)
		}
	}
	return members
}
