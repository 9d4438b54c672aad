package cubeviz

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Orientation is a unit quaternion restricted to the 24 rotations of a cube.
type Orientation mgl64.Quat

// Identity is the orientation of every cubie in the solved lattice.
var Identity = Orientation(mgl64.QuatIdent())

// quaternionLevels are the magnitudes a cube-rotation quaternion component can take.
var quaternionLevels = [...]float64{0, 0.5, math.Sqrt2 / 2, 1}

// quarterTurn returns the exact rotation of quarters*90 degrees about an axis.
func quarterTurn(a Axis, quarters int) mgl64.Quat {
	angle := float64(normalizeQuarters(quarters)) * math.Pi / 2
	return snapQuaternion(mgl64.QuatRotate(angle, a.Unit()))
}

// Compose returns the orientation after applying the world-space rotation q.
// The move rotation is pre-multiplied, so it acts after the current orientation.
func (o Orientation) Compose(q mgl64.Quat) Orientation {
	return Orientation(snapQuaternion(q.Mul(mgl64.Quat(o))))
}

// Quat returns the underlying quaternion.
func (o Orientation) Quat() mgl64.Quat {
	return mgl64.Quat(o)
}

// Components returns the quaternion as w, x, y, z.
func (o Orientation) Components() [4]float64 {
	return [4]float64{o.W, o.V[0], o.V[1], o.V[2]}
}

// Euler returns intrinsic X-Y-Z Euler angles in radians, the default order of
// common scene-graph runtimes.
func (o Orientation) Euler() [3]float64 {
	m := mgl64.Quat(o).Mat4()
	m13 := clamp(m.At(0, 2), -1, 1)
	y := math.Asin(m13)
	if math.Abs(m13) < 0.9999999 {
		return [3]float64{math.Atan2(-m.At(1, 2), m.At(2, 2)), y, math.Atan2(-m.At(0, 1), m.At(0, 0))}
	}
	return [3]float64{math.Atan2(m.At(2, 1), m.At(1, 1)), y, 0}
}

// RotateNormal rotates an axis-aligned direction and rounds it back to the grid.
func (o Orientation) RotateNormal(n Coord) Coord {
	v := mgl64.Quat(o).Rotate(mgl64.Vec3{float64(n.X), float64(n.Y), float64(n.Z)})
	return Coord{X: int(math.Round(v[0])), Y: int(math.Round(v[1])), Z: int(math.Round(v[2]))}
}

// IsCubeRotation reports whether o is one of the 24 canonical cube rotations.
func (o Orientation) IsCubeRotation() bool {
	if Orientation(snapQuaternion(mgl64.Quat(o))) != o {
		return false
	}
	seen := make(map[Coord]bool, 6)
	for _, n := range slotNormals {
		r := o.RotateNormal(n)
		if abs(r.X)+abs(r.Y)+abs(r.Z) != 1 || seen[r] {
			return false
		}
		seen[r] = true
	}
	return true
}

func (o Orientation) String() string {
	return fmt.Sprintf("[%.4f %.4f %.4f %.4f]", o.W, o.V[0], o.V[1], o.V[2])
}

// snapQuaternion normalizes q, snaps each component to the nearest value a
// cube rotation can hold and fixes the sign so equal rotations compare equal.
func snapQuaternion(q mgl64.Quat) mgl64.Quat {
	q = q.Normalize()
	c := [4]float64{snapComponent(q.W), snapComponent(q.V[0]), snapComponent(q.V[1]), snapComponent(q.V[2])}
	for _, v := range c {
		if v == 0 {
			continue
		}
		if v < 0 {
			for i := range c {
				c[i] = -c[i]
			}
		}
		break
	}
	for i := range c {
		// fold -0 into 0
		if c[i] == 0 {
			c[i] = 0
		}
	}
	return mgl64.Quat{W: c[0], V: mgl64.Vec3{c[1], c[2], c[3]}}
}

func snapComponent(v float64) float64 {
	best := quaternionLevels[0]
	for _, level := range quaternionLevels[1:] {
		if math.Abs(math.Abs(v)-level) < math.Abs(math.Abs(v)-best) {
			best = level
		}
	}
	if v < 0 {
		return -best
	}
	return best
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
