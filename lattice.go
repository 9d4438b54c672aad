package cubeviz

import (
	"fmt"
	"math"
)

// Spacing is the distance between neighbouring lattice cells.
// Cubies are unit boxes; the extra 0.05 leaves a visible gap between them.
const Spacing = 1.05

// snapTolerance is the largest distance from a lattice point that still snaps onto it.
const snapTolerance = 0.01 * Spacing

// Color represents a sticker color.
type Color byte

const (
	White  Color = 0 // Up face when solved
	Yellow Color = 1 // Down face when solved
	Green  Color = 2 // Front face when solved
	Blue   Color = 3 // Back face when solved
	Red    Color = 4 // Right face when solved
	Orange Color = 5 // Left face when solved
	Hidden Color = 6 // Interior face, never visible at rest
)

func (c Color) String() string {
	switch c {
	case White:
		return "W"
	case Yellow:
		return "Y"
	case Green:
		return "G"
	case Blue:
		return "B"
	case Red:
		return "R"
	case Orange:
		return "O"
	case Hidden:
		return "."
	default:
		return "?"
	}
}

// Hex returns the display color for the render runtime.
func (c Color) Hex() string {
	switch c {
	case White:
		return "#ffffff"
	case Yellow:
		return "#ffff00"
	case Green:
		return "#009b48"
	case Blue:
		return "#0046ad"
	case Red:
		return "#b71234"
	case Orange:
		return "#ff8c00"
	default:
		return "#222222"
	}
}

// Local face slots of Cubie.Colors, in box-material order.
const (
	SlotPosX = iota
	SlotNegX
	SlotPosY
	SlotNegY
	SlotPosZ
	SlotNegZ
)

// slotNormals holds the local outward normal of each color slot.
var slotNormals = [6]Coord{
	{X: 1}, {X: -1},
	{Y: 1}, {Y: -1},
	{Z: 1}, {Z: -1},
}

// Vec3 is a point or direction in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Index returns the nearest lattice index of a scene point.
// Rounding absorbs floating-point noise left by earlier rotations.
func (v Vec3) Index() Coord {
	return Coord{
		X: int(math.Round(v.X / Spacing)),
		Y: int(math.Round(v.Y / Spacing)),
		Z: int(math.Round(v.Z / Spacing)),
	}
}

func (v Vec3) String() string {
	return fmt.Sprintf("(%+.3f, %+.3f, %+.3f)", v.X, v.Y, v.Z)
}

// SnapPosition snaps a scene point to its lattice point.
// It fails with ErrInvariantViolation when the point is further than 1% of the
// spacing from every lattice point or lies outside the 3x3x3 block.
func SnapPosition(v Vec3) (Vec3, error) {
	idx := v.Index()
	if !idx.inBounds() {
		return Vec3{}, fmt.Errorf("%w: %v is outside the lattice", ErrInvariantViolation, v)
	}
	p := idx.Position()
	if math.Abs(p.X-v.X) > snapTolerance || math.Abs(p.Y-v.Y) > snapTolerance || math.Abs(p.Z-v.Z) > snapTolerance {
		return Vec3{}, fmt.Errorf("%w: %v drifted from lattice point %v", ErrInvariantViolation, v, p)
	}
	return p, nil
}

// Coord is an integer lattice index; each component is -1, 0 or 1.
type Coord struct {
	X, Y, Z int
}

// Position returns the scene position of a lattice index.
func (c Coord) Position() Vec3 {
	return Vec3{X: float64(c.X) * Spacing, Y: float64(c.Y) * Spacing, Z: float64(c.Z) * Spacing}
}

// Component returns the coordinate along an axis.
func (c Coord) Component(a Axis) int {
	switch a {
	case AxisX:
		return c.X
	case AxisY:
		return c.Y
	default:
		return c.Z
	}
}

// Rotate turns the index by a number of quarter turns about an axis
// (right-hand rule). A quarter turn is a swap of two components plus a sign flip.
func (c Coord) Rotate(a Axis, quarters int) Coord {
	for q := normalizeQuarters(quarters); q != 0; {
		if q < 0 {
			c = c.rotateOnce(a, -1)
			q++
			continue
		}
		c = c.rotateOnce(a, 1)
		q--
	}
	return c
}

func (c Coord) rotateOnce(a Axis, dir int) Coord {
	switch a {
	case AxisX:
		return Coord{X: c.X, Y: -dir * c.Z, Z: dir * c.Y}
	case AxisY:
		return Coord{X: dir * c.Z, Y: c.Y, Z: -dir * c.X}
	default:
		return Coord{X: -dir * c.Y, Y: dir * c.X, Z: c.Z}
	}
}

func (c Coord) inBounds() bool {
	return c.X >= -1 && c.X <= 1 && c.Y >= -1 && c.Y <= 1 && c.Z >= -1 && c.Z <= 1
}

func (c Coord) isOrigin() bool {
	return c == Coord{}
}

// Cubie is one of the 26 moveable pieces. A move replaces cubies; it never
// edits one in place.
type Cubie struct {
	// ID is derived from the initial lattice index and never changes.
	ID          string
	Position    Vec3
	Orientation Orientation
	// Colors is indexed by the Slot constants and travels with the piece.
	Colors [6]Color

	home Coord
}

// Home returns the lattice index the cubie started at.
func (c Cubie) Home() Coord {
	return c.home
}

// Lattice is the full cube state: 26 cubies in construction order.
type Lattice [26]Cubie

// InitialState returns the solved lattice. Cubies are ordered by x, then y,
// then z over -1..1, skipping the hidden core.
func InitialState() Lattice {
	var l Lattice
	i := 0
	for x := -1; x <= 1; x++ {
		for y := -1; y <= 1; y++ {
			for z := -1; z <= 1; z++ {
				c := Coord{X: x, Y: y, Z: z}
				if c.isOrigin() {
					continue
				}
				l[i] = Cubie{
					ID:          cubieID(c),
					Position:    c.Position(),
					Orientation: Identity,
					Colors:      initialColors(c),
					home:        c,
				}
				i++
			}
		}
	}
	return l
}

func cubieID(c Coord) string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// initialColors puts a sticker only on the outward-facing sides of a cell.
func initialColors(c Coord) [6]Color {
	pick := func(cond bool, color Color) Color {
		if cond {
			return color
		}
		return Hidden
	}
	return [6]Color{
		pick(c.X == 1, Red), pick(c.X == -1, Orange),
		pick(c.Y == 1, White), pick(c.Y == -1, Yellow),
		pick(c.Z == 1, Green), pick(c.Z == -1, Blue),
	}
}

// Find returns the cubie with the given ID.
func (l *Lattice) Find(id string) (Cubie, bool) {
	for _, c := range l {
		if c.ID == id {
			return c, true
		}
	}
	return Cubie{}, false
}

// At returns the cubie currently occupying a lattice index.
func (l *Lattice) At(idx Coord) (Cubie, bool) {
	for _, c := range l {
		if c.Position.Index() == idx {
			return c, true
		}
	}
	return Cubie{}, false
}

// IsSolved reports whether every visible sticker matches its face.
// Centre cubies may be spun in place; that does not change the stickers.
func (l *Lattice) IsSolved() bool {
	return l.Facelets().IsSolved()
}

// Verify checks the at-rest invariants: every cubie sits exactly on a distinct,
// non-core lattice point and every orientation is a cube rotation.
func Verify(l Lattice) error {
	seen := make(map[Coord]string, len(l))
	for _, c := range l {
		for _, v := range []float64{c.Position.X, c.Position.Y, c.Position.Z} {
			if v != -Spacing && v != 0 && v != Spacing {
				return fmt.Errorf("%w: cubie %s at %v is off the lattice", ErrInvariantViolation, c.ID, c.Position)
			}
		}
		idx := c.Position.Index()
		if idx.isOrigin() {
			return fmt.Errorf("%w: cubie %s moved into the core", ErrInvariantViolation, c.ID)
		}
		if other, ok := seen[idx]; ok {
			return fmt.Errorf("%w: cubies %s and %s share %v", ErrInvariantViolation, other, c.ID, c.Position)
		}
		seen[idx] = c.ID
		if !c.Orientation.IsCubeRotation() {
			return fmt.Errorf("%w: cubie %s has orientation %v", ErrInvariantViolation, c.ID, c.Orientation)
		}
	}
	return nil
}
