package cubeviz

import "strings"

// Facelets is the sticker view of a lattice: nine stickers per face, indexed
// by the position of the face in Faces. Stickers are row-major as seen
// looking at the face, with U and D drawn relative to F.
type Facelets [6][9]Color

// faceNormals maps each face to its outward world normal.
var faceNormals = map[Face]Coord{
	FaceU: {Y: 1}, FaceD: {Y: -1},
	FaceR: {X: 1}, FaceL: {X: -1},
	FaceF: {Z: 1}, FaceB: {Z: -1},
}

func faceIndex(f Face) int {
	for i, face := range Faces {
		if face == f {
			return i
		}
	}
	return -1
}

// stickerIndex returns the row-major slot of the sticker a cubie at c shows on face f.
func stickerIndex(f Face, c Coord) int {
	var row, col int
	switch f {
	case FaceU:
		row, col = c.Z+1, c.X+1
	case FaceD:
		row, col = 1-c.Z, c.X+1
	case FaceF:
		row, col = 1-c.Y, c.X+1
	case FaceB:
		row, col = 1-c.Y, 1-c.X
	case FaceR:
		row, col = 1-c.Y, 1-c.Z
	case FaceL:
		row, col = 1-c.Y, c.Z+1
	}
	return row*3 + col
}

// Facelets projects the lattice onto its 54 visible stickers.
func (l *Lattice) Facelets() Facelets {
	var out Facelets
	for fi := range out {
		for i := range out[fi] {
			out[fi][i] = Hidden
		}
	}
	for _, c := range l {
		idx := c.Position.Index()
		for slot, color := range c.Colors {
			if color == Hidden {
				continue
			}
			normal := c.Orientation.RotateNormal(slotNormals[slot])
			for face, n := range faceNormals {
				if n != normal {
					continue
				}
				// a sticker only shows when the cubie sits in that face's layer
				if idx.X*n.X+idx.Y*n.Y+idx.Z*n.Z != 1 {
					continue
				}
				out[faceIndex(face)][stickerIndex(face, idx)] = color
			}
		}
	}
	return out
}

// Face returns the nine stickers of one face.
func (f Facelets) Face(face Face) [9]Color {
	return f[faceIndex(face)]
}

// IsSolved reports whether each face shows a single color.
func (f Facelets) IsSolved() bool {
	for _, face := range f {
		for _, c := range face {
			if c != face[4] || c == Hidden {
				return false
			}
		}
	}
	return true
}

// String returns the stickers as a 54-character string in Faces order.
func (f Facelets) String() string {
	var sb strings.Builder
	sb.Grow(54)
	for _, face := range f {
		for _, c := range face {
			sb.WriteString(c.String())
		}
	}
	return sb.String()
}

// StickerCoord returns the lattice index of the cubie that shows sticker
// index (0..8, row-major) on a face.
func StickerCoord(f Face, index int) Coord {
	row, col := index/3, index%3
	switch f {
	case FaceU:
		return Coord{X: col - 1, Y: 1, Z: row - 1}
	case FaceD:
		return Coord{X: col - 1, Y: -1, Z: 1 - row}
	case FaceF:
		return Coord{X: col - 1, Y: 1 - row, Z: 1}
	case FaceB:
		return Coord{X: 1 - col, Y: 1 - row, Z: -1}
	case FaceR:
		return Coord{X: 1, Y: 1 - row, Z: 1 - col}
	default:
		return Coord{X: -1, Y: 1 - row, Z: col - 1}
	}
}
