package cubeviz

// Frame is a render snapshot: the committed lattice plus the rotating group.
// A runtime draws each cubie at its committed transform and additionally
// rotates the group members by Group.Angle about Group.Axis.
type Frame struct {
	Cubies []CubieFrame `json:"cubies"`
	Group  Group        `json:"group"`
}

// CubieFrame is one cubie in a Frame.
type CubieFrame struct {
	ID       string `json:"id"`
	Position Vec3   `json:"position"`
	// Euler holds intrinsic X-Y-Z angles in radians.
	Euler [3]float64 `json:"euler"`
	// Quaternion holds w, x, y, z.
	Quaternion [4]float64 `json:"quaternion"`
	// Colors are hex strings in +x, -x, +y, -y, +z, -z order.
	Colors   [6]string `json:"colors"`
	Rotating bool      `json:"rotating"`
}

// NewFrame builds a snapshot of l with the given rotating group.
func NewFrame(l Lattice, g Group) Frame {
	rotating := make(map[string]bool, len(g.Members))
	for _, id := range g.Members {
		rotating[id] = true
	}

	f := Frame{Cubies: make([]CubieFrame, len(l)), Group: g}
	for i, c := range l {
		var colors [6]string
		for j, color := range c.Colors {
			colors[j] = color.Hex()
		}
		f.Cubies[i] = CubieFrame{
			ID:         c.ID,
			Position:   c.Position,
			Euler:      c.Orientation.Euler(),
			Quaternion: c.Orientation.Components(),
			Colors:     colors,
			Rotating:   rotating[c.ID],
		}
	}
	return f
}

// Frame returns the current render snapshot.
func (s *Sequencer) Frame() Frame {
	return NewFrame(s.lattice, s.Group())
}
