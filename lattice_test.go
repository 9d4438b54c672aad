package cubeviz

import (
	"errors"
	"math"
	"testing"
)

func TestInitialStateIsSolved(t *testing.T) {
	l := InitialState()
	if err := Verify(l); err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !l.IsSolved() {
		t.Error("initial lattice should be solved")
		t.Log(l.Facelets().String())
	}

	ids := make(map[string]bool)
	for _, c := range l {
		if ids[c.ID] {
			t.Errorf("duplicate cubie ID %s", c.ID)
		}
		ids[c.ID] = true
		if c.Orientation != Identity {
			t.Errorf("cubie %s orientation = %v, want identity", c.ID, c.Orientation)
		}
		if c.Home() != c.Position.Index() {
			t.Errorf("cubie %s home %v, at %v", c.ID, c.Home(), c.Position.Index())
		}
	}
	if len(ids) != 26 {
		t.Errorf("got %d cubies, want 26", len(ids))
	}
}

func TestHomeSurvivesMoves(t *testing.T) {
	l, err := ApplySequence(InitialState(), []string{"R", "U", "F'", "D2"})
	if err != nil {
		t.Fatal(err)
	}
	initial := InitialState()
	moved := 0
	for i, c := range l {
		want := initial[i].Position.Index()
		if c.Home() != want {
			t.Errorf("cubie %s home = %v, want %v", c.ID, c.Home(), want)
		}
		if c.Home() != c.Position.Index() {
			moved++
		}
	}
	if moved == 0 {
		t.Error("scramble moved no cubies")
	}
}

func TestInitialColors(t *testing.T) {
	l := InitialState()

	corner, ok := l.Find("1,1,1")
	if !ok {
		t.Fatal("corner 1,1,1 not found")
	}
	want := [6]Color{Red, Hidden, White, Hidden, Green, Hidden}
	if corner.Colors != want {
		t.Errorf("corner colors = %v, want %v", corner.Colors, want)
	}

	center, _ := l.Find("0,-1,0")
	want = [6]Color{Hidden, Hidden, Hidden, Yellow, Hidden, Hidden}
	if center.Colors != want {
		t.Errorf("down center colors = %v, want %v", center.Colors, want)
	}
}

func TestPositionsUseSpacing(t *testing.T) {
	l := InitialState()
	c, _ := l.Find("-1,0,1")
	want := Vec3{X: -1.05, Y: 0, Z: 1.05}
	if c.Position != want {
		t.Errorf("position = %v, want %v", c.Position, want)
	}
}

func TestSnapPosition(t *testing.T) {
	got, err := SnapPosition(Vec3{X: 1.0500000001, Y: -0.0000003, Z: -1.049999})
	if err != nil {
		t.Fatalf("SnapPosition: %v", err)
	}
	if got != (Vec3{X: Spacing, Y: 0, Z: -Spacing}) {
		t.Errorf("got %v", got)
	}

	if _, err := SnapPosition(Vec3{X: 0.8}); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("drifted point: err = %v, want ErrInvariantViolation", err)
	}
	if _, err := SnapPosition(Vec3{X: 2.1}); !errors.Is(err, ErrInvariantViolation) {
		t.Errorf("outside point: err = %v, want ErrInvariantViolation", err)
	}
}

func TestVerifyDetectsViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(l *Lattice)
	}{
		{"off lattice", func(l *Lattice) { l[0].Position.X += 0.001 }},
		{"shared cell", func(l *Lattice) { l[1].Position = l[0].Position }},
		{"core", func(l *Lattice) { l[0].Position = Vec3{} }},
		{"bad orientation", func(l *Lattice) { l[0].Orientation.W = 0.9 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := InitialState()
			tt.mutate(&l)
			if err := Verify(l); !errors.Is(err, ErrInvariantViolation) {
				t.Errorf("Verify = %v, want ErrInvariantViolation", err)
			}
		})
	}
}

func TestQuarterTurnIsCubeRotation(t *testing.T) {
	for _, a := range []Axis{AxisX, AxisY, AxisZ} {
		for _, q := range []int{-1, 1, 2} {
			o := Identity.Compose(quarterTurn(a, q))
			if !o.IsCubeRotation() {
				t.Errorf("%v %d: %v is not a cube rotation", a, q, o)
			}
		}
	}
}

func TestOrientationEuler(t *testing.T) {
	tests := []struct {
		axis Axis
		want [3]float64
	}{
		{AxisX, [3]float64{math.Pi / 2, 0, 0}},
		{AxisY, [3]float64{0, math.Pi / 2, 0}},
		{AxisZ, [3]float64{0, 0, math.Pi / 2}},
	}
	if got := Identity.Euler(); got != ([3]float64{}) {
		t.Errorf("identity Euler = %v", got)
	}
	for _, tt := range tests {
		got := Identity.Compose(quarterTurn(tt.axis, 1)).Euler()
		for i := range got {
			if math.Abs(got[i]-tt.want[i]) > 1e-9 {
				t.Errorf("%v: Euler = %v, want %v", tt.axis, got, tt.want)
				break
			}
		}
	}
}

func TestFaceletsSolved(t *testing.T) {
	l := InitialState()
	want := "WWWWWWWWWYYYYYYYYYRRRRRRRRROOOOOOOOOGGGGGGGGGBBBBBBBBB"
	if got := l.Facelets().String(); got != want {
		t.Errorf("facelets = %s, want %s", got, want)
	}
}

func TestFaceletsAfterU(t *testing.T) {
	l, err := Apply(InitialState(), "U")
	if err != nil {
		t.Fatal(err)
	}
	front := l.Facelets().Face(FaceF)
	for i := 0; i < 3; i++ {
		if front[i] != Red {
			t.Errorf("front top row[%d] = %v, want R", i, front[i])
		}
	}
	for i := 3; i < 9; i++ {
		if front[i] != Green {
			t.Errorf("front[%d] = %v, want G", i, front[i])
		}
	}
}

func TestCenterSpinStaysSolved(t *testing.T) {
	l, err := Apply(InitialState(), "U")
	if err != nil {
		t.Fatal(err)
	}
	center, _ := l.Find("0,1,0")
	if center.Orientation == Identity {
		t.Error("U should spin the up center")
	}
	if center.Position != (Vec3{Y: Spacing}) {
		t.Errorf("up center moved to %v", center.Position)
	}
	for i, c := range l.Facelets().Face(FaceU) {
		if c != White {
			t.Errorf("up[%d] = %v, want W", i, c)
		}
	}
}

func TestStickerCoordRoundTrip(t *testing.T) {
	for _, f := range Faces {
		for i := 0; i < 9; i++ {
			c := StickerCoord(f, i)
			if got := stickerIndex(f, c); got != i {
				t.Errorf("%s[%d]: coord %v maps back to %d", f, i, c, got)
			}
			if c.Component(faceAxis(f))*faceLayer(f) != 1 {
				t.Errorf("%s[%d]: coord %v is not on the face", f, i, c)
			}
		}
	}
}

func faceAxis(f Face) Axis {
	d, _ := DefinitionFor(f)
	return d.Axis
}

func faceLayer(f Face) int {
	d, _ := DefinitionFor(f)
	return d.Layer
}
