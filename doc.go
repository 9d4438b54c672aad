// Package cubeviz models a 3x3x3 twisty cube as 26 independent cubies and
// animates face turns for a render runtime.
//
// # Lattice
//
// A Lattice holds every cubie's position, orientation and sticker colors.
// Moves are committed whole: Apply returns a new Lattice and leaves the input
// untouched.
//
//	l := cubeviz.InitialState()
//	l, err := cubeviz.ApplySequence(l, []string{"R", "U", "R'", "U'"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("Solved:", l.IsSolved())
//
// # Animation
//
// A Sequencer plays queued move tokens one at a time. The runtime calls Tick
// once per frame and draws the rotating group with Group or Frame:
//
//	seq := cubeviz.NewSequencer(cubeviz.InitialState())
//	seq.OnComplete(func(c cubeviz.Completion) {
//	    fmt.Println("done:", c.Token)
//	})
//	seq.Push("R", "U")
//	for !seq.Idle() {
//	    seq.Tick(16 * time.Millisecond)
//	}
//
// # Sessions
//
// A Session drives the scramble, solve and animate workflow against a Solver
// and exposes the status line and statistics shown by the player.
package cubeviz
