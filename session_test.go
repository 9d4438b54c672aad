package cubeviz

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

const testStep = 100 * time.Millisecond

type fakeSolver struct {
	moves map[Method][]string
	err   error
	calls []string
}

func (f *fakeSolver) Solve(_ context.Context, scramble string, method Method) (Solution, error) {
	f.calls = append(f.calls, string(method)+":"+scramble)
	if f.err != nil {
		return Solution{}, f.err
	}
	return Solution{Method: method, Moves: f.moves[method]}, nil
}

func newTestSession(t *testing.T, solver Solver) *Session {
	t.Helper()
	return NewSession(solver,
		WithMoveDuration(testStep),
		WithFollowUpDelay(1500*time.Millisecond),
		WithRand(rand.New(rand.NewSource(1))),
	)
}

func drain(t *testing.T, s *Session) {
	t.Helper()
	for i := 0; i < 1000; i++ {
		if !s.Animating() {
			return
		}
		s.Tick(testStep)
	}
	t.Fatal("session never went idle")
}

func TestSessionSolveScenario(t *testing.T) {
	solver := &fakeSolver{moves: map[Method][]string{MethodKociemba: {"R'"}}}
	s := newTestSession(t, solver)

	if err := s.ScrambleSequence([]Move{R}); err != nil {
		t.Fatal(err)
	}
	if got := s.Status(); got != StatusScrambling {
		t.Errorf("status = %q, want %q", got, StatusScrambling)
	}
	drain(t, s)
	if got := s.Status(); got != StatusReady {
		t.Errorf("status after scramble = %q, want Ready", got)
	}

	if err := s.RequestSolve(context.Background(), MethodKociemba); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"kociemba:R"}, solver.calls); diff != "" {
		t.Errorf("solver calls (-want +got):\n%s", diff)
	}
	if got := s.Status(); got != StatusSolutions {
		t.Errorf("status = %q, want %q", got, StatusSolutions)
	}

	if err := s.Animate(MethodKociemba); err != nil {
		t.Fatal(err)
	}
	if got := s.Status(); got != "Animating Machine solution..." {
		t.Errorf("status = %q", got)
	}
	st := s.Snapshot()
	if st.Stats.CurrentMove != 1 || st.Stats.Total() != 1 {
		t.Errorf("stats = %+v", st.Stats)
	}

	drain(t, s)
	st = s.Snapshot()
	if st.Status != StatusReady || !st.SolvedVisual {
		t.Errorf("status = %q, solvedVisual = %v", st.Status, st.SolvedVisual)
	}
	if st.Stats.CurrentMove != 1 || st.Stats.Running || st.Stats.Elapsed != testStep {
		t.Errorf("stats = %+v", st.Stats)
	}
	if l := s.Lattice(); l != InitialState() {
		t.Error("cube should be back at the initial lattice")
	}
}

func TestSessionAnimateAgainReplaysScramble(t *testing.T) {
	scramble := []Move{R, U, F2}
	solver := &fakeSolver{moves: map[Method][]string{
		MethodKociemba:    {"F2", "U'", "R'"},
		MethodHumanHybrid: Tokens(append(append([]Move(nil), TPerm...), Simplify(InverseSequence(append(append([]Move(nil), scramble...), TPerm...)))...)),
	}}
	s := newTestSession(t, solver)

	if err := s.ScrambleSequence(scramble); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	for _, m := range Methods {
		if err := s.RequestSolve(context.Background(), m); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Animate(MethodKociemba); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	machineStats := s.Snapshot().Stats

	human := solver.moves[MethodHumanHybrid]
	if len(human) == len(solver.moves[MethodKociemba]) {
		t.Fatal("solutions should differ in length")
	}
	if err := s.Animate(MethodHumanHybrid); err != nil {
		t.Fatal(err)
	}
	if got := s.Status(); got != StatusReturning {
		t.Errorf("status = %q, want %q", got, StatusReturning)
	}
	if diff := cmp.Diff(Tokens(scramble), s.Queue()); diff != "" {
		t.Errorf("queue (-want +got):\n%s", diff)
	}
	if got, want := s.Remaining(), len(scramble)+len(human); got != want {
		t.Errorf("remaining = %d, want %d", got, want)
	}
	if diff := cmp.Diff(machineStats, s.Snapshot().Stats); diff != "" {
		t.Errorf("previous stats should stay until the follow-up starts (-want +got):\n%s", diff)
	}
	if err := s.Animate(MethodHumanHybrid); !errors.Is(err, ErrBusy) {
		t.Errorf("Animate while replaying err = %v, want ErrBusy", err)
	}

	drain(t, s)
	if got := s.Status(); got != StatusProceeding {
		t.Errorf("status = %q, want %q", got, StatusProceeding)
	}
	if got := s.Remaining(); got != len(human) {
		t.Errorf("remaining after replay = %d, want %d", got, len(human))
	}
	if len(s.Queue()) != 0 {
		t.Errorf("follow-up enqueued early: %v", s.Queue())
	}
	if err := s.Animate(MethodHumanHybrid); !errors.Is(err, ErrFollowUpPending) {
		t.Errorf("Animate during follow-up err = %v, want ErrFollowUpPending", err)
	}

	s.Tick(time.Second)
	if s.Animating() {
		t.Fatal("solution started before the follow-up delay")
	}
	s.Tick(500 * time.Millisecond)
	if got := s.Status(); got != "Animating Human-Style solution..." {
		t.Errorf("status = %q", got)
	}
	if st := s.Snapshot().Stats; st.Total() != len(human) || st.CurrentMove != 1 {
		t.Errorf("stats = %+v", st)
	}

	drain(t, s)
	if got := s.Status(); got != StatusReady {
		t.Errorf("status = %q, want Ready", got)
	}
	if s.Lattice() != InitialState() {
		t.Error("cube should be solved")
	}
}

func TestSessionScrambleQueue(t *testing.T) {
	s := newTestSession(t, &fakeSolver{})
	if err := s.Scramble(DefaultScrambleLength); err != nil {
		t.Fatal(err)
	}
	st := s.Snapshot()
	if len(st.ScrambleHistory) != DefaultScrambleLength {
		t.Errorf("history length = %d", len(st.ScrambleHistory))
	}
	if diff := cmp.Diff(Tokens(st.ScrambleHistory), s.Queue()); diff != "" {
		t.Errorf("queue (-want +got):\n%s", diff)
	}
	if st.SolvedVisual {
		t.Error("solvedVisual should be false after a scramble")
	}

	drain(t, s)
	want, _ := ApplyMoves(InitialState(), st.ScrambleHistory)
	if s.Lattice() != want {
		t.Error("lattice does not match the scramble")
	}
}

func TestSessionSolverErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"reported", &SolverError{StatusCode: 400, Message: "invalid scramble"}, "Error: invalid scramble"},
		{"unreachable", ErrSolverUnavailable, StatusUnreachable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSession(t, &fakeSolver{err: tt.err})
			if err := s.ScrambleSequence([]Move{F, U}); err != nil {
				t.Fatal(err)
			}
			drain(t, s)
			if err := s.RequestSolve(context.Background(), MethodKociemba); !errors.Is(err, tt.err) {
				t.Errorf("err = %v, want %v", err, tt.err)
			}
			st := s.Snapshot()
			if st.Status != tt.want {
				t.Errorf("status = %q, want %q", st.Status, tt.want)
			}
			if len(st.Results) != 0 || len(st.InFlight) != 0 {
				t.Errorf("results = %v, in flight = %v", st.Results, st.InFlight)
			}
		})
	}
}

func TestSessionRejectedCallsKeepStatus(t *testing.T) {
	s := newTestSession(t, &fakeSolver{})

	if err := s.Animate(MethodKociemba); !errors.Is(err, ErrNoSolution) {
		t.Errorf("Animate err = %v, want ErrNoSolution", err)
	}
	if err := s.RequestSolve(context.Background(), MethodKociemba); !errors.Is(err, ErrNoScramble) {
		t.Errorf("RequestSolve err = %v, want ErrNoScramble", err)
	}
	if err := s.Scramble(0); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Scramble(0) err = %v, want ErrInvalidLength", err)
	}
	if err := s.Scramble(MaxScrambleLength + 1); !errors.Is(err, ErrInvalidLength) {
		t.Errorf("Scramble(51) err = %v, want ErrInvalidLength", err)
	}
	if _, err := s.BeginSolve("beginner"); !errors.Is(err, ErrUnknownMethod) {
		t.Errorf("BeginSolve err = %v, want ErrUnknownMethod", err)
	}
	if got := s.Status(); got != StatusReady {
		t.Errorf("status = %q, want Ready", got)
	}

	if err := s.Scramble(5); err != nil {
		t.Fatal(err)
	}
	for name, err := range map[string]error{
		"Scramble":     s.Scramble(5),
		"Reset":        s.Reset(),
		"RequestSolve": s.RequestSolve(context.Background(), MethodKociemba),
	} {
		if !errors.Is(err, ErrBusy) {
			t.Errorf("%s while animating err = %v, want ErrBusy", name, err)
		}
	}
	if got := s.Status(); got != StatusScrambling {
		t.Errorf("status = %q, want %q", got, StatusScrambling)
	}
}

func TestSessionOneRequestPerMethod(t *testing.T) {
	s := newTestSession(t, &fakeSolver{})
	if err := s.ScrambleSequence([]Move{L}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)

	req, err := s.BeginSolve(MethodKociemba)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.BeginSolve(MethodKociemba); !errors.Is(err, ErrRequestInFlight) {
		t.Errorf("second BeginSolve err = %v, want ErrRequestInFlight", err)
	}
	if _, err := s.BeginSolve(MethodHumanHybrid); err != nil {
		t.Errorf("other method: %v", err)
	}

	s.CompleteSolve(req, Solution{Moves: []string{"L'"}}, nil)
	if _, err := s.BeginSolve(MethodKociemba); err != nil {
		t.Errorf("BeginSolve after completion: %v", err)
	}
}

func TestSessionDropsStaleResults(t *testing.T) {
	s := newTestSession(t, &fakeSolver{})
	if err := s.ScrambleSequence([]Move{L}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)

	req, err := s.BeginSolve(MethodKociemba)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}
	s.CompleteSolve(req, Solution{Moves: []string{"L'"}}, nil)

	st := s.Snapshot()
	if len(st.Results) != 0 {
		t.Errorf("stale result stored: %v", st.Results)
	}
	if st.Status != StatusReady {
		t.Errorf("status = %q, want Ready", st.Status)
	}
}

func TestSessionSkipsInvalidSolutionMoves(t *testing.T) {
	solver := &fakeSolver{moves: map[Method][]string{MethodKociemba: {"Z", "B'"}}}
	s := newTestSession(t, solver)
	if err := s.ScrambleSequence([]Move{B}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	if err := s.RequestSolve(context.Background(), MethodKociemba); err != nil {
		t.Fatal(err)
	}
	if err := s.Animate(MethodKociemba); err != nil {
		t.Fatal(err)
	}
	drain(t, s)

	st := s.Snapshot()
	if want := `Error: invalid move "Z" skipped`; st.Status != want || st.Stats.CurrentMove != 2 {
		t.Errorf("status = %q, stats = %+v", st.Status, st.Stats)
	}
	if s.Lattice() != InitialState() {
		t.Error("valid moves should still solve the cube")
	}
}

func TestSessionTrailingInvalidMoveKeepsError(t *testing.T) {
	solver := &fakeSolver{moves: map[Method][]string{MethodKociemba: {"B'", "Z"}}}
	s := newTestSession(t, solver)
	if err := s.ScrambleSequence([]Move{B}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	if err := s.RequestSolve(context.Background(), MethodKociemba); err != nil {
		t.Fatal(err)
	}
	if err := s.Animate(MethodKociemba); err != nil {
		t.Fatal(err)
	}

	// B' commits and Z is skipped on the same tick that empties the queue.
	s.Tick(testStep)
	if s.Animating() {
		t.Fatal("playback should be finished")
	}
	st := s.Snapshot()
	if want := `Error: invalid move "Z" skipped`; st.Status != want {
		t.Errorf("status = %q, want %q", st.Status, want)
	}
	if diff := cmp.Diff([]string{"Z"}, st.Skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}
	if !st.SolvedVisual || st.Stats.Running || st.Stats.CurrentMove != 2 {
		t.Errorf("playback not finalised: %+v", st)
	}

	// A new scramble clears the skipped list.
	if err := s.ScrambleSequence([]Move{U}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	st = s.Snapshot()
	if st.Status != StatusReady || len(st.Skipped) != 0 {
		t.Errorf("status = %q, skipped = %v", st.Status, st.Skipped)
	}
}

func TestStatusSkippedSeveral(t *testing.T) {
	if got, want := statusSkipped([]string{"Z", "Q"}), "Error: 2 invalid moves skipped: Z Q"; got != want {
		t.Errorf("statusSkipped = %q, want %q", got, want)
	}
}

func TestSessionReset(t *testing.T) {
	s := newTestSession(t, &fakeSolver{moves: map[Method][]string{MethodKociemba: {"U'"}}})
	if err := s.ScrambleSequence([]Move{U}); err != nil {
		t.Fatal(err)
	}
	drain(t, s)
	if err := s.RequestSolve(context.Background(), MethodKociemba); err != nil {
		t.Fatal(err)
	}
	if err := s.Reset(); err != nil {
		t.Fatal(err)
	}

	st := s.Snapshot()
	if st.Status != StatusReady || !st.SolvedVisual || len(st.ScrambleHistory) != 0 || len(st.Results) != 0 {
		t.Errorf("state after reset = %+v", st)
	}
	if s.Lattice() != InitialState() {
		t.Error("lattice not reset")
	}
}
