package cubeviz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Session drives the scramble, solve and animate workflow. All state lives in
// the Session; callers read it through Snapshot and the accessors.
// Methods are safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	seq      *Sequencer
	solver   Solver
	cfg      *config
	logger   *log.Logger
	state    State
	pending  *followUp
	inFlight map[Method]string
}

// SolveRequest identifies an outstanding solver call.
type SolveRequest struct {
	ID         string
	Method     Method
	ScrambleID string
	Scramble   string
}

// NewSession returns a session showing a solved cube.
func NewSession(solver Solver, opts ...Option) *Session {
	cfg := newConfig(opts)
	s := &Session{
		seq:      NewSequencer(InitialState(), opts...),
		solver:   solver,
		cfg:      cfg,
		logger:   cfg.logger.WithPrefix("session"),
		inFlight: make(map[Method]string),
	}
	s.state = State{
		Status:       StatusReady,
		Results:      make(map[Method]Solution),
		SolvedVisual: true,
	}
	s.seq.OnComplete(s.handleComplete)
	return s
}

// Scramble plays a random scramble of length moves from the solved state.
func (s *Session) Scramble(length int) error {
	if length < MinScrambleLength || length > MaxScrambleLength {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidLength, length, MinScrambleLength, MaxScrambleLength)
	}
	s.mu.Lock()
	moves := make([]Move, length)
	for i := range moves {
		moves[i] = AllMoves[s.cfg.rand.Intn(len(AllMoves))]
	}
	s.mu.Unlock()
	return s.ScrambleSequence(moves)
}

// ScrambleSequence plays a given scramble from the solved state. Previous
// results and statistics are discarded.
func (s *Session) ScrambleSequence(moves []Move) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIdle(); err != nil {
		return err
	}
	if len(moves) == 0 {
		return fmt.Errorf("%w: empty scramble", ErrInvalidLength)
	}
	if err := s.seq.Reset(InitialState()); err != nil {
		return err
	}

	s.state.ScrambleHistory = append([]Move(nil), moves...)
	s.state.ScrambleID = uuid.NewString()
	s.state.Results = make(map[Method]Solution)
	s.state.Stats = Stats{}
	s.state.Skipped = nil
	s.state.SolvedVisual = false
	s.state.Mode = ModeScrambling
	s.state.Status = StatusScrambling
	s.logger.Info("scramble", "id", s.state.ScrambleID, "moves", FormatMoves(moves))

	s.seq.Push(Tokens(moves)...)
	return nil
}

// BeginSolve validates a solve request and marks it in flight. The caller
// runs the solver and reports the outcome with CompleteSolve.
func (s *Session) BeginSolve(method Method) (SolveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !method.Valid() {
		return SolveRequest{}, fmt.Errorf("%w: %q", ErrUnknownMethod, method)
	}
	if len(s.state.ScrambleHistory) == 0 {
		return SolveRequest{}, ErrNoScramble
	}
	if !s.seq.Idle() {
		return SolveRequest{}, ErrBusy
	}
	if _, ok := s.inFlight[method]; ok {
		return SolveRequest{}, fmt.Errorf("%w: %s", ErrRequestInFlight, method)
	}

	req := SolveRequest{
		ID:         uuid.NewString(),
		Method:     method,
		ScrambleID: s.state.ScrambleID,
		Scramble:   FormatMoves(s.state.ScrambleHistory),
	}
	s.inFlight[method] = req.ID
	s.logger.Debug("solve requested", "request", req.ID, "method", method)
	return req, nil
}

// CompleteSolve records the outcome of a request started with BeginSolve.
// Results for a scramble that has since been replaced are dropped.
func (s *Session) CompleteSolve(req SolveRequest, sol Solution, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.inFlight[req.Method] == req.ID {
		delete(s.inFlight, req.Method)
	}
	if req.ScrambleID != s.state.ScrambleID {
		s.logger.Info("dropping stale solve result", "request", req.ID, "method", req.Method)
		return
	}

	if err != nil {
		var solverErr *SolverError
		switch {
		case errors.As(err, &solverErr):
			s.state.Status = statusError(solverErr.Message)
		default:
			s.state.Status = StatusUnreachable
		}
		s.logger.Error("solve failed", "request", req.ID, "method", req.Method, "err", err)
		return
	}

	sol.Method = req.Method
	sol.Moves = append([]string(nil), sol.Moves...)
	for _, token := range sol.Moves {
		if _, perr := ParseMove(token); perr != nil {
			s.logger.Warn("solution contains an invalid move", "method", req.Method, "token", token)
		}
	}
	s.state.Results[req.Method] = sol
	s.state.Status = StatusSolutions
	s.logger.Info("solution received", "request", req.ID, "method", req.Method, "moves", sol.Len())
}

// RequestSolve asks the solver for a solution of the current scramble.
// The session lock is not held during the solver call.
func (s *Session) RequestSolve(ctx context.Context, method Method) error {
	req, err := s.BeginSolve(method)
	if err != nil {
		return err
	}
	sol, err := s.solver.Solve(ctx, req.Scramble, req.Method)
	s.CompleteSolve(req, sol, err)
	return err
}

// Animate plays the stored solution for method. When the cube on screen is
// already solved, the scramble is replayed first and the solution follows
// after the follow-up delay.
func (s *Session) Animate(method Method) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkIdle(); err != nil {
		return err
	}
	sol, ok := s.state.Results[method]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoSolution, method)
	}

	if s.state.SolvedVisual {
		if err := s.seq.Reset(InitialState()); err != nil {
			return err
		}
		s.state.SolvedVisual = false
		s.state.Mode = ModeReturning
		s.state.Status = StatusReturning
		s.state.Skipped = nil
		s.pending = &followUp{method: method, moves: sol.Moves}
		s.logger.Info("replaying scramble", "method", method)
		s.seq.Push(Tokens(s.state.ScrambleHistory)...)
		return nil
	}

	s.startSolution(method, sol.Moves)
	return nil
}

// Reset returns to a solved cube and clears history, results and statistics.
// Requests still in flight are dropped when they complete.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.seq.Reset(InitialState()); err != nil {
		return err
	}
	s.pending = nil
	s.state = State{
		Status:       StatusReady,
		Results:      make(map[Method]Solution),
		SolvedVisual: true,
	}
	s.logger.Info("reset")
	return nil
}

// Tick advances playback by dt. The runtime calls it once per frame.
func (s *Session) Tick(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Mode == ModeSolving && s.state.Stats.Running && dt > 0 {
		s.state.Stats.Elapsed += dt
	}
	s.seq.Tick(dt)
	s.settle(dt)
}

// Status returns the status line.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Status
}

// Snapshot returns a copy of the session state.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.state
	st.ScrambleHistory = append([]Move(nil), s.state.ScrambleHistory...)
	st.Results = make(map[Method]Solution, len(s.state.Results))
	for k, v := range s.state.Results {
		v.Moves = append([]string(nil), v.Moves...)
		st.Results[k] = v
	}
	st.Stats.Solution = append([]string(nil), s.state.Stats.Solution...)
	st.Skipped = append([]string(nil), s.state.Skipped...)
	if s.pending != nil {
		st.FollowUp = s.pending.method
	}
	for _, m := range Methods {
		if _, ok := s.inFlight[m]; ok {
			st.InFlight = append(st.InFlight, m)
		}
	}
	return st
}

// Frame returns the render snapshot.
func (s *Session) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Frame()
}

// Lattice returns the committed lattice.
func (s *Session) Lattice() Lattice {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Lattice()
}

// Group returns the rotating slice.
func (s *Session) Group() Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Group()
}

// Queue returns the tokens waiting in the sequencer, active move first.
func (s *Session) Queue() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Queue()
}

// Remaining returns the number of moves still to play, counting a pending
// follow-up solution.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := s.seq.Len()
	if s.pending != nil {
		n += len(s.pending.moves)
	}
	return n
}

// Animating reports whether a move is in progress.
func (s *Session) Animating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.seq.Idle()
}

// Progress returns the eased progress of the active move.
func (s *Session) Progress() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq.Progress()
}

func (s *Session) checkIdle() error {
	if !s.seq.Idle() {
		return ErrBusy
	}
	if s.pending != nil {
		return ErrFollowUpPending
	}
	return nil
}

func (s *Session) startSolution(method Method, moves []string) {
	s.state.Mode = ModeSolving
	s.state.Status = statusAnimating(method)
	s.state.Stats = Stats{
		Solution:    append([]string(nil), moves...),
		CurrentMove: 1,
		Running:     true,
	}
	s.state.Skipped = nil
	s.state.SolvedVisual = false
	s.logger.Info("animating solution", "method", method, "moves", len(moves))
	s.seq.Push(moves...)
}

// handleComplete runs inside Sequencer callbacks with s.mu held.
func (s *Session) handleComplete(c Completion) {
	if c.Err != nil {
		if errors.Is(c.Err, ErrInvalidMove) {
			s.state.Skipped = append(s.state.Skipped, c.Token)
			s.state.Status = statusSkipped(s.state.Skipped)
		} else {
			s.state.Status = statusError(c.Err.Error())
		}
	}
	if s.state.Mode == ModeSolving && s.state.Stats.CurrentMove < s.state.Stats.Total() {
		s.state.Stats.CurrentMove++
	}
}

// settle handles the sequencer running dry: it starts a pending follow-up
// after its delay or finishes the current playback.
func (s *Session) settle(dt time.Duration) {
	if !s.seq.Idle() {
		return
	}

	if f := s.pending; f != nil {
		if !f.announced {
			f.announced = true
			s.state.Status = StatusProceeding
		} else if dt > 0 {
			f.waited += dt
		}
		if f.waited >= s.cfg.followUpDelay {
			s.pending = nil
			s.startSolution(f.method, f.moves)
		}
		return
	}

	switch s.state.Mode {
	case ModeSolving:
		s.state.Stats.CurrentMove = s.state.Stats.Total()
		s.state.Stats.Running = false
		s.state.SolvedVisual = true
		s.logger.Info("solution finished", "moves", s.state.Stats.Total(), "elapsed", s.state.Stats.Elapsed)
	case ModeScrambling, ModeReturning:
	default:
		return
	}
	s.state.Mode = ModeIdle
	if len(s.state.Skipped) > 0 {
		s.state.Status = statusSkipped(s.state.Skipped)
		return
	}
	s.state.Status = StatusReady
}
