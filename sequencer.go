package cubeviz

import (
	"math"
	"time"

	"github.com/charmbracelet/log"
)

// SequencerState is the playback state of a Sequencer.
type SequencerState int

const (
	StateIdle SequencerState = iota
	StateAnimating
)

func (s SequencerState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAnimating:
		return "animating"
	default:
		return "unknown"
	}
}

// Completion reports the end of one queued token.
type Completion struct {
	Token string
	Move  Move
	// Err is set when the token was skipped (ErrInvalidMove) or could not be
	// committed (ErrInvariantViolation). The lattice is unchanged in both cases.
	Err error
}

// Group is the rotating slice of the move in progress.
type Group struct {
	Axis Axis `json:"axis"`
	// Angle is the current rotation in radians about Axis.
	Angle float64 `json:"angle"`
	// Target is the full rotation of the move.
	Target  float64  `json:"target"`
	Members []string `json:"members"`
}

// Sequencer plays move tokens one at a time against its lattice.
// It is driven by Tick and is not safe for concurrent use.
type Sequencer struct {
	lattice    Lattice
	queue      []string
	active     *activeMove
	cfg        *config
	onComplete func(Completion)
	logger     *log.Logger
}

type activeMove struct {
	token    string
	move     Move
	def      Definition
	turns    int
	members  []int
	elapsed  time.Duration
	progress float64
}

// NewSequencer returns an idle sequencer holding l.
func NewSequencer(l Lattice, opts ...Option) *Sequencer {
	cfg := newConfig(opts)
	return &Sequencer{
		lattice: l,
		cfg:     cfg,
		logger:  cfg.logger.WithPrefix("sequencer"),
	}
}

// OnComplete sets the callback fired exactly once per dequeued token, after
// the lattice has been updated and before the next move starts.
func (s *Sequencer) OnComplete(fn func(Completion)) {
	s.onComplete = fn
}

// Push appends tokens to the queue and starts playback when idle.
// Tokens are validated only when they reach the head of the queue.
func (s *Sequencer) Push(tokens ...string) {
	s.queue = append(s.queue, tokens...)
	s.start()
}

// Tick advances the active move by dt and commits it once its duration has elapsed.
// Time left over after a commit is not carried into the next move.
func (s *Sequencer) Tick(dt time.Duration) {
	if s.active == nil {
		return
	}
	if dt > 0 {
		s.active.elapsed += dt
	}

	raw := 1.0
	if s.cfg.moveDuration > 0 {
		raw = math.Min(1, float64(s.active.elapsed)/float64(s.cfg.moveDuration))
	}
	s.active.progress = s.cfg.easing(raw)

	if raw >= 1 {
		s.finish()
	}
}

// Flush commits every queued move immediately, firing callbacks in order.
func (s *Sequencer) Flush() {
	for s.active != nil {
		s.finish()
	}
}

// State returns the playback state.
func (s *Sequencer) State() SequencerState {
	if s.active != nil {
		return StateAnimating
	}
	return StateIdle
}

// Idle reports whether no move is animating.
func (s *Sequencer) Idle() bool {
	return s.active == nil
}

// Lattice returns the committed lattice. A move in progress is not reflected
// until it completes.
func (s *Sequencer) Lattice() Lattice {
	return s.lattice
}

// Queue returns a copy of the pending tokens, including the active one at the head.
func (s *Sequencer) Queue() []string {
	out := make([]string, len(s.queue))
	copy(out, s.queue)
	return out
}

// Len returns the number of pending tokens, including the active one.
func (s *Sequencer) Len() int {
	return len(s.queue)
}

// Current returns the token being animated.
func (s *Sequencer) Current() (string, bool) {
	if s.active == nil {
		return "", false
	}
	return s.active.token, true
}

// Progress returns the eased progress of the active move in [0,1].
func (s *Sequencer) Progress() float64 {
	if s.active == nil {
		return 0
	}
	return s.active.progress
}

// Group returns the rotating slice. When idle the group is empty with a zero angle.
func (s *Sequencer) Group() Group {
	if s.active == nil {
		return Group{Members: []string{}}
	}
	a := s.active
	ids := make([]string, len(a.members))
	for i, idx := range a.members {
		ids[i] = s.lattice[idx].ID
	}
	target := a.def.Angle(a.turns)
	return Group{
		Axis:    a.def.Axis,
		Angle:   target * a.progress,
		Target:  target,
		Members: ids,
	}
}

// Reset replaces the lattice and clears the queue. It fails with ErrBusy
// while a move is animating.
func (s *Sequencer) Reset(l Lattice) error {
	if s.active != nil {
		return ErrBusy
	}
	s.lattice = l
	s.queue = nil
	return nil
}

// Clear drops the queue. It fails with ErrBusy while a move is animating.
func (s *Sequencer) Clear() error {
	if s.active != nil {
		return ErrBusy
	}
	s.queue = nil
	return nil
}

// start dequeues invalid head tokens until a valid move can begin.
func (s *Sequencer) start() {
	if s.active != nil {
		return
	}
	for len(s.queue) > 0 {
		token := s.queue[0]
		def, turns, err := Lookup(token)
		if err != nil {
			s.logger.Warn("skipping invalid move", "token", token, "err", err)
			s.queue = s.queue[1:]
			s.notify(Completion{Token: token, Err: err})
			if s.active != nil {
				return
			}
			continue
		}
		move, _ := ParseMove(token)
		s.active = &activeMove{
			token:   token,
			move:    move,
			def:     def,
			turns:   turns,
			members: def.Members(&s.lattice),
		}
		s.logger.Debug("move started", "token", token, "axis", def.Axis, "members", len(s.active.members))
		return
	}
}

func (s *Sequencer) finish() {
	a := s.active
	c := Completion{Token: a.token, Move: a.move}

	next, err := commit(s.lattice, a.def, a.turns)
	if err != nil {
		s.logger.Error("commit failed", "token", a.token, "err", err)
		c.Err = err
	} else {
		s.lattice = next
	}

	s.queue = s.queue[1:]
	s.active = nil
	s.logger.Debug("move committed", "token", a.token, "remaining", len(s.queue))
	s.notify(c)
	s.start()
}

func (s *Sequencer) notify(c Completion) {
	if s.onComplete != nil {
		s.onComplete(c)
	}
}
