package cubeviz

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
)

// Option configures a Sequencer or Session.
type Option func(*config)

type config struct {
	moveDuration  time.Duration
	followUpDelay time.Duration
	easing        func(float64) float64
	rand          *rand.Rand
	logger        *log.Logger
}

// Defaults used by the interactive player.
const (
	DefaultMoveDuration   = 300 * time.Millisecond
	DefaultFollowUpDelay  = 1500 * time.Millisecond
	DefaultScrambleLength = 20
	MinScrambleLength     = 1
	MaxScrambleLength     = 50
)

func defaultConfig() *config {
	return &config{
		moveDuration:  DefaultMoveDuration,
		followUpDelay: DefaultFollowUpDelay,
		easing:        EaseOutCubic,
		rand:          rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:        log.New(io.Discard),
	}
}

func newConfig(opts []Option) *config {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// WithMoveDuration sets how long one move animates.
// A zero or negative duration commits each move on the next tick.
func WithMoveDuration(d time.Duration) Option {
	return func(c *config) {
		c.moveDuration = d
	}
}

// WithFollowUpDelay sets the pause between the replayed scramble and the
// solution when a solved cube is animated again.
func WithFollowUpDelay(d time.Duration) Option {
	return func(c *config) {
		if d < 0 {
			d = 0
		}
		c.followUpDelay = d
	}
}

// WithEasing sets the progress curve of a move. The function maps [0,1] onto [0,1].
func WithEasing(fn func(float64) float64) Option {
	return func(c *config) {
		if fn != nil {
			c.easing = fn
		}
	}
}

// WithRand sets the random source for scrambles.
func WithRand(r *rand.Rand) Option {
	return func(c *config) {
		if r != nil {
			c.rand = r
		}
	}
}

// WithLogger sets the logger. Logging is discarded by default.
func WithLogger(l *log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

// Linear is the identity easing.
func Linear(t float64) float64 {
	return t
}

// EaseOutCubic decelerates towards the end of the move.
func EaseOutCubic(t float64) float64 {
	t--
	return t*t*t + 1
}
