// Package config provides YAML-based configuration loading for the cube
// player, the solver client and the stub solver.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/TheDeepDelve/cubeviz"
)

// Config contains all cubeviz settings.
type Config struct {
	Solver    SolverConfig    `yaml:"solver"`
	Animation AnimationConfig `yaml:"animation"`
	Scramble  ScrambleConfig  `yaml:"scramble"`
	Stub      StubConfig      `yaml:"stub"`
	Log       LogConfig       `yaml:"log"`
}

// SolverConfig locates the solver service.
type SolverConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// AnimationConfig controls move playback.
type AnimationConfig struct {
	MoveDuration  time.Duration `yaml:"move_duration"`
	FollowUpDelay time.Duration `yaml:"follow_up_delay"`
	FPS           int           `yaml:"fps"`
	Easing        string        `yaml:"easing"`
}

// ScrambleConfig controls scramble generation. A zero seed uses the clock.
type ScrambleConfig struct {
	Length int   `yaml:"length"`
	Seed   int64 `yaml:"seed"`
}

// StubConfig configures the stub solver server.
type StubConfig struct {
	Address string `yaml:"address"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Solver: SolverConfig{
			URL:     "http://localhost:5000",
			Timeout: 10 * time.Second,
		},
		Animation: AnimationConfig{
			MoveDuration:  cubeviz.DefaultMoveDuration,
			FollowUpDelay: cubeviz.DefaultFollowUpDelay,
			FPS:           60,
			Easing:        "ease-out-cubic",
		},
		Scramble: ScrambleConfig{
			Length: cubeviz.DefaultScrambleLength,
		},
		Stub: StubConfig{
			Address: ":5000",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// FrameInterval returns the tick period for the configured frame rate.
func (a AnimationConfig) FrameInterval() time.Duration {
	if a.FPS <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(a.FPS)
}

// EasingFunc resolves the easing name.
func (a AnimationConfig) EasingFunc() (func(float64) float64, error) {
	switch a.Easing {
	case "", "ease-out-cubic":
		return cubeviz.EaseOutCubic, nil
	case "linear":
		return cubeviz.Linear, nil
	}
	return nil, fmt.Errorf("unknown easing %q", a.Easing)
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if u, err := url.Parse(c.Solver.URL); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("solver.url %q is not an absolute URL", c.Solver.URL))
	}
	if c.Solver.Timeout <= 0 {
		errs = append(errs, errors.New("solver.timeout must be positive"))
	}
	if c.Animation.MoveDuration < 0 {
		errs = append(errs, errors.New("animation.move_duration must not be negative"))
	}
	if c.Animation.FollowUpDelay < 0 {
		errs = append(errs, errors.New("animation.follow_up_delay must not be negative"))
	}
	if c.Animation.FPS < 1 || c.Animation.FPS > 240 {
		errs = append(errs, fmt.Errorf("animation.fps %d not in [1,240]", c.Animation.FPS))
	}
	if _, err := c.Animation.EasingFunc(); err != nil {
		errs = append(errs, fmt.Errorf("animation.easing: %w", err))
	}
	if c.Scramble.Length < cubeviz.MinScrambleLength || c.Scramble.Length > cubeviz.MaxScrambleLength {
		errs = append(errs, fmt.Errorf("scramble.length %d not in [%d,%d]",
			c.Scramble.Length, cubeviz.MinScrambleLength, cubeviz.MaxScrambleLength))
	}
	return errors.Join(errs...)
}
