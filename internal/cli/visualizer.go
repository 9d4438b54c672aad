package cli

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/TheDeepDelve/cubeviz"
)

//go:embed visualizer_template.html
var visualizerTemplate string

// maxTimelineFrames bounds the exported timeline.
const maxTimelineFrames = 50000

// Timeline is the data embedded in the player page.
type Timeline struct {
	Moves           []string        `json:"moves"`
	Skipped         []string        `json:"skipped,omitempty"`
	FrameIntervalMs float64         `json:"frame_interval_ms"`
	MoveDurationMs  float64         `json:"move_duration_ms"`
	Solved          bool            `json:"solved"`
	Frames          []cubeviz.Frame `json:"frames"`
}

// TimelineOptions controls sampling of a timeline.
type TimelineOptions struct {
	MoveDuration  time.Duration
	FrameInterval time.Duration
	Easing        func(float64) float64
}

// buildTimeline plays tokens from the solved state and samples a frame
// every FrameInterval, including the initial and final states.
func buildTimeline(tokens []string, opts TimelineOptions) (Timeline, error) {
	if opts.FrameInterval <= 0 {
		return Timeline{}, fmt.Errorf("frame interval must be positive")
	}

	seqOpts := []cubeviz.Option{cubeviz.WithMoveDuration(opts.MoveDuration)}
	if opts.Easing != nil {
		seqOpts = append(seqOpts, cubeviz.WithEasing(opts.Easing))
	}
	seq := cubeviz.NewSequencer(cubeviz.InitialState(), seqOpts...)

	tl := Timeline{
		FrameIntervalMs: float64(opts.FrameInterval) / float64(time.Millisecond),
		MoveDurationMs:  float64(opts.MoveDuration) / float64(time.Millisecond),
	}
	seq.OnComplete(func(c cubeviz.Completion) {
		if c.Err != nil {
			tl.Skipped = append(tl.Skipped, c.Token)
			return
		}
		tl.Moves = append(tl.Moves, c.Token)
	})

	tl.Frames = append(tl.Frames, seq.Frame())
	seq.Push(tokens...)
	for !seq.Idle() {
		if len(tl.Frames) >= maxTimelineFrames {
			return Timeline{}, fmt.Errorf("timeline exceeds %d frames", maxTimelineFrames)
		}
		seq.Tick(opts.FrameInterval)
		tl.Frames = append(tl.Frames, seq.Frame())
	}

	final := seq.Lattice()
	tl.Solved = final.IsSolved()
	return tl, nil
}

// writeVisualizerHTML renders the standalone player page for tl.
func writeVisualizerHTML(w io.Writer, tl Timeline) error {
	jsonData, err := json.Marshal(tl)
	if err != nil {
		return fmt.Errorf("marshaling timeline: %w", err)
	}

	tmpl, err := template.New("visualizer").Parse(visualizerTemplate)
	if err != nil {
		return fmt.Errorf("parsing visualizer template: %w", err)
	}

	data := map[string]template.JS{
		"TimelineJSON": template.JS(jsonData),
	}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing visualizer template: %w", err)
	}
	return nil
}
