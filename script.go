package gesture

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ScriptStep is a single action in an input script.
type ScriptStep struct {
	Action string  `json:"action" yaml:"action"`
	X      float64 `json:"x,omitempty" yaml:"x,omitempty"`
	Y      float64 `json:"y,omitempty" yaml:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty" yaml:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty" yaml:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty" yaml:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty" yaml:"toY,omitempty"`
	Frames int     `json:"frames,omitempty" yaml:"frames,omitempty"`
	// Points is used by the "pointers" action.
	Points []Point `json:"points,omitempty" yaml:"points,omitempty"`
}

type script struct {
	Steps []ScriptStep `json:"steps" yaml:"steps"`
}

// ScriptRunner sequences injected input across frames. Call Step once per
// frame before PointerFeed.Poll, or use Run to replay a whole script
// without a game loop.
//
// Actions:
//
//	tap       press and release at (x, y)
//	drag      press at (fromX, fromY), move to (toX, toY) over frames
//	press     hold at (x, y) for frames, then release
//	pointers  one frame with every entry of points down
//	release   one frame with every pointer up
//	wait      do nothing for frames
type ScriptRunner struct {
	steps     []ScriptStep
	cursor    int
	waitCount int
	done      bool
}

// LoadScript parses a script in JSON or YAML ("json", "yaml", "yml", with or
// without a leading dot).
func LoadScript(data []byte, format string) (*ScriptRunner, error) {
	var s script
	switch f := strings.ToLower(strings.TrimPrefix(format, ".")); f {
	case "json":
		if err := json.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &s); err != nil {
			return nil, fmt.Errorf("parse script: %w", err)
		}
	default:
		return nil, fmt.Errorf("gesture: unsupported script format %q", format)
	}
	if len(s.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range s.Steps {
		switch st.Action {
		case "tap", "drag", "press", "pointers", "release", "wait":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &ScriptRunner{steps: s.Steps}, nil
}

// Done reports whether every step has been executed and its input queued.
func (r *ScriptRunner) Done() bool {
	return r.done
}

// Step advances the runner by one frame, queueing the next step's input on f
// once the previous step's frames have drained.
func (r *ScriptRunner) Step(f *PointerFeed) {
	if r.done {
		return
	}
	if f.Queued() > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "tap":
		f.InjectTap(st.X, st.Y)
	case "drag":
		frames := st.Frames
		if frames < 2 {
			frames = 2
		}
		f.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, frames)
	case "press":
		f.InjectPress(st.X, st.Y)
		for i := 1; i < st.Frames; i++ {
			f.InjectMove(st.X, st.Y)
		}
		f.InjectRelease()
	case "pointers":
		f.InjectPointers(st.Points...)
	case "release":
		f.InjectRelease()
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && f.Queued() == 0 {
		r.done = true
	}
}

// Run replays the whole script on f without polling real devices. Each frame
// steps the runner, reports at most one injected frame, calls tick (if
// non-nil) and advances clock by frame. It stops after maxFrames frames and
// returns the number of frames run.
func (r *ScriptRunner) Run(f *PointerFeed, clock *FrameClock, frame time.Duration, tick func(n int), maxFrames int) int {
	n := 0
	for n < maxFrames && !(r.done && f.Queued() == 0) {
		r.Step(f)
		f.processInjected()
		if tick != nil {
			tick(n)
		}
		clock.Advance(frame)
		n++
	}
	return n
}

// FrameClock is a Clock advanced explicitly, one frame at a time.
type FrameClock struct {
	now time.Time
}

// NewFrameClock returns a FrameClock starting at start.
func NewFrameClock(start time.Time) *FrameClock {
	return &FrameClock{now: start}
}

// Now returns the current frame time.
func (c *FrameClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *FrameClock) Advance(d time.Duration) { c.now = c.now.Add(d) }
