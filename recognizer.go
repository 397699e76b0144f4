package gesture

import (
	"math"
	"time"
)

// Recognizer defaults, per kind.
const (
	defaultTapTime         = 250 * time.Millisecond
	defaultTapInterval     = 300 * time.Millisecond
	defaultTapThreshold    = 9.0
	defaultTapPosThreshold = 10.0
	defaultPressTime       = 251 * time.Millisecond
	defaultPressThreshold  = 9.0
	defaultPanThreshold    = 10.0
	defaultSwipeThreshold  = 10.0
	defaultSwipeTime       = 300 * time.Millisecond
)

// RecognizerOptions configures a Recognizer. Zero fields take the kind's
// defaults.
type RecognizerOptions struct {
	// Event is the custom event name. Defaults to the kind.
	Event string
	// Disabled recognizers still contribute event names but never emit.
	Disabled bool
	// Pointers is the number of pointers the gesture requires.
	Pointers int
	// Taps is the number of consecutive taps (tap only).
	Taps int
	// Interval is the maximum gap between consecutive taps (tap only).
	Interval time.Duration
	// Time is the maximum tap/swipe duration, or the minimum press duration.
	Time time.Duration
	// Threshold is the movement tolerance in pixels: the maximum for tap and
	// press, the minimum for pan and swipe.
	Threshold float64
	// PosThreshold is the maximum distance between consecutive taps.
	PosThreshold float64
	// Direction restricts pan and swipe.
	Direction Direction
}

type recognizerState uint8

const (
	statePossible   recognizerState = iota
	stateBegan                      // continuous gesture in progress
	stateRecognized                 // emitted during the current gesture
	stateFailed
)

// Recognizer detects one gesture kind. The dispatch layer only ever reads
// Kind and Event; everything else belongs to the engine.
type Recognizer struct {
	kind Kind
	opts RecognizerOptions

	simultaneous   []*Recognizer
	requireFailure []*Recognizer

	state     recognizerState
	direction Direction
	emitted   bool // emitted during the current input

	tapCount      int
	lastTap       time.Time
	lastTapCenter Point
}

// NewRecognizer creates a recognizer for kind. Kinds outside the built-in
// set are accepted; they contribute no event names and never emit.
func NewRecognizer(kind Kind, opts RecognizerOptions) *Recognizer {
	if opts.Event == "" {
		opts.Event = string(kind)
	}
	if opts.Pointers <= 0 {
		opts.Pointers = 1
		if kind == KindPinch || kind == KindRotate {
			opts.Pointers = 2
		}
	}
	switch kind {
	case KindTap:
		if opts.Taps <= 0 {
			opts.Taps = 1
		}
		if opts.Interval <= 0 {
			opts.Interval = defaultTapInterval
		}
		if opts.Time <= 0 {
			opts.Time = defaultTapTime
		}
		if opts.Threshold <= 0 {
			opts.Threshold = defaultTapThreshold
		}
		if opts.PosThreshold <= 0 {
			opts.PosThreshold = defaultTapPosThreshold
		}
	case KindPress:
		if opts.Time <= 0 {
			opts.Time = defaultPressTime
		}
		if opts.Threshold <= 0 {
			opts.Threshold = defaultPressThreshold
		}
	case KindPan:
		if opts.Threshold <= 0 {
			opts.Threshold = defaultPanThreshold
		}
		if opts.Direction == DirectionNone {
			opts.Direction = DirectionAll
		}
	case KindSwipe:
		if opts.Threshold <= 0 {
			opts.Threshold = defaultSwipeThreshold
		}
		if opts.Time <= 0 {
			opts.Time = defaultSwipeTime
		}
		if opts.Direction == DirectionNone {
			opts.Direction = DirectionAll
		}
	}
	return &Recognizer{kind: kind, opts: opts}
}

// NewTap creates a tap recognizer.
func NewTap(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindTap, opts) }

// NewPan creates a pan recognizer.
func NewPan(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindPan, opts) }

// NewPinch creates a pinch recognizer.
func NewPinch(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindPinch, opts) }

// NewPress creates a press recognizer.
func NewPress(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindPress, opts) }

// NewRotate creates a rotate recognizer.
func NewRotate(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindRotate, opts) }

// NewSwipe creates a swipe recognizer.
func NewSwipe(opts RecognizerOptions) *Recognizer { return NewRecognizer(KindSwipe, opts) }

// Kind returns the base kind (the default event name).
func (r *Recognizer) Kind() Kind { return r.kind }

// Event returns the custom event name.
func (r *Recognizer) Event() string { return r.opts.Event }

// Options returns the effective options.
func (r *Recognizer) Options() RecognizerOptions { return r.opts }

// Enabled reports whether the recognizer may emit.
func (r *Recognizer) Enabled() bool { return !r.opts.Disabled }

// SetEnabled enables or disables emission.
func (r *Recognizer) SetEnabled(enabled bool) { r.opts.Disabled = !enabled }

// RecognizeWith lets r and other be active during the same gesture.
// The relationship is symmetric.
func (r *Recognizer) RecognizeWith(other *Recognizer) *Recognizer {
	if other == nil || other == r {
		return r
	}
	r.simultaneous = appendUnique(r.simultaneous, other)
	other.simultaneous = appendUnique(other.simultaneous, r)
	return r
}

// DropRecognizeWith removes a RecognizeWith relationship in both directions.
func (r *Recognizer) DropRecognizeWith(other *Recognizer) *Recognizer {
	if other == nil {
		return r
	}
	r.simultaneous = removeRecognizer(r.simultaneous, other)
	other.simultaneous = removeRecognizer(other.simultaneous, r)
	return r
}

// CanRecognizeWith reports whether r and other may be active together.
func (r *Recognizer) CanRecognizeWith(other *Recognizer) bool {
	for _, s := range r.simultaneous {
		if s == other {
			return true
		}
	}
	return false
}

// RequireFailure keeps r silent while other is active or emitting.
func (r *Recognizer) RequireFailure(other *Recognizer) *Recognizer {
	if other == nil || other == r {
		return r
	}
	r.requireFailure = appendUnique(r.requireFailure, other)
	return r
}

// DropRequireFailure removes a RequireFailure relationship.
func (r *Recognizer) DropRequireFailure(other *Recognizer) *Recognizer {
	r.requireFailure = removeRecognizer(r.requireFailure, other)
	return r
}

// HasRequireFailures reports whether r depends on another recognizer failing.
func (r *Recognizer) HasRequireFailures() bool {
	return len(r.requireFailure) > 0
}

// active reports whether r has begun or emitted during the current gesture.
func (r *Recognizer) active() bool {
	return r.state == stateBegan || r.state == stateRecognized
}

// reset prepares r for a new gesture. Tap counters survive across gestures.
func (r *Recognizer) reset() {
	r.state = statePossible
	r.direction = DirectionNone
	r.emitted = false
}

// recognize advances r's state for one input and returns the event name
// suffixes to emit, in order.
func (r *Recognizer) recognize(in Input, s *session) []string {
	if r.state == stateFailed {
		return nil
	}
	switch r.kind {
	case KindTap:
		return r.recognizeTap(in, s)
	case KindPress:
		return r.recognizePress(in, s)
	case KindPan:
		return r.recognizePan(in, s)
	case KindSwipe:
		return r.recognizeSwipe(in, s)
	default:
		// Multi-pointer kinds are reported by a host engine through Hub.Emit.
		return nil
	}
}

func (r *Recognizer) recognizeTap(in Input, s *session) []string {
	if s.maxPointers > r.opts.Pointers || s.distance > r.opts.Threshold || s.elapsed > r.opts.Time {
		r.state = stateFailed
		return nil
	}
	if !in.IsFinal || in.Type != InputEnd {
		return nil
	}
	if !r.lastTap.IsZero() &&
		in.Time.Sub(r.lastTap) <= r.opts.Interval &&
		distance(r.lastTapCenter, in.Center) <= r.opts.PosThreshold {
		r.tapCount++
	} else {
		r.tapCount = 1
	}
	r.lastTap = in.Time
	r.lastTapCenter = in.Center
	if r.tapCount%r.opts.Taps != 0 {
		return nil
	}
	r.state = stateRecognized
	return []string{""}
}

func (r *Recognizer) recognizePress(in Input, s *session) []string {
	if r.state == stateBegan {
		if in.IsFinal {
			r.state = stateRecognized
			return []string{"up"}
		}
		return nil
	}
	if s.maxPointers > r.opts.Pointers || s.distance > r.opts.Threshold {
		r.state = stateFailed
		return nil
	}
	if in.IsFinal {
		r.state = stateFailed
		return nil
	}
	if s.elapsed >= r.opts.Time {
		r.state = stateBegan
		return []string{""}
	}
	return nil
}

func (r *Recognizer) recognizePan(in Input, s *session) []string {
	if r.state == stateBegan {
		switch {
		case in.Type == InputCancel:
			r.state = stateRecognized
			return []string{"cancel"}
		case in.IsFinal:
			r.state = stateRecognized
			return []string{"", "end"}
		}
		r.direction = s.direction
		return withDirection([]string{"move", ""}, s.direction)
	}
	if in.IsFinal {
		return nil
	}
	if s.maxPointers > r.opts.Pointers {
		r.state = stateFailed
		return nil
	}
	if s.distance < r.opts.Threshold || s.direction&r.opts.Direction == 0 {
		return nil
	}
	r.state = stateBegan
	r.direction = s.direction
	return withDirection([]string{"start", ""}, s.direction)
}

func (r *Recognizer) recognizeSwipe(in Input, s *session) []string {
	if s.maxPointers > r.opts.Pointers {
		r.state = stateFailed
		return nil
	}
	if !in.IsFinal || in.Type != InputEnd {
		return nil
	}
	if s.distance < r.opts.Threshold || s.elapsed > r.opts.Time || s.direction&r.opts.Direction == 0 {
		r.state = stateFailed
		return nil
	}
	r.state = stateRecognized
	r.direction = s.direction
	return withDirection([]string{""}, s.direction)
}

func withDirection(suffixes []string, d Direction) []string {
	if name := d.String(); name != "" {
		suffixes = append(suffixes, name)
	}
	return suffixes
}

func distance(a, b Point) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

func appendUnique(s []*Recognizer, r *Recognizer) []*Recognizer {
	for _, existing := range s {
		if existing == r {
			return s
		}
	}
	return append(s, r)
}

// removeRecognizer removes r from s using copy+nil so the backing array does
// not retain it.
func removeRecognizer(s []*Recognizer, r *Recognizer) []*Recognizer {
	for i := range s {
		if s[i] == r {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = nil
			return s[:len(s)-1]
		}
	}
	return s
}
