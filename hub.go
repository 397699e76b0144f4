package gesture

import "time"

// Engine is the capability surface the Manager needs from a recognizer
// engine. Hub is the built-in implementation; hosts with their own engine
// wrap it in this interface.
type Engine interface {
	// On subscribes fn to a concrete event name.
	On(event string, fn func(Event)) Subscription
	// OnInput subscribes fn to raw input notifications. Input handlers run
	// before any recognizer sees the same input.
	OnInput(fn func(Input)) Subscription
	AddRecognizer(r *Recognizer) *Recognizer
	RemoveRecognizer(r *Recognizer)
	// Recognizers returns the installed recognizers in install order.
	// The returned slice MUST NOT be mutated by the caller.
	Recognizers() []*Recognizer
}

// session is the per-gesture input state shared by all recognizers.
type session struct {
	start       Point
	startTime   time.Time
	maxPointers int
	deltaX      float64
	deltaY      float64
	distance    float64
	elapsed     time.Duration
	direction   Direction
}

func (s *session) begin(in Input) {
	*s = session{start: in.Center, startTime: in.Time, maxPointers: in.Pointers}
}

func (s *session) advance(in Input) {
	if in.Pointers > s.maxPointers {
		s.maxPointers = in.Pointers
	}
	s.deltaX = in.Center.X - s.start.X
	s.deltaY = in.Center.Y - s.start.Y
	s.distance = distance(s.start, in.Center)
	s.elapsed = in.Time.Sub(s.startTime)
	s.direction = directionOf(s.deltaX, s.deltaY)
}

type eventHandler struct {
	id uint32
	fn func(Event)
}

type inputHandler struct {
	id uint32
	fn func(Input)
}

// Hub is a minimal recognizer engine: a named-event emitter plus an ordered
// recognizer list fed by raw Input. It recognizes tap, press, pan and swipe;
// pinch and rotate recognizers can be installed, and a host engine reports
// their events through Emit.
//
// Hub is single-threaded, like the scene it serves.
type Hub struct {
	clock       Clock
	handlers    map[string][]eventHandler
	inputs      []inputHandler
	recognizers []*Recognizer
	nextID      uint32

	session   session
	inSession bool
	destroyed bool
}

// NewHub creates an empty hub. A nil clock uses SystemClock; it stamps
// inputs that arrive without a time.
func NewHub(clock Clock) *Hub {
	if clock == nil {
		clock = SystemClock
	}
	return &Hub{clock: clock, handlers: make(map[string][]eventHandler)}
}

// hubHandle removes one handler registration by id.
type hubHandle struct {
	hub   *Hub
	event string
	id    uint32
	input bool
}

// Remove unregisters the handler. Safe to call more than once and during
// emission.
func (h hubHandle) Remove() {
	if h.hub == nil {
		return
	}
	if h.input {
		h.hub.inputs = removeInputHandler(h.hub.inputs, h.id)
		return
	}
	s := removeEventHandler(h.hub.handlers[h.event], h.id)
	if len(s) == 0 {
		delete(h.hub.handlers, h.event)
		return
	}
	h.hub.handlers[h.event] = s
}

func removeEventHandler(s []eventHandler, id uint32) []eventHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = eventHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

func hasEventHandler(s []eventHandler, id uint32) bool {
	for i := range s {
		if s[i].id == id {
			return true
		}
	}
	return false
}

func hasInputHandler(s []inputHandler, id uint32) bool {
	for i := range s {
		if s[i].id == id {
			return true
		}
	}
	return false
}

func removeInputHandler(s []inputHandler, id uint32) []inputHandler {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = inputHandler{}
			return s[:len(s)-1]
		}
	}
	return s
}

// On subscribes fn to event.
func (h *Hub) On(event string, fn func(Event)) Subscription {
	if h.destroyed {
		return noopSubscription{}
	}
	h.nextID++
	id := h.nextID
	h.handlers[event] = append(h.handlers[event], eventHandler{id: id, fn: fn})
	return hubHandle{hub: h, event: event, id: id}
}

// OnInput subscribes fn to raw input.
func (h *Hub) OnInput(fn func(Input)) Subscription {
	if h.destroyed {
		return noopSubscription{}
	}
	h.nextID++
	id := h.nextID
	h.inputs = append(h.inputs, inputHandler{id: id, fn: fn})
	return hubHandle{hub: h, id: id, input: true}
}

// HandlerCount returns the number of handlers subscribed to event.
func (h *Hub) HandlerCount(event string) int {
	return len(h.handlers[event])
}

// AddRecognizer installs r at the end of the recognizer list. Adding the same
// recognizer twice is a no-op.
func (h *Hub) AddRecognizer(r *Recognizer) *Recognizer {
	if h.destroyed || r == nil {
		return r
	}
	h.recognizers = appendUnique(h.recognizers, r)
	return r
}

// RemoveRecognizer uninstalls r and drops every relationship pointing at it.
func (h *Hub) RemoveRecognizer(r *Recognizer) {
	if r == nil {
		return
	}
	h.recognizers = removeRecognizer(h.recognizers, r)
	for _, other := range h.recognizers {
		other.simultaneous = removeRecognizer(other.simultaneous, r)
		other.requireFailure = removeRecognizer(other.requireFailure, r)
	}
}

// Recognizers returns the installed recognizers.
func (h *Hub) Recognizers() []*Recognizer {
	return h.recognizers
}

// Get returns the first installed recognizer emitting under event, or nil.
func (h *Hub) Get(event string) *Recognizer {
	for _, r := range h.recognizers {
		if r.Event() == event {
			return r
		}
	}
	return nil
}

// Emit delivers ev to the handlers subscribed to ev.Type when emission
// starts. A handler removed during emission is skipped if it has not run yet;
// one added during emission waits for the next event.
func (h *Hub) Emit(ev Event) {
	handlers := h.handlers[ev.Type]
	if len(handlers) == 0 {
		return
	}
	snapshot := make([]eventHandler, len(handlers))
	copy(snapshot, handlers)
	for _, eh := range snapshot {
		if !hasEventHandler(h.handlers[ev.Type], eh.id) {
			continue
		}
		eh.fn(ev)
	}
}

// Input feeds one raw input notification through the hub: input handlers
// first, then every enabled recognizer in install order.
func (h *Hub) Input(in Input) {
	if h.destroyed {
		return
	}
	if in.Time.IsZero() {
		in.Time = h.clock.Now()
	}
	if in.IsFirst || !h.inSession {
		h.session.begin(in)
		h.inSession = true
		for _, r := range h.recognizers {
			r.reset()
		}
	}
	h.session.advance(in)

	if len(h.inputs) > 0 {
		snapshot := make([]inputHandler, len(h.inputs))
		copy(snapshot, h.inputs)
		for _, ih := range snapshot {
			if !hasInputHandler(h.inputs, ih.id) {
				continue
			}
			ih.fn(in)
		}
	}

	for _, r := range h.recognizers {
		r.emitted = false
	}
	for _, r := range h.recognizers {
		if !r.Enabled() || h.blocked(r) {
			continue
		}
		suffixes := r.recognize(in, &h.session)
		if len(suffixes) == 0 {
			continue
		}
		if h.waiting(r) {
			r.state = stateFailed
			continue
		}
		r.emitted = true
		for _, suffix := range suffixes {
			h.Emit(h.event(r, suffix, in))
		}
	}

	if in.IsFinal || in.Type == InputCancel {
		h.inSession = false
	}
}

// blocked reports whether another recognizer already owns the gesture.
func (h *Hub) blocked(r *Recognizer) bool {
	if r.active() {
		return false
	}
	for _, other := range h.recognizers {
		if other != r && other.active() && !r.CanRecognizeWith(other) {
			return true
		}
	}
	return false
}

// waiting reports whether r must stay silent because a recognizer it requires
// to fail is active or emitted during this input.
func (h *Hub) waiting(r *Recognizer) bool {
	for _, dep := range r.requireFailure {
		if dep.active() || dep.emitted {
			return true
		}
	}
	return false
}

func (h *Hub) event(r *Recognizer, suffix string, in Input) Event {
	s := &h.session
	return Event{
		Type:      r.Event() + suffix,
		Kind:      r.Kind(),
		Center:    in.Center,
		DeltaX:    s.deltaX,
		DeltaY:    s.deltaY,
		Direction: s.direction,
		Pointers:  in.Pointers,
		TapCount:  r.tapCount,
		IsFirst:   in.IsFirst,
		IsFinal:   in.IsFinal,
		Duration:  s.elapsed,
		Time:      in.Time,
	}
}

// Destroy drops every handler and recognizer. The hub ignores further input.
func (h *Hub) Destroy() {
	h.destroyed = true
	h.handlers = make(map[string][]eventHandler)
	h.inputs = nil
	h.recognizers = nil
	h.inSession = false
}
