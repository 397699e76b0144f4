package gesture

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"
)

// ErrNilEngine is returned by New when no engine is supplied.
var ErrNilEngine = errors.New("gesture: nil engine")

// Manager routes recognized gestures to scene-graph nodes.
//
// It wraps an Engine: recognizers are added and removed through the Manager
// so that the set of subscribed event names follows the installed
// recognizers. Changes are batched through a debounce and applied when the
// host calls Update, normally once per frame from the game loop.
//
// Each recognized event is delivered first to the node under the gesture's
// first contact point, then to each interactive ancestor, until a listener
// calls StopPropagation or the root is reached.
//
// Manager is single-threaded: all methods, and the engine's callbacks, must
// run on the same goroutine.
type Manager struct {
	engine      Engine
	interaction Interaction
	log         zerolog.Logger

	registered []string
	subs       map[string]Subscription
	inputSub   Subscription

	bind   *Debouncer[string]
	unbind *Debouncer[string]
	passes int

	firstTarget NodeID
	walk        []NodeID
	dispatching bool
	destroyed   bool
}

// New creates a Manager on top of engine, resolving targets through
// interaction, and installs cfg's recognizers (DefaultPreset when empty).
// Subscriptions for the installed recognizers are pending until the first
// Update past the debounce delay, or until Flush.
func New(engine Engine, interaction Interaction, cfg Config) (*Manager, error) {
	if engine == nil {
		return nil, ErrNilEngine
	}
	m := &Manager{
		engine:      engine,
		interaction: interaction,
		log:         zerolog.Nop(),
		subs:        make(map[string]Subscription),
	}
	if cfg.Logger != nil {
		m.log = cfg.Logger.With().Str("component", "gesture").Logger()
	}
	wait, maxWait := cfg.debounceWait(), cfg.debounceMaxWait()
	m.bind = NewDebouncer(func(reason string) { m.reconcile(reason) }, wait, maxWait, cfg.Clock)
	m.unbind = NewDebouncer(func(reason string) { m.reconcile(reason) }, wait, maxWait, cfg.Clock)

	installed, err := m.install(cfg.recognizers())
	if err != nil {
		for _, r := range installed {
			engine.RemoveRecognizer(r)
		}
		m.Destroy()
		return nil, err
	}
	m.inputSub = engine.OnInput(m.resolveTarget)
	return m, nil
}

// install adds each configured recognizer in order and wires its
// relationships to recognizers installed before it. It returns the
// recognizers added so far, also on error.
func (m *Manager) install(specs []RecognizerConfig) ([]*Recognizer, error) {
	var installed []*Recognizer
	for i, spec := range specs {
		r, err := spec.Recognizer()
		if err != nil {
			return installed, fmt.Errorf("recognizers[%d]: %w", i, err)
		}
		if !KnownKind(r.Kind()) {
			m.log.Warn().Str("kind", string(r.Kind())).Msg("unknown gesture kind contributes no events")
		}
		m.Add(r)
		installed = append(installed, r)
		for _, ref := range spec.RecognizeWith {
			other := m.lookup(ref, r)
			if other == nil {
				return installed, fmt.Errorf("recognizers[%d] (%s): recognize with %q: %w", i, r.Event(), ref, ErrUnknownReference)
			}
			r.RecognizeWith(other)
		}
		for _, ref := range spec.RequireFailure {
			other := m.lookup(ref, r)
			if other == nil {
				return installed, fmt.Errorf("recognizers[%d] (%s): require failure %q: %w", i, r.Event(), ref, ErrUnknownReference)
			}
			r.RequireFailure(other)
		}
	}
	return installed, nil
}

// lookup finds an installed recognizer by event name, ignoring self.
func (m *Manager) lookup(event string, self *Recognizer) *Recognizer {
	for _, r := range m.engine.Recognizers() {
		if r != self && r.Event() == event {
			return r
		}
	}
	return nil
}

// Add installs r on the engine and schedules a subscription pass.
func (m *Manager) Add(r *Recognizer) *Recognizer {
	if m.destroyed || r == nil {
		return r
	}
	result := m.engine.AddRecognizer(r)
	m.bind.Call("add " + r.Event())
	return result
}

// Remove uninstalls r from the engine and schedules a subscription pass.
func (m *Manager) Remove(r *Recognizer) {
	if m.destroyed || r == nil {
		return
	}
	m.engine.RemoveRecognizer(r)
	m.unbind.Call("remove " + r.Event())
}

// Get returns the installed recognizer emitting under event, or nil.
func (m *Manager) Get(event string) *Recognizer {
	if m.destroyed {
		return nil
	}
	return m.lookup(event, nil)
}

// Update runs any subscription pass whose debounce delay has elapsed.
// Call it once per frame.
func (m *Manager) Update() {
	if m.destroyed {
		return
	}
	m.bind.Update()
	m.unbind.Update()
}

// Flush runs pending subscription passes immediately.
func (m *Manager) Flush() {
	if m.destroyed {
		return
	}
	m.bind.Flush()
	m.unbind.Flush()
}

// Pending reports whether a subscription pass is scheduled.
func (m *Manager) Pending() bool {
	return !m.destroyed && (m.bind.Pending() || m.unbind.Pending())
}

// Passes returns how many reconciliation passes have run.
func (m *Manager) Passes() int {
	return m.passes
}

// Listen registers fn for event (an engine event name such as "tap" or
// "panstart") on node. The listener receives the namespaced DispatchEvent.
func (m *Manager) Listen(node NodeID, event string, fn func(*DispatchEvent)) Subscription {
	if m.destroyed || m.interaction == nil || fn == nil {
		return noopSubscription{}
	}
	return m.interaction.Listen(node, Namespace(event), fn)
}

// Destroy releases all state: pending passes are cancelled, every
// subscription is removed, the first target and the interaction collaborator
// are dropped. The Manager cannot be reused; later calls are no-ops.
func (m *Manager) Destroy() {
	if m.destroyed {
		return
	}
	m.bind.Cancel()
	m.unbind.Cancel()
	if m.inputSub != nil {
		m.inputSub.Remove()
		m.inputSub = nil
	}
	for name, sub := range m.subs {
		sub.Remove()
		delete(m.subs, name)
	}
	m.registered = nil
	m.firstTarget = 0
	m.walk = nil
	m.interaction = nil
	m.destroyed = true
}

// Destroyed reports whether Destroy has been called.
func (m *Manager) Destroyed() bool {
	return m.destroyed
}
