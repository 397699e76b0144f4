package gesture

import (
	"time"
)

// manualClock is a Clock advanced by hand.
type manualClock struct {
	now time.Time
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// fakeNode is one node of a fakeInteraction graph.
type fakeNode struct {
	parent      NodeID
	interactive bool
	listeners   map[string][]func(*DispatchEvent)
}

// delivery records one DispatchEvent call.
type delivery struct {
	node NodeID
	name string
}

// fakeInteraction is an in-memory scene collaborator. Points map to scene
// space by adding offset; hit is the node returned by every HitTest.
type fakeInteraction struct {
	nodes     map[NodeID]*fakeNode
	hit       NodeID
	offset    Point
	hitTests  []Point
	delivered []delivery
}

func newFakeInteraction() *fakeInteraction {
	return &fakeInteraction{nodes: make(map[NodeID]*fakeNode)}
}

func (f *fakeInteraction) add(id, parent NodeID, interactive bool) {
	f.nodes[id] = &fakeNode{parent: parent, interactive: interactive}
}

func (f *fakeInteraction) remove(id NodeID) {
	delete(f.nodes, id)
}

func (f *fakeInteraction) MapPositionToPoint(out *Point, x, y float64) {
	out.X = x + f.offset.X
	out.Y = y + f.offset.Y
}

func (f *fakeInteraction) HitTest(p Point) NodeID {
	f.hitTests = append(f.hitTests, p)
	return f.hit
}

func (f *fakeInteraction) Parent(id NodeID) NodeID {
	if n, ok := f.nodes[id]; ok {
		return n.parent
	}
	return 0
}

func (f *fakeInteraction) Interactive(id NodeID) bool {
	n, ok := f.nodes[id]
	return ok && n.interactive
}

func (f *fakeInteraction) DispatchEvent(id NodeID, name string, ev *DispatchEvent) {
	n, ok := f.nodes[id]
	if !ok {
		return
	}
	f.delivered = append(f.delivered, delivery{node: id, name: name})
	for _, fn := range n.listeners[name] {
		fn(ev)
	}
}

func (f *fakeInteraction) Listen(id NodeID, name string, fn func(*DispatchEvent)) Subscription {
	n, ok := f.nodes[id]
	if !ok {
		return noopSubscription{}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]func(*DispatchEvent))
	}
	n.listeners[name] = append(n.listeners[name], fn)
	return noopSubscription{}
}

func (f *fakeInteraction) deliveredNodes() []NodeID {
	out := make([]NodeID, 0, len(f.delivered))
	for _, d := range f.delivered {
		out = append(out, d.node)
	}
	return out
}

// countingEngine wraps a Hub and counts subscription traffic.
type countingEngine struct {
	*Hub
	subscribed   []string
	unsubscribed []string
}

func newCountingEngine(clock Clock) *countingEngine {
	return &countingEngine{Hub: NewHub(clock)}
}

type countingSub struct {
	e    *countingEngine
	name string
	sub  Subscription
}

func (s countingSub) Remove() {
	s.e.unsubscribed = append(s.e.unsubscribed, s.name)
	s.sub.Remove()
}

func (e *countingEngine) On(event string, fn func(Event)) Subscription {
	e.subscribed = append(e.subscribed, event)
	return countingSub{e: e, name: event, sub: e.Hub.On(event, fn)}
}

func (e *countingEngine) resetCounts() {
	e.subscribed = nil
	e.unsubscribed = nil
}

// newTestManager builds a Manager over a counting engine with the given
// recognizers and flushes the initial subscription pass.
func newTestManager(clock *manualClock, in Interaction, specs ...RecognizerConfig) (*Manager, *countingEngine, error) {
	engine := newCountingEngine(clock)
	if len(specs) == 0 {
		specs = []RecognizerConfig{{Kind: KindTap}, {Kind: KindPan}}
	}
	m, err := New(engine, in, Config{Recognizers: specs, Clock: clock})
	if err != nil {
		return nil, nil, err
	}
	m.Flush()
	engine.resetCounts()
	return m, engine, nil
}
