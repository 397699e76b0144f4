package gesture

// EventPrefix namespaces re-emitted gesture events so they cannot collide
// with the scene's own event names: "tap" is dispatched to nodes as
// "gesture-tap".
const EventPrefix = "gesture-"

// Namespace returns the node-level name for an engine event name.
func Namespace(event string) string {
	return EventPrefix + event
}

// DispatchEvent is the payload delivered to node listeners. It carries a copy
// of the recognized Event; only the propagation flag changes during a walk.
type DispatchEvent struct {
	Event

	// Name is the namespaced event name, e.g. "gesture-panstart".
	Name string
	// Target is the node the gesture started on.
	Target NodeID
	// CurrentTarget is the node whose listeners are running.
	CurrentTarget NodeID

	stopped bool
}

// StopPropagation prevents delivery to any further ancestor for this event.
// Listeners already called are unaffected.
func (e *DispatchEvent) StopPropagation() {
	e.stopped = true
}

// Stopped reports whether StopPropagation was called.
func (e *DispatchEvent) Stopped() bool {
	return e.stopped
}

// dispatch is subscribed to every registered event name. It bubbles the
// event from the first target up to the root.
func (m *Manager) dispatch(ev Event) {
	if m.interaction == nil {
		return
	}
	de := &DispatchEvent{
		Event:  ev,
		Name:   Namespace(ev.Type),
		Target: m.firstTarget,
	}
	// A listener that emits another gesture event re-enters here; the nested
	// walk gets its own buffer.
	if m.dispatching {
		m.bubble(m.interaction, m.firstTarget, de, nil)
		return
	}
	m.dispatching = true
	walk := m.bubble(m.interaction, m.firstTarget, de, m.walk[:0])
	m.dispatching = false
	if !m.destroyed {
		m.walk = walk
	}
}

// bubble delivers de to start and each of its ancestors, innermost first,
// skipping nodes that are not interactive. The walk ends at the root, when a
// listener stops propagation or destroys the manager, or if a node repeats.
// The parent is read after the node's listeners ran. visited is a reusable
// buffer; the filled buffer is returned.
func (m *Manager) bubble(in Interaction, start NodeID, de *DispatchEvent, visited []NodeID) []NodeID {
	for id := start; id != 0 && !de.stopped && !m.destroyed; id = in.Parent(id) {
		if containsNode(visited, id) {
			break
		}
		visited = append(visited, id)
		if !in.Interactive(id) {
			continue
		}
		de.CurrentTarget = id
		in.DispatchEvent(id, de.Name, de)
	}
	return visited
}

func containsNode(s []NodeID, id NodeID) bool {
	for _, v := range s {
		if v == id {
			return true
		}
	}
	return false
}
