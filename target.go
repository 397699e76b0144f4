package gesture

// resolveTarget runs on every raw input and hit-tests only on the first
// contact of a gesture, so a drag keeps dispatching to the node it started
// on.
//
// The first target is never cleared when a gesture ends: tap is emitted on
// the final input, after which clearing would be too early. It is
// overwritten on the next first contact instead. Under multi-touch, IsFirst
// marks the first pointer of the sequence only; a second finger joining does
// not move the target.
func (m *Manager) resolveTarget(in Input) {
	if !in.IsFirst || m.interaction == nil {
		return
	}
	m.firstTarget = m.targetAt(in.Center)
}

// targetAt maps an input-space point into scene space and hit-tests it.
func (m *Manager) targetAt(center Point) NodeID {
	var pt Point
	m.interaction.MapPositionToPoint(&pt, center.X, center.Y)
	return m.interaction.HitTest(pt)
}

// FirstTarget returns the node the current (or most recent) gesture started
// on, or 0.
func (m *Manager) FirstTarget() NodeID {
	return m.firstTarget
}
