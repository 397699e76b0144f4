package gesture

// computeActiveEventNames returns every concrete event name the installed
// recognizers can emit: the custom name joined with each suffix of the
// recognizer's base kind. Order follows install order; duplicates are
// dropped.
func (m *Manager) computeActiveEventNames() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, r := range m.engine.Recognizers() {
		for _, name := range EventNames(r.Kind(), r.Event()) {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// difference returns the elements of a not present in b, preserving a's order.
func difference(a, b []string) []string {
	if len(a) == 0 {
		return nil
	}
	exclude := make(map[string]struct{}, len(b))
	for _, s := range b {
		exclude[s] = struct{}{}
	}
	var out []string
	for _, s := range a {
		if _, ok := exclude[s]; !ok {
			out = append(out, s)
		}
	}
	return out
}

// reconcile brings the registered name set in line with the active set:
// active minus registered is subscribed, registered minus active is
// unsubscribed. A second call with no recognizer change does nothing.
func (m *Manager) reconcile(reason string) (added, removed []string) {
	if m.destroyed {
		return nil, nil
	}
	active := m.computeActiveEventNames()

	added = difference(active, m.registered)
	for _, name := range added {
		m.subs[name] = m.engine.On(name, m.dispatch)
	}
	m.registered = append(m.registered, added...)

	removed = difference(m.registered, active)
	if len(removed) > 0 {
		for _, name := range removed {
			if sub, ok := m.subs[name]; ok {
				sub.Remove()
				delete(m.subs, name)
			}
		}
		m.registered = difference(m.registered, removed)
	}

	m.passes++
	if len(added) > 0 || len(removed) > 0 {
		m.log.Debug().
			Str("trigger", reason).
			Strs("added", added).
			Strs("removed", removed).
			Int("registered", len(m.registered)).
			Msg("gesture subscriptions reconciled")
	}
	return added, removed
}

// ActiveEventNames returns the event names the installed recognizers can
// currently emit.
func (m *Manager) ActiveEventNames() []string {
	if m.destroyed {
		return nil
	}
	return m.computeActiveEventNames()
}

// RegisteredEventNames returns a copy of the subscribed event names, in
// subscription order.
func (m *Manager) RegisteredEventNames() []string {
	out := make([]string, len(m.registered))
	copy(out, m.registered)
	return out
}
