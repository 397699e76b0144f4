package gesture

// eventSuffixes lists, per base kind, every suffix a recognizer of that kind
// can append to its event name. The empty suffix is the bare event.
var eventSuffixes = map[Kind][]string{
	KindTap:    {""},
	KindPan:    {"", "start", "move", "end", "cancel", "left", "right", "up", "down"},
	KindPinch:  {"", "start", "move", "end", "cancel", "in", "out"},
	KindPress:  {"", "up"},
	KindRotate: {"", "start", "move", "end", "cancel"},
	KindSwipe:  {"", "left", "right", "up", "down"},
}

// Kinds returns every base kind with a known suffix set, in a stable order.
func Kinds() []Kind {
	return []Kind{KindTap, KindPan, KindPinch, KindPress, KindRotate, KindSwipe}
}

// Suffixes returns a copy of the suffix set for kind. Unknown kinds return nil.
func Suffixes(kind Kind) []string {
	s, ok := eventSuffixes[kind]
	if !ok {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

// KnownKind reports whether kind has an entry in the suffix table.
func KnownKind(kind Kind) bool {
	_, ok := eventSuffixes[kind]
	return ok
}

// EventNames returns every concrete event name a recognizer of kind emitting
// under custom can produce. Unknown kinds return nil.
func EventNames(kind Kind, custom string) []string {
	s := eventSuffixes[kind]
	if len(s) == 0 {
		return nil
	}
	names := make([]string, len(s))
	for i, suffix := range s {
		names[i] = custom + suffix
	}
	return names
}
