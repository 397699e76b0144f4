package gesture

import "time"

// Point is a 2D coordinate. Input centers are in screen space; points filled
// by Interaction.MapPositionToPoint are in scene space.
type Point struct {
	X, Y float64
}

// NodeID identifies a scene-graph node by lookup, never by ownership.
// Zero means "no node".
type NodeID uint32

// Kind is the base gesture category a recognizer implements. It is also the
// recognizer's default event name.
type Kind string

const (
	KindTap    Kind = "tap"    // press and release without moving
	KindPan    Kind = "pan"    // single-pointer drag
	KindPinch  Kind = "pinch"  // two-pointer scale
	KindPress  Kind = "press"  // press and hold
	KindRotate Kind = "rotate" // two-pointer rotation
	KindSwipe  Kind = "swipe"  // fast directional flick
)

// Direction is a bitmask of movement directions.
type Direction uint8

const (
	DirectionNone  Direction = 0
	DirectionLeft  Direction = 1
	DirectionRight Direction = 2
	DirectionUp    Direction = 4
	DirectionDown  Direction = 8

	DirectionHorizontal = DirectionLeft | DirectionRight
	DirectionVertical   = DirectionUp | DirectionDown
	DirectionAll        = DirectionHorizontal | DirectionVertical
)

// String returns the event suffix for a single direction ("left", "right",
// "up", "down"), the group name for the combined masks, or "" for none.
func (d Direction) String() string {
	switch d {
	case DirectionLeft:
		return "left"
	case DirectionRight:
		return "right"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	case DirectionHorizontal:
		return "horizontal"
	case DirectionVertical:
		return "vertical"
	case DirectionAll:
		return "all"
	default:
		return ""
	}
}

// directionOf returns the dominant direction of a movement.
// Y increases downward.
func directionOf(dx, dy float64) Direction {
	if dx == 0 && dy == 0 {
		return DirectionNone
	}
	if abs(dx) >= abs(dy) {
		if dx < 0 {
			return DirectionLeft
		}
		return DirectionRight
	}
	if dy < 0 {
		return DirectionUp
	}
	return DirectionDown
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// InputType identifies a raw input phase.
type InputType uint8

const (
	InputStart  InputType = iota // a pointer went down
	InputMove                    // pointers held or moved
	InputEnd                     // the last pointer went up
	InputCancel                  // the gesture was aborted by the platform
)

// Input is a raw input notification from the recognizer engine. One gesture
// sequence runs from an input with IsFirst to an input with IsFinal.
type Input struct {
	Type     InputType
	IsFirst  bool
	IsFinal  bool
	Center   Point // centroid of the active pointers, screen space
	Pointers int
	Time     time.Time
}

// Event is a recognized gesture event as emitted by the engine.
type Event struct {
	// Type is the concrete event name, e.g. "panstart" or "doubletap".
	Type      string
	Kind      Kind
	Center    Point
	DeltaX    float64
	DeltaY    float64
	Direction Direction
	Pointers  int
	TapCount  int
	IsFirst   bool
	IsFinal   bool
	Duration  time.Duration
	Time      time.Time
}

// Subscription is a removable registration handle.
type Subscription interface {
	Remove()
}

type noopSubscription struct{}

func (noopSubscription) Remove() {}

// Interaction is the scene-graph collaborator. Nodes are addressed by ID so
// that a node removed from the graph mid-gesture simply stops resolving:
// Parent returns 0, Interactive returns false and DispatchEvent does nothing.
type Interaction interface {
	// MapPositionToPoint maps an input-space position into scene space.
	MapPositionToPoint(out *Point, x, y float64)
	// HitTest returns the topmost node at p, or 0.
	HitTest(p Point) NodeID
	Parent(id NodeID) NodeID
	Interactive(id NodeID) bool
	// DispatchEvent delivers ev to the listeners registered on id under name.
	// It must be synchronous.
	DispatchEvent(id NodeID, name string, ev *DispatchEvent)
	// Listen registers fn on id under name.
	Listen(id NodeID, name string, fn func(*DispatchEvent)) Subscription
}
