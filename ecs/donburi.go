package ecs

import (
	"github.com/phanxgames/gesture"
	"github.com/phanxgames/gesture/scene"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// GestureEventType is the Donburi event type for node-level gesture
// deliveries. Subscribe to this in your ECS systems to receive tap, pan,
// swipe, press, pinch and rotate events.
var GestureEventType = events.NewEventType[scene.GestureEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EntityStore backed by a Donburi world.
// Gesture events are published to GestureEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) scene.EntityStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event scene.GestureEvent) {
	GestureEventType.Publish(s.world, event)
}

// SubscribeKind subscribes fn to gesture events of a single kind.
func SubscribeKind(world donburi.World, kind gesture.Kind, fn func(donburi.World, scene.GestureEvent)) {
	GestureEventType.Subscribe(world, func(w donburi.World, e scene.GestureEvent) {
		if e.Kind == kind {
			fn(w, e)
		}
	})
}
