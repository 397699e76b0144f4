// Package ecs provides ECS adapters for the gesture scene bridge.
//
// The primary adapter is [NewDonburiStore], which publishes every gesture
// delivery to a node with a non-zero EntityID into a [Donburi] world as a
// typed event. Subscribe to [GestureEventType] in your ECS systems to receive
// them, or use [SubscribeKind] to receive a single gesture family.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	sc.SetEntityStore(store)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
