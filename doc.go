// Package gesture routes touch and pointer gestures (tap, pan, pinch, press,
// rotate, swipe) to the nodes of a retained scene graph, with DOM-style
// bubbling.
//
// A recognizer engine turns raw pointer input into named events such as
// "tap", "panstart" or "swipeleft". The [Manager] subscribes to exactly the
// names the installed recognizers can emit, hit-tests the scene once at the
// first contact of every gesture, and re-emits each recognized event on that
// node and then on each interactive ancestor under a namespaced name
// ("gesture-tap"). Any listener can stop the walk with
// [DispatchEvent.StopPropagation].
//
// # Quick start
//
// The built-in engine is [Hub]; [PointerFeed] feeds it from ebiten's mouse
// and touch state. The scene side is any [Interaction]; the scene package in
// this module provides one.
//
//	hub := gesture.NewHub(nil)
//	feed := gesture.NewPointerFeed(hub, nil)
//	mgr, err := gesture.New(hub, sc.Interaction(), gesture.Config{})
//	if err != nil {
//		log.Fatal(err)
//	}
//	mgr.Listen(box.ID, "tap", func(ev *gesture.DispatchEvent) {
//		fmt.Println("tapped", ev.CurrentTarget)
//	})
//
//	// every frame, from ebiten.Game.Update:
//	feed.Poll()
//	mgr.Update()
//
// # Subscriptions
//
// Event names are derived from each recognizer's custom name plus the
// suffixes of its base kind (see [Suffixes]). Adding or removing recognizers
// schedules a reconciliation through a [Debouncer] (500ms settle, 5s
// ceiling by default), so bulk setup collapses into one pass. Call
// [Manager.Flush] to apply pending changes immediately.
//
// # Targets
//
// The target of a gesture is looked up by [NodeID], never held. It is set on
// the first contact and kept after the gesture ends, until the next first
// contact replaces it.
package gesture
