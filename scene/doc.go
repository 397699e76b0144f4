// Package scene is a small retained scene graph that gestures resolve
// against.
//
// A [Scene] owns a tree of [Node] values rooted at [Scene.Root]. Nodes carry
// an affine transform (position, scale, rotation, skew, pivot), a ZIndex for
// sibling ordering and an optional [HitShape]. Hit testing walks the tree in
// painter order and returns the topmost interactable node, so the node drawn
// last wins.
//
// [Scene.Interaction] adapts the scene to the gesture package: nodes are
// addressed by [gesture.NodeID], and a node removed from the tree stops
// resolving immediately. Gesture listeners are attached per node with
// [Node.On] or through the gesture Manager's Listen.
//
//	sc := scene.NewScene()
//	box := scene.NewSprite("box", 64, 64, scene.Color{R: 1, A: 1})
//	box.Interactable = true
//	box.SetPosition(100, 100)
//	sc.Root().AddChild(box)
//
//	mgr, _ := gesture.New(hub, sc.Interaction(), gesture.Config{})
//	mgr.Listen(box.ID, "tap", func(ev *gesture.DispatchEvent) { ... })
//
// An optional [EntityStore] receives a [GestureEvent] for every delivery to
// a node with a non-zero EntityID; the ecs module provides a Donburi-backed
// store.
//
// The scene is single-threaded, like the game loop that drives it.
package scene
