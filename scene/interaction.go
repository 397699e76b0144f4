package scene

import "github.com/phanxgames/gesture"

// Interaction adapts a Scene to gesture.Interaction. Obtain it with
// Scene.Interaction.
type Interaction struct {
	scene *Scene
}

var _ gesture.Interaction = (*Interaction)(nil)

// Interaction returns the scene's gesture collaborator.
func (s *Scene) Interaction() *Interaction {
	return &s.interaction
}

// MapPositionToPoint maps a screen position into world space through the
// primary camera.
func (in *Interaction) MapPositionToPoint(out *gesture.Point, x, y float64) {
	out.X, out.Y = in.scene.ScreenToWorld(x, y)
}

// HitTest returns the ID of the interactable node under the world point p, or
// 0. A hit on a node that is not interactable resolves to its nearest
// interactable ancestor. World transforms are refreshed first so nodes moved since the last
// Update are hit where they are now.
func (in *Interaction) HitTest(p gesture.Point) gesture.NodeID {
	s := in.scene
	s.refreshTransforms()
	if n := s.hitTest(p.X, p.Y); n != nil {
		return n.ID
	}
	return 0
}

// Parent returns the parent's ID, or 0 for the root and for nodes no longer
// in the scene.
func (in *Interaction) Parent(id gesture.NodeID) gesture.NodeID {
	n := in.scene.Find(id)
	if n == nil || n.Parent == nil {
		return 0
	}
	return n.Parent.ID
}

// Interactive reports whether the node is in the scene and interactable.
func (in *Interaction) Interactive(id gesture.NodeID) bool {
	n := in.scene.Find(id)
	return n != nil && n.Interactable
}

// DispatchEvent runs the node's listeners for name, then forwards the
// delivery to the entity store if the node carries an EntityID. Unknown
// nodes are ignored.
func (in *Interaction) DispatchEvent(id gesture.NodeID, name string, ev *gesture.DispatchEvent) {
	s := in.scene
	n := s.Find(id)
	if n == nil {
		return
	}
	n.emit(name, ev)
	if s.store == nil || n.EntityID == 0 {
		return
	}
	wx, wy := s.ScreenToWorld(ev.Center.X, ev.Center.Y)
	lx, ly := n.WorldToLocal(wx, wy)
	s.store.EmitEvent(GestureEvent{
		Name:          name,
		Kind:          ev.Kind,
		EntityID:      n.EntityID,
		Target:        ev.Target,
		CurrentTarget: id,
		GlobalX:       wx,
		GlobalY:       wy,
		LocalX:        lx,
		LocalY:        ly,
		DeltaX:        ev.DeltaX,
		DeltaY:        ev.DeltaY,
		Direction:     ev.Direction,
		Pointers:      ev.Pointers,
		TapCount:      ev.TapCount,
	})
}

// Listen registers fn on the node under name. Unknown nodes get a no-op
// handle.
func (in *Interaction) Listen(id gesture.NodeID, name string, fn func(*gesture.DispatchEvent)) gesture.Subscription {
	n := in.scene.Find(id)
	if n == nil {
		return ListenerHandle{}
	}
	return n.On(name, fn)
}
