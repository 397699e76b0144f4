package scene

import (
	"github.com/phanxgames/gesture"
)

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic: the scene is single-threaded).
var nodeIDCounter gesture.NodeID

func nextNodeID() gesture.NodeID {
	nodeIDCounter++
	return nodeIDCounter
}

// treeGeneration advances on every structural change to any tree. Scenes
// compare it to rebuild their ID index lazily.
var treeGeneration uint64

// --- Listeners ---

type listener struct {
	id uint32
	fn func(*gesture.DispatchEvent)
}

// ListenerHandle removes a per-node gesture listener. The zero value is a
// valid no-op handle.
type ListenerHandle struct {
	node *Node
	name string
	id   uint32
}

// Remove unregisters the listener. Safe to call more than once and from
// inside a listener.
func (h ListenerHandle) Remove() {
	if h.node == nil || h.node.listeners == nil {
		return
	}
	s := removeListener(h.node.listeners[h.name], h.id)
	if len(s) == 0 {
		delete(h.node.listeners, h.name)
		return
	}
	h.node.listeners[h.name] = s
}

func removeListener(s []listener, id uint32) []listener {
	for i := range s {
		if s[i].id == id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = listener{}
			return s[:len(s)-1]
		}
	}
	return s
}

func hasListener(s []listener, id uint32) bool {
	for i := range s {
		if s[i].id == id {
			return true
		}
	}
	return false
}

// --- Node ---

// Node is the scene graph element. A single flat struct is used for all node
// types.
type Node struct {
	// Identity
	ID   gesture.NodeID
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Transform (local)
	X, Y         float64
	ScaleX       float64
	ScaleY       float64
	Rotation     float64
	PivotX       float64
	PivotY       float64

	worldTransform affine
	transformDirty bool

	// Size of a sprite in local units. Also the default hit area.
	Width, Height float64

	// Visibility & interaction
	Alpha        float64
	Visible      bool
	Interactable bool
	Color        Color

	// Ordering
	ZIndex int

	// Metadata
	UserData any
	EntityID uint32

	// HitShape overrides the Width x Height hit area.
	HitShape HitShape

	listeners  map[string][]listener
	listenerID uint32

	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Color = ColorWhite
	n.Visible = true
	n.transformDirty = true
	n.childrenSorted = true
}

// NewContainer creates a container node with no visual representation.
// Containers are hit-testable only through a HitShape.
func NewContainer(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeContainer}
	nodeDefaults(n)
	return n
}

// NewSprite creates a solid-color rectangle of the given size.
func NewSprite(name string, w, h float64, c Color) *Node {
	n := &Node{Name: name, Type: NodeTypeSprite, Width: w, Height: h}
	nodeDefaults(n)
	n.Color = c
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scene: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scene: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	markSubtreeDirty(child)
	treeGeneration++
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
		debugCheckDisposed(child, "RemoveChild (child)")
	}
	if child.Parent != n {
		panic("scene: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	markSubtreeDirty(child)
	treeGeneration++
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// SetZIndex sets the node's ZIndex and marks the parent's children as unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// --- Gesture listeners ---

// On registers fn for the namespaced gesture event name (for example
// "gesture-tap") on this node. Listeners run in registration order.
// Disposed nodes return a no-op handle.
func (n *Node) On(name string, fn func(*gesture.DispatchEvent)) ListenerHandle {
	if n.disposed || fn == nil {
		return ListenerHandle{}
	}
	if n.listeners == nil {
		n.listeners = make(map[string][]listener)
	}
	n.listenerID++
	id := n.listenerID
	n.listeners[name] = append(n.listeners[name], listener{id: id, fn: fn})
	return ListenerHandle{node: n, name: name, id: id}
}

// ListenerCount returns the number of listeners registered under name.
func (n *Node) ListenerCount(name string) int {
	return len(n.listeners[name])
}

// emit calls the listeners registered under name. A listener removed during
// the call is skipped if it has not run yet; one added waits for the next emit.
func (n *Node) emit(name string, ev *gesture.DispatchEvent) {
	ls := n.listeners[name]
	switch len(ls) {
	case 0:
		return
	case 1:
		ls[0].fn(ev)
		return
	}
	snapshot := make([]listener, len(ls))
	copy(snapshot, ls)
	for _, l := range snapshot {
		if !hasListener(n.listeners[name], l.id) {
			continue
		}
		l.fn(ev)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
	treeGeneration++
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.HitShape = nil
	n.UserData = nil
	n.listeners = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

// markSubtreeDirty sets transformDirty on node and all its descendants.
func markSubtreeDirty(node *Node) {
	node.transformDirty = true
	for _, child := range node.children {
		markSubtreeDirty(child)
	}
}
