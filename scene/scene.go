package scene

import (
	"time"

	"github.com/phanxgames/gesture"
)

// EntityStore is the interface for optional ECS integration.
// When set on a Scene, every gesture event delivered to a node with a
// non-zero EntityID is forwarded to the store.
type EntityStore interface {
	EmitEvent(event GestureEvent)
}

// GestureEvent carries one node-level gesture delivery for the ECS bridge.
type GestureEvent struct {
	// Name is the namespaced event name, e.g. "gesture-panmove".
	Name string
	Kind gesture.Kind
	// EntityID is the receiving node's EntityID.
	EntityID uint32
	// Target is the node the gesture started on; CurrentTarget is the node
	// receiving this delivery.
	Target        gesture.NodeID
	CurrentTarget gesture.NodeID
	GlobalX       float64
	GlobalY       float64
	LocalX        float64
	LocalY        float64
	DeltaX        float64
	DeltaY        float64
	Direction     gesture.Direction
	Pointers      int
	TapCount      int
}

// Scene owns the node tree and cameras, and resolves node IDs for gesture
// dispatch.
//
// Nodes are found by ID only while they are attached under the root: a node
// removed or disposed mid-gesture stops resolving and receives nothing.
type Scene struct {
	root  *Node
	store EntityStore
	debug bool

	cameras []*Camera

	hitBuf []*Node

	index    map[gesture.NodeID]*Node
	indexGen uint64
	indexed  bool

	interaction Interaction
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	root := NewContainer("root")
	root.Interactable = true
	s := &Scene{root: root}
	s.interaction.scene = s
	return s
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// Update refreshes world transforms and advances cameras by dt.
func (s *Scene) Update(dt time.Duration) {
	s.refreshTransforms()
	for _, cam := range s.cameras {
		cam.update(float32(dt.Seconds()))
	}
}

func (s *Scene) refreshTransforms() {
	refreshWorld(s.root, identityAffine, false)
}

// NewCamera creates a camera with the given viewport and adds it to the scene.
func (s *Scene) NewCamera(viewport Rect) *Camera {
	cam := newCamera(viewport)
	s.cameras = append(s.cameras, cam)
	return cam
}

// RemoveCamera removes a camera from the scene.
func (s *Scene) RemoveCamera(cam *Camera) {
	for i, c := range s.cameras {
		if c == cam {
			copy(s.cameras[i:], s.cameras[i+1:])
			s.cameras[len(s.cameras)-1] = nil
			s.cameras = s.cameras[:len(s.cameras)-1]
			return
		}
	}
}

// Cameras returns the scene's camera list. The returned slice MUST NOT be mutated.
func (s *Scene) Cameras() []*Camera {
	return s.cameras
}

// ScreenToWorld converts a screen position to world space through the
// primary (first) camera, or returns it unchanged when there is none.
func (s *Scene) ScreenToWorld(sx, sy float64) (float64, float64) {
	if len(s.cameras) == 0 {
		return sx, sy
	}
	return s.cameras[0].ScreenToWorld(sx, sy)
}

// SetEntityStore sets the optional ECS bridge.
func (s *Scene) SetEntityStore(store EntityStore) {
	s.store = store
}

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics and tree depth and child count warnings are printed to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which lack a Scene pointer) can check it cheaply.
var globalDebug bool

// Find returns the attached node with the given ID, or nil.
func (s *Scene) Find(id gesture.NodeID) *Node {
	if id == 0 {
		return nil
	}
	if !s.indexed || s.indexGen != treeGeneration {
		s.rebuildIndex()
	}
	return s.index[id]
}

func (s *Scene) rebuildIndex() {
	if s.index == nil {
		s.index = make(map[gesture.NodeID]*Node)
	} else {
		clear(s.index)
	}
	var walk func(n *Node)
	walk = func(n *Node) {
		s.index[n.ID] = n
		for _, child := range n.children {
			walk(child)
		}
	}
	walk(s.root)
	s.indexGen = treeGeneration
	s.indexed = true
}

// HitTestScreen returns the topmost interactable node under a screen
// position, or nil.
func (s *Scene) HitTestScreen(sx, sy float64) *Node {
	s.refreshTransforms()
	wx, wy := s.ScreenToWorld(sx, sy)
	return s.hitTest(wx, wy)
}
