package scene

import (
	"testing"

	"github.com/phanxgames/gesture"
)

// --- Constructor defaults ---

func TestNewContainerDefaults(t *testing.T) {
	n := NewContainer("test")
	assertNodeDefaults(t, n, "test", NodeTypeContainer)
}

func TestNewSpriteDefaults(t *testing.T) {
	n := NewSprite("spr", 32, 16, Color{R: 1, A: 1})
	assertNodeDefaults(t, n, "spr", NodeTypeSprite)
	if n.Width != 32 || n.Height != 16 {
		t.Errorf("size = %vx%v, want 32x16", n.Width, n.Height)
	}
	if n.Color != (Color{R: 1, A: 1}) {
		t.Errorf("Color = %v", n.Color)
	}
}

func assertNodeDefaults(t *testing.T, n *Node, name string, typ NodeType) {
	t.Helper()
	if n.ID == 0 {
		t.Error("ID should be non-zero")
	}
	if n.Name != name {
		t.Errorf("Name = %q, want %q", n.Name, name)
	}
	if n.Type != typ {
		t.Errorf("Type = %d, want %d", n.Type, typ)
	}
	if n.ScaleX != 1 || n.ScaleY != 1 {
		t.Errorf("Scale = (%v, %v), want (1, 1)", n.ScaleX, n.ScaleY)
	}
	if n.Alpha != 1 {
		t.Errorf("Alpha = %v, want 1", n.Alpha)
	}
	if !n.Visible {
		t.Error("Visible should default to true")
	}
	if n.Interactable {
		t.Error("Interactable should default to false")
	}
}

func TestNodeIDsUnique(t *testing.T) {
	seen := make(map[gesture.NodeID]bool)
	for i := 0; i < 100; i++ {
		n := NewContainer("n")
		if seen[n.ID] {
			t.Fatalf("duplicate ID %d", n.ID)
		}
		seen[n.ID] = true
	}
}

// --- Tree manipulation ---

func TestAddChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)

	if child.Parent != parent {
		t.Error("child.Parent should be parent")
	}
	if parent.NumChildren() != 1 || parent.Children()[0] != child {
		t.Error("parent should contain child")
	}
}

func TestAddChildReparents(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	child := NewContainer("child")
	a.AddChild(child)
	b.AddChild(child)

	if a.NumChildren() != 0 {
		t.Errorf("old parent has %d children, want 0", a.NumChildren())
	}
	if child.Parent != b {
		t.Error("child.Parent should be b")
	}
}

func TestAddChildCyclePanics(t *testing.T) {
	a := NewContainer("a")
	b := NewContainer("b")
	a.AddChild(b)

	defer func() {
		if recover() == nil {
			t.Error("expected panic on cycle")
		}
	}()
	b.AddChild(a)
}

func TestAddChildNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on nil child")
		}
	}()
	NewContainer("a").AddChild(nil)
}

func TestRemoveChild(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	parent.AddChild(child)
	parent.RemoveChild(child)

	if child.Parent != nil {
		t.Error("child.Parent should be nil")
	}
	if parent.NumChildren() != 0 {
		t.Error("parent should have no children")
	}
}

func TestRemoveChildWrongParentPanics(t *testing.T) {
	a := NewContainer("a")
	other := NewContainer("other")
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	a.RemoveChild(other)
}

func TestRemoveFromParentNoParent(t *testing.T) {
	n := NewContainer("n")
	n.RemoveFromParent() // must not panic
}

func TestSetZIndexMarksParentUnsorted(t *testing.T) {
	parent := NewContainer("parent")
	a := NewContainer("a")
	b := NewContainer("b")
	parent.AddChild(a)
	parent.AddChild(b)
	sortedChildrenOf(parent)

	a.SetZIndex(5)
	if parent.childrenSorted {
		t.Error("SetZIndex should mark parent unsorted")
	}
	got := sortedChildrenOf(parent)
	if got[0] != b || got[1] != a {
		t.Errorf("sorted order = [%s %s], want [b a]", got[0].Name, got[1].Name)
	}
	if parent.Children()[0] != a {
		t.Error("sorting must not reorder the child list")
	}
}

func TestRebuildSortedChildrenStable(t *testing.T) {
	parent := NewContainer("parent")
	names := []string{"a", "b", "c", "d"}
	for _, name := range names {
		parent.AddChild(NewContainer(name))
	}
	got := sortedChildrenOf(parent)
	for i, n := range got {
		if n.Name != names[i] {
			t.Errorf("sorted[%d] = %s, want %s", i, n.Name, names[i])
		}
	}
}

// --- Listeners ---

func TestNodeOnAndRemove(t *testing.T) {
	n := NewContainer("n")
	var calls int
	h := n.On("gesture-tap", func(*gesture.DispatchEvent) { calls++ })

	n.emit("gesture-tap", &gesture.DispatchEvent{})
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}

	h.Remove()
	h.Remove()
	n.emit("gesture-tap", &gesture.DispatchEvent{})
	if calls != 1 {
		t.Errorf("calls after Remove = %d, want 1", calls)
	}
	if n.ListenerCount("gesture-tap") != 0 {
		t.Errorf("ListenerCount = %d, want 0", n.ListenerCount("gesture-tap"))
	}
}

func TestNodeListenerRemovesAnotherDuringEmit(t *testing.T) {
	n := NewContainer("n")
	var order []string
	var second ListenerHandle
	n.On("gesture-tap", func(*gesture.DispatchEvent) {
		order = append(order, "first")
		second.Remove()
	})
	second = n.On("gesture-tap", func(*gesture.DispatchEvent) {
		order = append(order, "second")
	})

	n.emit("gesture-tap", &gesture.DispatchEvent{})
	if len(order) != 1 {
		t.Fatalf("order = %v, want second skipped once removed", order)
	}
	n.emit("gesture-tap", &gesture.DispatchEvent{})
	if len(order) != 2 || order[1] != "first" {
		t.Errorf("order = %v", order)
	}
}

func TestZeroListenerHandle(t *testing.T) {
	var h ListenerHandle
	h.Remove() // must not panic
}

// --- Disposal ---

func TestDispose(t *testing.T) {
	parent := NewContainer("parent")
	child := NewContainer("child")
	grandchild := NewContainer("grandchild")
	parent.AddChild(child)
	child.AddChild(grandchild)
	child.On("gesture-tap", func(*gesture.DispatchEvent) {})

	child.Dispose()

	if !child.IsDisposed() || !grandchild.IsDisposed() {
		t.Error("child and grandchild should be disposed")
	}
	if child.ID != 0 {
		t.Errorf("disposed ID = %d, want 0", child.ID)
	}
	if parent.NumChildren() != 0 {
		t.Error("disposed child should be detached")
	}
	if child.ListenerCount("gesture-tap") != 0 {
		t.Error("listeners should be dropped")
	}
	h := child.On("gesture-tap", func(*gesture.DispatchEvent) {})
	if h != (ListenerHandle{}) {
		t.Error("On after Dispose should return a no-op handle")
	}
	child.Dispose() // idempotent
}

func TestDebugModeDisposedPanics(t *testing.T) {
	s := NewScene()
	s.SetDebugMode(true)
	defer s.SetDebugMode(false)

	n := NewContainer("n")
	n.Dispose()
	defer func() {
		if recover() == nil {
			t.Error("expected panic adding a disposed node in debug mode")
		}
	}()
	s.Root().AddChild(n)
}
