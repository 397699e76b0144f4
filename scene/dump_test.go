package scene

import (
	"fmt"
	"strings"
	"testing"

	"github.com/phanxgames/gesture"
)

func TestDump(t *testing.T) {
	s, panel, button := newNestedScene()
	button.EntityID = 7
	button.SetZIndex(3)
	button.On("gesture-tap", func(*gesture.DispatchEvent) {})
	button.On("gesture-panstart", func(*gesture.DispatchEvent) {})
	hidden := NewContainer("overlay")
	hidden.Visible = false
	s.Root().AddChild(hidden)

	out := s.Dump()
	for _, want := range []string{
		fmt.Sprintf("root #%d (container) interactive", s.Root().ID),
		fmt.Sprintf("panel #%d (sprite) interactive", panel.ID),
		fmt.Sprintf("button #%d (sprite) interactive z=3 entity=7 on=[gesture-panstart gesture-tap]", button.ID),
		fmt.Sprintf("overlay #%d (container) hidden", hidden.ID),
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Dump missing %q in:\n%s", want, out)
		}
	}
	if strings.Index(out, "panel") > strings.Index(out, "button") {
		t.Errorf("panel should be listed before its child:\n%s", out)
	}
}

func TestDumpOmitsRemovedListeners(t *testing.T) {
	s := NewScene()
	n := NewContainer("n")
	s.Root().AddChild(n)
	h := n.On("gesture-tap", func(*gesture.DispatchEvent) {})
	h.Remove()
	if strings.Contains(s.Dump(), "on=[") {
		t.Errorf("Dump should not list removed listeners:\n%s", s.Dump())
	}
}
