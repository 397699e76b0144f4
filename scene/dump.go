package scene

import (
	"fmt"
	"slices"
	"strings"

	"github.com/xlab/treeprint"
)

// Dump renders the attached tree in ZIndex order, one line per node:
// name, ID, type and the flags that matter for hit testing and dispatch.
func (s *Scene) Dump() string {
	tree := treeprint.New()
	tree.SetValue(nodeLabel(s.root))
	dumpChildren(tree, s.root)
	return tree.String()
}

func dumpChildren(t treeprint.Tree, n *Node) {
	for _, c := range sortedChildrenOf(n) {
		if len(c.children) == 0 {
			t.AddNode(nodeLabel(c))
			continue
		}
		dumpChildren(t.AddBranch(nodeLabel(c)), c)
	}
}

func nodeLabel(n *Node) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s #%d (%s)", n.Name, n.ID, n.Type)
	if n.Interactable {
		b.WriteString(" interactive")
	}
	if !n.Visible {
		b.WriteString(" hidden")
	}
	if n.ZIndex != 0 {
		fmt.Fprintf(&b, " z=%d", n.ZIndex)
	}
	if n.EntityID != 0 {
		fmt.Fprintf(&b, " entity=%d", n.EntityID)
	}
	if len(n.listeners) > 0 {
		names := make([]string, 0, len(n.listeners))
		for name := range n.listeners {
			names = append(names, name)
		}
		slices.Sort(names)
		fmt.Fprintf(&b, " on=[%s]", strings.Join(names, " "))
	}
	return b.String()
}
