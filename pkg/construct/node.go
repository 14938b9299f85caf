package construct

import (
	"fmt"
	"strings"

	"github.com/go-drift/uipack/pkg/asset"
)

// Node is one instruction of a construction plan: create one object.
type Node struct {
	// Asset is the item to instantiate. Nil means a bare object of Type.
	Asset *asset.Asset
	// Content is the item whose description builds the object. It is the
	// branch or resolution variant of Asset when one was selected.
	Content *asset.Asset
	// Type is the variant declared by the record, or the item's own type
	// for a plan's closing node.
	Type asset.ObjectType
	// ChildCount is the number of objects, built immediately before this
	// one, that become its children.
	ChildCount int
	// ListItemCount is the number of objects, built immediately before
	// this one, that seed the reuse pool of a bare list.
	ListItemCount int
}

// consumes returns how many pooled objects the node takes.
func (n Node) consumes() int {
	if n.Asset != nil {
		return n.ChildCount
	}
	return n.ListItemCount
}

func (n Node) String() string {
	var sb strings.Builder
	sb.WriteString(n.Type.String())
	if n.Asset != nil {
		fmt.Fprintf(&sb, " %s <%s>", n.Asset, n.Asset.URL())
		if n.Content != nil && n.Content != n.Asset {
			fmt.Fprintf(&sb, " content=%s", n.Content)
		}
	}
	if n.ChildCount > 0 {
		fmt.Fprintf(&sb, " children=%d", n.ChildCount)
	}
	if n.ListItemCount > 0 {
		fmt.Fprintf(&sb, " items=%d", n.ListItemCount)
	}
	return sb.String()
}

// Plan is the ordered list of nodes for one construction, children before
// their parent. The last node builds the root.
type Plan []Node

// Root returns the closing node.
func (p Plan) Root() Node {
	return p[len(p)-1]
}

// Validate replays the stack reduction without creating objects. It
// reports the first node that takes more objects than are pooled, and a
// plan that does not reduce to exactly one root.
func (p Plan) Validate() error {
	if len(p) == 0 {
		return fmt.Errorf("%w: empty plan", ErrPoolUnderflow)
	}
	depth := 0
	for i, n := range p {
		c := n.consumes()
		if c < 0 || c > depth {
			return fmt.Errorf("%w: node %d (%s) takes %d of %d pooled objects", ErrPoolUnderflow, i, n, c, depth)
		}
		depth = depth - c + 1
	}
	if depth != 1 {
		return fmt.Errorf("%w: plan leaves %d objects pooled", ErrPoolUnderflow, depth)
	}
	return nil
}

// String renders the plan one node per line, indented by the depth of the
// object in the final tree.
func (p Plan) String() string {
	depths := make([]int, len(p))
	p.assignDepth(len(p)-1, 0, depths)
	var sb strings.Builder
	for i, n := range p {
		fmt.Fprintf(&sb, "%3d %s%s\n", i, strings.Repeat("  ", depths[i]), n)
	}
	return sb.String()
}

// assignDepth walks the reduction backwards from node i, which sits at
// depth d, and returns the index of the first node of its subtree.
func (p Plan) assignDepth(i, d int, depths []int) int {
	if i < 0 {
		return i
	}
	depths[i] = d
	j := i - 1
	for range p[i].consumes() {
		if j < 0 {
			break
		}
		j = p.assignDepth(j, d+1, depths) - 1
	}
	return j + 1
}
