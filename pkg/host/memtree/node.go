package memtree

import (
	"github.com/vango-dev/vtree/pkg/host"
)

// Node is a node of an in-memory host tree.
type Node struct {
	id       string
	kind     host.Kind
	tag      string
	text     string
	key      string
	owner    any
	attrs    map[string]any
	parent   *Node
	children []*Node
	tree     *Tree
}

var _ host.Node = (*Node)(nil)

// ID returns the node's tree-unique identifier ("n1", "n2", ...).
func (n *Node) ID() string { return n.id }

// Kind implements host.Node.
func (n *Node) Kind() host.Kind { return n.kind }

// Tag implements host.Node.
func (n *Node) Tag() string { return n.tag }

// Text implements host.Node.
func (n *Node) Text() string { return n.text }

// Key implements host.Node.
func (n *Node) Key() string { return n.key }

// Owner implements host.Node.
func (n *Node) Owner() any { return n.owner }

// Parent implements host.Node.
func (n *Node) Parent() host.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// ParentNode returns the parent as a *Node, or nil.
func (n *Node) ParentNode() *Node { return n.parent }

// Children implements host.Node.
func (n *Node) Children() []host.Node {
	out := make([]host.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// ChildNodes returns a snapshot of the children as *Node values.
func (n *Node) ChildNodes() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Child returns the i-th child, or nil when out of range.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// NextSibling implements host.Node.
func (n *Node) NextSibling() host.Node {
	if n.parent == nil {
		return nil
	}
	i := n.parent.indexOf(n)
	if i < 0 || i+1 >= len(n.parent.children) {
		return nil
	}
	return n.parent.children[i+1]
}

// Attrs implements host.Node.
func (n *Node) Attrs() map[string]any {
	out := make(map[string]any, len(n.attrs))
	for k, v := range n.attrs {
		out[k] = v
	}
	return out
}

// Attr returns a single attribute value.
func (n *Node) Attr(key string) (any, bool) {
	v, ok := n.attrs[key]
	return v, ok
}

// Find returns the descendant (or n itself) with the given ID.
func (n *Node) Find(id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.Find(id); found != nil {
			return found
		}
	}
	return nil
}

func (n *Node) indexOf(child *Node) int {
	for i, c := range n.children {
		if c == child {
			return i
		}
	}
	return -1
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// detach unlinks n from its parent.
func (n *Node) detach() {
	if n.parent == nil {
		return
	}
	p := n.parent
	if i := p.indexOf(n); i >= 0 {
		p.children = append(p.children[:i], p.children[i+1:]...)
	}
	n.parent = nil
}
