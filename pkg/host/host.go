// Package host defines the host tree adapter consumed by the reconciler.
//
// The host tree is the live, mutable structure being rendered: a browser
// DOM, a terminal widget tree, or the in-memory tree in package memtree.
// The reconciler never reaches it through global state; it is always handed
// a Tree and the Nodes that Tree created.
package host

// Kind is the kind of a host node.
type Kind uint8

const (
	KindElement Kind = iota + 1
	KindText
)

// String returns the string representation of the Kind.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Node is read access to a live host node.
type Node interface {
	// Kind reports whether the node is an element or a text node.
	Kind() Kind

	// Tag is the element tag name. Empty for text nodes.
	Tag() string

	// Text is the content of a text node. Empty for elements.
	Text() string

	// Key is the reconciliation key recorded with SetKey.
	Key() string

	// Owner is the component instance recorded with SetOwner, or nil.
	Owner() any

	// Parent returns the parent node, or nil if the node is detached.
	Parent() Node

	// Children returns the current children in order. The slice is a
	// snapshot; mutations after the call do not change it.
	Children() []Node

	// NextSibling returns the following sibling, or nil.
	NextSibling() Node

	// Attrs returns a snapshot of the current attribute set.
	Attrs() map[string]any
}

// Tree creates and mutates host nodes.
type Tree interface {
	CreateElement(tag string) (Node, error)
	CreateText(text string) (Node, error)

	// SetText replaces the content of a text node.
	SetText(n Node, text string) error

	// AppendChild moves child to the end of parent's children, detaching it
	// from any previous parent.
	AppendChild(parent, child Node) error

	// InsertBefore moves child in front of ref, which must be a child of
	// parent. A nil ref appends.
	InsertBefore(parent, child, ref Node) error

	RemoveChild(parent, child Node) error

	// ReplaceChild puts newChild at the position of oldChild and detaches
	// oldChild.
	ReplaceChild(parent, newChild, oldChild Node) error

	// SetProperty applies an attribute, property or event binding. How the
	// value is interpreted is up to the host.
	SetProperty(n Node, key string, value any) error

	// RemoveProperty removes an attribute, property or event binding.
	RemoveProperty(n Node, key string) error

	// SetKey records the reconciliation key of a node.
	SetKey(n Node, key string) error

	// SetOwner records the component instance whose rendered output n is.
	// The association is informational: the host must not call into the
	// owner. Passing nil clears it.
	SetOwner(n Node, owner any)
}

// IsElement reports whether n is an element node.
func IsElement(n Node) bool {
	return n != nil && n.Kind() == KindElement
}

// IsText reports whether n is a text node.
func IsText(n Node) bool {
	return n != nil && n.Kind() == KindText
}

// IndexOf returns the position of child among parent's children, or -1.
func IndexOf(parent, child Node) int {
	if parent == nil {
		return -1
	}
	for i, c := range parent.Children() {
		if c == child {
			return i
		}
	}
	return -1
}
