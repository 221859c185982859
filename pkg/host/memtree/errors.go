package memtree

import "errors"

var (
	// ErrForeignNode is returned when a node was not created by this tree.
	ErrForeignNode = errors.New("memtree: node belongs to another tree")

	// ErrNotChild is returned when a reference node is not a child of the
	// given parent.
	ErrNotChild = errors.New("memtree: node is not a child of parent")

	// ErrNotElement is returned when an element-only operation targets a
	// text node.
	ErrNotElement = errors.New("memtree: node is not an element")

	// ErrNotText is returned by SetText on an element.
	ErrNotText = errors.New("memtree: node is not a text node")

	// ErrCycle is returned when a node would become its own descendant.
	ErrCycle = errors.New("memtree: node cannot be inserted into its own subtree")

	// ErrEmptyTag is returned by CreateElement for an empty tag name.
	ErrEmptyTag = errors.New("memtree: empty tag name")

	// ErrNilNode is returned for nil node arguments.
	ErrNilNode = errors.New("memtree: nil node")
)
