package memtree

import (
	"github.com/vango-dev/vtree/pkg/host"
)

// Tree is an in-memory host tree that records its mutations.
type Tree struct {
	ids       idGenerator
	log       []Mutation
	observers []func(Mutation)
}

var _ host.Tree = (*Tree)(nil)

// New creates an empty tree.
func New() *Tree {
	return &Tree{}
}

// Container creates a detached element to mount into. Its creation is not
// recorded.
func (t *Tree) Container(tag string) *Node {
	return &Node{
		id:    t.ids.Next(),
		kind:  host.KindElement,
		tag:   tag,
		attrs: make(map[string]any),
		tree:  t,
	}
}

// Mutations returns a copy of the recorded mutations.
func (t *Tree) Mutations() []Mutation {
	out := make([]Mutation, len(t.log))
	copy(out, t.log)
	return out
}

// Reset clears the mutation log.
func (t *Tree) Reset() {
	t.log = t.log[:0]
}

// OnMutation registers an observer called for every recorded mutation.
func (t *Tree) OnMutation(fn func(Mutation)) {
	t.observers = append(t.observers, fn)
}

// NodesCreated returns how many nodes the tree has created, containers
// included.
func (t *Tree) NodesCreated() int {
	return int(t.ids.Current())
}

func (t *Tree) emit(m Mutation) {
	t.log = append(t.log, m)
	for _, fn := range t.observers {
		fn(m)
	}
}

// node converts a host.Node created by this tree back to *Node.
func (t *Tree) node(n host.Node) (*Node, error) {
	if n == nil {
		return nil, ErrNilNode
	}
	mn, ok := n.(*Node)
	if !ok || mn == nil {
		return nil, ErrForeignNode
	}
	if mn.tree != t {
		return nil, ErrForeignNode
	}
	return mn, nil
}

func (t *Tree) element(n host.Node) (*Node, error) {
	mn, err := t.node(n)
	if err != nil {
		return nil, err
	}
	if mn.kind != host.KindElement {
		return nil, ErrNotElement
	}
	return mn, nil
}

// CreateElement implements host.Tree.
func (t *Tree) CreateElement(tag string) (host.Node, error) {
	if tag == "" {
		return nil, ErrEmptyTag
	}
	n := t.Container(tag)
	t.emit(Mutation{Op: OpCreateElement, Target: n.id, Key: tag})
	return n, nil
}

// CreateText implements host.Tree.
func (t *Tree) CreateText(text string) (host.Node, error) {
	n := &Node{
		id:   t.ids.Next(),
		kind: host.KindText,
		text: text,
		tree: t,
	}
	t.emit(Mutation{Op: OpCreateText, Target: n.id, Value: text})
	return n, nil
}

// SetText implements host.Tree.
func (t *Tree) SetText(n host.Node, text string) error {
	mn, err := t.node(n)
	if err != nil {
		return err
	}
	if mn.kind != host.KindText {
		return ErrNotText
	}
	mn.text = text
	t.emit(Mutation{Op: OpSetText, Target: mn.id, Value: text})
	return nil
}

// checkInsert validates parent and child for an insertion.
func (t *Tree) checkInsert(parent, child host.Node) (*Node, *Node, error) {
	p, err := t.element(parent)
	if err != nil {
		return nil, nil, err
	}
	c, err := t.node(child)
	if err != nil {
		return nil, nil, err
	}
	if c.contains(p) {
		return nil, nil, ErrCycle
	}
	return p, c, nil
}

// AppendChild implements host.Tree.
func (t *Tree) AppendChild(parent, child host.Node) error {
	p, c, err := t.checkInsert(parent, child)
	if err != nil {
		return err
	}
	c.detach()
	p.children = append(p.children, c)
	c.parent = p
	t.emit(Mutation{Op: OpAppendChild, Target: c.id, Parent: p.id})
	return nil
}

// InsertBefore implements host.Tree.
func (t *Tree) InsertBefore(parent, child, ref host.Node) error {
	if ref == nil {
		return t.AppendChild(parent, child)
	}
	p, c, err := t.checkInsert(parent, child)
	if err != nil {
		return err
	}
	r, err := t.node(ref)
	if err != nil {
		return err
	}
	if r.parent != p {
		return ErrNotChild
	}
	if c == r {
		return nil
	}
	c.detach()
	i := p.indexOf(r)
	p.children = append(p.children, nil)
	copy(p.children[i+1:], p.children[i:])
	p.children[i] = c
	c.parent = p
	t.emit(Mutation{Op: OpInsertBefore, Target: c.id, Parent: p.id, Ref: r.id})
	return nil
}

// RemoveChild implements host.Tree.
func (t *Tree) RemoveChild(parent, child host.Node) error {
	p, err := t.element(parent)
	if err != nil {
		return err
	}
	c, err := t.node(child)
	if err != nil {
		return err
	}
	if c.parent != p {
		return ErrNotChild
	}
	c.detach()
	t.emit(Mutation{Op: OpRemoveChild, Target: c.id, Parent: p.id})
	return nil
}

// ReplaceChild implements host.Tree.
func (t *Tree) ReplaceChild(parent, newChild, oldChild host.Node) error {
	p, nc, err := t.checkInsert(parent, newChild)
	if err != nil {
		return err
	}
	oc, err := t.node(oldChild)
	if err != nil {
		return err
	}
	if oc.parent != p {
		return ErrNotChild
	}
	if nc == oc {
		return nil
	}
	nc.detach()
	i := p.indexOf(oc)
	p.children[i] = nc
	nc.parent = p
	oc.parent = nil
	t.emit(Mutation{Op: OpReplaceChild, Target: nc.id, Parent: p.id, Ref: oc.id})
	return nil
}

// SetProperty implements host.Tree.
func (t *Tree) SetProperty(n host.Node, key string, value any) error {
	mn, err := t.element(n)
	if err != nil {
		return err
	}
	mn.attrs[key] = value
	t.emit(Mutation{Op: OpSetProperty, Target: mn.id, Key: key, Value: formatValue(key, value)})
	return nil
}

// RemoveProperty implements host.Tree.
func (t *Tree) RemoveProperty(n host.Node, key string) error {
	mn, err := t.element(n)
	if err != nil {
		return err
	}
	if _, ok := mn.attrs[key]; !ok {
		return nil
	}
	delete(mn.attrs, key)
	t.emit(Mutation{Op: OpRemoveProperty, Target: mn.id, Key: key})
	return nil
}

// SetKey implements host.Tree.
func (t *Tree) SetKey(n host.Node, key string) error {
	mn, err := t.node(n)
	if err != nil {
		return err
	}
	if mn.key == key {
		return nil
	}
	mn.key = key
	t.emit(Mutation{Op: OpSetKey, Target: mn.id, Value: key})
	return nil
}

// SetOwner implements host.Tree.
func (t *Tree) SetOwner(n host.Node, owner any) {
	if mn, err := t.node(n); err == nil {
		mn.owner = owner
	}
}
