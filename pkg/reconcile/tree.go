package reconcile

import (
	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
)

// trackedTree wraps a host tree to count operations and turn failures into
// E020 errors naming the operation.
type trackedTree struct {
	tree    host.Tree
	metrics *Metrics
}

func (t *trackedTree) done(op string, err error) error {
	t.metrics.hostOp(op)
	if err != nil {
		t.metrics.failure("E020")
		return errors.New("E020").WithDetail(op).Wrap(err)
	}
	return nil
}

func (t *trackedTree) CreateElement(tag string) (host.Node, error) {
	n, err := t.tree.CreateElement(tag)
	return n, t.done("CreateElement", err)
}

func (t *trackedTree) CreateText(text string) (host.Node, error) {
	n, err := t.tree.CreateText(text)
	return n, t.done("CreateText", err)
}

func (t *trackedTree) SetText(n host.Node, text string) error {
	return t.done("SetText", t.tree.SetText(n, text))
}

func (t *trackedTree) AppendChild(parent, child host.Node) error {
	return t.done("AppendChild", t.tree.AppendChild(parent, child))
}

func (t *trackedTree) InsertBefore(parent, child, ref host.Node) error {
	return t.done("InsertBefore", t.tree.InsertBefore(parent, child, ref))
}

func (t *trackedTree) RemoveChild(parent, child host.Node) error {
	return t.done("RemoveChild", t.tree.RemoveChild(parent, child))
}

func (t *trackedTree) ReplaceChild(parent, newChild, oldChild host.Node) error {
	return t.done("ReplaceChild", t.tree.ReplaceChild(parent, newChild, oldChild))
}

func (t *trackedTree) SetProperty(n host.Node, key string, value any) error {
	return t.done("SetProperty", t.tree.SetProperty(n, key, value))
}

func (t *trackedTree) RemoveProperty(n host.Node, key string) error {
	return t.done("RemoveProperty", t.tree.RemoveProperty(n, key))
}

func (t *trackedTree) SetKey(n host.Node, key string) error {
	return t.done("SetKey", t.tree.SetKey(n, key))
}

func (t *trackedTree) SetOwner(n host.Node, owner any) {
	t.tree.SetOwner(n, owner)
}
