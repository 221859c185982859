package reconcile

import (
	"context"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// reconcile updates existing to match next. boundary is the instance whose
// commit is running, or nil outside of a commit; owner chain members at or
// above it belong to the caller.
func (r *Reconciler) reconcile(ctx context.Context, existing host.Node, next *vdom.VNode, boundary *Instance) (host.Node, error) {
	if err := vdom.ValidateNode(next); err != nil {
		r.metrics.failure("E001")
		return nil, errors.FromError(err, "E001").WithPath(next.Label())
	}

	switch {
	case next.IsText():
		return r.reconcileText(existing, next, boundary)
	case next.Kind == vdom.KindComponent:
		n, _, err := r.reconcileComponent(ctx, existing, next, boundary)
		return n, err
	default:
		return r.reconcileElement(ctx, existing, next, boundary)
	}
}

// reconcileText reuses an existing text node or replaces existing with a new
// one.
func (r *Reconciler) reconcileText(existing host.Node, next *vdom.VNode, boundary *Instance) (host.Node, error) {
	text := ""
	if next != nil {
		text = next.Text
	}

	if host.IsText(existing) {
		if top := chainTop(existing, boundary); top != nil {
			if err := r.unmountChain(top); err != nil {
				return nil, err
			}
		}
		if existing.Text() != text {
			if err := r.tree.SetText(existing, text); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	n, err := r.tree.CreateText(text)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if err := r.replace(existing, n, boundary); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// replace discards old and puts n in its place when old is attached.
func (r *Reconciler) replace(old, n host.Node, boundary *Instance) error {
	if err := r.discard(old, boundary); err != nil {
		return err
	}
	if p := old.Parent(); p != nil {
		return r.tree.ReplaceChild(p, n, old)
	}
	return nil
}

// reconcileElement reuses existing when it is an element with the same tag.
// Otherwise a new element is created, the children of existing move onto
// it, and it takes the place of existing in its parent.
func (r *Reconciler) reconcileElement(ctx context.Context, existing host.Node, next *vdom.VNode, boundary *Instance) (host.Node, error) {
	if existing != nil {
		if top := chainTop(existing, boundary); top != nil {
			if err := r.unmountChain(top); err != nil {
				return nil, err
			}
		}
	}

	n := existing
	if !host.IsElement(existing) || !strings.EqualFold(existing.Tag(), next.Tag) {
		created, err := r.tree.CreateElement(next.Tag)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			for _, c := range existing.Children() {
				if err := r.tree.AppendChild(created, c); err != nil {
					return nil, err
				}
			}
			if p := existing.Parent(); p != nil {
				if err := r.tree.ReplaceChild(p, created, existing); err != nil {
					return nil, err
				}
			}
		}
		n = created
	}

	if len(next.Children) > 0 || len(n.Children()) > 0 {
		if err := r.reconcileChildren(ctx, n, next.Children); err != nil {
			return nil, err
		}
	}

	if err := r.reconcileAttrs(n, next.Props); err != nil {
		return nil, err
	}
	return n, nil
}
