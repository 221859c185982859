package reconcile

import (
	"context"
	"strings"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// reconcileChildren matches the host children of parent against next.
//
// Keyed host children are looked up by key. Unkeyed ones are matched
// first-fit by type in their original order, which can hand the state of one
// unkeyed component to a sibling of the same type when siblings move; key
// them to avoid that. Each match is reconciled and then moved to position i.
func (r *Reconciler) reconcileChildren(ctx context.Context, parent host.Node, next []*vdom.VNode) error {
	original := parent.Children()

	keyed := make(map[string]host.Node)
	var unkeyed []host.Node
	for _, c := range original {
		if k := c.Key(); k != "" {
			keyed[k] = c
			continue
		}
		unkeyed = append(unkeyed, c)
	}

	used := make(map[host.Node]bool, len(next))
	lo, hi := 0, len(unkeyed)
	for i, vchild := range next {
		var child host.Node

		if key := keyOf(vchild); key != "" {
			if c, ok := keyed[key]; ok {
				child = c
				delete(keyed, key)
			}
		} else if lo < hi {
			for j := lo; j < hi; j++ {
				c := unkeyed[j]
				if c == nil || !sameType(c, vchild) {
					continue
				}
				child = c
				unkeyed[j] = nil
				if j == hi-1 {
					hi--
				}
				if j == lo {
					lo++
				}
				break
			}
		}

		if child != nil {
			used[child] = true
		}
		child, err := r.reconcile(ctx, child, vchild, nil)
		if err != nil {
			return err
		}
		used[child] = true
		if key := keyOf(vchild); child.Key() != key {
			if err := r.tree.SetKey(child, key); err != nil {
				return err
			}
		}

		if err := r.place(parent, child, i); err != nil {
			return err
		}
	}

	// Children not rendered this pass are removed and unmounted. Some were
	// already taken out by place.
	var first error
	for _, c := range original {
		if used[c] {
			continue
		}
		if c.Parent() == parent {
			if err := r.tree.RemoveChild(parent, c); err != nil {
				return err
			}
		}
		if err := r.discard(c, nil); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// place moves child to position i of parent. When child already sits right
// after the node at i, that node is removed instead of moving child; it is
// unmounted at the end of the pass unless a later child reuses it.
func (r *Reconciler) place(parent, child host.Node, i int) error {
	if child == parent {
		return nil
	}
	var f host.Node
	if children := parent.Children(); i < len(children) {
		f = children[i]
	}
	switch {
	case child == f:
		return nil
	case f == nil:
		return r.tree.AppendChild(parent, child)
	case child == f.NextSibling():
		return r.tree.RemoveChild(parent, f)
	default:
		return r.tree.InsertBefore(parent, child, f)
	}
}

// sameType reports whether host node n can be reused for v. Text and element
// matches ignore which component rendered n; reusing such a node unmounts it.
func sameType(n host.Node, v *vdom.VNode) bool {
	switch {
	case v.IsText():
		return host.IsText(n)
	case v.Kind == vdom.KindComponent:
		top := chainTop(n, nil)
		return top != nil && top.def == v.Comp
	default:
		return host.IsElement(n) && strings.EqualFold(n.Tag(), v.Tag)
	}
}

func keyOf(v *vdom.VNode) string {
	if v == nil {
		return ""
	}
	return v.Key
}
