package server

import (
	"context"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// session is an in-memory host tree and the root mounted into it. It is not
// safe for concurrent use.
type session struct {
	tree      *memtree.Tree
	container *memtree.Node
	rec       *reconcile.Reconciler
	root      host.Node
}

func (s *Server) newSession() *session {
	tree := memtree.New()
	return &session{
		tree:      tree,
		container: tree.Container("body"),
		rec:       s.newReconciler(tree),
	}
}

// apply mounts tree, or updates the mounted root to it. The returned label
// is "mounted", "updated" or "error".
func (ss *session) apply(ctx context.Context, tree *vdom.VNode) (Result, string, error) {
	ss.tree.Reset()

	var (
		label = "updated"
		next  host.Node
		err   error
	)
	if ss.root == nil {
		label = "mounted"
		next, err = ss.rec.Mount(ctx, tree, ss.container)
	} else {
		next, err = ss.rec.Update(ctx, ss.root, tree)
	}

	if err != nil {
		// A failed update may have replaced part of the tree already; go on
		// from whatever is mounted now.
		ss.root = nil
		if children := ss.container.ChildNodes(); len(children) > 0 {
			ss.root = children[0]
		}
		return ss.result(errorBody(err)), "error", err
	}
	ss.root = next
	return ss.result(nil), label, nil
}

func (ss *session) result(errBody *ErrorBody) Result {
	return Result{
		HTML:      ss.container.InnerHTML(),
		Mutations: ss.tree.Mutations(),
		Error:     errBody,
	}
}

// close unmounts the root so components get WillUnmount.
func (ss *session) close() error {
	if ss.root == nil {
		return nil
	}
	err := ss.rec.Unmount(ss.root)
	ss.root = nil
	return err
}
