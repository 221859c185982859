package reconcile

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Mount renders tree into container, replacing whatever container held.
// The whole tree is validated before the host tree is touched. It returns
// the root host node, to be passed to Update for later renders.
func (r *Reconciler) Mount(ctx context.Context, tree *vdom.VNode, container host.Node) (root host.Node, err error) {
	ctx, span := r.start(ctx, "vtree.Mount", tree)
	defer func() { r.end(span, err) }()

	if container == nil {
		r.metrics.failure("E021")
		return nil, errors.New("E021")
	}
	if err := vdom.Validate(tree); err != nil {
		r.metrics.failure("E001")
		return nil, err
	}

	for _, c := range container.Children() {
		if err := r.tree.RemoveChild(container, c); err != nil {
			return nil, err
		}
		if err := r.discard(c, nil); err != nil {
			return nil, err
		}
	}

	root, err = r.reconcile(ctx, nil, tree, nil)
	if err != nil {
		return nil, err
	}
	if err := r.tree.AppendChild(container, root); err != nil {
		return nil, err
	}
	r.logger.Debug("tree mounted", "root", tree.Label())
	return root, nil
}

// Update re-renders a mounted root against tree and returns the root host
// node, which differs from root when the root changed type.
func (r *Reconciler) Update(ctx context.Context, root host.Node, tree *vdom.VNode) (next host.Node, err error) {
	ctx, span := r.start(ctx, "vtree.Update", tree)
	defer func() { r.end(span, err) }()

	if root == nil {
		r.metrics.failure("E021")
		return nil, errors.New("E021").WithDetail("no mounted root to update")
	}
	if err := vdom.Validate(tree); err != nil {
		r.metrics.failure("E001")
		return nil, err
	}

	container := root.Parent()
	next, err = r.reconcile(ctx, root, tree, nil)
	if err != nil {
		return nil, err
	}
	if container != nil && next.Parent() == nil {
		if err := r.tree.AppendChild(container, next); err != nil {
			return nil, err
		}
	}
	r.logger.Debug("tree updated", "root", tree.Label())
	return next, nil
}

// Unmount tears down a mounted root: every component instance in it gets
// WillUnmount, then the root is removed from its container.
func (r *Reconciler) Unmount(root host.Node) error {
	if root == nil {
		return nil
	}
	err := r.discard(root, nil)
	if p := root.Parent(); p != nil {
		if rmErr := r.tree.RemoveChild(p, root); rmErr != nil && err == nil {
			err = rmErr
		}
	}
	r.logger.Debug("tree unmounted")
	return err
}

func (r *Reconciler) start(ctx context.Context, name string, tree *vdom.VNode) (context.Context, trace.Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return r.tracer.Start(ctx, name, trace.WithAttributes(
		attribute.String("vtree.root", tree.Label()),
	))
}

func (r *Reconciler) end(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
