package reconcile

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// DefaultTracerName is the tracer used when WithTracer is not given.
const DefaultTracerName = "vtree"

// Reconciler applies virtual trees to a host tree.
type Reconciler struct {
	tree    host.Tree
	logger  *slog.Logger
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures a Reconciler.
type Option func(*Reconciler)

// WithLogger sets the logger. Lifecycle events are logged at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Reconciler) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMetrics records host operations and commits into m.
func WithMetrics(m *Metrics) Option {
	return func(r *Reconciler) {
		r.metrics = m
	}
}

// WithTracer sets the tracer used for mount, update and commit spans.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Reconciler) {
		if tracer != nil {
			r.tracer = tracer
		}
	}
}

// New creates a Reconciler for tree.
func New(tree host.Tree, opts ...Option) *Reconciler {
	r := &Reconciler{
		logger: slog.Default(),
		tracer: otel.Tracer(DefaultTracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.tree = &trackedTree{tree: tree, metrics: r.metrics}
	return r
}

// Reconcile updates existing to match next and returns the resulting host
// node. existing may be nil, in which case a new node is created. When the
// result differs from existing and existing had a parent, the result takes
// its place there.
func (r *Reconciler) Reconcile(existing host.Node, next *vdom.VNode) (host.Node, error) {
	return r.reconcile(context.Background(), existing, next, nil)
}

// ReconcileChildren updates the children of parent to match next.
func (r *Reconciler) ReconcileChildren(parent host.Node, next []*vdom.VNode) error {
	return r.reconcileChildren(context.Background(), parent, next)
}
