package reconcile

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// reconcileComponent renders the component node next over existing. An
// instance of the same definition found on existing below boundary is
// reused; an instance of another definition is unmounted and its base
// removed. It returns the new base and the instance rendering it.
func (r *Reconciler) reconcileComponent(ctx context.Context, existing host.Node, next *vdom.VNode, boundary *Instance) (host.Node, *Instance, error) {
	props := componentProps(next)

	if inst := chainTop(existing, boundary); inst != nil && inst.def == next.Comp {
		if err := r.setProps(inst, props); err != nil {
			return nil, nil, err
		}
		if err := r.commit(ctx, inst); err != nil {
			return nil, nil, err
		}
		r.adopt(boundary, inst)
		return inst.base, inst, nil
	}

	// Whatever existing holds is not reused. Take it out but remember where
	// it was so the new base can go there.
	var parent, ref host.Node
	if existing != nil {
		if err := r.discard(existing, boundary); err != nil {
			return nil, nil, err
		}
		if parent = existing.Parent(); parent != nil {
			ref = existing.NextSibling()
			if err := r.tree.RemoveChild(parent, existing); err != nil {
				return nil, nil, err
			}
		}
	}

	inst := r.instantiate(next.Comp, props)
	r.adopt(boundary, inst)
	if err := r.setProps(inst, props); err != nil {
		return nil, nil, err
	}
	if err := r.commit(ctx, inst); err != nil {
		return nil, nil, err
	}
	if parent != nil {
		if err := r.tree.InsertBefore(parent, inst.base, ref); err != nil {
			return nil, nil, err
		}
	}
	return inst.base, inst, nil
}

// adopt links inst as the direct output of boundary.
func (r *Reconciler) adopt(boundary, inst *Instance) {
	inst.parent = boundary
	if boundary != nil {
		boundary.child = inst
	}
}

func componentProps(v *vdom.VNode) vdom.Props {
	props := make(vdom.Props, len(v.Props)+1)
	for k, val := range v.Props {
		props[k] = val
	}
	props[vdom.ChildrenKey] = v.Children
	return props
}

// instantiate constructs a fresh instance and binds its state to commit.
func (r *Reconciler) instantiate(def vdom.Definition, props vdom.Props) *Instance {
	inst := &Instance{
		r:     r,
		def:   def,
		comp:  def.New(props),
		props: props,
	}
	if b := vdom.BaseOf(inst.comp); b != nil {
		b.Bind(func() error { return inst.rerender() })
	}
	r.logger.Debug("component created", "component", def.Name())
	return inst
}

// rerender is the commit bound to the component's SetState.
func (inst *Instance) rerender() error {
	switch inst.phase {
	case PhaseNew:
		// Not mounted yet; the pending commit picks up the new state.
		return nil
	case PhaseUnmounted:
		inst.r.metrics.failure("E012")
		return errors.New("E012").WithComponent(inst.Name())
	}
	return inst.r.commit(context.Background(), inst)
}

// setProps stores props, then runs WillMount or WillReceiveProps.
func (r *Reconciler) setProps(inst *Instance, props vdom.Props) error {
	inst.props = props
	if ps, ok := inst.comp.(vdom.PropsSetter); ok {
		ps.SetProps(props)
	}

	if inst.base == nil {
		if err := r.hook(inst, "WillMount", func() error {
			if h, ok := inst.comp.(vdom.WillMounter); ok {
				return h.WillMount()
			}
			return nil
		}); err != nil {
			return err
		}
	} else {
		if err := r.hook(inst, "WillReceiveProps", func() error {
			if h, ok := inst.comp.(vdom.PropsReceiver); ok {
				return h.WillReceiveProps(props)
			}
			return nil
		}); err != nil {
			return err
		}
	}
	return nil
}

// commit renders inst and reconciles the output against its current base.
func (r *Reconciler) commit(ctx context.Context, inst *Instance) (err error) {
	if inst.phase == PhaseUnmounted {
		r.metrics.failure("E012")
		return errors.New("E012").WithComponent(inst.Name())
	}

	prev := inst.base
	phase := "mount"
	if prev != nil {
		phase = "update"
	}

	ctx, span := r.tracer.Start(ctx, "vtree.commit")
	span.SetAttributes(
		attribute.String("vtree.component", inst.Name()),
		attribute.String("vtree.phase", phase),
	)
	start := time.Now()
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
		r.metrics.commit(phase, time.Since(start))
	}()

	derived, err := r.render(inst)
	if err != nil {
		return err
	}

	if prev != nil {
		inst.phase = PhaseUpdating
		if err := r.hook(inst, "WillUpdate", func() error {
			if h, ok := inst.comp.(vdom.WillUpdater); ok {
				return h.WillUpdate()
			}
			return nil
		}); err != nil {
			inst.phase = PhaseMounted
			return err
		}
	}

	var base host.Node
	if derived != nil && derived.Kind == vdom.KindComponent {
		if err := vdom.ValidateNode(derived); err != nil {
			r.metrics.failure("E001")
			return errors.FromError(err, "E001").
				WithComponent(inst.Name()).
				WithPath(derived.Label())
		}
		base, _, err = r.reconcileComponent(ctx, prev, derived, inst)
		if err != nil {
			return err
		}
	} else {
		base, err = r.reconcile(ctx, prev, derived, inst)
		if err != nil {
			return blame(err, inst)
		}
		inst.child = nil
		r.setOwner(base, inst)
	}

	if prev != nil && base != prev {
		if p := prev.Parent(); p != nil {
			if err := r.tree.ReplaceChild(p, base, prev); err != nil {
				return err
			}
		}
		if InstanceOf(prev) == inst {
			r.setOwner(prev, nil)
		}
		for p := inst.parent; p != nil && p.base == prev; p = p.parent {
			p.base = base
		}
	}

	inst.base = base
	inst.phase = PhaseMounted

	if prev != nil {
		r.logger.Debug("component updated", "component", inst.Name())
		return r.hook(inst, "DidUpdate", func() error {
			if h, ok := inst.comp.(vdom.DidUpdater); ok {
				return h.DidUpdate()
			}
			return nil
		})
	}
	r.logger.Debug("component mounted", "component", inst.Name())
	return r.hook(inst, "DidMount", func() error {
		if h, ok := inst.comp.(vdom.DidMounter); ok {
			return h.DidMount()
		}
		return nil
	})
}

// blame names inst on a validation error raised while reconciling its
// output, unless a nested component was already named.
func blame(err error, inst *Instance) error {
	var ve *errors.VtreeError
	if errors.As(err, &ve) && ve.Code == "E001" && ve.Component == "" {
		ve.Component = inst.Name()
	}
	return err
}

// render calls the component's Render, turning a panic into an E011 error.
func (r *Reconciler) render(inst *Instance) (v *vdom.VNode, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			r.metrics.failure("E011")
			err = errors.New("E011").
				WithComponent(inst.Name()).
				WithDetail(fmt.Sprint(rec))
		}
	}()
	return inst.comp.Render(), nil
}

// hook runs a lifecycle callback, wrapping a failure in E010.
func (r *Reconciler) hook(inst *Instance, name string, fn func() error) error {
	if err := fn(); err != nil {
		r.metrics.failure("E010")
		r.logger.Warn("lifecycle hook failed", "component", inst.Name(), "hook", name, "error", err)
		return errors.New("E010").
			WithComponent(inst.Name()).
			WithDetail(name).
			Wrap(err)
	}
	return nil
}
