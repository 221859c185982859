package reconcile

import (
	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Phase is the lifecycle phase of a component instance.
type Phase uint8

const (
	PhaseNew       Phase = iota // Constructed, never committed
	PhaseMounted                // Committed and idle
	PhaseUpdating               // Inside a re-render commit
	PhaseUnmounted              // Discarded; final
)

// String returns the string representation of the Phase.
func (p Phase) String() string {
	switch p {
	case PhaseNew:
		return "new"
	case PhaseMounted:
		return "mounted"
	case PhaseUpdating:
		return "updating"
	case PhaseUnmounted:
		return "unmounted"
	default:
		return "unknown"
	}
}

// Instance is the live realization of a component definition.
//
// A component whose render output is another component shares its host node
// with it. Such instances form a chain: parent is the instance whose render
// produced this one directly, child the one this instance rendered. The host
// node records the innermost instance as its owner.
type Instance struct {
	r      *Reconciler
	def    vdom.Definition
	comp   vdom.Component
	props  vdom.Props
	base   host.Node
	phase  Phase
	parent *Instance
	child  *Instance
}

// Definition returns the definition the instance was created from.
func (inst *Instance) Definition() vdom.Definition { return inst.def }

// Component returns the user component value.
func (inst *Instance) Component() vdom.Component { return inst.comp }

// Name returns the definition name.
func (inst *Instance) Name() string { return inst.def.Name() }

// Props returns the props of the last render.
func (inst *Instance) Props() vdom.Props { return inst.props }

// Base returns the host node currently rendered by the instance, or nil
// before the first commit.
func (inst *Instance) Base() host.Node { return inst.base }

// Phase returns the lifecycle phase.
func (inst *Instance) Phase() Phase { return inst.phase }

// Parent returns the instance that rendered this one as its direct output.
func (inst *Instance) Parent() *Instance { return inst.parent }

// Child returns the instance this one rendered as its direct output.
func (inst *Instance) Child() *Instance { return inst.child }

// InstanceOf returns the innermost component instance rendering n, or nil.
func InstanceOf(n host.Node) *Instance {
	if n == nil {
		return nil
	}
	inst, _ := n.Owner().(*Instance)
	return inst
}

// chainTop returns the outermost instance of n's owner chain strictly below
// boundary, or nil when n has no owner below it. A nil boundary selects the
// outermost instance of the chain.
func chainTop(n host.Node, boundary *Instance) *Instance {
	var top *Instance
	for p := InstanceOf(n); p != nil && p != boundary; p = p.parent {
		top = p
	}
	return top
}

// setOwner records inst as the owner of n. A nil inst clears the owner.
func (r *Reconciler) setOwner(n host.Node, inst *Instance) {
	if n == nil {
		return
	}
	if inst == nil {
		r.tree.SetOwner(n, nil)
		return
	}
	r.tree.SetOwner(n, inst)
}

// unmountChain unmounts top and every instance it rendered directly. The
// shared host node is kept; ownership falls back to top's parent. The first
// hook error is returned after the whole chain has been torn down.
func (r *Reconciler) unmountChain(top *Instance) error {
	var first error
	for inst := top; inst != nil; inst = inst.child {
		if err := r.unmountInstance(inst); err != nil && first == nil {
			first = err
		}
	}
	if top.parent != nil && top.parent.child == top {
		top.parent.child = nil
	}
	r.setOwner(top.base, top.parent)
	return first
}

func (r *Reconciler) unmountInstance(inst *Instance) error {
	if inst.phase == PhaseUnmounted {
		return nil
	}
	err := r.hook(inst, "WillUnmount", func() error {
		if h, ok := inst.comp.(vdom.WillUnmounter); ok {
			return h.WillUnmount()
		}
		return nil
	})
	inst.phase = PhaseUnmounted
	r.metrics.unmount()
	r.logger.Debug("component unmounted", "component", inst.Name())
	return err
}

// discard unmounts every component instance rendering n or one of its
// descendants, outer instances first. Instances at or above boundary are
// left alone. The host nodes themselves are not touched.
func (r *Reconciler) discard(n host.Node, boundary *Instance) error {
	var first error
	if top := chainTop(n, boundary); top != nil {
		first = r.unmountChain(top)
	}
	for _, c := range n.Children() {
		if err := r.discard(c, nil); err != nil && first == nil {
			first = err
		}
	}
	return first
}
