package vdom

import "reflect"

// Definition describes a component type. Definitions are compared by
// identity, so create them once (typically as package-level variables) and
// reuse the same value on every render.
type Definition interface {
	// Name identifies the component in logs and errors.
	Name() string

	// New constructs a fresh instance for the given props.
	New(props Props) Component
}

// Component is a live component instance.
type Component interface {
	Render() *VNode
}

// WillMounter is implemented by components that want a callback before their
// first commit.
type WillMounter interface {
	WillMount() error
}

// DidMounter is implemented by components that want a callback after their
// first commit.
type DidMounter interface {
	DidMount() error
}

// WillUpdater is implemented by components that want a callback before a
// re-render is committed.
type WillUpdater interface {
	WillUpdate() error
}

// DidUpdater is implemented by components that want a callback after a
// re-render is committed.
type DidUpdater interface {
	DidUpdate() error
}

// WillUnmounter is implemented by components that want a callback before
// they are discarded.
type WillUnmounter interface {
	WillUnmount() error
}

// PropsReceiver is implemented by mounted components that want to see new
// props before re-rendering with them.
type PropsReceiver interface {
	WillReceiveProps(next Props) error
}

// PropsSetter is implemented by components whose props the reconciler
// replaces before each render. Base and function components implement it.
type PropsSetter interface {
	SetProps(p Props)
}

// FuncDef is a Definition built from a plain render function.
type FuncDef struct {
	name   string
	render func(props Props) *VNode
}

// Func creates a component definition from a render function. Instances
// call render with their current props; they have no state and no hooks.
func Func(name string, render func(props Props) *VNode) *FuncDef {
	return &FuncDef{name: name, render: render}
}

// Name implements Definition.
func (d *FuncDef) Name() string { return d.name }

// New implements Definition.
func (d *FuncDef) New(props Props) Component {
	return &funcComponent{props: props, render: d.render}
}

// funcComponent adapts a render function to the Component interface. It has
// no state.
type funcComponent struct {
	props  Props
	render func(props Props) *VNode
}

// Render implements Component.
func (f *funcComponent) Render() *VNode {
	return f.render(f.props)
}

// SetProps implements PropsSetter.
func (f *funcComponent) SetProps(p Props) {
	f.props = p
}

// ClassDef is a Definition for stateful components.
type ClassDef struct {
	name string
	ctor func(props Props) Component
}

// Define creates a stateful component definition. ctor builds a new instance
// from the initial props; instances usually embed Base.
func Define(name string, ctor func(props Props) Component) *ClassDef {
	return &ClassDef{name: name, ctor: ctor}
}

// Name implements Definition.
func (d *ClassDef) Name() string { return d.name }

// New implements Definition.
func (d *ClassDef) New(props Props) Component {
	c := d.ctor(props)
	if b := BaseOf(c); b != nil {
		b.props = props
	}
	return c
}

// State is a component's mutable state record.
type State map[string]any

// Base holds the props and state of a component instance. Embed it in
// stateful components:
//
//	type Counter struct{ vdom.Base }
//
//	func (c *Counter) Render() *vdom.VNode {
//	    return vdom.Button(vdom.On("click", c.inc), c.State()["n"])
//	}
//
// The reconciler binds a commit function to the Base when it creates the
// instance; SetState uses it to re-render synchronously.
type Base struct {
	props  Props
	state  State
	commit func() error
}

// baser is implemented by every type embedding Base.
type baser interface {
	vdomBase() *Base
}

func (b *Base) vdomBase() *Base { return b }

// BaseOf returns the Base embedded in c, or nil if c does not embed one.
func BaseOf(c Component) *Base {
	if bc, ok := c.(baser); ok {
		return bc.vdomBase()
	}
	return nil
}

// Props returns the current props. Treat them as read-only.
func (b *Base) Props() Props {
	return b.props
}

// State returns the current state. Treat it as read-only and change it
// through SetState.
func (b *Base) State() State {
	return b.state
}

// InitState sets the initial state without rendering. Call it from the
// component constructor.
func (b *Base) InitState(s State) {
	b.state = make(State, len(s))
	for k, v := range s {
		b.state[k] = v
	}
}

// SetState shallow-merges partial into the state and re-renders the
// component before returning. Fields absent from partial are untouched.
// Each call re-renders; calls are never batched.
func (b *Base) SetState(partial State) error {
	next := make(State, len(b.state)+len(partial))
	for k, v := range b.state {
		next[k] = v
	}
	for k, v := range partial {
		next[k] = v
	}
	b.state = next
	if b.commit == nil {
		return nil
	}
	return b.commit()
}

// SetProps replaces the props. The reconciler calls it before every render
// with the props of the current virtual node.
func (b *Base) SetProps(p Props) {
	b.props = p
}

// Bind installs the function SetState calls to re-render. It is called by
// the reconciler that owns the instance.
func (b *Base) Bind(commit func() error) {
	b.commit = commit
}

// nilDefinition reports whether d is nil or wraps a nil pointer.
func nilDefinition(d Definition) bool {
	if d == nil {
		return true
	}
	switch v := reflect.ValueOf(d); v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
