// Package vdom provides the virtual tree model reconciled by vtree.
//
// A virtual tree is a plain, immutable description of what the host tree
// should look like after one render pass. Every render builds a new tree;
// nodes are never mutated once constructed.
//
// # Core Types
//
// VNode is a tagged union discriminated by VKind:
//
//   - KindText: a string or number; nil and booleans normalize to empty text
//   - KindElement: a tag name with Props and ordered Children
//   - KindComponent: a Definition with Props (children travel in props)
//
// # Building Trees
//
// H is the construction primitive used by declarative-tree syntaxes:
//
//	H("ul", Props{"class": "list"},
//	    H("li", Props{"key": 1}, "one"),
//	    H("li", Props{"key": 2}, "two"),
//	)
//
// The element helpers accept attributes and children in any order:
//
//	Div(Class("card"), ID("main"),
//	    H1("Title"),
//	    P("Content"),
//	)
//
// # Components
//
// Func wraps a plain render function. Define registers a stateful component
// whose instances embed Base to get props, state and SetState. Lifecycle
// hooks are optional interfaces (WillMounter, DidMounter, WillUpdater,
// DidUpdater, WillUnmounter, PropsReceiver) discovered by type assertion.
package vdom
