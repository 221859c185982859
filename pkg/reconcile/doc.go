// Package reconcile keeps a host tree in sync with successive virtual trees.
//
// A Reconciler diffs a new virtual tree against the host nodes produced by
// the previous pass and applies the minimal set of host mutations: nodes are
// reused when their type matches, keyed children keep their identity across
// reorders, and attributes are patched one by one.
//
// Component nodes are backed by an Instance that survives across passes as
// long as the same Definition is rendered at the same place. Instances drive
// the lifecycle hooks declared in package vdom:
//
//	WillMount → Render → DidMount
//	WillReceiveProps → Render → WillUpdate → DidUpdate
//	WillUnmount
//
// SetState on a component re-renders it synchronously; there is no batching
// and no scheduler.
//
// A Reconciler is not safe for concurrent use. Give each host tree its own.
package reconcile
