// Package vtest provides testing helpers for virtual trees and components.
//
// # Harness
//
// Mount renders a tree into an in-memory host tree and returns a Harness for
// driving updates and asserting on the result:
//
//	func TestList_Reorder(t *testing.T) {
//	    h := vtest.Mount(t, list("a", "b"))
//	    h.Update(list("b", "a"))
//	    h.ExpectHTML("<ul><li>b</li><li>a</li></ul>")
//	    h.ExpectOps(memtree.OpRemoveChild, memtree.OpAppendChild)
//	}
//
// The mutation log is cleared before every Update and Unmount, so
// ExpectMutations and ExpectOps see only the last operation.
//
// # Render Assertions
//
// For one-shot checks, the Expect functions mount a node and assert on its
// HTML:
//
//	vtest.ExpectContains(t, vdom.C(Greeting), "Welcome")
//	vtest.ExpectNotContains(t, vdom.C(Greeting), "Login")
//	vtest.ExpectAttribute(t, vdom.C(Greeting), "class", "greeting")
package vtest
