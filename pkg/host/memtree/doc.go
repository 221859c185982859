// Package memtree is an in-memory host tree.
//
// It implements host.Tree and host.Node without any platform underneath,
// which makes it the tree vtree's tests, CLI and playground server render
// into. Every mutation is recorded in a log that can be inspected, reset,
// or streamed to observers:
//
//	tree := memtree.New()
//	root := tree.Container("body")
//	// ... reconcile into root ...
//	for _, m := range tree.Mutations() {
//	    fmt.Println(m)
//	}
//	fmt.Println(root.InnerHTML())
//
// A Tree is not safe for concurrent use.
package memtree
