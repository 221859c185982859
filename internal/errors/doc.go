// Package errors provides structured, actionable error messages for vtree.
//
// Every failure the reconciler, the document loaders, the configuration
// layer or the CLI can report is a *VtreeError carrying:
//   - a unique code (e.g. "E001") mapped to a message and a detail
//   - the category of the failure
//   - the virtual-tree path and component where it happened, when known
//   - an optional suggestion on how to fix it
//
// # Error Categories
//
//   - validation: malformed virtual nodes (missing tag, nil component)
//   - lifecycle: component hooks that failed or render functions that panicked
//   - host: host tree adapter operations that failed
//   - document: tree documents that could not be read or decoded
//   - config: vtree.json problems
//
// # Usage
//
//	err := errors.New("E001").
//	    WithPath("div > ul > li[2]").
//	    WithDetail("element node has an empty tag")
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR E001: Malformed virtual node
//	//
//	//   at div > ul > li[2]
//	//
//	//   element node has an empty tag
//
// Nothing in vtree retries. A returned error is a defect to fix.
package errors
