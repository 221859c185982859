// Package server exposes the reconciler over HTTP.
//
// Routes:
//
//	GET  /healthz  liveness probe
//	POST /render   mount a tree document into a fresh host tree
//	GET  /live     websocket; every message is a document reconciled
//	               against the previous one
//	GET  /metrics  Prometheus exposition
//
// /render and /live answer with a Result: the HTML of the host tree after the
// operation and the mutations the reconciler applied to get there.
//
// # Live Sessions
//
// Each websocket connection owns an in-memory host tree and a Reconciler,
// so connections never share component instances. The first document on a
// connection is mounted and later ones update the same root; component state
// survives between documents when the component keeps its position. A
// failing document is answered with an error and the session continues from
// whatever the host tree holds.
//
// Messages are JSON documents unless the connection was opened with
// ?format=yaml.
package server
