package vtest

import (
	"context"
	"strings"
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/reconcile"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Harness is a tree mounted into an in-memory host tree.
type Harness struct {
	t          testing.TB
	Tree       *memtree.Tree
	Container  *memtree.Node
	Reconciler *reconcile.Reconciler
	Root       host.Node
}

// Mount renders tree into a fresh memtree container and fails the test on
// error. The mutation log is cleared afterwards, so Mutations reports only
// what later calls did.
//
// Example:
//
//	h := vtest.Mount(t, vdom.Ul(vdom.Li(vdom.Key("a"), "A")))
//	h.Update(vdom.Ul(vdom.Li(vdom.Key("a"), "B")))
//	h.ExpectMutations(`SetText n4 "B"`)
func Mount(t testing.TB, tree *vdom.VNode, opts ...reconcile.Option) *Harness {
	t.Helper()
	mt := memtree.New()
	h := &Harness{
		t:          t,
		Tree:       mt,
		Container:  mt.Container("body"),
		Reconciler: reconcile.New(mt, opts...),
	}
	root, err := h.Reconciler.Mount(context.Background(), tree, h.Container)
	if err != nil {
		t.Fatalf("Mount() error: %v", err)
	}
	h.Root = root
	mt.Reset()
	return h
}

// Update re-renders the root against tree and fails the test on error.
// The mutation log is cleared first.
func (h *Harness) Update(tree *vdom.VNode) *Harness {
	h.t.Helper()
	h.Tree.Reset()
	root, err := h.Reconciler.Update(context.Background(), h.Root, tree)
	if err != nil {
		h.t.Fatalf("Update() error: %v", err)
	}
	h.Root = root
	return h
}

// Unmount tears the root down and fails the test on error.
func (h *Harness) Unmount() {
	h.t.Helper()
	h.Tree.Reset()
	if err := h.Reconciler.Unmount(h.Root); err != nil {
		h.t.Fatalf("Unmount() error: %v", err)
	}
	h.Root = nil
}

// HTML returns the container's content.
func (h *Harness) HTML() string {
	return h.Container.InnerHTML()
}

// Mutations returns the mutations since the last Mount, Update or Unmount.
func (h *Harness) Mutations() []memtree.Mutation {
	return h.Tree.Mutations()
}

// ExpectHTML asserts the container's content.
func (h *Harness) ExpectHTML(expected string) {
	h.t.Helper()
	if got := h.HTML(); got != expected {
		h.t.Errorf("HTML mismatch\n got: %s\nwant: %s", got, expected)
	}
}

// ExpectMutations asserts the mutation log, one Mutation.String per entry.
func (h *Harness) ExpectMutations(expected ...string) {
	h.t.Helper()
	got := h.Mutations()
	lines := make([]string, len(got))
	for i, m := range got {
		lines[i] = m.String()
	}
	if strings.Join(lines, "\n") != strings.Join(expected, "\n") {
		h.t.Errorf("mutations mismatch\n got:\n  %s\nwant:\n  %s",
			strings.Join(lines, "\n  "), strings.Join(expected, "\n  "))
	}
}

// ExpectOps asserts the sequence of mutation ops, ignoring their operands.
func (h *Harness) ExpectOps(expected ...memtree.Op) {
	h.t.Helper()
	got := h.Mutations()
	ok := len(got) == len(expected)
	for i := 0; ok && i < len(got); i++ {
		ok = got[i].Op == expected[i]
	}
	if !ok {
		ops := make([]string, len(got))
		for i, m := range got {
			ops[i] = m.Op.String()
		}
		h.t.Errorf("ops = [%s], want %v", strings.Join(ops, " "), expected)
	}
}

// RenderToString mounts node into a fresh host tree and returns its HTML.
// It returns "" when the node cannot be mounted.
//
// Example:
//
//	html := vtest.RenderToString(MyComponent())
//	if !strings.Contains(html, "expected text") {
//	    t.Error("missing expected text")
//	}
func RenderToString(node *vdom.VNode) string {
	mt := memtree.New()
	container := mt.Container("body")
	if _, err := reconcile.New(mt).Mount(context.Background(), node, container); err != nil {
		return ""
	}
	return container.InnerHTML()
}

// ExpectContains asserts that rendered output contains expected substring.
//
// Example:
//
//	vtest.ExpectContains(t, vdom.C(Greeting, vdom.A("name", "Ada")), "Hello Ada")
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
