package reconcile

import (
	"testing"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func keyedList(keys ...string) *vdom.VNode {
	items := make([]*vdom.VNode, len(keys))
	for i, k := range keys {
		items[i] = vdom.Li(vdom.Key(k), k)
	}
	return vdom.Ul(items)
}

func byKey(parent host.Node) map[string]host.Node {
	out := make(map[string]host.Node)
	for _, c := range parent.Children() {
		out[c.Key()] = c
	}
	return out
}

func keysOf(parent host.Node) []string {
	var out []string
	for _, c := range parent.Children() {
		out = append(out, c.Key())
	}
	return out
}

func TestKeyedReorder(t *testing.T) {
	tests := []struct {
		name string
		from []string
		to   []string
	}{
		{"rotate right", []string{"1", "2", "3"}, []string{"3", "1", "2"}},
		{"rotate left", []string{"1", "2", "3"}, []string{"2", "3", "1"}},
		{"swap", []string{"1", "2", "3"}, []string{"2", "1", "3"}},
		{"reverse", []string{"1", "2", "3", "4"}, []string{"4", "3", "2", "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			root := f.mount(keyedList(tt.from...))
			before := byKey(root)

			f.update(keyedList(tt.to...))

			if got := keysOf(root); !equalStrings(got, tt.to) {
				t.Fatalf("order = %v, want %v", got, tt.to)
			}
			for k, n := range byKey(root) {
				if before[k] != n {
					t.Errorf("node %s was recreated", k)
				}
			}
			for _, m := range f.tree.Mutations() {
				if m.Op == memtree.OpCreateElement || m.Op == memtree.OpCreateText {
					t.Errorf("unexpected %v", m)
				}
			}
		})
	}
}

func TestKeyedInsertAndRemove(t *testing.T) {
	f := newFixture(t)
	root := f.mount(keyedList("a", "b", "c"))
	before := byKey(root)

	f.update(keyedList("c", "x", "a"))

	if got := keysOf(root); !equalStrings(got, []string{"c", "x", "a"}) {
		t.Fatalf("order = %v", got)
	}
	after := byKey(root)
	if after["a"] != before["a"] || after["c"] != before["c"] {
		t.Error("kept items should keep their nodes")
	}
	if before["b"].Parent() != nil {
		t.Error("b should be removed")
	}
	f.expectHTML(`<ul><li>c</li><li>x</li><li>a</li></ul>`)
}

func TestDuplicateKeysAreRemoved(t *testing.T) {
	f := newFixture(t)
	root := f.mount(keyedList("a", "a", "b"))
	if len(root.Children()) != 3 {
		t.Fatalf("children = %d", len(root.Children()))
	}

	f.update(keyedList("a", "b"))
	f.expectHTML(`<ul><li>a</li><li>b</li></ul>`)
}

func TestUnkeyedFirstFitByType(t *testing.T) {
	f := newFixture(t)
	root := f.mount(vdom.Div(vdom.Span("s"), vdom.Div("d")))
	kids := root.Children()
	span, div := kids[0], kids[1]

	f.update(vdom.Div(vdom.Div("d"), vdom.Span("s")))

	got := root.Children()
	if got[0] != div || got[1] != span {
		t.Error("children should be reused by type, not by position")
	}
	f.expectHTML(`<div><div>d</div><span>s</span></div>`)
}

func TestUnkeyedGrowAndShrink(t *testing.T) {
	f := newFixture(t)
	root := f.mount(vdom.Ul(vdom.Li("1")))
	first := root.Children()[0]

	f.update(vdom.Ul(vdom.Li("1"), vdom.Li("2"), vdom.Li("3")))
	f.expectHTML(`<ul><li>1</li><li>2</li><li>3</li></ul>`)
	if root.Children()[0] != first {
		t.Error("first item should be reused")
	}

	f.update(vdom.Ul(vdom.Li("1")))
	f.expectHTML(`<ul><li>1</li></ul>`)

	f.update(vdom.Ul())
	f.expectHTML(`<ul></ul>`)
}

func TestKeyedAndUnkeyedMixed(t *testing.T) {
	f := newFixture(t)
	root := f.mount(vdom.Div(vdom.P(vdom.Key("k"), "keyed"), vdom.P("plain")))
	before := root.Children()

	f.update(vdom.Div(vdom.P("plain"), vdom.P(vdom.Key("k"), "keyed")))

	got := root.Children()
	if got[0] != before[1] || got[1] != before[0] {
		t.Error("keyed and unkeyed children should keep their nodes")
	}
}

func TestUnkeyedNodeNotMatchedByKeyedChild(t *testing.T) {
	f := newFixture(t)
	root := f.mount(vdom.Ul(vdom.Li("x")))
	old := root.Children()[0]

	f.update(vdom.Ul(vdom.Li(vdom.Key("k"), "x")))

	got := root.Children()
	if len(got) != 1 || got[0] == old {
		t.Fatal("keyed child should get a new node")
	}
	if got[0].Key() != "k" {
		t.Errorf("key = %q, want k", got[0].Key())
	}
}

func TestReconcileChildrenDirect(t *testing.T) {
	tree := memtree.New()
	r := New(tree)
	parent := tree.Container("ol")

	if err := r.ReconcileChildren(parent, []*vdom.VNode{vdom.Li("a"), vdom.Text("b")}); err != nil {
		t.Fatal(err)
	}
	if got := parent.InnerHTML(); got != "<li>a</li>b" {
		t.Errorf("InnerHTML = %q", got)
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
