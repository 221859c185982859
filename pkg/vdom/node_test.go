package vdom

import "testing"

func TestHElement(t *testing.T) {
	node := H("div", Props{"class": "card", "key": 7}, "hello", H("span", nil, "world"))

	if node.Kind != KindElement {
		t.Errorf("Kind = %v, want Element", node.Kind)
	}
	if node.Tag != "div" {
		t.Errorf("Tag = %q, want div", node.Tag)
	}
	if node.Key != "7" {
		t.Errorf("Key = %q, want 7", node.Key)
	}
	if _, ok := node.Props["key"]; ok {
		t.Error("key must not stay in Props")
	}
	if node.Props["class"] != "card" {
		t.Errorf("class = %v, want card", node.Props["class"])
	}
	if len(node.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(node.Children))
	}
	if node.Children[0].Kind != KindText || node.Children[0].Text != "hello" {
		t.Errorf("Children[0] = %+v", node.Children[0])
	}
	if node.Children[1].Tag != "span" {
		t.Errorf("Children[1].Tag = %q", node.Children[1].Tag)
	}
}

func TestHDoesNotAliasProps(t *testing.T) {
	props := Props{"id": "a"}
	node := H("div", props)
	props["id"] = "b"
	if node.Props["id"] != "a" {
		t.Error("H must copy props")
	}
}

func TestHChildNormalization(t *testing.T) {
	var nilNode *VNode
	node := H("p", nil, 42, 1.5, true, nil, nilNode, uint8(3), []*VNode{Text("x"), nil}, []any{"y", []any{"z"}})

	want := []string{"42", "1.5", "", "", "", "3", "x", "", "y", "z"}
	if len(node.Children) != len(want) {
		t.Fatalf("len(Children) = %d, want %d", len(node.Children), len(want))
	}
	for i, w := range want {
		c := node.Children[i]
		if c.Kind != KindText {
			t.Errorf("Children[%d].Kind = %v, want Text", i, c.Kind)
		}
		if c.Text != w {
			t.Errorf("Children[%d].Text = %q, want %q", i, c.Text, w)
		}
	}
}

func TestHComponent(t *testing.T) {
	def := Func("Greeting", func(p Props) *VNode { return Text("hi") })
	node := H(def, Props{"name": "tom", "key": "g"}, "child")

	if node.Kind != KindComponent {
		t.Fatalf("Kind = %v, want Component", node.Kind)
	}
	if node.Comp != Definition(def) {
		t.Error("Comp should be the definition")
	}
	if node.Key != "g" {
		t.Errorf("Key = %q, want g", node.Key)
	}
	children := node.Props.Children()
	if len(children) != 1 || children[0].Text != "child" {
		t.Errorf("props children = %v", children)
	}
	if node.Props.GetString("name") != "tom" {
		t.Errorf("name = %q", node.Props.GetString("name"))
	}
}

func TestHInvalidTag(t *testing.T) {
	node := H(42, nil)
	if node.Kind != KindElement || node.Tag != "" {
		t.Errorf("node = %+v, want element with empty tag", node)
	}
	if err := ValidateNode(node); err == nil {
		t.Error("expected validation error")
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, ""},
		{"false", false, ""},
		{"true", true, ""},
		{"string", "abc", "abc"},
		{"int", -3, "-3"},
		{"int64", int64(1) << 40, "1099511627776"},
		{"float", 0.25, "0.25"},
		{"float32", float32(2.5), "2.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := Normalize(tt.in)
			if n.Kind != KindText {
				t.Fatalf("Kind = %v, want Text", n.Kind)
			}
			if n.Text != tt.want {
				t.Errorf("Text = %q, want %q", n.Text, tt.want)
			}
		})
	}

	div := Div()
	if Normalize(div) != div {
		t.Error("Normalize must return *VNode values unchanged")
	}
}

func TestElementHelpers(t *testing.T) {
	handler := func() {}
	node := Ul(Class("list", "dense"), ID("items"),
		Li(Key(1), "one"),
		Li(Key(2), On("Click", handler), "two"),
		nil,
		[]Attr{Data("x", "1")},
	)

	if node.Tag != "ul" {
		t.Errorf("Tag = %q", node.Tag)
	}
	if node.Props["class"] != "list dense" {
		t.Errorf("class = %v", node.Props["class"])
	}
	if node.Props["data-x"] != "1" {
		t.Errorf("data-x = %v", node.Props["data-x"])
	}
	if len(node.Children) != 2 {
		t.Fatalf("len(Children) = %d, want 2", len(node.Children))
	}
	if node.Children[0].Key != "1" || node.Children[1].Key != "2" {
		t.Errorf("keys = %q, %q", node.Children[0].Key, node.Children[1].Key)
	}
	if _, ok := node.Children[1].Props["onclick"]; !ok {
		t.Error("On should store the lower-cased onclick property")
	}
}

func TestC(t *testing.T) {
	def := Func("Item", func(p Props) *VNode { return Li(p.GetString("label")) })
	node := C(def, A("label", "x"), Key("k"), Props{"extra": 1}, Span())

	if node.Kind != KindComponent || node.Key != "k" {
		t.Fatalf("node = %+v", node)
	}
	if node.Props["label"] != "x" || node.Props["extra"] != 1 {
		t.Errorf("props = %v", node.Props)
	}
	if len(node.Props.Children()) != 1 {
		t.Errorf("children = %v", node.Props.Children())
	}
}

func TestIsVoidElement(t *testing.T) {
	if !IsVoidElement("br") || !IsVoidElement("img") {
		t.Error("br and img are void elements")
	}
	if IsVoidElement("div") {
		t.Error("div is not a void element")
	}
}
