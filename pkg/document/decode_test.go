package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func TestDecodeJSONElement(t *testing.T) {
	doc := `{
		"tag": "ul",
		"props": {"class": "list", "style": {"fontSize": 12}},
		"children": [
			{"tag": "li", "key": "a", "children": ["first"]},
			{"tag": "li", "key": 2, "children": [42, null, true]},
			[{"tag": "li", "children": "nested"}]
		]
	}`

	tree, err := Decode([]byte(doc), FormatJSON, nil)
	require.NoError(t, err)

	assert.Equal(t, vdom.KindElement, tree.Kind)
	assert.Equal(t, "ul", tree.Tag)
	assert.Equal(t, "list", tree.Props["class"])
	assert.Equal(t, map[string]any{"fontSize": int64(12)}, tree.Props["style"])
	require.Len(t, tree.Children, 3)

	first := tree.Children[0]
	assert.Equal(t, "a", first.Key)
	assert.NotContains(t, first.Props, "key")
	require.Len(t, first.Children, 1)
	assert.Equal(t, "first", first.Children[0].Text)

	second := tree.Children[1]
	assert.Equal(t, "2", second.Key)
	require.Len(t, second.Children, 3)
	assert.Equal(t, "42", second.Children[0].Text)
	assert.Equal(t, "", second.Children[1].Text)
	assert.Equal(t, "", second.Children[2].Text)

	assert.Equal(t, "nested", tree.Children[2].Children[0].Text)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
tag: div
props:
  id: main
children:
  - tag: p
    children: [hello, 1.5]
  - component: Text
    props:
      value: from component
`
	tree, err := Decode([]byte(doc), FormatYAML, nil)
	require.NoError(t, err)

	assert.Equal(t, "div", tree.Tag)
	assert.Equal(t, "main", tree.Props["id"])
	require.Len(t, tree.Children, 2)

	p := tree.Children[0]
	require.Len(t, p.Children, 2)
	assert.Equal(t, "hello", p.Children[0].Text)
	assert.Equal(t, "1.5", p.Children[1].Text)

	comp := tree.Children[1]
	assert.Equal(t, vdom.KindComponent, comp.Kind)
	assert.Same(t, TextComponent, comp.Comp)
	assert.Equal(t, "from component", comp.Props["value"])
}

func TestDecodeTextRoot(t *testing.T) {
	tree, err := Decode([]byte(`"just text"`), FormatJSON, nil)
	require.NoError(t, err)
	assert.True(t, tree.IsText())
	assert.Equal(t, "just text", tree.Text)
}

func TestDecodeComponentChildren(t *testing.T) {
	reg := NewRegistry(vdom.Func("Box", func(p vdom.Props) *vdom.VNode {
		return vdom.Div(p.Children())
	}))

	tree, err := Decode([]byte(`{"component": "Box", "children": ["a", "b"]}`), FormatJSON, reg)
	require.NoError(t, err)

	children := tree.Props.Children()
	require.Len(t, children, 2)
	assert.Equal(t, "a", children[0].Text)
}

func TestDecodeErrors(t *testing.T) {
	testCases := []struct {
		name string
		doc  string
		code string
		path string
	}{
		{"syntax", `{"tag": `, "E030", ""},
		{"trailing", `{"tag": "p"} {}`, "E030", ""},
		{"list root", `[{"tag": "p"}]`, "E030", "/"},
		{"no tag", `{"props": {}}`, "E030", "/"},
		{"tag and component", `{"tag": "p", "component": "Text"}`, "E030", "/"},
		{"empty tag", `{"tag": ""}`, "E030", "/tag"},
		{"unknown field", `{"tag": "p", "kids": []}`, "E030", "/kids"},
		{"props not object", `{"tag": "p", "props": [1]}`, "E030", "/props"},
		{"children in props", `{"tag": "p", "props": {"children": []}}`, "E030", "/props/children"},
		{"bad child", `{"tag": "p", "children": [{"tag": 3}]}`, "E030", "/children/0/tag"},
		{"nested bad child", `{"tag": "p", "children": [[1, {}]]}`, "E030", "/children/0/1"},
		{"unknown component", `{"tag": "p", "children": [{"component": "Nope"}]}`, "E002", "/children/0/component"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc), FormatJSON, nil)
			require.Error(t, err)
			assert.True(t, errors.HasCode(err, tc.code), "got %v", err)

			var ve *errors.VtreeError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tc.path, ve.Path)
		})
	}
}

func TestDecodeUnknownComponentSuggestsNames(t *testing.T) {
	_, err := Decode([]byte(`{"component": "Nope"}`), FormatJSON, nil)

	var ve *errors.VtreeError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "Nope", ve.Component)
	assert.Contains(t, ve.Suggestion, "Counter, Text")
}

func TestDecodeYAMLNonStringKeys(t *testing.T) {
	_, err := Decode([]byte("tag: p\nprops:\n  1: one\n"), FormatYAML, nil)
	assert.True(t, errors.HasCode(err, "E030"))
}

func TestFormatFor(t *testing.T) {
	testCases := []struct {
		name     string
		expected Format
	}{
		{"tree.json", FormatJSON},
		{"tree.yaml", FormatYAML},
		{"TREE.YML", FormatYAML},
		{"s3://bucket/a/tree.yml", FormatYAML},
		{"noext", FormatJSON},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatFor(tc.name))
		})
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("YAML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)
	assert.Equal(t, "yaml", f.String())

	f, err = ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, f)

	_, err = ParseFormat("toml")
	assert.Error(t, err)
}

func TestRegistry(t *testing.T) {
	a := vdom.Func("A", func(vdom.Props) *vdom.VNode { return nil })
	a2 := vdom.Func("A", func(vdom.Props) *vdom.VNode { return nil })
	reg := NewRegistry(a, nil)

	def, ok := reg.Lookup("A")
	require.True(t, ok)
	assert.Same(t, a, def)

	reg.Register(a2, vdom.Func("B", func(vdom.Props) *vdom.VNode { return nil }))
	def, _ = reg.Lookup("A")
	assert.Same(t, a2, def)
	assert.Equal(t, []string{"A", "B"}, reg.Names())

	_, ok = reg.Lookup("C")
	assert.False(t, ok)
}
