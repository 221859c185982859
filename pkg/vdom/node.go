package vdom

import (
	"fmt"
	"strconv"
)

// H creates a virtual node. tag is an element tag name (string) or a
// component Definition. A "key" entry in props becomes the node's Key and is
// not kept as an attribute.
//
// Children may be *VNode, []*VNode, []any, strings, numbers, booleans or nil.
// Strings and numbers become text nodes; nil and booleans become empty text.
// A tag of any other type yields an element node with an empty tag, which the
// reconciler rejects as malformed.
func H(tag any, props Props, children ...any) *VNode {
	node := &VNode{
		Props:    make(Props, len(props)),
		Children: make([]*VNode, 0, len(children)),
	}
	for k, v := range props {
		if k == "key" {
			node.Key = keyString(v)
			continue
		}
		node.Props[k] = v
	}
	for _, c := range children {
		node.Children = appendChild(node.Children, c)
	}

	switch t := tag.(type) {
	case string:
		node.Kind = KindElement
		node.Tag = t
	case Definition:
		node.Kind = KindComponent
		node.Comp = t
		node.Props[ChildrenKey] = node.Children
	default:
		node.Kind = KindElement
	}
	return node
}

// Text creates a text node.
func Text(content string) *VNode {
	return &VNode{
		Kind: KindText,
		Text: content,
	}
}

// Textf creates a formatted text node.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Empty creates an empty text node, the rendering of nil and booleans.
func Empty() *VNode {
	return Text("")
}

// Normalize converts a child value into a node. Text-like values become
// text nodes; nil, a nil *VNode and booleans become empty text. Values of
// other types are formatted with fmt.
func Normalize(v any) *VNode {
	switch x := v.(type) {
	case nil:
		return Empty()
	case *VNode:
		if x == nil {
			return Empty()
		}
		return x
	}
	if s, ok := textOf(v); ok {
		return Text(s)
	}
	return Text(fmt.Sprint(v))
}

// appendChild normalizes c and appends it, flattening slices.
func appendChild(dst []*VNode, c any) []*VNode {
	switch x := c.(type) {
	case []*VNode:
		for _, n := range x {
			dst = append(dst, Normalize(n))
		}
		return dst
	case []any:
		for _, n := range x {
			dst = appendChild(dst, n)
		}
		return dst
	}
	return append(dst, Normalize(c))
}

// textOf reports the text form of text-like and empty values.
func textOf(v any) (string, bool) {
	switch x := v.(type) {
	case string:
		return x, true
	case bool:
		return "", true
	case int:
		return strconv.Itoa(x), true
	case int8:
		return strconv.FormatInt(int64(x), 10), true
	case int16:
		return strconv.FormatInt(int64(x), 10), true
	case int32:
		return strconv.FormatInt(int64(x), 10), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case uint:
		return strconv.FormatUint(uint64(x), 10), true
	case uint8:
		return strconv.FormatUint(uint64(x), 10), true
	case uint16:
		return strconv.FormatUint(uint64(x), 10), true
	case uint32:
		return strconv.FormatUint(uint64(x), 10), true
	case uint64:
		return strconv.FormatUint(x, 10), true
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	}
	return "", false
}

// keyString converts a key prop to its string form. Empty and nil keys mean
// "no key".
func keyString(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := textOf(v); ok {
		return s
	}
	return fmt.Sprint(v)
}
