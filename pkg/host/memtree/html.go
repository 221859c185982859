package memtree

import (
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// OuterHTML serializes the node and its subtree.
func (n *Node) OuterHTML() string {
	var b strings.Builder
	n.writeHTML(&b)
	return b.String()
}

// InnerHTML serializes the node's children.
func (n *Node) InnerHTML() string {
	var b strings.Builder
	for _, c := range n.children {
		c.writeHTML(&b)
	}
	return b.String()
}

func (n *Node) writeHTML(b *strings.Builder) {
	if n.kind == host.KindText {
		b.WriteString(escapeHTML(n.text))
		return
	}

	b.WriteByte('<')
	b.WriteString(n.tag)
	writeAttrs(b, n.attrs)
	b.WriteByte('>')

	if vdom.IsVoidElement(strings.ToLower(n.tag)) {
		return
	}
	for _, c := range n.children {
		c.writeHTML(b)
	}
	b.WriteString("</")
	b.WriteString(n.tag)
	b.WriteByte('>')
}

// writeAttrs writes attributes in sorted order. Event bindings have no HTML
// form and are skipped; className is written as class.
func writeAttrs(b *strings.Builder, attrs map[string]any) {
	names := make([]string, 0, len(attrs))
	for k := range attrs {
		if isEventBinding(k) {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	for _, k := range names {
		v := attrs[k]
		name := k
		if k == "className" {
			name = "class"
		}
		if bv, ok := v.(bool); ok {
			if bv {
				b.WriteByte(' ')
				b.WriteString(name)
			}
			continue
		}
		b.WriteByte(' ')
		b.WriteString(name)
		b.WriteString(`="`)
		b.WriteString(escapeAttr(formatValue(k, v)))
		b.WriteByte('"')
	}
}

// isEventBinding returns true if the key is an event binding ("on...").
// Case-insensitive to catch onclick, onClick, OnLoad, etc.
func isEventBinding(key string) bool {
	return len(key) > 2 && strings.EqualFold(key[:2], "on")
}

// formatValue converts a property value to its string form. Style maps become
// CSS text with numbers in pixels.
func formatValue(key string, v any) string {
	if key == "style" {
		if m, ok := v.(map[string]any); ok {
			return cssText(m)
		}
		if m, ok := v.(vdom.Props); ok {
			return cssText(m)
		}
	}
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	}
	if reflect.TypeOf(v).Kind() == reflect.Func {
		return "func"
	}
	return fmt.Sprintf("%v", v)
}

// cssText renders a style map, e.g. {"fontSize": 50} → "font-size: 50px;".
func cssText(style map[string]any) string {
	names := make([]string, 0, len(style))
	for k := range style {
		names = append(names, k)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, k := range names {
		var val string
		switch v := style[k].(type) {
		case int:
			val = strconv.Itoa(v) + "px"
		case int64:
			val = strconv.FormatInt(v, 10) + "px"
		case float64:
			val = strconv.FormatFloat(v, 'f', -1, 64) + "px"
		default:
			val = fmt.Sprintf("%v", v)
		}
		parts = append(parts, cssName(k)+": "+val+";")
	}
	return strings.Join(parts, " ")
}

// cssName converts camelCase style names to CSS property names.
func cssName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) {
			b.WriteByte('-')
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}

// escapeAttr escapes text for safe inclusion in HTML attribute values.
// In addition to the standard HTML entities, it also escapes
// whitespace characters that could break attribute parsing.
func escapeAttr(s string) string {
	var buf strings.Builder
	buf.Grow(len(s))

	for _, r := range s {
		switch r {
		case '&':
			buf.WriteString("&amp;")
		case '<':
			buf.WriteString("&lt;")
		case '>':
			buf.WriteString("&gt;")
		case '"':
			buf.WriteString("&quot;")
		case '\'':
			buf.WriteString("&#39;")
		case '\n':
			buf.WriteString("&#10;")
		case '\r':
			buf.WriteString("&#13;")
		case '\t':
			buf.WriteString("&#9;")
		default:
			buf.WriteRune(r)
		}
	}

	return buf.String()
}
