package vdom

import (
	"fmt"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindText      VKind = iota // Plain text node
	KindElement                // <div>, <button>, etc.
	KindComponent              // Component node
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindText:
		return "Text"
	case KindElement:
		return "Element"
	case KindComponent:
		return "Component"
	default:
		return "Unknown"
	}
}

// VNode is the virtual tree node.
type VNode struct {
	Kind     VKind      // Node type
	Tag      string     // Element tag name (e.g., "div")
	Comp     Definition // For KindComponent
	Props    Props      // Attributes, or component props
	Children []*VNode   // Child nodes
	Key      string     // Reconciliation key
	Text     string     // For KindText
}

// Props holds attributes and event bindings of an element, or the props of a
// component.
type Props map[string]any

// ChildrenKey is the props entry carrying a component node's children.
const ChildrenKey = "children"

// Children returns the children passed to a component through its props.
func (p Props) Children() []*VNode {
	if c, ok := p[ChildrenKey].([]*VNode); ok {
		return c
	}
	return nil
}

// Get returns the value stored under key, or nil.
func (p Props) Get(key string) any {
	if p == nil {
		return nil
	}
	return p[key]
}

// GetString returns the prop stored under key formatted as a string.
func (p Props) GetString(key string) string {
	v := p.Get(key)
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// IsText reports whether the node is a text node. A nil node counts as empty
// text.
func (v *VNode) IsText() bool {
	return v == nil || v.Kind == KindText
}

// Label returns a short description of the node used in error paths,
// e.g. "li#3", "<Counter>" or "#text".
func (v *VNode) Label() string {
	if v == nil {
		return "#text"
	}
	switch v.Kind {
	case KindText:
		return "#text"
	case KindComponent:
		name := "?"
		if !nilDefinition(v.Comp) {
			name = v.Comp.Name()
		}
		if v.Key != "" {
			return "<" + name + ">#" + v.Key
		}
		return "<" + name + ">"
	default:
		tag := v.Tag
		if tag == "" {
			tag = "?"
		}
		if v.Key != "" {
			return tag + "#" + v.Key
		}
		return tag
	}
}

// String renders the node as indented debug output.
func (v *VNode) String() string {
	var b strings.Builder
	v.write(&b, 0)
	return b.String()
}

func (v *VNode) write(b *strings.Builder, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	if v.IsText() {
		text := ""
		if v != nil {
			text = v.Text
		}
		fmt.Fprintf(b, "%q\n", text)
		return
	}
	b.WriteString(v.Label())
	if len(v.Props) > 0 {
		fmt.Fprintf(b, " %v", map[string]any(v.Props))
	}
	b.WriteString("\n")
	for _, c := range v.Children {
		c.write(b, depth+1)
	}
}
