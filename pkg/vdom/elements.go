package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// El creates an element node. Arguments can be: Attr, []Attr, Props,
// *VNode, []*VNode, []any, strings, numbers and booleans. Nil arguments and
// nil *VNode values are skipped, so conditional helpers can return nil.
func El(tag string, args ...any) *VNode {
	props := Props{}
	var children []any

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				props[v.Key] = v.Value
			}
		case []Attr:
			for _, a := range v {
				if !a.IsEmpty() {
					props[a.Key] = a.Value
				}
			}
		case Props:
			for k, val := range v {
				props[k] = val
			}
		case *VNode:
			if v != nil {
				children = append(children, v)
			}
		default:
			children = append(children, v)
		}
	}

	return H(tag, props, children...)
}

// C creates a component node, the component counterpart of El.
func C(def Definition, args ...any) *VNode {
	props := Props{}
	var children []any
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			continue
		case Attr:
			if !v.IsEmpty() {
				props[v.Key] = v.Value
			}
		case Props:
			for k, val := range v {
				props[k] = val
			}
		default:
			children = append(children, v)
		}
	}
	return H(def, props, children...)
}

// Document structure

func Div(args ...any) *VNode     { return El("div", args...) }
func Span(args ...any) *VNode    { return El("span", args...) }
func P(args ...any) *VNode       { return El("p", args...) }
func Section(args ...any) *VNode { return El("section", args...) }
func Header(args ...any) *VNode  { return El("header", args...) }
func Footer(args ...any) *VNode  { return El("footer", args...) }
func Main(args ...any) *VNode    { return El("main", args...) }
func Nav(args ...any) *VNode     { return El("nav", args...) }

// Headings

func H1(args ...any) *VNode { return El("h1", args...) }
func H2(args ...any) *VNode { return El("h2", args...) }
func H3(args ...any) *VNode { return El("h3", args...) }

// Lists

func Ul(args ...any) *VNode { return El("ul", args...) }
func Ol(args ...any) *VNode { return El("ol", args...) }
func Li(args ...any) *VNode { return El("li", args...) }

// Inline and form elements

func Anchor(args ...any) *VNode { return El("a", args...) }
func Strong(args ...any) *VNode { return El("strong", args...) }
func Em(args ...any) *VNode     { return El("em", args...) }
func Button(args ...any) *VNode { return El("button", args...) }
func Input(args ...any) *VNode  { return El("input", args...) }
func Label(args ...any) *VNode  { return El("label", args...) }
func Img(args ...any) *VNode    { return El("img", args...) }
func Br() *VNode                { return El("br") }
