package vdom

import (
	"fmt"
	"strings"
)

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// attr creates an Attr with the given key and value.
func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// A creates an arbitrary attribute.
func A(key string, value any) Attr { return attr(key, value) }

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute, joining multiple classes with spaces.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// ClassName sets the className property, as JSX-style trees spell it.
func ClassName(classes ...string) Attr { return attr("className", strings.Join(classes, " ")) }

// Style sets the style attribute. value is either CSS text or a map of
// properties; numeric map values are treated as pixels by the host tree.
func Style(value any) Attr { return attr("style", value) }

// Data creates a data-* attribute.
// Example: Data("id", "123") → data-id="123"
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Title sets the title attribute.
func Title(title string) Attr { return attr("title", title) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Value sets the value attribute.
func Value(v any) Attr { return attr("value", v) }

// Disabled sets the disabled attribute; false removes it.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// Checked sets the checked attribute; false removes it.
func Checked(checked bool) Attr { return attr("checked", checked) }

// On binds an event handler, stored as the "on<event>" property.
// Example: On("click", fn) → onclick
func On(event string, handler any) Attr {
	return attr("on"+strings.ToLower(event), handler)
}

// Key creates a key attribute for reconciliation.
// The key is converted to a string using fmt.Sprintf.
func Key(key any) Attr {
	return attr("key", fmt.Sprintf("%v", key))
}
