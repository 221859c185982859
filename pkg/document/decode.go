package document

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vtree/internal/errors"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// Format is the encoding of a tree document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// String returns the string representation of the Format.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// FormatFor picks the format from a file name or reference. Anything that
// is not .yaml or .yml is JSON.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// ParseFormat parses "json" or "yaml" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return FormatJSON, fmt.Errorf("unknown document format %q", s)
}

// Decode parses data and builds the virtual tree it describes. Component
// names are resolved in reg, or in DefaultRegistry when reg is nil.
func Decode(data []byte, format Format, reg *Registry) (*vdom.VNode, error) {
	if reg == nil {
		reg = DefaultRegistry()
	}

	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, errors.New("E030").WithDetail("yaml").Wrap(err)
		}
	default:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.UseNumber()
		if err := dec.Decode(&raw); err != nil {
			return nil, errors.New("E030").WithDetail("json").Wrap(err)
		}
		if dec.More() {
			return nil, errors.New("E030").WithDetail("json: trailing data after document")
		}
	}

	if _, ok := raw.([]any); ok {
		return nil, errors.New("E030").
			WithPath("/").
			WithDetail("the document root must be a single node, not a list").
			WithSuggestion(`Wrap the list in an element: {"tag": "div", "children": [...]}`)
	}

	d := decoder{reg: reg}
	return d.node(raw, "")
}

type decoder struct {
	reg *Registry
}

// node converts one decoded value. path is a JSON pointer to the value.
func (d decoder) node(v any, path string) (*vdom.VNode, error) {
	switch x := v.(type) {
	case nil, bool:
		return vdom.Empty(), nil
	case string:
		return vdom.Text(x), nil
	case json.Number:
		return vdom.Text(x.String()), nil
	case int, int64, uint64, float64:
		return vdom.Normalize(x), nil
	case map[string]any:
		return d.object(x, path)
	case map[any]any:
		m, err := stringKeys(x, path)
		if err != nil {
			return nil, err
		}
		return d.object(m, path)
	}
	return nil, invalid(path, "unsupported value of type %T", v)
}

func (d decoder) object(obj map[string]any, path string) (*vdom.VNode, error) {
	for k := range obj {
		switch k {
		case "tag", "component", "props", "children", "key":
		default:
			return nil, invalid(path+"/"+k, "unknown field %q", k)
		}
	}

	var tag any
	tagName, hasTag := obj["tag"]
	compName, hasComp := obj["component"]
	switch {
	case hasTag && hasComp:
		return nil, invalid(path, `a node has either "tag" or "component", not both`)
	case hasTag:
		s, ok := tagName.(string)
		if !ok || s == "" {
			return nil, invalid(path+"/tag", "tag must be a non-empty string")
		}
		tag = s
	case hasComp:
		s, ok := compName.(string)
		if !ok || s == "" {
			return nil, invalid(path+"/component", "component must be a non-empty string")
		}
		def, ok := d.reg.Lookup(s)
		if !ok {
			return nil, errors.New("E002").
				WithPath(path + "/component").
				WithComponent(s).
				WithSuggestion("Registered components: " + strings.Join(d.reg.Names(), ", "))
		}
		tag = def
	default:
		return nil, invalid(path, `an object node needs "tag" or "component"`)
	}

	props := vdom.Props{}
	if raw, ok := obj["props"]; ok && raw != nil {
		m, err := asMap(raw, path+"/props")
		if err != nil {
			return nil, err
		}
		for k, pv := range m {
			if k == vdom.ChildrenKey {
				return nil, invalid(path+"/props/"+k, `children go in the "children" field`)
			}
			props[k] = value(pv)
		}
	}
	if key, ok := obj["key"]; ok && key != nil {
		props["key"] = value(key)
	}

	var children []any
	if raw, ok := obj["children"]; ok {
		var err error
		children, err = d.children(raw, path+"/children", nil)
		if err != nil {
			return nil, err
		}
	}

	return vdom.H(tag, props, children...), nil
}

// children converts raw into child nodes, flattening nested lists.
func (d decoder) children(raw any, path string, dst []any) ([]any, error) {
	list, ok := raw.([]any)
	if !ok {
		n, err := d.node(raw, path)
		if err != nil {
			return nil, err
		}
		return append(dst, n), nil
	}
	for i, item := range list {
		p := path + "/" + strconv.Itoa(i)
		if _, nested := item.([]any); nested {
			var err error
			if dst, err = d.children(item, p, dst); err != nil {
				return nil, err
			}
			continue
		}
		n, err := d.node(item, p)
		if err != nil {
			return nil, err
		}
		dst = append(dst, n)
	}
	return dst, nil
}

func asMap(v any, path string) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		return stringKeys(m, path)
	}
	return nil, invalid(path, "expected an object, got %T", v)
}

func stringKeys(m map[any]any, path string) (map[string]any, error) {
	out := make(map[string]any, len(m))
	for k, v := range m {
		s, ok := k.(string)
		if !ok {
			return nil, invalid(path, "object keys must be strings, got %v", k)
		}
		out[s] = v
	}
	return out, nil
}

// value converts decoded prop values into the forms the host tree
// understands: JSON numbers become int64 or float64, nested objects keep
// string keys.
func value(v any) any {
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i
		}
		if f, err := x.Float64(); err == nil {
			return f
		}
		return x.String()
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[k] = value(vv)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(x))
		for k, vv := range x {
			out[fmt.Sprint(k)] = value(vv)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, vv := range x {
			out[i] = value(vv)
		}
		return out
	}
	return v
}

func invalid(path, format string, args ...any) error {
	if path == "" {
		path = "/"
	}
	return errors.New("E030").WithPath(path).WithDetailf(format, args...)
}

// sortedNames returns the keys of m in order.
func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
