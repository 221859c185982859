package vdom

import (
	"strconv"
	"strings"

	"github.com/vango-dev/vtree/internal/errors"
)

// ValidateNode checks a single node, without descending into its children.
// It returns an E001 error for element nodes without a usable tag, component
// nodes without a definition and unknown kinds.
func ValidateNode(v *VNode) error {
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindText:
		return nil
	case KindElement:
		if v.Tag == "" {
			return errors.New("E001").
				WithDetail("element node has an empty tag").
				WithSuggestion("Pass a tag name or a component definition to vdom.H")
		}
		if strings.ContainsAny(v.Tag, " \t\n<>/\"'=") {
			return errors.New("E001").
				WithDetailf("element tag %q is not a valid tag name", v.Tag)
		}
		return nil
	case KindComponent:
		if nilDefinition(v.Comp) {
			return errors.New("E001").
				WithDetail("component node has no definition")
		}
		return nil
	default:
		return errors.New("E001").
			WithDetailf("unknown node kind %d", v.Kind)
	}
}

// Validate checks the node and all of its descendants. It does not render
// components, so their output is validated when it is reconciled.
func Validate(v *VNode) error {
	return validate(v, v.Label())
}

func validate(v *VNode, path string) error {
	if err := ValidateNode(v); err != nil {
		return errors.FromError(err, "E001").WithPath(path)
	}
	if v == nil {
		return nil
	}
	for i, c := range v.Children {
		if err := validate(c, ChildPath(path, c, i)); err != nil {
			return err
		}
	}
	return nil
}

// ChildPath extends a tree path with the i-th child.
func ChildPath(parent string, child *VNode, i int) string {
	seg := child.Label()
	if child == nil || child.Key == "" {
		seg += "[" + strconv.Itoa(i) + "]"
	}
	if parent == "" {
		return seg
	}
	return parent + " > " + seg
}
