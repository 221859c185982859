package reconcile

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/vango-dev/vtree/pkg/host"
	"github.com/vango-dev/vtree/pkg/vdom"
)

// reconcileAttrs removes host attributes missing from next and sets the ones
// whose value changed. nil, false and "" count as missing.
func (r *Reconciler) reconcileAttrs(n host.Node, next vdom.Props) error {
	current := n.Attrs()

	for _, name := range sortedKeys(current) {
		if isAbsent(next[name]) {
			if err := r.tree.RemoveProperty(n, name); err != nil {
				return err
			}
		}
	}

	for _, name := range sortedKeys(next) {
		if name == "key" || name == vdom.ChildrenKey {
			continue
		}
		value := next[name]
		if isAbsent(value) {
			continue
		}
		if old, ok := current[name]; ok && propsEqual(old, value) {
			continue
		}
		if err := r.tree.SetProperty(n, name, value); err != nil {
			return err
		}
	}
	return nil
}

func sortedKeys[M ~map[string]any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isAbsent(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case bool:
		return !val
	case string:
		return val == ""
	}
	return false
}

// propsEqual compares two prop values for equality. Functions are equal only
// when they are the same func value; a closure built again during a render is
// a new value and gets re-bound.
func propsEqual(a, b any) bool {
	// Fast path for common types
	switch av := a.(type) {
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int:
		bv, ok := b.(int)
		return ok && av == bv
	case int64:
		bv, ok := b.(int64)
		return ok && av == bv
	case float64:
		bv, ok := b.(float64)
		return ok && av == bv
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case nil:
		return b == nil
	}

	ra, rb := reflect.ValueOf(a), reflect.ValueOf(b)
	if ra.Kind() == reflect.Func || rb.Kind() == reflect.Func {
		return ra.Kind() == rb.Kind() && ra.Type() == rb.Type() && funcIdentity(a) == funcIdentity(b)
	}
	return reflect.DeepEqual(a, b)
}

// funcIdentity returns the data word of an interface holding a func: the
// closure the func value points to. Each evaluation of a capturing func
// literal or a method value yields a new closure.
func funcIdentity(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}
