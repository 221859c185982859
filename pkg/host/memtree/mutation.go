package memtree

import (
	"fmt"
	"strconv"
)

// Op is the type of a recorded mutation.
type Op uint8

const (
	OpCreateElement  Op = 0x01 // Element created
	OpCreateText     Op = 0x02 // Text node created
	OpSetText        Op = 0x03 // Text content updated
	OpSetProperty    Op = 0x04 // Attribute/property set
	OpRemoveProperty Op = 0x05 // Attribute/property removed
	OpAppendChild    Op = 0x06 // Child appended
	OpInsertBefore   Op = 0x07 // Child inserted before a sibling
	OpRemoveChild    Op = 0x08 // Child removed
	OpReplaceChild   Op = 0x09 // Child replaced
	OpSetKey         Op = 0x0A // Reconciliation key changed
)

// String returns the string representation of the Op.
func (op Op) String() string {
	switch op {
	case OpCreateElement:
		return "CreateElement"
	case OpCreateText:
		return "CreateText"
	case OpSetText:
		return "SetText"
	case OpSetProperty:
		return "SetProperty"
	case OpRemoveProperty:
		return "RemoveProperty"
	case OpAppendChild:
		return "AppendChild"
	case OpInsertBefore:
		return "InsertBefore"
	case OpRemoveChild:
		return "RemoveChild"
	case OpReplaceChild:
		return "ReplaceChild"
	case OpSetKey:
		return "SetKey"
	default:
		return "Unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so logs serialize with
// readable op names.
func (op Op) MarshalText() ([]byte, error) {
	return []byte(op.String()), nil
}

// UnmarshalText parses an op name written by MarshalText.
func (op *Op) UnmarshalText(text []byte) error {
	for o := OpCreateElement; o <= OpSetKey; o++ {
		if o.String() == string(text) {
			*op = o
			return nil
		}
	}
	return fmt.Errorf("memtree: unknown op %q", text)
}

// Mutation is one recorded host tree operation.
type Mutation struct {
	Op     Op     `json:"op"`
	Target string `json:"target"`           // Node the operation applies to
	Parent string `json:"parent,omitempty"` // Parent for child operations
	Ref    string `json:"ref,omitempty"`    // Reference/replaced node
	Key    string `json:"key,omitempty"`    // Property name or tag
	Value  string `json:"value,omitempty"`  // New value
}

// String formats the mutation for logs and the CLI.
func (m Mutation) String() string {
	switch m.Op {
	case OpCreateElement:
		return fmt.Sprintf("%s %s <%s>", m.Op, m.Target, m.Key)
	case OpCreateText, OpSetText:
		return fmt.Sprintf("%s %s %s", m.Op, m.Target, strconv.Quote(m.Value))
	case OpSetProperty:
		return fmt.Sprintf("%s %s %s=%s", m.Op, m.Target, m.Key, strconv.Quote(m.Value))
	case OpRemoveProperty:
		return fmt.Sprintf("%s %s %s", m.Op, m.Target, m.Key)
	case OpAppendChild, OpRemoveChild:
		return fmt.Sprintf("%s %s > %s", m.Op, m.Parent, m.Target)
	case OpInsertBefore:
		return fmt.Sprintf("%s %s > %s before %s", m.Op, m.Parent, m.Target, m.Ref)
	case OpReplaceChild:
		return fmt.Sprintf("%s %s > %s with %s", m.Op, m.Parent, m.Ref, m.Target)
	case OpSetKey:
		return fmt.Sprintf("%s %s %s", m.Op, m.Target, strconv.Quote(m.Value))
	default:
		return fmt.Sprintf("%s %s", m.Op, m.Target)
	}
}

// IsStructural reports whether the mutation changes the shape of the tree
// (as opposed to node content or attributes).
func (m Mutation) IsStructural() bool {
	switch m.Op {
	case OpAppendChild, OpInsertBefore, OpRemoveChild, OpReplaceChild:
		return true
	}
	return false
}
